// Package scope tracks nested binding regions and hands out short
// replacement names for local identifiers.
package scope

import "strconv"

const alphabet = "abcdefghijklmnopqrstuvwxyz"

// Namer allocates short names from a single monotonic counter. One Namer
// is shared by every file of a bundle so that names never repeat.
type Namer struct {
	count int
	avoid map[string]bool
}

// NewNamer creates a namer starting at "a".
func NewNamer() *Namer {
	return &Namer{avoid: make(map[string]bool)}
}

// Avoid excludes names from future allocation, e.g. free identifiers that
// must keep referring to globals.
func (n *Namer) Avoid(names ...string) {
	for _, name := range names {
		n.avoid[name] = true
	}
}

// Next returns the next unused short name: a..z, then a1..z1, a2..z2, ...
func (n *Namer) Next() string {
	for {
		name := NameAt(n.count)
		n.count++
		if !n.avoid[name] {
			return name
		}
	}
}

// Count returns how many names have been consumed so far.
func (n *Namer) Count() int { return n.count }

// NameAt returns the i-th name of the allocation sequence.
func NameAt(i int) string {
	name := alphabet[i%26 : i%26+1]
	if suffix := i / 26; suffix > 0 {
		name += strconv.Itoa(suffix)
	}
	return name
}

// Frame is one binding region.
type Frame struct {
	Outer    *Frame
	bindings map[string]string // original name -> short name
}

func newFrame(outer *Frame) *Frame {
	return &Frame{Outer: outer, bindings: make(map[string]string)}
}

// Resolve looks a name up in this frame and its ancestors.
func (f *Frame) Resolve(name string) (string, *Frame, bool) {
	for fr := f; fr != nil; fr = fr.Outer {
		if short, ok := fr.bindings[name]; ok {
			return short, fr, true
		}
	}
	return "", nil, false
}

// Scope is the live chain of frames plus the namer feeding it.
type Scope struct {
	current *Frame
	root    *Frame
	namer   *Namer
}

// New creates a scope with an empty root frame and its own namer.
func New() *Scope {
	return NewWithNamer(NewNamer())
}

// NewWithNamer creates a scope drawing names from namer.
func NewWithNamer(namer *Namer) *Scope {
	root := newFrame(nil)
	return &Scope{current: root, root: root, namer: namer}
}

// Namer returns the name allocator of this scope.
func (s *Scope) Namer() *Namer { return s.namer }

// Depth returns the number of frames pushed above the root.
func (s *Scope) Depth() int {
	d := 0
	for f := s.current; f != s.root; f = f.Outer {
		d++
	}
	return d
}

// Push opens a child frame of the current frame.
func (s *Scope) Push() {
	s.current = newFrame(s.current)
}

// Pop closes the current frame. Popping the root frame is a programming
// error and panics.
func (s *Scope) Pop() {
	if s.current == s.root {
		panic("scope: pop without matching push")
	}
	s.current = s.current.Outer
}

// Register binds name in the current frame to the next short name and
// returns it.
func (s *Scope) Register(name string) string {
	short := s.namer.Next()
	s.current.bindings[name] = short
	return short
}

// Declared reports whether name is bound in the current frame itself.
func (s *Scope) Declared(name string) (string, bool) {
	short, ok := s.current.bindings[name]
	return short, ok
}

// Lookup returns the short name bound to name along the active chain, or
// name itself when no frame binds it.
func (s *Scope) Lookup(name string) string {
	short, _ := s.Resolve(name)
	return short
}

// Resolve is Lookup that also reports whether a binding was found.
func (s *Scope) Resolve(name string) (string, bool) {
	if short, _, ok := s.current.Resolve(name); ok {
		return short, true
	}
	return name, false
}
