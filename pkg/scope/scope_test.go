package scope

import "testing"

func TestNameAt(t *testing.T) {
	tests := []struct {
		i    int
		want string
	}{
		{0, "a"},
		{1, "b"},
		{25, "z"},
		{26, "a1"},
		{27, "b1"},
		{53, "b2"},
	}
	for _, tt := range tests {
		if got := NameAt(tt.i); got != tt.want {
			t.Errorf("NameAt(%d) = %q, want %q", tt.i, got, tt.want)
		}
	}
}

func TestNamerAvoid(t *testing.T) {
	n := NewNamer()
	n.Avoid("a", "c")
	got := []string{n.Next(), n.Next(), n.Next()}
	want := []string{"b", "d", "e"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("names = %v, want %v", got, want)
		}
	}
	if n.Count() != 5 {
		t.Errorf("Count() = %d, want 5", n.Count())
	}
}

func TestShadowing(t *testing.T) {
	s := New()
	outer := s.Register("x")
	s.Push()
	inner := s.Register("x")
	if inner == outer {
		t.Fatalf("shadowing binding reused %q", outer)
	}
	if got := s.Lookup("x"); got != inner {
		t.Errorf("inner Lookup(x) = %q, want %q", got, inner)
	}
	if s.Depth() != 1 {
		t.Errorf("Depth() = %d, want 1", s.Depth())
	}
	s.Pop()
	if got := s.Lookup("x"); got != outer {
		t.Errorf("outer Lookup(x) = %q, want %q", got, outer)
	}
}

func TestLookupUnbound(t *testing.T) {
	s := New()
	s.Register("x")
	s.Push()
	if got, ok := s.Resolve("window"); ok || got != "window" {
		t.Errorf("Resolve(window) = %q, %v; want window, false", got, ok)
	}
	if got := s.Lookup("x"); got != "a" {
		t.Errorf("Lookup(x) = %q, want a", got)
	}
	if _, ok := s.Declared("x"); ok {
		t.Errorf("x reported as declared in the inner frame")
	}
}

func TestSharedNamer(t *testing.T) {
	n := NewNamer()
	first := NewWithNamer(n)
	second := NewWithNamer(n)
	if a, b := first.Register("x"), second.Register("x"); a == b {
		t.Errorf("scopes sharing a namer both produced %q", a)
	}
}

func TestPopRootPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Errorf("Pop on the root frame did not panic")
		}
	}()
	New().Pop()
}
