package errors

import (
	"fmt"

	"jspress/pkg/source"
)

// Position represents a specific location in the source code.
type Position struct {
	Line   int                // 1-based line number, 0 when unknown
	Column int                // 1-based column number
	Source *source.SourceFile // Reference to the source file, can be nil
}

// IsValid reports whether the position carries a line number.
func (p Position) IsValid() bool {
	return p.Line > 0
}

func (p Position) String() string {
	if p.Source != nil {
		return fmt.Sprintf("%s:%d:%d", p.Source.DisplayPath(), p.Line, p.Column)
	}
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// InFile returns a position that only names the file.
func InFile(src *source.SourceFile) Position {
	return Position{Source: src}
}
