package types

import (
	"fmt"
	"go/token"
)

// Change records one string literal whose quotes were rewritten.
type Change struct {
	Filename    string
	Original    string
	Replacement string
	Start       token.Position
	End         token.Position
}

// String renders the change as "file:line:col: original -> replacement".
func (c Change) String() string {
	return fmt.Sprintf("%s:%d:%d: %s -> %s", c.Filename, c.Start.Line, c.Start.Column, c.Original, c.Replacement)
}
