package doctree

import "fmt"

// Warning is a non-fatal diagnostic collected during a compile. Degraded
// compiles return a complete document plus a list of warnings.
type Warning struct {
	Pos Position
	Msg string
}

func (w Warning) String() string {
	return fmt.Sprintf("%d:%d: %s", w.Pos.Line, w.Pos.Col, w.Msg)
}
