package ir

import "fmt"

// Pos is the source position of a node. Line and Column are 1-based; a zero
// Line means the node was built in code rather than parsed.
type Pos struct {
	File   string
	Line   int
	Column int
	Offset int
}

func (p Pos) IsValid() bool { return p.Line > 0 }

func (p Pos) String() string {
	if !p.IsValid() {
		if p.File != "" {
			return p.File
		}
		return "-"
	}
	if p.File == "" {
		return fmt.Sprintf("%d:%d", p.Line, p.Column)
	}
	return fmt.Sprintf("%s:%d:%d", p.File, p.Line, p.Column)
}
