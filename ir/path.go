package ir

import (
	"fmt"
	"strconv"
	"strings"
)

// Path renders the location of y from the document root, e.g. $.center[2].
func (y *Node) Path() string {
	if y.Parent == nil {
		return "$"
	}
	switch y.Parent.Kind {
	case MappingKind:
		if y.ParentIndex < len(y.Parent.Fields) && y.Parent.Fields[y.ParentIndex] == y {
			return y.Parent.Path() + "<key " + strconv.Itoa(y.ParentIndex) + ">"
		}
		f := y.ParentField
		prefix := y.Parent.Path() + "."
		if f != "" && strings.IndexAny(f, "'.*$[] ") == -1 {
			return prefix + f
		}
		return prefix + "'" + strings.Replace(f, "'", "\\'", -1) + "'"
	case SequenceKind:
		return y.Parent.Path() + "[" + strconv.Itoa(y.ParentIndex) + "]"
	default:
		panic("parent but not in container")
	}
}

// Describe renders the path and position of y for diagnostics.
func (y *Node) Describe() string {
	if !y.Pos.IsValid() {
		return y.Path()
	}
	return fmt.Sprintf("%s (%s)", y.Path(), y.Pos)
}
