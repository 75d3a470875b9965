package parse

import (
	"fmt"

	"github.com/signadot/typeconf/ir"
)

var (
	ErrParse    = ir.ErrParse
	ErrKeyKind  = fmt.Errorf("%w: mapping keys must be scalars", ErrParse)
	ErrAlias    = fmt.Errorf("%w: unknown alias", ErrParse)
	ErrMerge    = fmt.Errorf("%w: merge value must be a mapping or a sequence of mappings", ErrParse)
	ErrNoDoc    = fmt.Errorf("%w: no document", ErrParse)
	ErrUnknown  = fmt.Errorf("%w: value is not known at parse time", ErrParse)
	ErrNodeType = fmt.Errorf("%w: unsupported node", ErrParse)
)
