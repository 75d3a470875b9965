package parse

import (
	"fmt"

	"github.com/signadot/typeconf/format"
	"github.com/signadot/typeconf/ir"
)

// Parse parses the first document of d. The format defaults to YAML, which
// also accepts JSON.
func Parse(d []byte, opts ...ParseOption) (*ir.Node, error) {
	docs, err := ParseAll(d, opts...)
	if err != nil {
		return nil, err
	}
	if len(docs) == 0 {
		return nil, ErrNoDoc
	}
	return docs[0], nil
}

// ParseAll parses every document of d. HCL input always yields exactly one.
func ParseAll(d []byte, opts ...ParseOption) ([]*ir.Node, error) {
	o := newOpts(opts)
	switch o.format {
	case format.YAMLFormat, format.JSONFormat:
		return parseYAML(d, o)
	case format.HCLFormat:
		n, err := parseHCL(d, o)
		if err != nil {
			return nil, err
		}
		return []*ir.Node{n}, nil
	default:
		return nil, fmt.Errorf("%w: %s", format.ErrBadFormat, o.format)
	}
}
