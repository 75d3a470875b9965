package ir

import "fmt"

// Kind classifies a node's shape.
type Kind int

const (
	ScalarKind Kind = iota
	SequenceKind
	MappingKind
)

func (k Kind) String() string {
	s, ok := map[Kind]string{
		ScalarKind:   "scalar",
		SequenceKind: "sequence",
		MappingKind:  "mapping",
	}[k]
	if ok {
		return s
	}
	return "<unknown kind>"
}

func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

func (k *Kind) UnmarshalText(d []byte) error {
	kk, ok := map[string]Kind{
		"scalar":   ScalarKind,
		"sequence": SequenceKind,
		"mapping":  MappingKind,
	}[string(d)]
	if !ok {
		return fmt.Errorf("unrecognized kind %q", d)
	}
	*k = kk
	return nil
}

func Kinds() []Kind {
	return []Kind{ScalarKind, SequenceKind, MappingKind}
}

func (k Kind) IsLeaf() bool {
	return k == ScalarKind
}
