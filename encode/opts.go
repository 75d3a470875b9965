package encode

import "github.com/signadot/typeconf/format"

type EncodeOption func(*EncState)

func EncodeFormat(f format.Format) EncodeOption {
	return func(es *EncState) { es.format = f }
}

// EncodeTags writes the tag of every node, not only explicit ones.
func EncodeTags(v bool) EncodeOption {
	return func(es *EncState) { es.tags = v }
}

// EncodePositions appends the source position of each node as a comment.
// It has no effect on JSON output.
func EncodePositions(v bool) EncodeOption {
	return func(es *EncState) { es.positions = v }
}

func EncodeColors(c *Colors) EncodeOption {
	return func(es *EncState) { es.Color = c.Color }
}

func Indent(n int) EncodeOption {
	return func(es *EncState) { es.indent = n }
}
