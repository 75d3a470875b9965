// Package encode renders document nodes as YAML or JSON text.
//
// # Usage
//
//	node, _ := parse.Parse(data)
//	err := encode.Encode(node, os.Stdout)
//
//	// annotate every value with its tag and source position, in color
//	err = encode.Encode(node, os.Stdout,
//		encode.EncodeTags(true),
//		encode.EncodePositions(true),
//		encode.EncodeColors(encode.NewColors()))
//
// JSON output normalizes YAML number spellings (0x1F, 1_000) and quotes
// values JSON has no literal for, such as .inf or timestamps.
package encode
