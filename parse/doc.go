// Package parse turns YAML, JSON or HCL text into [ir.Node] documents.
//
// YAML and JSON are read with goccy/go-yaml. Plain scalars are tagged with
// the YAML 1.1 rules of [ir.ResolveTag], so "yes" is a boolean and "0x10" an
// integer, while quoted scalars are always strings. Anchors, aliases and "<<"
// merge keys are expanded. Duplicate keys are kept so that decoders can
// report both positions.
//
// HCL is read with hashicorp/hcl/v2. Attributes become mapping entries, and
// blocks are grouped by type: labeled blocks nest by label and repeated
// unlabeled blocks form a sequence.
package parse
