package parse

import (
	"github.com/signadot/typeconf/format"
)

type parseOpts struct {
	format format.Format
	file   string
	env    map[string]string
}

type ParseOption func(*parseOpts)

func ParseYAML() ParseOption {
	return ParseFormat(format.YAMLFormat)
}
func ParseJSON() ParseOption {
	return ParseFormat(format.JSONFormat)
}
func ParseHCL() ParseOption {
	return ParseFormat(format.HCLFormat)
}
func ParseFormat(f format.Format) ParseOption {
	return func(o *parseOpts) { o.format = f }
}

// ParseFile records name as the file of every node position.
func ParseFile(name string) ParseOption {
	return func(o *parseOpts) { o.file = name }
}

// ParseEnv exposes env to HCL expressions as the env object.
func ParseEnv(env map[string]string) ParseOption {
	return func(o *parseOpts) { o.env = env }
}

func newOpts(opts []ParseOption) *parseOpts {
	res := &parseOpts{}
	for _, f := range opts {
		f(res)
	}
	return res
}
