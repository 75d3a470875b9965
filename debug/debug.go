package debug

import (
	"os"
	"strconv"
)

type debug struct {
	Synth bool
	Parse bool
	Lazy  bool
}

var d *debug

func init() {
	d = &debug{}
	d.Synth = boolEnv("TYPECONF_DEBUG_SYNTH")
	d.Parse = boolEnv("TYPECONF_DEBUG_PARSE")
	d.Lazy = boolEnv("TYPECONF_DEBUG_LAZY")
}

func boolEnv(v string) bool {
	x := os.Getenv(v)
	if x == "" {
		return false
	}
	b, _ := strconv.ParseBool(x)
	return b
}

// Synth reports whether parser synthesis and registration should be traced.
func Synth() bool {
	return d.Synth
}

// Parse reports whether object descriptor parses should be traced.
func Parse() bool {
	return d.Parse
}

// Lazy reports whether deferred value resolution should be traced.
func Lazy() bool {
	return d.Lazy
}
