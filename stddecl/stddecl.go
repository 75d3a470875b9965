package stddecl

import (
	"slices"

	"github.com/signadot/typeconf/gomap"
)

type options struct {
	worlds []string
}

// Option configures the declarator.
type Option func(*options)

// KnownWorlds restricts location worlds to names. Without it any world name
// is accepted.
func KnownWorlds(names ...string) Option {
	return func(o *options) { o.worlds = append(o.worlds, names...) }
}

type declarator struct {
	o *options
}

// Declarator returns the declarator of the built-in types.
func Declarator(opts ...Option) gomap.Declarator {
	o := &options{}
	for _, f := range opts {
		f(o)
	}
	return &declarator{o: o}
}

func (d *declarator) Name() string { return "stddecl" }

func (d *declarator) Constructors() []*gomap.Constructor {
	return []*gomap.Constructor{
		positionConstructor(),
		colorConstructor(),
		soundConstructor(),
		materialConstructor(),
		locationConstructor(d.knownWorld),
		enchantmentConstructor(),
	}
}

func (d *declarator) knownWorld(name string) bool {
	return len(d.o.worlds) == 0 || slices.Contains(d.o.worlds, name)
}
