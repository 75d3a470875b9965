// Package typeconf decodes configuration documents into Go values driven by
// the target type.
//
// Types declare how they are built by implementing [gomap.Declared], or are
// declared from outside through a [gomap.Declarator]. A registry synthesizes
// one parser per type on first use and shares it afterwards:
//
//	type Arena struct {
//		Name  string
//		Spawn stddecl.Position
//	}
//
//	var (
//		arenaName  = gomap.Required("name", gomap.String())
//		arenaSpawn = gomap.Required("spawn", gomap.Custom[stddecl.Position]())
//	)
//
//	func (Arena) ConfigConstructor() *gomap.Constructor {
//		return gomap.Object[Arena](arenaName, arenaSpawn).Build(func(a *gomap.Args) (Arena, error) {
//			return Arena{Name: arenaName.Get(a), Spawn: arenaSpawn.Get(a)}, nil
//		})
//	}
//
//	arena, err := typeconf.LoadFile[Arena](typeconf.Default(), "arenas/castle.yml")
//
// Subpackages hold the pieces: [ir] the document node, [parse] the YAML,
// JSON and HCL front ends, [gomap] the engine, [placeholder] lazily resolved
// values, [stddecl] the built-in declarator, [config] hand-read sections and
// [load] file and folder loading.
package typeconf

import (
	"sync"

	"github.com/signadot/typeconf/gomap"
	"github.com/signadot/typeconf/ir"
	"github.com/signadot/typeconf/load"
	"github.com/signadot/typeconf/stddecl"
)

// NewRegistry returns a registry with the built-in declarator imported.
func NewRegistry(opts ...gomap.RegistryOption) *gomap.Registry {
	r := gomap.NewRegistry(opts...)
	if err := r.Import(stddecl.Declarator()); err != nil {
		// a fresh registry holds nothing to conflict with
		panic(err)
	}
	return r
}

var defaultRegistry = sync.OnceValue(func() *gomap.Registry {
	return NewRegistry()
})

// Default returns the process wide registry.
func Default() *gomap.Registry {
	return defaultRegistry()
}

// Parse decodes node as T.
func Parse[T any](r *gomap.Registry, node *ir.Node) (T, error) {
	return gomap.Decode[T](r, node)
}

// ParseBytes parses d and decodes it as T.
func ParseBytes[T any](r *gomap.Registry, d []byte, opts ...gomap.FromOption) (T, error) {
	return gomap.ParseBytes(r, d, gomap.Custom[T](), opts...)
}

// LoadFile decodes the file at path as T.
func LoadFile[T any](r *gomap.Registry, path string) (T, error) {
	return load.File(r, path, gomap.Custom[T]())
}

// LoadFolder decodes the configuration files of dir as T, keyed by file id.
func LoadFolder[T any](r *gomap.Registry, dir string) (map[string]T, error) {
	return load.Folder(r, dir, gomap.Custom[T]())
}
