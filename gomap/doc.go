// Package gomap decodes document nodes into typed Go values.
//
// # Usage
//
//	type Position struct{ X, Y, Z float64 }
//
//	var (
//	    px = gomap.Required("x", gomap.Float64())
//	    py = gomap.Required("y", gomap.Float64())
//	    pz = gomap.Default("z", gomap.Float64(), 0)
//	)
//
//	func (Position) ConfigConstructor() *gomap.Constructor {
//	    return gomap.Object[Position](px, py, pz).Inline().
//	        Build(func(a *gomap.Args) (Position, error) {
//	            return Position{px.Get(a), py.Get(a), pz.Get(a)}, nil
//	        })
//	}
//
//	r := gomap.NewRegistry()
//	pos, err := gomap.Decode[Position](r, node)
//
// A [Registry] compiles each type's [Constructor] once into an
// [ObjectDescriptor]. Types outside your control are declared through a
// [Declarator] passed to [Registry.Import]. Container, optional and lazy
// values are described with [ListOf], [MapOf], [OptionalOf], [LazyOf] and
// friends; [Registry.ParserFor] turns such a [Desc] into a [Parser].
//
// Failures are *[Error] values whose Kind is one of the Err* sentinels and
// whose Locations grow as they propagate outward.
//
// # Related Packages
//
//   - github.com/signadot/typeconf/ir - document nodes
//   - github.com/signadot/typeconf/placeholder - lazy values
package gomap
