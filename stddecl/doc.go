// Package stddecl declares configuration constructors for the game types
// every plugin configuration uses: positions, locations, colors, sounds,
// materials and enchantments.
//
// The types live here rather than declaring their own constructors so that a
// registry opts into them by importing [Declarator]:
//
//	r := gomap.NewRegistry()
//	if err := r.Import(stddecl.Declarator()); err != nil {
//		...
//	}
//	loc, err := gomap.Decode[stddecl.Location](r, node)
package stddecl
