// Package placeholder implements values whose text is completed at use time.
//
// A [Value] is either resolved, holding a value decoded when the document
// was read, or deferred, holding text with markers plus the decoder to run
// once the markers are substituted. Two marker forms are recognized:
//
//	%player_level%     looked up in the extras, then in the Context providers
//	$[vars.x + "!"]    an expr-lang expression over subject, vars and ph(id)
//
// Resolving never changes the Value, so one Value may be resolved for many
// subjects concurrently.
package placeholder
