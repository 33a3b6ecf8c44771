// Package details compiles documentation sources into canonical per-method
// records.
//
// A documented class is described by three independently authored sources:
//
//   - the declaration, holding parameter types, return types, generic
//     templates and inheritance between methods;
//   - the decoration, holding cross references ("see"), links, manual links
//     and thrown exceptions, including the "*" record applied to every
//     decorated method and the "see" and "throws" groups;
//   - the definition, holding the prose: method definitions, return
//     descriptions (plain or per return type variant) and constants used in
//     variant descriptions.
//
// Sources are JSON (comments and trailing commas allowed) or YAML, decoded
// into the insertion-ordered [Map] so that parameter and variant order
// follows the source document.
//
// [Build] validates each source against a fixed grammar, resolves one level
// of inheritance in declarations and definitions, normalizes parameter
// shorthand with [NormalizeParam], expands decorations with [Expand],
// substitutes ":name" constants into variant returns and merges the three
// results with [Merge]. Sources must contribute disjoint keys for a method:
// any overlap fails with [ErrDuplicateKey].
//
// The result is a [Details] value holding one [Detail] per method, with
// every optional field filled in. A [Details] value belongs to a single
// compilation and is never shared between templates.
//
// Parameter shorthand accepts three forms:
//
//	"string"                                 // a single type
//	["string", "int", "optional", "&ref"]   // a union with modifiers
//	{"type": "int", "flags": ["FLAG_ONE"]}   // a record
//
// A record may instead list "bit-sum" flags, which is the same as an
// optional int parameter with those flags.
package details
