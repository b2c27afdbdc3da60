// Package value provides the dynamic value model shared by every other package.
//
// A Value is one of a closed set of variants: Null, Undefined, Bool, Number,
// String, *Array, *Object and DateTime. The interface is sealed, so a type
// switch over those eight variants is exhaustive.
//
// Key design constraints:
//   - Value trees are acyclic and own their children; Clone deep-copies
//   - Number keeps one canonical slot (int64, uint64, 128-bit or float64)
//   - Narrowing accessors return (v, false) instead of truncating
//   - Object ordering (insertion or sorted) is chosen at construction
//   - Nothing here locks; share a Value across goroutines only via Clone
//
// This package imports nothing internal. bridge, payload and codec build on
// its public surface only.
package value
