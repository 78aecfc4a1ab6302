// Package ruby provides the document-level domain types and text scanners
// used by the Sorbet capability adapter.
//
// The package is a pure leaf: it has no dependencies beyond the standard
// library and performs no I/O. It covers three concerns:
//
//   - Protocol types (Position, Range, Location, Hover, TypeInfo) shared
//     between the adapter and its consumers.
//
//   - Sigil scanners that detect a file's `# typed:` strictness level and
//     whether it opts into Sorbet signatures at all.
//
//   - URI accessibility filtering, which rejects locations pointing at
//     synthetic resources an editor cannot actually open.
package ruby
