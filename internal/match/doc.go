// Package match finds near misses among identifiers.
//
// It backs the "did you mean" suggestions attached to diagnostics: a
// misspelled parameter or package qualifier is compared against the names
// that are actually in scope, and the closest ones are offered.
//
//   - Distance: rune-level edit distance
//   - Fold: case and separator insensitive form of an identifier
//   - Suggest: close candidates ordered by similarity
package match
