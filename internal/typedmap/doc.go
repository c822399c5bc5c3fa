// Package typedmap provides an immutable, insertion-ordered associative
// container keyed by a classification key (a type identity or a scalar tag).
//
// A Map is built once from a list of pairs and never mutated afterwards.
// Building with a repeated key fails, and so does looking up a key that is not
// present; there is no default-value fallback. "Modifying" a map means building
// a new one with With.
package typedmap
