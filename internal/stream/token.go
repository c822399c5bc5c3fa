package stream

import (
	"fmt"

	"format-generator/internal/kind"
)

//go:generate go tool stringer -type=TokenKind -linecomment -output=tokenkind_string.go

// TokenKind discriminates the two token variants.
type TokenKind int

const (
	TokenUnknown      TokenKind = iota // unknown
	TokenLiteral                       // literal
	TokenSubstitution                  // substitution
)

// Token is either a literal format fragment or a substituted value carrying
// its classification key.
type Token[V any] struct {
	kind  TokenKind
	text  string
	value V
	key   kind.Key
}

// Literal returns a token that passes text through unchanged.
func Literal[V any](text string) Token[V] {
	return Token[V]{kind: TokenLiteral, text: text}
}

// Substitution returns a token for value, classified by key.
func Substitution[V any](value V, key kind.Key) Token[V] {
	return Token[V]{kind: TokenSubstitution, value: value, key: key}
}

// Auto classifies v by its dynamic type.
func Auto(v any) Token[any] {
	return Substitution[any](v, kind.Of(v))
}

// Kind returns the token variant.
func (t Token[V]) Kind() TokenKind { return t.kind }

// IsLiteral reports whether t is a literal fragment.
func (t Token[V]) IsLiteral() bool { return t.kind == TokenLiteral }

// IsSubstitution reports whether t carries a value.
func (t Token[V]) IsSubstitution() bool { return t.kind == TokenSubstitution }

// Text returns the literal text. Empty for substitutions.
func (t Token[V]) Text() string { return t.text }

// Value returns the substituted value. Zero for literals.
func (t Token[V]) Value() V { return t.value }

// Key returns the classification key of a substitution.
func (t Token[V]) Key() kind.Key { return t.key }

// String returns a short description for diagnostics.
func (t Token[V]) String() string {
	if t.IsLiteral() {
		return fmt.Sprintf("literal(%q)", t.text)
	}

	return fmt.Sprintf("substitution(%v: %s)", t.value, t.key)
}
