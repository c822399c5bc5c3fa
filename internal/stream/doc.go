// Package stream implements the token-accumulating format builder.
//
// Tokens are pushed in call order. Finishing the builder classifies each
// token, resolves every substitution's format fragment through a
// kind.Formats table, concatenates the fragments into one format string and
// hands that string plus the substituted values, in their original order, to
// a sink. A finished builder rejects further use.
//
//	b := stream.New[any](kind.DefaultFormats())
//	err := b.Lit("X=").Sub(7, kind.Int).Lit(", Y=").Sub(9, kind.Int).Finish(sink)
//	// sink("X=%d, Y=%d", 7, 9)
package stream
