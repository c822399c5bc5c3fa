package seq

// Fold reduces s with combine, strictly left to right, starting from init:
// Fold([a, b, c], z, f) == f(f(f(z, a), b), c).
func Fold[S ~[]E, E, A any](s S, init A, combine func(A, E) A) A {
	acc := init
	for _, e := range s {
		acc = combine(acc, e)
	}

	return acc
}

// Concat joins fragments in order.
func Concat[S ~[]E, E ~string](fragments S) string {
	return Fold(fragments, "", func(acc string, frag E) string {
		return acc + string(frag)
	})
}
