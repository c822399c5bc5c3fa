package seq

import (
	"fmt"
)

// Classify evaluates pred exactly once per slot, in order, and returns the results.
// The predicate must decide from the slot alone.
func Classify[S ~[]E, E any](s S, pred func(E) bool) []bool {
	mask := make([]bool, len(s))
	for i, e := range s {
		mask[i] = pred(e)
	}

	return mask
}

// IndexMap computes, for every true slot of mask, its position in the compacted
// output. Slots that are false map to -1. count is the number of true slots.
//
// The mapping over kept slots is strictly increasing and covers 0..count-1.
func IndexMap(mask []bool) (indices []int, count int) {
	indices = make([]int, len(mask))
	for i, keep := range mask {
		if keep {
			indices[i] = count
			count++
		} else {
			indices[i] = -1
		}
	}

	return indices, count
}

// Partition splits s by mask into matched and unmatched slots. Both outputs
// keep the relative order of their source slots.
func Partition[S ~[]E, E any](s S, mask []bool) (matched, unmatched S, err error) {
	if len(mask) != len(s) {
		return nil, nil, fmt.Errorf("partition: mask has %d entries for %d slots", len(mask), len(s))
	}

	indices, count := IndexMap(mask)

	matched = make(S, count)
	unmatched = make(S, len(s)-count)

	kept := 0
	for i, e := range s {
		if j := indices[i]; j >= 0 {
			matched[j] = e
			kept = j + 1
		} else {
			unmatched[i-kept] = e
		}
	}

	return matched, unmatched, nil
}

// Filter keeps the slots of s for which pred holds, preserving order.
func Filter[S ~[]E, E any](s S, pred func(E) bool) S {
	matched, _, _ := Partition(s, Classify(s, pred))

	return matched
}

// Remove drops the slots of s for which pred holds, preserving order.
func Remove[S ~[]E, E any](s S, pred func(E) bool) S {
	_, unmatched, _ := Partition(s, Classify(s, pred))

	return unmatched
}

// Adjust returns a copy of s where every slot satisfying pred is replaced by f(slot).
func Adjust[S ~[]E, E any](s S, pred func(E) bool, f func(E) E) S {
	out := make(S, len(s))
	for i, e := range s {
		if pred(e) {
			e = f(e)
		}

		out[i] = e
	}

	return out
}

// Map applies f to every slot, in order.
func Map[S ~[]E, E, R any](s S, f func(E) R) []R {
	out := make([]R, len(s))
	for i, e := range s {
		out[i] = f(e)
	}

	return out
}

// ForEach calls f for every slot, in order.
func ForEach[S ~[]E, E any](s S, f func(int, E)) {
	for i, e := range s {
		f(i, e)
	}
}

// Not negates a predicate.
func Not[E any](pred func(E) bool) func(E) bool {
	return func(e E) bool { return !pred(e) }
}

// Zipped is one positional pair produced by Zip.
type Zipped[A, B any] struct {
	First  A
	Second B
}

// Zip pairs a and b positionally. Both sequences must have the same length.
func Zip[A, B any](a []A, b []B) ([]Zipped[A, B], error) {
	if len(a) != len(b) {
		return nil, fmt.Errorf("zip: length mismatch %d != %d", len(a), len(b))
	}

	out := make([]Zipped[A, B], len(a))
	for i := range a {
		out[i] = Zipped[A, B]{First: a[i], Second: b[i]}
	}

	return out, nil
}
