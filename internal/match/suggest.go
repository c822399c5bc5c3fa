package match

import (
	"cmp"
	"slices"
)

// DefaultThreshold is the minimum similarity for a suggestion.
const DefaultThreshold = 0.6

// MaxSuggestions caps the number of names Suggest returns.
const MaxSuggestions = 3

// Suggest returns the candidates whose folded form is at least threshold
// similar to the folded name, most similar first. Ties keep candidate order.
// The name itself is never suggested.
func Suggest(name string, candidates []string, threshold float64) []string {
	type scored struct {
		name  string
		score float64
	}

	folded := Fold(name)

	var hits []scored

	for _, c := range candidates {
		if c == name {
			continue
		}

		if score := Similarity(folded, Fold(c)); score >= threshold {
			hits = append(hits, scored{name: c, score: score})
		}
	}

	slices.SortStableFunc(hits, func(a, b scored) int {
		return cmp.Compare(b.score, a.score)
	})

	out := make([]string, 0, min(len(hits), MaxSuggestions))
	for _, h := range hits[:min(len(hits), MaxSuggestions)] {
		out = append(out, h.name)
	}

	return out
}
