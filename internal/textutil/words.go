package textutil

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
)

// WordSet returns the case-folded set of maximal letter/digit runs in text.
func WordSet(text string) map[string]struct{} {
	folded := cases.Fold().String(text)
	words := strings.FieldsFunc(folded, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	set := make(map[string]struct{}, len(words))
	for _, w := range words {
		set[w] = struct{}{}
	}
	return set
}

// Words returns the case-folded letter/digit runs of text in order.
func Words(text string) []string {
	folded := cases.Fold().String(text)
	return strings.FieldsFunc(folded, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}

// OverlapRatio is |words(candidate) ∩ words(reference)| / |words(candidate)|.
// An empty candidate yields 0.
func OverlapRatio(candidate, reference string) float64 {
	cand := WordSet(candidate)
	if len(cand) == 0 {
		return 0
	}
	ref := WordSet(reference)
	shared := 0
	for w := range cand {
		if _, ok := ref[w]; ok {
			shared++
		}
	}
	return float64(shared) / float64(len(cand))
}
