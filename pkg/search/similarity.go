package search

import "strings"

// Similarity computes trigram similarity between two strings in [0, 1],
// mirroring PostgreSQL's pg_trgm similarity(): both inputs are normalized,
// each word is padded and decomposed into 3-grams, and the score is the size
// of the trigram intersection over the union. Identical normalized strings
// score 1. The SQL side does the heavy matching through pg_trgm itself; this
// implementation keeps the threshold semantics testable without a database.
func Similarity(a, b string) float64 {
	ta := trigramSet(a)
	tb := trigramSet(b)
	if len(ta) == 0 || len(tb) == 0 {
		return 0
	}

	shared := 0
	for t := range ta {
		if _, ok := tb[t]; ok {
			shared++
		}
	}
	union := len(ta) + len(tb) - shared
	return float64(shared) / float64(union)
}

// trigramSet returns the deduplicated trigrams of a normalized string. As in
// pg_trgm, each word is padded with two leading and one trailing space so
// word boundaries contribute trigrams of their own.
func trigramSet(s string) map[string]struct{} {
	set := make(map[string]struct{})
	for _, word := range strings.Fields(NormalizeTerm(s)) {
		padded := "  " + word + " "
		for i := 0; i+3 <= len(padded); i++ {
			set[padded[i:i+3]] = struct{}{}
		}
	}
	return set
}
