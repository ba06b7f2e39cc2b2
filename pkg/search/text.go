package search

import (
	"regexp"
	"strconv"
	"strings"
)

// Years outside this range are never treated as year hints; a 4-digit token
// like "5150" stays part of the model name.
const (
	MinYear = 1900
	MaxYear = 2030
)

var (
	yearPattern       = regexp.MustCompile(`\b(19[0-9]{2}|20[0-2][0-9]|2030)\b`)
	invalidTermChars  = regexp.MustCompile(`[^a-z0-9\s\-]`)
	repeatedWhitespace = regexp.MustCompile(`\s+`)
)

// NormalizeTerm lowercases a search term, collapses whitespace, and strips
// everything except letters, digits, spaces, and hyphens.
func NormalizeTerm(term string) string {
	if term == "" {
		return ""
	}
	normalized := strings.ToLower(strings.TrimSpace(term))
	normalized = repeatedWhitespace.ReplaceAllString(normalized, " ")
	return invalidTermChars.ReplaceAllString(normalized, "")
}

// SplitTerms normalizes a search term and splits it into individual words.
func SplitTerms(term string) []string {
	fields := strings.Fields(NormalizeTerm(term))
	terms := make([]string, 0, len(fields))
	for _, f := range fields {
		if f != "" {
			terms = append(terms, f)
		}
	}
	return terms
}

// ExtractYears returns every plausible production year embedded in the text,
// in order of appearance.
func ExtractYears(text string) []int {
	if text == "" {
		return nil
	}
	matches := yearPattern.FindAllString(text, -1)
	years := make([]int, 0, len(matches))
	for _, m := range matches {
		y, err := strconv.Atoi(m)
		if err != nil {
			continue
		}
		years = append(years, y)
	}
	return years
}

// Query is the structured form of a free-text search request: the normalized
// tokens to match and the year to filter on, if any. A token may have come
// from a model name or a product line name; matching deliberately does not
// distinguish the two.
type Query struct {
	Terms []string
	Year  *int
}

// ParseQuery turns raw search text plus an optional explicit year parameter
// into a Query. An explicit year always wins; otherwise the first year
// embedded in the text becomes the filter and year tokens are dropped from
// the term set so "Les Paul 1959" matches like "Les Paul" with year=1959.
func ParseQuery(text string, explicitYear *int) Query {
	terms := SplitTerms(text)

	if explicitYear != nil {
		y := *explicitYear
		return Query{Terms: terms, Year: &y}
	}

	extracted := ExtractYears(text)
	if len(extracted) == 0 {
		return Query{Terms: terms}
	}

	year := extracted[0]
	inText := make(map[int]bool, len(extracted))
	for _, y := range extracted {
		inText[y] = true
	}

	kept := make([]string, 0, len(terms))
	for _, term := range terms {
		if y, err := strconv.Atoi(term); err == nil && inText[y] {
			continue
		}
		kept = append(kept, term)
	}
	return Query{Terms: kept, Year: &year}
}
