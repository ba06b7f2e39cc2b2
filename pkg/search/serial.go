package search

import "strings"

// NormalizeSerial reduces a serial number to its comparison form: dashes and
// spaces removed, leading zeros stripped (keeping at least one character),
// uppercased. Serial matching is exact on this form only; serials are short
// alphanumeric codes where fuzzy or partial matching drowns the caller in
// false positives, so normalization absorbs formatting variance and nothing
// more.
func NormalizeSerial(serial string) string {
	if serial == "" {
		return ""
	}
	normalized := strings.NewReplacer("-", "", " ", "").Replace(serial)
	for len(normalized) > 1 && normalized[0] == '0' {
		normalized = normalized[1:]
	}
	return strings.ToUpper(normalized)
}
