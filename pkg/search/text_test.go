package search

import (
	"reflect"
	"testing"
)

func TestNormalizeTerm(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "empty", input: "", expected: ""},
		{name: "lowercases", input: "Les Paul", expected: "les paul"},
		{name: "trims and collapses whitespace", input: "  Les   Paul  ", expected: "les paul"},
		{name: "strips punctuation", input: "Les Paul (Standard)!", expected: "les paul standard"},
		{name: "keeps hyphens and digits", input: "SG-61 Reissue", expected: "sg-61 reissue"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NormalizeTerm(tt.input); got != tt.expected {
				t.Errorf("NormalizeTerm(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestSplitTerms(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []string
	}{
		{name: "empty", input: "", expected: []string{}},
		{name: "multi word", input: "Les Paul Standard", expected: []string{"les", "paul", "standard"}},
		{name: "punctuation and spacing", input: "  Strat*ocaster,  Deluxe ", expected: []string{"stratocaster", "deluxe"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SplitTerms(tt.input); !reflect.DeepEqual(got, tt.expected) {
				t.Errorf("SplitTerms(%q) = %v, want %v", tt.input, got, tt.expected)
			}
		})
	}
}

func TestExtractYears(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []int
	}{
		{name: "no year", input: "Les Paul Standard", expected: nil},
		{name: "embedded year", input: "Les Paul 1959", expected: []int{1959}},
		{name: "multiple years", input: "1959 reissue of the 1952 goldtop", expected: []int{1959, 1952}},
		{name: "range boundaries", input: "1900 2030", expected: []int{1900, 2030}},
		{name: "below range", input: "model 1899", expected: nil},
		{name: "above range", input: "model 2031", expected: nil},
		{name: "four digits that are not a year", input: "EVH 5150", expected: nil},
		{name: "digits inside a longer number", input: "serial 119590", expected: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ExtractYears(tt.input)
			if !reflect.DeepEqual(got, tt.expected) {
				t.Errorf("ExtractYears(%q) = %v, want %v", tt.input, got, tt.expected)
			}
		})
	}
}

func TestParseQuery(t *testing.T) {
	intp := func(v int) *int { return &v }

	t.Run("extracted year becomes the filter and leaves the terms", func(t *testing.T) {
		q := ParseQuery("Les Paul 1959", nil)
		if !reflect.DeepEqual(q.Terms, []string{"les", "paul"}) {
			t.Errorf("terms = %v, want [les paul]", q.Terms)
		}
		if q.Year == nil || *q.Year != 1959 {
			t.Errorf("year = %v, want 1959", q.Year)
		}
	})

	t.Run("explicit year wins over embedded year", func(t *testing.T) {
		q := ParseQuery("Les Paul 1959", intp(1960))
		if q.Year == nil || *q.Year != 1960 {
			t.Errorf("year = %v, want 1960", q.Year)
		}
		// With an explicit year the embedded token is left alone.
		if !reflect.DeepEqual(q.Terms, []string{"les", "paul", "1959"}) {
			t.Errorf("terms = %v, want [les paul 1959]", q.Terms)
		}
	})

	t.Run("no year anywhere", func(t *testing.T) {
		q := ParseQuery("Firebird III", nil)
		if q.Year != nil {
			t.Errorf("year = %v, want nil", *q.Year)
		}
		if !reflect.DeepEqual(q.Terms, []string{"firebird", "iii"}) {
			t.Errorf("terms = %v, want [firebird iii]", q.Terms)
		}
	})

	t.Run("first embedded year is used", func(t *testing.T) {
		q := ParseQuery("1959 reissue 1952", nil)
		if q.Year == nil || *q.Year != 1959 {
			t.Errorf("year = %v, want 1959", q.Year)
		}
		if !reflect.DeepEqual(q.Terms, []string{"reissue"}) {
			t.Errorf("terms = %v, want [reissue]", q.Terms)
		}
	})
}
