package search

import (
	"fmt"
	"strings"
)

// ArgList collects positional query arguments while SQL fragments are
// composed, handing out $n placeholders in order.
type ArgList struct {
	args []any
}

// Add appends a value and returns its $n placeholder.
func (l *ArgList) Add(value any) string {
	l.args = append(l.args, value)
	return fmt.Sprintf("$%d", len(l.args))
}

// Values returns the collected arguments in placeholder order.
func (l *ArgList) Values() []any {
	return l.args
}

// FuzzyCondition builds a predicate matching search terms against a single
// column. Terms of three or more characters use pg_trgm similarity at the
// given threshold; shorter terms fall back to ILIKE substring matching, since
// trigram scores on one- and two-character terms are meaningless. Returns ""
// when there is nothing to match.
func FuzzyCondition(terms []string, column string, threshold float64, args *ArgList) string {
	if len(terms) == 0 {
		return ""
	}

	clauses := make([]string, 0, len(terms))
	for _, term := range terms {
		if len(term) >= 3 {
			p1 := args.Add(term)
			p2 := args.Add(threshold)
			clauses = append(clauses, fmt.Sprintf("similarity(LOWER(%s), LOWER(%s)) > %s", column, p1, p2))
		} else {
			p := args.Add("%" + term + "%")
			clauses = append(clauses, fmt.Sprintf("LOWER(%s) ILIKE LOWER(%s)", column, p))
		}
	}
	return "(" + strings.Join(clauses, " OR ") + ")"
}

// MultiFieldCondition matches terms against several columns, any of which
// satisfies the predicate. A query token may belong to models.name or
// product_lines.name; the caller cannot tell, so neither does the SQL.
func MultiFieldCondition(terms []string, columns []string, threshold float64, args *ArgList) string {
	if len(terms) == 0 || len(columns) == 0 {
		return ""
	}

	clauses := make([]string, 0, len(columns))
	for _, column := range columns {
		if c := FuzzyCondition(terms, column, threshold, args); c != "" {
			clauses = append(clauses, c)
		}
	}
	if len(clauses) == 0 {
		return ""
	}
	return "(" + strings.Join(clauses, " OR ") + ")"
}
