package engine

import (
	"fmt"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// ============================================================================
// FILTERS — Keyword substring filtering over free-text columns
// ============================================================================
// Single pass: the designated columns are rendered as text and lower-cased,
// then a row is kept when ANY column contains ANY keyword.
// The result is a fresh Table; no row slice is shared with the input.
// ============================================================================

// FilterKeywords returns the rows of t matching at least one keyword in at
// least one designated text column, in original order.
//
// In the returned table the designated columns hold their lower-cased text
// rendering (a missing value becomes "nan") and have KindText.
func FilterKeywords(t *Table, opts ...Option) (*Table, error) {
	cfg := applyOptions(opts)
	lower := cases.Lower(language.Und)

	targets := make([]int, 0, len(cfg.TextColumns))
	for _, name := range cfg.TextColumns {
		j, ok := t.ColumnIndex(name)
		if !ok {
			return nil, fmt.Errorf("keyword filter: %w %q", ErrMissingColumn, name)
		}
		targets = append(targets, j)
	}

	keywords := make([]string, 0, len(cfg.Keywords))
	for _, kw := range cfg.Keywords {
		if kw = lower.String(kw); kw != "" {
			keywords = append(keywords, kw)
		}
	}

	columns := t.Columns()
	for _, j := range targets {
		columns[j].Kind = KindText
	}

	rows := make([][]Cell, 0, t.Len())
	for i := 0; i < t.Len(); i++ {
		row := make([]Cell, len(columns))
		for j := range columns {
			row[j] = t.Cell(i, j)
		}

		match := false
		for _, j := range targets {
			text := lower.String(RenderCell(row[j], t.columns[j].Kind))
			row[j] = Cell{Raw: text}
			if !match && matchesKeywords(text, keywords) {
				match = true
			}
		}
		if match {
			rows = append(rows, row)
		}
	}

	return NewTable(columns, rows), nil
}

// matchesKeywords reports whether text contains any non-empty keyword.
// Both sides are expected lower-cased already.
func matchesKeywords(text string, keywords []string) bool {
	for _, kw := range keywords {
		if kw != "" && strings.Contains(text, kw) {
			return true
		}
	}
	return false
}
