package engine

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
)

// ============================================================================
// AGGREGATORS — Count per year, sorted ascending
// ============================================================================

// CountByYear groups the rows of t by the year column and counts them.
// Years without rows do not appear. Every year value must coerce to an
// integer (an integral float such as "2019.0" is accepted).
func CountByYear(t *Table, opts ...Option) ([]YearCount, error) {
	cfg := applyOptions(opts)

	j, ok := t.ColumnIndex(cfg.YearColumn)
	if !ok {
		return nil, fmt.Errorf("count by year: %w %q", ErrMissingColumn, cfg.YearColumn)
	}

	counts := make(map[int]int)
	for i := 0; i < t.Len(); i++ {
		year, err := ParseYear(t.Cell(i, j))
		if err != nil {
			return nil, fmt.Errorf("count by year: row %d: %w", i+1, err)
		}
		counts[year]++
	}

	out := make([]YearCount, 0, len(counts))
	for year, n := range counts {
		out = append(out, YearCount{Ano: year, QuantidadeProjetos: n})
	}
	SortYearCounts(out)
	return out, nil
}

// ParseYear coerces a cell to an integer year.
func ParseYear(c Cell) (int, error) {
	if c.Null {
		return 0, fmt.Errorf("%w: missing year", ErrType)
	}
	raw := strings.TrimSpace(c.Raw)
	if n, err := strconv.Atoi(raw); err == nil {
		return n, nil
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, fmt.Errorf("%w: year %q is not numeric", ErrType, c.Raw)
	}
	if f != math.Trunc(f) {
		return 0, fmt.Errorf("%w: year %q is not an integer", ErrType, c.Raw)
	}
	return int(f), nil
}

// SortYearCounts orders buckets by year ascending.
func SortYearCounts(counts []YearCount) {
	sort.Slice(counts, func(i, j int) bool { return counts[i].Ano < counts[j].Ano })
}

// TotalProjects sums the bucket counts.
func TotalProjects(counts []YearCount) int {
	total := 0
	for _, c := range counts {
		total += c.QuantidadeProjetos
	}
	return total
}

// ============================================================================
// FORMATTING UTILITIES
// ============================================================================

// FormatInt formats an integer with comma separators.
func FormatInt(n int) string {
	if n < 0 {
		return "-" + FormatInt(-n)
	}
	if n < 1000 {
		return fmt.Sprintf("%d", n)
	}
	return fmt.Sprintf("%s,%03d", FormatInt(n/1000), n%1000)
}
