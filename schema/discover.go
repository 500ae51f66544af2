package schema

import (
	"sort"
	"strconv"
	"strings"

	"github.com/spektr-org/projtrend/engine"
)

// ============================================================================
// AUTO-DISCOVERY — Column kind inference
// ============================================================================
// Mirrors how a dataframe reader coerces a delimited column:
//   1. Missing-value tokens ("", "NA", "nan", "null", ...) are nulls.
//   2. All non-null values parse as integers → int.
//   3. All non-null values parse as floats  → float.
//      An int column that has nulls is promoted to float.
//   4. Anything else → text.
// ============================================================================

// naTokens are the strings read as missing values.
var naTokens = map[string]bool{
	"":         true,
	"#N/A":     true,
	"#N/A N/A": true,
	"#NA":      true,
	"-1.#IND":  true,
	"-1.#QNAN": true,
	"-NaN":     true,
	"-nan":     true,
	"1.#IND":   true,
	"1.#QNAN":  true,
	"<NA>":     true,
	"N/A":      true,
	"NA":       true,
	"NULL":     true,
	"NaN":      true,
	"None":     true,
	"n/a":      true,
	"nan":      true,
	"null":     true,
}

// IsNull reports whether a raw field is a missing-value token.
func IsNull(raw string) bool {
	return naTokens[raw]
}

// Discover infers the schema of a table from its header and rows.
// Rows shorter than the header count the absent fields as nulls.
func Discover(name string, headers []string, rows [][]string) Config {
	config := Config{
		Name:           name,
		Rows:           len(rows),
		DiscoveredFrom: "CSV",
	}
	if config.Name == "" {
		config.Name = "Auto-discovered Dataset"
	}

	config.Columns = make([]ColumnMeta, len(headers))
	for i, header := range headers {
		config.Columns[i] = analyzeColumn(header, i, rows)
	}
	return config
}

// ============================================================================
// COLUMN ANALYSIS
// ============================================================================

func analyzeColumn(header string, index int, rows [][]string) ColumnMeta {
	col := ColumnMeta{Key: header}

	values := make([]string, 0, len(rows))
	uniqueSet := make(map[string]bool)
	for _, row := range rows {
		if index >= len(row) || IsNull(row[index]) {
			col.NullCount++
			continue
		}
		values = append(values, row[index])
		uniqueSet[row[index]] = true
	}

	col.UniqueCount = len(uniqueSet)
	col.SampleValues = collectSamples(uniqueSet, 10)
	col.Kind = detectKind(values, col.NullCount > 0)

	switch {
	case col.UniqueCount <= 10:
		col.CardinalityHint = "low"
	case col.UniqueCount <= 100:
		col.CardinalityHint = "medium"
	default:
		col.CardinalityHint = "high"
	}
	return col
}

// detectKind requires every non-null value to match; an all-null column is float.
func detectKind(values []string, hasNulls bool) engine.Kind {
	if len(values) == 0 {
		return engine.KindFloat
	}

	allInt, allFloat := true, true
	for _, v := range values {
		if allInt && !isInt(v) {
			allInt = false
		}
		if !isFloat(v) {
			allFloat = false
			break
		}
	}

	switch {
	case allInt && !hasNulls:
		return engine.KindInt
	case allFloat:
		return engine.KindFloat
	default:
		return engine.KindText
	}
}

func isInt(s string) bool {
	_, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	return err == nil
}

func isFloat(s string) bool {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "0x") || strings.HasPrefix(s, "0X") || strings.Contains(s, "_") {
		return false
	}
	_, err := strconv.ParseFloat(s, 64)
	return err == nil
}

// collectSamples picks up to maxSamples representative values.
func collectSamples(uniqueSet map[string]bool, maxSamples int) []string {
	samples := make([]string, 0, len(uniqueSet))
	for v := range uniqueSet {
		samples = append(samples, v)
	}

	// Sort for deterministic output
	sort.Strings(samples)

	if len(samples) > maxSamples {
		samples = samples[:maxSamples]
	}
	return samples
}
