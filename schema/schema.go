package schema

import (
	"fmt"

	"github.com/spektr-org/projtrend/engine"
)

// ============================================================================
// SCHEMA — Describes the shape of a loaded table
// ============================================================================
// Discovered from the raw rows (discover.go). The loader uses it to type the
// engine.Table; the driver uses Validate to check the required columns before
// any stage runs.
// ============================================================================

// RequiredColumns are the columns the analysis reads.
var RequiredColumns = []string{
	engine.ColumnUnidade,
	engine.ColumnArea,
	engine.ColumnPalavrasChave,
	engine.ColumnLinha,
	engine.ColumnAno,
}

// Config describes the complete shape of a dataset.
type Config struct {
	Name           string       `json:"name"`
	Columns        []ColumnMeta `json:"columns"`
	Rows           int          `json:"rows"`
	DiscoveredFrom string       `json:"discoveredFrom,omitempty"`
}

// ColumnMeta describes one column.
type ColumnMeta struct {
	Key             string      `json:"key"`
	Kind            engine.Kind `json:"kind"`
	NullCount       int         `json:"nullCount"`
	UniqueCount     int         `json:"uniqueCount"`
	SampleValues    []string    `json:"sampleValues"`
	CardinalityHint string      `json:"cardinalityHint,omitempty"` // "low", "medium", "high"
}

// ColumnKeys returns all column keys in order.
func (c Config) ColumnKeys() []string {
	keys := make([]string, len(c.Columns))
	for i, col := range c.Columns {
		keys[i] = col.Key
	}
	return keys
}

// Column returns the metadata of a named column.
func (c Config) Column(key string) (ColumnMeta, bool) {
	for _, col := range c.Columns {
		if col.Key == key {
			return col, true
		}
	}
	return ColumnMeta{}, false
}

// EngineColumns converts the schema into engine table columns.
func (c Config) EngineColumns() []engine.Column {
	cols := make([]engine.Column, len(c.Columns))
	for i, col := range c.Columns {
		cols[i] = engine.Column{Name: col.Key, Kind: col.Kind}
	}
	return cols
}

// Validate checks that every required column exists.
// The error wraps engine.ErrMissingColumn and names all absent columns.
func (c Config) Validate(required ...string) error {
	if len(required) == 0 {
		required = RequiredColumns
	}
	present := make(map[string]bool, len(c.Columns))
	for _, col := range c.Columns {
		present[col.Key] = true
	}
	var missing []string
	for _, key := range required {
		if !present[key] {
			missing = append(missing, key)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: %q", engine.ErrMissingColumn, missing)
	}
	return nil
}
