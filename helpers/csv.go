package helpers

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"unicode/utf8"

	"github.com/spektr-org/projtrend/engine"
	"github.com/spektr-org/projtrend/schema"
)

// ============================================================================
// CSV HELPER — Delimited text ⇄ engine.Table
// ============================================================================
// The loader reads the whole file, checks UTF-8, and types the columns with
// schema.Discover. Every row must have exactly as many fields as the header.
// Quotes inside an unquoted field are kept as text.
// The writer emits comma-separated text with a header and no index column.
// ============================================================================

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// CSVOptions controls how delimited text is read.
type CSVOptions struct {
	Comma rune   // field separator. Default: ';'
	Name  string // dataset name recorded in the schema
}

// DefaultCSVOptions returns the options of the research-project export.
func DefaultCSVOptions() CSVOptions {
	return CSVOptions{Comma: ';'}
}

// LoadCSV reads a delimited file into a Table.
func LoadCSV(path string, opts ...CSVOptions) (*engine.Table, schema.Config, error) {
	opt := DefaultCSVOptions()
	if len(opts) > 0 {
		opt = opts[0]
	}
	if opt.Name == "" {
		opt.Name = filepath.Base(path)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, schema.Config{}, fmt.Errorf("%w: opening %s: %v", engine.ErrIO, path, err)
	}
	defer f.Close()

	return ReadCSV(f, opt)
}

// ReadCSV parses delimited text from r into a Table.
func ReadCSV(r io.Reader, opts ...CSVOptions) (*engine.Table, schema.Config, error) {
	opt := DefaultCSVOptions()
	if len(opts) > 0 {
		opt = opts[0]
	}
	if opt.Comma == 0 {
		opt.Comma = ';'
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, schema.Config{}, fmt.Errorf("%w: reading input: %v", engine.ErrIO, err)
	}
	if !utf8.Valid(data) {
		return nil, schema.Config{}, fmt.Errorf("%w: input is not valid UTF-8", engine.ErrParse)
	}
	data = bytes.TrimPrefix(data, utf8BOM)

	reader := csv.NewReader(bytes.NewReader(data))
	reader.Comma = opt.Comma
	// A '"' inside an unquoted field is literal text.
	reader.LazyQuotes = true

	// Read header
	headers, err := reader.Read()
	if err == io.EOF {
		return nil, schema.Config{}, fmt.Errorf("%w: missing header row", engine.ErrParse)
	}
	if err != nil {
		return nil, schema.Config{}, fmt.Errorf("%w: reading header: %v", engine.ErrParse, err)
	}

	// Read rows
	var raw [][]string
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			var perr *csv.ParseError
			if errors.As(err, &perr) && errors.Is(perr.Err, csv.ErrFieldCount) {
				return nil, schema.Config{}, fmt.Errorf("%w: line %d: expected %d fields, got %d",
					engine.ErrParse, perr.Line, len(headers), len(row))
			}
			return nil, schema.Config{}, fmt.Errorf("%w: %v", engine.ErrParse, err)
		}
		raw = append(raw, row)
	}

	sch := schema.Discover(opt.Name, headers, raw)

	rows := make([][]engine.Cell, len(raw))
	for i, fields := range raw {
		cells := make([]engine.Cell, len(fields))
		for j, v := range fields {
			cells[j] = engine.Cell{Raw: v, Null: schema.IsNull(v)}
		}
		rows[i] = cells
	}

	return engine.NewTable(sch.EngineColumns(), rows), sch, nil
}

// WriteCSV writes t to path as comma-separated text, overwriting the file.
func WriteCSV(path string, t *engine.Table) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("%w: creating %s: %v", engine.ErrIO, path, err)
	}
	if err := EncodeCSV(f, t); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("%w: closing %s: %v", engine.ErrIO, path, err)
	}
	return nil
}

// EncodeCSV writes t as comma-separated text with a header row.
// Missing values are written as empty fields.
func EncodeCSV(w io.Writer, t *engine.Table) error {
	cw := csv.NewWriter(w)
	columns := t.Columns()

	if err := cw.Write(t.Header()); err != nil {
		return fmt.Errorf("%w: writing header: %v", engine.ErrIO, err)
	}
	record := make([]string, len(columns))
	for i := 0; i < t.Len(); i++ {
		for j, col := range columns {
			c := t.Cell(i, j)
			if c.Null {
				record[j] = ""
			} else {
				record[j] = engine.RenderCell(c, col.Kind)
			}
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("%w: writing row %d: %v", engine.ErrIO, i+1, err)
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("%w: flushing csv: %v", engine.ErrIO, err)
	}
	return nil
}
