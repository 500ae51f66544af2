package engine

import (
	"strconv"
)

// ============================================================================
// TABLE BUILDER — Produces TableData from yearly counts
// ============================================================================

// BuildYearTable produces a two-column table (ano, quantidade_projetos)
// with a total row summary.
func BuildYearTable(counts []YearCount) *TableData {
	table := &TableData{
		Title: "Projetos por ano",
		Columns: []TableColumn{
			{Key: "ano", Label: "Ano", Align: "left"},
			{Key: "quantidade_projetos", Label: "Quantidade de Projetos", Align: "right"},
		},
		Rows: make([][]string, 0, len(counts)),
	}

	for _, c := range counts {
		table.Rows = append(table.Rows, []string{
			strconv.Itoa(c.Ano),
			FormatInt(c.QuantidadeProjetos),
		})
	}

	table.Summary = &Summary{
		Label: "Total",
		Values: map[string]string{
			"quantidade_projetos": FormatInt(TotalProjects(counts)),
		},
	}
	return table
}

// Headers returns the column labels in order.
func (t *TableData) Headers() []string {
	out := make([]string, len(t.Columns))
	for i, c := range t.Columns {
		out[i] = c.Label
	}
	return out
}

// SummaryRow renders the summary as a row aligned with Columns.
// The first column carries the summary label. Returns nil without a summary.
func (t *TableData) SummaryRow() []string {
	if t.Summary == nil || len(t.Columns) == 0 {
		return nil
	}
	row := make([]string, len(t.Columns))
	row[0] = t.Summary.Label
	for i, c := range t.Columns[1:] {
		row[i+1] = t.Summary.Values[c.Key]
	}
	return row
}
