package engine

// newTestTable builds a table whose empty fields are nulls.
func newTestTable(columns []Column, rows [][]string) *Table {
	cells := make([][]Cell, len(rows))
	for i, row := range rows {
		cells[i] = make([]Cell, len(row))
		for j, v := range row {
			cells[i][j] = Cell{Raw: v, Null: v == ""}
		}
	}
	return NewTable(columns, cells)
}

var projectColumns = []Column{
	{Name: ColumnAno, Kind: KindInt},
	{Name: ColumnUnidade, Kind: KindText},
	{Name: ColumnArea, Kind: KindText},
	{Name: ColumnPalavrasChave, Kind: KindText},
	{Name: ColumnLinha, Kind: KindText},
	{Name: "titulo", Kind: KindText},
}

// scenarioTable is the three-row example: two computing projects, one law project.
func scenarioTable() *Table {
	return newTestTable(projectColumns, [][]string{
		{"2019", "Computação", "", "", "", "Sistema de apoio"},
		{"2019", "Direito", "", "", "", "Direito penal"},
		{"2020", "Informática", "", "", "", "Banco de dados"},
	})
}
