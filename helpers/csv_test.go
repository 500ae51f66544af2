package helpers

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spektr-org/projtrend/engine"
)

const projectsCSV = `ano;unidade;area_conhecimento_cnpq;palavras_chave;linha_pesquisa;titulo
2019;Computação;;;;Sistema de apoio
2019;Direito;NA;;;"Direito; penal"
2020;Informática;;;;Banco de dados
`

func TestReadCSV_Semicolon(t *testing.T) {
	tbl, sch, err := ReadCSV(strings.NewReader(projectsCSV), CSVOptions{Comma: ';', Name: "projetos"})
	require.NoError(t, err)

	assert.Equal(t, 3, tbl.Len())
	assert.Equal(t, "projetos", sch.Name)
	assert.Equal(t, []string{"ano", "unidade", "area_conhecimento_cnpq", "palavras_chave", "linha_pesquisa", "titulo"}, tbl.Header())
	assert.Equal(t, "Direito; penal", tbl.Value(1, "titulo"))

	ano, ok := sch.Column("ano")
	require.True(t, ok)
	assert.Equal(t, engine.KindInt, ano.Kind)

	j, _ := tbl.ColumnIndex(engine.ColumnArea)
	assert.True(t, tbl.Cell(1, j).Null, "NA is a missing value")
	assert.NoError(t, sch.Validate())
}

func TestReadCSV_StripsBOM(t *testing.T) {
	tbl, _, err := ReadCSV(strings.NewReader("\ufeffano;unidade\n2020;IMD\n"))
	require.NoError(t, err)
	assert.Equal(t, []string{"ano", "unidade"}, tbl.Header())
}

func TestReadCSV_Errors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"ragged row", "ano;unidade\n2019;IMD;extra\n", "line 2: expected 2 fields, got 3"},
		{"short row", "ano;unidade\n2019\n", "expected 2 fields, got 1"},
		{"empty input", "", "missing header row"},
		{"invalid utf-8", "ano;unidade\n2019;\xff\xfe\n", "not valid UTF-8"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := ReadCSV(strings.NewReader(tt.input))
			require.Error(t, err)
			assert.ErrorIs(t, err, engine.ErrParse)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestReadCSV_BareQuote(t *testing.T) {
	input := "ano;unidade;area_conhecimento_cnpq;palavras_chave;linha_pesquisa\n" +
		"2019;IMD;;projeto \"alfa\" de algoritmos;\n" +
		"2020;IMD;;\"citado; com separador\";linha 5\"\n"

	tbl, _, err := ReadCSV(strings.NewReader(input))
	require.NoError(t, err)
	require.Equal(t, 2, tbl.Len())
	assert.Equal(t, []string{"2019", "IMD", "nan", `projeto "alfa" de algoritmos`, "nan"}, tbl.Row(0))
	assert.Equal(t, "citado; com separador", tbl.Value(1, engine.ColumnPalavrasChave))
	assert.Equal(t, `linha 5"`, tbl.Value(1, engine.ColumnLinha))

	// Field-count checking still applies with literal quotes.
	_, _, err = ReadCSV(strings.NewReader("ano;unidade\n2019;a\"b;extra\n"))
	assert.ErrorIs(t, err, engine.ErrParse)
}

func TestLoadCSV_MissingFile(t *testing.T) {
	_, _, err := LoadCSV(filepath.Join(t.TempDir(), "nope.csv"))
	require.Error(t, err)
	assert.ErrorIs(t, err, engine.ErrIO)
}

func TestLoadCSV_NamesDatasetAfterFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "projetos.csv")
	require.NoError(t, os.WriteFile(path, []byte(projectsCSV), 0o644))

	tbl, sch, err := LoadCSV(path)
	require.NoError(t, err)
	assert.Equal(t, "projetos.csv", sch.Name)
	assert.Equal(t, 3, tbl.Len())
}

func TestEncodeCSV_FilteredOutput(t *testing.T) {
	tbl, _, err := ReadCSV(strings.NewReader(projectsCSV))
	require.NoError(t, err)
	filtered, err := engine.FilterKeywords(tbl)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, EncodeCSV(&buf, filtered))

	want := "ano,unidade,area_conhecimento_cnpq,palavras_chave,linha_pesquisa,titulo\n" +
		"2019,computação,nan,nan,nan,Sistema de apoio\n" +
		"2020,informática,nan,nan,nan,Banco de dados\n"
	assert.Equal(t, want, buf.String())
}

func TestEncodeCSV_NullsAndFloats(t *testing.T) {
	tbl, _, err := ReadCSV(strings.NewReader("ano;valor;nota\n2019;1.5;\n2020;2;x, y\n"))
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, EncodeCSV(&buf, tbl))
	assert.Equal(t, "ano,valor,nota\n2019,1.5,\n2020,2.0,\"x, y\"\n", buf.String())
}

func TestWriteCSV_RoundTrip(t *testing.T) {
	tbl, _, err := ReadCSV(strings.NewReader(projectsCSV))
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "out.csv")
	require.NoError(t, WriteCSV(path, tbl))
	// Overwrites an existing file.
	require.NoError(t, WriteCSV(path, tbl))

	back, _, err := LoadCSV(path, CSVOptions{Comma: ','})
	require.NoError(t, err)
	assert.Equal(t, tbl.Len(), back.Len())
	assert.Equal(t, tbl.Header(), back.Header())
	for i := 0; i < tbl.Len(); i++ {
		assert.Equal(t, tbl.Row(i), back.Row(i))
	}
}

func TestWriteCSV_MissingDirectory(t *testing.T) {
	tbl, _, err := ReadCSV(strings.NewReader(projectsCSV))
	require.NoError(t, err)

	err = WriteCSV(filepath.Join(t.TempDir(), "missing", "out.csv"), tbl)
	require.Error(t, err)
	assert.ErrorIs(t, err, engine.ErrIO)
}
