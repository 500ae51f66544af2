package helpers

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spektr-org/projtrend/engine"
)

var pngMagic = []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n'}

func testChart() *engine.ChartConfig {
	counts := []engine.YearCount{{Ano: 2016, QuantidadeProjetos: 3}, {Ano: 2018, QuantidadeProjetos: 4}, {Ano: 2020, QuantidadeProjetos: 9}}
	return engine.BuildChart(counts, 16.0/3)
}

func TestSaveChart_PNG(t *testing.T) {
	path := filepath.Join(t.TempDir(), "evolucao.png")
	require.NoError(t, SaveChart(testChart(), path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, pngMagic), "file is not a PNG")
}

func TestSaveChart_Overwrites(t *testing.T) {
	path := filepath.Join(t.TempDir(), "evolucao.png")
	require.NoError(t, os.WriteFile(path, []byte("old"), 0o644))
	require.NoError(t, SaveChart(testChart(), path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, pngMagic))
}

func TestSaveChart_SingleYear(t *testing.T) {
	chart := engine.BuildChart([]engine.YearCount{{Ano: 2020, QuantidadeProjetos: 4}}, 4)
	path := filepath.Join(t.TempDir(), "one.png")
	require.NoError(t, SaveChart(chart, path))
}

func TestSaveChart_Errors(t *testing.T) {
	dir := t.TempDir()

	err := SaveChart(testChart(), filepath.Join(dir, "missing", "c.png"))
	assert.ErrorIs(t, err, engine.ErrIO)

	file := filepath.Join(dir, "file")
	require.NoError(t, os.WriteFile(file, nil, 0o644))
	err = SaveChart(testChart(), filepath.Join(file, "c.png"))
	assert.ErrorIs(t, err, engine.ErrIO)

	err = SaveChart(nil, filepath.Join(dir, "c.png"))
	assert.ErrorIs(t, err, engine.ErrPrecondition)
}

func TestBuildPlot(t *testing.T) {
	p, err := BuildPlot(testChart())
	require.NoError(t, err)
	assert.Equal(t, engine.ChartTitle, p.Title.Text)
	assert.Equal(t, "Ano", p.X.Label.Text)
	assert.Equal(t, "Quantidade de Projetos", p.Y.Label.Text)

	bad := testChart()
	bad.Series[0].Kind = "pie"
	_, err = BuildPlot(bad)
	assert.ErrorIs(t, err, engine.ErrPrecondition)
}

func TestYearTicks(t *testing.T) {
	ticks := yearTicks{}.Ticks(2015.6, 2020.2)
	require.Len(t, ticks, 5)
	assert.Equal(t, "2016", ticks[0].Label)
	assert.Equal(t, "2020", ticks[4].Label)

	assert.NotEmpty(t, yearTicks{}.Ticks(0.2, 0.8), "falls back to default ticks")
}

func TestWriteSummary(t *testing.T) {
	counts := []engine.YearCount{{Ano: 2019, QuantidadeProjetos: 1}, {Ano: 2020, QuantidadeProjetos: 3}}
	trend, err := engine.FitTrend(counts)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "summary.json")
	require.NoError(t, WriteSummary(path, engine.BuildSummary(trend, counts, "f.csv", "c.png")))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var decoded map[string]any
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, float64(4), decoded["total_projetos"])
	assert.Nil(t, decoded["p_valores"].(map[string]any)["ano"])

	err = WriteSummary(filepath.Join(t.TempDir(), "no", "s.json"), engine.ResultSummary{})
	assert.ErrorIs(t, err, engine.ErrIO)
}
