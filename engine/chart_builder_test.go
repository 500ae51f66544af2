package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildChart(t *testing.T) {
	counts := []YearCount{{2016, 3}, {2017, 5}, {2018, 4}, {2019, 8}, {2020, 9}}

	chart := BuildChart(counts, 5.8)
	require.NotNil(t, chart)

	assert.Equal(t, ChartTitle, chart.Title)
	assert.Equal(t, "Ano", chart.XAxis)
	assert.Equal(t, "Quantidade de Projetos", chart.YAxis)
	assert.True(t, chart.ShowLegend)
	assert.True(t, chart.ShowGrid)
	require.Len(t, chart.Series, 3)

	points := chart.Series[0]
	assert.Equal(t, SeriesScatter, points.Kind)
	assert.Empty(t, points.Name, "points carry no legend entry")
	require.Len(t, points.Data, 5)
	assert.Equal(t, ChartPoint{X: 2019, Y: 8}, points.Data[3])

	regression := chart.Series[1]
	assert.Equal(t, LegendRegressao, regression.Name)
	assert.Equal(t, "red", regression.Color)
	require.Len(t, regression.Data, 2)
	assert.Equal(t, 2016.0, regression.Data[0].X)
	assert.Equal(t, 2020.0, regression.Data[1].X)
	assert.InDelta(t, 2.8, regression.Data[0].Y, 1e-6)
	assert.InDelta(t, 8.8, regression.Data[1].Y, 1e-6)

	mean := chart.Series[2]
	assert.Equal(t, LegendMedia, mean.Name)
	assert.Equal(t, "green", mean.Color)
	assert.True(t, mean.Dashed)
	require.Len(t, mean.Data, 2)
	assert.InDelta(t, 2015.8, mean.Data[0].X, 1e-9, "mean line starts before the first year")
	assert.InDelta(t, 2020.2, mean.Data[1].X, 1e-9, "mean line ends after the last year")
	assert.Equal(t, 5.8, mean.Data[0].Y)
	assert.Equal(t, 5.8, mean.Data[1].Y)
}

func TestBuildChart_SingleYearHasNoRegression(t *testing.T) {
	chart := BuildChart([]YearCount{{2020, 4}}, 4)
	require.NotNil(t, chart)
	require.Len(t, chart.Series, 2)
	assert.Equal(t, SeriesScatter, chart.Series[0].Kind)
	assert.Equal(t, LegendMedia, chart.Series[1].Name)
	assert.Equal(t, []ChartPoint{{X: 2019.5, Y: 4}, {X: 2020.5, Y: 4}}, chart.Series[1].Data)
}

func TestBuildChart_Empty(t *testing.T) {
	assert.Nil(t, BuildChart(nil, 0))
}
