package engine

import (
	"gonum.org/v1/gonum/stat"
)

// ============================================================================
// CHART BUILDER — Produces ChartConfig from yearly counts + mean
// ============================================================================
// The regression line is fit here on its own, the way a plotting library
// overlays a fit. It agrees visually with FitTrend but is not shared with it.
// ============================================================================

// Fixed chart text.
const (
	ChartTitle      = "Evolução Temporal dos Projetos de Computação na UFRN"
	ChartXLabel     = "Ano"
	ChartYLabel     = "Quantidade de Projetos"
	LegendRegressao = "Regressão linear"
	LegendMedia     = "Média dos projetos"
)

// Series colours (keys of golang.org/x/image/colornames).
const (
	colorPoints     = "steelblue"
	colorRegression = "red"
	colorMean       = "green"
)

// meanLineMargin is the fraction of the year range the mean line extends
// past the first and last year.
const meanLineMargin = 0.05

// BuildChart describes the scatter/regression/mean chart of counts.
// Returns nil when counts is empty.
func BuildChart(counts []YearCount, mean float64) *ChartConfig {
	if len(counts) == 0 {
		return nil
	}

	config := &ChartConfig{
		ChartType:  "scatter_regression",
		Title:      ChartTitle,
		XAxis:      ChartXLabel,
		YAxis:      ChartYLabel,
		ShowLegend: true,
		ShowGrid:   true,
		WidthIn:    10,
		HeightIn:   6,
	}

	config.Series = append(config.Series, buildScatterSeries(counts))
	if line, ok := buildRegressionSeries(counts); ok {
		config.Series = append(config.Series, line)
	}
	config.Series = append(config.Series, buildMeanSeries(counts, mean))
	return config
}

// ============================================================================
// SERIES BUILDERS
// ============================================================================

func buildScatterSeries(counts []YearCount) ChartSeries {
	points := make([]ChartPoint, 0, len(counts))
	for _, c := range counts {
		points = append(points, ChartPoint{X: float64(c.Ano), Y: float64(c.QuantidadeProjetos)})
	}
	return ChartSeries{Kind: SeriesScatter, Data: points, Color: colorPoints}
}

func buildRegressionSeries(counts []YearCount) (ChartSeries, bool) {
	xs, ys := xyValues(counts)
	lo, hi := xRange(xs)
	if lo == hi {
		return ChartSeries{}, false
	}
	alpha, beta := stat.LinearRegression(xs, ys, nil, false)
	return ChartSeries{
		Name:  LegendRegressao,
		Kind:  SeriesLine,
		Color: colorRegression,
		Data: []ChartPoint{
			{X: lo, Y: alpha + beta*lo},
			{X: hi, Y: alpha + beta*hi},
		},
	}, true
}

// buildMeanSeries runs the mean across the padded x axis, not just between
// the first and last year. A single year gets half a year on each side.
func buildMeanSeries(counts []YearCount, mean float64) ChartSeries {
	xs, _ := xyValues(counts)
	lo, hi := xRange(xs)
	pad := (hi - lo) * meanLineMargin
	if pad == 0 {
		pad = 0.5
	}
	lo, hi = lo-pad, hi+pad
	return ChartSeries{
		Name:   LegendMedia,
		Kind:   SeriesLine,
		Color:  colorMean,
		Dashed: true,
		Data:   []ChartPoint{{X: lo, Y: mean}, {X: hi, Y: mean}},
	}
}

func xyValues(counts []YearCount) ([]float64, []float64) {
	xs := make([]float64, len(counts))
	ys := make([]float64, len(counts))
	for i, c := range counts {
		xs[i] = float64(c.Ano)
		ys[i] = float64(c.QuantidadeProjetos)
	}
	return xs, ys
}

func xRange(xs []float64) (float64, float64) {
	lo, hi := xs[0], xs[0]
	for _, x := range xs[1:] {
		if x < lo {
			lo = x
		}
		if x > hi {
			hi = x
		}
	}
	return lo, hi
}
