package engine

import (
	"math"
	"strconv"
)

// ============================================================================
// PROJTREND ENGINE TYPES
// ============================================================================
// Table (table.go) → YearCount → TrendResult → ChartConfig / ResultSummary.
//
// Dependency: engine only imports gonum and x/text; it never touches files.
// ============================================================================

// ============================================================================
// YEAR COUNT — one bucket per distinct year
// ============================================================================

// YearCount is the number of retained projects reported in a year.
type YearCount struct {
	Ano                int `json:"ano" yaml:"ano"`
	QuantidadeProjetos int `json:"quantidade_projetos" yaml:"quantidade_projetos"`
}

// ============================================================================
// TREND RESULT — OLS fit + independent interval for the mean
// ============================================================================

// TrendResult holds the regression of count on year and the t-interval for
// the mean count. ConfidenceInterval is derived from the raw counts only.
type TrendResult struct {
	Intercept          float64  `json:"intercept"`
	Slope              float64  `json:"slope"`
	RSquared           float64  `json:"rSquared"`
	PValues            PValues  `json:"pValues"`
	ConfidenceInterval Interval `json:"confidenceInterval"`
	Confidence         float64  `json:"confidence"`
	Mean               float64  `json:"mean"`
	N                  int      `json:"n"` // number of year buckets
}

// PValues are two-sided p-values of the OLS coefficients.
type PValues struct {
	Intercept float64 `json:"intercept"`
	Slope     float64 `json:"slope"`
}

// Interval is a closed [Low, High] range.
type Interval struct {
	Low  float64 `json:"low"`
	High float64 `json:"high"`
}

// ============================================================================
// RESULT SUMMARY — terminal output of a run
// ============================================================================

// ResultSummary is the serialisable outcome of a run.
type ResultSummary struct {
	Coefficients       Coefficients `json:"modelo_coeficientes" yaml:"modelo_coeficientes"`
	RSquared           Float        `json:"r2" yaml:"r2"`
	PValues            Coefficients `json:"p_valores" yaml:"p_valores"`
	ConfidenceInterval [2]Float     `json:"intervalo_confianca_media" yaml:"intervalo_confianca_media"`
	Mean               Float        `json:"media" yaml:"media"`
	Years              int          `json:"anos" yaml:"anos"`
	TotalProjects      int          `json:"total_projetos" yaml:"total_projetos"`
	FilteredCSV        string       `json:"csv_filtrado" yaml:"csv_filtrado"`
	Chart              string       `json:"grafico_gerado" yaml:"grafico_gerado"`
}

// Coefficients maps the model terms (constant and year) to a value.
type Coefficients struct {
	Const Float `json:"const" yaml:"const"`
	Ano   Float `json:"ano" yaml:"ano"`
}

// Float is a float64 that encodes NaN and ±Inf as null.
type Float float64

// MarshalJSON implements json.Marshaler.
func (f Float) MarshalJSON() ([]byte, error) {
	v := float64(f)
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return []byte("null"), nil
	}
	return strconv.AppendFloat(nil, v, 'g', -1, 64), nil
}

// MarshalYAML implements yaml.Marshaler.
func (f Float) MarshalYAML() (interface{}, error) {
	v := float64(f)
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return nil, nil
	}
	return v, nil
}

// ============================================================================
// CHART TYPES
// ============================================================================

// ChartConfig describes a chart independently of the drawing backend.
type ChartConfig struct {
	ChartType  string        `json:"chartType"`
	Title      string        `json:"title"`
	XAxis      string        `json:"xAxis,omitempty"`
	YAxis      string        `json:"yAxis,omitempty"`
	Series     []ChartSeries `json:"series"`
	ShowLegend bool          `json:"showLegend"`
	ShowGrid   bool          `json:"showGrid"`
	WidthIn    float64       `json:"widthIn"`
	HeightIn   float64       `json:"heightIn"`
}

// Series kinds.
const (
	SeriesScatter = "scatter"
	SeriesLine    = "line"
)

// ChartSeries is one drawable layer. Series with an empty Name stay out of
// the legend.
type ChartSeries struct {
	Name   string       `json:"name,omitempty"`
	Kind   string       `json:"kind"`
	Data   []ChartPoint `json:"data"`
	Color  string       `json:"color,omitempty"` // x/image colornames key
	Dashed bool         `json:"dashed,omitempty"`
}

// ChartPoint is an (x, y) pair.
type ChartPoint struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// ============================================================================
// TABLE TYPES — per-year table for terminal output
// ============================================================================

// TableData is a render-ready table.
type TableData struct {
	Title   string        `json:"title"`
	Columns []TableColumn `json:"columns"`
	Rows    [][]string    `json:"rows"`
	Summary *Summary      `json:"summary,omitempty"`
}

// TableColumn defines a table column.
type TableColumn struct {
	Key   string `json:"key"`
	Label string `json:"label"`
	Align string `json:"align"` // "left", "right"
}

// Summary provides totals for a table.
type Summary struct {
	Label  string            `json:"label"`
	Values map[string]string `json:"values"`
}

// ============================================================================
// TEXT TYPES
// ============================================================================

// GrowthData contains change-over-time metrics for the text reply.
type GrowthData struct {
	EarliestValue  int     `json:"earliestValue"`
	LatestValue    int     `json:"latestValue"`
	EarliestPeriod int     `json:"earliestPeriod"`
	LatestPeriod   int     `json:"latestPeriod"`
	ChangeAmount   int     `json:"changeAmount"`
	ChangePercent  float64 `json:"changePercent"`
	Direction      string  `json:"direction"` // "increased", "decreased", "unchanged", "insufficient data"
}
