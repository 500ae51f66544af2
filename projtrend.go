// Package projtrend analyses how many computing-related research projects a
// university reports per year.
//
// Usage:
//
//	import "github.com/spektr-org/projtrend"
//
//	res, err := projtrend.Run(projtrend.DefaultConfig(), logger)
//
// Run loads the semicolon-separated project export, keeps the rows that
// mention a computing keyword, writes them out, counts them per year, fits a
// linear trend with a t-interval for the mean, and draws the chart.
//
// The pure stages live in the engine package; helpers does the file I/O.
package projtrend

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/spektr-org/projtrend/engine"
	"github.com/spektr-org/projtrend/helpers"
)

// Default file locations, relative to the working directory.
const (
	DefaultInputPath    = "../data/projetos-de-pesquisa.csv"
	DefaultFilteredPath = "../data/projetos_computacao_ufrn.csv"
	DefaultChartPath    = "../data/evolucao_projetos_computacao.png"
)

// Config holds the parameters of one run.
type Config struct {
	InputPath      string
	InputSeparator rune
	FilteredPath   string
	ChartPath      string
	SummaryPath    string // optional JSON copy of the summary
	Keywords       []string
	Confidence     float64
}

// DefaultConfig returns the fixed paths and keywords of the analysis.
func DefaultConfig() Config {
	return Config{
		InputPath:      DefaultInputPath,
		InputSeparator: ';',
		FilteredPath:   DefaultFilteredPath,
		ChartPath:      DefaultChartPath,
		Keywords:       engine.DefaultKeywords,
		Confidence:     engine.DefaultConfidence,
	}
}

// Result is everything a run produced.
type Result struct {
	Summary      engine.ResultSummary
	Counts       []engine.YearCount
	Trend        *engine.TrendResult
	Chart        *engine.ChartConfig
	LoadedRows   int
	FilteredRows int
}

// Run executes the pipeline once, top to bottom. The first failing stage
// aborts the run; files written by earlier stages are left in place.
func Run(cfg Config, logger *slog.Logger) (*Result, error) {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	opts := []engine.Option{
		engine.WithKeywords(cfg.Keywords),
		engine.WithConfidence(cfg.Confidence),
	}

	// 1. Load
	table, sch, err := helpers.LoadCSV(cfg.InputPath, helpers.CSVOptions{Comma: cfg.InputSeparator})
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", cfg.InputPath, err)
	}
	if err := sch.Validate(); err != nil {
		return nil, fmt.Errorf("loading %s: %w", cfg.InputPath, err)
	}
	logger.Info("dataset loaded", "path", cfg.InputPath, "rows", table.Len(), "columns", len(sch.Columns))
	logger.Debug("dataset columns", "keys", sch.ColumnKeys())
	for _, col := range sch.Columns {
		logger.Debug("column profile",
			"column", col.Key,
			"kind", col.Kind.String(),
			"nulls", col.NullCount,
			"unique", col.UniqueCount,
			"cardinality", col.CardinalityHint,
			"samples", col.SampleValues,
		)
	}

	// 2. Filter
	filtered, err := engine.FilterKeywords(table, opts...)
	if err != nil {
		return nil, fmt.Errorf("filtering: %w", err)
	}
	logger.Info("keyword filter applied", "kept", filtered.Len(), "of", table.Len())

	if err := helpers.WriteCSV(cfg.FilteredPath, filtered); err != nil {
		return nil, fmt.Errorf("writing filtered table: %w", err)
	}
	logger.Debug("filtered table written", "path", cfg.FilteredPath)

	// 3. Aggregate
	counts, err := engine.CountByYear(filtered, opts...)
	if err != nil {
		return nil, fmt.Errorf("aggregating: %w", err)
	}
	logger.Info("projects counted per year", "years", len(counts))

	// 4. Trend
	trend, err := engine.FitTrend(counts, opts...)
	if err != nil {
		return nil, fmt.Errorf("fitting trend: %w", err)
	}
	logger.Info("trend fitted",
		"slope", trend.Slope,
		"r2", trend.RSquared,
		"mean", trend.Mean,
		"ci_low", trend.ConfidenceInterval.Low,
		"ci_high", trend.ConfidenceInterval.High,
	)

	// 5. Render
	chart := engine.BuildChart(counts, trend.Mean)
	if err := helpers.SaveChart(chart, cfg.ChartPath); err != nil {
		return nil, fmt.Errorf("rendering chart: %w", err)
	}
	logger.Debug("chart written", "path", cfg.ChartPath)

	// 6. Summary
	summary := engine.BuildSummary(trend, counts, cfg.FilteredPath, cfg.ChartPath)
	if cfg.SummaryPath != "" {
		if err := helpers.WriteSummary(cfg.SummaryPath, summary); err != nil {
			return nil, fmt.Errorf("writing summary: %w", err)
		}
		logger.Debug("summary written", "path", cfg.SummaryPath)
	}

	return &Result{
		Summary:      summary,
		Counts:       counts,
		Trend:        trend,
		Chart:        chart,
		LoadedRows:   table.Len(),
		FilteredRows: filtered.Len(),
	}, nil
}
