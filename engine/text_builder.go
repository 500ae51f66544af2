package engine

import (
	"fmt"
	"math"
	"strings"
)

// ============================================================================
// TEXT BUILDER — Summary object and human-readable reply
// ============================================================================

// BuildSummary assembles the ResultSummary of a run.
func BuildSummary(trend *TrendResult, counts []YearCount, filteredCSV, chart string) ResultSummary {
	return ResultSummary{
		Coefficients: Coefficients{
			Const: Float(trend.Intercept),
			Ano:   Float(trend.Slope),
		},
		RSquared: Float(trend.RSquared),
		PValues: Coefficients{
			Const: Float(trend.PValues.Intercept),
			Ano:   Float(trend.PValues.Slope),
		},
		ConfidenceInterval: [2]Float{
			Float(trend.ConfidenceInterval.Low),
			Float(trend.ConfidenceInterval.High),
		},
		Mean:          Float(trend.Mean),
		Years:         len(counts),
		TotalProjects: TotalProjects(counts),
		FilteredCSV:   filteredCSV,
		Chart:         chart,
	}
}

// ============================================================================
// GROWTH BUILDER
// ============================================================================

// BuildGrowth compares the earliest and latest year buckets.
func BuildGrowth(counts []YearCount) *GrowthData {
	if len(counts) < 2 {
		g := &GrowthData{Direction: "insufficient data"}
		if len(counts) == 1 {
			g.EarliestPeriod, g.LatestPeriod = counts[0].Ano, counts[0].Ano
			g.EarliestValue, g.LatestValue = counts[0].QuantidadeProjetos, counts[0].QuantidadeProjetos
		}
		return g
	}

	earliest := counts[0]
	latest := counts[len(counts)-1]
	change := latest.QuantidadeProjetos - earliest.QuantidadeProjetos

	var changePercent float64
	if earliest.QuantidadeProjetos != 0 {
		changePercent = float64(change) / float64(earliest.QuantidadeProjetos) * 100
	}

	direction := "unchanged"
	if change > 0 {
		direction = "increased"
	} else if change < 0 {
		direction = "decreased"
	}

	return &GrowthData{
		EarliestValue:  earliest.QuantidadeProjetos,
		LatestValue:    latest.QuantidadeProjetos,
		EarliestPeriod: earliest.Ano,
		LatestPeriod:   latest.Ano,
		ChangeAmount:   change,
		ChangePercent:  changePercent,
		Direction:      direction,
	}
}

// BuildReply renders the trend as a few lines of text.
func BuildReply(trend *TrendResult, growth *GrowthData) string {
	var b strings.Builder

	if growth != nil && growth.Direction != "insufficient data" {
		switch growth.Direction {
		case "increased":
			fmt.Fprintf(&b, "↑ %d → %d projects between %d and %d (%+.1f%%)\n",
				growth.EarliestValue, growth.LatestValue, growth.EarliestPeriod, growth.LatestPeriod, growth.ChangePercent)
		case "decreased":
			fmt.Fprintf(&b, "↓ %d → %d projects between %d and %d (%+.1f%%)\n",
				growth.EarliestValue, growth.LatestValue, growth.EarliestPeriod, growth.LatestPeriod, growth.ChangePercent)
		default:
			fmt.Fprintf(&b, "→ No change between %d and %d\n", growth.EarliestPeriod, growth.LatestPeriod)
		}
	}

	fmt.Fprintf(&b, "Trend: %s projects/year (p=%s), R²=%s\n",
		formatStat(trend.Slope, 3), formatStat(trend.PValues.Slope, 4), formatStat(trend.RSquared, 3))
	fmt.Fprintf(&b, "Mean: %s projects/year, %.0f%% CI [%s, %s] over %d years",
		formatStat(trend.Mean, 2), trend.Confidence*100,
		formatStat(trend.ConfidenceInterval.Low, 2), formatStat(trend.ConfidenceInterval.High, 2), trend.N)
	return b.String()
}

func formatStat(v float64, places int) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return "n/a"
	}
	return fmt.Sprintf("%.*f", places, v)
}
