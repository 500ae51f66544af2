package helpers

import (
	"fmt"
	"image/color"
	"math"
	"os"
	"path/filepath"
	"strconv"

	"golang.org/x/image/colornames"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/spektr-org/projtrend/engine"
)

// ============================================================================
// CHART HELPER — Draws an engine.ChartConfig with gonum/plot
// ============================================================================
// The image format follows the file extension (.png, .svg, .pdf, ...).
// An existing file is overwritten.
// ============================================================================

// SaveChart renders cfg to path.
func SaveChart(cfg *engine.ChartConfig, path string) error {
	if cfg == nil {
		return fmt.Errorf("%w: no chart to render", engine.ErrPrecondition)
	}

	dir := filepath.Dir(path)
	info, err := os.Stat(dir)
	if err != nil {
		return fmt.Errorf("%w: output directory %s: %v", engine.ErrIO, dir, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("%w: output directory %s is not a directory", engine.ErrIO, dir)
	}

	p, err := BuildPlot(cfg)
	if err != nil {
		return err
	}

	width, height := cfg.WidthIn, cfg.HeightIn
	if width <= 0 {
		width = 10
	}
	if height <= 0 {
		height = 6
	}
	if err := p.Save(vg.Length(width)*vg.Inch, vg.Length(height)*vg.Inch, path); err != nil {
		return fmt.Errorf("%w: saving chart %s: %v", engine.ErrIO, path, err)
	}
	return nil
}

// BuildPlot turns cfg into a gonum plot without writing it.
func BuildPlot(cfg *engine.ChartConfig) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = cfg.Title
	p.X.Label.Text = cfg.XAxis
	p.Y.Label.Text = cfg.YAxis
	p.X.Tick.Marker = yearTicks{}
	p.Legend.Top = true

	if cfg.ShowGrid {
		p.Add(plotter.NewGrid())
	}

	for _, s := range cfg.Series {
		xys := make(plotter.XYs, len(s.Data))
		for i, pt := range s.Data {
			xys[i].X = pt.X
			xys[i].Y = pt.Y
		}

		switch s.Kind {
		case engine.SeriesScatter:
			sc, err := plotter.NewScatter(xys)
			if err != nil {
				return nil, fmt.Errorf("%w: scatter series: %v", engine.ErrPrecondition, err)
			}
			sc.GlyphStyle.Shape = draw.CircleGlyph{}
			sc.GlyphStyle.Radius = vg.Points(4)
			sc.GlyphStyle.Color = lookupColor(s.Color)
			p.Add(sc)
			if cfg.ShowLegend && s.Name != "" {
				p.Legend.Add(s.Name, sc)
			}

		case engine.SeriesLine:
			l, err := plotter.NewLine(xys)
			if err != nil {
				return nil, fmt.Errorf("%w: line series: %v", engine.ErrPrecondition, err)
			}
			l.LineStyle.Width = vg.Points(1.5)
			l.LineStyle.Color = lookupColor(s.Color)
			if s.Dashed {
				l.LineStyle.Dashes = []vg.Length{vg.Points(6), vg.Points(4)}
			}
			p.Add(l)
			if cfg.ShowLegend && s.Name != "" {
				p.Legend.Add(s.Name, l)
			}

		default:
			return nil, fmt.Errorf("%w: unknown series kind %q", engine.ErrPrecondition, s.Kind)
		}
	}

	return p, nil
}

func lookupColor(name string) color.Color {
	if c, ok := colornames.Map[name]; ok {
		return c
	}
	return colornames.Black
}

// yearTicks labels whole years only.
type yearTicks struct{}

func (yearTicks) Ticks(min, max float64) []plot.Tick {
	lo, hi := math.Ceil(min), math.Floor(max)
	if hi < lo {
		return plot.DefaultTicks{}.Ticks(min, max)
	}
	step := math.Max(1, math.Ceil((hi-lo)/10))
	var ticks []plot.Tick
	for v := lo; v <= hi; v += step {
		ticks = append(ticks, plot.Tick{Value: v, Label: strconv.Itoa(int(v))})
	}
	return ticks
}
