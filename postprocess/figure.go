package postprocess

import (
	"image/color"
	"math"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"go.uber.org/zap"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/infraredracoon1/waveletGalerkinFoam/dataloader"
	"github.com/infraredracoon1/waveletGalerkinFoam/settings"
)

// ReferenceLabel is the legend label of the reference power law, which runs
// from (100, 6) to (1e6, 600).
const ReferenceLabel = "Fit: 0.6 Re^0.5"

const (
	plotTitle  = "BKM Integral vs. Reynolds Number"
	xAxisLabel = "Reynolds Number (Re)"
	yAxisLabel = "∫₀¹⁰ ||ω||_L∞ dt"

	figWidth  = 8 * vg.Inch
	figHeight = 6 * vg.Inch

	nFitPoints = 50
)

func referenceLine() plotter.XYs {
	return plotter.XYs{{X: 100, Y: 6}, {X: 1e6, Y: 600}}
}

// Series is one legend entry of a Figure.
type Series struct {
	Name  string
	Color color.Color
	XYs   plotter.XYs
	YErrs plotter.YErrors // nil for lines
}

// errPoints is the data of an error bar plot.
type errPoints struct {
	plotter.XYs
	plotter.YErrors
}

// FigureOptions are the optional parts of a Figure.
type FigureOptions struct {
	Fit    *PowerLaw // drawn over the Re range of the data if non-nil
	Logger *zap.Logger
}

// Figure is the log-log plot of the BKM integral against Reynolds number.
type Figure struct {
	plot   *plot.Plot
	series []Series
}

// NewFigure plots one error bar series per case, in the order in which the
// cases first appear in records, followed by the reference power law.
//
// Every case must be a known case; otherwise a settings.Missing error is
// returned and nothing is drawn. Points that cannot be placed on a log axis
// are dropped, and a lower error bar that would reach zero is not drawn.
func NewFigure(records []dataloader.Record, opts FigureOptions) (*Figure, error) {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	names := dataloader.Cases(records)
	if err := settings.CheckCases(names); err != nil {
		return nil, err
	}

	p := plot.New()
	p.Title.Text = plotTitle
	p.X.Label.Text = xAxisLabel
	p.Y.Label.Text = yAxisLabel
	p.X.Scale = plot.LogScale{}
	p.Y.Scale = plot.LogScale{}
	p.X.Tick.Marker = plot.LogTicks{Prec: -1}
	p.Y.Tick.Marker = plot.LogTicks{Prec: -1}
	p.Add(plotter.NewGrid())
	p.Legend.Top = true
	p.Legend.Left = true

	fig := &Figure{plot: p}

	groups := dataloader.Group(records)
	var drawnRe []float64
	for _, name := range names {
		col, err := settings.CaseColor(name)
		if err != nil {
			return nil, err
		}
		pts := logPoints(name, groups[name], logger)

		scatter, err := plotter.NewScatter(pts.XYs)
		if err != nil {
			return nil, errors.Wrapf(err, "plotting %s", name)
		}
		scatter.GlyphStyle.Color = col
		scatter.GlyphStyle.Shape = draw.CircleGlyph{}
		scatter.GlyphStyle.Radius = vg.Points(3)

		if len(pts.XYs) > 0 {
			bars, err := plotter.NewYErrorBars(pts)
			if err != nil {
				return nil, errors.Wrapf(err, "error bars for %s", name)
			}
			bars.LineStyle.Color = col
			p.Add(bars, scatter)
		}

		label := settings.CaseLabel(name)
		p.Legend.Add(label, scatter)
		fig.series = append(fig.series, Series{
			Name:  label,
			Color: col,
			XYs:   pts.XYs,
			YErrs: pts.YErrors,
		})
		for _, xy := range pts.XYs {
			drawnRe = append(drawnRe, xy.X)
		}
	}

	if err := fig.addLine(ReferenceLabel, referenceLine(), settings.ReferenceColor, nil); err != nil {
		return nil, err
	}

	if opts.Fit != nil && len(drawnRe) > 0 {
		lo, hi := floats.Min(drawnRe), floats.Max(drawnRe)
		if lo == hi {
			lo, hi = lo/2, hi*2
		}
		res := make([]float64, nFitPoints)
		floats.LogSpan(res, lo, hi)
		xys := make(plotter.XYs, nFitPoints)
		for i, re := range res {
			xys[i].X = re
			xys[i].Y = opts.Fit.At(re)
		}
		dashes := []vg.Length{vg.Points(4), vg.Points(2)}
		if err := fig.addLine(opts.Fit.Label(), xys, color.Black, dashes); err != nil {
			return nil, err
		}
	}
	return fig, nil
}

func (f *Figure) addLine(name string, xys plotter.XYs, col color.Color, dashes []vg.Length) error {
	line, err := plotter.NewLine(xys)
	if err != nil {
		return errors.Wrapf(err, "plotting %s", name)
	}
	line.LineStyle.Color = col
	line.LineStyle.Width = vg.Points(1.5)
	line.LineStyle.Dashes = dashes
	f.plot.Add(line)
	f.plot.Legend.Add(name, line)
	f.series = append(f.series, Series{Name: name, Color: col, XYs: xys})
	return nil
}

// logPoints returns the points of records that can be drawn on log axes.
func logPoints(name string, records []dataloader.Record, logger *zap.Logger) errPoints {
	var pts errPoints
	for _, r := range records {
		if !(r.Re > 0) || !(r.BKMIntegral > 0) || math.IsInf(r.Re, 0) || math.IsInf(r.BKMIntegral, 0) {
			logger.Warn("dropping point outside the log axes",
				zap.String("case", name),
				zap.Float64("re", r.Re),
				zap.Float64("bkm_integral", r.BKMIntegral),
			)
			continue
		}
		low := r.Error
		if r.BKMIntegral-low <= 0 {
			logger.Debug("lower error bar reaches zero",
				zap.String("case", name),
				zap.Float64("re", r.Re),
			)
			low = 0
		}
		pts.XYs = append(pts.XYs, plotter.XY{X: r.Re, Y: r.BKMIntegral})
		pts.YErrors = append(pts.YErrors, struct{ Low, High float64 }{Low: low, High: r.Error})
	}
	return pts
}

// Series returns the legend entries in drawing order.
func (f *Figure) Series() []Series {
	s := make([]Series, len(f.series))
	copy(s, f.series)
	return s
}

// Save writes the figure to filename, overwriting any existing file. The
// image format is taken from the extension. The directory is created if
// needed.
func (f *Figure) Save(filename string) error {
	if err := os.MkdirAll(filepath.Dir(filename), 0755); err != nil {
		return errors.Wrap(err, "creating output directory")
	}
	if err := f.plot.Save(figWidth, figHeight, filename); err != nil {
		return errors.Wrapf(err, "saving %s", filename)
	}
	return nil
}
