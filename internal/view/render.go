package view

import (
	"errors"
	"fmt"
	"io"
	"math"

	chart "github.com/wcharczuk/go-chart/v2"

	"github.com/xolan/swimlog/internal/swimtime"
)

// ErrNoData is returned by Render when no series has a drawable point.
var ErrNoData = errors.New("no chart data")

// ErrUnsupportedImage is returned for an unknown image format.
var ErrUnsupportedImage = errors.New("unsupported chart image format")

// ImageFormat is a chart output encoding.
type ImageFormat string

const (
	PNG ImageFormat = "png"
	SVG ImageFormat = "svg"
)

// RenderOptions controls the chart image.
type RenderOptions struct {
	Format ImageFormat
	Width  int
	Height int
	Title  string
}

// DefaultRenderOptions returns a 1024x600 PNG.
func DefaultRenderOptions() RenderOptions {
	return RenderOptions{
		Format: PNG,
		Width:  1024,
		Height: 600,
		Title:  "Swimming Time Progress",
	}
}

const maxXTicks = 12

// Render draws the chart as a line chart with one series per event.
// Undecodable times and times beyond the last label are left out; events
// without any remaining point are not drawn.
func Render(c Chart, w io.Writer, opts RenderOptions) error {
	var provider chart.RendererProvider
	switch opts.Format {
	case PNG, "":
		provider = chart.PNG
	case SVG:
		provider = chart.SVG
	default:
		return fmt.Errorf("%w: %s", ErrUnsupportedImage, opts.Format)
	}

	series, maxY := buildSeries(c)
	if len(series) == 0 {
		return ErrNoData
	}

	defaults := DefaultRenderOptions()
	if opts.Width <= 0 {
		opts.Width = defaults.Width
	}
	if opts.Height <= 0 {
		opts.Height = defaults.Height
	}

	yMax, yTicks := timeTicks(maxY, 6)
	ch := chart.Chart{
		Title:      opts.Title,
		Width:      opts.Width,
		Height:     opts.Height,
		Background: chart.Style{Padding: chart.Box{Top: 40, Left: 16, Right: 12, Bottom: 16}},
		XAxis:      entryAxis(c.Labels),
		YAxis: chart.YAxis{
			Name:  "Time",
			Range: &chart.ContinuousRange{Min: 0, Max: yMax},
			Ticks: yTicks,
		},
		Series: series,
	}
	ch.Elements = []chart.Renderable{chart.Legend(&ch)}

	if err := ch.Render(provider, w); err != nil {
		return fmt.Errorf("failed to render chart: %w", err)
	}
	return nil
}

func buildSeries(c Chart) ([]chart.Series, float64) {
	var out []chart.Series
	maxY := 0.0
	for i, s := range c.Series {
		var xs, ys []float64
		for j, v := range s.Values {
			if j >= len(c.Labels) {
				break
			}
			if !v.IsValid() {
				continue
			}
			xs = append(xs, float64(j+1))
			ys = append(ys, float64(v))
			maxY = math.Max(maxY, float64(v))
		}
		if len(xs) == 0 {
			continue
		}
		col := chart.GetDefaultColor(i)
		out = append(out, chart.ContinuousSeries{
			Name:    s.Name,
			XValues: xs,
			YValues: ys,
			Style: chart.Style{
				StrokeWidth: 2,
				StrokeColor: col,
				DotWidth:    3,
				DotColor:    col,
			},
		})
	}
	return out, maxY
}

// entryAxis places one tick per label at x = ordinal, thinned to at most
// maxXTicks labels.
func entryAxis(labels []string) chart.XAxis {
	step := 1
	if len(labels) > maxXTicks {
		step = int(math.Ceil(float64(len(labels)) / maxXTicks))
	}

	ticks := make([]chart.Tick, 0, maxXTicks+1)
	for i := 0; i < len(labels); i += step {
		ticks = append(ticks, chart.Tick{Value: float64(i + 1), Label: labels[i]})
	}

	lo, hi := 1.0, float64(len(labels))
	if hi <= lo {
		lo, hi = 0, 2
	}
	return chart.XAxis{
		Name:  "Entry",
		Ticks: ticks,
		Range: &chart.ContinuousRange{Min: lo, Max: hi},
	}
}

// tickSteps are candidate y-axis steps in hundredths of a second.
var tickSteps = []float64{
	1, 5, 10, 50, 100, 200, 500, 1000, 1500, 3000, 6000, 12000, 30000, 60000, 180000, 360000,
}

// timeTicks returns an axis maximum and ticks from zero to it, labelled
// as swim times.
func timeTicks(maxY float64, n int) (float64, []chart.Tick) {
	if maxY <= 0 {
		maxY = 100
	}
	step := tickSteps[len(tickSteps)-1]
	for _, s := range tickSteps {
		if maxY/s <= float64(n) {
			step = s
			break
		}
	}
	top := math.Ceil(maxY/step) * step
	if top == maxY {
		top += step
	}

	ticks := make([]chart.Tick, 0, n+2)
	for v := 0.0; v <= top+step/2; v += step {
		ticks = append(ticks, chart.Tick{Value: v, Label: swimtime.Format(swimtime.Measure(v))})
	}
	return top, ticks
}
