package dashboard

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/preston-bernstein/nba-draft-roi/internal/analysis"
)

const (
	chartWidth  = 640.0
	chartHeight = 280.0
	chartPad    = 40.0
	labelPad    = 140.0
)

type point struct {
	X, Y  float64
	Label string
}

// series is one labelled value per category.
type series struct {
	Labels []string
	Values []float64
}

// plot is the precomputed geometry of one SVG chart. Coordinates are
// formatted once here so the components only place them.
type plot struct {
	Title   string
	Axes    []segment
	Labels  []caption
	Bars    []mark
	Dots    []mark
	Points  []mark
	Line    string
	Caption string
}

type segment struct{ X1, Y1, X2, Y2 string }

type caption struct{ X, Y, Anchor, Text string }

// mark is a bar (X, Y, Width, Height) or a circle (X, Y as its centre).
type mark struct{ X, Y, Width, Height, Tip string }

func (p plot) empty() bool {
	return len(p.Bars) == 0 && len(p.Dots) == 0 && len(p.Points) == 0
}

func coord(v float64) string {
	return strconv.FormatFloat(v, 'f', 1, 64)
}

// scale maps v from [lo, hi] onto [outLo, outHi]; a flat domain maps to the midpoint.
func scale(v, lo, hi, outLo, outHi float64) float64 {
	if hi == lo {
		return (outLo + outHi) / 2
	}
	return outLo + (v-lo)/(hi-lo)*(outHi-outLo)
}

func bounds(values []float64) (float64, float64) {
	lo, hi := math.Inf(1), math.Inf(-1)
	for _, v := range values {
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}
	return lo, hi
}

func axes(left float64) []segment {
	return []segment{
		{X1: coord(left), Y1: coord(chartHeight - chartPad), X2: coord(chartWidth - chartPad), Y2: coord(chartHeight - chartPad)},
		{X1: coord(left), Y1: coord(chartPad / 2), X2: coord(left), Y2: coord(chartHeight - chartPad)},
	}
}

// barPlot lays out horizontal bars, one per label, scaled to the largest value.
func barPlot(title string, s series) plot {
	p := plot{Title: title}
	if len(s.Values) == 0 {
		return p
	}
	_, hi := bounds(s.Values)
	if hi <= 0 {
		hi = 1
	}
	p.Axes = axes(labelPad)
	slot := (chartHeight - chartPad*1.5) / float64(len(s.Values))
	for i, v := range s.Values {
		y := chartPad/2 + float64(i)*slot
		p.Labels = append(p.Labels, caption{X: coord(labelPad - 6), Y: coord(y + slot*0.6), Anchor: "end", Text: s.Labels[i]})
		p.Bars = append(p.Bars, mark{
			X:      coord(labelPad),
			Y:      coord(y + slot*0.15),
			Width:  coord(scale(v, 0, hi, 0, chartWidth-chartPad-labelPad)),
			Height: coord(slot * 0.7),
			Tip:    s.Labels[i] + ": " + number(v),
		})
	}
	return p
}

// linePlot connects the values left to right with evenly spaced labels on the x axis.
func linePlot(title string, s series) plot {
	p := plot{Title: title}
	if len(s.Values) == 0 {
		return p
	}
	lo, hi := bounds(s.Values)
	lo = math.Min(lo, 0)
	p.Axes = axes(chartPad)
	coords := make([]string, len(s.Values))
	for i, v := range s.Values {
		x := scale(float64(i), 0, float64(len(s.Values)-1), chartPad*1.5, chartWidth-chartPad*1.5)
		y := scale(v, lo, hi, chartHeight-chartPad, chartPad/2)
		coords[i] = coord(x) + "," + coord(y)
		p.Dots = append(p.Dots, mark{X: coord(x), Y: coord(y), Tip: s.Labels[i] + ": " + number(v)})
		p.Labels = append(p.Labels, caption{X: coord(x), Y: coord(chartHeight - chartPad + 16), Anchor: "middle", Text: s.Labels[i]})
	}
	p.Line = strings.Join(coords, " ")
	return p
}

// scatterPlot plots x against y from zero; xName and yName label the tooltips
// and xName captions the x axis.
func scatterPlot(title, xName, yName string, points []point) plot {
	p := plot{Title: title}
	if len(points) == 0 {
		return p
	}
	xs := make([]float64, len(points))
	ys := make([]float64, len(points))
	for i, pt := range points {
		xs[i], ys[i] = pt.X, pt.Y
	}
	xLo, xHi := bounds(xs)
	_, yHi := bounds(ys)
	p.Axes = axes(chartPad)
	for _, pt := range points {
		p.Points = append(p.Points, mark{
			X:   coord(scale(pt.X, xLo, xHi, chartPad*1.5, chartWidth-chartPad)),
			Y:   coord(scale(pt.Y, 0, yHi, chartHeight-chartPad, chartPad/2)),
			Tip: fmt.Sprintf("%s: %s %s, %s %s", pt.Label, xName, number(pt.X), yName, number(pt.Y)),
		})
	}
	p.Labels = append(p.Labels, caption{X: coord(chartWidth / 2), Y: coord(chartHeight - 6), Anchor: "middle", Text: xName})
	return p
}

// histogramPlot lays the bins out as adjacent vertical bars.
func histogramPlot(title string, bins []analysis.Bin) plot {
	p := plot{Title: title}
	if len(bins) == 0 {
		return p
	}
	maxCount := 0
	for _, bin := range bins {
		maxCount = max(maxCount, bin.Count)
	}
	p.Axes = axes(chartPad)
	slot := (chartWidth - chartPad*2) / float64(len(bins))
	for i, bin := range bins {
		h := scale(float64(bin.Count), 0, float64(max(maxCount, 1)), 0, chartHeight-chartPad*1.5)
		p.Bars = append(p.Bars, mark{
			X:      coord(chartPad + float64(i)*slot),
			Y:      coord(chartHeight - chartPad - h),
			Width:  coord(math.Max(slot-1, 1)),
			Height: coord(h),
			Tip:    fmt.Sprintf("%s to %s: %d", number(bin.Lower), number(bin.Upper), bin.Count),
		})
	}
	p.Labels = append(p.Labels, caption{X: coord(chartWidth / 2), Y: coord(chartHeight - 6), Anchor: "middle", Text: "Value score"})
	return p
}
