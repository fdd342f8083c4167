package analysis

import (
	"math"

	"github.com/preston-bernstein/nba-draft-roi/internal/domain/players"
)

// Histogram bin counts. Non-positive requests get DefaultBins; requests above
// MaxBins are capped.
const (
	DefaultBins = 20
	MaxBins     = 200
)

// Bin is one histogram bucket: [Lower, Upper), the last bucket closed.
type Bin struct {
	Lower float64 `json:"lower"`
	Upper float64 `json:"upper"`
	Count int     `json:"count"`
}

// Distribution describes the spread of value scores.
type Distribution struct {
	Count  int      `json:"count"`
	Mean   float64  `json:"mean"`
	Median float64  `json:"median"`
	StdDev *float64 `json:"stdDev"`
	Min    float64  `json:"min"`
	Max    float64  `json:"max"`
	Bins   []Bin    `json:"bins"`
}

// ValueDistribution summarises value scores into an equal-width histogram.
func ValueDistribution(vals []players.Valued, bins int) Distribution {
	if bins <= 0 {
		bins = DefaultBins
	}
	bins = min(bins, MaxBins)
	d := Distribution{Count: len(vals), Bins: []Bin{}}
	if len(vals) == 0 {
		return d
	}

	values := make([]float64, len(vals))
	d.Min, d.Max = math.Inf(1), math.Inf(-1)
	for i, v := range vals {
		values[i] = v.ValueScore
		d.Min = math.Min(d.Min, v.ValueScore)
		d.Max = math.Max(d.Max, v.ValueScore)
	}
	d.Mean = mean(values)
	d.Median = median(values)
	d.StdDev = stdDev(values)

	if d.Min == d.Max {
		d.Bins = []Bin{{Lower: d.Min, Upper: d.Max, Count: len(values)}}
		return d
	}
	width := (d.Max - d.Min) / float64(bins)
	d.Bins = make([]Bin, bins)
	for i := range d.Bins {
		d.Bins[i].Lower = d.Min + float64(i)*width
		d.Bins[i].Upper = d.Min + float64(i+1)*width
	}
	d.Bins[bins-1].Upper = d.Max
	for _, v := range values {
		idx := int((v - d.Min) / width)
		if idx >= bins {
			idx = bins - 1
		}
		d.Bins[idx].Count++
	}
	return d
}
