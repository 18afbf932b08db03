// Package histogram bins per-team simulated scores into a fixed number of
// equal-width buckets suitable for charting.
package histogram

import (
	"errors"
	"fmt"
	"math"
	"strconv"

	"gonum.org/v1/gonum/floats"
)

// BinCount is the number of buckets every table is built with.
const BinCount = 12

var (
	// ErrNoSamples is returned when both teams have no samples. Callers are expected to
	// detect the zero-simulation state before binning.
	ErrNoSamples = errors.New("histogram: no samples")
	// ErrNonFinite is returned when a sample is NaN or infinite.
	ErrNonFinite = errors.New("histogram: non-finite sample")
)

// Bin is one contiguous score range with the number of samples per team that fell in it.
type Bin struct {
	Label      string  `json:"label"`
	RangeStart float64 `json:"range_start"`
	RangeEnd   float64 `json:"range_end"`
	HomeCount  int     `json:"home_count"`
	AwayCount  int     `json:"away_count"`
}

// Table is the binned output. HomeCounts and AwayCounts are index-aligned with Bins.
type Table struct {
	Bins       []Bin
	HomeCounts []int
	AwayCounts []int
	Min        float64
	Max        float64
	Width      float64
}

// Labels returns the display label of every bin in order.
func (t Table) Labels() []string {
	labels := make([]string, len(t.Bins))
	for i, b := range t.Bins {
		labels[i] = b.Label
	}
	return labels
}

// Degenerate reports whether all samples had the same value.
func (t Table) Degenerate() bool {
	return t.Width == 0
}

// Build bins home and away samples over the combined [min, max] range.
// The maximum sample is clamped into the last bin. When every sample is equal the
// table collapses: all samples land in bin 0 and every bin is labelled round(min).
func Build(home, away []float64) (Table, error) {
	if len(home)+len(away) == 0 {
		return Table{}, ErrNoSamples
	}
	if err := checkFinite("home", home); err != nil {
		return Table{}, err
	}
	if err := checkFinite("away", away); err != nil {
		return Table{}, err
	}

	lo, hi := bounds(home, away)
	width := (hi - lo) / BinCount

	t := Table{
		Bins:       make([]Bin, BinCount),
		HomeCounts: make([]int, BinCount),
		AwayCounts: make([]int, BinCount),
		Min:        lo,
		Max:        hi,
		Width:      width,
	}

	if width == 0 {
		label := formatBound(lo)
		for i := range t.Bins {
			t.Bins[i] = Bin{Label: label, RangeStart: lo, RangeEnd: lo}
		}
	} else {
		edges := make([]float64, BinCount+1)
		floats.Span(edges, lo, hi)
		for i := range t.Bins {
			t.Bins[i] = Bin{
				Label:      formatBound(edges[i]) + "-" + formatBound(edges[i+1]),
				RangeStart: edges[i],
				RangeEnd:   edges[i+1],
			}
		}
	}

	for _, s := range home {
		t.HomeCounts[binIndex(s, lo, width)]++
	}
	for _, s := range away {
		t.AwayCounts[binIndex(s, lo, width)]++
	}
	for i := range t.Bins {
		t.Bins[i].HomeCount = t.HomeCounts[i]
		t.Bins[i].AwayCount = t.AwayCounts[i]
	}
	return t, nil
}

func binIndex(s, lo, width float64) int {
	if width == 0 {
		return 0
	}
	idx := int(math.Floor((s - lo) / width))
	if idx < 0 {
		return 0
	}
	if idx > BinCount-1 {
		return BinCount - 1
	}
	return idx
}

func bounds(home, away []float64) (float64, float64) {
	switch {
	case len(home) == 0:
		return floats.Min(away), floats.Max(away)
	case len(away) == 0:
		return floats.Min(home), floats.Max(home)
	}
	return math.Min(floats.Min(home), floats.Min(away)), math.Max(floats.Max(home), floats.Max(away))
}

func checkFinite(team string, samples []float64) error {
	for i, s := range samples {
		if math.IsNaN(s) || math.IsInf(s, 0) {
			return fmt.Errorf("%w: %s[%d]=%v", ErrNonFinite, team, i, s)
		}
	}
	return nil
}

// formatBound rounds half up, matching how chart labels were produced by the web client
// (-2.5 becomes -2, not -3).
func formatBound(v float64) string {
	return strconv.FormatFloat(math.Floor(v+0.5), 'f', 0, 64)
}
