package histogram

import (
	"errors"
	"math"
	"testing"
)

func TestNewChartAlignsDatasetsWithLabels(t *testing.T) {
	chart, err := NewChart("Sydney Sixers", []float64{140, 165, 190}, "Perth Scorchers", []float64{150, 155})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(chart.Labels) != BinCount {
		t.Fatalf("expected %d labels, got %d", BinCount, len(chart.Labels))
	}
	if len(chart.Datasets) != 2 {
		t.Fatalf("expected 2 datasets, got %d", len(chart.Datasets))
	}
	if chart.Datasets[0].Name != "Sydney Sixers" || chart.Datasets[1].Name != "Perth Scorchers" {
		t.Fatalf("unexpected dataset names %+v", chart.Datasets)
	}
	for _, ds := range chart.Datasets {
		if len(ds.Counts) != len(chart.Labels) {
			t.Fatalf("dataset %s has %d counts for %d labels", ds.Name, len(ds.Counts), len(chart.Labels))
		}
	}
	if chart.Datasets[0].Summary.Count != 3 || chart.Datasets[1].Summary.Count != 2 {
		t.Fatalf("unexpected summaries %+v", chart.Datasets)
	}
}

func TestNewChartPropagatesEmptyInput(t *testing.T) {
	if _, err := NewChart("a", nil, "b", nil); !errors.Is(err, ErrNoSamples) {
		t.Fatalf("expected ErrNoSamples, got %v", err)
	}
}

func TestSummarize(t *testing.T) {
	s := Summarize([]float64{2, 4, 4, 4, 5, 5, 7, 9})
	if s.Count != 8 || s.Min != 2 || s.Max != 9 {
		t.Fatalf("unexpected summary %+v", s)
	}
	if s.Mean != 5 {
		t.Fatalf("expected mean 5, got %v", s.Mean)
	}
	// sample standard deviation: sqrt(32/7)
	if math.Abs(s.StdDev-math.Sqrt(32.0/7)) > 1e-9 {
		t.Fatalf("unexpected std dev %v", s.StdDev)
	}
}

func TestSummarizeEdgeCases(t *testing.T) {
	if got := Summarize(nil); got != (Summary{}) {
		t.Fatalf("expected zero summary, got %+v", got)
	}
	single := Summarize([]float64{88})
	if single.StdDev != 0 || single.Mean != 88 {
		t.Fatalf("expected single-sample summary with zero spread, got %+v", single)
	}
}

func TestNewChartFlagsDegenerateRange(t *testing.T) {
	chart, err := NewChart("home", []float64{50, 50}, "away", []float64{50})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !chart.Degenerate {
		t.Fatalf("expected degenerate chart")
	}
	if chart.Datasets[0].Counts[0] != 2 || chart.Datasets[1].Counts[0] != 1 {
		t.Fatalf("expected all samples in bin 0, got %+v", chart.Datasets)
	}
}
