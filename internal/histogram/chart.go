package histogram

// Dataset is one team's series in a chart payload.
type Dataset struct {
	Name    string  `json:"name"`
	Counts  []int   `json:"counts"`
	Summary Summary `json:"summary"`
}

// Chart is the payload handed to a rendering layer: labels plus one dataset per team,
// with counts index-aligned to labels.
type Chart struct {
	Labels     []string  `json:"labels"`
	Datasets   []Dataset `json:"datasets"`
	Bins       []Bin     `json:"bins"`
	Degenerate bool      `json:"degenerate"`
}

// NewChart builds the chart payload for a home/away pair of sample sets.
func NewChart(homeName string, home []float64, awayName string, away []float64) (Chart, error) {
	t, err := Build(home, away)
	if err != nil {
		return Chart{}, err
	}
	return Chart{
		Labels: t.Labels(),
		Datasets: []Dataset{
			{Name: homeName, Counts: t.HomeCounts, Summary: Summarize(home)},
			{Name: awayName, Counts: t.AwayCounts, Summary: Summarize(away)},
		},
		Bins:       t.Bins,
		Degenerate: t.Degenerate(),
	}, nil
}
