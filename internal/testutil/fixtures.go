package testutil

import (
	"time"

	"github.com/preston-bernstein/cricket-sim-service/internal/domain"
)

// Ids in SampleDataset.
const (
	SampleMatchID        = 1
	SampleNoDataMatchID  = 2
	SampleMissingMatchID = 99
)

var (
	sampleHomeScores = []float64{150, 172, 138, 190}
	sampleAwayScores = []float64{145, 160, 171, 130}
)

// SampleDataset returns a small dataset: match 1 has four runs per team (home wins three),
// match 2 involves a team with no simulation runs.
func SampleDataset() domain.Dataset {
	ds := domain.Dataset{
		Venues: []domain.Venue{{ID: 1, Name: "Adelaide Oval"}, {ID: 2, Name: "SCG"}},
		Teams: []domain.Team{
			{ID: 1, Name: "Adelaide Strikers"},
			{ID: 2, Name: "Sydney Sixers"},
			{ID: 3, Name: "Hobart Hurricanes"},
		},
		Games: []domain.Game{
			{ID: SampleMatchID, HomeTeamID: 1, AwayTeamID: 2, VenueID: 1, Date: time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC)},
			{ID: SampleNoDataMatchID, HomeTeamID: 2, AwayTeamID: 3, VenueID: 2, Date: time.Date(2024, 1, 6, 0, 0, 0, 0, time.UTC)},
		},
	}
	for i, s := range sampleHomeScores {
		ds.Simulations = append(ds.Simulations, domain.SimulationRun{TeamID: 1, RunNumber: i + 1, Result: s})
	}
	for i, s := range sampleAwayScores {
		ds.Simulations = append(ds.Simulations, domain.SimulationRun{TeamID: 2, RunNumber: i + 1, Result: s})
	}
	return ds
}

// SampleResults returns the expected payload for SampleMatchID.
func SampleResults() domain.SimulationResults {
	return domain.SimulationResults{
		GameInfo: domain.GameInfo{
			ID:       SampleMatchID,
			HomeTeam: domain.TeamInfo{ID: 1, Name: "Adelaide Strikers"},
			AwayTeam: domain.TeamInfo{ID: 2, Name: "Sydney Sixers"},
			Venue:    "Adelaide Oval",
			Date:     "2024-01-05",
		},
		Statistics: domain.Statistics{
			TotalSimulations:      4,
			HomeTeamWinPercentage: 75,
			AwayTeamWinPercentage: 25,
		},
		SimulationResults: domain.ScoreSamples{
			HomeTeamScores: append([]float64(nil), sampleHomeScores...),
			AwayTeamScores: append([]float64(nil), sampleAwayScores...),
		},
	}
}
