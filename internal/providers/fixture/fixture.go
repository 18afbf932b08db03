// Package fixture generates a deterministic dataset for local runs and bootstrapping.
package fixture

import (
	"math"
	"math/rand/v2"
	"time"

	"gonum.org/v1/gonum/stat/distuv"

	"github.com/preston-bernstein/cricket-sim-service/internal/domain"
)

const (
	// DefaultRuns is the number of simulated innings generated per team.
	DefaultRuns = 1000
	// DefaultSeed keeps Dataset reproducible across runs.
	DefaultSeed uint64 = 20240105

	scoreSigma = 18
)

type teamProfile struct {
	name      string
	meanScore float64
}

var profiles = []teamProfile{
	{"Adelaide Strikers", 168},
	{"Brisbane Heat", 162},
	{"Melbourne Stars", 171},
	{"Perth Scorchers", 176},
	{"Sydney Sixers", 173},
	// no simulations; its fixtures exercise the no-data path
	{"Hobart Hurricanes", 0},
}

var venues = []string{"Adelaide Oval", "The Gabba", "MCG", "Optus Stadium", "SCG"}

// fixtures lists home, away and venue indexes.
var fixtures = [][3]int{
	{0, 1, 0},
	{2, 3, 2},
	{4, 0, 4},
	{3, 2, 3},
	{1, 4, 1},
	{5, 0, 0},
}

// Dataset returns the default fixture dataset.
func Dataset() domain.Dataset {
	return Generate(DefaultRuns, DefaultSeed)
}

// Generate builds venues, teams and games, then samples runs innings per team from a
// normal distribution around each team's mean. Scores are whole runs, never negative.
func Generate(runs int, seed uint64) domain.Dataset {
	var ds domain.Dataset
	for i, name := range venues {
		ds.Venues = append(ds.Venues, domain.Venue{ID: i, Name: name})
	}
	for i, p := range profiles {
		ds.Teams = append(ds.Teams, domain.Team{ID: i, Name: p.name})
	}

	start := time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC)
	for i, f := range fixtures {
		ds.Games = append(ds.Games, domain.Game{
			ID:         i + 1,
			HomeTeamID: f[0],
			AwayTeamID: f[1],
			VenueID:    f[2],
			Date:       start.AddDate(0, 0, 3*i),
		})
	}

	src := rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)
	for i, p := range profiles {
		if p.meanScore == 0 {
			continue
		}
		dist := distuv.Normal{Mu: p.meanScore, Sigma: scoreSigma, Src: src}
		for run := 1; run <= runs; run++ {
			ds.Simulations = append(ds.Simulations, domain.SimulationRun{
				TeamID:    i,
				RunNumber: run,
				Result:    math.Max(0, math.Round(dist.Rand())),
			})
		}
	}
	return ds
}
