// Package simulations assembles match listings, win statistics and score histograms
// from a store of simulation runs.
package simulations

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"

	"golang.org/x/sync/errgroup"

	"github.com/preston-bernstein/cricket-sim-service/internal/domain"
)

// ErrNoSimulations is returned when either team of a match has no simulation runs.
var ErrNoSimulations = errors.New("no simulation data found")

// Store is the read contract the service needs.
type Store interface {
	ListMatches(ctx context.Context) ([]domain.Match, error)
	GameInfo(ctx context.Context, id int) (domain.GameInfo, error)
	TeamScores(ctx context.Context, teamID int) ([]float64, error)
}

// Service coordinates simulation lookups using a Store.
type Service struct {
	store  Store
	charts *ChartBuilder
	logger *slog.Logger
}

// NewService constructs a Service. charts may be nil.
func NewService(store Store, charts *ChartBuilder, logger *slog.Logger) *Service {
	if charts == nil {
		charts = NewChartBuilder(logger, nil)
	}
	return &Service{store: store, charts: charts, logger: logger}
}

// Matches lists every match ordered by id.
func (s *Service) Matches(ctx context.Context) ([]domain.Match, error) {
	return s.store.ListMatches(ctx)
}

// Results assembles the full simulation payload for a match.
// With ErrNoSimulations the returned payload still carries GameInfo.
func (s *Service) Results(ctx context.Context, id int) (domain.SimulationResults, error) {
	info, err := s.store.GameInfo(ctx, id)
	if err != nil {
		return domain.SimulationResults{}, err
	}
	res := domain.SimulationResults{GameInfo: info}

	var home, away []float64
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		home, err = s.store.TeamScores(gctx, info.HomeTeam.ID)
		return err
	})
	g.Go(func() error {
		var err error
		away, err = s.store.TeamScores(gctx, info.AwayTeam.ID)
		return err
	})
	if err := g.Wait(); err != nil {
		return res, fmt.Errorf("load scores for match %d: %w", id, err)
	}

	switch {
	case len(home) == 0:
		return res, fmt.Errorf("%w for %s", ErrNoSimulations, info.HomeTeam.Name)
	case len(away) == 0:
		return res, fmt.Errorf("%w for %s", ErrNoSimulations, info.AwayTeam.Name)
	}

	res.Statistics = WinStatistics(home, away)
	res.SimulationResults = domain.ScoreSamples{HomeTeamScores: home, AwayTeamScores: away}
	return res, nil
}

// Histogram loads a match and bins its scores. A match without simulation runs yields
// the no-data view rather than an error.
func (s *Service) Histogram(ctx context.Context, id int) (ChartView, error) {
	res, err := s.Results(ctx, id)
	if errors.Is(err, ErrNoSimulations) {
		return noDataView(res), nil
	}
	if err != nil {
		return ChartView{}, err
	}
	return s.charts.Build(ctx, res)
}

// WinStatistics pairs runs by index up to the shorter sample set and counts home wins.
// Percentages are rounded to one decimal; away is the complement of home.
func WinStatistics(home, away []float64) domain.Statistics {
	total := min(len(home), len(away))
	if total == 0 {
		return domain.Statistics{}
	}
	wins := 0
	for i := 0; i < total; i++ {
		if home[i] > away[i] {
			wins++
		}
	}
	homePct := round1(float64(wins) / float64(total) * 100)
	return domain.Statistics{
		TotalSimulations:      total,
		HomeTeamWinPercentage: homePct,
		AwayTeamWinPercentage: round1(100 - homePct),
	}
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
