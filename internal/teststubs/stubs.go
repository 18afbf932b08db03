package teststubs

import (
	"context"
	"sync/atomic"

	"github.com/preston-bernstein/cricket-sim-service/internal/domain"
	"github.com/preston-bernstein/cricket-sim-service/internal/providers"
)

// StubProvider is a test double for providers.ResultsProvider.
type StubProvider struct {
	Matches []domain.Match
	Results map[int]domain.SimulationResults
	Err     error
	Calls   atomic.Int32
	Notify  chan struct{}
}

// ListMatches returns the configured matches and error while tracking calls.
func (s *StubProvider) ListMatches(ctx context.Context) ([]domain.Match, error) {
	_ = ctx
	s.notify()
	s.Calls.Add(1)
	return s.Matches, s.Err
}

// FetchResults returns the configured results for matchID, or providers.ErrNotFound.
func (s *StubProvider) FetchResults(ctx context.Context, matchID int) (domain.SimulationResults, error) {
	_ = ctx
	s.notify()
	s.Calls.Add(1)
	if s.Err != nil {
		return domain.SimulationResults{}, s.Err
	}
	res, ok := s.Results[matchID]
	if !ok {
		return domain.SimulationResults{}, providers.ErrNotFound
	}
	return res, nil
}

func (s *StubProvider) notify() {
	if s.Notify == nil {
		return
	}
	select {
	case <-s.Notify:
	default:
		close(s.Notify)
	}
}

// StubStore is a test double for the simulations read contract with per-call errors.
type StubStore struct {
	MatchList []domain.Match
	Games     map[int]domain.GameInfo
	Scores    map[int][]float64
	ListErr   error
	InfoErr   error
	ScoresErr error
}

// ListMatches returns MatchList or ListErr.
func (s *StubStore) ListMatches(ctx context.Context) ([]domain.Match, error) {
	if s.ListErr != nil {
		return nil, s.ListErr
	}
	return s.MatchList, ctx.Err()
}

// GameInfo returns the configured game or domain.ErrMatchNotFound.
func (s *StubStore) GameInfo(ctx context.Context, id int) (domain.GameInfo, error) {
	if s.InfoErr != nil {
		return domain.GameInfo{}, s.InfoErr
	}
	info, ok := s.Games[id]
	if !ok {
		return domain.GameInfo{}, domain.ErrMatchNotFound
	}
	return info, ctx.Err()
}

// TeamScores returns the configured scores for teamID.
func (s *StubStore) TeamScores(ctx context.Context, teamID int) ([]float64, error) {
	if s.ScoresErr != nil {
		return nil, s.ScoresErr
	}
	return s.Scores[teamID], ctx.Err()
}
