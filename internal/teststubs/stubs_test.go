package teststubs

import (
	"context"
	"errors"
	"testing"

	"github.com/preston-bernstein/cricket-sim-service/internal/domain"
	"github.com/preston-bernstein/cricket-sim-service/internal/providers"
)

var _ providers.ResultsProvider = (*StubProvider)(nil)

func TestStubProviderTracksCalls(t *testing.T) {
	err := errors.New("boom")
	p := &StubProvider{Matches: []domain.Match{{ID: 1}}, Err: err, Notify: make(chan struct{})}
	if _, got := p.ListMatches(context.Background()); !errors.Is(got, err) {
		t.Fatalf("expected error passthrough, got %v", got)
	}
	if _, got := p.FetchResults(context.Background(), 1); !errors.Is(got, err) {
		t.Fatalf("expected error passthrough, got %v", got)
	}
	if p.Calls.Load() != 2 {
		t.Fatalf("expected call count 2, got %d", p.Calls.Load())
	}
	select {
	case <-p.Notify:
	default:
		t.Fatalf("expected notify channel closed")
	}
}

func TestStubProviderMissingResultIsNotFound(t *testing.T) {
	p := &StubProvider{Results: map[int]domain.SimulationResults{1: {GameInfo: domain.GameInfo{ID: 1}}}}
	res, err := p.FetchResults(context.Background(), 1)
	if err != nil || res.GameInfo.ID != 1 {
		t.Fatalf("expected result for match 1, got %+v err %v", res, err)
	}
	if _, err := p.FetchResults(context.Background(), 2); !errors.Is(err, providers.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestStubStore(t *testing.T) {
	ctx := context.Background()
	s := &StubStore{
		Games:  map[int]domain.GameInfo{1: {ID: 1}},
		Scores: map[int][]float64{4: {120, 130}},
	}
	if _, err := s.GameInfo(ctx, 2); !errors.Is(err, domain.ErrMatchNotFound) {
		t.Fatalf("expected ErrMatchNotFound, got %v", err)
	}
	if scores, err := s.TeamScores(ctx, 4); err != nil || len(scores) != 2 {
		t.Fatalf("unexpected scores %v err %v", scores, err)
	}

	boom := errors.New("boom")
	s.ScoresErr = boom
	if _, err := s.TeamScores(ctx, 4); !errors.Is(err, boom) {
		t.Fatalf("expected injected error, got %v", err)
	}
}
