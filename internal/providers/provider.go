package providers

import (
	"context"

	"github.com/preston-bernstein/cricket-sim-service/internal/domain"
)

// ResultsProvider supplies matches and their pre-computed simulation results.
type ResultsProvider interface {
	ListMatches(ctx context.Context) ([]domain.Match, error)
	FetchResults(ctx context.Context, matchID int) (domain.SimulationResults, error)
}
