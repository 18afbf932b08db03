// Package local serves results straight from the simulations service without HTTP.
package local

import (
	"context"
	"errors"
	"fmt"

	"github.com/preston-bernstein/cricket-sim-service/internal/app/simulations"
	"github.com/preston-bernstein/cricket-sim-service/internal/domain"
	"github.com/preston-bernstein/cricket-sim-service/internal/providers"
)

// Source is the subset of the simulations service the provider reads from.
type Source interface {
	Matches(ctx context.Context) ([]domain.Match, error)
	Results(ctx context.Context, id int) (domain.SimulationResults, error)
}

// Provider adapts a Source to providers.ResultsProvider.
type Provider struct {
	source Source
}

// New wraps a Source.
func New(source Source) *Provider {
	return &Provider{source: source}
}

// ListMatches returns every match.
func (p *Provider) ListMatches(ctx context.Context) ([]domain.Match, error) {
	return p.source.Matches(ctx)
}

// FetchResults returns the results for one match. Missing matches and matches without
// simulations both map to providers.ErrNotFound.
func (p *Provider) FetchResults(ctx context.Context, matchID int) (domain.SimulationResults, error) {
	res, err := p.source.Results(ctx, matchID)
	if errors.Is(err, domain.ErrMatchNotFound) || errors.Is(err, simulations.ErrNoSimulations) {
		return domain.SimulationResults{}, fmt.Errorf("match %d: %w: %v", matchID, providers.ErrNotFound, err)
	}
	if err != nil {
		return domain.SimulationResults{}, err
	}
	return res, nil
}
