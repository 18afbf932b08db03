package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/preston-bernstein/cricket-sim-service/internal/app/simulations"
	"github.com/preston-bernstein/cricket-sim-service/internal/logging"
	"github.com/preston-bernstein/cricket-sim-service/internal/providers"
	"github.com/preston-bernstein/cricket-sim-service/internal/providers/api"
	"github.com/preston-bernstein/cricket-sim-service/internal/providers/local"
	"github.com/preston-bernstein/cricket-sim-service/internal/storage/sqlite"
)

const apiProviderName = "api"

// source returns the injected provider when set, else the one selected by flags.
func (c *cli) source(ctx context.Context) (providers.ResultsProvider, func(), error) {
	if c.newSource != nil {
		return c.newSource(ctx)
	}
	return c.openSource(ctx)
}

// openSource returns the results provider selected by --api or --db, plus a close func.
func (c *cli) openSource(ctx context.Context) (providers.ResultsProvider, func(), error) {
	if url := strings.TrimSpace(c.apiURL); url != "" {
		client := api.NewClient(api.Config{BaseURL: url, Timeout: c.timeout})
		return providers.NewRetryingProvider(client, c.logger, nil, apiProviderName, 0, 0), func() {}, nil
	}

	if _, err := os.Stat(c.dbPath); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil, fmt.Errorf("no database at %s: run `simctl import` first or pass --api", c.dbPath)
		}
		return nil, nil, fmt.Errorf("failed to stat db: %w", err)
	}
	st, err := sqlite.Open(ctx, c.dbPath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open db: %w", err)
	}
	svc := simulations.NewService(st, nil, c.logger)
	closeFn := func() {
		if cerr := st.Close(); cerr != nil {
			logging.Warn(c.logger, "failed to close db", logging.FieldError, cerr)
		}
	}
	return local.New(svc), closeFn, nil
}

// describeFetchError turns provider errors into messages a terminal user can act on.
func (c *cli) describeFetchError(matchID int, err error) error {
	if errors.Is(err, providers.ErrNotFound) {
		return fmt.Errorf("match %d not found or has no simulation data", matchID)
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("timed out after %s waiting for match %d; try again or raise --timeout", c.timeout, matchID)
	}
	if _, ok := providers.AsRateLimitError(err); ok || errors.Is(err, providers.ErrProviderUnavailable) {
		return fmt.Errorf("results service unavailable, try again: %w", err)
	}
	return err
}
