package server

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/preston-bernstein/cricket-sim-service/internal/app/simulations"
	"github.com/preston-bernstein/cricket-sim-service/internal/config"
	"github.com/preston-bernstein/cricket-sim-service/internal/domain"
	"github.com/preston-bernstein/cricket-sim-service/internal/loader"
	"github.com/preston-bernstein/cricket-sim-service/internal/metrics"
	"github.com/preston-bernstein/cricket-sim-service/internal/providers/fixture"
	"github.com/preston-bernstein/cricket-sim-service/internal/storage/sqlite"
	"github.com/preston-bernstein/cricket-sim-service/internal/store"
)

// DataLoader imports the dataset once and reports the outcome for readiness checks.
type DataLoader interface {
	Load(ctx context.Context, target loader.Target) (loader.Result, error)
	Status() loader.Status
}

// backend is the store the server reads from and the loader writes into.
type backend interface {
	simulations.Store
	loader.Target
	Close() error
}

type memoryBackend struct {
	*store.MemoryStore
}

func (memoryBackend) Close() error { return nil }

// buildData selects the backend and loader for the configured data source.
func buildData(ctx context.Context, cfg config.Config, logger *slog.Logger, recorder *metrics.Recorder) (backend, *loader.Loader, error) {
	switch cfg.Data.Source {
	case config.SourceFixture:
		read := func() (domain.Dataset, error) { return fixture.Dataset(), nil }
		return memoryBackend{store.NewMemoryStore()}, loader.NewWithReader(config.SourceFixture, read, logger, recorder), nil
	case config.SourceMemory:
		return memoryBackend{store.NewMemoryStore()}, loader.New(cfg.Data.Dir, logger, recorder), nil
	case config.SourceSQLite, "":
		db, err := sqlite.Open(ctx, cfg.Data.DatabasePath)
		if err != nil {
			return nil, nil, fmt.Errorf("open database: %w", err)
		}
		return db, loader.New(cfg.Data.Dir, logger, recorder), nil
	default:
		return nil, nil, fmt.Errorf("unknown data source %q", cfg.Data.Source)
	}
}
