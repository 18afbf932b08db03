// Package loader imports match and simulation data into a store exactly once.
package loader

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/preston-bernstein/cricket-sim-service/internal/domain"
	"github.com/preston-bernstein/cricket-sim-service/internal/logging"
	"github.com/preston-bernstein/cricket-sim-service/internal/metrics"
)

// Target is a store that can receive a full dataset.
type Target interface {
	IsEmpty(ctx context.Context) (bool, error)
	Import(ctx context.Context, ds domain.Dataset) error
}

// ReadFunc produces the dataset to import.
type ReadFunc func() (domain.Dataset, error)

// Result summarizes one Load call.
type Result struct {
	Skipped     bool
	Venues      int
	Teams       int
	Games       int
	Simulations int
}

// Rows returns the total number of imported rows.
func (r Result) Rows() int {
	return r.Venues + r.Teams + r.Games + r.Simulations
}

// Status describes the outcome of the most recent load.
type Status struct {
	LastError   string
	LastAttempt time.Time
	LastSuccess time.Time
	Result      Result
}

// IsReady reports whether data has been loaded (or was already present).
func (s Status) IsReady() bool {
	return !s.LastSuccess.IsZero() && s.LastError == ""
}

// Loader reads a dataset from a source and imports it when the target is empty.
type Loader struct {
	source  string
	read    ReadFunc
	logger  *slog.Logger
	metrics *metrics.Recorder
	now     func() time.Time

	mu     sync.RWMutex
	status Status
}

// New builds a Loader that reads the CSV files in dir.
func New(dir string, logger *slog.Logger, recorder *metrics.Recorder) *Loader {
	return NewWithReader("csv", func() (domain.Dataset, error) { return ReadDir(dir) }, logger, recorder)
}

// NewWithReader builds a Loader over an arbitrary dataset source.
func NewWithReader(source string, read ReadFunc, logger *slog.Logger, recorder *metrics.Recorder) *Loader {
	return &Loader{
		source:  source,
		read:    read,
		logger:  logger,
		metrics: recorder,
		now:     time.Now,
	}
}

// Load imports the dataset into target unless target already holds data.
func (l *Loader) Load(ctx context.Context, target Target) (Result, error) {
	start := l.now()
	l.recordAttempt(start)

	res, err := l.load(ctx, target)
	elapsed := l.now().Sub(start)
	if !res.Skipped {
		l.metrics.RecordDataLoad(l.source, res.Rows(), elapsed, err)
	}
	if err != nil {
		logging.Error(l.logger, "data load failed", err, logging.FieldSource, l.source)
		l.recordFailure(err)
		return res, err
	}

	if res.Skipped {
		logging.Info(l.logger, "data already present, skipping import", logging.FieldSource, l.source)
	} else {
		logging.Info(l.logger, "data loaded",
			logging.FieldSource, l.source,
			"venues", res.Venues,
			"teams", res.Teams,
			"games", res.Games,
			"simulations", res.Simulations,
			logging.FieldDurationMS, elapsed.Milliseconds(),
		)
	}
	l.recordSuccess(start, res)
	return res, nil
}

func (l *Loader) load(ctx context.Context, target Target) (Result, error) {
	empty, err := target.IsEmpty(ctx)
	if err != nil {
		return Result{}, fmt.Errorf("check store: %w", err)
	}
	if !empty {
		return Result{Skipped: true}, nil
	}

	ds, err := l.read()
	if err != nil {
		return Result{}, err
	}
	if err := target.Import(ctx, ds); err != nil {
		return Result{}, fmt.Errorf("import dataset: %w", err)
	}
	return Result{
		Venues:      len(ds.Venues),
		Teams:       len(ds.Teams),
		Games:       len(ds.Games),
		Simulations: len(ds.Simulations),
	}, nil
}

// Status returns a snapshot of the most recent load outcome.
func (l *Loader) Status() Status {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.status
}

func (l *Loader) recordAttempt(at time.Time) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.status.LastAttempt = at
}

func (l *Loader) recordSuccess(at time.Time, res Result) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.status.LastError = ""
	l.status.LastSuccess = at
	l.status.Result = res
}

func (l *Loader) recordFailure(err error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.status.LastError = err.Error()
}
