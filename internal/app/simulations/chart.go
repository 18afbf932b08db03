package simulations

import (
	"context"
	"log/slog"
	"time"

	"github.com/preston-bernstein/cricket-sim-service/internal/domain"
	"github.com/preston-bernstein/cricket-sim-service/internal/histogram"
	"github.com/preston-bernstein/cricket-sim-service/internal/logging"
	"github.com/preston-bernstein/cricket-sim-service/internal/metrics"
)

// NoDataMessage is shown instead of a chart when a match has no simulations.
const NoDataMessage = "No simulation data to display"

// ChartView is the histogram payload for one match.
type ChartView struct {
	GameInfo   domain.GameInfo     `json:"game_info"`
	Statistics domain.Statistics   `json:"statistics"`
	NoData     bool                `json:"no_data"`
	Message    string              `json:"message,omitempty"`
	Labels     []string            `json:"labels,omitempty"`
	Datasets   []histogram.Dataset `json:"datasets,omitempty"`
	Bins       []histogram.Bin     `json:"bins,omitempty"`
	Degenerate bool                `json:"degenerate,omitempty"`
}

// ChartBuilder turns simulation results into a ChartView.
type ChartBuilder struct {
	logger  *slog.Logger
	metrics *metrics.Recorder
	now     func() time.Time
}

// NewChartBuilder constructs a ChartBuilder. Both arguments may be nil.
func NewChartBuilder(logger *slog.Logger, recorder *metrics.Recorder) *ChartBuilder {
	return &ChartBuilder{logger: logger, metrics: recorder, now: time.Now}
}

// Build checks for the zero-simulation state, warns on sample counts that disagree with
// total_simulations, and bins both teams' scores.
func (b *ChartBuilder) Build(ctx context.Context, res domain.SimulationResults) (ChartView, error) {
	if !res.HasData() {
		return noDataView(res), nil
	}

	home := res.SimulationResults.HomeTeamScores
	away := res.SimulationResults.AwayTeamScores
	total := res.Statistics.TotalSimulations
	if len(home) != total || len(away) != total {
		logging.Warn(logging.FromContext(ctx, b.logger), "sample counts differ from total simulations",
			logging.FieldMatchID, res.GameInfo.ID,
			"total_simulations", total,
			"home_samples", len(home),
			"away_samples", len(away),
		)
	}

	start := b.now()
	chart, err := histogram.NewChart(res.GameInfo.HomeTeam.Name, home, res.GameInfo.AwayTeam.Name, away)
	if err != nil {
		return ChartView{}, err
	}
	elapsed := b.now().Sub(start)
	b.metrics.RecordHistogramBuild(len(home)+len(away), chart.Degenerate, elapsed)
	logging.Debug(logging.FromContext(ctx, b.logger), "histogram built",
		logging.FieldMatchID, res.GameInfo.ID,
		logging.FieldCount, len(home)+len(away),
		"degenerate", chart.Degenerate,
		logging.FieldDurationMS, elapsed.Milliseconds(),
	)

	return ChartView{
		GameInfo:   res.GameInfo,
		Statistics: res.Statistics,
		Labels:     chart.Labels,
		Datasets:   chart.Datasets,
		Bins:       chart.Bins,
		Degenerate: chart.Degenerate,
	}, nil
}

func noDataView(res domain.SimulationResults) ChartView {
	return ChartView{
		GameInfo:   res.GameInfo,
		Statistics: res.Statistics,
		NoData:     true,
		Message:    NoDataMessage,
	}
}
