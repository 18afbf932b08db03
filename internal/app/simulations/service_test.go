package simulations

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/preston-bernstein/cricket-sim-service/internal/domain"
	"github.com/preston-bernstein/cricket-sim-service/internal/histogram"
	"github.com/preston-bernstein/cricket-sim-service/internal/store"
)

type stubStore struct {
	matches   []domain.Match
	info      domain.GameInfo
	infoErr   error
	scores    map[int][]float64
	scoresErr error
}

func (s *stubStore) ListMatches(context.Context) ([]domain.Match, error) {
	return s.matches, nil
}

func (s *stubStore) GameInfo(_ context.Context, id int) (domain.GameInfo, error) {
	if s.infoErr != nil {
		return domain.GameInfo{}, s.infoErr
	}
	return s.info, nil
}

func (s *stubStore) TeamScores(_ context.Context, teamID int) ([]float64, error) {
	return s.scores[teamID], s.scoresErr
}

func sampleInfo() domain.GameInfo {
	return domain.GameInfo{
		ID:       1,
		HomeTeam: domain.TeamInfo{ID: 10, Name: "Sydney Sixers"},
		AwayTeam: domain.TeamInfo{ID: 20, Name: "Perth Scorchers"},
		Venue:    "SCG",
		Date:     "2024-01-05",
	}
}

func TestWinStatistics(t *testing.T) {
	cases := []struct {
		name    string
		home    []float64
		away    []float64
		total   int
		homePct float64
		awayPct float64
	}{
		{"all home", []float64{200, 180}, []float64{150, 170}, 2, 100, 0},
		{"ties go away", []float64{150, 150, 160}, []float64{150, 149, 170}, 3, 33.3, 66.7},
		{"uneven lengths use shorter", []float64{200, 100, 300, 300}, []float64{150, 150}, 2, 50, 50},
		{"empty", nil, []float64{1}, 0, 0, 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := WinStatistics(tc.home, tc.away)
			if got.TotalSimulations != tc.total || got.HomeTeamWinPercentage != tc.homePct || got.AwayTeamWinPercentage != tc.awayPct {
				t.Fatalf("unexpected statistics %+v", got)
			}
		})
	}
}

func TestResultsAssemblesPayload(t *testing.T) {
	st := &stubStore{
		info: sampleInfo(),
		scores: map[int][]float64{
			10: {180, 150, 170, 200},
			20: {160, 160, 175, 120},
		},
	}
	svc := NewService(st, nil, nil)

	res, err := svc.Results(context.Background(), 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.GameInfo != sampleInfo() {
		t.Fatalf("unexpected game info %+v", res.GameInfo)
	}
	if res.Statistics.TotalSimulations != 4 || res.Statistics.HomeTeamWinPercentage != 50 || res.Statistics.AwayTeamWinPercentage != 50 {
		t.Fatalf("unexpected statistics %+v", res.Statistics)
	}
	if len(res.SimulationResults.HomeTeamScores) != 4 || len(res.SimulationResults.AwayTeamScores) != 4 {
		t.Fatalf("expected all samples, got %+v", res.SimulationResults)
	}
}

func TestResultsErrors(t *testing.T) {
	svc := NewService(&stubStore{infoErr: domain.ErrMatchNotFound}, nil, nil)
	if _, err := svc.Results(context.Background(), 99); !errors.Is(err, domain.ErrMatchNotFound) {
		t.Fatalf("expected ErrMatchNotFound, got %v", err)
	}

	svc = NewService(&stubStore{info: sampleInfo(), scores: map[int][]float64{10: {150}}}, nil, nil)
	res, err := svc.Results(context.Background(), 1)
	if !errors.Is(err, ErrNoSimulations) {
		t.Fatalf("expected ErrNoSimulations, got %v", err)
	}
	if res.GameInfo.ID != 1 {
		t.Fatalf("expected game info alongside ErrNoSimulations")
	}

	boom := errors.New("disk I/O error")
	svc = NewService(&stubStore{info: sampleInfo(), scoresErr: boom}, nil, nil)
	if _, err := svc.Results(context.Background(), 1); !errors.Is(err, boom) {
		t.Fatalf("expected wrapped store error, got %v", err)
	}
}

func TestHistogramBinsScores(t *testing.T) {
	home := []float64{100, 110, 120, 130, 140, 150, 160, 170, 180, 190, 200, 210}
	away := []float64{210, 200, 190, 180, 170, 160, 150, 140, 130, 120, 110, 100}
	svc := NewService(&stubStore{info: sampleInfo(), scores: map[int][]float64{10: home, 20: away}}, nil, nil)

	view, err := svc.Histogram(context.Background(), 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if view.NoData {
		t.Fatalf("expected chart data")
	}
	if len(view.Labels) != histogram.BinCount || view.Labels[0] != "100-109" {
		t.Fatalf("unexpected labels %v", view.Labels)
	}
	if len(view.Datasets) != 2 || view.Datasets[0].Name != "Sydney Sixers" || view.Datasets[1].Name != "Perth Scorchers" {
		t.Fatalf("unexpected datasets %+v", view.Datasets)
	}
	for i := range view.Labels {
		if view.Datasets[0].Counts[i] != 1 || view.Datasets[1].Counts[i] != 1 {
			t.Fatalf("bin %d: expected one sample per team", i)
		}
	}
}

func TestHistogramNoSimulationsIsNoData(t *testing.T) {
	svc := NewService(&stubStore{info: sampleInfo(), scores: map[int][]float64{}}, nil, nil)

	view, err := svc.Histogram(context.Background(), 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !view.NoData || view.Message != NoDataMessage || view.Labels != nil {
		t.Fatalf("expected no-data view, got %+v", view)
	}
	if view.GameInfo.ID != 1 {
		t.Fatalf("expected game info on no-data view")
	}
}

func TestServiceWithMemoryStore(t *testing.T) {
	ms := store.NewMemoryStore()
	err := ms.Import(context.Background(), domain.Dataset{
		Venues: []domain.Venue{{ID: 0, Name: "MCG"}},
		Teams:  []domain.Team{{ID: 0, Name: "Melbourne Stars"}, {ID: 1, Name: "Brisbane Heat"}},
		Games:  []domain.Game{{ID: 1, HomeTeamID: 0, AwayTeamID: 1, VenueID: 0, Date: time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)}},
		Simulations: []domain.SimulationRun{
			{TeamID: 0, RunNumber: 1, Result: 170},
			{TeamID: 1, RunNumber: 1, Result: 165},
		},
	})
	if err != nil {
		t.Fatalf("import: %v", err)
	}
	svc := NewService(ms, nil, nil)

	matches, err := svc.Matches(context.Background())
	if err != nil || len(matches) != 1 || matches[0].HomeTeam != "Melbourne Stars" {
		t.Fatalf("unexpected matches %+v err %v", matches, err)
	}
	res, err := svc.Results(context.Background(), 1)
	if err != nil {
		t.Fatalf("results: %v", err)
	}
	if res.Statistics.HomeTeamWinPercentage != 100 || res.Statistics.TotalSimulations != 1 {
		t.Fatalf("unexpected statistics %+v", res.Statistics)
	}
}
