package handlers

import (
	"context"
	"errors"
	"math"
	"net/http"
	"net/http/httptest"
	"reflect"
	"testing"

	"github.com/preston-bernstein/cricket-sim-service/internal/app/simulations"
	"github.com/preston-bernstein/cricket-sim-service/internal/domain"
	"github.com/preston-bernstein/cricket-sim-service/internal/histogram"
	"github.com/preston-bernstein/cricket-sim-service/internal/loader"
	"github.com/preston-bernstein/cricket-sim-service/internal/teststubs"
	"github.com/preston-bernstein/cricket-sim-service/internal/testutil"
)

func newSeededHandler(t *testing.T, statusFn func() loader.Status) *Handler {
	t.Helper()
	svc := simulations.NewService(testutil.NewSeededStore(t), nil, nil)
	return NewHandler(svc, nil, statusFn)
}

// routes mirrors the router so path values are populated.
func routes(h *Handler) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/{$}", h.Root)
	mux.HandleFunc("/health", h.Health)
	mux.HandleFunc("/ready", h.Ready)
	mux.HandleFunc("/games", h.Games)
	mux.HandleFunc("/simulations/{id}", h.Simulations)
	mux.HandleFunc("/simulations/{id}/histogram", h.Histogram)
	mux.HandleFunc("/", h.NotFound)
	return mux
}

func TestRootBanner(t *testing.T) {
	h := newSeededHandler(t, nil)

	rr := testutil.Serve(routes(h), http.MethodGet, "/", nil)
	testutil.AssertStatus(t, rr, http.StatusOK)

	var resp map[string]string
	testutil.DecodeJSON(t, rr, &resp)
	if resp["message"] != bannerMessage {
		t.Fatalf("unexpected banner %q", resp["message"])
	}
}

func TestHealth(t *testing.T) {
	h := newSeededHandler(t, nil)

	rr := testutil.Serve(routes(h), http.MethodGet, "/health", nil)
	testutil.AssertStatus(t, rr, http.StatusOK)

	var resp map[string]string
	testutil.DecodeJSON(t, rr, &resp)
	if resp["status"] != "ok" {
		t.Fatalf("expected status ok, got %s", resp["status"])
	}
}

func TestHealthShuttingDownReturnsServiceUnavailable(t *testing.T) {
	h := newSeededHandler(t, nil)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	ctx, cancel := context.WithCancel(req.Context())
	cancel()
	req = req.WithContext(ctx)
	rr := testutil.ServeRequest(http.HandlerFunc(h.Health), req)

	testutil.AssertStatus(t, rr, http.StatusServiceUnavailable)
	if got := testutil.ErrorMessage(t, rr); got != "shutting down" {
		t.Fatalf("unexpected error %q", got)
	}
}

func TestReady(t *testing.T) {
	rr := testutil.Serve(routes(newSeededHandler(t, nil)), http.MethodGet, "/ready", nil)
	testutil.AssertStatus(t, rr, http.StatusOK)

	notReady := func() loader.Status { return loader.Status{LastError: "venues.csv: missing header"} }
	rr = testutil.Serve(routes(newSeededHandler(t, notReady)), http.MethodGet, "/ready", nil)
	testutil.AssertStatus(t, rr, http.StatusServiceUnavailable)
	if got := testutil.ErrorMessage(t, rr); got != "venues.csv: missing header" {
		t.Fatalf("expected load error surfaced, got %q", got)
	}

	pending := func() loader.Status { return loader.Status{} }
	rr = testutil.Serve(routes(newSeededHandler(t, pending)), http.MethodGet, "/ready", nil)
	testutil.AssertStatus(t, rr, http.StatusServiceUnavailable)
	if got := testutil.ErrorMessage(t, rr); got != "not ready" {
		t.Fatalf("expected not ready, got %q", got)
	}
}

func TestGames(t *testing.T) {
	h := newSeededHandler(t, nil)

	rr := testutil.Serve(routes(h), http.MethodGet, "/games", nil)
	testutil.AssertStatus(t, rr, http.StatusOK)

	var matches []domain.Match
	testutil.DecodeJSON(t, rr, &matches)
	if len(matches) != 2 {
		t.Fatalf("expected 2 matches, got %d", len(matches))
	}
	want := domain.Match{ID: 1, HomeTeam: "Adelaide Strikers", AwayTeam: "Sydney Sixers", Venue: "Adelaide Oval", Date: "2024-01-05"}
	if matches[0] != want {
		t.Fatalf("unexpected first match %+v", matches[0])
	}
}

func TestGamesEmptyListIsArray(t *testing.T) {
	h := NewHandler(simulations.NewService(&teststubs.StubStore{}, nil, nil), nil, nil)

	rr := testutil.Serve(routes(h), http.MethodGet, "/games", nil)
	testutil.AssertStatus(t, rr, http.StatusOK)
	if got := rr.Body.String(); got != "[]\n" {
		t.Fatalf("expected empty JSON array, got %q", got)
	}
}

func TestGamesStoreFailureReturns500(t *testing.T) {
	logger, buf := testutil.NewBufferLogger()
	store := &teststubs.StubStore{ListErr: errors.New("database is locked")}
	h := NewHandler(simulations.NewService(store, nil, nil), logger, nil)

	rr := testutil.Serve(routes(h), http.MethodGet, "/games", nil)
	testutil.AssertStatus(t, rr, http.StatusInternalServerError)
	if got := testutil.ErrorMessage(t, rr); got != "internal error" {
		t.Fatalf("unexpected error %q", got)
	}
	if buf.Len() == 0 {
		t.Fatalf("expected failure to be logged")
	}
}

func TestMethodNotAllowed(t *testing.T) {
	h := newSeededHandler(t, nil)
	for _, path := range []string{"/", "/health", "/ready", "/games", "/simulations/1", "/simulations/1/histogram"} {
		rr := testutil.Serve(routes(h), http.MethodPost, path, nil)
		testutil.AssertStatus(t, rr, http.StatusMethodNotAllowed)
	}
}

func TestSimulations(t *testing.T) {
	h := newSeededHandler(t, nil)

	rr := testutil.Serve(routes(h), http.MethodGet, "/simulations/1", nil)
	testutil.AssertStatus(t, rr, http.StatusOK)

	var got domain.SimulationResults
	testutil.DecodeJSON(t, rr, &got)
	if want := testutil.SampleResults(); !reflect.DeepEqual(got, want) {
		t.Fatalf("results %+v, want %+v", got, want)
	}
}

func TestSimulationsErrors(t *testing.T) {
	h := newSeededHandler(t, nil)

	cases := []struct {
		path   string
		status int
		msg    string
	}{
		{"/simulations/abc", http.StatusBadRequest, "invalid match id"},
		{"/simulations/-1", http.StatusBadRequest, "invalid match id"},
		{"/simulations/0", http.StatusBadRequest, "invalid match id"},
		{"/simulations/99", http.StatusNotFound, "game not found"},
		{"/simulations/2", http.StatusNotFound, "simulation data not found for one or both teams"},
	}
	for _, tc := range cases {
		rr := testutil.Serve(routes(h), http.MethodGet, tc.path, nil)
		testutil.AssertStatus(t, rr, tc.status)
		if got := testutil.ErrorMessage(t, rr); got != tc.msg {
			t.Fatalf("%s: expected %q, got %q", tc.path, tc.msg, got)
		}
	}
}

func TestHistogram(t *testing.T) {
	h := newSeededHandler(t, nil)

	rr := testutil.Serve(routes(h), http.MethodGet, "/simulations/1/histogram", nil)
	testutil.AssertStatus(t, rr, http.StatusOK)

	var view simulations.ChartView
	testutil.DecodeJSON(t, rr, &view)
	if view.NoData {
		t.Fatalf("expected chart, got no-data view")
	}
	if len(view.Labels) != histogram.BinCount {
		t.Fatalf("expected %d labels, got %d", histogram.BinCount, len(view.Labels))
	}
	if len(view.Datasets) != 2 {
		t.Fatalf("expected 2 datasets, got %d", len(view.Datasets))
	}
	for _, ds := range view.Datasets {
		total := 0
		for _, c := range ds.Counts {
			total += c
		}
		if total != 4 || len(ds.Counts) != histogram.BinCount {
			t.Fatalf("dataset %s: expected 4 samples over %d bins, got %d over %d", ds.Name, histogram.BinCount, total, len(ds.Counts))
		}
	}
	if view.Statistics.HomeTeamWinPercentage != 75 || view.Statistics.AwayTeamWinPercentage != 25 {
		t.Fatalf("unexpected statistics %+v", view.Statistics)
	}
	if view.Labels[0] != "130-135" {
		t.Fatalf("unexpected first label %q", view.Labels[0])
	}
}

func TestHistogramNoDataIsOK(t *testing.T) {
	h := newSeededHandler(t, nil)

	rr := testutil.Serve(routes(h), http.MethodGet, "/simulations/2/histogram", nil)
	testutil.AssertStatus(t, rr, http.StatusOK)

	var view simulations.ChartView
	testutil.DecodeJSON(t, rr, &view)
	if !view.NoData || view.Message != simulations.NoDataMessage {
		t.Fatalf("expected no-data view, got %+v", view)
	}
	if len(view.Labels) != 0 || len(view.Datasets) != 0 {
		t.Fatalf("expected no chart data, got %+v", view)
	}
	if view.GameInfo.ID != 2 {
		t.Fatalf("expected game info carried, got %+v", view.GameInfo)
	}
}

func TestHistogramErrors(t *testing.T) {
	h := newSeededHandler(t, nil)
	rr := testutil.Serve(routes(h), http.MethodGet, "/simulations/99/histogram", nil)
	testutil.AssertStatus(t, rr, http.StatusNotFound)

	rr = testutil.Serve(routes(h), http.MethodGet, "/simulations/x/histogram", nil)
	testutil.AssertStatus(t, rr, http.StatusBadRequest)
}

func TestHistogramNonFiniteScoresReturn422(t *testing.T) {
	store := &teststubs.StubStore{
		Games: map[int]domain.GameInfo{1: {
			ID:       1,
			HomeTeam: domain.TeamInfo{ID: 1, Name: "Home"},
			AwayTeam: domain.TeamInfo{ID: 2, Name: "Away"},
		}},
		Scores: map[int][]float64{1: {math.NaN(), 120}, 2: {110, 130}},
	}
	h := NewHandler(simulations.NewService(store, nil, nil), nil, nil)

	rr := testutil.Serve(routes(h), http.MethodGet, "/simulations/1/histogram", nil)
	testutil.AssertStatus(t, rr, http.StatusUnprocessableEntity)
}

func TestCanceledRequestReturns503(t *testing.T) {
	store := &teststubs.StubStore{ListErr: context.Canceled}
	h := NewHandler(simulations.NewService(store, nil, nil), nil, nil)

	rr := testutil.Serve(routes(h), http.MethodGet, "/games", nil)
	testutil.AssertStatus(t, rr, http.StatusServiceUnavailable)
}

func TestNotFoundIsJSON(t *testing.T) {
	h := newSeededHandler(t, nil)

	rr := testutil.Serve(routes(h), http.MethodGet, "/does-not-exist", nil)
	testutil.AssertStatus(t, rr, http.StatusNotFound)
	if got := rr.Header().Get("Content-Type"); got != "application/json" {
		t.Fatalf("expected JSON content type, got %q", got)
	}
	if got := testutil.ErrorMessage(t, rr); got != "not found" {
		t.Fatalf("unexpected error %q", got)
	}
}
