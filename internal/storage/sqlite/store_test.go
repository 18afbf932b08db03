package sqlite

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/preston-bernstein/cricket-sim-service/internal/domain"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	st, err := Open(context.Background(), filepath.Join(t.TempDir(), "sim.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { _ = st.Close() })
	return st
}

func testDataset() domain.Dataset {
	return domain.Dataset{
		Venues: []domain.Venue{{ID: 0, Name: "Eden Gardens"}, {ID: 1, Name: "Wankhede"}},
		Teams:  []domain.Team{{ID: 0, Name: "Kolkata"}, {ID: 1, Name: "Mumbai"}},
		Games: []domain.Game{
			{ID: 1, HomeTeamID: 0, AwayTeamID: 1, VenueID: 0, Date: time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC)},
			{ID: 2, HomeTeamID: 1, AwayTeamID: 0, VenueID: 1, Date: time.Date(2024, 4, 8, 0, 0, 0, 0, time.UTC)},
		},
		Simulations: []domain.SimulationRun{
			{TeamID: 0, RunNumber: 1, Result: 182},
			{TeamID: 1, RunNumber: 1, Result: 175},
			{TeamID: 0, RunNumber: 2, Result: 160.5},
			{TeamID: 1, RunNumber: 2, Result: 190},
		},
	}
}

func TestOpenRequiresPath(t *testing.T) {
	if _, err := Open(context.Background(), "  "); err == nil {
		t.Fatalf("expected error for empty path")
	}
}

func TestOpenIsIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sim.db")
	first, err := Open(context.Background(), path)
	if err != nil {
		t.Fatalf("first open: %v", err)
	}
	_ = first.Close()

	second, err := Open(context.Background(), path)
	if err != nil {
		t.Fatalf("reopen should skip applied migrations: %v", err)
	}
	_ = second.Close()
}

func TestImportAndQuery(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()

	empty, err := st.IsEmpty(ctx)
	if err != nil || !empty {
		t.Fatalf("expected empty store, got %v err %v", empty, err)
	}
	if err := st.Import(ctx, testDataset()); err != nil {
		t.Fatalf("import: %v", err)
	}
	empty, err = st.IsEmpty(ctx)
	if err != nil || empty {
		t.Fatalf("expected populated store, got %v err %v", empty, err)
	}

	matches, err := st.ListMatches(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(matches) != 2 {
		t.Fatalf("expected 2 matches, got %d", len(matches))
	}
	want := domain.Match{ID: 1, HomeTeam: "Kolkata", AwayTeam: "Mumbai", Venue: "Eden Gardens", Date: "2024-04-01"}
	if matches[0] != want {
		t.Fatalf("unexpected first match %+v", matches[0])
	}

	info, err := st.GameInfo(ctx, 2)
	if err != nil {
		t.Fatalf("game info: %v", err)
	}
	if info.HomeTeam != (domain.TeamInfo{ID: 1, Name: "Mumbai"}) || info.Venue != "Wankhede" || info.Date != "2024-04-08" {
		t.Fatalf("unexpected game info %+v", info)
	}

	scores, err := st.TeamScores(ctx, 0)
	if err != nil {
		t.Fatalf("scores: %v", err)
	}
	if len(scores) != 2 || scores[0] != 182 || scores[1] != 160.5 {
		t.Fatalf("unexpected scores %v", scores)
	}
}

func TestGameInfoNotFound(t *testing.T) {
	st := openTestStore(t)
	if _, err := st.GameInfo(context.Background(), 404); !errors.Is(err, domain.ErrMatchNotFound) {
		t.Fatalf("expected ErrMatchNotFound, got %v", err)
	}
}

func TestImportRollsBackOnFailure(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()

	ds := testDataset()
	ds.Teams = append(ds.Teams, domain.Team{ID: 2, Name: "Kolkata"}) // violates UNIQUE(name)
	if err := st.Import(ctx, ds); err == nil {
		t.Fatalf("expected import to fail")
	}
	empty, err := st.IsEmpty(ctx)
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if !empty {
		t.Fatalf("expected rollback to leave store empty")
	}
}
