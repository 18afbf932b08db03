package store

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/preston-bernstein/cricket-sim-service/internal/domain"
	"github.com/preston-bernstein/cricket-sim-service/internal/timeutil"
)

// MemoryStore keeps a thread-safe copy of an imported dataset in memory.
type MemoryStore struct {
	mu     sync.RWMutex
	venues map[int]domain.Venue
	teams  map[int]domain.Team
	games  map[int]domain.Game
	scores map[int][]float64
}

// NewMemoryStore constructs an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		venues: make(map[int]domain.Venue),
		teams:  make(map[int]domain.Team),
		games:  make(map[int]domain.Game),
		scores: make(map[int][]float64),
	}
}

// IsEmpty reports whether no venues have been imported yet.
func (s *MemoryStore) IsEmpty(ctx context.Context) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.venues) == 0, nil
}

// Import replaces the stored dataset. Simulation scores keep their dataset order per team.
func (s *MemoryStore) Import(ctx context.Context, ds domain.Dataset) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	venues := make(map[int]domain.Venue, len(ds.Venues))
	for _, v := range ds.Venues {
		venues[v.ID] = v
	}
	teams := make(map[int]domain.Team, len(ds.Teams))
	for _, t := range ds.Teams {
		teams[t.ID] = t
	}
	games := make(map[int]domain.Game, len(ds.Games))
	for _, g := range ds.Games {
		if _, ok := teams[g.HomeTeamID]; !ok {
			return fmt.Errorf("game %d: unknown home team %d", g.ID, g.HomeTeamID)
		}
		if _, ok := teams[g.AwayTeamID]; !ok {
			return fmt.Errorf("game %d: unknown away team %d", g.ID, g.AwayTeamID)
		}
		if _, ok := venues[g.VenueID]; !ok {
			return fmt.Errorf("game %d: unknown venue %d", g.ID, g.VenueID)
		}
		games[g.ID] = g
	}
	scores := make(map[int][]float64)
	for _, run := range ds.Simulations {
		if _, ok := teams[run.TeamID]; !ok {
			return fmt.Errorf("simulation run %d: unknown team %d", run.RunNumber, run.TeamID)
		}
		scores[run.TeamID] = append(scores[run.TeamID], run.Result)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.venues = venues
	s.teams = teams
	s.games = games
	s.scores = scores
	return nil
}

// ListMatches returns every game ordered by id.
func (s *MemoryStore) ListMatches(ctx context.Context) ([]domain.Match, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := make([]int, 0, len(s.games))
	for id := range s.games {
		ids = append(ids, id)
	}
	sort.Ints(ids)

	result := make([]domain.Match, 0, len(ids))
	for _, id := range ids {
		g := s.games[id]
		result = append(result, domain.Match{
			ID:       g.ID,
			HomeTeam: s.teams[g.HomeTeamID].Name,
			AwayTeam: s.teams[g.AwayTeamID].Name,
			Venue:    s.venues[g.VenueID].Name,
			Date:     timeutil.FormatDate(g.Date),
		})
	}
	return result, nil
}

// GameInfo retrieves the fixture details for a game id.
func (s *MemoryStore) GameInfo(ctx context.Context, id int) (domain.GameInfo, error) {
	if err := ctx.Err(); err != nil {
		return domain.GameInfo{}, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	g, ok := s.games[id]
	if !ok {
		return domain.GameInfo{}, domain.ErrMatchNotFound
	}
	home := s.teams[g.HomeTeamID]
	away := s.teams[g.AwayTeamID]
	return domain.GameInfo{
		ID:       g.ID,
		HomeTeam: domain.TeamInfo{ID: home.ID, Name: home.Name},
		AwayTeam: domain.TeamInfo{ID: away.ID, Name: away.Name},
		Venue:    s.venues[g.VenueID].Name,
		Date:     timeutil.FormatDate(g.Date),
	}, nil
}

// TeamScores returns a copy of every simulated score for a team.
func (s *MemoryStore) TeamScores(ctx context.Context, teamID int) ([]float64, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	src := s.scores[teamID]
	out := make([]float64, len(src))
	copy(out, src)
	return out, nil
}
