// Package sqlite provides the SQLite-backed simulation store.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/preston-bernstein/cricket-sim-service/internal/domain"
	"github.com/preston-bernstein/cricket-sim-service/internal/storage/sqlite/migrations"
	"github.com/preston-bernstein/cricket-sim-service/internal/timeutil"

	_ "modernc.org/sqlite" // SQLite driver.
)

// Store persists venues, teams, games and simulation runs in SQLite.
type Store struct {
	db *sql.DB
}

// Open opens or creates the database at path and applies embedded migrations.
func Open(ctx context.Context, path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}
	clean := filepath.Clean(path)
	if err := os.MkdirAll(filepath.Dir(clean), 0o755); err != nil {
		return nil, fmt.Errorf("create database dir: %w", err)
	}
	dsn := clean + "?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	if err := applyMigrations(ctx, db, migrations.FS); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	return &Store{db: db}, nil
}

// Close closes the SQLite handle.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// IsEmpty reports whether no venues have been imported yet.
func (s *Store) IsEmpty(ctx context.Context) (bool, error) {
	var count int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(1) FROM venues`).Scan(&count); err != nil {
		return false, fmt.Errorf("count venues: %w", err)
	}
	return count == 0, nil
}

// Import writes a full dataset in a single transaction.
func (s *Store) Import(ctx context.Context, ds domain.Dataset) (err error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin import: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	for _, v := range ds.Venues {
		if _, err = tx.ExecContext(ctx, `INSERT INTO venues (id, name) VALUES (?, ?)`, v.ID, v.Name); err != nil {
			return fmt.Errorf("insert venue %d: %w", v.ID, err)
		}
	}
	for _, t := range ds.Teams {
		if _, err = tx.ExecContext(ctx, `INSERT INTO teams (id, name) VALUES (?, ?)`, t.ID, t.Name); err != nil {
			return fmt.Errorf("insert team %d: %w", t.ID, err)
		}
	}
	for _, g := range ds.Games {
		if _, err = tx.ExecContext(ctx,
			`INSERT INTO games (id, home_team_id, away_team_id, venue_id, date) VALUES (?, ?, ?, ?, ?)`,
			g.ID, g.HomeTeamID, g.AwayTeamID, g.VenueID, timeutil.FormatDate(g.Date),
		); err != nil {
			return fmt.Errorf("insert game %d: %w", g.ID, err)
		}
	}

	if len(ds.Simulations) > 0 {
		var stmt *sql.Stmt
		stmt, err = tx.PrepareContext(ctx, `INSERT INTO simulations (team_id, run_number, result) VALUES (?, ?, ?)`)
		if err != nil {
			return fmt.Errorf("prepare simulation insert: %w", err)
		}
		defer stmt.Close()
		for _, run := range ds.Simulations {
			if _, err = stmt.ExecContext(ctx, run.TeamID, run.RunNumber, run.Result); err != nil {
				return fmt.Errorf("insert simulation run %d for team %d: %w", run.RunNumber, run.TeamID, err)
			}
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit import: %w", err)
	}
	return nil
}

// ListMatches returns every game with team and venue names, ordered by id.
func (s *Store) ListMatches(ctx context.Context) ([]domain.Match, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT g.id, ht.name, at.name, v.name, g.date
		FROM games g
		JOIN teams ht ON ht.id = g.home_team_id
		JOIN teams at ON at.id = g.away_team_id
		JOIN venues v ON v.id = g.venue_id
		ORDER BY g.id`)
	if err != nil {
		return nil, fmt.Errorf("list matches: %w", err)
	}
	defer rows.Close()

	result := make([]domain.Match, 0)
	for rows.Next() {
		var m domain.Match
		if err := rows.Scan(&m.ID, &m.HomeTeam, &m.AwayTeam, &m.Venue, &m.Date); err != nil {
			return nil, fmt.Errorf("scan match: %w", err)
		}
		result = append(result, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list matches: %w", err)
	}
	return result, nil
}

// GameInfo retrieves the fixture details for a game id.
func (s *Store) GameInfo(ctx context.Context, id int) (domain.GameInfo, error) {
	var info domain.GameInfo
	err := s.db.QueryRowContext(ctx, `
		SELECT g.id, ht.id, ht.name, at.id, at.name, v.name, g.date
		FROM games g
		JOIN teams ht ON ht.id = g.home_team_id
		JOIN teams at ON at.id = g.away_team_id
		JOIN venues v ON v.id = g.venue_id
		WHERE g.id = ?`, id,
	).Scan(&info.ID, &info.HomeTeam.ID, &info.HomeTeam.Name, &info.AwayTeam.ID, &info.AwayTeam.Name, &info.Venue, &info.Date)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.GameInfo{}, domain.ErrMatchNotFound
	}
	if err != nil {
		return domain.GameInfo{}, fmt.Errorf("load game %d: %w", id, err)
	}
	return info, nil
}

// TeamScores returns every simulated score for a team in insertion order.
func (s *Store) TeamScores(ctx context.Context, teamID int) ([]float64, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT result FROM simulations WHERE team_id = ? ORDER BY id`, teamID)
	if err != nil {
		return nil, fmt.Errorf("load scores for team %d: %w", teamID, err)
	}
	defer rows.Close()

	scores := make([]float64, 0)
	for rows.Next() {
		var v float64
		if err := rows.Scan(&v); err != nil {
			return nil, fmt.Errorf("scan score: %w", err)
		}
		scores = append(scores, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("load scores for team %d: %w", teamID, err)
	}
	return scores, nil
}
