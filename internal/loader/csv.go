package loader

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/preston-bernstein/cricket-sim-service/internal/domain"
	"github.com/preston-bernstein/cricket-sim-service/internal/timeutil"
)

// CSV file names expected in a data directory.
const (
	VenuesFile      = "venues.csv"
	SimulationsFile = "simulations.csv"
	GamesFile       = "games.csv"
)

type record struct {
	line   int
	fields []string
}

type table struct {
	name string
	cols map[string]int
	rows []record
}

func (t table) value(r record, col string) string {
	return strings.TrimSpace(r.fields[t.cols[col]])
}

func (t table) intValue(r record, col string) (int, error) {
	raw := t.value(r, col)
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, t.errorf(r, "%s: invalid integer %q", col, raw)
	}
	return v, nil
}

func (t table) errorf(r record, format string, args ...any) error {
	return fmt.Errorf("%s line %d: %s", t.name, r.line, fmt.Sprintf(format, args...))
}

func readTable(name string, src io.Reader, required ...string) (table, error) {
	reader := csv.NewReader(src)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return table{}, fmt.Errorf("%s: missing header", name)
	}
	if err != nil {
		return table{}, fmt.Errorf("%s: %w", name, err)
	}

	t := table{name: name, cols: make(map[string]int, len(header))}
	for i, col := range header {
		t.cols[strings.TrimSpace(strings.TrimPrefix(col, "\ufeff"))] = i
	}
	for _, col := range required {
		if _, ok := t.cols[col]; !ok {
			return table{}, fmt.Errorf("%s: missing column %q", name, col)
		}
	}

	for {
		fields, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return table{}, fmt.Errorf("%s: %w", name, err)
		}
		line, _ := reader.FieldPos(0)
		t.rows = append(t.rows, record{line: line, fields: fields})
	}
	return t, nil
}

// ReadDir parses venues.csv, simulations.csv and games.csv from dir.
func ReadDir(dir string) (domain.Dataset, error) {
	files := make(map[string]*os.File, 3)
	defer func() {
		for _, f := range files {
			_ = f.Close()
		}
	}()
	for _, name := range []string{VenuesFile, SimulationsFile, GamesFile} {
		f, err := os.Open(filepath.Join(dir, name))
		if err != nil {
			return domain.Dataset{}, fmt.Errorf("open %s: %w", name, err)
		}
		files[name] = f
	}
	return Parse(files[VenuesFile], files[SimulationsFile], files[GamesFile])
}

// Parse builds a dataset from the three CSV sources.
//
// Teams are numbered from simulations.csv first. Teams that only appear in games.csv get
// ids after the highest simulation team id, home column before away column. Games are
// numbered from 1 in file order.
func Parse(venues, simulations, games io.Reader) (domain.Dataset, error) {
	var ds domain.Dataset

	venueTable, err := readTable(VenuesFile, venues, "venue_id", "venue_name")
	if err != nil {
		return ds, err
	}
	venueIDs := make(map[int]bool, len(venueTable.rows))
	for _, r := range venueTable.rows {
		id, err := venueTable.intValue(r, "venue_id")
		if err != nil {
			return ds, err
		}
		if venueIDs[id] {
			return ds, venueTable.errorf(r, "duplicate venue_id %d", id)
		}
		venueIDs[id] = true
		ds.Venues = append(ds.Venues, domain.Venue{ID: id, Name: venueTable.value(r, "venue_name")})
	}

	simTable, err := readTable(SimulationsFile, simulations, "team_id", "team", "simulation_run", "results")
	if err != nil {
		return ds, err
	}
	teamIDs := make(map[string]int)
	teamNames := make(map[int]string)
	nextID := 0
	for _, r := range simTable.rows {
		id, err := simTable.intValue(r, "team_id")
		if err != nil {
			return ds, err
		}
		name := simTable.value(r, "team")
		if known, ok := teamIDs[name]; ok && known != id {
			return ds, simTable.errorf(r, "team %q has ids %d and %d", name, known, id)
		}
		if known, ok := teamNames[id]; ok && known != name {
			return ds, simTable.errorf(r, "team_id %d used by %q and %q", id, known, name)
		}
		if _, ok := teamIDs[name]; !ok {
			teamIDs[name] = id
			teamNames[id] = name
			ds.Teams = append(ds.Teams, domain.Team{ID: id, Name: name})
			if id+1 > nextID {
				nextID = id + 1
			}
		}

		run, err := simTable.intValue(r, "simulation_run")
		if err != nil {
			return ds, err
		}
		raw := simTable.value(r, "results")
		result, err := strconv.ParseFloat(raw, 64)
		if err != nil || math.IsNaN(result) || math.IsInf(result, 0) {
			return ds, simTable.errorf(r, "results: invalid score %q", raw)
		}
		ds.Simulations = append(ds.Simulations, domain.SimulationRun{TeamID: id, RunNumber: run, Result: result})
	}

	gameTable, err := readTable(GamesFile, games, "home_team", "away_team", "venue_id", "date")
	if err != nil {
		return ds, err
	}
	for _, col := range []string{"home_team", "away_team"} {
		for _, r := range gameTable.rows {
			name := gameTable.value(r, col)
			if name == "" {
				return ds, gameTable.errorf(r, "%s is empty", col)
			}
			if _, ok := teamIDs[name]; ok {
				continue
			}
			teamIDs[name] = nextID
			ds.Teams = append(ds.Teams, domain.Team{ID: nextID, Name: name})
			nextID++
		}
	}
	for i, r := range gameTable.rows {
		venueID, err := gameTable.intValue(r, "venue_id")
		if err != nil {
			return ds, err
		}
		if !venueIDs[venueID] {
			return ds, gameTable.errorf(r, "unknown venue_id %d", venueID)
		}
		date, err := timeutil.ParseDate(gameTable.value(r, "date"))
		if err != nil {
			return ds, gameTable.errorf(r, "date: %v", err)
		}
		ds.Games = append(ds.Games, domain.Game{
			ID:         i + 1,
			HomeTeamID: teamIDs[gameTable.value(r, "home_team")],
			AwayTeamID: teamIDs[gameTable.value(r, "away_team")],
			VenueID:    venueID,
			Date:       date,
		})
	}
	return ds, nil
}
