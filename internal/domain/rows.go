package domain

import "time"

// Venue is a ground where matches are played.
type Venue struct {
	ID   int
	Name string
}

// Team is a side with simulation runs attached.
type Team struct {
	ID   int
	Name string
}

// Game is a scheduled fixture between two teams.
type Game struct {
	ID         int
	HomeTeamID int
	AwayTeamID int
	VenueID    int
	Date       time.Time
}

// SimulationRun is one simulated final score for a team.
type SimulationRun struct {
	TeamID    int
	RunNumber int
	Result    float64
}

// Dataset is everything needed to serve simulation results, in import order.
type Dataset struct {
	Venues      []Venue
	Teams       []Team
	Games       []Game
	Simulations []SimulationRun
}
