package domain

// TeamInfo identifies a team taking part in a match.
type TeamInfo struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// Match is the summary row used when listing fixtures.
type Match struct {
	ID       int    `json:"id"`
	HomeTeam string `json:"home_team"`
	AwayTeam string `json:"away_team"`
	Venue    string `json:"venue"`
	Date     string `json:"date"`
}

// GameInfo describes the fixture a set of simulations belongs to.
type GameInfo struct {
	ID       int      `json:"id"`
	HomeTeam TeamInfo `json:"home_team"`
	AwayTeam TeamInfo `json:"away_team"`
	Venue    string   `json:"venue"`
	Date     string   `json:"date"`
}

// Statistics carries the pre-computed win probabilities. Percentages are 0-100 and are
// displayed as-is.
type Statistics struct {
	TotalSimulations      int     `json:"total_simulations"`
	HomeTeamWinPercentage float64 `json:"home_team_win_percentage"`
	AwayTeamWinPercentage float64 `json:"away_team_win_percentage"`
}

// ScoreSamples holds every simulated final score per team.
type ScoreSamples struct {
	HomeTeamScores []float64 `json:"home_team_scores"`
	AwayTeamScores []float64 `json:"away_team_scores"`
}

// SimulationResults is the full payload for one match.
type SimulationResults struct {
	GameInfo          GameInfo     `json:"game_info"`
	Statistics        Statistics   `json:"statistics"`
	SimulationResults ScoreSamples `json:"simulation_results"`
}

// HasData reports whether there is anything to chart. A zero total or two empty sample
// sets is the "no simulation data" state.
func (r SimulationResults) HasData() bool {
	if r.Statistics.TotalSimulations == 0 {
		return false
	}
	return len(r.SimulationResults.HomeTeamScores)+len(r.SimulationResults.AwayTeamScores) > 0
}
