package render

import (
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/mattn/go-runewidth"

	"github.com/preston-bernstein/cricket-sim-service/internal/domain"
)

// NoSummaryMessage replaces the win summary when a match has no simulations.
const NoSummaryMessage = "No simulation data available for this match"

// WinSummary prints the fixture header, each side's win probability exactly as provided,
// a split bar and the simulation count.
func WinSummary(w io.Writer, res domain.SimulationResults, opts Options) error {
	st := newStyles(w, opts)
	width := resolveWidth(w, opts.Width)
	info := res.GameInfo
	stats := res.Statistics

	var b strings.Builder
	fmt.Fprintln(&b, st.title.Render(info.HomeTeam.Name+" vs "+info.AwayTeam.Name))
	fmt.Fprintln(&b, st.muted.Render(info.Venue+", "+info.Date))
	fmt.Fprintln(&b)

	if stats.TotalSimulations == 0 {
		fmt.Fprintln(&b, st.muted.Render(NoSummaryMessage))
		_, err := io.WriteString(w, b.String())
		return err
	}

	nameWidth := max(runewidth.StringWidth(info.HomeTeam.Name), runewidth.StringWidth(info.AwayTeam.Name))
	fmt.Fprintf(&b, "  HOME  %s  %s\n", runewidth.FillRight(info.HomeTeam.Name, nameWidth), st.home.Render(Percent(stats.HomeTeamWinPercentage)))
	fmt.Fprintf(&b, "  AWAY  %s  %s\n", runewidth.FillRight(info.AwayTeam.Name, nameWidth), st.away.Render(Percent(stats.AwayTeamWinPercentage)))
	fmt.Fprintln(&b)

	barWidth := max(width-4, minBarWidth)
	homeCells := splitCells(stats.HomeTeamWinPercentage, barWidth)
	fmt.Fprintf(&b, "  %s%s\n",
		st.home.Render(strings.Repeat("█", homeCells)),
		st.away.Render(strings.Repeat("░", barWidth-homeCells)),
	)
	fmt.Fprintln(&b)
	fmt.Fprintln(&b, st.muted.Render(fmt.Sprintf("Based on %s simulations", humanize.Comma(int64(stats.TotalSimulations)))))

	_, err := io.WriteString(w, b.String())
	return err
}

func splitCells(pct float64, width int) int {
	cells := int(math.Round(pct / 100 * float64(width)))
	return min(max(cells, 0), width)
}
