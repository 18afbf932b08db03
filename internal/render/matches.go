package render

import (
	"fmt"
	"io"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/preston-bernstein/cricket-sim-service/internal/domain"
)

// NoMatchesMessage is printed when there are no matches to list.
const NoMatchesMessage = "No matches found"

// Matches prints the match list as a bordered table.
func Matches(w io.Writer, matches []domain.Match, opts Options) error {
	st := newStyles(w, opts)
	if len(matches) == 0 {
		_, err := fmt.Fprintln(w, st.muted.Render(NoMatchesMessage))
		return err
	}

	cell := st.plain.Padding(0, 1)
	header := st.title.Padding(0, 1)
	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(st.muted).
		Headers("ID", "DATE", "HOME", "AWAY", "VENUE").
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return header
			}
			return cell
		})
	for _, m := range matches {
		t.Row(strconv.Itoa(m.ID), m.Date, m.HomeTeam, m.AwayTeam, m.Venue)
	}
	_, err := fmt.Fprintln(w, t.Render())
	return err
}
