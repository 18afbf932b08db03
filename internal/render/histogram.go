package render

import (
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
	"github.com/mattn/go-runewidth"

	"github.com/preston-bernstein/cricket-sim-service/internal/app/simulations"
)

const (
	homeBar = "█"
	awayBar = "▒"
)

// Histogram prints one pair of bars per bin, home above away, scaled to the largest count.
// A chart without data prints the no-data message instead. When every sample has the same
// value only the single populated range is drawn.
func Histogram(w io.Writer, view simulations.ChartView, opts Options) error {
	st := newStyles(w, opts)
	width := resolveWidth(w, opts.Width)

	var b strings.Builder
	fmt.Fprintln(&b, st.title.Render("Score Distribution"))
	if view.NoData || len(view.Labels) == 0 || len(view.Datasets) < 2 {
		msg := view.Message
		if msg == "" {
			msg = simulations.NoDataMessage
		}
		fmt.Fprintln(&b, st.muted.Render(msg))
		_, err := io.WriteString(w, b.String())
		return err
	}

	home, away := view.Datasets[0], view.Datasets[1]
	rows := len(view.Labels)
	if view.Degenerate {
		rows = 1
	}

	labelWidth, countWidth, maxCount := 0, 1, 0
	for i := 0; i < rows; i++ {
		labelWidth = max(labelWidth, runewidth.StringWidth(view.Labels[i]))
		for _, c := range []int{countAt(home.Counts, i), countAt(away.Counts, i)} {
			maxCount = max(maxCount, c)
			countWidth = max(countWidth, len(humanize.Comma(int64(c))))
		}
	}
	barWidth := max(width-labelWidth-countWidth-3, minBarWidth)

	fmt.Fprintf(&b, "%s  %s\n",
		st.home.Render(homeBar+" "+home.Name),
		st.away.Render(awayBar+" "+away.Name),
	)
	fmt.Fprintln(&b)
	for i := 0; i < rows; i++ {
		label := runewidth.FillRight(view.Labels[i], labelWidth)
		blank := strings.Repeat(" ", labelWidth)
		writeBar(&b, label, homeBar, countAt(home.Counts, i), maxCount, barWidth, st.home)
		writeBar(&b, blank, awayBar, countAt(away.Counts, i), maxCount, barWidth, st.away)
	}
	if view.Degenerate {
		fmt.Fprintln(&b, st.muted.Render("Every simulated score is "+view.Labels[0]+"."))
	}

	fmt.Fprintln(&b)
	for _, ds := range []struct {
		name string
		mean float64
		sd   float64
	}{
		{home.Name, home.Summary.Mean, home.Summary.StdDev},
		{away.Name, away.Summary.Mean, away.Summary.StdDev},
	} {
		fmt.Fprintln(&b, st.muted.Render(fmt.Sprintf("%s: mean %.1f, sd %.1f", ds.name, ds.mean, ds.sd)))
	}

	_, err := io.WriteString(w, b.String())
	return err
}

func writeBar(b *strings.Builder, label, glyph string, count, maxCount, width int, style lipgloss.Style) {
	fmt.Fprintf(b, "%s  %s %s\n", label, style.Render(strings.Repeat(glyph, barCells(count, maxCount, width))), humanize.Comma(int64(count)))
}

// barCells scales count to width. Non-zero counts always get at least one cell.
func barCells(count, maxCount, width int) int {
	if count <= 0 || maxCount <= 0 {
		return 0
	}
	cells := int(math.Round(float64(count) / float64(maxCount) * float64(width)))
	return min(max(cells, 1), width)
}

func countAt(counts []int, i int) int {
	if i < len(counts) {
		return counts[i]
	}
	return 0
}
