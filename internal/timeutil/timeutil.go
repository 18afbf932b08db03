// Package timeutil converts fixture dates. A game is scheduled on a calendar day with no
// time of day, so dates are held as midnight UTC.
package timeutil

import (
	"fmt"
	"strings"
	"time"
)

// DateLayout is the only accepted fixture date format.
const DateLayout = "2006-01-02"

// ParseDate parses a YYYY-MM-DD fixture date, ignoring surrounding whitespace.
func ParseDate(value string) (time.Time, error) {
	raw := strings.TrimSpace(value)
	d, err := time.ParseInLocation(DateLayout, raw, time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: want YYYY-MM-DD", raw)
	}
	return d, nil
}

// FormatDate renders the calendar day of t as YYYY-MM-DD, in t's own location.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}
