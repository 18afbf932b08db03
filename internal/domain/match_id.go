package domain

import (
	"fmt"
	"strconv"
	"strings"
)

// ParseMatchID converts a match id taken from a URL path or command argument.
// Ids start at 1; anything else is ErrInvalidMatchID.
func ParseMatchID(raw string) (int, error) {
	id, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || id < 1 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidMatchID, raw)
	}
	return id, nil
}
