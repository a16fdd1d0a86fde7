package session

import (
	"fmt"
	"strings"
	"time"
)

// FormatDuration renders a duration as a compact "1h 2m 5s" style string.
// Hours appear when nonzero; minutes whenever minutes or hours are nonzero;
// seconds always. Negative durations clamp to zero — the UI must never show
// negative time.
func FormatDuration(d time.Duration) string {
	if d < 0 {
		d = 0
	}

	total := int64(d / time.Second)
	h := total / 3600
	m := (total % 3600) / 60
	s := total % 60

	var parts []string
	if h > 0 {
		parts = append(parts, fmt.Sprintf("%dh", h))
	}
	if m > 0 || h > 0 {
		parts = append(parts, fmt.Sprintf("%dm", m))
	}
	parts = append(parts, fmt.Sprintf("%ds", s))

	return strings.Join(parts, " ")
}
