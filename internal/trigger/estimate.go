package trigger

import "github.com/remo-imparato/MatchMonkey-sub000/internal/core/ports"

// EstimateRemaining derives how many queue entries are left from whatever
// the host reported. Fallback chain: exact remaining count, then
// total minus cursor, then the total alone.
func EstimateRemaining(d ports.QueueDepth) int {
	switch {
	case d.HasRemaining:
		return d.Remaining
	case d.HasCursor:
		return d.Total - d.Cursor
	default:
		return d.Total
	}
}
