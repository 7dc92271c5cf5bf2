package status

import (
	"fmt"
	"strconv"
	"strings"
)

// Status is the tri-state health of a monitor.
type Status string

const (
	Operational Status = "operational"
	Degraded    Status = "degraded"
	Down        Status = "down"

	// Unknown is derived for monitors with no record yet.
	// It is never persisted.
	Unknown Status = "unknown"
)

// Severity ordering: down > degraded > operational.
var priority = map[Status]int{
	Operational: 1,
	Degraded:    2,
	Down:        3,
}

// Valid reports whether s is one of the three storable statuses.
func Valid(s Status) bool {
	_, ok := priority[s]
	return ok
}

// Worst returns the more severe of the two statuses.
// Ties keep the current value, so an equal incoming status never
// overwrites the existing one.
func Worst(current, next Status) Status {
	if priority[next] > priority[current] {
		return next
	}
	return current
}

// Overall reduces per-monitor statuses to one site-wide status.
// Any down wins, then any degraded, otherwise operational.
// An empty input is Unknown.
func Overall(statuses []Status) Status {
	if len(statuses) == 0 {
		return Unknown
	}
	worst := Operational
	for _, s := range statuses {
		worst = Worst(worst, s)
	}
	return worst
}

// Available reports whether s counts toward uptime. Operational is
// always available; degraded is available only when the monitor is
// configured to not count degraded checks as downtime.
func Available(s Status, degradedCountsAsDown bool) bool {
	if s == Operational {
		return true
	}
	return s == Degraded && !degradedCountsAsDown
}

// Uptime computes the percentage of available entries in statuses.
// With no entries the fallback status decides: an available fallback
// means 100, anything else 0.
func Uptime(statuses []Status, fallback Status, degradedCountsAsDown bool) float64 {
	if len(statuses) == 0 {
		if Available(fallback, degradedCountsAsDown) {
			return 100
		}
		return 0
	}
	available := 0
	for _, s := range statuses {
		if Available(s, degradedCountsAsDown) {
			available++
		}
	}
	return float64(available) / float64(len(statuses)) * 100
}

// IsAccepted reports whether an HTTP status code matches the monitor's
// accepted set. Entries are exact codes ("301") or inclusive ranges
// ("200-299"); a code is accepted if any entry matches. With no entries
// configured, any 2xx is accepted.
func IsAccepted(code int, ranges []string) bool {
	if len(ranges) == 0 {
		return code >= 200 && code < 300
	}
	for _, entry := range ranges {
		min, max, ok := parseCodeEntry(entry)
		if ok && code >= min && code <= max {
			return true
		}
	}
	return false
}

// ValidateAcceptedCodes rejects malformed accepted-status-code entries.
// Meant for load time so a bad config surfaces once, not on every tick.
func ValidateAcceptedCodes(ranges []string) error {
	for _, entry := range ranges {
		min, max, ok := parseCodeEntry(entry)
		if !ok {
			return fmt.Errorf("invalid accepted status code entry %q", entry)
		}
		if min > max {
			return fmt.Errorf("inverted status code range %q", entry)
		}
	}
	return nil
}

func parseCodeEntry(entry string) (min, max int, ok bool) {
	entry = strings.TrimSpace(entry)
	if lo, hi, found := strings.Cut(entry, "-"); found {
		min, err1 := strconv.Atoi(lo)
		max, err2 := strconv.Atoi(hi)
		if err1 != nil || err2 != nil {
			return 0, 0, false
		}
		return min, max, true
	}
	n, err := strconv.Atoi(entry)
	if err != nil {
		return 0, 0, false
	}
	return n, n, true
}
