package history

import (
	"fmt"
	"time"

	"statuspage/app/internal/models"
	"statuspage/app/internal/status"
)

// Period is a supported look-back window for uptime queries.
type Period string

const (
	Period1h  Period = "1h"
	Period24h Period = "24h"
	Period3d  Period = "3d"
	Period7d  Period = "7d"
	Period30d Period = "30d"
)

// Periods lists the supported look-back windows in ascending order.
var Periods = []Period{Period1h, Period24h, Period3d, Period7d, Period30d}

// ParsePeriod validates a look-back period string.
func ParsePeriod(s string) (Period, error) {
	for _, p := range Periods {
		if s == string(p) {
			return p, nil
		}
	}
	return "", fmt.Errorf("unknown look-back period %q", s)
}

// UptimeForPeriod computes the uptime percentage for one look-back
// window. Hour-scale periods filter the fine-grained checks by
// timestamp; day-scale periods take the last N daily rollup entries.
// With no data in the window, the record's current status is the
// fallback.
func UptimeForPeriod(rec models.MonitorRecord, p Period, now time.Time, degradedCountsAsDown bool) float64 {
	var statuses []status.Status

	switch p {
	case Period1h, Period24h:
		window := time.Hour
		if p == Period24h {
			window = 24 * time.Hour
		}
		cutoff := now.Add(-window)
		for _, c := range rec.RecentChecks {
			if !c.Timestamp.Before(cutoff) {
				statuses = append(statuses, c.Status)
			}
		}
	default:
		days := 3
		switch p {
		case Period7d:
			days = 7
		case Period30d:
			days = 30
		}
		daily := rec.DailyHistory
		if len(daily) > days {
			daily = daily[len(daily)-days:]
		}
		for _, d := range daily {
			statuses = append(statuses, d.Status)
		}
	}

	return status.Uptime(statuses, rec.Status, degradedCountsAsDown)
}
