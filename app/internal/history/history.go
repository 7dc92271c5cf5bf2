package history

import (
	"math"
	"time"

	"statuspage/app/internal/models"
	"statuspage/app/internal/status"
)

const (
	minutesPerDay = 1440

	// MaxDailyHistory bounds the daily rollup to 30 calendar days.
	MaxDailyHistory = 30
)

// MaxRecentChecks is the bound of the fine-grained ring buffer: one
// day's worth of ticks at the given interval, rounded up.
func MaxRecentChecks(interval time.Duration) int {
	mins := int(interval.Minutes())
	if mins <= 0 {
		mins = 1
	}
	return (minutesPerDay + mins - 1) / mins
}

// Result is one classified probe result ready to be folded into a
// monitor's history.
type Result struct {
	Status       status.Status
	Timestamp    time.Time
	ResponseTime int
}

// Fold merges a classified result into a monitor's persisted record and
// returns the updated record. prev is nil on the monitor's first-ever
// check. Pure transformation: prev is not mutated, and persisting the
// returned record is the caller's job.
//
// startDate is first-observation-wins. The recent-checks buffer keeps
// the newest MaxRecentChecks(interval) entries. The daily rollup keeps
// one entry per UTC calendar day holding the worst status seen that
// day, bounded to MaxDailyHistory days. The cached uptime is recomputed
// over the full retained daily history.
func Fold(prev *models.MonitorRecord, res Result, interval time.Duration, degradedCountsAsDown bool) models.MonitorRecord {
	ts := res.Timestamp.UTC()

	rec := models.MonitorRecord{
		Status:       res.Status,
		Operational:  res.Status == status.Operational,
		LastCheck:    ts,
		ResponseTime: res.ResponseTime,
		StartDate:    ts,
	}
	if prev != nil && !prev.StartDate.IsZero() {
		rec.StartDate = prev.StartDate
	}

	var recent []models.RecentCheck
	if prev != nil {
		recent = append(recent, prev.RecentChecks...)
	}
	recent = append(recent, models.RecentCheck{Timestamp: ts, Status: res.Status})
	if max := MaxRecentChecks(interval); len(recent) > max {
		recent = append([]models.RecentCheck(nil), recent[len(recent)-max:]...)
	}
	rec.RecentChecks = recent

	var daily []models.DailyHistoryEntry
	if prev != nil {
		daily = append(daily, prev.DailyHistory...)
	}
	today := ts.Format("2006-01-02")
	if n := len(daily); n > 0 && daily[n-1].Date == today {
		daily[n-1].Status = status.Worst(daily[n-1].Status, res.Status)
	} else {
		daily = append(daily, models.DailyHistoryEntry{Date: today, Status: res.Status})
	}
	if len(daily) > MaxDailyHistory {
		daily = append([]models.DailyHistoryEntry(nil), daily[len(daily)-MaxDailyHistory:]...)
	}
	rec.DailyHistory = daily

	statuses := make([]status.Status, len(daily))
	for i, d := range daily {
		statuses[i] = d.Status
	}
	rec.Uptime = round3(status.Uptime(statuses, res.Status, degradedCountsAsDown))

	return rec
}

func round3(v float64) float64 {
	return math.Round(v*1000) / 1000
}
