package history

import (
	"testing"
	"time"

	"statuspage/app/internal/models"
	"statuspage/app/internal/status"
)

var base = time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

func foldN(n int, start time.Time, step time.Duration, st status.Status, interval time.Duration) models.MonitorRecord {
	var rec *models.MonitorRecord
	for i := 0; i < n; i++ {
		out := Fold(rec, Result{Status: st, Timestamp: start.Add(time.Duration(i) * step), ResponseTime: 50}, interval, true)
		rec = &out
	}
	return *rec
}

// --- MaxRecentChecks ---

func TestMaxRecentChecks(t *testing.T) {
	tests := []struct {
		interval time.Duration
		want     int
	}{
		{5 * time.Minute, 288},
		{time.Minute, 1440},
		{7 * time.Minute, 206}, // ceil(1440/7)
		{0, 1440},              // degenerate interval clamps to one minute
	}
	for _, tt := range tests {
		if got := MaxRecentChecks(tt.interval); got != tt.want {
			t.Errorf("MaxRecentChecks(%v) = %d, want %d", tt.interval, got, tt.want)
		}
	}
}

// --- Fold: first observation ---

func TestFold_FirstCheck(t *testing.T) {
	rec := Fold(nil, Result{Status: status.Operational, Timestamp: base, ResponseTime: 42}, 5*time.Minute, true)

	if rec.Status != status.Operational || !rec.Operational {
		t.Errorf("status = %s operational=%v", rec.Status, rec.Operational)
	}
	if !rec.StartDate.Equal(base) {
		t.Errorf("startDate = %v, want %v", rec.StartDate, base)
	}
	if !rec.LastCheck.Equal(base) {
		t.Errorf("lastCheck = %v", rec.LastCheck)
	}
	if rec.ResponseTime != 42 {
		t.Errorf("responseTime = %d", rec.ResponseTime)
	}
	if len(rec.RecentChecks) != 1 || len(rec.DailyHistory) != 1 {
		t.Fatalf("recent=%d daily=%d", len(rec.RecentChecks), len(rec.DailyHistory))
	}
	if rec.DailyHistory[0].Date != "2026-03-10" {
		t.Errorf("daily date = %s", rec.DailyHistory[0].Date)
	}
	if rec.Uptime != 100 {
		t.Errorf("uptime = %v", rec.Uptime)
	}
}

func TestFold_StartDateFirstWins(t *testing.T) {
	first := Fold(nil, Result{Status: status.Down, Timestamp: base}, 5*time.Minute, true)
	second := Fold(&first, Result{Status: status.Operational, Timestamp: base.Add(time.Hour)}, 5*time.Minute, true)
	if !second.StartDate.Equal(base) {
		t.Errorf("startDate = %v, want first observation %v", second.StartDate, base)
	}
}

func TestFold_DoesNotMutatePrev(t *testing.T) {
	prev := Fold(nil, Result{Status: status.Operational, Timestamp: base}, 5*time.Minute, true)
	prevChecks := len(prev.RecentChecks)
	prevStatus := prev.DailyHistory[0].Status

	_ = Fold(&prev, Result{Status: status.Down, Timestamp: base.Add(5 * time.Minute)}, 5*time.Minute, true)

	if len(prev.RecentChecks) != prevChecks {
		t.Error("prev recentChecks mutated")
	}
	if prev.DailyHistory[0].Status != prevStatus {
		t.Error("prev dailyHistory mutated")
	}
}

// --- Fold: recent-checks buffer ---

func TestFold_RecentChecksBounded(t *testing.T) {
	interval := 5 * time.Minute
	rec := foldN(300, base, interval, status.Operational, interval)

	if len(rec.RecentChecks) != 288 {
		t.Fatalf("buffer = %d, want 288", len(rec.RecentChecks))
	}
	// Oldest evicted first: the last entry is the newest fold.
	wantLast := base.Add(299 * interval)
	if got := rec.RecentChecks[len(rec.RecentChecks)-1].Timestamp; !got.Equal(wantLast) {
		t.Errorf("newest = %v, want %v", got, wantLast)
	}
	for i := 1; i < len(rec.RecentChecks); i++ {
		if !rec.RecentChecks[i-1].Timestamp.Before(rec.RecentChecks[i].Timestamp) {
			t.Fatalf("buffer not chronological at %d", i)
		}
	}
}

// --- Fold: daily rollup ---

func TestFold_SameDayMergesWorst(t *testing.T) {
	rec := Fold(nil, Result{Status: status.Operational, Timestamp: base}, 5*time.Minute, true)
	rec = Fold(&rec, Result{Status: status.Down, Timestamp: base.Add(5 * time.Minute)}, 5*time.Minute, true)
	rec = Fold(&rec, Result{Status: status.Operational, Timestamp: base.Add(10 * time.Minute)}, 5*time.Minute, true)

	if len(rec.DailyHistory) != 1 {
		t.Fatalf("daily entries = %d, want 1", len(rec.DailyHistory))
	}
	// The later operational check must not improve the day's status.
	if rec.DailyHistory[0].Status != status.Down {
		t.Errorf("day status = %s, want down", rec.DailyHistory[0].Status)
	}
	// Current status still reflects the latest check.
	if rec.Status != status.Operational {
		t.Errorf("status = %s, want operational", rec.Status)
	}
}

func TestFold_NewDayAppends(t *testing.T) {
	rec := Fold(nil, Result{Status: status.Operational, Timestamp: base}, 5*time.Minute, true)
	rec = Fold(&rec, Result{Status: status.Degraded, Timestamp: base.Add(24 * time.Hour)}, 5*time.Minute, true)

	if len(rec.DailyHistory) != 2 {
		t.Fatalf("daily entries = %d, want 2", len(rec.DailyHistory))
	}
	if rec.DailyHistory[0].Date != "2026-03-10" || rec.DailyHistory[1].Date != "2026-03-11" {
		t.Errorf("dates = %s, %s", rec.DailyHistory[0].Date, rec.DailyHistory[1].Date)
	}
}

func TestFold_UTCDateBoundary(t *testing.T) {
	late := time.Date(2026, 3, 10, 23, 59, 0, 0, time.UTC)
	rec := Fold(nil, Result{Status: status.Operational, Timestamp: late}, 5*time.Minute, true)
	rec = Fold(&rec, Result{Status: status.Operational, Timestamp: late.Add(2 * time.Minute)}, 5*time.Minute, true)

	if len(rec.DailyHistory) != 2 {
		t.Fatalf("midnight crossing should open a new day, got %d entries", len(rec.DailyHistory))
	}
}

func TestFold_DailyHistoryBounded(t *testing.T) {
	var rec *models.MonitorRecord
	for day := 0; day < 40; day++ {
		out := Fold(rec, Result{Status: status.Operational, Timestamp: base.AddDate(0, 0, day)}, 5*time.Minute, true)
		rec = &out
	}
	if len(rec.DailyHistory) != MaxDailyHistory {
		t.Fatalf("daily entries = %d, want %d", len(rec.DailyHistory), MaxDailyHistory)
	}
	// Oldest evicted: the first retained day is day 10.
	if rec.DailyHistory[0].Date != base.AddDate(0, 0, 10).Format("2006-01-02") {
		t.Errorf("oldest retained = %s", rec.DailyHistory[0].Date)
	}
	seen := map[string]bool{}
	for _, d := range rec.DailyHistory {
		if seen[d.Date] {
			t.Fatalf("duplicate day %s", d.Date)
		}
		seen[d.Date] = true
	}
}

// --- Fold: cached uptime ---

func TestFold_UptimeOverDailyHistory(t *testing.T) {
	rec := Fold(nil, Result{Status: status.Down, Timestamp: base}, 5*time.Minute, true)
	rec = Fold(&rec, Result{Status: status.Operational, Timestamp: base.AddDate(0, 0, 1)}, 5*time.Minute, true)
	rec = Fold(&rec, Result{Status: status.Operational, Timestamp: base.AddDate(0, 0, 2)}, 5*time.Minute, true)

	// 2 of 3 days available, rounded to 3 decimals.
	if rec.Uptime != 66.667 {
		t.Errorf("uptime = %v, want 66.667", rec.Uptime)
	}
}

func TestFold_UptimeDegradedConfigurable(t *testing.T) {
	first := Fold(nil, Result{Status: status.Degraded, Timestamp: base}, 5*time.Minute, true)
	if first.Uptime != 0 {
		t.Errorf("degraded-as-down uptime = %v, want 0", first.Uptime)
	}
	relaxed := Fold(nil, Result{Status: status.Degraded, Timestamp: base}, 5*time.Minute, false)
	if relaxed.Uptime != 100 {
		t.Errorf("degraded-as-up uptime = %v, want 100", relaxed.Uptime)
	}
}
