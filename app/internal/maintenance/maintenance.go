package maintenance

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"statuspage/app/internal/models"
)

var (
	dateRe = regexp.MustCompile(`^(\d{4})[-/](\d{2})[-/](\d{2})$`)
	hourRe = regexp.MustCompile(`^(\d{2}):(\d{2})$`)
)

const (
	defaultStartHour = "00:00"
	defaultEndHour   = "23:59"
)

// StartTime resolves a window's start instant, or nil when it cannot
// be determined. An unresolvable start means the window is never
// active (fails closed).
func StartTime(w models.MaintenanceWindow) *time.Time {
	return resolve(w.StartTime, w.StartDate, w.StartHour, defaultStartHour)
}

// EndTime resolves a window's end instant, or nil for an open-ended
// window.
func EndTime(w models.MaintenanceWindow) *time.Time {
	return resolve(w.EndTime, w.EndDate, w.EndHour, defaultEndHour)
}

// IsActive reports whether the window covers now. Active means the
// start resolved and now is at or past it, and either no end resolved
// or now is at or before it.
func IsActive(w models.MaintenanceWindow, now time.Time) bool {
	start := StartTime(w)
	if start == nil || now.Before(*start) {
		return false
	}
	if end := EndTime(w); end != nil && now.After(*end) {
		return false
	}
	return true
}

// ActiveWindows filters to windows covering now, preserving order.
// Never returns nil so the API serializes an empty list, not null.
func ActiveWindows(windows []models.MaintenanceWindow, now time.Time) []models.MaintenanceWindow {
	active := []models.MaintenanceWindow{}
	for _, w := range windows {
		if IsActive(w, now) {
			active = append(active, w)
		}
	}
	return active
}

// resolve prefers the combined instant; otherwise it combines the
// calendar date with the clock time (or its default) in UTC. Malformed
// values resolve to nil.
func resolve(iso, date, hour, defaultHour string) *time.Time {
	if iso != "" {
		t, err := time.Parse(time.RFC3339, iso)
		if err != nil {
			return nil
		}
		t = t.UTC()
		return &t
	}
	if date == "" {
		return nil
	}
	year, month, day, ok := parseDatePart(date)
	if !ok {
		return nil
	}
	if hour == "" {
		hour = defaultHour
	}
	h, m, ok := parseHourPart(hour)
	if !ok {
		return nil
	}
	t := time.Date(year, time.Month(month), day, h, m, 0, 0, time.UTC)
	return &t
}

// parseDatePart accepts YYYY-MM-DD or YYYY/MM/DD with month 1-12 and
// day 1-31. No per-month day-count validation beyond that bound.
func parseDatePart(value string) (year, month, day int, ok bool) {
	m := dateRe.FindStringSubmatch(strings.TrimSpace(value))
	if m == nil {
		return 0, 0, 0, false
	}
	year, _ = strconv.Atoi(m[1])
	month, _ = strconv.Atoi(m[2])
	day, _ = strconv.Atoi(m[3])
	if month < 1 || month > 12 || day < 1 || day > 31 {
		return 0, 0, 0, false
	}
	return year, month, day, true
}

// parseHourPart accepts HH:MM with hour 0-23 and minute 0-59.
func parseHourPart(value string) (hour, minute int, ok bool) {
	m := hourRe.FindStringSubmatch(strings.TrimSpace(value))
	if m == nil {
		return 0, 0, false
	}
	hour, _ = strconv.Atoi(m[1])
	minute, _ = strconv.Atoi(m[2])
	if hour > 23 || minute > 59 {
		return 0, 0, false
	}
	return hour, minute, true
}
