package models

import (
	"encoding/json"
	"time"

	"statuspage/app/internal/status"
)

// MonitorConfig describes one monitored endpoint. Loaded once at
// startup from monitors.json; immutable during a run. The order of
// monitors in the file defines display order only.
type MonitorConfig struct {
	ID                   string   `json:"id"`
	Name                 string   `json:"name"`
	Description          string   `json:"description,omitempty"`
	URL                  string   `json:"url"`
	Method               string   `json:"method,omitempty"`
	AcceptedStatusCodes  []string `json:"acceptedStatusCodes,omitempty"`
	FollowRedirect       bool     `json:"followRedirect,omitempty"`
	Linkable             bool     `json:"linkable,omitempty"`
	DegradedCountsAsDown *bool    `json:"degradedCountsAsDown,omitempty"`
}

// DegradedIsDown resolves the per-monitor override; degraded checks
// count as downtime unless explicitly configured otherwise.
func (m MonitorConfig) DegradedIsDown() bool {
	return m.DegradedCountsAsDown == nil || *m.DegradedCountsAsDown
}

// ProbeOutcome is the raw result of one probe. Lives for a single
// classification call.
type ProbeOutcome struct {
	Success      bool   // transport succeeded, StatusCode is meaningful
	StatusCode   int    // 0 on transport failure
	ResponseTime int    // elapsed milliseconds, best-available on failure
	Body         string // captured only for text content types
	ContentType  string
	Err          string // transport error text, empty on success
}

// RecentCheck is one fine-grained history entry, one per tick.
type RecentCheck struct {
	Timestamp time.Time     `json:"t"`
	Status    status.Status `json:"s"`
}

// DailyHistoryEntry holds the worst status observed on one UTC
// calendar day.
type DailyHistoryEntry struct {
	Date   string        `json:"date"` // YYYY-MM-DD
	Status status.Status `json:"status"`
}

// MonitorRecord is the persisted state of one monitor, keyed by
// monitor id. Written only by the aggregator, read by the API.
type MonitorRecord struct {
	Status       status.Status       `json:"status"`
	Operational  bool                `json:"operational"`
	LastCheck    time.Time           `json:"lastCheck"`
	ResponseTime int                 `json:"responseTime"`
	StartDate    time.Time           `json:"startDate"`
	RecentChecks []RecentCheck       `json:"recentChecks"`
	DailyHistory []DailyHistoryEntry `json:"dailyHistory"`
	Uptime       float64             `json:"uptime"`
}

// LocalizedText maps a language code to text. "en" is the fallback
// language; resolution happens in the presentation layer.
type LocalizedText map[string]string

// UnmarshalJSON accepts either a plain string or a {lang: text} object.
// A plain string becomes the "en" entry.
func (l *LocalizedText) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*l = LocalizedText{"en": s}
		return nil
	}
	var m map[string]string
	if err := json.Unmarshal(data, &m); err != nil {
		return err
	}
	*l = m
	return nil
}

// Resolve returns the text for lang, falling back to "en", then to any
// entry.
func (l LocalizedText) Resolve(lang string) string {
	if t, ok := l[lang]; ok && t != "" {
		return t
	}
	if t, ok := l["en"]; ok {
		return t
	}
	for _, t := range l {
		return t
	}
	return ""
}

// MaintenanceWindow is a scheduled maintenance announcement. The window
// bounds are either combined instants (StartTime/EndTime) or a calendar
// date plus optional clock time, combined in UTC.
type MaintenanceWindow struct {
	ID               string        `json:"id"`
	Title            LocalizedText `json:"title"`
	Message          LocalizedText `json:"message"`
	AffectedServices []string      `json:"affectedServices,omitempty"`

	StartTime string `json:"startTime,omitempty"`
	EndTime   string `json:"endTime,omitempty"`
	StartDate string `json:"startDate,omitempty"`
	StartHour string `json:"startHour,omitempty"`
	EndDate   string `json:"endDate,omitempty"`
	EndHour   string `json:"endHour,omitempty"`
}

// StatusResponse is the read API payload.
type StatusResponse struct {
	Monitors     map[string]MonitorRecord `json:"monitors"`
	Maintenances []MaintenanceWindow      `json:"maintenances"`
	LastUpdate   time.Time                `json:"lastUpdate"`
}
