package models

import (
	"encoding/json"
	"testing"
)

func TestLocalizedText_UnmarshalString(t *testing.T) {
	var l LocalizedText
	if err := json.Unmarshal([]byte(`"Scheduled maintenance"`), &l); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if l["en"] != "Scheduled maintenance" {
		t.Errorf("en = %q", l["en"])
	}
}

func TestLocalizedText_UnmarshalObject(t *testing.T) {
	var l LocalizedText
	if err := json.Unmarshal([]byte(`{"en": "Maintenance", "de": "Wartung"}`), &l); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if l["de"] != "Wartung" || l["en"] != "Maintenance" {
		t.Errorf("l = %v", l)
	}
}

func TestLocalizedText_UnmarshalInvalid(t *testing.T) {
	var l LocalizedText
	if err := json.Unmarshal([]byte(`42`), &l); err == nil {
		t.Error("numeric payload accepted")
	}
}

func TestLocalizedText_Resolve(t *testing.T) {
	l := LocalizedText{"en": "Maintenance", "de": "Wartung"}
	if got := l.Resolve("de"); got != "Wartung" {
		t.Errorf("de = %q", got)
	}
	// Unknown language falls back to English.
	if got := l.Resolve("fr"); got != "Maintenance" {
		t.Errorf("fr = %q", got)
	}
	// Without English, any entry beats nothing.
	only := LocalizedText{"ja": "メンテナンス"}
	if got := only.Resolve("en"); got != "メンテナンス" {
		t.Errorf("fallback = %q", got)
	}
	if got := (LocalizedText{}).Resolve("en"); got != "" {
		t.Errorf("empty = %q", got)
	}
}

func TestMonitorConfig_DegradedIsDown(t *testing.T) {
	var m MonitorConfig
	if !m.DegradedIsDown() {
		t.Error("unset override should count degraded as down")
	}
	f := false
	m.DegradedCountsAsDown = &f
	if m.DegradedIsDown() {
		t.Error("explicit false override ignored")
	}
	tr := true
	m.DegradedCountsAsDown = &tr
	if !m.DegradedIsDown() {
		t.Error("explicit true override ignored")
	}
}

func TestRecentCheck_CompactKeys(t *testing.T) {
	data, err := json.Marshal(RecentCheck{})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	// The fine-grained buffer is the bulk of every record; short keys
	// keep the persisted payload small.
	if _, ok := raw["t"]; !ok {
		t.Error("timestamp key is not t")
	}
	if _, ok := raw["s"]; !ok {
		t.Error("status key is not s")
	}
}
