package config

import (
	"crypto/subtle"
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"

	"statuspage/app/internal/models"
	"statuspage/app/internal/status"
)

// Config holds all application configuration.
type Config struct {
	// Server
	Port   string
	DBPath string

	// Scheduler
	EnableScheduler     bool
	PollInterval        time.Duration
	ProbeTimeout        time.Duration
	UserAgent           string
	DegradedThresholdMs int

	// Manual trigger auth: either a plain secret or a bcrypt hash of it.
	CronSecret     string
	CronSecretHash []byte

	// Loaded from JSON config files; order defines display order.
	Monitors     []models.MonitorConfig
	Maintenances []models.MaintenanceWindow
}

// Load reads configuration from the environment and the monitor and
// maintenance JSON files. Malformed monitor configuration is a load
// error, not a per-tick failure.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Port:                getenv("PORT", "4555"),
		DBPath:              getenv("DB_PATH", "./statuspage.db"),
		EnableScheduler:     envBool("ENABLE_SCHEDULER", true),
		PollInterval:        time.Duration(envInt("POLL_MINUTES", 5)) * time.Minute,
		ProbeTimeout:        envDurSecs("PROBE_TIMEOUT_SECS", 10),
		UserAgent:           getenv("PROBE_USER_AGENT", ""),
		DegradedThresholdMs: envInt("DEGRADED_THRESHOLD_MS", status.DefaultDegradedThresholdMs),
		CronSecret:          getenv("CRON_SECRET", ""),
	}
	if h := getenv("CRON_SECRET_BCRYPT", ""); h != "" {
		cfg.CronSecretHash = []byte(h)
	}

	monitors, err := LoadMonitors(getenv("MONITORS_PATH", "./monitors.json"))
	if err != nil {
		return nil, err
	}
	cfg.Monitors = monitors

	maintenances, err := LoadMaintenances(getenv("MAINTENANCES_PATH", "./maintenances.json"))
	if err != nil {
		return nil, err
	}
	cfg.Maintenances = maintenances

	return cfg, nil
}

// LoadMonitors reads and validates the monitor list. A missing file is
// an empty list, not an error.
func LoadMonitors(path string) ([]models.MonitorConfig, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read monitors config %s: %w", path, err)
	}

	var monitors []models.MonitorConfig
	if err := json.Unmarshal(data, &monitors); err != nil {
		return nil, fmt.Errorf("parse monitors config %s: %w", path, err)
	}

	seen := make(map[string]struct{}, len(monitors))
	for i, m := range monitors {
		if m.ID == "" {
			return nil, fmt.Errorf("monitor %d: missing id", i)
		}
		if _, dup := seen[m.ID]; dup {
			return nil, fmt.Errorf("monitor %q: duplicate id", m.ID)
		}
		seen[m.ID] = struct{}{}
		if m.URL == "" {
			return nil, fmt.Errorf("monitor %q: missing url", m.ID)
		}
		if err := status.ValidateAcceptedCodes(m.AcceptedStatusCodes); err != nil {
			return nil, fmt.Errorf("monitor %q: %w", m.ID, err)
		}
	}
	return monitors, nil
}

// LoadMaintenances reads the maintenance window list. A missing file is
// an empty list. Window date/time fields are not validated here: the
// evaluator fails closed on malformed values at read time.
func LoadMaintenances(path string) ([]models.MaintenanceWindow, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read maintenances config %s: %w", path, err)
	}

	var windows []models.MaintenanceWindow
	if err := json.Unmarshal(data, &windows); err != nil {
		return nil, fmt.Errorf("parse maintenances config %s: %w", path, err)
	}
	return windows, nil
}

// VerifyCronAuth checks the X-Cron-Auth token for the manual trigger
// endpoint. With no secret configured the endpoint is disabled (always
// denied).
func (c *Config) VerifyCronAuth(token string) bool {
	if token == "" {
		return false
	}
	if len(c.CronSecretHash) > 0 {
		return bcrypt.CompareHashAndPassword(c.CronSecretHash, []byte(token)) == nil
	}
	if c.CronSecret == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(c.CronSecret), []byte(token)) == 1
}

// Helper functions
func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func envInt(k string, def int) int {
	if v := os.Getenv(k); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func envBool(k string, def bool) bool {
	v := strings.ToLower(getenv(k, ""))
	if v == "" {
		return def
	}
	return v == "1" || v == "true" || v == "yes"
}

func envDurSecs(k string, def int) time.Duration {
	return time.Duration(envInt(k, def)) * time.Second
}
