// Package profile holds the runtime configuration for the callwave server.
package profile

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/pkg/errors"

	"github.com/hrygo/callwave/server/timezone"
)

// Profile is the configuration to start the main server.
type Profile struct {
	// Mode can be "prod" or "dev"
	Mode string
	// Addr is the binding address for the admin server
	Addr string
	// Port is the binding port for the admin server
	Port int
	// Data is the data directory
	Data string
	// DSN points to where callwave stores its own data
	DSN string
	// Driver is the database driver (sqlite or postgres)
	Driver string
	// Version is the current version of the server
	Version string

	// Timezone is the reference civil zone in which operators configure
	// job windows (IANA identifier)
	Timezone string
	// DefaultHour is the reference-zone hour applied to resolved schedules
	// that carry a date but no time
	DefaultHour int
	// DispatchInterval is the dispatcher tick interval
	DispatchInterval time.Duration

	// AI configuration for the inferential scheduling tier
	AIEnabled bool   // CALLWAVE_AI_ENABLED
	AIAPIKey  string // CALLWAVE_AI_API_KEY
	AIBaseURL string // CALLWAVE_AI_BASE_URL (default: https://api.openai.com/v1)
	AIModel   string // CALLWAVE_AI_MODEL (default: gpt-4o-mini)
}

// IsDev returns true unless the profile runs in prod mode.
func (p *Profile) IsDev() bool {
	return p.Mode != "prod"
}

// IsAIEnabled returns true if the inferential tier is enabled and usable.
func (p *Profile) IsAIEnabled() bool {
	return p.AIEnabled && p.AIAPIKey != ""
}

// ReferenceZone loads the configured reference zone location.
func (p *Profile) ReferenceZone() (*time.Location, error) {
	return timezone.ParseTimezone(p.Timezone)
}

// getEnvOrDefault returns the environment variable value or the default value.
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// FromEnv loads configuration from CALLWAVE_* environment variables.
func (p *Profile) FromEnv() {
	p.AIEnabled = os.Getenv("CALLWAVE_AI_ENABLED") == "true"
	p.AIAPIKey = os.Getenv("CALLWAVE_AI_API_KEY")
	p.AIBaseURL = getEnvOrDefault("CALLWAVE_AI_BASE_URL", "https://api.openai.com/v1")
	p.AIModel = getEnvOrDefault("CALLWAVE_AI_MODEL", "gpt-4o-mini")

	if p.Timezone == "" {
		p.Timezone = getEnvOrDefault("CALLWAVE_TIMEZONE", timezone.TimezoneAmericaNewYork)
	}
	if p.DefaultHour == 0 {
		hour, err := strconv.Atoi(getEnvOrDefault("CALLWAVE_DEFAULT_HOUR", "10"))
		if err != nil {
			hour = 10
		}
		p.DefaultHour = hour
	}
	if p.DispatchInterval == 0 {
		interval, err := time.ParseDuration(getEnvOrDefault("CALLWAVE_DISPATCH_INTERVAL", "60s"))
		if err != nil {
			interval = time.Minute
		}
		p.DispatchInterval = interval
	}
}

// Validate checks the profile and normalizes derived fields.
// Configuration errors surface here, at startup, not on a scheduler tick.
func (p *Profile) Validate() error {
	if p.Mode != "prod" && p.Mode != "dev" {
		p.Mode = "dev"
	}

	dataDir, err := checkDataDir(p.Data)
	if err != nil {
		return errors.Wrapf(err, "invalid data directory %q", p.Data)
	}
	p.Data = dataDir

	switch p.Driver {
	case "sqlite":
		if p.DSN == "" {
			dbFile := fmt.Sprintf("callwave_%s.db", p.Mode)
			p.DSN = filepath.Join(p.Data, dbFile)
		}
	case "postgres":
		if p.DSN == "" {
			return errors.New("DSN is required for postgres driver")
		}
	default:
		return errors.Errorf("unknown db driver %q: only 'sqlite' and 'postgres' are supported", p.Driver)
	}

	if !timezone.IsValidTimezone(p.Timezone) {
		return errors.Errorf("invalid reference timezone %q", p.Timezone)
	}
	if p.DefaultHour < 0 || p.DefaultHour > 23 {
		return errors.Errorf("default hour %d out of range [0, 23]", p.DefaultHour)
	}
	if p.DispatchInterval < time.Second {
		return errors.Errorf("dispatch interval %s is below the 1s minimum", p.DispatchInterval)
	}

	return nil
}

func checkDataDir(dataDir string) (string, error) {
	// Convert to absolute path if relative path is supplied.
	if !filepath.IsAbs(dataDir) {
		relativeDir := filepath.Join(filepath.Dir(os.Args[0]), dataDir)
		absDir, err := filepath.Abs(relativeDir)
		if err != nil {
			return "", err
		}
		dataDir = absDir
	}

	// Trim trailing \ or / in case user supplies.
	dataDir = strings.TrimRight(dataDir, "\\/")
	if _, err := os.Stat(dataDir); err != nil {
		return "", errors.Wrap(err, "unable to access data directory")
	}

	return dataDir, nil
}
