package config

import (
	"os"
	"strings"
	"time"
)

// Timeouts holds all configurable wait durations. None of them are magic
// numbers in the step code; tests inject near-zero values.
type Timeouts struct {
	// RolePropagation is the pause after granting a role before relying
	// on it (IAM propagation is eventually consistent).
	RolePropagation time.Duration

	// ServicePropagation is the pause after enabling a prerequisite
	// service mid-run (e.g. IAP before brand creation).
	ServicePropagation time.Duration

	// KeyRetrySchedule is the ordered wait schedule for key-creation
	// retries after the blocking policy is lifted. One attempt follows
	// each wait; the schedule bounds the total attempts.
	KeyRetrySchedule []time.Duration
}

// DefaultKeyRetrySchedule is the escalating wait schedule for key creation.
var DefaultKeyRetrySchedule = []time.Duration{
	15 * time.Second,
	30 * time.Second,
	60 * time.Second,
	120 * time.Second,
}

// LoadTimeouts loads timing configuration from environment variables,
// falling back to defaults when unset or invalid.
//
// Environment Variables:
//   - GWSETUP_ROLE_PROPAGATION (default: 30s)
//   - GWSETUP_SERVICE_PROPAGATION (default: 20s)
//   - GWSETUP_KEY_RETRY_SCHEDULE (default: "15s,30s,60s,120s")
func LoadTimeouts() *Timeouts {
	return &Timeouts{
		RolePropagation:    parseDuration("GWSETUP_ROLE_PROPAGATION", 30*time.Second),
		ServicePropagation: parseDuration("GWSETUP_SERVICE_PROPAGATION", 20*time.Second),
		KeyRetrySchedule:   parseSchedule("GWSETUP_KEY_RETRY_SCHEDULE", DefaultKeyRetrySchedule),
	}
}

// parseDuration parses a duration from an environment variable.
func parseDuration(envVar string, defaultVal time.Duration) time.Duration {
	val := os.Getenv(envVar)
	if val == "" {
		return defaultVal
	}

	d, err := time.ParseDuration(val)
	if err != nil {
		return defaultVal
	}
	return d
}

// parseSchedule parses a comma-separated duration list. Any invalid entry
// invalidates the whole value and the default is used.
func parseSchedule(envVar string, defaultVal []time.Duration) []time.Duration {
	val := os.Getenv(envVar)
	if val == "" {
		return defaultVal
	}

	parts := strings.Split(val, ",")
	schedule := make([]time.Duration, 0, len(parts))
	for _, p := range parts {
		d, err := time.ParseDuration(strings.TrimSpace(p))
		if err != nil {
			return defaultVal
		}
		schedule = append(schedule, d)
	}
	if len(schedule) == 0 {
		return defaultVal
	}
	return schedule
}
