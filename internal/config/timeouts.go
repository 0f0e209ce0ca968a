package config

import (
	"os"
	"strconv"
	"time"
)

// Timeouts holds all configurable timeout values.
// These values can be customized via environment variables.
type Timeouts struct {
	List              time.Duration // Timeout for listing all instances
	Action            time.Duration // Timeout for a single start/stop request, retries included
	RetryMaxAttempts  int           // Retries for a power request; 0 sends it once
	RetryInitialDelay time.Duration // Initial delay between retries
}

// LoadTimeouts loads timeout configuration from environment variables.
// If an environment variable is not set or invalid, a default value is used.
// Power requests are not retried unless INSTANCE_SCHEDULER_RETRY_MAX_ATTEMPTS
// is set; the next scheduled run re-evaluates every instance anyway.
//
// Environment Variables:
//   - INSTANCE_SCHEDULER_TIMEOUT_LIST (default: 2m)
//   - INSTANCE_SCHEDULER_TIMEOUT_ACTION (default: 30s)
//   - INSTANCE_SCHEDULER_RETRY_MAX_ATTEMPTS (default: 0)
//   - INSTANCE_SCHEDULER_RETRY_INITIAL_DELAY (default: 1s)
func LoadTimeouts() *Timeouts {
	return &Timeouts{
		List:              parseDuration("INSTANCE_SCHEDULER_TIMEOUT_LIST", 2*time.Minute),
		Action:            parseDuration("INSTANCE_SCHEDULER_TIMEOUT_ACTION", 30*time.Second),
		RetryMaxAttempts:  parseInt("INSTANCE_SCHEDULER_RETRY_MAX_ATTEMPTS", 0),
		RetryInitialDelay: parseDuration("INSTANCE_SCHEDULER_RETRY_INITIAL_DELAY", 1*time.Second),
	}
}

// parseDuration parses a duration from an environment variable.
// If the variable is not set or parsing fails, the default value is returned.
func parseDuration(envVar string, defaultVal time.Duration) time.Duration {
	val := os.Getenv(envVar)
	if val == "" {
		return defaultVal
	}

	d, err := time.ParseDuration(val)
	if err != nil || d <= 0 {
		return defaultVal
	}

	return d
}

// parseInt parses an integer from an environment variable.
// If the variable is not set or parsing fails, the default value is returned.
func parseInt(envVar string, defaultVal int) int {
	val := os.Getenv(envVar)
	if val == "" {
		return defaultVal
	}

	i, err := strconv.Atoi(val)
	if err != nil || i < 0 {
		return defaultVal
	}

	return i
}
