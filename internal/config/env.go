// Package config loads process configuration from the environment, with
// values from config.yaml filling what the environment leaves unset.
package config

import (
	"fmt"
	"os"

	"github.com/caarlos0/env/v11"
)

// ParseEnvWithFallback loads configuration from environment variables. A
// variable missing from the process environment takes its value from
// fallback, then from its envDefault tag.
func ParseEnvWithFallback(target any, fallback map[string]string) error {
	merged := make(map[string]string, len(fallback))
	for k, v := range fallback {
		merged[k] = v
	}
	for k, v := range env.ToMap(os.Environ()) {
		merged[k] = v
	}
	if err := env.ParseWithOptions(target, env.Options{Environment: merged}); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// Exitf writes a formatted error message to stderr and exits with code 1,
// the exit code of a usage error.
func Exitf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}
