package config

import (
	"fmt"
	"strings"

	"github.com/juju/loggo/v2"
)

// DefaultLogLevel applies when no level is configured.
const DefaultLogLevel = "INFO"

// ConfigureLogging sets loggo levels from spec. A bare level such as "DEBUG"
// applies to the root logger; anything else is passed to
// loggo.ConfigureLoggers unchanged, e.g. "<root>=WARNING;hbnb.api=DEBUG".
// Levels set by earlier calls are cleared first.
func ConfigureLogging(spec string) error {
	spec = strings.TrimSpace(spec)
	if spec == "" {
		spec = DefaultLogLevel
	}
	if !strings.Contains(spec, "=") {
		spec = "<root>=" + strings.ToUpper(spec)
	}
	loggo.DefaultContext().ResetLoggerLevels()
	if err := loggo.ConfigureLoggers(spec); err != nil {
		return fmt.Errorf("configure logging: %w", err)
	}
	return nil
}
