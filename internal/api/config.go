package api

import (
	"net"
	"strconv"
	"time"
)

// Config holds the HTTP listener settings.
type Config struct {
	Host            string        `env:"HBNB_API_HOST" envDefault:"0.0.0.0"`
	Port            int           `env:"HBNB_API_PORT" envDefault:"5000"`
	CORSOrigins     []string      `env:"HBNB_CORS_ORIGINS" envDefault:"0.0.0.0" envSeparator:","`
	ShutdownTimeout time.Duration `env:"HBNB_API_SHUTDOWN_TIMEOUT" envDefault:"5s"`
}

// Addr returns the listen address.
func (c Config) Addr() string {
	return net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
}
