package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"

	"github.com/mesh-intelligence/hbnb/internal/paths"
)

const (
	configFileName = "config"
	configFileType = "yaml"

	cfgKeyDataDir = "data_dir"
)

// configEnvKeys maps config.yaml keys to the environment variables they
// stand in for. A key only applies when its variable is unset.
var configEnvKeys = map[string]string{
	"storage":          "HBNB_TYPE_STORAGE",
	"env":              "HBNB_ENV",
	"file_name":        "HBNB_FILE_NAME",
	"db.driver":        "HBNB_DB_DRIVER",
	"db.host":          "HBNB_MYSQL_HOST",
	"db.user":          "HBNB_MYSQL_USER",
	"db.password":      "HBNB_MYSQL_PWD",
	"db.name":          "HBNB_MYSQL_DB",
	"db.sqlite_file":   "HBNB_SQLITE_FILE",
	"api.host":         "HBNB_API_HOST",
	"api.port":         "HBNB_API_PORT",
	"api.cors_origins": "HBNB_CORS_ORIGINS",
	"log_level":        "HBNB_LOG_LEVEL",
}

// defaultConfigYAML is the content written to config.yaml on first run.
const defaultConfigYAML = `# hbnb configuration
# HBNB_* environment variables override these values.

# Storage backend: file or db
storage: file

# Flat store file, relative to the data directory
file_name: file.json

# Data directory (optional; overridable by --data-dir flag)
# data_dir:

# Relational backend, used when storage is db
db:
  driver: sqlite
  sqlite_file: hbnb.db
  # host: localhost
  # user: hbnb_dev
  # password:
  # name: hbnb_dev_db

api:
  host: 0.0.0.0
  port: 5000
  cors_origins:
    - 0.0.0.0

log_level: INFO
`

// loadConfig reads config.yaml from the resolved config directory using Viper.
// It creates the config directory and a default config.yaml on first run.
// A missing config.yaml is not an error.
func loadConfig(configDir string) (*viper.Viper, error) {
	if err := ensureConfigDir(configDir); err != nil {
		return nil, fmt.Errorf("ensure config dir: %w", err)
	}

	if err := ensureDefaultConfigFile(configDir); err != nil {
		return nil, fmt.Errorf("ensure default config: %w", err)
	}

	v := viper.New()
	v.SetConfigName(configFileName)
	v.SetConfigType(configFileType)
	v.AddConfigPath(configDir)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return v, nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}

	return v, nil
}

// envFallback renders the config.yaml values as HBNB_* variables.
func envFallback(v *viper.Viper) map[string]string {
	out := make(map[string]string)
	for key, name := range configEnvKeys {
		if !v.IsSet(key) {
			continue
		}
		switch val := v.Get(key).(type) {
		case []any, []string:
			out[name] = strings.Join(v.GetStringSlice(key), ",")
		case nil:
		default:
			out[name] = fmt.Sprint(val)
		}
	}
	return out
}

// ensureConfigDir creates the config directory if it does not exist.
func ensureConfigDir(configDir string) error {
	return os.MkdirAll(configDir, 0o755)
}

// ensureDefaultConfigFile creates a default config.yaml if the file does not
// exist in the config directory.
func ensureDefaultConfigFile(configDir string) error {
	path := paths.ConfigFilePath(configDir)

	_, err := os.Stat(path)
	if err == nil {
		return nil
	}
	if !os.IsNotExist(err) {
		return fmt.Errorf("stat config file: %w", err)
	}

	return os.WriteFile(path, []byte(defaultConfigYAML), 0o644)
}
