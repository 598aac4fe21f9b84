package main

import (
	"github.com/juju/loggo/v2"
	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/hbnb/internal/config"
	"github.com/mesh-intelligence/hbnb/internal/paths"
)

// Exit codes.
const (
	exitSuccess   = 0
	exitUserError = 1
	exitSysError  = 2
)

var logger = loggo.GetLogger("hbnb.cmd")

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

// Global flag values.
var (
	flagConfigDir string
	flagDataDir   string
	flagJSON      bool
	flagLogLevel  string
)

// settings holds what PersistentPreRunE loaded for the subcommands.
var settings struct {
	configDir paths.Dir
	// dataDir is the data_dir value from config.yaml.
	dataDir string
	// fallback maps HBNB_* variables to their config.yaml values.
	fallback map[string]string
}

var rootCmd = &cobra.Command{
	Use:           "hbnb",
	Short:         "hbnb serves and administers the HBnB property rental store",
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		configDir, err := resolveConfigDir()
		if err != nil {
			return err
		}

		v, err := loadConfig(configDir.Path)
		if err != nil {
			return err
		}

		settings.configDir = configDir
		settings.dataDir = v.GetString(cfgKeyDataDir)
		settings.fallback = envFallback(v)

		return configureLogging()
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfigDir, "config-dir", "", "configuration directory (default: platform config dir)")
	rootCmd.PersistentFlags().StringVar(&flagDataDir, "data-dir", "", "data directory (default: current directory)")
	rootCmd.PersistentFlags().BoolVar(&flagJSON, "json", false, "output as JSON")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "log level or loggo spec (default: HBNB_LOG_LEVEL, then INFO)")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(getCmd)
	rootCmd.AddCommand(createCmd)
	rootCmd.AddCommand(updateCmd)
	rootCmd.AddCommand(deleteCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(resetCmd)
}

// configureLogging applies --log-level, else HBNB_LOG_LEVEL, else the
// config.yaml log_level.
func configureLogging() error {
	var env struct {
		LogLevel string `env:"HBNB_LOG_LEVEL"`
	}
	if err := config.ParseEnvWithFallback(&env, settings.fallback); err != nil {
		return err
	}
	level := env.LogLevel
	if flagLogLevel != "" {
		level = flagLogLevel
	}
	return config.ConfigureLogging(level)
}

// resolveDataDir returns the data directory:
// --data-dir flag > config.yaml data_dir > HBNB_DATA_DIR env > current directory.
func resolveDataDir() (paths.Dir, error) {
	return paths.DataDir(flagDataDir, settings.dataDir)
}

// resolveConfigDir returns the configuration directory:
// --config-dir flag > HBNB_CONFIG_DIR env > user config directory.
func resolveConfigDir() (paths.Dir, error) {
	return paths.ConfigDir(flagConfigDir)
}
