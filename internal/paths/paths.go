// Package paths decides where hbnb keeps its files: the configuration
// directory holding config.yaml, and the data directory holding the flat
// store file and the SQLite database.
package paths

import (
	"fmt"
	"os"
	"path/filepath"
)

const appName = "hbnb"

// File names used when the configuration leaves them unset.
const (
	ConfigFile        = "config.yaml"
	DefaultStoreFile  = "file.json"
	DefaultSQLiteFile = "hbnb.db"
)

// Environment variables that override the directories.
const (
	EnvConfigDir = "HBNB_CONFIG_DIR"
	EnvDataDir   = "HBNB_DATA_DIR"
)

// Source records which setting a directory was taken from.
type Source string

const (
	FromFlag    Source = "flag"
	FromConfig  Source = "config.yaml"
	FromEnv     Source = "environment"
	FromDefault Source = "default"
)

// Dir is a resolved absolute directory and the setting it came from.
type Dir struct {
	Path   string
	Source Source
}

func (d Dir) String() string {
	return fmt.Sprintf("%s (%s)", d.Path, d.Source)
}

// userConfigDir is os.UserConfigDir, replaced in tests. It honours
// XDG_CONFIG_HOME on Linux.
var userConfigDir = os.UserConfigDir

// candidate is one setting in a precedence chain.
type candidate struct {
	value  string
	source Source
}

// pick returns the first non-empty candidate as an absolute directory.
func pick(candidates ...candidate) (Dir, bool, error) {
	for _, c := range candidates {
		if c.value == "" {
			continue
		}
		abs, err := filepath.Abs(c.value)
		if err != nil {
			return Dir{}, false, fmt.Errorf("resolving %s directory %q: %w", c.source, c.value, err)
		}
		return Dir{Path: abs, Source: c.source}, true, nil
	}
	return Dir{}, false, nil
}

// ConfigDir resolves the configuration directory: the --config-dir flag,
// then HBNB_CONFIG_DIR, then hbnb under the user's config directory.
func ConfigDir(flag string) (Dir, error) {
	d, ok, err := pick(
		candidate{flag, FromFlag},
		candidate{os.Getenv(EnvConfigDir), FromEnv},
	)
	if err != nil || ok {
		return d, err
	}
	base, err := userConfigDir()
	if err != nil {
		return Dir{}, fmt.Errorf("locating user config directory: %w", err)
	}
	return Dir{Path: filepath.Join(base, appName), Source: FromDefault}, nil
}

// DataDir resolves the data directory: the --data-dir flag, then data_dir
// from config.yaml, then HBNB_DATA_DIR, then the working directory.
func DataDir(flag, fromConfig string) (Dir, error) {
	d, ok, err := pick(
		candidate{flag, FromFlag},
		candidate{fromConfig, FromConfig},
		candidate{os.Getenv(EnvDataDir), FromEnv},
	)
	if err != nil || ok {
		return d, err
	}
	wd, err := os.Getwd()
	if err != nil {
		return Dir{}, fmt.Errorf("locating working directory: %w", err)
	}
	return Dir{Path: wd, Source: FromDefault}, nil
}

// ConfigFilePath returns the config.yaml path inside dir.
func ConfigFilePath(dir string) string {
	return filepath.Join(dir, ConfigFile)
}

// StoreFile places a store file name in the data directory. An empty name
// takes fallback; an absolute name is used as given; a relative name is
// joined to dataDir, or left relative to the working directory when dataDir
// is empty.
func StoreFile(dataDir, name, fallback string) string {
	if name == "" {
		name = fallback
	}
	if filepath.IsAbs(name) || dataDir == "" {
		return filepath.Clean(name)
	}
	return filepath.Join(dataDir, name)
}
