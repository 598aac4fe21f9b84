package paths

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func withUserConfigDir(t *testing.T, dir string, err error) {
	t.Helper()
	prev := userConfigDir
	userConfigDir = func() (string, error) { return dir, err }
	t.Cleanup(func() { userConfigDir = prev })
}

func TestConfigDir(t *testing.T) {
	withUserConfigDir(t, "/home/ada/.config", nil)

	tests := []struct {
		name string
		flag string
		env  string
		want Dir
	}{
		{"flag wins", "/from/flag", "/from/env", Dir{"/from/flag", FromFlag}},
		{"env over default", "", "/from/env", Dir{"/from/env", FromEnv}},
		{"user config dir", "", "", Dir{"/home/ada/.config/hbnb", FromDefault}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(EnvConfigDir, tt.env)
			got, err := ConfigDir(tt.flag)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestConfigDir_RelativeFlagMadeAbsolute(t *testing.T) {
	t.Setenv(EnvConfigDir, "")
	wd, err := os.Getwd()
	require.NoError(t, err)

	got, err := ConfigDir("conf")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(wd, "conf"), got.Path)
}

func TestConfigDir_NoUserConfigDir(t *testing.T) {
	t.Setenv(EnvConfigDir, "")
	withUserConfigDir(t, "", errors.New("$HOME is not defined"))

	_, err := ConfigDir("")
	assert.ErrorContains(t, err, "user config directory")
}

func TestDataDir(t *testing.T) {
	wd, err := os.Getwd()
	require.NoError(t, err)

	tests := []struct {
		name       string
		flag       string
		fromConfig string
		env        string
		want       Dir
	}{
		{"flag wins", "/from/flag", "/from/yaml", "/from/env", Dir{"/from/flag", FromFlag}},
		{"config over env", "", "/from/yaml", "/from/env", Dir{"/from/yaml", FromConfig}},
		{"env", "", "", "/from/env", Dir{"/from/env", FromEnv}},
		{"working directory", "", "", "", Dir{wd, FromDefault}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(EnvDataDir, tt.env)
			got, err := DataDir(tt.flag, tt.fromConfig)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDir_String(t *testing.T) {
	assert.Equal(t, "/data (environment)", Dir{"/data", FromEnv}.String())
}

func TestConfigFilePath(t *testing.T) {
	assert.Equal(t, filepath.Join("/etc/hbnb", "config.yaml"), ConfigFilePath("/etc/hbnb"))
}

func TestStoreFile(t *testing.T) {
	tests := []struct {
		name    string
		dataDir string
		file    string
		want    string
	}{
		{"default name in data dir", "/data", "", "/data/file.json"},
		{"relative name in data dir", "/data", "sub/store.json", "/data/sub/store.json"},
		{"absolute name kept", "/data", "/var/lib/hbnb/store.json", "/var/lib/hbnb/store.json"},
		{"no data dir", "", "store.json", "store.json"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, filepath.FromSlash(tt.want), StoreFile(filepath.FromSlash(tt.dataDir), tt.file, DefaultStoreFile))
		})
	}
}
