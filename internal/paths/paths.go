// Package paths picks the directories larder reads its configuration
// from and keeps its database in. Overrides run from most to least
// specific: command-line flag, config.yaml value, environment variable,
// then the platform default.
package paths

import (
	"os"
	"path/filepath"
	"runtime"
)

// Environment variable overrides.
const (
	EnvConfigDir = "LARDER_CONFIG_DIR"
	EnvDataDir   = "LARDER_DATA_DIR"
)

// appDirName is the leaf directory larder claims under the platform
// config and data roots.
const appDirName = "larder"

// osDirs indirects the stdlib lookups so tests can substitute them.
var osDirs = struct {
	home       func() (string, error)
	userConfig func() (string, error)
}{
	home:       os.UserHomeDir,
	userConfig: os.UserConfigDir,
}

// DefaultConfigDir returns where config.yaml lives when nothing
// overrides it: $XDG_CONFIG_HOME/larder on Linux, with ~/.config/larder
// when the variable is unset, and the user config dir elsewhere.
func DefaultConfigDir() (string, error) {
	if runtime.GOOS == "linux" {
		return xdgDir("XDG_CONFIG_HOME", ".config")
	}
	return userConfigSubdir()
}

// DefaultDataDir returns where the database lives when nothing
// overrides it: $XDG_DATA_HOME/larder on Linux, with
// ~/.local/share/larder when the variable is unset. macOS and Windows
// keep per-user application config and data in one place, so both fall
// back to the user config dir.
func DefaultDataDir() (string, error) {
	if runtime.GOOS == "linux" {
		return xdgDir("XDG_DATA_HOME", filepath.Join(".local", "share"))
	}
	return userConfigSubdir()
}

// xdgDir resolves one XDG base directory, falling back to the
// conventional dot directory under $HOME when the variable is unset.
func xdgDir(envVar, homeFallback string) (string, error) {
	if base := os.Getenv(envVar); base != "" {
		return filepath.Join(base, appDirName), nil
	}
	home, err := osDirs.home()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, homeFallback, appDirName), nil
}

func userConfigSubdir() (string, error) {
	dir, err := osDirs.userConfig()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, appDirName), nil
}

// ResolveConfigDir picks the configuration directory: the flag wins,
// then LARDER_CONFIG_DIR, then the platform default.
func ResolveConfigDir(flag string) (string, error) {
	if flag != "" {
		return filepath.Abs(flag)
	}
	if env := os.Getenv(EnvConfigDir); env != "" {
		return filepath.Abs(env)
	}
	return DefaultConfigDir()
}

// ResolveDataDir picks the data directory: the flag wins, then the
// data_dir value from config.yaml, then LARDER_DATA_DIR, then the
// platform default.
func ResolveDataDir(flag, fromConfig string) (string, error) {
	if flag != "" {
		return filepath.Abs(flag)
	}
	if fromConfig != "" {
		return filepath.Abs(fromConfig)
	}
	if env := os.Getenv(EnvDataDir); env != "" {
		return filepath.Abs(env)
	}
	return DefaultDataDir()
}
