// Package paths resolves the configuration directory and the location of the
// diary file.
package paths

import (
	"os"
	"path/filepath"
	"runtime"
)

// appName is the directory name used under the platform config root.
const appName = "diary"

// Environment variable names for directory overrides.
const (
	EnvConfigDir = "DIARY_CONFIG_DIR"
	EnvDataDir   = "DIARY_DATA_DIR"
)

// platformDir holds platform-detection functions that can be overridden in tests.
var platformDir = struct {
	homeDir       func() (string, error)
	userConfigDir func() (string, error)
	getwd         func() (string, error)
}{
	homeDir:       os.UserHomeDir,
	userConfigDir: os.UserConfigDir,
	getwd:         os.Getwd,
}

// DefaultConfigDir returns the platform-specific default configuration directory.
//
// Linux:   $XDG_CONFIG_HOME/diary (fallback ~/.config/diary)
// macOS:   ~/Library/Application Support/diary
// Windows: %APPDATA%/diary
func DefaultConfigDir() (string, error) {
	if runtime.GOOS == "linux" {
		if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
			return filepath.Join(xdg, appName), nil
		}
		home, err := platformDir.homeDir()
		if err != nil {
			return "", err
		}
		return filepath.Join(home, ".config", appName), nil
	}
	dir, err := platformDir.userConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, appName), nil
}

// ResolveConfigDir returns the configuration directory following the precedence
// chain: flag > DIARY_CONFIG_DIR env > DefaultConfigDir().
func ResolveConfigDir(flag string) (string, error) {
	if flag != "" {
		return filepath.Abs(flag)
	}
	if env := os.Getenv(EnvConfigDir); env != "" {
		return filepath.Abs(env)
	}
	return DefaultConfigDir()
}

// ResolveDataDir returns the directory holding the diary file following the
// precedence chain: flag > configYAMLValue > DIARY_DATA_DIR env > the
// current working directory.
func ResolveDataDir(flag, configYAMLValue string) (string, error) {
	if flag != "" {
		return filepath.Abs(flag)
	}
	if configYAMLValue != "" {
		return filepath.Abs(configYAMLValue)
	}
	if env := os.Getenv(EnvDataDir); env != "" {
		return filepath.Abs(env)
	}
	return platformDir.getwd()
}

// ResolveDataFile places file inside dataDir unless file is already absolute.
func ResolveDataFile(dataDir, file string) string {
	if filepath.IsAbs(file) {
		return file
	}
	return filepath.Join(dataDir, file)
}
