// Config loading for the diary CLI.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/mesh-intelligence/diary/pkg/chain"
	"github.com/mesh-intelligence/diary/pkg/types"
)

const (
	configFileName = "config"
	configFileType = "yaml"
	configFileExt  = "config.yaml"

	envPrefix = "DIARY"

	// Config keys.
	cfgKeyDataDir      = "data_dir"
	cfgKeyDataFile     = "data_file"
	cfgKeyLanguage     = "language"
	cfgKeyTranslations = "translations"
	cfgKeyInitialSize  = "encoder.initial_size"
	cfgKeyFragmentSize = "encoder.fragment_size"
	cfgKeyLogLevel     = "log_level"
)

// defaultConfigYAML is the content written to config.yaml on first run.
const defaultConfigYAML = `# Diary CLI configuration

# Diary file name, relative to data_dir unless absolute.
data_file: diary.json

# Directory holding the diary file (optional; overridable by --data-dir).
# data_dir:

# Interface language: auto, en or cs. "auto" follows $LANG.
language: auto

# Optional YAML file with translated strings, keyed by language.
# translations:

# Buffer sizes used when writing the diary.
encoder:
  initial_size: 2048
  fragment_size: 512

# debug, info, warn or error.
log_level: warn
`

// loadConfig reads config.yaml from the resolved config directory using Viper.
// It creates the config directory and a default config.yaml on first run.
// A missing config.yaml is not an error. DIARY_* environment variables
// override file values.
func loadConfig(configDir string) (*viper.Viper, error) {
	if err := ensureConfigDir(configDir); err != nil {
		return nil, fmt.Errorf("ensure config dir: %w", err)
	}

	if err := ensureDefaultConfigFile(configDir); err != nil {
		return nil, fmt.Errorf("ensure default config: %w", err)
	}

	v := viper.New()
	v.SetDefault(cfgKeyDataFile, types.DefaultDataFile)
	v.SetDefault(cfgKeyLanguage, types.LanguageAuto)
	v.SetDefault(cfgKeyInitialSize, chain.DefaultInitialSize)
	v.SetDefault(cfgKeyFragmentSize, chain.DefaultFragmentSize)
	v.SetDefault(cfgKeyLogLevel, "warn")
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

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

// configFromViper builds a types.Config from loaded settings.
func configFromViper(v *viper.Viper) types.Config {
	return types.Config{
		DataFile:     v.GetString(cfgKeyDataFile),
		Language:     v.GetString(cfgKeyLanguage),
		Translations: v.GetString(cfgKeyTranslations),
		InitialSize:  v.GetInt(cfgKeyInitialSize),
		FragmentSize: v.GetInt(cfgKeyFragmentSize),
		LogLevel:     v.GetString(cfgKeyLogLevel),
	}
}

// ensureConfigDir creates the config directory if it does not exist.
func ensureConfigDir(configDir string) error {
	return os.MkdirAll(configDir, 0o755)
}

// ensureDefaultConfigFile creates a default config.yaml if the file does not
// exist in the config directory.
func ensureDefaultConfigFile(configDir string) error {
	path := filepath.Join(configDir, configFileExt)

	_, err := os.Stat(path)
	if err == nil {
		// File already exists.
		return nil
	}
	if !os.IsNotExist(err) {
		return fmt.Errorf("stat config file: %w", err)
	}

	return os.WriteFile(path, []byte(defaultConfigYAML), 0o644)
}
