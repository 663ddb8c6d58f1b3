package types

import "errors"

// Config holds the settings the CLI resolves from flags, config.yaml and
// the environment before opening a diary.
type Config struct {
	DataFile     string `json:"data_file" yaml:"data_file"`
	Language     string `json:"language" yaml:"language"`
	Translations string `json:"translations" yaml:"translations"`
	InitialSize  int    `json:"initial_size" yaml:"initial_size"`
	FragmentSize int    `json:"fragment_size" yaml:"fragment_size"`
	LogLevel     string `json:"log_level" yaml:"log_level"`
}

// Supported interface languages. LanguageAuto picks one from $LANG.
const (
	LanguageAuto    = "auto"
	LanguageEnglish = "en"
	LanguageCzech   = "cs"
)

// DefaultDataFile is the diary file name used when none is configured.
const DefaultDataFile = "diary.json"

// Config validation errors.
var (
	ErrDataFileEmpty   = errors.New("data file must not be empty")
	ErrLanguageUnknown = errors.New("unknown language")
	ErrSizeInvalid     = errors.New("buffer size must not be negative")
	ErrLogLevelUnknown = errors.New("unknown log level")
)

// knownLanguages lists the languages that Validate accepts.
var knownLanguages = map[string]bool{
	"":              true,
	LanguageAuto:    true,
	LanguageEnglish: true,
	LanguageCzech:   true,
}

var knownLogLevels = map[string]bool{
	"":      true,
	"debug": true,
	"info":  true,
	"warn":  true,
	"error": true,
}

// Validate checks that the Config is well-formed. It returns a sentinel error
// from this package on failure.
func (c Config) Validate() error {
	if c.DataFile == "" {
		return ErrDataFileEmpty
	}
	if !knownLanguages[c.Language] {
		return ErrLanguageUnknown
	}
	if c.InitialSize < 0 || c.FragmentSize < 0 {
		return ErrSizeInvalid
	}
	if !knownLogLevels[c.LogLevel] {
		return ErrLogLevelUnknown
	}
	return nil
}
