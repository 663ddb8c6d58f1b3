// Package i18n maps symbolic keys to localized interface strings.
package i18n

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed strings.yaml
var builtinStrings []byte

// ErrLanguageMissing reports a catalog source without the requested language.
var ErrLanguageMissing = errors.New("language not in catalog")

// Catalog holds the strings of one language. A nil *Catalog is usable and
// returns every key unchanged.
type Catalog struct {
	lang    string
	entries map[string]string
}

// Load parses a YAML document of the form {lang: {key: value}} and returns
// the catalog for lang.
func Load(data []byte, lang string) (*Catalog, error) {
	var doc map[string]map[string]string
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parsing catalog: %w", err)
	}
	entries, ok := doc[lang]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrLanguageMissing, lang)
	}
	return &Catalog{lang: lang, entries: entries}, nil
}

// LoadFile reads a catalog file from disk.
func LoadFile(path, lang string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading catalog %s: %w", path, err)
	}
	return Load(data, lang)
}

// Default returns the built-in catalog for lang.
func Default(lang string) (*Catalog, error) {
	return Load(builtinStrings, lang)
}

// DetectLanguage picks the interface language from a $LANG value: Czech for
// any "cs" locale, English otherwise.
func DetectLanguage(langEnv string) string {
	if strings.HasPrefix(langEnv, "cs") {
		return "cs"
	}
	return "en"
}

// Language returns the catalog's language code.
func (c *Catalog) Language() string {
	if c == nil {
		return ""
	}
	return c.lang
}

// Lookup returns the string for key, or key itself when the catalog is nil
// or has no entry for it.
func (c *Catalog) Lookup(key string) string {
	if c == nil {
		return key
	}
	if v, ok := c.entries[key]; ok {
		return v
	}
	return key
}
