// Root command for the diary CLI.
package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/diary/internal/i18n"
	"github.com/mesh-intelligence/diary/internal/paths"
	"github.com/mesh-intelligence/diary/internal/store"
	"github.com/mesh-intelligence/diary/pkg/types"
)

// Exit codes.
const (
	exitSuccess   = 0
	exitUserError = 1
	exitSysError  = 2
)

// exitError carries the process exit code for a failed command.
type exitError struct {
	code int
	err  error
}

func (e *exitError) Error() string { return e.err.Error() }
func (e *exitError) Unwrap() error { return e.err }

func userError(format string, args ...any) error {
	return &exitError{code: exitUserError, err: fmt.Errorf(format, args...)}
}

func sysError(format string, args ...any) error {
	return &exitError{code: exitSysError, err: fmt.Errorf(format, args...)}
}

// rootFlags holds global flag values accessible to all subcommands.
type rootFlags struct {
	configDir string
	dataDir   string
	file      string
	lang      string
	jsonMode  bool
	verbose   bool
}

// app is the state shared by every subcommand of one invocation.
type app struct {
	flags rootFlags

	configDir     string
	configDataDir string
	cfg           types.Config
	log           *slog.Logger
}

// newRootCmd creates the top-level "diary" command with global flags and all
// subcommands registered. Running it without a subcommand starts the
// interactive shell.
func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:     "diary",
		Short:   "A small console diary",
		Long:    "Diary keeps dated notes in a single JSON file and lets you browse,\nadd and delete them interactively or from scripts.",
		Version: types.Version,
		// Do not print usage on errors returned by subcommands.
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// Skip setup for version command
			if cmd.Name() == "version" {
				return nil
			}
			return a.setup(cmd)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runShell(cmd, false)
		},
	}

	root.PersistentFlags().StringVar(&a.flags.configDir, "config-dir", "", "configuration directory (default: platform config dir/diary)")
	root.PersistentFlags().StringVar(&a.flags.dataDir, "data-dir", "", "directory holding the diary file (default: current directory)")
	root.PersistentFlags().StringVar(&a.flags.file, "file", "", "diary file name or path (default: diary.json)")
	root.PersistentFlags().StringVar(&a.flags.lang, "lang", "", "interface language: auto, en or cs")
	root.PersistentFlags().BoolVar(&a.flags.jsonMode, "json", false, "output as JSON")
	root.PersistentFlags().BoolVarP(&a.flags.verbose, "verbose", "v", false, "log debug messages to stderr")

	root.AddCommand(
		newShellCmd(a),
		newAddCmd(a),
		newListCmd(a),
		newShowCmd(a),
		newDeleteCmd(a),
		newSearchCmd(a),
		newBetweenCmd(a),
		newBackupCmd(a),
		newRestoreCmd(a),
		newInitCmd(a),
		newVersionCmd(),
	)
	return root
}

// setup resolves the config directory, loads config.yaml and applies flag
// overrides, then builds the logger.
func (a *app) setup(cmd *cobra.Command) error {
	configDir, err := paths.ResolveConfigDir(a.flags.configDir)
	if err != nil {
		return sysError("resolve config dir: %w", err)
	}

	v, err := loadConfig(configDir)
	if err != nil {
		return sysError("%w", err)
	}

	a.configDir = configDir
	a.configDataDir = v.GetString(cfgKeyDataDir)
	a.cfg = configFromViper(v)
	if a.flags.file != "" {
		a.cfg.DataFile = a.flags.file
	}
	if a.flags.lang != "" {
		a.cfg.Language = a.flags.lang
	}
	if a.flags.verbose {
		a.cfg.LogLevel = "debug"
	}

	if err := a.cfg.Validate(); err != nil {
		return userError("invalid configuration: %w", err)
	}

	a.log = newLogger(cmd, a.cfg.LogLevel)
	a.log.Debug("configuration loaded", "config_dir", configDir, "data_file", a.cfg.DataFile, "language", a.cfg.Language)
	return nil
}

// newLogger returns a text logger on the command's stderr at the named level.
func newLogger(cmd *cobra.Command, level string) *slog.Logger {
	var lvl slog.Level
	switch strings.ToLower(level) {
	case "debug":
		lvl = slog.LevelDebug
	case "info":
		lvl = slog.LevelInfo
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelWarn
	}
	return slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: lvl}))
}

// dataFilePath returns the diary file path following the precedence
// --data-dir flag > config.yaml data_dir > DIARY_DATA_DIR env > current
// directory, joined with the configured file name.
func (a *app) dataFilePath() (string, error) {
	dataDir, err := paths.ResolveDataDir(a.flags.dataDir, a.configDataDir)
	if err != nil {
		return "", err
	}
	return paths.ResolveDataFile(dataDir, a.cfg.DataFile), nil
}

// openDiary opens the configured diary file. The caller must Close it.
func (a *app) openDiary() (*store.Diary, error) {
	path, err := a.dataFilePath()
	if err != nil {
		return nil, sysError("resolve data dir: %w", err)
	}

	d, err := store.Open(path, store.Options{
		InitialSize:  a.cfg.InitialSize,
		FragmentSize: a.cfg.FragmentSize,
		Logger:       a.log,
	})
	if err != nil {
		return nil, classify("open diary", err)
	}
	return d, nil
}

// catalog returns the string catalog for the configured language.
func (a *app) catalog() (*i18n.Catalog, error) {
	lang := a.cfg.Language
	if lang == "" || lang == types.LanguageAuto {
		lang = i18n.DetectLanguage(os.Getenv("LANG"))
	}
	if a.cfg.Translations != "" {
		cat, err := i18n.LoadFile(a.cfg.Translations, lang)
		if err != nil {
			return nil, userError("load translations: %w", err)
		}
		return cat, nil
	}
	cat, err := i18n.Default(lang)
	if err != nil {
		return nil, userError("load strings: %w", err)
	}
	return cat, nil
}

// classify wraps err with the exit code its kind calls for. Bad input and
// missing records are user errors; everything else is a system error.
func classify(op string, err error) error {
	switch {
	case errors.Is(err, types.ErrInvalidDate),
		errors.Is(err, store.ErrNoRecord),
		errors.Is(err, store.ErrUnsupportedNote),
		errors.Is(err, store.ErrDecompress),
		errors.Is(err, os.ErrNotExist):
		return userError("%s: %w", op, err)
	default:
		return sysError("%s: %w", op, err)
	}
}
