package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/extconf/extconf/packages/core/config"
	"github.com/extconf/extconf/packages/core/document"
	"github.com/extconf/extconf/packages/core/merge"
	"github.com/extconf/extconf/packages/core/source"
	"github.com/extconf/extconf/packages/output"
	"github.com/extconf/extconf/packages/store"
	"github.com/extconf/extconf/packages/template"
)

var applyCmd = &cobra.Command{
	Use:   "apply [file ...]",
	Short: "Merge config files and environment variables into the store",
	Long: `Merge configuration from YAML/JSON files and CONFIG_* environment
variables into the configuration store.

Files are applied in argument order; within each file, top-level sections
apply in alphanumeric order. Environment variables are applied after all
files, so they always win. Sections ending in _set overwrite keys, sections
ending in _append extend sequence or mapping values.

Examples:
  extconf apply --store sqlite:config.db server.yml
  extconf apply --store config.db --glob 'conf.d/*.yml'
  extconf apply --store config.db --fromenv
  extconf apply --store config.db --reset base.yml --fromenv
  extconf apply --dry-run --output json site.yml.j2`,
	RunE: applyCommand,
}

const (
	// WatchDebounceDelay is the debounce delay for file watch events
	WatchDebounceDelay = 300 * time.Millisecond
)

var (
	resetFlag     bool
	globFlag      bool
	fromEnvFlag   bool
	envPrefixFlag string
	storeFlag     string
	defaultsFlag  string
	settingsFlag  string
	dryRunFlag    bool
	watchFlag     bool
	verboseFlag   int // 0=warn, 1=-v info, 2=-vv debug, 3=-vvv trace
	noColorFlag   bool
	outputFlag    string
)

func init() {
	applyCmd.Flags().BoolVar(&resetFlag, "reset", false, "Delete existing configuration before applying")
	applyCmd.Flags().BoolVar(&globFlag, "glob", false, "Expand file arguments as glob patterns (matches sorted)")
	applyCmd.Flags().BoolVar(&fromEnvFlag, "fromenv", false, "Also apply prefixed environment variables, after all files")
	applyCmd.Flags().StringVar(&envPrefixFlag, "env-prefix", "", "Environment variable prefix (default CONFIG_)")
	applyCmd.Flags().StringVar(&storeFlag, "store", "", "Store DSN (memory:, sqlite:/path, or a bare path)")
	applyCmd.Flags().StringVar(&defaultsFlag, "defaults", "", "YAML/JSON file of fallback values for append targets")
	applyCmd.Flags().StringVar(&settingsFlag, "config", "", "Settings file (default: search for .extconfrc)")
	applyCmd.Flags().BoolVar(&dryRunFlag, "dry-run", false, "Compute the write set but do not touch the store")
	applyCmd.Flags().BoolVarP(&watchFlag, "watch", "w", false, "Watch files for changes and re-apply")
	applyCmd.Flags().CountVarP(&verboseFlag, "verbose", "v", "Increase verbosity (can be used multiple times)")
	applyCmd.Flags().BoolVar(&noColorFlag, "no-color", false, "Disable colored output")
	applyCmd.Flags().StringVarP(&outputFlag, "output", "o", "console", "Output format: console, json")
}

func applyCommand(cmd *cobra.Command, args []string) error {
	settings, err := resolveSettings(cmd)
	if err != nil {
		return err
	}

	if len(args) == 0 && !fromEnvFlag && !resetFlag {
		return fmt.Errorf("nothing to do: no files given and neither --fromenv nor --reset set")
	}

	log := newLogger(verboseFlag)

	files, err := source.ExpandGlobs(args, globFlag)
	if err != nil {
		return err
	}

	st, err := openStore(settings)
	if err != nil {
		return err
	}
	defer st.Close()

	loader := source.New(
		source.WithRenderer(template.NewJinja()),
		source.WithLogger(log),
	)

	mergeOpts := []merge.Option{
		merge.WithLogger(log),
		merge.WithDryRun(dryRunFlag),
	}
	if settings.Defaults != "" {
		defaults, err := store.LoadDefaults(settings.Defaults)
		if err != nil {
			return err
		}
		mergeOpts = append(mergeOpts, merge.WithDefaults(defaults))
	}
	merger := merge.New(st, mergeOpts...)

	formatter := newFormatter()

	runOnce := func() error {
		start := time.Now()
		docs := make([]*document.Document, 0, len(files)+1)
		for _, file := range files {
			doc, err := loader.LoadFile(file)
			if err != nil {
				return err
			}
			docs = append(docs, doc)
		}
		if fromEnvFlag {
			docs = append(docs, loader.LoadEnv(os.Environ(), settings.EnvPrefix))
		}

		res, err := merger.Merge(docs, resetFlag)
		if err != nil {
			return err
		}
		formatter.FormatResult(res, time.Since(start), dryRunFlag)
		return nil
	}

	if err := runOnce(); err != nil {
		return err
	}

	if !watchFlag {
		return nil
	}
	return watchAndReapply(cmd, files, runOnce)
}

// resolveSettings layers flags over EXTCONF_* variables over the rc file
// over built-in defaults.
func resolveSettings(cmd *cobra.Command) (*config.Settings, error) {
	flagLayer := &config.Settings{
		Store:     storeFlag,
		EnvPrefix: envPrefixFlag,
		Defaults:  defaultsFlag,
	}
	if cmd.Flags().Changed("no-color") {
		flagLayer.NoColor = &noColorFlag
	}

	envLayer, err := config.FromEnv()
	if err != nil {
		return nil, err
	}
	fileLayer, err := config.Load(settingsFlag)
	if err != nil {
		return nil, err
	}
	settings, err := config.Resolve(flagLayer, envLayer, fileLayer, config.DefaultSettings())
	if err != nil {
		return nil, err
	}
	if settings.GetNoColor() {
		noColorFlag = true
	}
	return settings, nil
}

func openStore(settings *config.Settings) (store.Store, error) {
	if settings.Store == "" {
		if dryRunFlag {
			return store.NewMemory(), nil
		}
		return nil, fmt.Errorf("no store configured: pass --store or set EXTCONF_STORE")
	}
	return store.Open(settings.Store)
}

func newFormatter() resultFormatter {
	switch strings.ToLower(outputFlag) {
	case "json":
		return output.NewJSONFormatter()
	default:
		return output.NewConsoleFormatter(
			output.WithVerbose(verboseFlag > 0),
			output.WithNoColor(noColorFlag),
		)
	}
}

type resultFormatter interface {
	FormatResult(res *merge.Result, elapsed time.Duration, dryRun bool)
}

func newLogger(verbose int) zerolog.Logger {
	level := zerolog.WarnLevel
	switch {
	case verbose >= 3:
		level = zerolog.TraceLevel
	case verbose == 2:
		level = zerolog.DebugLevel
	case verbose == 1:
		level = zerolog.InfoLevel
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		Level(level).
		With().
		Timestamp().
		Str("run_id", uuid.NewString()).
		Logger()
}

// watchAndReapply re-runs the merge whenever one of the input files is
// written. Events are debounced so editors that write in bursts trigger a
// single re-apply.
func watchAndReapply(cmd *cobra.Command, files []string, runOnce func() error) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create file watcher: %w", err)
	}
	defer watcher.Close()

	watched := make(map[string]bool)
	for _, file := range files {
		watched[filepath.Clean(file)] = true
		dir := filepath.Dir(file)
		if err := watcher.Add(dir); err != nil {
			return fmt.Errorf("failed to watch %s: %w", dir, err)
		}
	}

	fmt.Fprintf(cmd.OutOrStdout(), "\nWatching for changes... (press Ctrl+C to stop)\n\n")

	var debounceTimer *time.Timer
	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Has(fsnotify.Write) && watched[filepath.Clean(event.Name)] {
				if debounceTimer != nil {
					debounceTimer.Stop()
				}
				debounceTimer = time.AfterFunc(WatchDebounceDelay, func() {
					fmt.Fprintf(cmd.OutOrStdout(), "\nFile changed: %s\nRe-applying...\n\n", event.Name)
					if err := runOnce(); err != nil {
						fmt.Fprintf(cmd.OutOrStderr(), "error: %v\n", err)
					}
				})
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			fmt.Fprintf(cmd.OutOrStderr(), "watcher error: %v\n", err)
		}
	}
}
