package cmd

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/zjrosen/modal/internal/app"
	"github.com/zjrosen/modal/internal/config"
	"github.com/zjrosen/modal/internal/filestore"
	"github.com/zjrosen/modal/internal/infrastructure/sqlite"
	"github.com/zjrosen/modal/internal/log"
	"github.com/zjrosen/modal/internal/paths"
	"github.com/zjrosen/modal/internal/positions"
	"github.com/zjrosen/modal/internal/styles"
	"github.com/zjrosen/modal/internal/tracing"
	"github.com/zjrosen/modal/internal/watcher"
)

func init() {
	// Force lipgloss/termenv to query the terminal background color before
	// the terminal goes raw, so the OSC 11 reply cannot show up as input.
	//
	// See: https://github.com/charmbracelet/bubbletea/issues/1036
	_ = lipgloss.HasDarkBackground()
}

var (
	version   = "dev"
	cfgFile   string
	debugFlag bool
	logFile   string
	cfg       config.Config
	configErr error
)

var rootCmd = &cobra.Command{
	Use:   "modal <file>",
	Short: "A small modal text editor for the terminal",
	Long: `A small modal text editor for the terminal.

Normal mode moves around and makes single-key edits, insert mode types text
and command mode (entered with ':') runs :w, :q, :wq, :e, :e! and :diff.

Examples:
  modal notes.txt
  modal --debug --log-file /tmp/modal.log notes.txt
  MODAL_WATCH_ENABLED=false modal notes.txt`,
	Version:      version,
	Args:         cobra.ExactArgs(1),
	SilenceUsage: true,
	RunE:         runEditor,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "",
		"config file (default: ~/.config/modal/config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&debugFlag, "debug", false,
		"write a debug log (also enabled by MODAL_DEBUG=1)")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "modal-debug.log",
		"debug log location")
	rootCmd.Flags().Bool("no-watch", false,
		"do not report changes made to the file by other programs")
}

func initConfig() {
	cfg, configErr = loadConfig(viper.GetViper(), cfgFile)
}

// setDefaults registers every config key with its default value. Keys only
// known through a default are still picked up from the environment.
func setDefaults(v *viper.Viper) {
	defaults := config.Defaults()
	v.SetDefault("theme.normal", defaults.Theme.Normal)
	v.SetDefault("theme.insert", defaults.Theme.Insert)
	v.SetDefault("theme.command", defaults.Theme.Command)
	v.SetDefault("theme.foreground", defaults.Theme.Foreground)
	v.SetDefault("editor.remember_cursor", defaults.Editor.RememberCursor)
	v.SetDefault("watch.enabled", defaults.Watch.Enabled)
	v.SetDefault("watch.debounce", defaults.Watch.Debounce)
	v.SetDefault("state.path", defaults.State.Path)
	v.SetDefault("tracing.enabled", defaults.Tracing.Enabled)
	v.SetDefault("tracing.exporter", defaults.Tracing.Exporter)
	v.SetDefault("tracing.file_path", defaults.Tracing.FilePath)
	v.SetDefault("tracing.otlp_endpoint", defaults.Tracing.OTLPEndpoint)
	v.SetDefault("tracing.sample_rate", defaults.Tracing.SampleRate)
}

// loadConfig reads the config file at path into v, layered over the defaults
// and MODAL_* environment variables. With an empty path the user config is
// used if it exists; a path given explicitly must exist.
func loadConfig(v *viper.Viper, path string) (config.Config, error) {
	if path == "" {
		return readConfig(v, paths.DefaultConfigPath(), false)
	}
	return readConfig(v, path, true)
}

func readConfig(v *viper.Viper, path string, required bool) (config.Config, error) {
	setDefaults(v)
	v.SetEnvPrefix("MODAL")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			if required || !errors.Is(err, fs.ErrNotExist) {
				return config.Config{}, fmt.Errorf("reading config %s: %w", path, err)
			}
		}
	}

	var c config.Config
	if err := v.Unmarshal(&c); err != nil {
		return config.Config{}, fmt.Errorf("decoding config: %w", err)
	}
	if err := config.ExpandPaths(&c); err != nil {
		return config.Config{}, err
	}
	return c, nil
}

func runEditor(cmd *cobra.Command, args []string) error {
	if configErr != nil {
		return configErr
	}
	if noWatch, _ := cmd.Flags().GetBool("no-watch"); noWatch {
		cfg.Watch.Enabled = false
	}
	if err := config.Validate(cfg); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	if err := styles.ApplyTheme(cfg.Theme.Styles()); err != nil {
		return fmt.Errorf("applying theme: %w", err)
	}

	if debugFlag || os.Getenv("MODAL_DEBUG") != "" {
		cleanup, err := log.InitWithTeaLog(logFile, "modal")
		if err != nil {
			return fmt.Errorf("initializing logging: %w", err)
		}
		defer cleanup()
	}

	sessionID := uuid.NewString()
	log.Info(log.CatConfig, "modal starting", "version", version, "session", sessionID, "config", viper.ConfigFileUsed())

	path, err := paths.ResolveFile(args[0])
	if err != nil {
		return err
	}
	store := filestore.New()
	text, message, err := readFile(store, path)
	if err != nil {
		return err
	}

	tcfg := tracing.DefaultConfig()
	tcfg.Enabled = cfg.Tracing.Enabled
	tcfg.Exporter = cfg.Tracing.Exporter
	tcfg.FilePath = cfg.Tracing.FilePath
	tcfg.OTLPEndpoint = cfg.Tracing.OTLPEndpoint
	tcfg.SampleRate = cfg.Tracing.SampleRate
	tcfg.Writer = log.Writer()
	tcfg.SessionID = sessionID
	provider, err := tracing.NewProvider(tcfg)
	if err != nil {
		return fmt.Errorf("initializing tracing: %w", err)
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := provider.Shutdown(ctx); err != nil {
			log.ErrorErr(log.CatTrace, "tracing shutdown failed", err)
		}
	}()

	appCfg := app.Config{
		Path:    path,
		Text:    text,
		Message: message,
		Store:   store,
		Tracer:  provider.Tracer(),
	}

	if cfg.Editor.RememberCursor {
		db, svc, err := openPositions(cfg.State.Path, sessionID)
		if err != nil {
			// The editor works without remembered positions.
			log.Warn(log.CatStore, "position store unavailable", "path", cfg.State.Path, "error", err)
		} else {
			defer func() { _ = db.Close() }()
			appCfg.Positions = svc
		}
	}

	if cfg.Watch.Enabled {
		w, err := startWatcher(path, cfg.Watch.Debounce)
		if err != nil {
			log.Warn(log.CatWatcher, "file watcher unavailable", "path", path, "error", err)
		} else {
			defer func() { _ = w.Stop() }()
			appCfg.Watcher = w
		}
	}

	return app.Run(appCfg, os.Stdin, os.Stdout)
}

// readFile loads the file to edit. A file that does not exist yet opens as an
// empty buffer; any other failure is fatal.
func readFile(store *filestore.Store, path string) (text, message string, err error) {
	text, err = store.Read(path)
	switch {
	case err == nil:
		return text, "", nil
	case errors.Is(err, fs.ErrNotExist):
		return "", fmt.Sprintf("%q [New]", path), nil
	default:
		return "", "", err
	}
}

func openPositions(dbPath, sessionID string) (*sqlite.DB, *positions.Service, error) {
	if dbPath == "" {
		return nil, nil, errors.New("no state path")
	}
	db, err := sqlite.NewDB(dbPath)
	if err != nil {
		return nil, nil, err
	}
	svc := positions.NewService(db.PositionRepository(), sessionID)
	if err := svc.Prune(); err != nil {
		log.Warn(log.CatStore, "pruning positions failed", "error", err)
	}
	return db, svc, nil
}

func startWatcher(path string, debounce time.Duration) (*watcher.Watcher, error) {
	w, err := watcher.New(watcher.Config{Path: path, Debounce: debounce})
	if err != nil {
		return nil, err
	}
	if err := w.Start(); err != nil {
		_ = w.Stop()
		return nil, err
	}
	return w, nil
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

// SetVersion sets the version string (called from main with ldflags)
func SetVersion(v string) {
	version = v
	rootCmd.Version = v
}
