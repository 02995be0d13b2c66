package cli

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/matzehuels/wordcloud/pkg/buildinfo"
	"github.com/matzehuels/wordcloud/pkg/cache"
	"github.com/matzehuels/wordcloud/pkg/config"
	"github.com/matzehuels/wordcloud/pkg/errors"
	"github.com/matzehuels/wordcloud/pkg/observability"
	"github.com/matzehuels/wordcloud/pkg/pipeline"
)

// =============================================================================
// Constants
// =============================================================================

// appName is the application name used for directories and display.
const appName = "wordcloud"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	// Config is loaded before any command runs.
	Config *config.Config

	stderr     io.Writer
	configPath string
	verbose    bool
	logFile    *lumberjack.Logger
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(w, level),
		Config: config.Default(),
		stderr: w,
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// quietLogger returns a logger that writes only to the log file, for
// commands that own the terminal.
func (c *CLI) quietLogger() *log.Logger {
	var w io.Writer = io.Discard
	if c.logFile != nil {
		w = c.logFile
	}
	return newLogger(w, c.Logger.GetLevel())
}

// Close releases the log file, if any.
func (c *CLI) Close() error {
	if c.logFile != nil {
		return c.logFile.Close()
	}
	return nil
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          appName,
		Short:        "Wordcloud turns text into word-cloud images",
		Long:         `Wordcloud tokenizes Japanese or whitespace-separated text, counts its content words and packs them into an image, optionally shaped by a mask.`,
		Version:      buildinfo.Get().Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return c.setup(cmd.Flags().Changed("config"))
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVarP(&c.configPath, "config", "c", config.DefaultPath, "settings file (toml or json)")
	root.PersistentFlags().BoolVarP(&c.verbose, "verbose", "v", false, "enable verbose logging")

	root.AddCommand(c.generateCommand())
	root.AddCommand(c.tokensCommand())
	root.AddCommand(c.watchCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// setup loads the configuration and points the logger at its destination.
// Configuration errors fail the command before anything runs. A missing
// default settings file is expected and only noted at debug level.
func (c *CLI) setup(explicit bool) error {
	cfg, warnings, err := config.Load(c.configPath)
	if err != nil {
		return err
	}
	c.Config = cfg

	out, file, err := logOutput(c.stderr, cfg)
	if err != nil {
		c.Logger.Warn("log file disabled", "path", cfg.LogFile, "error", err)
	}
	c.logFile = file
	c.Logger.SetOutput(out)
	c.SetLogLevel(logLevel(cfg.LogLevel, c.verbose))
	if c.Logger.GetLevel() <= log.DebugLevel {
		observability.Register(observability.NewLogHooks(c.Logger))
	}

	for _, w := range warnings {
		if !explicit && w.Code == errors.ErrCodeFileNotFound {
			c.Logger.Debug(w.Message)
			continue
		}
		c.Logger.Warn(w.Message, "code", w.Code)
	}
	return nil
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates a pipeline runner for CLI use.
func (c *CLI) newRunner(noCache bool) (*pipeline.Runner, error) {
	store, err := newCache(noCache)
	if err != nil {
		return nil, err
	}
	return pipeline.NewRunner(store, versionedKeyer(), c.Logger), nil
}

// versionedKeyer keeps cache entries of different builds apart.
func versionedKeyer() cache.Keyer {
	return cache.NewVersionedKeyer(buildinfo.Get().Version)
}

func newCache(noCache bool) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}
	dir, err := cacheDir()
	if err != nil {
		return cache.NewNullCache(), nil
	}
	return cache.NewFileCache(dir)
}

// runContext returns the command context, never nil.
func runContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

// =============================================================================
// Paths
// =============================================================================

// cacheDir returns the cache directory using XDG standard (~/.cache/wordcloud/).
func cacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}

// =============================================================================
// Options Helpers
// =============================================================================

// parseFormats parses a comma-separated format string into a slice.
func parseFormats(s string) []string {
	if s == "" {
		return []string{string(pipeline.DefaultFormat)}
	}
	var out []string
	for _, f := range strings.Split(s, ",") {
		if f = strings.TrimSpace(f); f != "" {
			out = append(out, f)
		}
	}
	return out
}
