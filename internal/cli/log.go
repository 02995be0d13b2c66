// Package cli implements the wordcloud command-line interface.
//
// The CLI turns a text file into a word-cloud image, prints frequency
// tables, regenerates interactively and serves clouds over HTTP. It is
// built with cobra and logs through charmbracelet/log.
//
// # Commands
//
//   - generate: render the configured text to png, jpeg, svg or json
//   - tokens: print the ranked term table without rendering
//   - watch: regenerate on keypress (Home or r), quit with Esc or q
//   - serve: run the HTTP service
//   - cache: manage the local artifact cache
//
// # Configuration
//
// Settings come from wordcloud.toml (or a JSON file via --config). A
// missing file is not an error: the built-in defaults apply. Flags given on
// the command line override the file.
//
// # Logging
//
// Logs go to stderr at the configured log_level; --verbose (-v) switches to
// debug. When log_file is set, output is also written to a size-rotated
// file.
package cli

import (
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/matzehuels/wordcloud/pkg/config"
)

// newLogger creates a new logger with timestamp formatting.
// Timestamps are formatted as "HH:MM:SS.ms" (e.g., "14:32:01.45").
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

// logOutput returns the log destination for cfg: stderr alone, or stderr
// tee'd with a rotating log file. The file is nil when log_file is unset.
func logOutput(stderr io.Writer, cfg *config.Config) (io.Writer, *lumberjack.Logger, error) {
	if cfg.LogFile == "" {
		return stderr, nil, nil
	}
	if dir := filepath.Dir(cfg.LogFile); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return stderr, nil, err
		}
	}
	file := &lumberjack.Logger{
		Filename:   cfg.LogFile,
		MaxSize:    cfg.MaxLogSizeMB,
		MaxBackups: cfg.BackupLogCount,
	}
	return io.MultiWriter(stderr, file), file, nil
}

// logLevel maps a config level name, with verbose forcing debug.
// "warning" is accepted as an alias of "warn".
func logLevel(name string, verbose bool) log.Level {
	if verbose {
		return log.DebugLevel
	}
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "warning" {
		name = "warn"
	}
	level, err := log.ParseLevel(name)
	if err != nil {
		return log.InfoLevel
	}
	return level
}

// progress tracks the start time of an operation and logs completion with elapsed duration.
type progress struct {
	logger *log.Logger
	start  time.Time
}

func newProgress(l *log.Logger) *progress {
	return &progress{logger: l, start: time.Now()}
}

// done logs msg along with the elapsed time since progress was created.
// Example output: "Generated word cloud (1.234s)"
func (p *progress) done(msg string) {
	p.logger.Infof("%s (%s)", msg, time.Since(p.start).Round(time.Millisecond))
}
