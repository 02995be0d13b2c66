package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/matzehuels/wordcloud/pkg/config"
	"github.com/matzehuels/wordcloud/pkg/observability"
	"github.com/matzehuels/wordcloud/pkg/pipeline"
)

// watchCommand creates the interactive regenerate-on-keypress command.
func (c *CLI) watchCommand() *cobra.Command {
	var (
		output  string
		noCache bool
	)
	var settings *settingsFlags

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Regenerate the word cloud on keypress",
		Long: `Regenerate the word cloud on keypress.

Generates once, then waits: Home (or r) re-reads the text file and
regenerates, Esc (or q) quits. The canvas takes the [window] size from the
settings unless --width or --height is given. Each run overwrites the
output PNG.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.settings(cmd.Flags(), settings)
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("width") && cfg.Window.Width > 0 {
				cfg.WordCloud.Width = cfg.Window.Width
			}
			if !cmd.Flags().Changed("height") && cfg.Window.Height > 0 {
				cfg.WordCloud.Height = cfg.Window.Height
			}
			return c.runWatch(runContext(cmd), cfg, output, noCache)
		},
	}

	settings = addSettingsFlags(cmd.Flags())
	cmd.Flags().StringVarP(&output, "output", "o", defaultOutput+".png", "output PNG file")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")

	return cmd
}

func (c *CLI) runWatch(ctx context.Context, cfg *config.Config, output string, noCache bool) error {
	runner, err := c.newRunner(noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()
	// The terminal belongs to the view; logs go to the log file only.
	runner.Logger = c.quietLogger()
	if runner.Logger.GetLevel() <= log.DebugLevel {
		observability.Register(observability.NewLogHooks(runner.Logger))
	}

	opts := pipeline.FromConfig(cfg)
	opts.Formats = []string{"png"}
	opts.Logger = runner.Logger
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return err
	}

	m := newWatchModel(ctx, runner, opts, output, cfg.Window.Title)
	_, err = tea.NewProgram(m, tea.WithContext(ctx)).Run()
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return ctx.Err()
	}
	return err
}

// =============================================================================
// watchModel - Interactive regeneration
// =============================================================================

// generator runs one pipeline pass.
type generator interface {
	Execute(ctx context.Context, opts pipeline.Options) (*pipeline.Result, error)
}

// generatedMsg reports a finished run.
type generatedMsg struct {
	result   *pipeline.Result
	path     string
	err      error
	duration time.Duration
}

type watchModel struct {
	ctx    context.Context
	gen    generator
	opts   pipeline.Options
	output string
	title  string

	generating bool
	runs       int
	last       generatedMsg
	width      int
}

func newWatchModel(ctx context.Context, gen generator, opts pipeline.Options, output, title string) watchModel {
	if title == "" {
		title = "WordCloud Generator"
	}
	return watchModel{ctx: ctx, gen: gen, opts: opts, output: output, title: title, generating: true}
}

func (m watchModel) Init() tea.Cmd {
	return m.generate()
}

// generate runs the pipeline off the UI loop and writes the PNG.
func (m watchModel) generate() tea.Cmd {
	ctx, gen, opts, output := m.ctx, m.gen, m.opts, m.output
	return func() tea.Msg {
		start := time.Now()
		res, err := gen.Execute(ctx, opts)
		msg := generatedMsg{result: res, err: err, duration: time.Since(start)}
		if err == nil {
			paths, werr := writeArtifacts(res.Artifacts, opts.Formats, output)
			msg.err = werr
			if len(paths) > 0 {
				msg.path = paths[0]
			}
		}
		return msg
	}
}

func (m watchModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "esc", "q", "ctrl+c":
			return m, tea.Quit
		case "home", "r":
			if m.generating {
				return m, nil
			}
			m.generating = true
			return m, m.generate()
		}
	case generatedMsg:
		m.generating = false
		m.runs++
		m.last = msg
	case tea.WindowSizeMsg:
		m.width = msg.Width
	}
	return m, nil
}

var watchFrame = lipgloss.NewStyle().
	Border(lipgloss.RoundedBorder()).
	BorderForeground(colorDim).
	Padding(0, 1)

func (m watchModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render(m.title))
	b.WriteString("\n")
	b.WriteString(StyleDim.Render(fmt.Sprintf("%dx%d canvas · %s", m.opts.Width, m.opts.Height, m.opts.InputPath)))
	b.WriteString("\n\n")

	switch {
	case m.generating:
		b.WriteString(styleIconSpinner.Render(iconInfo) + " " + StyleDim.Render("Generating..."))
	case m.last.err != nil:
		b.WriteString(styleIconError.Render(iconError) + " " + m.last.err.Error())
	case m.last.result != nil:
		res := m.last.result
		b.WriteString(styleIconSuccess.Render(iconSuccess) + " " +
			fmt.Sprintf("Run %d written to %s (%s)", m.runs, StyleValue.Render(m.last.path),
				m.last.duration.Round(time.Millisecond)))
		b.WriteString("\n")
		b.WriteString(statsLine(res))
		for _, w := range res.Warnings {
			b.WriteString("\n" + styleIconWarning.Render(iconWarning) + " " + StyleWarning.Render(w.Message))
		}
	}

	b.WriteString("\n\n")
	b.WriteString(StyleDim.Render("home/r regenerate  esc/q quit"))

	frame := watchFrame
	if m.width > 4 {
		frame = frame.MaxWidth(m.width)
	}
	return frame.Render(b.String()) + "\n"
}
