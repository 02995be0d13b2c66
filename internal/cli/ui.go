package cli

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/matzehuels/wordcloud/pkg/errors"
	"github.com/matzehuels/wordcloud/pkg/freq"
	"github.com/matzehuels/wordcloud/pkg/pipeline"
)

// stdout receives all user-facing output. Logs go to stderr.
var stdout io.Writer = os.Stdout

// =============================================================================
// Color Palette
// =============================================================================

var (
	colorCyan   = lipgloss.Color("36")  // Teal - primary actions
	colorGreen  = lipgloss.Color("35")  // Green - success
	colorYellow = lipgloss.Color("220") // Amber - warnings
	colorRed    = lipgloss.Color("167") // Soft red - errors
	colorBlue   = lipgloss.Color("75")  // Light blue - commands
	colorWhite  = lipgloss.Color("255") // Bright white - values
	colorGray   = lipgloss.Color("245") // Gray - secondary text
	colorDim    = lipgloss.Color("240") // Dim gray - muted text
)

// =============================================================================
// Public Styles
// =============================================================================

var (
	// StyleTitle for main headings.
	StyleTitle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)

	// StyleDim for secondary/muted text.
	StyleDim = lipgloss.NewStyle().Foreground(colorDim)

	// StyleValue for data values.
	StyleValue = lipgloss.NewStyle().Foreground(colorWhite)

	// StyleNumber for numeric values.
	StyleNumber = lipgloss.NewStyle().Foreground(colorCyan)

	// StyleWarning for warning messages.
	StyleWarning = lipgloss.NewStyle().Foreground(colorYellow)
)

// =============================================================================
// Internal Styles
// =============================================================================

var (
	styleIconSuccess = lipgloss.NewStyle().Foreground(colorGreen)
	styleIconError   = lipgloss.NewStyle().Foreground(colorRed)
	styleIconWarning = lipgloss.NewStyle().Foreground(colorYellow)
	styleIconInfo    = lipgloss.NewStyle().Foreground(colorGray)
	styleIconSpinner = lipgloss.NewStyle().Foreground(colorCyan)

	styleCached   = lipgloss.NewStyle().Foreground(colorGreen)
	styleComputed = lipgloss.NewStyle().Foreground(colorGray)

	styleCommand = lipgloss.NewStyle().Foreground(colorBlue)
	styleHeader  = lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	styleBar     = lipgloss.NewStyle().Foreground(colorCyan)
)

// =============================================================================
// Icons
// =============================================================================

const (
	iconSuccess = "✓"
	iconError   = "✗"
	iconWarning = "!"
	iconInfo    = "›"
	iconArrow   = "→"
	iconCached  = "cached"
	iconFresh   = "fresh"
)

// =============================================================================
// Status Output
// =============================================================================

func printSuccess(format string, args ...any) {
	fmt.Fprintln(stdout, styleIconSuccess.Render(iconSuccess)+" "+fmt.Sprintf(format, args...))
}

func printError(format string, args ...any) {
	fmt.Fprintln(stdout, styleIconError.Render(iconError)+" "+fmt.Sprintf(format, args...))
}

func printWarning(format string, args ...any) {
	fmt.Fprintln(stdout, styleIconWarning.Render(iconWarning)+" "+StyleWarning.Render(fmt.Sprintf(format, args...)))
}

func printInfo(format string, args ...any) {
	fmt.Fprintln(stdout, styleIconInfo.Render(iconInfo)+" "+fmt.Sprintf(format, args...))
}

// printDetail prints an indented, dimmed line.
func printDetail(format string, args ...any) {
	fmt.Fprintln(stdout, "  "+StyleDim.Render(fmt.Sprintf(format, args...)))
}

// printFile prints a file output line.
func printFile(path string) {
	fmt.Fprintln(stdout, "  "+StyleDim.Render(iconArrow)+" "+StyleValue.Render(path))
}

// printNextStep prints a suggested next command.
func printNextStep(description, cmd string) {
	fmt.Fprintln(stdout, StyleDim.Render(description+":")+" "+styleCommand.Render(cmd))
}

func printNewline() {
	fmt.Fprintln(stdout)
}

// =============================================================================
// Run Summaries
// =============================================================================

// statsLine renders the one-line summary of a run.
func statsLine(res *pipeline.Result) string {
	parts := []string{
		fmt.Sprintf("%dx%d", res.Width, res.Height),
		fmt.Sprintf("%d terms", res.Stats.TermCount),
		fmt.Sprintf("%d placed", res.Stats.Placed),
	}
	if res.Stats.Skipped > 0 {
		parts = append(parts, fmt.Sprintf("%d skipped", res.Stats.Skipped))
	}
	status := styleComputed.Render(iconFresh)
	if res.CacheInfo.RenderHit {
		status = styleCached.Render(iconCached)
	}

	line := "  "
	for i, part := range parts {
		if i > 0 {
			line += StyleDim.Render(" · ")
		}
		line += StyleDim.Render(part)
	}
	return line + StyleDim.Render(" · ") + status
}

// printWarnings lists the non-fatal problems of a run.
func printWarnings(ws []errors.Warning) {
	for _, w := range ws {
		printWarning("%s", w.Message)
	}
}

// maxSkippedShown bounds the skipped terms listed after a run.
const maxSkippedShown = 10

func printSkipped(res *pipeline.Result) {
	if res.Layout == nil || len(res.Layout.Skipped) == 0 {
		return
	}
	terms := make([]string, 0, maxSkippedShown)
	for i, s := range res.Layout.Skipped {
		if i == maxSkippedShown {
			terms = append(terms, fmt.Sprintf("and %d more", len(res.Layout.Skipped)-i))
			break
		}
		terms = append(terms, s.Term)
	}
	printDetail("did not fit: %s", strings.Join(terms, ", "))
}

// =============================================================================
// Term Table
// =============================================================================

// barWidth is the width of the longest frequency bar.
const barWidth = 24

// share formats n as a percentage of total.
func share(n, total int) string {
	if total == 0 {
		return "-"
	}
	return fmt.Sprintf("%.1f%%", 100*float64(n)/float64(total))
}

// termTable renders the top rows of a frequency table with relative bars.
func termTable(t freq.Table, rows int) string {
	if rows <= 0 || rows > len(t) {
		rows = len(t)
	}
	maxCount, total := t.Max(), t.Total()

	data := make([][]string, 0, rows)
	for i, e := range t[:rows] {
		n := 1
		if maxCount > 0 {
			n = max(1, e.Count*barWidth/maxCount)
		}
		data = append(data, []string{
			strconv.Itoa(i + 1),
			e.Term,
			strconv.Itoa(e.Count),
			share(e.Count, total),
			styleBar.Render(strings.Repeat("█", n)),
		})
	}

	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("#", "Term", "Count", "Share", "").
		Rows(data...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return styleHeader.Padding(0, 1)
			}
			s := lipgloss.NewStyle().Padding(0, 1)
			if col == 0 || col == 2 || col == 3 {
				s = s.Foreground(colorCyan).Align(lipgloss.Right)
			}
			return s
		}).
		String()
}
