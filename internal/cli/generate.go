package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/wordcloud/pkg/config"
	"github.com/matzehuels/wordcloud/pkg/pipeline"
	"github.com/matzehuels/wordcloud/pkg/render/sink"
)

// defaultOutput is the output base name when --output is not given.
const defaultOutput = "wordcloud"

// generateOpts holds the flags of generate that are not settings.
type generateOpts struct {
	output    string
	formats   string
	noCache   bool
	refresh   bool
	scale     int
	embedFont bool
	quality   int
}

// generateCommand creates the generate command.
func (c *CLI) generateCommand() *cobra.Command {
	opts := generateOpts{scale: 1, quality: sink.DefaultJPEGQuality}
	var settings *settingsFlags

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate a word cloud from a text file",
		Long: `Generate a word cloud from a text file.

The text is normalized, segmented (Japanese morphological analysis by
default), filtered to nouns, verbs and adjectives, counted, and packed on a
spiral from the canvas centre. A mask image restricts where words may go.

Missing text, mask or font files are reported as warnings; the cloud is
still produced. Results are cached locally for faster subsequent runs.`,
		Example: `  wordcloud generate
  wordcloud generate -i speech.txt --segmenter words -f png,svg -o speech
  wordcloud generate --mask heart.png --colormap viridis --background black`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.settings(cmd.Flags(), settings)
			if err != nil {
				return err
			}
			return c.runGenerate(runContext(cmd), cfg, opts)
		},
	}

	settings = addSettingsFlags(cmd.Flags())
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (single format) or base path (default: wordcloud)")
	cmd.Flags().StringVarP(&opts.formats, "format", "f", "", "output format(s): png (default), jpeg, svg, json (comma-separated)")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "ignore cached results")
	cmd.Flags().IntVar(&opts.scale, "scale", opts.scale, "raster supersampling factor")
	cmd.Flags().BoolVar(&opts.embedFont, "embed-font", false, "embed the font in SVG output")
	cmd.Flags().IntVar(&opts.quality, "quality", opts.quality, "JPEG quality (1-100)")

	return cmd
}

// pipelineOptions builds the run options for cfg.
func (c *CLI) pipelineOptions(cfg *config.Config, g generateOpts) pipeline.Options {
	opts := pipeline.FromConfig(cfg)
	opts.Formats = parseFormats(g.formats)
	opts.Scale = g.scale
	opts.EmbedFont = g.embedFont
	opts.JPEGQuality = g.quality
	opts.Refresh = g.refresh
	opts.Logger = c.Logger
	return opts
}

// runGenerate executes the pipeline and writes the artifacts.
func (c *CLI) runGenerate(ctx context.Context, cfg *config.Config, g generateOpts) error {
	opts := c.pipelineOptions(cfg, g)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return err
	}

	runner, err := c.newRunner(g.noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	prog := newProgress(c.Logger)
	spinner := newSpinnerWithContext(ctx, "Generating word cloud...")
	if !c.verbose {
		spinner.Start()
	}

	result, err := runner.Execute(ctx, opts)
	if err != nil {
		spinner.StopWithError("Generation failed")
		return err
	}
	spinner.Stop()
	if ctx.Err() != nil {
		return ctx.Err()
	}
	prog.done("Generated word cloud")

	paths, err := writeArtifacts(result.Artifacts, opts.Formats, g.output)
	if err != nil {
		return err
	}

	printSuccess("Word cloud generated")
	for _, p := range paths {
		printFile(p)
	}
	fmt.Fprintln(stdout, statsLine(result))
	printSkipped(result)
	printWarnings(result.Warnings)
	if result.Stats.TermCount == 0 {
		printInfo("No terms found; the image shows only the background")
	}
	return nil
}

// outputPaths maps each format to its file. A single format keeps an output
// path that has a known image extension; otherwise the format's extension
// is appended to the base path.
func outputPaths(formats []string, output string) map[string]string {
	if output == "" {
		output = defaultOutput
	}
	paths := make(map[string]string, len(formats))
	_, err := sink.FormatFromPath(output)
	if err == nil && len(formats) == 1 {
		paths[formats[0]] = output
		return paths
	}

	base := output
	if err == nil {
		base = strings.TrimSuffix(output, filepath.Ext(output))
	}
	for _, f := range formats {
		paths[f] = base + sink.Format(f).Ext()
	}
	return paths
}

// writeArtifacts writes each artifact and returns the paths in format order.
func writeArtifacts(artifacts map[string][]byte, formats []string, output string) ([]string, error) {
	targets := outputPaths(formats, output)
	written := make([]string, 0, len(formats))
	for _, f := range formats {
		data, ok := artifacts[f]
		if !ok {
			continue
		}
		path := targets[f]
		if dir := filepath.Dir(path); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return written, fmt.Errorf("create output directory: %w", err)
			}
		}
		if err := os.WriteFile(path, data, 0o644); err != nil {
			return written, fmt.Errorf("write %s: %w", path, err)
		}
		written = append(written, path)
	}
	return written, nil
}
