package cli

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/wordcloud/pkg/config"
	"github.com/matzehuels/wordcloud/pkg/pipeline"
)

// tokensCommand creates the tokens command, which prints the frequency
// table without laying anything out.
func (c *CLI) tokensCommand() *cobra.Command {
	var (
		rows    int
		asJSON  bool
		noCache bool
	)
	var settings *settingsFlags

	cmd := &cobra.Command{
		Use:   "tokens",
		Short: "Print the ranked term frequencies of a text",
		Long: `Print the ranked term frequencies of a text.

Runs only the text stage: normalization, segmentation, part-of-speech
filtering, stopword removal and counting. Useful for tuning stopwords and
max-words before generating.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.settings(cmd.Flags(), settings)
			if err != nil {
				return err
			}
			return c.runTokens(runContext(cmd), cfg, rows, asJSON, noCache)
		},
	}

	settings = addSettingsFlags(cmd.Flags())
	cmd.Flags().IntVar(&rows, "rows", 20, "rows to show (0: all)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the table as JSON")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")

	return cmd
}

func (c *CLI) runTokens(ctx context.Context, cfg *config.Config, rows int, asJSON, noCache bool) error {
	opts := pipeline.FromConfig(cfg)
	opts.Logger = c.Logger
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return err
	}

	runner, err := c.newRunner(noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	text, warnings := pipeline.ReadInput(opts, c.Logger)
	table, tokens, cached, err := runner.TokenizeWithCacheInfo(ctx, text, opts)
	if err != nil {
		return err
	}

	if asJSON {
		enc := json.NewEncoder(stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(table)
	}

	status := iconFresh
	if cached {
		status = iconCached
	}
	fmt.Fprintln(stdout, StyleTitle.Render("Term frequencies"))
	printDetail("%d tokens · %d terms · %s", tokens, len(table), status)
	printWarnings(warnings)
	if len(table) == 0 {
		printInfo("No terms found")
		return nil
	}
	fmt.Fprintln(stdout, termTable(table, rows))
	if rows > 0 && rows < len(table) {
		printDetail("%d more not shown (--rows 0 shows all)", len(table)-rows)
	}
	printNewline()
	printNextStep("Generate", "wordcloud generate -i "+opts.InputPath)
	return nil
}
