package cli

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ppiankov/gendiv/internal/corpus"
	"github.com/ppiankov/gendiv/internal/pipeline"
)

var diversityFlags analysisFlags

// diversityCmd represents the diversity command
var diversityCmd = &cobra.Command{
	Use:   "diversity [file]",
	Short: "Report the average pairwise distance of inputs per category",
	Long: `Diversity groups every string literal passed to a category factory,
deduplicates each group and reports its average pairwise distance:

- text categories: normalized Levenshtein distance, in [0, 1]
- Amount: absolute difference normalized by the value range

The file defaults to all_test_files_combined.txt.

Example:
  gendiv diversity
  gendiv diversity combined.txt --format json -o diversity.json
  gendiv diversity --amount-divisor numeric --workers 4`,
	Args: cobra.MaximumNArgs(1),
	RunE: runDiversity,
}

func init() {
	rootCmd.AddCommand(diversityCmd)

	diversityFlags.register(diversityCmd)
	diversityCmd.Flags().StringVar(&diversityFlags.amountDivisor, "amount-divisor", "all",
		"Amount average divisor: all (every unique pair) or numeric (parsed pairs only)")
}

func runDiversity(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd, args, &diversityFlags)
	if err != nil {
		return err
	}

	c, err := corpus.Load(cfg.Input.Path, cfg.Input.Delimiter)
	if errors.Is(err, corpus.ErrInputNotFound) {
		fmt.Fprintf(cmd.OutOrStdout(), "Error: The file '%s' was not found.\n", cfg.Input.Path)
		return nil
	}
	if err != nil {
		return err
	}

	p, err := pipeline.NewPipeline(cfg, logger)
	if err != nil {
		return err
	}

	logger.Debug("Analyzing corpus",
		zap.String("path", c.Path),
		zap.Int("chunks", len(c.Chunks)),
		zap.String("extractor", cfg.Analysis.Extractor),
		zap.Int("workers", cfg.Analysis.Workers))

	rep, err := p.Diversity(cmd.Context(), c)
	if err != nil {
		return fmt.Errorf("diversity: %w", err)
	}

	renderer, err := newRenderer(cfg)
	if err != nil {
		return err
	}
	return writeReport(cmd, cfg, func(w io.Writer) error {
		return renderer.RenderDiversity(w, rep)
	})
}
