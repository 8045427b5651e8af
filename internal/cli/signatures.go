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

var signaturesFlags analysisFlags

// signaturesCmd represents the signatures command
var signaturesCmd = &cobra.Command{
	Use:   "signatures [file]",
	Short: "Report the share of semantic inputs that match mutation signatures",
	Long: `Signatures counts, per generated file, the declared string values passed
to at least one category factory (semantic inputs) and how many of them
match a known mutation signature:

- long string: one word repeated exactly 10 times
- value swap: a common commercial value (19.95, 99.99, 49.50, 99.00)

Values declared under the reserved name (default "id") are never counted.
The file defaults to all_test_files_combined.txt.

Example:
  gendiv signatures
  gendiv signatures combined.txt --format markdown -o signatures.md`,
	Args: cobra.MaximumNArgs(1),
	RunE: runSignatures,
}

func init() {
	rootCmd.AddCommand(signaturesCmd)

	signaturesFlags.register(signaturesCmd)
	signaturesCmd.Flags().StringVar(&signaturesFlags.reservedName, "reserved-name", "id",
		"declared name excluded from the tally")
}

func runSignatures(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd, args, &signaturesFlags)
	if err != nil {
		return err
	}

	c, err := corpus.Load(cfg.Input.Path, cfg.Input.Delimiter)
	if errors.Is(err, corpus.ErrInputNotFound) {
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Error: The file '%s' was not found in the current directory.\n", cfg.Input.Path)
		fmt.Fprintln(out, "Please place the file in the current directory or pass its path as an argument.")
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
		zap.String("reserved_name", cfg.Signatures.ReservedName))

	rep, err := p.Signatures(cmd.Context(), c)
	if err != nil {
		return fmt.Errorf("signatures: %w", err)
	}

	renderer, err := newRenderer(cfg)
	if err != nil {
		return err
	}
	return writeReport(cmd, cfg, func(w io.Writer) error {
		return renderer.RenderSignatures(w, rep)
	})
}
