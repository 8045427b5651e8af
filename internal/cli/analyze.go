package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/ppiankov/gendiv/internal/model"
	"github.com/ppiankov/gendiv/internal/report"
)

// analysisFlags are shared by the diversity and signatures commands
type analysisFlags struct {
	format        string
	output        string
	workers       int
	extractor     string
	amountDivisor string
	reservedName  string
	noCache       bool
}

func (f *analysisFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.format, "format", "text", "report format (text, json, markdown, html)")
	cmd.Flags().StringVarP(&f.output, "output", "o", "", "write the report to this file instead of stdout")
	cmd.Flags().IntVar(&f.workers, "workers", 1, "chunks analyzed in parallel (1 = inline)")
	cmd.Flags().StringVar(&f.extractor, "extractor", "regex", "extraction strategy (regex, syntax)")
	cmd.Flags().BoolVar(&f.noCache, "no-cache", false, "analyze duplicate chunks again instead of reusing results")
}

// loadConfig merges defaults, config file and env (via viper) with the flags the user set
func loadConfig(cmd *cobra.Command, args []string, f *analysisFlags) (*model.Config, error) {
	cfg := model.DefaultConfig()
	if err := viper.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	flags := cmd.Flags()
	if flags.Changed("format") {
		cfg.Output.Format = f.format
	}
	if flags.Changed("output") {
		cfg.Output.Path = f.output
	}
	if flags.Changed("workers") {
		cfg.Analysis.Workers = f.workers
	}
	if flags.Changed("extractor") {
		cfg.Analysis.Extractor = f.extractor
	}
	if flags.Changed("amount-divisor") {
		cfg.Diversity.AmountDivisor = model.AmountDivisor(f.amountDivisor)
	}
	if flags.Changed("reserved-name") {
		cfg.Signatures.ReservedName = f.reservedName
	}
	if f.noCache {
		cfg.Cache.Enabled = false
	}
	if len(args) > 0 {
		cfg.Input.Path = args[0]
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// writeReport renders to the configured output path, or stdout when none is set
func writeReport(cmd *cobra.Command, cfg *model.Config, render func(io.Writer) error) (err error) {
	if cfg.Output.Path == "" {
		return render(cmd.OutOrStdout())
	}

	f, err := os.Create(cfg.Output.Path)
	if err != nil {
		return fmt.Errorf("create output: %w", err)
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("close output: %w", closeErr)
		}
	}()

	if err := render(f); err != nil {
		return err
	}

	logger.Debug("Wrote report",
		zap.String("path", cfg.Output.Path),
		zap.String("format", cfg.Output.Format))
	fmt.Fprintf(cmd.ErrOrStderr(), "✓ Wrote %s report: %s\n", cfg.Output.Format, cfg.Output.Path)
	return nil
}

func newRenderer(cfg *model.Config) (*report.Renderer, error) {
	format, err := report.ParseFormat(cfg.Output.Format)
	if err != nil {
		return nil, err
	}
	return report.NewRenderer(format), nil
}
