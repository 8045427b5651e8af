package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/ppiankov/gendiv/internal/model"
)

// Version is the gendiv release
const Version = "v0.2.0"

var (
	cfgFile string
	verbose bool
	logger  = zap.NewNop()

	// newLogger builds the stderr diagnostics logger
	newLogger = func(verbose bool) (*zap.Logger, error) {
		config := zap.NewProductionConfig()
		if verbose {
			config.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		return config.Build()
	}
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "gendiv",
	Short: "gendiv - Diversity and mutation-signature analysis of generated test inputs",
	Long: `gendiv measures the inputs of generated unit tests.

It reads one combined file of generated Java test classes, finds the string
literals passed to value-type factories (Amount, Email, Goals,
IncomeDescription, TransactionDescription, WalletNames) and reports:

  diversity   average pairwise distance of the unique inputs per category
  signatures  how many semantic inputs look like low-effort mutations

Every report is a pure function of the input file.`,
	SilenceErrors: true,
	SilenceUsage:  true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		l, err := newLogger(verbose)
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		logger = l

		if used := viper.ConfigFileUsed(); used != "" {
			logger.Debug("Using config file", zap.String("path", used))
		}
		return nil
	},
}

// Execute runs the root command; SIGINT and SIGTERM cancel the analysis
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return execute(ctx)
}

// execute runs the command tree and flushes the logger whether or not it failed
func execute(ctx context.Context) error {
	err := rootCmd.ExecuteContext(ctx)
	_ = logger.Sync()
	return err
}

// versionCmd represents the version command
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Long:  `Display the version number of gendiv.`,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "gendiv %s\n", Version)
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: $HOME/.gendiv/config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")

	// Bind flags to viper
	_ = viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))

	// Add subcommands
	rootCmd.AddCommand(versionCmd)
}

// initConfig reads in config file and ENV variables
func initConfig() {
	setDefaults(viper.GetViper(), model.DefaultConfig())

	if cfgFile != "" {
		// Use config file from the flag
		viper.SetConfigFile(cfgFile)
	} else {
		// Find home directory
		home, err := os.UserHomeDir()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error finding home directory: %v\n", err)
			return
		}

		// Search for config in home directory
		viper.AddConfigPath(filepath.Join(home, ".gendiv"))
		viper.SetConfigType("yaml")
		viper.SetConfigName("config")
	}

	// Read in environment variables that match GENDIV_*; nested keys use "_"
	viper.SetEnvPrefix("GENDIV")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok && cfgFile != "" {
			fmt.Fprintf(os.Stderr, "Warning: could not read config file %s: %v\n", cfgFile, err)
		}
	}
}

// setDefaults registers every config key so env variables reach Unmarshal
func setDefaults(v *viper.Viper, cfg *model.Config) {
	v.SetDefault("input.path", cfg.Input.Path)
	v.SetDefault("input.delimiter", cfg.Input.Delimiter)
	v.SetDefault("analysis.extractor", cfg.Analysis.Extractor)
	v.SetDefault("analysis.workers", cfg.Analysis.Workers)
	v.SetDefault("diversity.amount_divisor", string(cfg.Diversity.AmountDivisor))
	v.SetDefault("signatures.reserved_name", cfg.Signatures.ReservedName)
	v.SetDefault("signatures.common_values", cfg.Signatures.CommonValues)
	v.SetDefault("signatures.repeat_count", cfg.Signatures.RepeatCount)
	v.SetDefault("output.format", cfg.Output.Format)
	v.SetDefault("output.path", cfg.Output.Path)
	v.SetDefault("cache.enabled", cfg.Cache.Enabled)
	v.SetDefault("cache.ttl", cfg.Cache.TTL)
}
