// Package cli provides the dataquality command-line interface.
package cli

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/David-Botos/data-quality/pkg/config"
	"github.com/David-Botos/data-quality/pkg/logging"
	"github.com/David-Botos/data-quality/pkg/pipeline"
)

// Version is set at build time.
var Version = "0.1.0"

// runnerKey is used to store the pipeline runner in context.
type runnerKey struct{}

// session carries what PersistentPreRunE builds for a subcommand
type session struct {
	cfg    *config.Config
	logger *zap.Logger
	runner *pipeline.Runner
}

// NewRootCmd creates and returns the root command.
func NewRootCmd() *cobra.Command {
	var (
		cfgFile string
		envFile string
	)

	rootCmd := &cobra.Command{
		Use:   "dataquality",
		Short: "Customer data-quality pipeline",
		Long: `dataquality profiles, cleans, validates and masks a customer CSV table.

"run" executes every stage in order and writes a report per stage. The other
commands run one stage on their own and print its report.`,
		Version: Version,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if cmd.Name() == "help" || cmd.Name() == "version" {
				return nil
			}

			cfg, err := config.Load(config.LoadOptions{
				ConfigFile: cfgFile,
				EnvFile:    envFile,
				Flags:      cmd.Flags(),
			})
			if err != nil {
				return err
			}

			logger, err := logging.New(cfg)
			if err != nil {
				return err
			}

			runner, err := pipeline.NewRunner(cfg, logger)
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			cmd.SetContext(context.WithValue(ctx, runnerKey{}, &session{
				cfg:    cfg,
				logger: logger,
				runner: runner,
			}))
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, _ []string) {
			if s, err := getSession(cmd.Context()); err == nil {
				_ = s.logger.Sync()
			}
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "YAML config file")
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", "", "dotenv file (default: ./.env when present)")
	rootCmd.PersistentFlags().String("input", "", "Raw input CSV")
	rootCmd.PersistentFlags().String("cleaned", "", "Cleaned output CSV")
	rootCmd.PersistentFlags().String("masked", "", "Masked output CSV")
	rootCmd.PersistentFlags().String("report-dir", "", "Directory for stage reports")
	rootCmd.PersistentFlags().String("operations", "", "CSV ledger of cleaning operations (disabled when empty)")
	rootCmd.PersistentFlags().String("metrics", "", "Prometheus textfile written after a run (disabled when empty)")
	rootCmd.PersistentFlags().Int("sample-size", 0, "Rows shown in the masking sample")
	rootCmd.PersistentFlags().Bool("all-errors", false, "Report every violation per row instead of the first")
	rootCmd.PersistentFlags().String("log-level", "", "Log level (debug|info|warn|error)")
	rootCmd.PersistentFlags().String("log-format", "", "Log format (json|console)")
	rootCmd.PersistentFlags().String("log-file", "", "Also write logs to this file")

	_ = rootCmd.RegisterFlagCompletionFunc("log-level", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return []string{"debug", "info", "warn", "error"}, cobra.ShellCompDirectiveNoFileComp
	})
	_ = rootCmd.RegisterFlagCompletionFunc("log-format", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return []string{"json", "console"}, cobra.ShellCompDirectiveNoFileComp
	})

	rootCmd.AddCommand(newRunCommand())
	rootCmd.AddCommand(newCleanCommand())
	rootCmd.AddCommand(newValidateCommand())
	rootCmd.AddCommand(newProfileCommand())
	rootCmd.AddCommand(newDetectCommand())
	rootCmd.AddCommand(newMaskCommand())
	rootCmd.AddCommand(newVersionCommand())

	return rootCmd
}

// Execute runs the root command.
func Execute() error {
	rootCmd := NewRootCmd()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return err
	}
	return nil
}

func getSession(ctx context.Context) (*session, error) {
	if ctx != nil {
		if s, ok := ctx.Value(runnerKey{}).(*session); ok {
			return s, nil
		}
	}
	return nil, errors.New("command was not initialised")
}
