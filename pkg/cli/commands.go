package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/David-Botos/data-quality/pkg/masking"
	"github.com/David-Botos/data-quality/pkg/report"
)

func newRunCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "Run every pipeline stage",
		Long: `Load the input table, then profile, clean, validate, detect PII and mask it.
A report per stage and an execution report are written to the report directory.
Any fatal error fails the whole run.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := getSession(cmd.Context())
			if err != nil {
				return err
			}

			result, err := s.runner.Run(cmd.Context())
			status := report.StatusSuccess
			if err != nil {
				status = report.StatusFailed
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Run %s %s in %s\n", result.RunID, status, result.Duration())
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Reports written to %s\n", s.cfg.ReportDir)
			return err
		},
	}
}

func newCleanCommand() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "clean [input]",
		Short: "Clean a raw table",
		Long:  `Clean the raw input table, write the cleaned table and print the cleaning log.`,
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := getSession(cmd.Context())
			if err != nil {
				return err
			}

			raw, err := s.runner.Load(inputPath(args, s.cfg.InputPath))
			if err != nil {
				return err
			}

			dest := outputPath(output, s.cfg.CleanedPath)
			_, result, err := s.runner.Clean(cmd.Context(), raw, dest)
			if reportErr := report.WriteCleaning(cmd.OutOrStdout(), result); reportErr != nil {
				s.logger.Error("Failed to print cleaning log", zap.Error(reportErr))
			}
			return err
		},
	}
	cmd.Flags().StringVar(&output, "output", "", "Cleaned output CSV (default: the configured cleaned path)")
	return cmd
}

func newValidateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "validate [input]",
		Short: "Validate a cleaned table",
		Long: `Check every row of a table against the customer schema and print the
result. Exits non-zero when any row fails.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := getSession(cmd.Context())
			if err != nil {
				return err
			}

			t, err := s.runner.Load(inputPath(args, s.cfg.CleanedPath))
			if err != nil {
				return err
			}

			result := s.runner.Validate(t)
			if err := report.WriteValidation(cmd.OutOrStdout(), result); err != nil {
				return err
			}
			if !result.Passed {
				return fmt.Errorf("validation failed: %d of %d rows rejected", result.FailedCount, result.TotalRows)
			}
			return nil
		},
	}
}

func newProfileCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "profile [input]",
		Short: "Profile a raw table",
		Long:  `Compute completeness, types and quality issues for a table and print the report.`,
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := getSession(cmd.Context())
			if err != nil {
				return err
			}

			t, err := s.runner.Load(inputPath(args, s.cfg.InputPath))
			if err != nil {
				return err
			}
			return report.WriteProfile(cmd.OutOrStdout(), s.runner.Profile(t))
		},
	}
}

func newDetectCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "detect [input]",
		Short: "Detect PII in a cleaned table",
		Long:  `Classify the rows of a table into PII categories and print the counts.`,
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := getSession(cmd.Context())
			if err != nil {
				return err
			}

			t, err := s.runner.Load(inputPath(args, s.cfg.CleanedPath))
			if err != nil {
				return err
			}
			return report.WritePiiDetection(cmd.OutOrStdout(), s.runner.Detect(t))
		},
	}
}

func newMaskCommand() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "mask [input]",
		Short: "Mask PII in a cleaned table",
		Long: `Write a masked copy of a cleaned table and print a before/after sample of the
masked columns.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := getSession(cmd.Context())
			if err != nil {
				return err
			}

			cleaned, err := s.runner.Load(inputPath(args, s.cfg.CleanedPath))
			if err != nil {
				return err
			}

			masked, result, err := s.runner.Mask(cmd.Context(), cleaned, outputPath(output, s.cfg.MaskedPath))
			if err != nil {
				return err
			}
			return report.WriteMaskingSample(cmd.OutOrStdout(), result, masking.CompareSample(cleaned, masked, s.cfg.SampleSize))
		},
	}
	cmd.Flags().StringVar(&output, "output", "", "Masked output CSV (default: the configured masked path)")
	return cmd
}

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(cmd *cobra.Command, _ []string) {
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "dataquality v%s\n", Version)
		},
	}
}

func inputPath(args []string, fallback string) string {
	if len(args) > 0 {
		return args[0]
	}
	return fallback
}

func outputPath(flag, fallback string) string {
	if flag != "" {
		return flag
	}
	return fallback
}

