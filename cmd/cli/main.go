package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"edustat/domain/stats"
	"edustat/internal/config"
	"edustat/internal/container"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

type options struct {
	format string
}

func main() {
	_ = godotenv.Load()

	opts := &options{}
	rootCmd := &cobra.Command{
		Use:   "edustat",
		Short: "Run classical statistical tests over a tabular dataset",
		Long: `edustat reads a CSV, Excel or JSON dataset and runs two-sample tests,
a correlation matrix or a normality battery over it.

Configuration is read from the environment (and .env):
- TEMPLATE_DIR: directory holding indttest.html (default: outputs)
- OUTPUT_FORMAT: json|yaml (default: json)
- STATS_WORKERS: parallelism for the matrix and battery (default: CPU count)
- LOG_LEVEL: ERROR|WARN|INFO|DEBUG|TRACE (default: INFO)`,
		SilenceUsage: true,
	}
	rootCmd.PersistentFlags().StringVar(&opts.format, "format", "", "Output format: json|yaml (default from OUTPUT_FORMAT)")

	rootCmd.AddCommand(
		newIndependentTTestCmd(opts),
		newMannWhitneyCmd(opts),
		newCorrelationCmd(opts),
		newNormalityCmd(opts),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newIndependentTTestCmd(opts *options) *cobra.Command {
	var ind, dep, reportDir string

	cmd := &cobra.Command{
		Use:   "indt [data-file]",
		Short: "Independent samples t-test with Levene's and Welch's tests",
		Long: `Compare a numeric column across the two groups of a grouping column.

Example: edustat indt scores.csv --ind class --dep score --report ./reports`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, format, err := setup(cmd.Context(), opts, args[0])
			if err != nil {
				return err
			}
			defer c.Shutdown(context.Background())

			res, err := c.Session.IndependentTTest(ind, dep)
			if err != nil {
				return err
			}
			if reportDir != "" {
				path, err := c.Session.Report(res, reportDir)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.ErrOrStderr(), "Report written to %s\n", path)
			}
			return writeResult(cmd.OutOrStdout(), res, format)
		},
	}

	groupFlags(cmd, &ind, &dep)
	cmd.Flags().StringVar(&reportDir, "report", "", "Also render an HTML report into this directory")
	return cmd
}

func newMannWhitneyCmd(opts *options) *cobra.Command {
	var ind, dep string

	cmd := &cobra.Command{
		Use:   "mannwhitneyu [data-file]",
		Short: "Mann-Whitney U test between two groups",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, format, err := setup(cmd.Context(), opts, args[0])
			if err != nil {
				return err
			}
			defer c.Shutdown(context.Background())

			res, err := c.Session.MannWhitneyU(ind, dep)
			if err != nil {
				return err
			}
			return writeResult(cmd.OutOrStdout(), res, format)
		},
	}

	groupFlags(cmd, &ind, &dep)
	return cmd
}

func newCorrelationCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "correlation [data-file]",
		Short: "Pearson, Spearman and Kendall correlations for every pair of numeric columns",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, format, err := setup(cmd.Context(), opts, args[0])
			if err != nil {
				return err
			}
			defer c.Shutdown(context.Background())

			res, err := c.Session.Correlation(cmd.Context())
			if err != nil {
				return err
			}
			return writeResult(cmd.OutOrStdout(), res, format)
		},
	}
}

func newNormalityCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "normality [data-file]",
		Short: "Kolmogorov-Smirnov, Shapiro-Wilk and D'Agostino tests for every numeric column",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, format, err := setup(cmd.Context(), opts, args[0])
			if err != nil {
				return err
			}
			defer c.Shutdown(context.Background())

			res, err := c.Session.Normality(cmd.Context())
			if err != nil {
				return err
			}
			return writeResult(cmd.OutOrStdout(), res, format)
		},
	}
}

func groupFlags(cmd *cobra.Command, ind, dep *string) {
	cmd.Flags().StringVar(ind, "ind", "", "Grouping (independent) column")
	cmd.Flags().StringVar(dep, "dep", "", "Numeric (dependent) column")
	_ = cmd.MarkFlagRequired("ind")
	_ = cmd.MarkFlagRequired("dep")
}

// setup builds the container and loads the dataset into its session
func setup(ctx context.Context, opts *options, dataFile string) (*container.Container, string, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, "", err
	}
	format := cfg.Output.Format
	if opts.format != "" {
		if err := config.ValidateFormat(opts.format); err != nil {
			return nil, "", err
		}
		format = opts.format
	}

	c, err := container.New(cfg)
	if err != nil {
		return nil, "", err
	}
	if ctx == nil {
		ctx = context.Background()
	}
	if err := c.Session.Load(ctx, dataFile); err != nil {
		return nil, "", err
	}
	return c, format, nil
}

func writeResult(w io.Writer, res stats.Result, format string) error {
	switch format {
	case config.FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(res); err != nil {
			return fmt.Errorf("failed to encode result: %w", err)
		}
		return enc.Close()
	default:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(res)
	}
}
