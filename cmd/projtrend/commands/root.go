// Package commands contains the projtrend CLI commands
package commands

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/spektr-org/projtrend"
	"github.com/spektr-org/projtrend/internal/config"
	"github.com/spektr-org/projtrend/internal/output"
)

var (
	cfgFile   string
	verbose   bool
	colorMode string
	cfg       *config.Config
	logger    *slog.Logger
	printer   *output.Printer
	version   = "dev"
)

// rootCmd runs the whole analysis
var rootCmd = &cobra.Command{
	Use:   "projtrend",
	Short: "Yearly trend of computing research projects",
	Long: `projtrend analyses the research-project export of a university.

It keeps the projects whose unit, CNPq area, keywords or research line mention
a computing term, writes them to a CSV file, counts them per year, fits a
linear trend with a 95% confidence interval for the mean, and draws a chart.

Example usage:
  projtrend                                  # default ../data paths
  projtrend --input data.csv --format json   # summary as JSON
  projtrend --summary-out summary.json       # also save the summary`,
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return initConfig(cmd)
	},
	RunE: runAnalysis,
}

// Execute runs the root command and returns the process exit code.
func Execute() int {
	if err := rootCmd.Execute(); err != nil {
		p := printer
		if p == nil {
			p = output.NewPrinter(output.PrinterOptions{
				ColorMode: output.ColorNever,
				Err:       rootCmd.ErrOrStderr(),
			})
		}
		cliErr := output.Classify(err)
		p.FormatError(cliErr)
		return cliErr.ExitCode
	}
	return output.ExitSuccess
}

// SetVersion sets the version string for the CLI
func SetVersion(ver string) {
	version = ver
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is .projtrend.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().StringVar(&colorMode, "color", "auto", "color output: auto, always, never")

	// Run flags
	rootCmd.Flags().String("input", projtrend.DefaultInputPath, "path to the ';'-separated project export")
	rootCmd.Flags().String("filtered-out", projtrend.DefaultFilteredPath, "where to write the filtered projects CSV")
	rootCmd.Flags().String("chart-out", projtrend.DefaultChartPath, "where to write the chart image")
	rootCmd.Flags().String("summary-out", "", "optional path for a JSON copy of the summary")
	rootCmd.Flags().String("format", "table", "summary output format: table, json, yaml")

	rootCmd.AddCommand(versionCmd)
}

// flagKeys maps run flags to configuration keys
var flagKeys = map[string]string{
	"input":        "input.path",
	"filtered-out": "output.filtered_csv",
	"chart-out":    "output.chart",
	"summary-out":  "output.summary",
	"format":       "output.format",
}

// initConfig reads in config file and ENV variables if set.
func initConfig(cmd *cobra.Command) error {
	mode, err := output.ParseColorMode(colorMode)
	if err != nil {
		return &output.CLIError{Summary: err.Error(), ExitCode: output.ExitUsageError, Err: err}
	}

	// Setup logger
	logLevel := slog.LevelInfo
	if verbose {
		logLevel = slog.LevelDebug
	}
	logger = slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{
		Level: logLevel,
	}))

	// Bind flags to viper
	v := viper.New()
	for flag, key := range flagKeys {
		if f := cmd.Flags().Lookup(flag); f != nil {
			_ = v.BindPFlag(key, f)
		}
	}

	// Load configuration
	cfg, err = config.LoadWith(v, cfgFile)
	if err != nil {
		return &output.CLIError{
			Summary:    "invalid configuration",
			Detail:     err.Error(),
			Suggestion: "Check .projtrend.yaml syntax or use --config flag",
			ExitCode:   output.ExitConfigError,
			Err:        err,
		}
	}

	printer = output.NewPrinter(output.PrinterOptions{
		ColorMode:    mode,
		ConfigColors: cfg.Output.Colors,
		Out:          cmd.OutOrStdout(),
		Err:          cmd.ErrOrStderr(),
	})

	// Update logger based on config
	if cfg.Logging.Level == "debug" || verbose {
		logLevel = slog.LevelDebug
	} else {
		_ = logLevel.UnmarshalText([]byte(cfg.Logging.Level))
	}
	opts := &slog.HandlerOptions{Level: logLevel}
	if cfg.Logging.Format == "json" {
		logger = slog.New(slog.NewJSONHandler(cmd.ErrOrStderr(), opts))
	} else {
		logger = slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), opts))
	}

	logger.Debug("configuration loaded",
		"input", cfg.Input.Path,
		"filtered_csv", cfg.Output.FilteredCSV,
		"chart", cfg.Output.Chart,
		"keywords", len(cfg.Filter.Keywords),
	)

	return nil
}

func runAnalysis(cmd *cobra.Command, args []string) error {
	res, err := projtrend.Run(cfg.Pipeline(), logger)
	if err != nil {
		return err
	}
	if err := writeResult(printer, res, cfg.Output.Format); err != nil {
		return fmt.Errorf("printing result: %w", err)
	}
	return nil
}
