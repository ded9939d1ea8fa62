package main

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/rpgo/pension-simulator/internal/calculation"
	"github.com/rpgo/pension-simulator/internal/config"
	"github.com/rpgo/pension-simulator/pkg/logger"
)

// globalOptions are the flags shared by every subcommand
type globalOptions struct {
	taxConfig    string
	coefficients string
	logLevel     string
	logPretty    bool
	settings     *config.Settings
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	settings := config.LoadSettings()
	opts := &globalOptions{settings: settings}

	root := &cobra.Command{
		Use:           "pensionsim",
		Short:         "Retirement income simulator with pension rights fixation",
		Long:          "pensionsim converts accumulated pension capital into a monthly pension and compares the net income with and without rights fixation (a tax exemption on part of the pension).",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().StringVar(&opts.taxConfig, "tax-config", settings.TaxConfigFile, "tax schedule document (YAML or JSON)")
	root.PersistentFlags().StringVar(&opts.coefficients, "coefficients", settings.CoefficientFile, "annuity coefficient table (YAML or JSON)")
	root.PersistentFlags().StringVar(&opts.logLevel, "log-level", settings.LogLevel, "log level (debug, info, warn, error)")
	root.PersistentFlags().BoolVar(&opts.logPretty, "log-pretty", settings.LogPretty, "human readable log output")

	root.AddCommand(
		newSimulateCmd(opts),
		newValidateCmd(opts),
		newCoefficientCmd(opts),
		newCatalogCmd(opts),
		newBreakEvenCmd(opts),
		newServeCmd(opts),
	)
	return root
}

// logger builds the process logger. Logs go to stderr so reports on stdout stay clean.
func (o *globalOptions) logger(cmd *cobra.Command) zerolog.Logger {
	return logger.New(logger.Config{
		Level:  o.logLevel,
		Pretty: o.logPretty,
		Out:    cmd.ErrOrStderr(),
	})
}

// loadTables reads both reference documents
func (o *globalOptions) loadTables() (*calculation.Tables, error) {
	tables, err := config.NewLoader().LoadTables(o.taxConfig, o.coefficients)
	if err != nil {
		return nil, fmt.Errorf("loading reference tables: %w", err)
	}
	return tables, nil
}
