// Package cmd provides the CLI commands for billcalc.
package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/warp/call-billing/config"
	"github.com/warp/call-billing/factory"
	"github.com/warp/call-billing/logging"
	"github.com/warp/call-billing/tariff"
)

// options are the persistent flags shared by every command.
type options struct {
	tariffFile string
	verbose    bool

	logger *zap.Logger
	tariff tariff.Tariff
}

// NewRootCmd builds the command tree.
func NewRootCmd() *cobra.Command {
	cfg := config.Load()
	opts := &options{tariffFile: cfg.TariffFile}

	root := &cobra.Command{
		Use:   "billcalc",
		Short: "Price telephone call logs",
		Long: `billcalc prices call logs with the peak/off-peak tariff and the
long-call discount, freeing calls to the most called number.

Log format, one call per line:
  420774577453,13-01-2020 18:10:15,13-01-2020 18:12:57

Examples:
  billcalc bill calls.csv
  billcalc bill --lines --tariff tariff.json calls.csv
  cat calls.csv | billcalc bill
  billcalc price --number 420774577453 --start "13-01-2020 15:57:00" --end "13-01-2020 16:05:00"
  billcalc tariff > tariff.json`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			logCfg := cfg.Logging
			if opts.verbose {
				logCfg.Level = "debug"
			}
			logger, err := logging.New(logCfg)
			if err != nil {
				return fmt.Errorf("failed to initialize logging: %w", err)
			}
			opts.logger = logger

			opts.tariff = tariff.DefaultTariff()
			if opts.tariffFile != "" {
				t, err := factory.NewTariffFactory().LoadTariff(opts.tariffFile)
				if err != nil {
					return err
				}
				opts.tariff = t
				logger.Debug("tariff loaded", zap.String("file", opts.tariffFile))
			}
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if opts.logger != nil {
				_ = opts.logger.Sync()
			}
		},
	}

	root.PersistentFlags().StringVarP(&opts.tariffFile, "tariff", "t", opts.tariffFile, "JSON tariff file (default is the built-in tariff)")
	root.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "enable debug logging")

	root.AddCommand(newBillCmd(opts))
	root.AddCommand(newPriceCmd(opts))
	root.AddCommand(newVerifyCmd(opts))
	root.AddCommand(newTariffCmd(opts))
	return root
}

// Execute runs the CLI.
func Execute() error {
	return NewRootCmd().Execute()
}

// readLogArg reads the log from the file argument, or stdin for none or "-".
func readLogArg(cmd *cobra.Command, args []string) (string, error) {
	if len(args) == 0 || args[0] == "-" {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return "", fmt.Errorf("failed to read stdin: %w", err)
		}
		return string(data), nil
	}
	data, err := os.ReadFile(args[0])
	if err != nil {
		return "", fmt.Errorf("failed to read log: %w", err)
	}
	return string(data), nil
}
