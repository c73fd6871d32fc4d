package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/warp/call-billing/billing"
	"github.com/warp/call-billing/tariff"
)

// defaultMaxVerifyMinutes bounds the per-minute reference engine.
const defaultMaxVerifyMinutes = 1_000_000

func newVerifyCmd(opts *options) *cobra.Command {
	var maxMinutes int64

	cmd := &cobra.Command{
		Use:   "verify [log-file|-]",
		Short: "Cross-check the interval engine against the per-minute engine",
		Long: `Price every call of a log with both the interval engine and the
per-minute reference engine and report any call where they disagree.
Calls longer than --max-minutes are skipped. --max-minutes cannot
exceed the per-minute engine limit (about 153 million minutes).`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if maxMinutes > tariff.MaxReferenceMinutes {
				return fmt.Errorf("--max-minutes %d exceeds the per-minute engine limit of %d", maxMinutes, tariff.MaxReferenceMinutes)
			}

			log, err := readLogArg(cmd, args)
			if err != nil {
				return err
			}
			calls, err := billing.NewCSVParser().Parse(log)
			if err != nil {
				return err
			}

			fast := tariff.NewIntervalEngine(opts.tariff)
			slow := tariff.NewMinuteEngine(opts.tariff)
			out := cmd.OutOrStdout()

			var checked, skipped, mismatched int
			for i, call := range calls {
				if call.BilledMinutes() > maxMinutes {
					skipped++
					opts.logger.Debug("call skipped",
						zap.Int("index", i),
						zap.Int64("minutes", call.BilledMinutes()),
					)
					continue
				}
				checked++
				got, want := fast.Price(call), slow.Price(call)
				if !got.Equal(want) {
					mismatched++
					fmt.Fprintf(out, "MISMATCH call %d %s: interval=%s minute=%s\n", i+1, call.Number, got, want)
				}
			}

			fmt.Fprintf(out, "checked %d, skipped %d, mismatched %d\n", checked, skipped, mismatched)
			if mismatched > 0 {
				return fmt.Errorf("%d of %d calls priced differently", mismatched, checked)
			}
			return nil
		},
	}

	cmd.Flags().Int64Var(&maxMinutes, "max-minutes", defaultMaxVerifyMinutes, "skip calls longer than this many minutes")
	return cmd
}
