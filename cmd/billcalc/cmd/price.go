package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/warp/call-billing/billing"
	"github.com/warp/call-billing/tariff"
)

func newPriceCmd(opts *options) *cobra.Command {
	var number, start, end string

	cmd := &cobra.Command{
		Use:   "price",
		Short: "Price a single call",
		Long: `Price a single call with the active tariff. No promotion applies.

Timestamps use the log format DD-MM-YYYY HH:MM:SS.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := tariff.ParsePhoneNumber(number)
			if err != nil {
				return err
			}
			s, err := billing.ParseTimestamp(start)
			if err != nil {
				return fmt.Errorf("--start: %w", err)
			}
			e, err := billing.ParseTimestamp(end)
			if err != nil {
				return fmt.Errorf("--end: %w", err)
			}
			call, err := tariff.NewCall(n, s, e)
			if err != nil {
				return err
			}

			price := tariff.NewIntervalEngine(opts.tariff).Price(call)
			fmt.Fprintf(cmd.OutOrStdout(), "%s (%d min)\n", price, call.BilledMinutes())
			return nil
		},
	}

	cmd.Flags().StringVarP(&number, "number", "n", "", "called phone number")
	cmd.Flags().StringVarP(&start, "start", "s", "", "call start, DD-MM-YYYY HH:MM:SS")
	cmd.Flags().StringVarP(&end, "end", "e", "", "call end, DD-MM-YYYY HH:MM:SS")
	_ = cmd.MarkFlagRequired("number")
	_ = cmd.MarkFlagRequired("start")
	_ = cmd.MarkFlagRequired("end")
	return cmd
}
