package cmd

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/warp/call-billing/billing"
)

const billTimeLayout = "2006-01-02 15:04:05"

func newBillCmd(opts *options) *cobra.Command {
	var (
		showLines   bool
		noPromotion bool
	)

	cmd := &cobra.Command{
		Use:   "bill [log-file|-]",
		Short: "Compute the total of a call log",
		Long: `Compute the bill total of a call log. The log is read from the file
argument, or from stdin when the argument is "-" or missing.

Calls to the most called number are free unless --no-promotion is set.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			log, err := readLogArg(cmd, args)
			if err != nil {
				return err
			}

			calc := billing.NewCalculatorWithTariff(opts.tariff, opts.logger)
			if noPromotion {
				calc.Promotion = billing.NoPromotion{}
			}

			stmt, err := calc.Statement(log)
			if err != nil {
				return err
			}
			opts.logger.Debug("bill computed",
				zap.String("statement_id", stmt.ID),
				zap.Int("calls", len(stmt.Lines)),
			)

			out := cmd.OutOrStdout()
			if showLines {
				w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
				fmt.Fprintln(w, "NUMBER\tSTART\tEND\tMINUTES\tPRICE")
				for _, l := range stmt.Lines {
					price := l.Price.String()
					if l.Free {
						price += " (free)"
					}
					fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%s\n",
						l.Call.Number,
						l.Call.Start.Format(billTimeLayout),
						l.Call.End.Format(billTimeLayout),
						l.Minutes,
						price,
					)
				}
				if err := w.Flush(); err != nil {
					return err
				}
				fmt.Fprintf(out, "TOTAL %s\n", stmt.Total)
				return nil
			}

			fmt.Fprintln(out, stmt.Total)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&showLines, "lines", "l", false, "print every priced call")
	cmd.Flags().BoolVar(&noPromotion, "no-promotion", false, "bill calls to the most called number too")
	return cmd
}
