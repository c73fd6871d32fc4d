package cmd

import (
	"encoding/json"

	"github.com/spf13/cobra"

	"github.com/warp/call-billing/factory"
)

func newTariffCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "tariff",
		Short: "Print the active tariff as JSON",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(factory.ToJSON(opts.tariff))
		},
	}
}
