package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func countriesCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "countries",
		Short: "List the countries in first-seen order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ds, err := opts.load(cmd.Context())
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for _, c := range ds.Countries() {
				fmt.Fprintln(out, c)
			}
			return nil
		},
	}
}
