package cli

import (
	"encoding/json"

	"github.com/spf13/cobra"

	"github.com/JonMunkholm/lifecharts/internal/core"
)

// limitsOutput mirrors the server's /api/limits body.
type limitsOutput struct {
	Country string          `json:"country,omitempty"`
	Rows    int             `json:"rows"`
	Limits  core.AxisLimits `json:"limits"`
}

func limitsCmd(opts *options) *cobra.Command {
	var country string

	cmd := &cobra.Command{
		Use:   "limits",
		Short: "Print axis limits for a country's line chart, or for the scatter plot",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ds, err := opts.load(cmd.Context())
			if err != nil {
				return err
			}

			var out limitsOutput
			if country == "" {
				rows := ds.Rows()
				out = limitsOutput{Rows: len(rows), Limits: core.LimitsFor(rows, core.FertilityRate, core.LifeExpectancy)}
			} else {
				rows, err := ds.CountryRows(country)
				if err != nil {
					return err
				}
				out = limitsOutput{Country: country, Rows: len(rows), Limits: core.LimitsFor(rows, core.Year, core.LifeExpectancy)}
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(out)
		},
	}

	cmd.Flags().StringVarP(&country, "country", "c", "", "Country for line chart limits (default: scatter plot limits)")
	return cmd
}
