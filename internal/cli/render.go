package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/a-h/templ"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/JonMunkholm/lifecharts/internal/chart"
	"github.com/JonMunkholm/lifecharts/internal/core"
)

// Output formats for render.
const (
	FormatSVG = "svg"
	FormatPNG = "png"
)

func renderCmd(opts *options) *cobra.Command {
	var (
		country string
		outDir  string
		format  string
	)

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Write the line chart and scatter plot to files",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			format = strings.ToLower(format)
			if format != FormatSVG && format != FormatPNG {
				return fmt.Errorf("unknown format %q (want svg or png)", format)
			}

			ds, err := opts.load(cmd.Context())
			if err != nil {
				return err
			}
			if country == "" {
				country = ds.DefaultCountry(opts.defaultCountry)
			}

			if err := os.MkdirAll(outDir, 0o755); err != nil {
				return fmt.Errorf("create output dir: %w", err)
			}

			paths, err := renderFiles(cmd.Context(), ds, country, outDir, format)
			if err != nil {
				return err
			}
			for _, p := range paths {
				fmt.Fprintln(cmd.OutOrStdout(), p)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&country, "country", "c", "", "Country for the line chart (default: configured default or first)")
	cmd.Flags().StringVarP(&outDir, "out", "o", ".", "Output directory")
	cmd.Flags().StringVarP(&format, "format", "f", FormatSVG, "svg or png")
	return cmd
}

// renderFiles writes line_<country>.<ext> and scatter.<ext> concurrently and
// returns their paths.
func renderFiles(ctx context.Context, ds *core.Dataset, country, outDir, format string) ([]string, error) {
	rows, err := ds.CountryRows(country)
	if err != nil {
		return nil, err
	}

	linePath := filepath.Join(outDir, "line_"+safeName(country)+"."+format)
	scatterPath := filepath.Join(outDir, "scatter."+format)

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return writeFile(linePath, func(w io.Writer) error {
			if format == FormatPNG {
				return chart.RenderLinePNG(w, country, rows)
			}
			return renderSVG(ctx, w, "line", chart.LineChartSVG(chart.NewLineChart(country, rows)))
		})
	})
	g.Go(func() error {
		return writeFile(scatterPath, func(w io.Writer) error {
			if format == FormatPNG {
				return chart.RenderScatterPNG(w, ds.Rows())
			}
			return renderSVG(ctx, w, "scatter", chart.ScatterPlotSVG(chart.NewScatterPlot(ds.Rows())))
		})
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return []string{linePath, scatterPath}, nil
}

func renderSVG(ctx context.Context, w io.Writer, id string, body templ.Component) error {
	return chart.Document(id, body).Render(ctx, w)
}

// writeFile creates path and removes it again if render fails.
func writeFile(path string, render func(io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := render(f); err != nil {
		f.Close()
		os.Remove(path)
		return fmt.Errorf("render %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close %s: %w", path, err)
	}
	return nil
}

// safeName keeps a country code usable as a file name.
func safeName(s string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			return r
		default:
			return '_'
		}
	}, s)
}
