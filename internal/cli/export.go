package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/geomet-tools/geomet-catalog/internal/export"
)

// NewExportCommand builds `geomet export`.
func NewExportCommand() *cobra.Command {
	var (
		ff       filterFlags
		format   string
		output   string
		allPages bool
		maxItems int
	)

	cmd := &cobra.Command{
		Use:   "export COLLECTION",
		Short: "Export features from a collection to a CSV or GeoJSON file",
		Example: `  geomet export climate-hourly --format csv --limit 10
  geomet export aqhi-observations-realtime --format geojson --limit 10
  geomet export climate-daily --format csv --bbox -80,43,-70,47 --all-pages --max-items 200
  geomet export hydrometric-daily-mean --format csv --properties STATION_NUMBER=02HA003 --limit 50`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			collectionID := args[0]

			outFormat, err := export.ParseFormat(format)
			if err != nil {
				return err
			}
			client, logger, err := newClient()
			if err != nil {
				return err
			}
			spec, err := ff.spec()
			if err != nil {
				return err
			}

			// Without --all-pages the requested limit is the cap: a
			// degenerate single-page run.
			itemCap := ff.limit
			if allPages {
				itemCap = maxItems
			}

			logger.Info("fetching", "collection", collectionID)
			res, err := client.FetchAll(cmd.Context(), collectionID, spec, itemCap)
			if err != nil {
				return err
			}
			logger.Info("retrieved features", "count", len(res.Features), "truncated", res.Truncated)

			if len(res.Features) == 0 {
				fmt.Fprintln(cmd.ErrOrStderr(), "No features to export.")
				return nil
			}

			path := output
			if path == "" {
				path = export.DefaultPath(collectionID, outFormat, time.Now())
			}
			if err := export.WriteFile(path, outFormat, res.Features); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Exported %d features to %s\n", len(res.Features), path)
			return nil
		},
	}

	ff.register(cmd, 100)
	cmd.Flags().StringVar(&format, "format", "csv", "output format: csv or geojson")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file path (auto-generated if omitted)")
	cmd.Flags().BoolVar(&allPages, "all-pages", false, "fetch all pages of results")
	cmd.Flags().IntVar(&maxItems, "max-items", 1000, "max total items with --all-pages")
	return cmd
}
