package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/geomet-tools/geomet-catalog/internal/chart"
)

// NewVisualizeCommand builds `geomet visualize`.
func NewVisualizeCommand() *cobra.Command {
	var (
		ff       filterFlags
		kindFlag string
		xField   string
		yField   string
		groupBy  string
		title    string
		output   string
	)

	cmd := &cobra.Command{
		Use:   "visualize COLLECTION",
		Short: "Render fetched features as a PNG chart",
		Example: `  geomet visualize climate-hourly --type timeseries --y-field TEMP --limit 200
  geomet visualize climate-daily --type bar --x-field STATION_NAME --y-field TOTAL_PRECIPITATION
  geomet visualize hydrometric-daily-mean --type scatter --x-field LEVEL --y-field DISCHARGE
  geomet visualize climate-stations --type map --limit 500`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			collectionID := args[0]

			kind, err := chart.ParseKind(kindFlag)
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

			logger.Info("fetching", "collection", collectionID)
			res, err := client.FetchAll(cmd.Context(), collectionID, spec, ff.limit)
			if err != nil {
				return err
			}
			if len(res.Features) == 0 {
				fmt.Fprintln(cmd.ErrOrStderr(), "No features to visualize.")
				return nil
			}

			png, err := chart.Render(kind, res.Features, chart.Options{
				Collection: collectionID,
				XField:     xField,
				YField:     yField,
				GroupBy:    groupBy,
				Title:      title,
			})
			if err != nil {
				return err
			}

			path := output
			if path == "" {
				path = fmt.Sprintf("%s_%s.png", collectionID, kind)
			}
			if err := os.WriteFile(path, png, 0o644); err != nil {
				return fmt.Errorf("writing chart: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Saved %s chart of %d features to %s\n", kind, len(res.Features), path)
			return nil
		},
	}

	ff.register(cmd, 100)
	cmd.Flags().StringVar(&kindFlag, "type", "", "chart type: timeseries, bar, scatter, or map")
	cmd.Flags().StringVar(&xField, "x-field", "", "property for the X axis (auto-detected for timeseries)")
	cmd.Flags().StringVar(&yField, "y-field", "", "numeric property for the Y axis")
	cmd.Flags().StringVar(&groupBy, "group-by", "", "property to split series by")
	cmd.Flags().StringVar(&title, "title", "", "chart title")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output PNG path (default COLLECTION_TYPE.png)")
	_ = cmd.MarkFlagRequired("type")

	return cmd
}
