package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/geomet-tools/geomet-catalog/internal/geomet"
	"github.com/geomet-tools/geomet-catalog/internal/render"
)

// NewFetchCommand builds `geomet fetch`.
func NewFetchCommand() *cobra.Command {
	var (
		ff       filterFlags
		fields   string
		jsonOut  bool
		allPages bool
		maxItems int
	)

	cmd := &cobra.Command{
		Use:   "fetch COLLECTION",
		Short: "Fetch features from a collection and print them",
		Example: `  geomet fetch climate-hourly --limit 5
  geomet fetch hydrometric-daily-mean --properties STATION_NUMBER=02HA003 --limit 10
  geomet fetch climate-daily --bbox -80,43,-70,47 --datetime 2023-01-01/2023-01-31 --limit 20
  geomet fetch climate-hourly --limit 10 --json
  geomet fetch climate-hourly --all-pages --max-items 100`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			collectionID := args[0]

			client, _, err := newClient()
			if err != nil {
				return err
			}
			spec, err := ff.spec()
			if err != nil {
				return err
			}
			fieldList := splitFields(fields)
			spec.Fields = fieldList

			var features []geomet.Feature
			if allPages {
				res, err := client.FetchAll(cmd.Context(), collectionID, spec, maxItems)
				if err != nil {
					return err
				}
				features = res.Features
				fmt.Fprintf(cmd.ErrOrStderr(), "Total items fetched: %d\n", len(features))
			} else {
				page, err := client.FetchPage(cmd.Context(), collectionID, spec)
				if err != nil {
					return err
				}
				features = page.Features
				matched := "unknown"
				if page.NumberMatched != nil {
					matched = fmt.Sprintf("%d", *page.NumberMatched)
				}
				fmt.Fprintf(cmd.ErrOrStderr(), "Matched: %s | Returned: %d\n", matched, page.NumberReturned)
			}

			if jsonOut {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				enc.SetEscapeHTML(false)
				return enc.Encode(features)
			}
			render.FeatureTable(cmd.OutOrStdout(), features, fieldList)
			return nil
		},
	}

	ff.register(cmd, 10)
	cmd.Flags().StringVar(&fields, "fields", "", "comma-separated list of fields to return and display")
	cmd.Flags().BoolVar(&jsonOut, "json", false, "output raw JSON instead of a table")
	cmd.Flags().BoolVar(&allPages, "all-pages", false, "fetch all pages of results")
	cmd.Flags().IntVar(&maxItems, "max-items", 500, "max total items with --all-pages")
	return cmd
}
