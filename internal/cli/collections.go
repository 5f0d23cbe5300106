package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/geomet-tools/geomet-catalog/internal/geomet"
	"github.com/geomet-tools/geomet-catalog/internal/render"
)

// NewCollectionsCommand builds `geomet collections`.
func NewCollectionsCommand() *cobra.Command {
	var (
		list       bool
		search     string
		info       string
		queryables string
		categories bool
	)

	cmd := &cobra.Command{
		Use:   "collections",
		Short: "Discover collections available on the GeoMet OGC API",
		Example: `  geomet collections --list
  geomet collections --search hydrometric
  geomet collections --info climate-daily
  geomet collections --queryables climate-daily
  geomet collections --categories`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			client, _, err := newClient()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()

			switch {
			case info != "":
				c, err := client.GetCollection(cmd.Context(), info)
				if err != nil {
					return err
				}
				render.CollectionInfo(out, c)
			case queryables != "":
				q, err := client.Queryables(cmd.Context(), queryables)
				if err != nil {
					return err
				}
				render.QueryablesTable(out, queryables, q)
			case search != "":
				all, err := client.ListCollections(cmd.Context())
				if err != nil {
					return err
				}
				var matched []geomet.Collection
				for _, c := range all {
					if render.MatchesCollection(c, search) {
						matched = append(matched, c)
					}
				}
				if len(matched) == 0 {
					fmt.Fprintf(out, "No collections matching %q\n", search)
					return nil
				}
				render.CollectionList(out, matched)
			case categories:
				all, err := client.ListCollections(cmd.Context())
				if err != nil {
					return err
				}
				render.Categories(out, all)
			case list:
				all, err := client.ListCollections(cmd.Context())
				if err != nil {
					return err
				}
				render.CollectionList(out, all)
			default:
				return fmt.Errorf("one of --list, --search, --info, --queryables or --categories is required")
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&list, "list", false, "list all collections")
	cmd.Flags().StringVar(&search, "search", "", "search collections by keyword")
	cmd.Flags().StringVar(&info, "info", "", "show details for a collection")
	cmd.Flags().StringVar(&queryables, "queryables", "", "show filterable properties of a collection")
	cmd.Flags().BoolVar(&categories, "categories", false, "group collections by id prefix")
	cmd.MarkFlagsMutuallyExclusive("list", "search", "info", "queryables", "categories")

	return cmd
}
