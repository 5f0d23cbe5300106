package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/geomet-tools/geomet-catalog/internal/version"
)

// NewVersionCommand builds `geomet version`.
func NewVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the geomet version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "geomet %s (%s)\n", version.Version, version.Commit)
		},
	}
}
