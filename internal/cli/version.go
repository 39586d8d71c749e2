package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/trackers/pkg/trackers"
)

const modulePath = "github.com/mesh-intelligence/trackers"

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the trackers version",
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintf(cmd.OutOrStdout(), "trackers v%s\nmodule: %s\n", trackers.Version, modulePath)
			return nil
		},
	}
}
