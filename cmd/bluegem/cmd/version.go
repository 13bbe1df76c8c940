package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/donaldgifford/bluegem/pkg/bluegem"
)

// Version is set at build time via ldflags.
var Version = "dev"

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "bluegem %s (client %s)\n", Version, bluegem.Version)
		},
	}
}
