package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/praaatap/gdit.site"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of gdit-demo",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "gdit-demo version %s\n", strings.TrimSpace(gdit.Version))
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
