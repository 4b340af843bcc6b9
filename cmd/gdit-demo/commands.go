package main

import (
	"github.com/spf13/cobra"

	"github.com/praaatap/gdit.site/internal/cli"
)

var commandsCmd = &cobra.Command{
	Use:   "commands",
	Short: "List the commands the demo terminal recognises",
	RunE: func(cmd *cobra.Command, args []string) error {
		opts := baseOptions(cmd)
		opts.JSON, _ = cmd.Flags().GetBool("json")
		opts.Plain, _ = cmd.Flags().GetBool("plain")
		return cli.RunCommands(cmd.Context(), opts)
	},
}

func init() {
	rootCmd.AddCommand(commandsCmd)
	commandsCmd.Flags().Bool("json", false, "Print the catalog as JSON")
	commandsCmd.Flags().Bool("plain", false, "Print raw markdown")
}
