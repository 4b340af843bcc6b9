package main

import (
	"github.com/spf13/cobra"

	"github.com/praaatap/gdit.site/internal/cli"
)

var tryCmd = &cobra.Command{
	Use:     "try",
	Aliases: []string{"run"},
	Short:   "Open the interactive demo terminal",
	Long:    `Starts the interactive prompt. Type a gdit command, "help" for the list, "clear" to wipe the screen.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		opts := baseOptions(cmd)
		opts.JSON, _ = cmd.Flags().GetBool("json")
		opts.Plain, _ = cmd.Flags().GetBool("plain")
		opts.Headless, _ = cmd.Flags().GetBool("headless")
		return cli.RunTry(cmd.Context(), opts)
	},
}

func init() {
	rootCmd.AddCommand(tryCmd)

	tryCmd.Flags().Bool("json", false, "Run in JSON mode (NDJSON input/output)")
	tryCmd.Flags().Bool("plain", false, "Line-oriented text mode without colours")
	tryCmd.Flags().Bool("headless", false, "Run in headless mode (no banner or hints)")
}
