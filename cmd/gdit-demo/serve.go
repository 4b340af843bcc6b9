package main

import (
	"github.com/spf13/cobra"

	"github.com/praaatap/gdit.site/internal/cli"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP backend of the terminal widget",
	Long: `Serves demo sessions over a JSON API with a Server-Sent Events transcript stream,
plus /catalog, /openapi.yaml, /metrics and /healthz.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		opts := baseOptions(cmd)
		opts.Addr, _ = cmd.Flags().GetString("addr")
		return cli.RunServe(cmd.Context(), opts)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringP("addr", "a", "", "Address to listen on (default :8080)")
}
