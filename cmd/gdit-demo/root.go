package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/praaatap/gdit.site/internal/cli"
)

var rootCmd = &cobra.Command{
	Use:   "gdit-demo",
	Short: "Terminal simulation of the gdit CLI",
	Long: `gdit-demo replays the gdit landing-page terminal: an autoplay animation
and an interactive prompt that answers a fixed set of commands. Nothing is executed.`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func init() {
	// Persistent flags (available to all commands)
	rootCmd.PersistentFlags().String("config", "", "Path to a YAML config file")
	rootCmd.PersistentFlags().Bool("debug", false, "Enable debug logging")
	rootCmd.PersistentFlags().String("log-level", "", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().String("catalog", "", "Command catalog file (YAML or JSON)")
	rootCmd.PersistentFlags().Float64("speed", 0, "Playback speed multiplier")
}

// baseOptions collects the persistent flags. Unchanged flags stay zero so the
// config file keeps its say.
func baseOptions(cmd *cobra.Command) cli.RunOptions {
	var opts cli.RunOptions
	opts.ConfigPath, _ = cmd.Flags().GetString("config")
	opts.Debug, _ = cmd.Flags().GetBool("debug")
	opts.LogLevel, _ = cmd.Flags().GetString("log-level")
	opts.Catalog, _ = cmd.Flags().GetString("catalog")
	opts.Speed, _ = cmd.Flags().GetFloat64("speed")
	return opts
}
