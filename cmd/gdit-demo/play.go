package main

import (
	"github.com/spf13/cobra"

	"github.com/praaatap/gdit.site/internal/cli"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play the autoplay animation",
	Long: `Types the landing-page script command by command. On a terminal the cursor
keeps blinking after the last line until a key is pressed.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		opts := baseOptions(cmd)
		opts.Script, _ = cmd.Flags().GetString("script")
		opts.Seed, _ = cmd.Flags().GetUint64("seed")
		opts.Plain, _ = cmd.Flags().GetBool("plain")
		opts.JSON, _ = cmd.Flags().GetBool("json")
		opts.ExitWhenDone, _ = cmd.Flags().GetBool("exit")
		return cli.RunPlay(cmd.Context(), opts)
	},
}

func init() {
	rootCmd.AddCommand(playCmd)

	playCmd.Flags().String("script", "", "Autoplay script file (YAML)")
	playCmd.Flags().Uint64("seed", 0, "Seed for the typing jitter (0 picks one)")
	playCmd.Flags().Bool("plain", false, "Plain text output without colours or animation")
	playCmd.Flags().Bool("json", false, "Emit JSON lines instead of text")
	playCmd.Flags().Bool("exit", false, "Quit when the script ends instead of blinking")

	// 'play' is what the landing page shows first.
	rootCmd.RunE = playCmd.RunE
	rootCmd.Flags().AddFlagSet(playCmd.Flags())
}
