package cmd

import (
	"strings"

	"github.com/spf13/cobra"
)

var playCmd = &cobra.Command{
	Use:   "play [game]",
	Short: "Jump straight into a game",
	Long:  "Open a game directly, skipping the menu. Games: clockwise, multiply, divide, timeofday.",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		game := ""
		if len(args) > 0 {
			game = strings.ToLower(args[0])
		}
		return runApp(cmd, game)
	},
}
