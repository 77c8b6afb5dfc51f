package cmd

import (
	"fmt"
	"strings"

	"github.com/rahulnair/neuroplay/internal/levels"
	"github.com/rahulnair/neuroplay/internal/storage"
	"github.com/spf13/cobra"
)

var resetCmd = &cobra.Command{
	Use:   "reset [game]",
	Short: "Erase progress for one game, or all games",
	Long:  "Remove progress, sessions and statistics. Robux are kept. With no argument every game is reset.",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		deps, cleanup, err := buildDeps(cmd)
		if err != nil {
			return err
		}
		defer cleanup()

		yes, _ := cmd.Flags().GetBool("yes")
		if !yes {
			return fmt.Errorf("refusing to erase data without --yes")
		}

		names := levels.Names()
		if len(args) > 0 {
			name := strings.ToLower(args[0])
			if levels.ByName(name) == nil {
				return fmt.Errorf("unknown game %q (have: %v)", name, names)
			}
			names = []string{name}
		}

		for _, name := range names {
			storage.ResetProgress(deps.KV, name)
			fmt.Fprintf(cmd.OutOrStdout(), "reset %s\n", name)
		}
		return nil
	},
}

func init() {
	resetCmd.Flags().Bool("yes", false, "Confirm erasing saved data")
}
