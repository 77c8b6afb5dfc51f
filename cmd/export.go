package cmd

import (
	"fmt"
	"os"

	"github.com/rahulnair/neuroplay/internal/export"
	"github.com/rahulnair/neuroplay/internal/levels"
	"github.com/rahulnair/neuroplay/internal/sessionclock"
	"github.com/spf13/cobra"
)

var exportCmd = &cobra.Command{
	Use:   "export [file]",
	Short: "Write all game data to a JSON archive",
	Long:  "Export settings, progress, sessions, statistics and the robux balance to a JSON file, or to stdout with no argument.",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		deps, cleanup, err := buildDeps(cmd)
		if err != nil {
			return err
		}
		defer cleanup()

		arc := export.Export(deps.KV, levels.Names(), sessionclock.SystemSource{})
		data, err := export.Marshal(arc)
		if err != nil {
			return fmt.Errorf("marshal archive: %w", err)
		}

		if len(args) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), string(data))
			return nil
		}
		if err := os.WriteFile(args[0], data, 0o644); err != nil {
			return fmt.Errorf("write archive: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "exported to %s\n", args[0])
		return nil
	},
}

var importCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Restore game data from a JSON archive",
	Long:  "Validate an archive produced by export and load it into the store, replacing current data for the games it contains.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("read archive: %w", err)
		}

		deps, cleanup, err := buildDeps(cmd)
		if err != nil {
			return err
		}
		defer cleanup()

		arc, err := export.Import(deps.KV, data)
		if err != nil {
			return fmt.Errorf("import archive: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "imported %d game(s) exported at %s\n",
			len(arc.Games), arc.ExportedAt.Format("2006-01-02 15:04"))
		return nil
	},
}
