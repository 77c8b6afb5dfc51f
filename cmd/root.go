package cmd

import (
	"github.com/rahulnair/neuroplay/internal/storage"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "neuroplay",
	Short: "Brain-training mini games for kids",
	Long:  "NeuroPlay — terminal mini-game suite for clock reading, multiplication, division and time-of-day vocabulary, with adaptive difficulty and a shared session clock.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd, "")
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides NEUROPLAY_DB env var)")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(importCmd)
	rootCmd.AddCommand(versionCmd)
}

// resolveDBPath returns the database path using --db flag (highest
// priority), then NEUROPLAY_DB env var, then the default XDG path.
func resolveDBPath(cmd *cobra.Command, envPath string) (string, error) {
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		return p, storage.EnsureDir(p)
	}
	if envPath != "" {
		return envPath, storage.EnsureDir(envPath)
	}
	return storage.DefaultDBPath()
}
