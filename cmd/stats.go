package cmd

import (
	"fmt"
	"time"

	"github.com/rahulnair/neuroplay/internal/adaptive"
	"github.com/rahulnair/neuroplay/internal/levels"
	"github.com/rahulnair/neuroplay/internal/sessionclock"
	"github.com/rahulnair/neuroplay/internal/storage"
	"github.com/spf13/cobra"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Print a progress report for every game",
	RunE: func(cmd *cobra.Command, args []string) error {
		deps, cleanup, err := buildDeps(cmd)
		if err != nil {
			return err
		}
		defer cleanup()

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Robux balance: %d\n\n", storage.GetRobuxCount(deps.KV))

		for _, g := range levels.All() {
			name := g.Name()
			progress := storage.GetProgress(deps.KV, name)
			sessions := storage.GetSessions(deps.KV, name)
			weak := storage.WeakAreas(deps.KV, name)
			report := adaptive.GenerateProgressReport(progress, sessions, weak)

			fmt.Fprintf(out, "%s\n", g.Title())
			fmt.Fprintf(out, "  level %d/%d, accuracy %d%%, %d sessions, %s played, trend %s\n",
				report.CurrentLevel, g.MaxLevel(),
				report.OverallAccuracy, report.SessionsCompleted,
				sessionclock.FormatElapsed(time.Duration(report.TotalPlayTime)*time.Second),
				report.Trend)

			for _, a := range report.AreasForImprovement {
				fmt.Fprintf(out, "  needs practice: level %d (%d%%)\n", a.Level, a.Accuracy)
			}
			for _, d := range report.SpecificDifficulties {
				fmt.Fprintf(out, "  tricky: %s at level %d (missed %d%%)\n", d.Shape, d.Level, d.ErrorRate)
			}
			fmt.Fprintln(out)
		}
		return nil
	},
}
