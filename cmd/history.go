package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vhoang/geotutor/internal/store"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recent sessions and backend request stats",
	RunE: func(cmd *cobra.Command, args []string) error {
		dbPath, err := resolveDBPath(cmd)
		if err != nil {
			return fmt.Errorf("resolve DB path: %w", err)
		}
		st, err := store.Open(dbPath)
		if err != nil {
			return fmt.Errorf("open store: %w", err)
		}
		defer st.Close()

		repo := st.ActivityRepo()
		ctx := cmd.Context()

		sessions, err := repo.RecentSessions(ctx, 10)
		if err != nil {
			return fmt.Errorf("load sessions: %w", err)
		}

		fmt.Println("Recent sessions")
		if len(sessions) == 0 {
			fmt.Println("  (none)")
		}
		for _, s := range sessions {
			problem := strings.ReplaceAll(s.Problem, "\n", " ")
			fmt.Printf("  %s  %s\n", s.CreatedAt.Format("2006-01-02 15:04"), truncate(problem, 60))
		}

		stats, err := repo.RequestStats(ctx)
		if err != nil {
			return fmt.Errorf("load stats: %w", err)
		}

		fmt.Println()
		fmt.Println("Backend requests")
		if len(stats) == 0 {
			fmt.Println("  (none)")
		}
		for _, op := range stats {
			fmt.Printf("  %-14s %5d calls  %3d failed  avg %.0fms\n",
				op.Operation, op.Count, op.Failures, op.AvgLatencyMs)
		}
		return nil
	},
}

// truncate shortens s to at most max runes, not bytes, so multi-byte
// text (problem statements are often Vietnamese) is never cut
// mid-character.
func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max-3]) + "..."
}
