package cmd

import (
	"github.com/spf13/cobra"

	"github.com/vhoang/geotutor/internal/api"
	"github.com/vhoang/geotutor/internal/store"
)

var rootCmd = &cobra.Command{
	Use:   "geotutor",
	Short: "AI geometry tutor in your terminal",
	Long:  "GeoTutor — chat with an AI tutor that walks you through geometry problems step by step.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runTutor(cmd)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("server", "", "Tutor backend base URL (overrides GEOTUTOR_SERVER)")
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides GEOTUTOR_DB)")
	rootCmd.PersistentFlags().String("log-level", "info", "Log level: trace, debug, info, warn, error, silent")
	rootCmd.PersistentFlags().Bool("no-history", false, "Disable the local activity database")

	rootCmd.Flags().String("file", "", "Read the problem statement from a file")
	tutorCmd.Flags().String("file", "", "Read the problem statement from a file")

	rootCmd.AddCommand(tutorCmd)
	rootCmd.AddCommand(pingCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(versionCmd)
}

// resolveConfig builds the backend config from env, then applies the
// --server flag on top.
func resolveConfig(cmd *cobra.Command) (api.Config, error) {
	cfg := api.ConfigFromEnv()
	if s, _ := cmd.Flags().GetString("server"); s != "" {
		cfg.BaseURL = s
	}
	if err := cfg.Validate(); err != nil {
		return api.Config{}, err
	}
	return cfg, nil
}

// resolveDBPath returns the database path using --db flag (highest
// priority), then GEOTUTOR_DB env var, then the default XDG path.
func resolveDBPath(cmd *cobra.Command) (string, error) {
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		return p, nil
	}
	return store.DefaultDBPath()
}
