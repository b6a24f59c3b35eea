package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/vhoang/geotutor/internal/api"
	"github.com/vhoang/geotutor/internal/app"
	"github.com/vhoang/geotutor/internal/logging"
	"github.com/vhoang/geotutor/internal/store"
)

var tutorCmd = &cobra.Command{
	Use:   "tutor",
	Short: "Start a tutoring session",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runTutor(cmd)
	},
}

// runTutor opens the store, builds dependencies, and launches the TUI.
func runTutor(cmd *cobra.Command) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	var activity store.ActivityRepo
	var logDir string
	noHistory, _ := cmd.Flags().GetBool("no-history")
	if !noHistory {
		dbPath, err := resolveDBPath(cmd)
		if err != nil {
			return fmt.Errorf("resolve DB path: %w", err)
		}
		st, err := store.Open(dbPath)
		if err != nil {
			return fmt.Errorf("open store: %w", err)
		}
		defer st.Close()
		activity = st.ActivityRepo()
		logDir = filepath.Dir(dbPath)
	}

	// The TUI owns the terminal, so logs go to a file.
	level, _ := cmd.Flags().GetString("log-level")
	var log *logging.Logger
	if logDir != "" {
		log, err = logging.NewFile(filepath.Join(logDir, "geotutor.log"), level)
		if err != nil {
			fmt.Fprintln(os.Stderr, "Logging disabled:", err)
			log = logging.Nop()
		}
	} else {
		log = logging.Nop()
	}
	defer log.Close()

	client := api.WithLogging(api.NewHTTPClient(cfg), log, activity)

	var problem string
	if file, _ := cmd.Flags().GetString("file"); file != "" {
		raw, err := os.ReadFile(file)
		if err != nil {
			return fmt.Errorf("read problem file: %w", err)
		}
		problem = string(raw)
	}

	return app.Run(app.Options{
		Client:   client,
		Activity: activity,
		Logger:   log,
		Problem:  problem,
	})
}
