package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/vhoang/geotutor/internal/api"
)

var pingCmd = &cobra.Command{
	Use:   "ping",
	Short: "Check that the tutor backend is reachable",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := resolveConfig(cmd)
		if err != nil {
			return err
		}

		client := api.NewHTTPClient(cfg)
		ctx, cancel := context.WithTimeout(cmd.Context(), 10*time.Second)
		defer cancel()

		start := time.Now()
		if err := client.Health(ctx); err != nil {
			return fmt.Errorf("backend at %s is not healthy: %w", cfg.BaseURL, err)
		}
		fmt.Printf("%s is up (%s)\n", cfg.BaseURL, time.Since(start).Round(time.Millisecond))
		return nil
	},
}
