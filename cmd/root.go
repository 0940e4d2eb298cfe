package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/portscout/portscout/internal/config"
)

var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "portscout",
	Short: "Scooter port location scoring from OpenStreetMap data",
	Long:  "Resolves addresses, coordinates, and Google Maps links to a location, then scores its visibility and demand from nearby stations, road class, and intersections.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		c, err := config.Load()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		cfg = c

		if err := config.InitLogger(cfg.Log); err != nil {
			return fmt.Errorf("init logger: %w", err)
		}

		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = zap.L().Sync()
	},
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
