package main

import (
	"fmt"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/kalambet/ecoquest/internal/config"
)

// --- config ---

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show or update configuration",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}

		keys := config.ShowAll(cfg)
		for _, k := range keys {
			fmt.Printf("  %s = %s\n", colorize(colorBold, k.Key), k.Value)
		}
		return nil
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a configuration value",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		key, value := args[0], args[1]

		if err := config.SetKey(key, value); err != nil {
			return err
		}

		printSuccess("Set %s = %s", key, value)
		return nil
	},
}

func init() {
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetCmd)
}

// --- status ---

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show EcoQuest system status",
	RunE: func(cmd *cobra.Command, args []string) error {
		return showStatus()
	},
}

func showStatus() error {
	cfg, err := config.Load()
	if err != nil {
		printError("config error: %v", err)
		return nil
	}

	client := &http.Client{Timeout: 2 * time.Second}

	resp, err := client.Get(cfg.API.BaseURL + "/health")
	if err != nil {
		printStatus("Backend", "not reachable at %s", cfg.API.BaseURL)
	} else {
		resp.Body.Close()
		if resp.StatusCode == 200 {
			printStatus("Backend", "healthy at %s", cfg.API.BaseURL)
		} else {
			printStatus("Backend", "error (HTTP %d)", resp.StatusCode)
		}
	}

	if cfg.Location.Enabled {
		printStatus("Location", "enabled (%.2f, %.2f)", cfg.Location.Lat, cfg.Location.Lon)
		printStatus("Geocoder", "%s", cfg.Geocoder.BaseURL)
	} else {
		printStatus("Location", "disabled")
	}

	printStatus("API timeout", "%s", cfg.API.TimeoutDuration())
	printStatus("Mock port", "%d", cfg.Mock.Port)
	return nil
}
