// Copyright (C) 2026 Sonorous Guardian
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package main

import (
	"log"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// Config holds the CLI configuration loaded from the optional
// ~/.riskdash/config.yaml file. Flags override file values.
type Config struct {
	// ServerURL is the base URL of the dashboard service.
	ServerURL string `yaml:"server_url"`
}

var config = Config{
	ServerURL: "http://localhost:12400",
}

var serverFlag string

var rootCmd = &cobra.Command{
	Use:   "riskdash",
	Short: "Client for the risk register dashboard service",
	Long: `riskdash talks to a running risk dashboard service.

It reads the server URL from ~/.riskdash/config.yaml (key: server_url),
overridable with --server. The default is http://localhost:12400.

Examples:
  riskdash stats                     # Dashboard KPIs
  riskdash risks --status Open       # Filtered register table
  riskdash sync                      # Re-ingest the register CSV
  riskdash sync --sheets             # Pull from Google Sheets
  riskdash toggle RISK-001           # Flip a risk's mitigation flag`,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&serverFlag, "server", "",
		"Dashboard service base URL (overrides config file)")

	rootCmd.PersistentPreRun = func(cmd *cobra.Command, args []string) {
		loadConfig()
		if serverFlag != "" {
			config.ServerURL = serverFlag
		}
	}

	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(risksCmd)
	rootCmd.AddCommand(syncCmd)
	rootCmd.AddCommand(toggleCmd)
}

// loadConfig reads the optional config file. A missing file is fine;
// a malformed one is fatal so a typo doesn't silently fall back.
func loadConfig() {
	home, err := os.UserHomeDir()
	if err != nil {
		return
	}
	configPath := filepath.Join(home, ".riskdash", "config.yaml")
	yamlFile, err := os.ReadFile(configPath)
	if err != nil {
		return
	}
	if err := yaml.Unmarshal(yamlFile, &config); err != nil {
		log.Fatalf("Error parsing %s: %v", configPath, err)
	}
}
