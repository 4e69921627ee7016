package main

import (
	"fmt"
	"os"

	"github.com/philipparndt/printplate/internal/config"
	"github.com/philipparndt/printplate/pkg/estimate"
	"github.com/spf13/cobra"
)

var forceInit bool

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage the configuration file",
}

var configInitCmd = &cobra.Command{
	Use:   "init [path]",
	Short: "Write the default configuration",
	Long:  "Write the default configuration to path, or to the --config location when no path is given.",
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		path := configPath
		if len(args) == 1 {
			path = args[0]
		}

		if _, err := os.Stat(path); err == nil && !forceInit {
			fmt.Fprintf(os.Stderr, "Error: %s already exists, use --force to overwrite\n", path)
			os.Exit(1)
		}

		if err := config.Save(path, config.Default()); err != nil {
			fmt.Fprintf(os.Stderr, "Error writing configuration: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Configuration written to %s\n", path)
	},
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective configuration",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		cfg := loadConfig()
		fmt.Printf("File: %s\n", configPath)
		fmt.Printf("  Layer height: %.2f mm\n", cfg.LayerHeight)
		fmt.Printf("  Infill: %.0f%%\n", cfg.Infill*100)
		fmt.Printf("  Time per area: %.3f min/mm²\n", cfg.TimePerArea)
		fmt.Printf("  Build volume: %.0f mm\n", cfg.BuildVolume)
		fmt.Printf("  Rate: %s per started 15 min\n", estimate.FormatCost(cfg.Currency, cfg.HourlyRate))
		fmt.Printf("  Colours: %d\n", len(cfg.Palette))
	},
}

func init() {
	configInitCmd.Flags().BoolVar(&forceInit, "force", false, "overwrite an existing file")
	configCmd.AddCommand(configInitCmd, configShowCmd)
	rootCmd.AddCommand(configCmd)
}
