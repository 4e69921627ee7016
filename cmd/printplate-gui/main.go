package main

import (
	"fmt"
	"os"

	"github.com/philipparndt/printplate/internal/config"
	"github.com/philipparndt/printplate/internal/gui"
	"github.com/philipparndt/printplate/internal/plate"
	"github.com/philipparndt/printplate/version"
	"github.com/spf13/cobra"
)

var configPath string

var rootCmd = &cobra.Command{
	Use:     "printplate-gui [file...]",
	Short:   "Build plate cost calculator",
	Long:    `printplate-gui lists the models on the build plate with their print time and cost, shows a preview of the plate and exports quotes.`,
	Version: version.GetVersion(),
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := config.Load(configPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading configuration: %v\n", err)
			os.Exit(1)
		}

		reg, err := plate.New(cfg)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

		gui.New(reg).Run(args)
	},
}

func main() {
	rootCmd.Flags().StringVar(&configPath, "config", config.DefaultPath(), "configuration file")

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
