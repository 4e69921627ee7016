package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/philipparndt/printplate/internal/config"
	"github.com/philipparndt/printplate/version"
	"github.com/spf13/cobra"
)

var configPath string

var rootCmd = &cobra.Command{
	Use:   "printplate",
	Short: "Estimate print time and cost for STL models on a build plate",
	Long: `printplate imports STL models onto a virtual build plate, keeps them
inside the printer's build volume and estimates layers, print time and cost
for every model.`,
	Version: version.GetVersion(),
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", config.DefaultPath(), "configuration file")
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		stop()
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// loadConfig reads the configuration selected by --config or exits
func loadConfig() config.Config {
	cfg, err := config.Load(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading configuration: %v\n", err)
		os.Exit(1)
	}
	return cfg
}
