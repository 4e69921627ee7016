package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"runtime"

	"github.com/philipparndt/printplate/internal/config"
	"github.com/philipparndt/printplate/internal/plate"
	"github.com/philipparndt/printplate/internal/viewer"
	"github.com/philipparndt/printplate/version"
	"github.com/spf13/cobra"
)

func init() {
	// raylib must run on the main thread
	runtime.LockOSThread()
}

var configPath string

var rootCmd = &cobra.Command{
	Use:     "printplate-view [file...]",
	Short:   "3D build plate viewer",
	Long:    `printplate-view shows STL and OpenSCAD models on the build plate. Drag models to arrange them and drop files on the window to add more.`,
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

		if err := viewer.New(reg).Run(cmd.Context(), args); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	},
}

func main() {
	rootCmd.Flags().StringVar(&configPath, "config", config.DefaultPath(), "configuration file")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		stop()
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
