package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var colorsCmd = &cobra.Command{
	Use:   "colors",
	Short: "List the colours a model can take",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		cfg := loadConfig()
		for _, swatch := range cfg.Palette {
			marker := " "
			if swatch.Name == cfg.DefaultColor {
				marker = "*"
			}
			fmt.Printf("%s %-10s %s\n", marker, swatch.Name, swatch.Hex)
		}
	},
}

func init() {
	rootCmd.AddCommand(colorsCmd)
}
