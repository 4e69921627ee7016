package main

import (
	"fmt"
	"os"

	"github.com/philipparndt/printplate/internal/plate"
	"github.com/spf13/cobra"
)

var estimateScale float64

var estimateCmd = &cobra.Command{
	Use:   "estimate [file...]",
	Short: "Estimate layers, print time and cost of STL files",
	Long:  "Import each file on its own and print its dimensions, layer count, print time and cost.",
	Args:  cobra.MinimumNArgs(1),
	Run:   runEstimate,
}

func init() {
	estimateCmd.Flags().Float64Var(&estimateScale, "scale", 100, "scale in percent applied to every file")
	rootCmd.AddCommand(estimateCmd)
}

func runEstimate(cmd *cobra.Command, args []string) {
	reg, err := plate.New(loadConfig())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	imported := importFiles(cmd.Context(), reg, args)
	if len(imported) == 0 {
		os.Exit(1)
	}

	for _, id := range reg.IDs() {
		if estimateScale != 100 {
			if err := reg.SetScale(id, estimateScale); err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
				os.Exit(1)
			}
		}
		card, err := reg.Card(id)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("File: %s\n", imported[id])
		printCard(reg, card)
		fmt.Println()
	}

	if len(imported) != len(args) {
		os.Exit(1)
	}
}
