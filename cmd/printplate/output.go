package main

import (
	"context"
	"fmt"
	"os"
	"runtime"
	"strings"

	"github.com/philipparndt/printplate/internal/plate"
)

var axisNames = [3]string{"length", "width", "height"}

func printCard(reg *plate.Registry, card plate.Card) {
	fmt.Println(card.String())
	fmt.Printf("  Cost: %s\n", reg.FormatCost(card.Cost))

	if !card.Fits() {
		var axes []string
		for i, over := range card.Oversize {
			if over {
				axes = append(axes, axisNames[i])
			}
		}
		fmt.Printf("  Warning: %s exceeds the build volume of %.0f mm\n",
			strings.Join(axes, ", "), reg.Config().BuildVolume)
	}
}

func printPlate(reg *plate.Registry) {
	for _, card := range reg.Cards() {
		printCard(reg, card)
		fmt.Println()
	}

	totals := reg.Totals()
	fmt.Println("Totals")
	fmt.Println("======")
	fmt.Printf("  Models: %d\n", totals.Models)
	fmt.Printf("  Time: %d min\n", totals.Minutes)
	fmt.Printf("  Cost: %s\n", reg.FormatCost(totals.Cost))
}

// importFiles decodes and imports the files in order. Files that fail are
// reported and skipped. It returns the path of every imported id.
func importFiles(ctx context.Context, reg *plate.Registry, paths []string) map[int]string {
	imported := make(map[int]string)
	for _, res := range reg.ImportAll(plate.LoadFiles(ctx, paths, runtime.NumCPU())) {
		if res.Err != nil {
			fmt.Fprintf(os.Stderr, "Error importing %s: %v\n", res.Path, res.Err)
			continue
		}
		imported[res.ID] = res.Path
	}
	return imported
}
