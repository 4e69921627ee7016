package main

import (
	"fmt"
	"os"

	"github.com/philipparndt/printplate/internal/plate"
	"github.com/philipparndt/printplate/pkg/analysis"
	"github.com/spf13/cobra"
)

var infoCmd = &cobra.Command{
	Use:   "info [file]",
	Short: "Display general information about an STL or OpenSCAD file",
	Long:  "Show triangle count, bounding box, surface area, enclosed volume and edge statistics.",
	Args:  cobra.ExactArgs(1),
	Run:   runInfo,
}

func init() {
	rootCmd.AddCommand(infoCmd)
}

func runInfo(cmd *cobra.Command, args []string) {
	filename := args[0]

	model, err := plate.Decode(cmd.Context(), filename)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading %s: %v\n", filename, err)
		os.Exit(1)
	}

	s, err := analysis.Analyze(model)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error analyzing %s: %v\n", filename, err)
		os.Exit(1)
	}
	bbox := model.BoundingBox()

	fmt.Println("STL File Information")
	fmt.Println("====================")
	fmt.Printf("Name: %s\n", model.Name)
	fmt.Printf("File: %s\n\n", filename)

	fmt.Println("Model Statistics:")
	fmt.Printf("  Triangles: %d\n", s.Triangles)
	if s.Degenerate > 0 {
		fmt.Printf("  Degenerate: %d\n", s.Degenerate)
	}
	fmt.Printf("  Surface Area: %.2f mm²\n", s.SurfaceArea)
	fmt.Printf("  Volume: %.2f mm³\n\n", s.Volume)

	fmt.Println("Bounding Box:")
	fmt.Printf("  Min: %s\n", analysis.FormatVector(bbox.Min))
	fmt.Printf("  Max: %s\n", analysis.FormatVector(bbox.Max))
	fmt.Printf("  Size: %.2f x %.2f x %.2f mm\n\n", s.Extents.Length, s.Extents.Width, s.Extents.Height)

	fmt.Println("Edge Lengths:")
	fmt.Printf("  Minimum: %.3f mm\n", s.MinEdgeLength)
	fmt.Printf("  Maximum: %.3f mm\n", s.MaxEdgeLength)
	fmt.Printf("  Average: %.3f mm\n", s.AvgEdgeLength)
}
