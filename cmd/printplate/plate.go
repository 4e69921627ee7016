package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/philipparndt/printplate/internal/plate"
	"github.com/philipparndt/printplate/internal/report"
	"github.com/philipparndt/printplate/pkg/openscad"
	"github.com/philipparndt/printplate/pkg/watcher"
	"github.com/spf13/cobra"
)

var (
	plateEdits edits
	pdfPath    string
	xlsxPath   string
	watchFiles bool
)

var plateCmd = &cobra.Command{
	Use:   "plate [file...]",
	Short: "Place several STL files on one build plate",
	Long: `Import all files onto one plate in the given order (ids start at 1),
apply the requested edits and print a card per model plus the plate totals.

Edits run in the order scale, move, colour, remove:
  printplate plate a.stl b.stl --scale 1=50 --move 2=30,-20 --color 1=blue --remove 2`,
	Args: cobra.MinimumNArgs(1),
	Run:  runPlate,
}

func init() {
	plateCmd.Flags().StringArrayVar(&plateEdits.scales, "scale", nil, "scale a model, id=percent")
	plateCmd.Flags().StringArrayVar(&plateEdits.moves, "move", nil, "move a model, id=x,y in mm")
	plateCmd.Flags().StringArrayVar(&plateEdits.colors, "color", nil, "recolour a model, id=name")
	plateCmd.Flags().IntSliceVar(&plateEdits.removes, "remove", nil, "remove models by id")
	plateCmd.Flags().StringVar(&pdfPath, "pdf", "", "write a PDF quote")
	plateCmd.Flags().StringVar(&xlsxPath, "xlsx", "", "write an XLSX quote")
	plateCmd.Flags().BoolVarP(&watchFiles, "watch", "w", false, "reload models when their files change")
	rootCmd.AddCommand(plateCmd)
}

func runPlate(cmd *cobra.Command, args []string) {
	reg, err := plate.New(loadConfig())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	imported := importFiles(cmd.Context(), reg, args)
	if err := plateEdits.apply(reg); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	printPlate(reg)
	if err := exportReports(reg); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if watchFiles {
		if err := watchPlate(cmd.Context(), reg, imported); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	}
}

func exportReports(reg *plate.Registry) error {
	if pdfPath == "" && xlsxPath == "" {
		return nil
	}

	quote := report.NewQuote(reg.Cards(), reg.Config())
	if pdfPath != "" {
		preview, err := report.PlatePreview(reg.Entries(), reg.Config())
		if err != nil {
			return fmt.Errorf("failed to render plate preview: %w", err)
		}
		quote.Preview = preview
		if err := report.ExportPDF(pdfPath, quote, reg.Config().Palette); err != nil {
			return fmt.Errorf("failed to export PDF: %w", err)
		}
		fmt.Printf("Quote %s written to %s\n", quote.ID, pdfPath)
	}
	if xlsxPath != "" {
		if err := report.ExportXLSX(xlsxPath, quote); err != nil {
			return fmt.Errorf("failed to export XLSX: %w", err)
		}
		fmt.Printf("Quote %s written to %s\n", quote.ID, xlsxPath)
	}
	return nil
}

// watchTarget is a model to reload when a watched file changes
type watchTarget struct {
	id     int
	source string
}

// watchPlate reloads models whose files change until ctx is cancelled.
// OpenSCAD models are also reloaded when a used or included file changes.
func watchPlate(ctx context.Context, reg *plate.Registry, imported map[int]string) error {
	w, err := watcher.New(300 * time.Millisecond)
	if err != nil {
		return err
	}
	defer w.Close()

	targets := make(map[string][]watchTarget)
	for _, id := range reg.IDs() {
		source, ok := imported[id]
		if !ok {
			continue
		}

		files := []string{source}
		if openscad.IsSource(source) {
			if files, err = openscad.Dependencies(source); err != nil {
				return err
			}
		}
		for _, f := range files {
			abs, err := filepath.Abs(f)
			if err != nil {
				return fmt.Errorf("failed to resolve path %s: %w", f, err)
			}
			if err := w.Add(abs); err != nil {
				return err
			}
			targets[abs] = append(targets[abs], watchTarget{id: id, source: source})
		}
	}

	errc := make(chan error, 1)
	go func() {
		errc <- w.Run(ctx)
	}()

	fmt.Printf("\nWatching %d file(s) for changes, press Ctrl+C to stop\n", len(targets))
	for {
		select {
		case path := <-w.Events():
			fmt.Printf("\nFile changed: %s\n", path)
			reloadModels(ctx, reg, targets[path])
		case err := <-w.Errors():
			fmt.Fprintf(os.Stderr, "Watcher error: %v\n", err)
		case err := <-errc:
			if errors.Is(err, context.Canceled) {
				return nil
			}
			return err
		}
	}
}

func reloadModels(ctx context.Context, reg *plate.Registry, targets []watchTarget) {
	for _, t := range targets {
		model, err := plate.Decode(ctx, t.source)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error reloading %s: %v\n", t.source, err)
			continue
		}
		if err := reg.Reload(t.id, model); err != nil {
			fmt.Fprintf(os.Stderr, "Error reloading %s: %v\n", t.source, err)
			continue
		}

		card, err := reg.Card(t.id)
		if err != nil {
			continue
		}
		printCard(reg, card)
	}

	if err := exportReports(reg); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	}
}
