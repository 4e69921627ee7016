// Package gui is the desktop form of the build plate: one card per model
// with its scale, colour and estimate, a rendered preview of the plate and
// quote export.
package gui

import (
	"context"
	"errors"
	"fmt"
	"math"
	"runtime"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/widget"
	"github.com/philipparndt/printplate/internal/config"
	"github.com/philipparndt/printplate/internal/plate"
	"github.com/philipparndt/printplate/internal/report"
	"github.com/philipparndt/printplate/pkg/render"
)

// Preview size in pixels
const (
	previewWidth  = 720
	previewHeight = 480
)

// App is the fyne window around a registry. It implements plate.Sync.
type App struct {
	window fyne.Window
	reg    *plate.Registry
	cfg    config.Config
	camera render.Camera

	cards   *fyne.Container
	totals  *widget.Label
	preview *canvas.Image

	ctx    context.Context
	cancel context.CancelFunc
}

// New creates the window for reg and registers it as the registry's sync
func New(reg *plate.Registry) *App {
	return newApp(app.NewWithID("com.github.philipparndt.printplate"), reg)
}

func newApp(fa fyne.App, reg *plate.Registry) *App {
	ctx, cancel := context.WithCancel(context.Background())
	a := &App{
		window: fa.NewWindow("printplate"),
		reg:    reg,
		cfg:    reg.Config(),
		camera: render.NewPlateCamera(reg.Config().BuildVolume),
		ctx:    ctx,
		cancel: cancel,
	}
	a.window.SetContent(a.build())
	reg.SetSync(a)
	return a
}

// Run shows the window, imports paths in the background and blocks until
// the window is closed.
func (a *App) Run(paths []string) {
	a.window.SetOnClosed(a.cancel)
	a.window.Resize(fyne.NewSize(1200, 800))
	a.window.CenterOnScreen()

	a.changed()
	a.load(paths)
	a.window.ShowAndRun()
}

func (a *App) build() fyne.CanvasObject {
	a.cards = container.NewVBox()
	a.totals = widget.NewLabel("")
	a.totals.TextStyle = fyne.TextStyle{Bold: true}

	a.preview = canvas.NewImageFromImage(render.Render(render.Scene{BuildVolume: a.cfg.BuildVolume}, a.camera, previewWidth, previewHeight))
	a.preview.FillMode = canvas.ImageFillContain
	a.preview.SetMinSize(fyne.NewSize(previewWidth/2, previewHeight/2))

	toolbar := container.NewHBox(
		widget.NewButton("Open...", a.showOpenDialog),
		widget.NewButton("Export PDF...", func() { a.showExportDialog("quote.pdf", a.exportPDF) }),
		widget.NewButton("Export XLSX...", func() { a.showExportDialog("quote.xlsx", a.exportXLSX) }),
		widget.NewButton("Rotate", func() {
			a.camera.Rotate(math.Pi/12, 0)
			a.renderPreview()
		}),
	)

	list := container.NewBorder(nil, a.totals, nil, nil, container.NewVScroll(a.cards))
	split := container.NewHSplit(list, a.preview)
	split.Offset = 0.4

	return container.NewBorder(toolbar, nil, nil, nil, split)
}

// changed refreshes the totals and the preview after any registry change
func (a *App) changed() {
	t := a.reg.Totals()
	a.totals.SetText(fmt.Sprintf("%d model(s)  %d min  %s", t.Models, t.Minutes, a.reg.FormatCost(t.Cost)))
	a.renderPreview()
}

func (a *App) renderPreview() {
	scene := render.Scene{BuildVolume: a.cfg.BuildVolume}
	for _, e := range a.reg.Entries() {
		scene.Items = append(scene.Items, render.Item{
			Model:  e.Mesh,
			Offset: e.Position,
			Color:  a.cfg.Palette.RGBA(e.Color),
		})
	}
	a.preview.Image = render.Render(scene, a.camera, previewWidth, previewHeight)
	a.preview.Refresh()
}

// apply shows the error of a registry operation
func (a *App) apply(err error) {
	if err != nil {
		dialog.ShowError(err, a.window)
	}
}

// load decodes paths off the UI goroutine and imports the results on it
func (a *App) load(paths []string) {
	if len(paths) == 0 {
		return
	}
	go func() {
		results := plate.LoadFiles(a.ctx, paths, runtime.NumCPU())
		fyne.Do(func() {
			var errs []error
			for _, res := range a.reg.ImportAll(results) {
				if res.Err != nil {
					errs = append(errs, res.Err)
				}
			}
			if len(errs) > 0 {
				dialog.ShowError(errors.Join(errs...), a.window)
			}
		})
	}()
}

func (a *App) showOpenDialog() {
	d := dialog.NewFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil {
			dialog.ShowError(err, a.window)
			return
		}
		if reader == nil {
			return
		}
		defer reader.Close()

		a.load([]string{reader.URI().Path()})
	}, a.window)
	d.SetFilter(storage.NewExtensionFileFilter([]string{".stl", ".scad"}))
	d.Show()
}

func (a *App) showExportDialog(name string, export func(path string) error) {
	if a.reg.Len() == 0 {
		dialog.ShowInformation("Nothing to export", "Open at least one model first.", a.window)
		return
	}

	d := dialog.NewFileSave(func(writer fyne.URIWriteCloser, err error) {
		if err != nil || writer == nil {
			return
		}
		path := writer.URI().Path()
		writer.Close()

		if err := export(path); err != nil {
			dialog.ShowError(err, a.window)
			return
		}
		dialog.ShowInformation("Export Complete", fmt.Sprintf("Quote exported to %s", path), a.window)
	}, a.window)
	d.SetFileName(name)
	d.Show()
}

func (a *App) exportPDF(path string) error {
	quote := report.NewQuote(a.reg.Cards(), a.cfg)
	preview, err := report.PlatePreview(a.reg.Entries(), a.cfg)
	if err != nil {
		return fmt.Errorf("failed to render plate preview: %w", err)
	}
	quote.Preview = preview
	return report.ExportPDF(path, quote, a.cfg.Palette)
}

func (a *App) exportXLSX(path string) error {
	return report.ExportXLSX(path, report.NewQuote(a.reg.Cards(), a.cfg))
}
