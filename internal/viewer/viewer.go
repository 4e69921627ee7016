// Package viewer shows the build plate in a raylib window. Models can be
// dragged across the plate, rescaled, recoloured and removed, and files
// dropped on the window are imported.
package viewer

import (
	"context"
	"fmt"
	"path/filepath"
	"runtime"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/philipparndt/printplate/internal/config"
	"github.com/philipparndt/printplate/internal/plate"
	"github.com/philipparndt/printplate/pkg/geometry"
	"github.com/philipparndt/printplate/pkg/stl"
	"github.com/philipparndt/printplate/pkg/watcher"
)

// reload carries a model decoded again after its file changed
type reload struct {
	id    int
	path  string
	model *stl.Model
	err   error
}

// Viewer renders a registry and turns mouse and keyboard input into
// registry operations. It implements plate.Sync.
type Viewer struct {
	reg      *plate.Registry
	cfg      config.Config
	camera   orbitCamera
	material rl.Material

	selected   int // 0 when nothing is selected
	dragging   bool
	dragOffset geometry.Vector3

	sources map[int]string // absolute file path per model id
	loads   []<-chan plate.LoadResult
	reloads chan reload
	watch   *watcher.Watcher

	status      string
	statusUntil time.Time
}

// New creates a viewer for reg and registers it as the registry's sync
func New(reg *plate.Registry) *Viewer {
	v := &Viewer{
		reg:     reg,
		cfg:     reg.Config(),
		camera:  newOrbitCamera(reg.Config().BuildVolume),
		sources: make(map[int]string),
		reloads: make(chan reload, 16),
	}
	reg.SetSync(v)
	return v
}

// Run opens the window, imports paths in the background and runs the main
// loop until the window is closed or ctx is cancelled.
func (v *Viewer) Run(ctx context.Context, paths []string) error {
	rl.SetConfigFlags(rl.FlagWindowResizable | rl.FlagWindowHighdpi | rl.FlagMsaa4xHint)
	rl.InitWindow(1400, 900, "printplate")
	defer rl.CloseWindow()
	rl.SetTargetFPS(60)

	v.material = rl.LoadMaterialDefault()

	w, err := watcher.New(500 * time.Millisecond)
	if err != nil {
		fmt.Printf("Warning: Failed to set up file watching: %v\n", err)
	} else {
		v.watch = w
		defer w.Close()
		go func() {
			_ = w.Run(ctx)
		}()
	}

	v.load(ctx, paths)

	for !rl.WindowShouldClose() && ctx.Err() == nil {
		v.applyLoads()
		v.applyReloads(ctx)

		v.handleInput(ctx)
		v.camera.update()

		rl.BeginDrawing()
		rl.ClearBackground(rl.NewColor(15, 18, 25, 255))

		rl.BeginMode3D(v.camera.camera)
		v.drawPlate()
		v.drawModels()
		rl.EndMode3D()

		v.drawHUD()
		rl.EndDrawing()
	}

	for _, id := range v.reg.IDs() {
		_ = v.reg.Remove(id)
	}
	return nil
}

// load starts decoding files in the background
func (v *Viewer) load(ctx context.Context, paths []string) {
	if len(paths) == 0 {
		return
	}
	v.setStatus(fmt.Sprintf("Loading %d file(s)...", len(paths)))
	v.loads = append(v.loads, plate.LoadAsync(ctx, paths, runtime.NumCPU()))
}

// applyLoads imports decoded files, one registry call per result, on the
// main loop.
func (v *Viewer) applyLoads() {
	pending := v.loads[:0]
	for _, ch := range v.loads {
		open := true
	drain:
		for {
			select {
			case res, ok := <-ch:
				if !ok {
					open = false
					break drain
				}
				v.imported(v.reg.ImportLoaded(res))
			default:
				break drain
			}
		}
		if open {
			pending = append(pending, ch)
		}
	}
	v.loads = pending
}

func (v *Viewer) imported(res plate.ImportResult) {
	if res.Err != nil {
		fmt.Printf("Error importing %s: %v\n", res.Path, res.Err)
		v.setStatus(fmt.Sprintf("Failed to import %s", filepath.Base(res.Path)))
		return
	}

	abs, err := filepath.Abs(res.Path)
	if err != nil {
		abs = res.Path
	}
	v.sources[res.ID] = abs
	v.selected = res.ID
	v.setStatus(fmt.Sprintf("Imported %s as #%d", filepath.Base(res.Path), res.ID))

	if v.watch != nil {
		if err := v.watch.Add(abs); err != nil {
			fmt.Printf("Warning: Failed to watch %s: %v\n", abs, err)
		}
	}
}

// applyReloads starts decoding changed files and applies finished reloads
func (v *Viewer) applyReloads(ctx context.Context) {
	if v.watch != nil {
		select {
		case path := <-v.watch.Events():
			for id, source := range v.sources {
				if source == path {
					go v.decode(ctx, id, path)
				}
			}
		default:
		}
	}

	for {
		select {
		case r := <-v.reloads:
			if r.err == nil {
				r.err = v.reg.Reload(r.id, r.model)
			}
			if r.err != nil {
				fmt.Printf("Error reloading %s: %v\n", r.path, r.err)
				v.setStatus(fmt.Sprintf("Failed to reload %s", filepath.Base(r.path)))
				continue
			}
			v.setStatus(fmt.Sprintf("Reloaded %s", filepath.Base(r.path)))
		default:
			return
		}
	}
}

func (v *Viewer) decode(ctx context.Context, id int, path string) {
	model, err := plate.Decode(ctx, path)
	select {
	case v.reloads <- reload{id: id, path: path, model: model, err: err}:
	case <-ctx.Done():
	}
}

func (v *Viewer) setStatus(msg string) {
	v.status = msg
	v.statusUntil = time.Now().Add(4 * time.Second)
}
