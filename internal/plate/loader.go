package plate

import (
	"context"
	"fmt"
	"path/filepath"
	"sort"
	"sync"

	"github.com/philipparndt/printplate/pkg/openscad"
	"github.com/philipparndt/printplate/pkg/stl"
)

// LoadResult is the outcome of decoding one file
type LoadResult struct {
	Index int // position in the requested path list
	Path  string
	Model *stl.Model
	Err   error
}

// LoadAsync decodes the files with Decode on up to workers goroutines and
// delivers results in completion order. The channel is closed when all files are
// done. Files not started before ctx is cancelled report ctx.Err().
func LoadAsync(ctx context.Context, paths []string, workers int) <-chan LoadResult {
	if workers < 1 {
		workers = 1
	}

	jobs := make(chan int)
	results := make(chan LoadResult, len(paths))

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				results <- load(ctx, i, paths[i])
			}
		}()
	}

	go func() {
		defer close(results)
		for i := range paths {
			jobs <- i
		}
		close(jobs)
		wg.Wait()
	}()

	return results
}

// LoadFiles decodes all files and returns the results in input order, so
// importing them assigns ids in the order the files were given.
func LoadFiles(ctx context.Context, paths []string, workers int) []LoadResult {
	results := make([]LoadResult, 0, len(paths))
	for res := range LoadAsync(ctx, paths, workers) {
		results = append(results, res)
	}
	sort.Slice(results, func(i, j int) bool {
		return results[i].Index < results[j].Index
	})
	return results
}

func load(ctx context.Context, index int, path string) LoadResult {
	res := LoadResult{Index: index, Path: path}
	if err := ctx.Err(); err != nil {
		res.Err = err
		return res
	}
	res.Model, res.Err = Decode(ctx, path)
	return res
}

// Decode reads one model file. OpenSCAD sources are rendered first.
func Decode(ctx context.Context, path string) (*stl.Model, error) {
	if openscad.IsSource(path) {
		return openscad.NewRenderer().Render(ctx, path)
	}
	return stl.Parse(path)
}

// ImportResult reports the import of one decoded file
type ImportResult struct {
	Path string
	ID   int
	Err  error
}

// ImportLoaded imports one load result under its file name. Decode errors
// are passed through.
func (r *Registry) ImportLoaded(res LoadResult) ImportResult {
	out := ImportResult{Path: res.Path}
	if res.Err != nil {
		out.Err = fmt.Errorf("failed to load %s: %w", res.Path, res.Err)
		return out
	}
	out.ID, out.Err = r.Import(filepath.Base(res.Path), res.Model)
	return out
}

// ImportAll imports every result in order. A failing file does not stop
// the rest of the batch.
func (r *Registry) ImportAll(results []LoadResult) []ImportResult {
	out := make([]ImportResult, 0, len(results))
	for _, res := range results {
		out = append(out, r.ImportLoaded(res))
	}
	return out
}
