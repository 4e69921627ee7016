// Package openscad renders OpenSCAD sources to STL models with the
// openscad command line tool.
package openscad

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/philipparndt/printplate/pkg/stl"
)

// ErrNotInstalled is returned when the openscad binary cannot be found
var ErrNotInstalled = errors.New("openscad not found in PATH, install it from https://openscad.org/")

var dependencyRegex = regexp.MustCompile(`^\s*(?:use|include)\s*<([^>]+)>`)

// Renderer runs openscad to turn .scad files into meshes
type Renderer struct {
	Binary string
}

// NewRenderer creates a renderer using the openscad binary from PATH
func NewRenderer() *Renderer {
	return &Renderer{Binary: "openscad"}
}

// IsSource reports whether path names an OpenSCAD source file
func IsSource(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".scad")
}

// Render renders scadFile into a temporary STL and decodes it. The model is
// named after the source file.
func (r *Renderer) Render(ctx context.Context, scadFile string) (*stl.Model, error) {
	if _, err := exec.LookPath(r.Binary); err != nil {
		return nil, ErrNotInstalled
	}

	absScadFile, err := filepath.Abs(scadFile)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve path %s: %w", scadFile, err)
	}

	tmp, err := os.CreateTemp("", "printplate-*.stl")
	if err != nil {
		return nil, fmt.Errorf("failed to create temporary file: %w", err)
	}
	output := tmp.Name()
	tmp.Close()
	defer os.Remove(output)

	cmd := exec.CommandContext(ctx, r.Binary, "-o", output, absScadFile)
	cmd.Dir = filepath.Dir(absScadFile)

	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		msg := strings.TrimSpace(stderr.String())
		if msg == "" {
			return nil, fmt.Errorf("failed to render %s: %w", scadFile, err)
		}
		return nil, fmt.Errorf("failed to render %s: %w: %s", scadFile, err, msg)
	}

	model, err := stl.Parse(output)
	if err != nil {
		return nil, fmt.Errorf("failed to parse rendered %s: %w", scadFile, err)
	}
	model.Name = strings.TrimSuffix(filepath.Base(scadFile), filepath.Ext(scadFile))
	return model, nil
}

// Dependencies returns scadFile and every file it uses or includes,
// recursively, as absolute paths. Missing dependencies are listed but not
// followed.
func Dependencies(scadFile string) ([]string, error) {
	absScadFile, err := filepath.Abs(scadFile)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve path %s: %w", scadFile, err)
	}

	visited := make(map[string]bool)
	var deps []string
	if err := resolve(absScadFile, visited, &deps, true); err != nil {
		return nil, err
	}
	return deps, nil
}

func resolve(scadFile string, visited map[string]bool, deps *[]string, root bool) error {
	if visited[scadFile] {
		return nil
	}
	visited[scadFile] = true
	*deps = append(*deps, scadFile)

	fileDeps, err := parseDependencies(scadFile)
	if err != nil {
		if !root && errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return err
	}

	for _, dep := range fileDeps {
		if err := resolve(dep, visited, deps, false); err != nil {
			return err
		}
	}
	return nil
}

// parseDependencies lists the use and include targets of one file
func parseDependencies(scadFile string) ([]string, error) {
	file, err := os.Open(scadFile)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", scadFile, err)
	}
	defer file.Close()

	var deps []string
	dir := filepath.Dir(scadFile)
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := scanner.Text()
		if strings.HasPrefix(strings.TrimSpace(line), "//") {
			continue
		}
		if m := dependencyRegex.FindStringSubmatch(line); len(m) > 1 {
			deps = append(deps, filepath.Clean(filepath.Join(dir, m[1])))
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading %s: %w", scadFile, err)
	}
	return deps, nil
}
