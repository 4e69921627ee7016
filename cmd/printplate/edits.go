package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/philipparndt/printplate/internal/plate"
)

// edits collects the plate modifications given on the command line
type edits struct {
	scales  []string
	moves   []string
	colors  []string
	removes []int
}

// splitAssignment parses "id=value"
func splitAssignment(s string) (int, string, error) {
	key, value, ok := strings.Cut(s, "=")
	if !ok {
		return 0, "", fmt.Errorf("invalid assignment %q, expected id=value", s)
	}
	id, err := strconv.Atoi(strings.TrimSpace(key))
	if err != nil {
		return 0, "", fmt.Errorf("invalid model id in %q: %w", s, err)
	}
	return id, strings.TrimSpace(value), nil
}

// parsePoint parses "x,y"
func parsePoint(s string) (float64, float64, error) {
	xs, ys, ok := strings.Cut(s, ",")
	if !ok {
		return 0, 0, fmt.Errorf("invalid position %q, expected x,y", s)
	}
	x, err := strconv.ParseFloat(strings.TrimSpace(xs), 64)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid x in %q: %w", s, err)
	}
	y, err := strconv.ParseFloat(strings.TrimSpace(ys), 64)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid y in %q: %w", s, err)
	}
	return x, y, nil
}

// apply runs scale, move, colour and remove edits in that order and stops
// at the first failure.
func (e edits) apply(reg *plate.Registry) error {
	for _, s := range e.scales {
		id, value, err := splitAssignment(s)
		if err != nil {
			return err
		}
		percent, err := strconv.ParseFloat(strings.TrimSuffix(value, "%"), 64)
		if err != nil {
			return fmt.Errorf("invalid scale in %q: %w", s, err)
		}
		if err := reg.SetScale(id, percent); err != nil {
			return fmt.Errorf("failed to scale: %w", err)
		}
	}

	for _, s := range e.moves {
		id, value, err := splitAssignment(s)
		if err != nil {
			return err
		}
		x, y, err := parsePoint(value)
		if err != nil {
			return err
		}
		if _, err := reg.SetPosition(id, x, y); err != nil {
			return fmt.Errorf("failed to move: %w", err)
		}
	}

	for _, s := range e.colors {
		id, value, err := splitAssignment(s)
		if err != nil {
			return err
		}
		if err := reg.SetColor(id, value); err != nil {
			return fmt.Errorf("failed to set colour: %w", err)
		}
	}

	for _, id := range e.removes {
		if err := reg.Remove(id); err != nil {
			return fmt.Errorf("failed to remove: %w", err)
		}
	}

	return nil
}
