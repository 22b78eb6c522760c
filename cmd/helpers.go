package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/azinterface/azdesk/internal/apps"
)

// loadRegistry returns the builtin app registry, merged with extra
// definitions from a YAML file when a path is given.
func loadRegistry(path string) (*apps.Registry, error) {
	if path == "" {
		return apps.Builtin(), nil
	}
	return apps.LoadFile(path)
}

// parseScreen parses a WIDTHxHEIGHT flag value like "1920x1080".
func parseScreen(s string) ([2]int, error) {
	parts := strings.SplitN(s, "x", 2)
	if len(parts) != 2 {
		return [2]int{}, fmt.Errorf("invalid screen size %q (use WIDTHxHEIGHT)", s)
	}
	w, err := strconv.Atoi(parts[0])
	if err != nil {
		return [2]int{}, fmt.Errorf("invalid screen width %q", parts[0])
	}
	h, err := strconv.Atoi(parts[1])
	if err != nil {
		return [2]int{}, fmt.Errorf("invalid screen height %q", parts[1])
	}
	if w <= 0 || h <= 0 {
		return [2]int{}, fmt.Errorf("screen size must be positive, got %dx%d", w, h)
	}
	return [2]int{w, h}, nil
}
