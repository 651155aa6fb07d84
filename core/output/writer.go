// Package output writes rendered print views to disk.
// File names are derived from the printed-from URL of the view
// (e.g. https://example.com/hello/ becomes example_com_hello.pdf).
package output

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/gaurav-prasanna/printfriendly/core"
)

// Writer writes rendered output to disk.
type Writer struct {
	OutputDir string
}

// New creates a Writer targeting the given output directory.
// If outputDir is empty, it defaults to the current working directory.
func New(outputDir string) (*Writer, error) {
	if outputDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("getting working directory: %w", err)
		}
		outputDir = wd
	}

	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	return &Writer{OutputDir: outputDir}, nil
}

// Write stores data for view under a name derived from the view and
// returns the path written.
func (w *Writer) Write(view *core.PrintView, data []byte, ext string) (string, error) {
	path := filepath.Join(w.OutputDir, FileName(view)+ext)
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("writing file %s: %w", path, err)
	}
	return path, nil
}

// FileName returns the base file name, without extension, for view.
func FileName(view *core.PrintView) string {
	name := ""
	if view.PrintedFrom != "" {
		name = filenameFromURL(view.PrintedFrom)
	}
	if name == "" {
		name = sanitize(view.Title())
	}
	if name == "" {
		name = "print"
	}
	return name
}

// filenameFromURL converts a URL into a flat filename, keeping the query
// string for query-style permalinks.
// Example: https://example.com/?p=12 → example_com_p_12
func filenameFromURL(rawURL string) string {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return sanitize(rawURL)
	}

	var parts []string
	if parsed.Host != "" {
		parts = append(parts, sanitize(parsed.Host))
	}
	for _, seg := range strings.Split(strings.Trim(parsed.Path, "/"), "/") {
		if seg != "" {
			parts = append(parts, sanitize(seg))
		}
	}
	if parsed.RawQuery != "" {
		parts = append(parts, sanitize(parsed.RawQuery))
	}
	return strings.Join(parts, "_")
}

// sanitize replaces non-alphanumeric characters with underscores.
func sanitize(s string) string {
	var b strings.Builder
	for _, ch := range s {
		if (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z') || (ch >= '0' && ch <= '9') {
			b.WriteRune(ch)
		} else {
			b.WriteRune('_')
		}
	}
	return b.String()
}
