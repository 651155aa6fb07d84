// Package source loads posts from a content directory or a remote page.
//
// Content files are Markdown (.md) or HTML (.html, .htm) with an optional YAML
// front matter header. Markdown is converted to HTML with raw HTML preserved,
// so page-break markers written as HTML comments survive conversion.
package source

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/renderer/html"

	"github.com/gaurav-prasanna/printfriendly/core"
)

// ErrNotFound is returned when the content directory does not exist.
var ErrNotFound = errors.New("content directory not found")

var markdown = goldmark.New(goldmark.WithRendererOptions(html.WithUnsafe()))

// LoadDir reads every content file under dir. Files without an id get the
// next free id in path order; files without a slug use their base name.
func LoadDir(dir string) ([]core.Post, error) {
	info, err := os.Stat(dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%s: %w", dir, ErrNotFound)
		}
		return nil, fmt.Errorf("reading content directory: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%s is not a directory", dir)
	}

	var paths []string
	err = filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && isContentFile(path) {
			paths = append(paths, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walking %s: %w", dir, err)
	}
	sort.Strings(paths)

	posts := make([]core.Post, 0, len(paths))
	used := make(map[int]bool)
	for _, path := range paths {
		p, err := LoadFile(path)
		if err != nil {
			return nil, err
		}
		posts = append(posts, p)
		if p.ID > 0 {
			used[p.ID] = true
		}
	}

	next := 1
	for i := range posts {
		if posts[i].ID > 0 {
			continue
		}
		for used[next] {
			next++
		}
		posts[i].ID = next
		used[next] = true
	}
	return posts, nil
}

// LoadFile reads a single content file.
func LoadFile(path string) (core.Post, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return core.Post{}, fmt.Errorf("reading %s: %w", path, err)
	}

	header, body, err := splitFrontMatter(data)
	if err != nil {
		return core.Post{}, fmt.Errorf("%s: %w", path, err)
	}
	fm, err := parseFrontMatter(header)
	if err != nil {
		return core.Post{}, fmt.Errorf("parsing front matter of %s: %w", path, err)
	}

	if strings.EqualFold(filepath.Ext(path), ".md") {
		var buf bytes.Buffer
		if err := markdown.Convert(body, &buf); err != nil {
			return core.Post{}, fmt.Errorf("converting %s: %w", path, err)
		}
		body = buf.Bytes()
	}

	slug := fm.Slug
	if slug == "" {
		slug = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	title := fm.Title
	if title == "" {
		title = slug
	}

	return core.Post{
		ID:         fm.ID,
		Slug:       slug,
		Type:       fm.Type,
		Title:      title,
		Author:     fm.Author,
		Date:       fm.Date,
		Body:       strings.TrimRight(string(body), "\n"),
		Categories: fm.Categories,
		Tags:       fm.Tags,
		Taxonomies: fm.Taxonomies,
	}, nil
}

func isContentFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".md", ".html", ".htm":
		return true
	default:
		return false
	}
}
