// Package render — Markdown renderer.
// Converts each printed post into Markdown with a title heading, followed by
// the page label and the printed-from line.
package render

import (
	"fmt"
	"strings"

	"github.com/gaurav-prasanna/printfriendly/core"
	"github.com/gaurav-prasanna/printfriendly/core/normalize"
)

// MarkdownRenderer writes a print view as Markdown.
type MarkdownRenderer struct {
	normalizer core.Normalizer
}

// NewMarkdownRenderer creates a MarkdownRenderer.
func NewMarkdownRenderer() *MarkdownRenderer {
	return &MarkdownRenderer{normalizer: normalize.New()}
}

// Render returns the view as Markdown bytes.
func (r *MarkdownRenderer) Render(view *core.PrintView) ([]byte, error) {
	md, err := r.markdown(view)
	if err != nil {
		return nil, err
	}
	return []byte(md), nil
}

// Extension returns the file extension for Markdown output.
func (r *MarkdownRenderer) Extension() string {
	return ".md"
}

func (r *MarkdownRenderer) markdown(view *core.PrintView) (string, error) {
	var b strings.Builder
	for i, p := range view.Posts {
		if i > 0 {
			b.WriteString("\n\n---\n\n")
		}
		fmt.Fprintf(&b, "# %s\n\n", p.Post.Title)
		if p.Post.Author != "" {
			fmt.Fprintf(&b, "by %s\n\n", p.Post.Author)
		}

		body, err := r.normalizer.Normalize(p.HTML)
		if err != nil {
			return "", fmt.Errorf("post %d: %w", p.Post.ID, err)
		}
		b.WriteString(body)
	}

	if view.PageLabel != "" {
		fmt.Fprintf(&b, "\n\n%s", view.PageLabel)
	}
	if view.PrintedFrom != "" {
		fmt.Fprintf(&b, "\n\nPrinted from %s", view.PrintedFrom)
	}
	b.WriteString("\n")
	return b.String(), nil
}
