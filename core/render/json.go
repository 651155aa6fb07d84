// Package render — JSON renderer.
// Emits the print view as structured JSON: view metadata plus each post
// with its transformed HTML and endnotes.
package render

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/gaurav-prasanna/printfriendly/core"
)

// JSONRenderer produces structured JSON output.
type JSONRenderer struct{}

// NewJSONRenderer creates a JSONRenderer.
func NewJSONRenderer() *JSONRenderer {
	return &JSONRenderer{}
}

type viewMetadata struct {
	Site        string   `json:"site"`
	Resource    string   `json:"resource"`
	Template    string   `json:"template"`
	BodyClasses []string `json:"body_classes"`
	PageLabel   string   `json:"page_label,omitempty"`
	PrintedFrom string   `json:"printed_from,omitempty"`
	PrintedAt   string   `json:"printed_at"` // ISO8601
}

type viewJSON struct {
	Metadata viewMetadata       `json:"metadata"`
	Posts    []core.PrintedPost `json:"posts"`
}

// Render converts the view into indented JSON.
func (r *JSONRenderer) Render(view *core.PrintView) ([]byte, error) {
	posts := view.Posts
	if posts == nil {
		posts = []core.PrintedPost{}
	}
	out := viewJSON{
		Metadata: viewMetadata{
			Site:        view.SiteName,
			Resource:    view.Resource.Kind.String(),
			Template:    view.Template,
			BodyClasses: view.BodyClasses,
			PageLabel:   view.PageLabel,
			PrintedFrom: view.PrintedFrom,
			PrintedAt:   view.PrintedAt.UTC().Format(time.RFC3339),
		},
		Posts: posts,
	}

	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshaling JSON: %w", err)
	}
	return data, nil
}

// Extension returns the file extension for JSON output.
func (r *JSONRenderer) Extension() string {
	return ".json"
}
