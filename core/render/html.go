// Package render provides output renderers for print views.
// This file implements the HTML renderer, which executes the chosen template.
package render

import (
	"github.com/gaurav-prasanna/printfriendly/core"
	"github.com/gaurav-prasanna/printfriendly/core/template"
)

// HTMLRenderer renders a print view through its template.
type HTMLRenderer struct{}

// NewHTMLRenderer creates an HTMLRenderer.
func NewHTMLRenderer() *HTMLRenderer {
	return &HTMLRenderer{}
}

// Render executes the view's template, or the bundled one when the view
// names no template file.
func (r *HTMLRenderer) Render(view *core.PrintView) ([]byte, error) {
	return template.Execute(view.TemplatePath, view)
}

// Extension returns the file extension for HTML output.
func (r *HTMLRenderer) Extension() string {
	return ".html"
}
