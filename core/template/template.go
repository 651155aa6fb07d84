// Package template picks and executes the template for a print view.
//
// A theme directory may override the bundled template with, in order of
// preference: wpf-home.html (home page), wpf-<taxonomy>.html (term listings),
// wpf-<post-type>.html (single posts) and wpf.html (everything).
package template

import (
	"bytes"
	"embed"
	"fmt"
	htmltemplate "html/template"
	"os"
	"path/filepath"
	"strings"

	"github.com/gaurav-prasanna/printfriendly/core"
)

//go:embed templates/*.html
var bundled embed.FS

// Template names.
const (
	NameHome          = "wpf-home"
	NameDefault       = "wpf-default"
	NamePluginDefault = "wpf-plugin-default"
	NameNormal        = "normal"
)

// Template is a chosen template. An empty Path means the bundled default.
type Template struct {
	Name string
	Path string
}

// Subject is what the chooser needs to know about the view.
type Subject struct {
	Kind     core.ResourceKind
	Taxonomy string
	PostType string
}

// Chooser looks up templates in a theme directory.
type Chooser struct {
	ThemeDir string
}

// NewChooser creates a Chooser. An empty themeDir always yields the bundled
// template.
func NewChooser(themeDir string) *Chooser {
	return &Chooser{ThemeDir: themeDir}
}

// Choose returns the first template that exists for subject.
func (c *Chooser) Choose(s Subject) Template {
	var candidates []Template
	if s.Kind == core.KindHome {
		candidates = append(candidates, Template{Name: NameHome, Path: "wpf-home.html"})
	}
	if s.Taxonomy != "" {
		candidates = append(candidates, Template{Name: "wpf-" + s.Taxonomy, Path: "wpf-" + s.Taxonomy + ".html"})
	}
	if s.PostType != "" {
		candidates = append(candidates, Template{Name: "wpf-" + s.PostType, Path: "wpf-" + s.PostType + ".html"})
	}
	candidates = append(candidates, Template{Name: NameDefault, Path: "wpf.html"})

	if c.ThemeDir != "" {
		for _, t := range candidates {
			path := filepath.Join(c.ThemeDir, t.Path)
			if info, err := os.Stat(path); err == nil && !info.IsDir() {
				return Template{Name: t.Name, Path: path}
			}
		}
	}
	return Template{Name: NamePluginDefault}
}

// BodyClasses returns the body classes for a view rendered with t.
func BodyClasses(kind core.ResourceKind, t Template) []string {
	name := t.Name
	if name == "default" {
		name = "wpf"
	}
	return []string{kind.String(), name}
}

var funcs = htmltemplate.FuncMap{
	"join": strings.Join,
	// raw marks pipeline output as trusted markup.
	"raw": func(s string) htmltemplate.HTML { return htmltemplate.HTML(s) },
}

// Execute renders view with the template at path, or the bundled print
// template when path is empty.
func Execute(path string, view *core.PrintView) ([]byte, error) {
	var (
		tpl *htmltemplate.Template
		err error
	)
	if path == "" {
		tpl, err = htmltemplate.New("default.html").Funcs(funcs).ParseFS(bundled, "templates/default.html")
	} else {
		tpl, err = htmltemplate.New(filepath.Base(path)).Funcs(funcs).ParseFiles(path)
	}
	if err != nil {
		return nil, fmt.Errorf("parsing template: %w", err)
	}
	return run(tpl, view)
}

// ExecuteNormal renders view as a regular, non-print page.
func ExecuteNormal(view *core.PrintView) ([]byte, error) {
	tpl, err := htmltemplate.New("normal.html").Funcs(funcs).ParseFS(bundled, "templates/normal.html")
	if err != nil {
		return nil, fmt.Errorf("parsing template: %w", err)
	}
	return run(tpl, view)
}

func run(tpl *htmltemplate.Template, view *core.PrintView) ([]byte, error) {
	var buf bytes.Buffer
	if err := tpl.Execute(&buf, view); err != nil {
		return nil, fmt.Errorf("executing template %s: %w", tpl.Name(), err)
	}
	return buf.Bytes(), nil
}
