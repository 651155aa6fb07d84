// Package printview assembles the view a renderer consumes from a resolved
// request: it picks the template, runs every post through the content
// pipeline and fills in the page label and footer fields.
package printview

import (
	"time"

	"github.com/gaurav-prasanna/printfriendly/core"
	"github.com/gaurav-prasanna/printfriendly/core/pagelabel"
	"github.com/gaurav-prasanna/printfriendly/core/pages"
	"github.com/gaurav-prasanna/printfriendly/core/site"
	"github.com/gaurav-prasanna/printfriendly/core/template"
	"github.com/gaurav-prasanna/printfriendly/core/transform"
)

// Page label parts used for single multi-page posts.
const (
	LabelBefore    = "Page "
	LabelSeparator = " of "
)

// Composer builds print views for one site.
type Composer struct {
	Catalog  *site.Catalog
	Pipeline *transform.Pipeline
	Chooser  *template.Chooser
	// Now stamps PrintedAt.
	Now func() time.Time
}

// New creates a Composer stamping views with the wall clock.
func New(catalog *site.Catalog, pipeline *transform.Pipeline, chooser *template.Chooser) *Composer {
	return &Composer{Catalog: catalog, Pipeline: pipeline, Chooser: chooser, Now: time.Now}
}

// Compose builds the view for req over a resolved site view. page is the
// 1-based page shown for single posts; listings always show first pages.
// Non-print requests get the normal template and no footer.
func (c *Composer) Compose(req core.PrintRequest, view site.View, page int) *core.PrintView {
	tpl := template.Template{Name: template.NameNormal}
	if req.Active {
		tpl = c.Chooser.Choose(subject(view))
	}

	out := &core.PrintView{
		SiteName:     c.Catalog.Settings().Name,
		Template:     tpl.Name,
		TemplatePath: tpl.Path,
		BodyClasses:  template.BodyClasses(view.Resource.Kind, tpl),
		Resource:     view.Resource,
		PrintedAt:    c.Now(),
	}
	if req.Active {
		if link, ok := c.Catalog.CanonicalURL(view.Resource); ok {
			out.PrintedFrom = link
		}
	}

	single := view.Resource.Kind == core.KindSinglePost
	for _, p := range view.Posts {
		current, resource := 1, core.PostResource(p.ID)
		if single {
			current = clamp(page, pages.Total(p.Body))
			resource = view.Resource
		}
		res := c.Pipeline.Apply(transform.Context{
			Request:     req,
			Resource:    resource,
			Post:        p,
			Content:     pages.Page(p.Body, current),
			CurrentPage: current,
		})
		out.Posts = append(out.Posts, core.PrintedPost{Post: p, HTML: res.Content, Endnotes: res.Endnotes})
	}

	if single && len(view.Posts) == 1 {
		body := view.Posts[0].Body
		if label, ok := pagelabel.FormatPage(req, clamp(page, pages.Total(body)), body, LabelBefore, LabelSeparator, ""); ok {
			out.PageLabel = label
		}
	}
	return out
}

func subject(view site.View) template.Subject {
	s := template.Subject{Kind: view.Resource.Kind, PostType: view.PostType}
	if view.Term != nil {
		s.Taxonomy = view.Term.Taxonomy
	}
	return s
}

func clamp(page, total int) int {
	return min(max(page, 1), total)
}
