package transform

import (
	"io"
	"log/slog"

	"github.com/gaurav-prasanna/printfriendly/core"
	"github.com/gaurav-prasanna/printfriendly/core/classify"
	"github.com/gaurav-prasanna/printfriendly/core/options"
)

// Context is the request-scoped input to the pipeline.
type Context struct {
	Request  core.PrintRequest
	Resource core.Resource
	Post     core.Post
	// Content is the body as the host would display it, usually a single
	// page of Post.Body.
	Content     string
	CurrentPage int
}

// Result is the pipeline output for one post.
type Result struct {
	Content  string
	Endnotes []core.LinkReference
}

// Pipeline runs the content stages with one set of options.
type Pipeline struct {
	Options options.Options
	Links   LinkBuilder
	Logger  *slog.Logger
}

// NewPipeline creates a Pipeline. A nil logger discards output.
func NewPipeline(opts options.Options, links LinkBuilder, logger *slog.Logger) *Pipeline {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Pipeline{Options: opts, Links: links, Logger: logger}
}

// Apply runs full-content, auto-link and endnote stages in that order.
func (p *Pipeline) Apply(c Context) Result {
	content := c.Content

	if c.Request.Active && classify.WantsAllPages(c.Request.PageSelector) {
		content = Flatten(c.Post.Body)
		p.Logger.Debug("flattened multi-page body", "post_id", c.Post.ID)
	}

	if !c.Request.Active && p.Options.AutoInsert && p.Options.Eligible(c.Post.Type) {
		c.Content = content
		content = AutoLinks(c, p.Options, p.Links)
		p.Logger.Debug("inserted print links", "post_id", c.Post.ID, "placement", string(p.Options.Placement))
	}

	var refs []core.LinkReference
	if c.Request.Active && p.Options.EndnotesEnabled {
		content, refs = Endnotes(content, p.Options.EndnotesLabel)
		if len(refs) > 0 {
			p.Logger.Debug("converted links to endnotes", "post_id", c.Post.ID, "count", len(refs))
		}
	}

	return Result{Content: content, Endnotes: refs}
}
