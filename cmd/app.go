// Package cmd — shared wiring.
// Every command works on the same objects: the site catalog loaded from the
// content directory, the print options from the config, a URL builder and a
// view composer.
package cmd

import (
	"fmt"
	"strconv"

	"github.com/gaurav-prasanna/printfriendly/core"
	"github.com/gaurav-prasanna/printfriendly/core/options"
	"github.com/gaurav-prasanna/printfriendly/core/printurl"
	"github.com/gaurav-prasanna/printfriendly/core/printview"
	"github.com/gaurav-prasanna/printfriendly/core/site"
	"github.com/gaurav-prasanna/printfriendly/core/source"
	"github.com/gaurav-prasanna/printfriendly/core/template"
	"github.com/gaurav-prasanna/printfriendly/core/transform"
)

type app struct {
	catalog  *site.Catalog
	options  options.Options
	urls     *printurl.Builder
	composer *printview.Composer
}

// loadApp builds the app over the configured content directory.
func loadApp() (*app, error) {
	posts, err := source.LoadDir(cfg.Content.Dir)
	if err != nil {
		return nil, fmt.Errorf("loading content: %w", err)
	}
	logger.Debug("content loaded", "dir", cfg.Content.Dir, "posts", len(posts))
	return newApp(posts)
}

// newApp builds the app over posts.
func newApp(posts []core.Post) (*app, error) {
	settings := cfg.SiteSettings()
	catalog, err := site.NewCatalog(settings, posts)
	if err != nil {
		return nil, fmt.Errorf("building site catalog: %w", err)
	}

	opts := cfg.PrintOptions(catalog.RegisteredPostTypes())
	urls := printurl.New(catalog, settings.Mode, settings.TrailingSlash)
	pipeline := transform.NewPipeline(opts, urls, logger)

	return &app{
		catalog:  catalog,
		options:  opts,
		urls:     urls,
		composer: printview.New(catalog, pipeline, template.NewChooser(cfg.Theme.Dir)),
	}, nil
}

// findPost looks a post up by numeric id or by slug.
func (a *app) findPost(ref string) (core.Post, error) {
	if id, err := strconv.Atoi(ref); err == nil {
		if p, ok := a.catalog.Post(id); ok {
			return p, nil
		}
	}
	if p, ok := a.catalog.PostBySlug(ref, ""); ok {
		return p, nil
	}
	return core.Post{}, fmt.Errorf("post %q: %w", ref, site.ErrUnknownResource)
}

// singleView is the site view of one post.
func singleView(p core.Post) site.View {
	return site.View{Resource: core.PostResource(p.ID), Posts: []core.Post{p}, PostType: p.Type}
}
