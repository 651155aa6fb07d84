package site

import (
	"fmt"
	"strconv"

	"github.com/gaurav-prasanna/printfriendly/core"
)

// Resolve maps query variables onto a view. Variables are checked in this
// order: single posts (p, page_id, name, pagename, custom post types), then
// categories, tags and custom taxonomies. No matching variable means the
// home page.
func (c *Catalog) Resolve(vars map[string]string) (View, error) {
	if view, ok, err := c.resolveSingle(vars); ok || err != nil {
		return view, err
	}
	if view, ok, err := c.resolveTerm(vars); ok || err != nil {
		return view, err
	}
	return View{Resource: core.HomeResource(), Posts: c.homePosts()}, nil
}

func (c *Catalog) resolveSingle(vars map[string]string) (View, bool, error) {
	single := func(p core.Post) (View, bool, error) {
		return View{Resource: core.PostResource(p.ID), Posts: []core.Post{p}, PostType: p.Type}, true, nil
	}

	for _, key := range []string{"p", "page_id"} {
		raw, ok := vars[key]
		if !ok || raw == "" {
			continue
		}
		id, err := strconv.Atoi(raw)
		if err != nil {
			return View{}, false, fmt.Errorf("%s=%q: %w", key, raw, ErrUnknownResource)
		}
		p, ok := c.Post(id)
		if !ok {
			return View{}, false, fmt.Errorf("post %d: %w", id, ErrUnknownResource)
		}
		return single(p)
	}

	for _, key := range []string{"name", "pagename"} {
		slug, ok := vars[key]
		if !ok || slug == "" {
			continue
		}
		p, ok := c.PostBySlug(slug, "")
		if !ok {
			return View{}, false, fmt.Errorf("%s %q: %w", key, slug, ErrUnknownResource)
		}
		return single(p)
	}

	for _, postType := range c.RegisteredPostTypes() {
		if !c.IsCustomPostType(postType) {
			continue
		}
		slug, ok := vars[postType]
		if !ok || slug == "" {
			continue
		}
		p, ok := c.PostBySlug(slug, postType)
		if !ok {
			return View{}, false, fmt.Errorf("%s %q: %w", postType, slug, ErrUnknownResource)
		}
		return single(p)
	}

	return View{}, false, nil
}

func (c *Catalog) resolveTerm(vars map[string]string) (View, bool, error) {
	listing := func(kind core.ResourceKind, t Term) (View, bool, error) {
		r := core.Resource{Kind: kind, Taxonomy: t.Taxonomy, TermID: t.ID}
		return View{Resource: r, Posts: c.postsWithTerm(t), Term: &t}, true, nil
	}
	bySlug := func(kind core.ResourceKind, taxonomy, slug string) (View, bool, error) {
		t, ok := c.termBySlug(taxonomy, slug)
		if !ok {
			return View{}, false, fmt.Errorf("%s %q: %w", taxonomy, slug, ErrUnknownResource)
		}
		return listing(kind, t)
	}

	if raw := vars["cat"]; raw != "" {
		id, err := strconv.Atoi(raw)
		if err != nil {
			return View{}, false, fmt.Errorf("cat=%q: %w", raw, ErrUnknownResource)
		}
		t, ok := c.Term(core.TaxonomyCategory, id)
		if !ok {
			return View{}, false, fmt.Errorf("category %d: %w", id, ErrUnknownResource)
		}
		return listing(core.KindCategory, t)
	}
	if slug := vars["category_name"]; slug != "" {
		return bySlug(core.KindCategory, core.TaxonomyCategory, slug)
	}
	if raw := vars["tag_id"]; raw != "" {
		id, err := strconv.Atoi(raw)
		if err != nil {
			return View{}, false, fmt.Errorf("tag_id=%q: %w", raw, ErrUnknownResource)
		}
		t, ok := c.Term(core.TaxonomyTag, id)
		if !ok {
			return View{}, false, fmt.Errorf("tag %d: %w", id, ErrUnknownResource)
		}
		return listing(core.KindTag, t)
	}
	if slug := vars["tag"]; slug != "" {
		return bySlug(core.KindTag, core.TaxonomyTag, slug)
	}
	if tax, slug := vars["taxonomy"], vars["term"]; tax != "" && slug != "" {
		return bySlug(core.KindTaxonomyTerm, tax, slug)
	}
	for _, tax := range c.Taxonomies() {
		if tax == core.TaxonomyCategory || tax == core.TaxonomyTag {
			continue
		}
		if slug := vars[tax]; slug != "" {
			return bySlug(core.KindTaxonomyTerm, tax, slug)
		}
	}
	return View{}, false, nil
}
