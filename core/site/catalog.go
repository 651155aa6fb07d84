// Package site resolves canonical URLs and query variables against the set of
// posts and terms that make up a site.
package site

import (
	"errors"
	"fmt"
	"slices"
	"sort"
	"strconv"
	"strings"

	"github.com/gaurav-prasanna/printfriendly/core"
	"github.com/gaurav-prasanna/printfriendly/core/printurl"
)

// ErrUnknownResource is returned when query variables name nothing on the site.
var ErrUnknownResource = errors.New("unknown resource")

// Built-in post types.
const (
	TypePost = "post"
	TypePage = "page"
)

// Settings describe how the site builds its URLs.
type Settings struct {
	Name          string
	BaseURL       string
	Mode          printurl.Mode
	TrailingSlash bool
	Terms         []Term
}

// Term is one entry of a taxonomy.
type Term struct {
	Taxonomy string `mapstructure:"taxonomy" yaml:"taxonomy"`
	ID       int    `mapstructure:"id" yaml:"id"`
	Slug     string `mapstructure:"slug" yaml:"slug"`
	Name     string `mapstructure:"name" yaml:"name"`
}

// View is a resolved request: the resource and the posts it displays.
type View struct {
	Resource core.Resource
	Posts    []core.Post
	// PostType is set for single views; Term for listings.
	PostType string
	Term     *Term
}

// Catalog holds the posts and terms of a site. It is read-only after
// NewCatalog returns and safe for concurrent use.
type Catalog struct {
	settings Settings
	posts    []core.Post
	byID     map[int]int
	terms    []Term
}

// NewCatalog indexes posts and terms. Terms referenced by posts but not
// declared in settings are created with fresh IDs.
func NewCatalog(settings Settings, posts []core.Post) (*Catalog, error) {
	settings.BaseURL = strings.TrimSuffix(strings.TrimSpace(settings.BaseURL), "/")
	if settings.BaseURL == "" {
		return nil, fmt.Errorf("site base URL is required")
	}

	c := &Catalog{
		settings: settings,
		byID:     make(map[int]int, len(posts)),
	}

	for _, p := range posts {
		if p.ID <= 0 {
			return nil, fmt.Errorf("post %q has no positive id", p.Slug)
		}
		if _, dup := c.byID[p.ID]; dup {
			return nil, fmt.Errorf("duplicate post id %d", p.ID)
		}
		if p.Type == "" {
			p.Type = TypePost
		}
		c.byID[p.ID] = len(c.posts)
		c.posts = append(c.posts, p)
	}

	maxID := 0
	for _, t := range settings.Terms {
		if t.Taxonomy == "" || t.Slug == "" {
			return nil, fmt.Errorf("term %d needs a taxonomy and a slug", t.ID)
		}
		maxID = max(maxID, t.ID)
		c.terms = append(c.terms, t)
	}

	// Undeclared terms get IDs in a stable order.
	var missing []Term
	for _, p := range c.posts {
		for tax, slugs := range postTerms(p) {
			for _, slug := range slugs {
				if _, ok := c.termBySlug(tax, slug); ok || containsTerm(missing, tax, slug) {
					continue
				}
				missing = append(missing, Term{Taxonomy: tax, Slug: slug, Name: slug})
			}
		}
	}
	sort.Slice(missing, func(i, j int) bool {
		if missing[i].Taxonomy != missing[j].Taxonomy {
			return missing[i].Taxonomy < missing[j].Taxonomy
		}
		return missing[i].Slug < missing[j].Slug
	})
	for _, t := range missing {
		maxID++
		t.ID = maxID
		c.terms = append(c.terms, t)
	}

	return c, nil
}

// Settings returns the site settings.
func (c *Catalog) Settings() Settings { return c.settings }

// Posts returns all posts in load order.
func (c *Catalog) Posts() []core.Post { return slices.Clone(c.posts) }

// Post returns the post with id.
func (c *Catalog) Post(id int) (core.Post, bool) {
	i, ok := c.byID[id]
	if !ok {
		return core.Post{}, false
	}
	return c.posts[i], true
}

// PostBySlug returns the first post with slug, optionally restricted to postType.
func (c *Catalog) PostBySlug(slug, postType string) (core.Post, bool) {
	for _, p := range c.posts {
		if p.Slug == slug && (postType == "" || p.Type == postType) {
			return p, true
		}
	}
	return core.Post{}, false
}

// Term returns the term with id in taxonomy.
func (c *Catalog) Term(taxonomy string, id int) (Term, bool) {
	for _, t := range c.terms {
		if t.Taxonomy == taxonomy && t.ID == id {
			return t, true
		}
	}
	return Term{}, false
}

func (c *Catalog) termBySlug(taxonomy, slug string) (Term, bool) {
	for _, t := range c.terms {
		if t.Taxonomy == taxonomy && t.Slug == slug {
			return t, true
		}
	}
	return Term{}, false
}

// RegisteredPostTypes lists the built-in types followed by any custom types
// found in the catalog.
func (c *Catalog) RegisteredPostTypes() []string {
	out := []string{TypePost, TypePage}
	for _, p := range c.posts {
		if !slices.Contains(out, p.Type) {
			out = append(out, p.Type)
		}
	}
	return out
}

// IsCustomPostType reports whether name is a non-built-in post type.
func (c *Catalog) IsCustomPostType(name string) bool {
	return name != TypePost && name != TypePage && slices.Contains(c.RegisteredPostTypes(), name)
}

// Taxonomies lists the taxonomies with at least one term.
func (c *Catalog) Taxonomies() []string {
	var out []string
	for _, t := range c.terms {
		if !slices.Contains(out, t.Taxonomy) {
			out = append(out, t.Taxonomy)
		}
	}
	return out
}

// HomeURL implements core.Resolver.
func (c *Catalog) HomeURL() string {
	return c.settings.BaseURL + "/"
}

// Permalink implements core.Resolver.
func (c *Catalog) Permalink(id int) (string, bool) {
	p, ok := c.Post(id)
	if !ok {
		return "", false
	}
	if p.SourceURL != "" {
		return p.SourceURL, true
	}

	if c.settings.Mode == printurl.QueryMode {
		switch p.Type {
		case TypePost:
			return c.HomeURL() + "?p=" + strconv.Itoa(p.ID), true
		case TypePage:
			return c.HomeURL() + "?page_id=" + strconv.Itoa(p.ID), true
		default:
			return c.HomeURL() + "?" + p.Type + "=" + p.Slug, true
		}
	}

	if p.Type == TypePost || p.Type == TypePage {
		return c.pathLink(p.Slug), true
	}
	return c.pathLink(p.Type, p.Slug), true
}

// TermLink implements core.Resolver.
func (c *Catalog) TermLink(taxonomy string, id int) (string, bool) {
	t, ok := c.Term(taxonomy, id)
	if !ok {
		return "", false
	}

	if c.settings.Mode == printurl.QueryMode {
		switch taxonomy {
		case core.TaxonomyCategory:
			return c.HomeURL() + "?cat=" + strconv.Itoa(t.ID), true
		case core.TaxonomyTag:
			return c.HomeURL() + "?tag=" + t.Slug, true
		default:
			return c.HomeURL() + "?" + taxonomy + "=" + t.Slug, true
		}
	}

	switch taxonomy {
	case core.TaxonomyCategory:
		return c.pathLink("category", t.Slug), true
	case core.TaxonomyTag:
		return c.pathLink("tag", t.Slug), true
	default:
		return c.pathLink(taxonomy, t.Slug), true
	}
}

// CanonicalURL returns the non-print URL of resource.
func (c *Catalog) CanonicalURL(r core.Resource) (string, bool) {
	switch r.Kind {
	case core.KindHome:
		return c.HomeURL(), true
	case core.KindSinglePost:
		return c.Permalink(r.PostID)
	default:
		return c.TermLink(r.Taxonomy, r.TermID)
	}
}

func (c *Catalog) pathLink(segments ...string) string {
	link := c.settings.BaseURL + "/" + strings.Join(segments, "/")
	if c.settings.TrailingSlash {
		link += "/"
	}
	return link
}

// postsWithTerm returns posts tagged with t, newest first.
func (c *Catalog) postsWithTerm(t Term) []core.Post {
	var out []core.Post
	for _, p := range c.posts {
		if slices.Contains(postTerms(p)[t.Taxonomy], t.Slug) {
			out = append(out, p)
		}
	}
	sortNewestFirst(out)
	return out
}

// homePosts returns every post of type post, newest first.
func (c *Catalog) homePosts() []core.Post {
	var out []core.Post
	for _, p := range c.posts {
		if p.Type == TypePost {
			out = append(out, p)
		}
	}
	sortNewestFirst(out)
	return out
}

func sortNewestFirst(posts []core.Post) {
	sort.SliceStable(posts, func(i, j int) bool {
		return posts[i].Date.After(posts[j].Date)
	})
}

func postTerms(p core.Post) map[string][]string {
	out := make(map[string][]string, len(p.Taxonomies)+2)
	for tax, slugs := range p.Taxonomies {
		out[tax] = slugs
	}
	if len(p.Categories) > 0 {
		out[core.TaxonomyCategory] = p.Categories
	}
	if len(p.Tags) > 0 {
		out[core.TaxonomyTag] = p.Tags
	}
	return out
}

func containsTerm(terms []Term, taxonomy, slug string) bool {
	for _, t := range terms {
		if t.Taxonomy == taxonomy && t.Slug == slug {
			return true
		}
	}
	return false
}
