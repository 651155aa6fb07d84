// Package core defines the shared types and stage interfaces for printfriendly.
// Each stage of the print pipeline is a clean, testable interface.
package core

import (
	"context"
	"fmt"
	"strings"
	"time"
)

// PrintKey is the query variable that switches a request into print mode.
const PrintKey = "print"

// PrintRequest is derived once per request from its query variables.
type PrintRequest struct {
	Active       bool
	PageSelector string
}

// ResourceKind identifies the kind of view being rendered.
type ResourceKind int

const (
	KindHome ResourceKind = iota
	KindSinglePost
	KindCategory
	KindTag
	KindTaxonomyTerm
)

// String returns a stable lowercase name for the kind.
func (k ResourceKind) String() string {
	switch k {
	case KindHome:
		return "home"
	case KindSinglePost:
		return "single"
	case KindCategory:
		return "category"
	case KindTag:
		return "tag"
	case KindTaxonomyTerm:
		return "taxonomy"
	default:
		return "unknown"
	}
}

// ParseKind is the inverse of ResourceKind.String. "post" is accepted as an
// alias for "single".
func ParseKind(s string) (ResourceKind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "home":
		return KindHome, nil
	case "single", "post":
		return KindSinglePost, nil
	case "category":
		return KindCategory, nil
	case "tag":
		return KindTag, nil
	case "taxonomy":
		return KindTaxonomyTerm, nil
	default:
		return KindHome, fmt.Errorf("unknown resource kind %q", s)
	}
}

// Built-in taxonomy names.
const (
	TaxonomyCategory = "category"
	TaxonomyTag      = "post_tag"
)

// Resource describes the current view. Only the fields relevant to Kind are set.
type Resource struct {
	Kind     ResourceKind
	PostID   int
	Taxonomy string
	TermID   int
}

// HomeResource is the site front page.
func HomeResource() Resource { return Resource{Kind: KindHome} }

// PostResource is a single post or page.
func PostResource(id int) Resource { return Resource{Kind: KindSinglePost, PostID: id} }

// CategoryResource is a category listing.
func CategoryResource(id int) Resource {
	return Resource{Kind: KindCategory, Taxonomy: TaxonomyCategory, TermID: id}
}

// TagResource is a tag listing.
func TagResource(id int) Resource {
	return Resource{Kind: KindTag, Taxonomy: TaxonomyTag, TermID: id}
}

// TermResource is a listing for a term of an arbitrary taxonomy.
func TermResource(taxonomy string, id int) Resource {
	return Resource{Kind: KindTaxonomyTerm, Taxonomy: taxonomy, TermID: id}
}

// NewResource builds the resource of kind k. id is the post or term ID;
// taxonomy is only read for KindTaxonomyTerm.
func NewResource(k ResourceKind, id int, taxonomy string) Resource {
	switch k {
	case KindSinglePost:
		return PostResource(id)
	case KindCategory:
		return CategoryResource(id)
	case KindTag:
		return TagResource(id)
	case KindTaxonomyTerm:
		return TermResource(taxonomy, id)
	default:
		return HomeResource()
	}
}

// LinkReference is one endnote collected from a post body.
type LinkReference struct {
	Index int    `json:"index"`
	Text  string `json:"text"`
	URL   string `json:"url"`
}

// Post is a single publishable entry.
type Post struct {
	ID         int       `json:"id"`
	Slug       string    `json:"slug"`
	Type       string    `json:"type"`
	Title      string    `json:"title"`
	Author     string    `json:"author"`
	Date       time.Time `json:"date"`
	Body       string    `json:"-"`
	Categories []string  `json:"categories,omitempty"`
	Tags       []string  `json:"tags,omitempty"`
	// Taxonomies lists term slugs for custom taxonomies, keyed by taxonomy.
	Taxonomies map[string][]string `json:"taxonomies,omitempty"`
	SourceURL  string              `json:"source_url,omitempty"`
}

// PrintedPost is a post after the content pipeline ran.
type PrintedPost struct {
	Post     Post            `json:"post"`
	HTML     string          `json:"html"`
	Endnotes []LinkReference `json:"endnotes"`
}

// PrintView holds everything a renderer needs to produce one print view.
type PrintView struct {
	SiteName     string        `json:"site_name"`
	Template     string        `json:"template"`
	TemplatePath string        `json:"-"`
	BodyClasses  []string      `json:"body_classes"`
	Resource     Resource      `json:"-"`
	Posts        []PrintedPost `json:"posts"`
	PageLabel    string        `json:"page_label,omitempty"`
	PrintedFrom  string        `json:"printed_from,omitempty"`
	PrintedAt    time.Time     `json:"printed_at"`
}

// Title returns the heading used for the whole print view.
func (v *PrintView) Title() string {
	if len(v.Posts) == 1 {
		return v.Posts[0].Post.Title
	}
	return v.SiteName
}

// Resolver answers canonical URLs for resources. A false result means the
// resource has no URL.
type Resolver interface {
	HomeURL() string
	Permalink(postID int) (string, bool)
	TermLink(taxonomy string, termID int) (string, bool)
}

// FetchResult holds the raw HTML and response metadata from a fetch.
type FetchResult struct {
	URL        string
	StatusCode int
	HTML       string
}

// Fetcher retrieves raw HTML from a URL.
type Fetcher interface {
	Fetch(ctx context.Context, url string) (*FetchResult, error)
}

// Extractor pulls the main content from raw HTML, stripping noise.
type Extractor interface {
	Extract(html string) (string, error)
}

// Normalizer converts rendered HTML into Markdown.
type Normalizer interface {
	Normalize(html string) (string, error)
}

// Renderer converts a print view into a final output format.
type Renderer interface {
	Render(view *PrintView) ([]byte, error)
	// Extension returns the file extension for this renderer (e.g. ".md", ".pdf").
	Extension() string
}
