// Package printurl builds canonical print-mode URLs for site resources.
//
// Path-style sites get a print segment appended to the resource URL
// (<base>/print[/<page>]); query-style sites get a print query parameter
// (<base>?print=<page|all>[&page=<page>]).
package printurl

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/gaurav-prasanna/printfriendly/core"
)

// Segment is the path segment that marks a print URL on path-style sites.
const Segment = "print"

// Mode selects how request parameters are encoded in site URLs.
type Mode int

const (
	// PathMode encodes parameters as path segments.
	PathMode Mode = iota
	// QueryMode encodes parameters as query-string pairs.
	QueryMode
)

// ParseMode accepts "path" or "query".
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "path", "":
		return PathMode, nil
	case "query":
		return QueryMode, nil
	default:
		return PathMode, fmt.Errorf("unknown permalink mode %q (want path or query)", s)
	}
}

func (m Mode) String() string {
	if m == QueryMode {
		return "query"
	}
	return "path"
}

type pageKind int

const (
	pageAll pageKind = iota
	pageNumber
	pageSentinel
)

// Page selects which part of a resource the print URL addresses.
type Page struct {
	kind pageKind
	n    int
}

// AllPages addresses the full content.
func AllPages() Page { return Page{kind: pageAll} }

// PageNumber addresses page n. Negative values address the full content.
func PageNumber(n int) Page {
	if n < 0 {
		return AllPages()
	}
	return Page{kind: pageNumber, n: n}
}

// CurrentPageSentinel is a request for a per-page link that cannot be
// represented. Build always answers it with no URL.
func CurrentPageSentinel() Page { return Page{kind: pageSentinel} }

// Number returns the page number and whether one was given.
func (p Page) Number() (int, bool) {
	return p.n, p.kind == pageNumber
}

// Builder produces print URLs. It holds no mutable state; identical inputs
// always yield identical URLs.
type Builder struct {
	Resolver      core.Resolver
	Mode          Mode
	TrailingSlash bool
}

// New creates a Builder.
func New(resolver core.Resolver, mode Mode, trailingSlash bool) *Builder {
	return &Builder{Resolver: resolver, Mode: mode, TrailingSlash: trailingSlash}
}

// Build returns the print URL for resource, or false when print mode is not
// supported for it.
func (b *Builder) Build(resource core.Resource, page Page) (string, bool) {
	if page.kind == pageSentinel {
		return "", false
	}

	base, ok := b.base(resource)
	if !ok || base == "" {
		return "", false
	}

	if b.Mode == QueryMode {
		return b.queryURL(base, page), true
	}
	return b.pathURL(base, page), true
}

// base resolves the canonical URL of resource.
func (b *Builder) base(resource core.Resource) (string, bool) {
	if b.Resolver == nil {
		return "", false
	}
	switch resource.Kind {
	case core.KindSinglePost:
		if resource.PostID <= 0 {
			return "", false
		}
		return b.Resolver.Permalink(resource.PostID)
	case core.KindHome:
		return b.Resolver.HomeURL(), true
	case core.KindCategory, core.KindTag, core.KindTaxonomyTerm:
		return b.Resolver.TermLink(resource.Taxonomy, resource.TermID)
	default:
		return "", false
	}
}

func (b *Builder) pathURL(base string, page Page) string {
	head, tail := splitSuffix(base)

	link := strings.TrimSuffix(head, "/") + "/" + Segment
	if n, ok := page.Number(); ok {
		link += "/" + strconv.Itoa(n)
	}
	if b.TrailingSlash {
		link += "/"
	}
	return link + tail
}

func (b *Builder) queryURL(base string, page Page) string {
	n, ok := page.Number()
	if !ok {
		return addQueryArg(base, Segment, "all")
	}
	v := strconv.Itoa(n)
	return addQueryArg(addQueryArg(base, Segment, v), "page", v)
}

// splitSuffix separates the query string and fragment from a URL.
func splitSuffix(link string) (head, tail string) {
	if i := strings.IndexAny(link, "?#"); i >= 0 {
		return link[:i], link[i:]
	}
	return link, ""
}

// addQueryArg sets key=value on link, replacing an existing value for key and
// keeping the order of other parameters and any fragment.
func addQueryArg(link, key, value string) string {
	var fragment string
	if i := strings.IndexByte(link, '#'); i >= 0 {
		link, fragment = link[:i], link[i:]
	}

	head, query, _ := strings.Cut(link, "?")

	pairs := make([]string, 0, 4)
	if query != "" {
		for _, pair := range strings.Split(query, "&") {
			if pair == "" {
				continue
			}
			k, _, _ := strings.Cut(pair, "=")
			if name, err := url.QueryUnescape(k); err == nil && name == key {
				continue
			}
			pairs = append(pairs, pair)
		}
	}
	pairs = append(pairs, url.QueryEscape(key)+"="+url.QueryEscape(value))

	return head + "?" + strings.Join(pairs, "&") + fragment
}
