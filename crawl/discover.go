// Package crawl discovers the pages of a remote site for batch printing.
// It reads sitemap.xml when the site has one and otherwise follows
// internal links breadth-first from the start page.
package crawl

import (
	"context"
	"encoding/xml"
	"fmt"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/gaurav-prasanna/printfriendly/core"
)

// DefaultLimit caps the number of pages returned by DiscoverAll.
const DefaultLimit = 100

// SitemapNamespace is the XML namespace of sitemap documents.
const SitemapNamespace = "http://www.sitemaps.org/schemas/sitemap/0.9"

// URLSet is the root element of a sitemap.xml.
type URLSet struct {
	XMLName xml.Name     `xml:"urlset"`
	Xmlns   string       `xml:"xmlns,attr,omitempty"`
	URLs    []SitemapURL `xml:"url"`
}

// SitemapURL is one entry of a sitemap.
type SitemapURL struct {
	Loc     string `xml:"loc"`
	LastMod string `xml:"lastmod,omitempty"`
}

// DiscoverAll finds up to limit internal pages starting from baseURL. Print
// views and static assets are skipped. A limit of zero or less means
// DefaultLimit.
func DiscoverAll(ctx context.Context, baseURL string, fetcher core.Fetcher, limit int) ([]string, error) {
	parsed, err := url.Parse(baseURL)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return nil, fmt.Errorf("invalid base URL: %s", baseURL)
	}
	if limit <= 0 {
		limit = DefaultLimit
	}

	sitemapURL := fmt.Sprintf("%s://%s/sitemap.xml", parsed.Scheme, parsed.Host)
	if urls, err := discoverFromSitemap(ctx, sitemapURL, parsed.Host, fetcher, limit); err == nil && len(urls) > 0 {
		return urls, nil
	}
	return discoverFromLinks(ctx, baseURL, parsed.Host, fetcher, limit), nil
}

func discoverFromSitemap(ctx context.Context, sitemapURL, domain string, fetcher core.Fetcher, limit int) ([]string, error) {
	result, err := fetcher.Fetch(ctx, sitemapURL)
	if err != nil {
		return nil, err
	}

	var sitemap URLSet
	if err := xml.Unmarshal([]byte(result.HTML), &sitemap); err != nil {
		return nil, fmt.Errorf("parsing sitemap: %w", err)
	}

	f := newFrontier(limit)
	for _, u := range sitemap.URLs {
		if keep(u.Loc, domain) {
			f.add(NormalizeURL(u.Loc))
		}
	}
	return f.items, nil
}

// discoverFromLinks crawls breadth-first. Pages that fail to fetch are
// skipped but still reported, so the caller sees the error when printing.
func discoverFromLinks(ctx context.Context, startURL, domain string, fetcher core.Fetcher, limit int) []string {
	f := newFrontier(limit)
	f.add(NormalizeURL(startURL))

	for f.hasNext() && ctx.Err() == nil {
		current := f.next()

		result, err := fetcher.Fetch(ctx, current)
		if err != nil {
			continue
		}
		links, err := extractLinks(result.HTML, current)
		if err != nil {
			continue
		}
		for _, link := range links {
			if keep(link, domain) {
				f.add(NormalizeURL(link))
			}
		}
	}
	return f.items
}

func keep(link, domain string) bool {
	return IsSameDomain(link, domain) && !IsStaticAsset(link) && !IsPrintURL(link)
}

// extractLinks extracts all href values from <a> tags, resolving relative URLs.
func extractLinks(html, baseURL string) ([]string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, err
	}

	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, err
	}

	var links []string
	doc.Find("a[href]").Each(func(_ int, s *goquery.Selection) {
		if resolved := resolveURL(s.AttrOr("href", ""), base); resolved != "" {
			links = append(links, resolved)
		}
	})
	return links, nil
}

// resolveURL resolves a potentially relative URL against base.
func resolveURL(href string, base *url.URL) string {
	if href == "" || strings.HasPrefix(href, "#") {
		return ""
	}
	for _, scheme := range []string{"mailto:", "javascript:", "tel:"} {
		if strings.HasPrefix(href, scheme) {
			return ""
		}
	}

	parsed, err := url.Parse(href)
	if err != nil {
		return ""
	}
	resolved := base.ResolveReference(parsed)
	resolved.Fragment = ""
	return resolved.String()
}

// frontier is a bounded BFS queue that never yields a URL twice.
type frontier struct {
	items []string
	seen  map[string]bool
	idx   int
	limit int
}

func newFrontier(limit int) *frontier {
	return &frontier{seen: make(map[string]bool), limit: limit}
}

func (f *frontier) add(u string) {
	if f.seen[u] || len(f.items) >= f.limit {
		return
	}
	f.seen[u] = true
	f.items = append(f.items, u)
}

func (f *frontier) hasNext() bool { return f.idx < len(f.items) }

func (f *frontier) next() string {
	u := f.items[f.idx]
	f.idx++
	return u
}
