package source

import (
	"context"
	"fmt"
	"net/url"
	"path"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/gaurav-prasanna/printfriendly/core"
)

// FromURL fetches a remote page and turns its main content into a post.
// The page URL becomes the post permalink.
func FromURL(ctx context.Context, rawURL string, fetcher core.Fetcher, extractor core.Extractor) (core.Post, error) {
	parsed, err := url.Parse(rawURL)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return core.Post{}, fmt.Errorf("invalid URL: %s (must include scheme, e.g. https://example.com)", rawURL)
	}

	result, err := fetcher.Fetch(ctx, rawURL)
	if err != nil {
		return core.Post{}, fmt.Errorf("fetch: %w", err)
	}

	body, err := extractor.Extract(result.HTML)
	if err != nil {
		return core.Post{}, fmt.Errorf("extract: %w", err)
	}

	slug := path.Base(strings.TrimSuffix(parsed.Path, "/"))
	if slug == "." || slug == "/" || slug == "" {
		slug = parsed.Host
	}

	title, author := pageMeta(result.HTML)
	if title == "" {
		title = slug
	}

	return core.Post{
		ID:        1,
		Slug:      slug,
		Type:      "post",
		Title:     title,
		Author:    author,
		Body:      body,
		SourceURL: rawURL,
	}, nil
}

// pageMeta reads the document title and author meta tag.
func pageMeta(html string) (title, author string) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return "", ""
	}
	title = strings.TrimSpace(doc.Find("title").First().Text())
	author, _ = doc.Find(`meta[name="author"]`).First().Attr("content")
	return title, strings.TrimSpace(author)
}
