package site

import (
	"errors"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gaurav-prasanna/printfriendly/core"
	"github.com/gaurav-prasanna/printfriendly/core/printurl"
)

func testPosts() []core.Post {
	day := func(d int) time.Time { return time.Date(2024, 1, d, 0, 0, 0, 0, time.UTC) }
	return []core.Post{
		{ID: 1, Slug: "hello-world", Type: "post", Title: "Hello", Date: day(1), Categories: []string{"news"}, Tags: []string{"go"}},
		{ID: 2, Slug: "about", Type: "page", Title: "About", Date: day(2)},
		{ID: 3, Slug: "pancakes", Type: "recipe", Title: "Pancakes", Date: day(3), Taxonomies: map[string][]string{"cuisine": {"breakfast"}}},
		{ID: 4, Slug: "second", Title: "Second", Date: day(4), Categories: []string{"news"}},
	}
}

func newCatalog(t *testing.T, mode printurl.Mode, trailing bool) *Catalog {
	t.Helper()
	c, err := NewCatalog(Settings{
		Name:          "Example",
		BaseURL:       "https://example.com/",
		Mode:          mode,
		TrailingSlash: trailing,
		Terms:         []Term{{Taxonomy: core.TaxonomyCategory, ID: 7, Slug: "news", Name: "News"}},
	}, testPosts())
	require.NoError(t, err)
	return c
}

func TestNewCatalog_Errors(t *testing.T) {
	_, err := NewCatalog(Settings{}, nil)
	require.Error(t, err)

	_, err = NewCatalog(Settings{BaseURL: "https://x"}, []core.Post{{ID: 0, Slug: "a"}})
	require.Error(t, err)

	_, err = NewCatalog(Settings{BaseURL: "https://x"}, []core.Post{{ID: 1}, {ID: 1}})
	require.Error(t, err)
}

func TestNewCatalog_AssignsTermIDs(t *testing.T) {
	c := newCatalog(t, printurl.PathMode, true)

	news, ok := c.termBySlug(core.TaxonomyCategory, "news")
	require.True(t, ok)
	assert.Equal(t, 7, news.ID)

	breakfast, ok := c.termBySlug("cuisine", "breakfast")
	require.True(t, ok)
	goTag, ok := c.termBySlug(core.TaxonomyTag, "go")
	require.True(t, ok)
	assert.Equal(t, 8, breakfast.ID)
	assert.Equal(t, 9, goTag.ID)
}

func TestRegisteredPostTypes(t *testing.T) {
	c := newCatalog(t, printurl.PathMode, true)
	assert.Equal(t, []string{"post", "page", "recipe"}, c.RegisteredPostTypes())
	assert.True(t, c.IsCustomPostType("recipe"))
	assert.False(t, c.IsCustomPostType("page"))
}

func TestPermalinks_PathMode(t *testing.T) {
	c := newCatalog(t, printurl.PathMode, true)

	link, ok := c.Permalink(1)
	require.True(t, ok)
	assert.Equal(t, "https://example.com/hello-world/", link)

	link, _ = c.Permalink(3)
	assert.Equal(t, "https://example.com/recipe/pancakes/", link)

	link, _ = c.TermLink(core.TaxonomyCategory, 7)
	assert.Equal(t, "https://example.com/category/news/", link)

	link, _ = c.TermLink(core.TaxonomyTag, 9)
	assert.Equal(t, "https://example.com/tag/go/", link)

	_, ok = c.Permalink(99)
	assert.False(t, ok)
	_, ok = c.TermLink(core.TaxonomyTag, 99)
	assert.False(t, ok)

	assert.Equal(t, "https://example.com/", c.HomeURL())
}

func TestPermalinks_QueryMode(t *testing.T) {
	c := newCatalog(t, printurl.QueryMode, false)

	link, _ := c.Permalink(1)
	assert.Equal(t, "https://example.com/?p=1", link)
	link, _ = c.Permalink(2)
	assert.Equal(t, "https://example.com/?page_id=2", link)
	link, _ = c.Permalink(3)
	assert.Equal(t, "https://example.com/?recipe=pancakes", link)
	link, _ = c.TermLink(core.TaxonomyCategory, 7)
	assert.Equal(t, "https://example.com/?cat=7", link)
	link, _ = c.TermLink("cuisine", 8)
	assert.Equal(t, "https://example.com/?cuisine=breakfast", link)
}

func TestResolve(t *testing.T) {
	c := newCatalog(t, printurl.PathMode, true)

	view, err := c.Resolve(map[string]string{"p": "1"})
	require.NoError(t, err)
	assert.Equal(t, core.PostResource(1), view.Resource)
	assert.Equal(t, "post", view.PostType)

	view, err = c.Resolve(map[string]string{"name": "about"})
	require.NoError(t, err)
	assert.Equal(t, core.PostResource(2), view.Resource)

	view, err = c.Resolve(map[string]string{"recipe": "pancakes"})
	require.NoError(t, err)
	assert.Equal(t, core.PostResource(3), view.Resource)

	view, err = c.Resolve(map[string]string{"category_name": "news"})
	require.NoError(t, err)
	assert.Equal(t, core.CategoryResource(7), view.Resource)
	require.Len(t, view.Posts, 2)
	assert.Equal(t, 4, view.Posts[0].ID, "newest first")

	view, err = c.Resolve(map[string]string{"tag": "go"})
	require.NoError(t, err)
	assert.Equal(t, core.TagResource(9), view.Resource)

	view, err = c.Resolve(map[string]string{"cuisine": "breakfast"})
	require.NoError(t, err)
	assert.Equal(t, core.TermResource("cuisine", 8), view.Resource)
	require.NotNil(t, view.Term)
	assert.Equal(t, "cuisine", view.Term.Taxonomy)

	view, err = c.Resolve(map[string]string{"print": ""})
	require.NoError(t, err)
	assert.Equal(t, core.HomeResource(), view.Resource)
	assert.Len(t, view.Posts, 2, "home lists posts only")
}

func TestResolve_Unknown(t *testing.T) {
	c := newCatalog(t, printurl.PathMode, true)

	for _, vars := range []map[string]string{
		{"p": "99"},
		{"p": "abc"},
		{"name": "missing"},
		{"cat": "42"},
		{"tag": "rust"},
		{"taxonomy": "cuisine", "term": "dinner"},
	} {
		_, err := c.Resolve(vars)
		assert.True(t, errors.Is(err, ErrUnknownResource), "%v", vars)
	}
}

func TestParsePath(t *testing.T) {
	c := newCatalog(t, printurl.PathMode, true)

	tests := []struct {
		path string
		want map[string]string
	}{
		{path: "/", want: map[string]string{}},
		{path: "/print/", want: map[string]string{"pagename": "print"}},
		{path: "/hello-world/", want: map[string]string{"name": "hello-world"}},
		{path: "/hello-world/2/", want: map[string]string{"name": "hello-world", "page": "2"}},
		{path: "/hello-world/print/", want: map[string]string{"name": "hello-world", "print": ""}},
		{path: "/hello-world/print/3/", want: map[string]string{"name": "hello-world", "print": "/3"}},
		{path: "/hello-world/2/print/", want: map[string]string{"name": "hello-world", "page": "2", "print": ""}},
		{path: "/category/news/print/", want: map[string]string{"category_name": "news", "print": ""}},
		{path: "/tag/go/print/all", want: map[string]string{"tag": "go", "print": "/all"}},
		{path: "/cuisine/breakfast/print/", want: map[string]string{"taxonomy": "cuisine", "term": "breakfast", "print": ""}},
		{path: "/recipe/pancakes/print/2", want: map[string]string{"recipe": "pancakes", "print": "/2"}},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			assert.Equal(t, tt.want, c.ParsePath(tt.path))
		})
	}
}

func TestQueryVars(t *testing.T) {
	path := newCatalog(t, printurl.PathMode, true)
	u, _ := url.Parse("https://example.com/hello-world/print/2/?utm=x")
	assert.Equal(t, map[string]string{"name": "hello-world", "print": "/2", "utm": "x"}, path.QueryVars(u))

	query := newCatalog(t, printurl.QueryMode, false)
	u, _ = url.Parse("https://example.com/?p=1&print=2&page=2")
	assert.Equal(t, map[string]string{"p": "1", "print": "2", "page": "2"}, query.QueryVars(u))
}

func TestCanonicalURL(t *testing.T) {
	c := newCatalog(t, printurl.PathMode, false)
	link, ok := c.CanonicalURL(core.PostResource(1))
	require.True(t, ok)
	assert.Equal(t, "https://example.com/hello-world", link)

	link, _ = c.CanonicalURL(core.HomeResource())
	assert.Equal(t, "https://example.com/", link)
}
