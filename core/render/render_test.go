package render

import (
	"bytes"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gaurav-prasanna/printfriendly/core"
)

func testView() *core.PrintView {
	return &core.PrintView{
		SiteName:    "Example",
		Template:    "wpf-plugin-default",
		BodyClasses: []string{"single", "wpf-plugin-default"},
		Resource:    core.PostResource(1),
		Posts: []core.PrintedPost{{
			Post: core.Post{ID: 1, Title: "Hello", Author: "Ana"},
			HTML: `<p>Read X[1] now</p><div id="print-endnotes"><strong>Endnotes</strong><ol><li>X: http://x.com</li></ol></div>`,
			Endnotes: []core.LinkReference{
				{Index: 1, Text: "X", URL: "http://x.com"},
			},
		}},
		PageLabel:   "Page 1 of 2",
		PrintedFrom: "https://example.com/hello/",
		PrintedAt:   time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC),
	}
}

func TestHTMLRenderer(t *testing.T) {
	r := NewHTMLRenderer()
	out, err := r.Render(testView())
	require.NoError(t, err)

	assert.Equal(t, ".html", r.Extension())
	assert.Contains(t, string(out), "<h1>Hello</h1>")
	assert.Contains(t, string(out), "Read X[1] now")
	assert.Contains(t, string(out), "Page 1 of 2")
}

func TestMarkdownRenderer(t *testing.T) {
	r := NewMarkdownRenderer()
	out, err := r.Render(testView())
	require.NoError(t, err)

	md := string(out)
	assert.Equal(t, ".md", r.Extension())
	assert.Contains(t, md, "# Hello\n\nby Ana")
	assert.Contains(t, md, "Endnotes")
	assert.Contains(t, md, "Page 1 of 2")
	assert.Contains(t, md, "Printed from https://example.com/hello/")
}

func TestJSONRenderer(t *testing.T) {
	r := NewJSONRenderer()
	out, err := r.Render(testView())
	require.NoError(t, err)

	var got struct {
		Metadata struct {
			Site      string `json:"site"`
			Resource  string `json:"resource"`
			PrintedAt string `json:"printed_at"`
		} `json:"metadata"`
		Posts []struct {
			Endnotes []core.LinkReference `json:"endnotes"`
		} `json:"posts"`
	}
	require.NoError(t, json.Unmarshal(out, &got))

	assert.Equal(t, "Example", got.Metadata.Site)
	assert.Equal(t, "single", got.Metadata.Resource)
	assert.Equal(t, "2025-01-02T03:04:05Z", got.Metadata.PrintedAt)
	require.Len(t, got.Posts, 1)
	assert.Equal(t, "http://x.com", got.Posts[0].Endnotes[0].URL)
}

func TestJSONRenderer_EmptyView(t *testing.T) {
	out, err := NewJSONRenderer().Render(&core.PrintView{SiteName: "Example"})
	require.NoError(t, err)
	assert.Contains(t, string(out), `"posts": []`)
}

func TestPDFRenderer(t *testing.T) {
	r := NewPDFRenderer()
	out, err := r.Render(testView())
	require.NoError(t, err)

	assert.Equal(t, ".pdf", r.Extension())
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF-")))
}

func TestCleanInline(t *testing.T) {
	assert.Equal(t, "see docs and code", cleanInline("see [docs](http://x.com) and `code`"))
	assert.Equal(t, "bold X[1]", cleanInline(`**bold** X\[1\]`))
}
