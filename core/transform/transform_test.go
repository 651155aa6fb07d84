package transform

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gaurav-prasanna/printfriendly/core"
	"github.com/gaurav-prasanna/printfriendly/core/options"
	"github.com/gaurav-prasanna/printfriendly/core/printurl"
)

// fakeLinks answers print URLs by page without consulting a site.
type fakeLinks struct{ unsupported bool }

func (f fakeLinks) Build(_ core.Resource, page printurl.Page) (string, bool) {
	if f.unsupported {
		return "", false
	}
	if n, ok := page.Number(); ok {
		return fmt.Sprintf("https://example.com/post/print/%d/", n), true
	}
	return "https://example.com/post/print/", true
}

func TestFlatten(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "no newlines", in: "p1<!--nextpage-->p2<!--nextpage-->p3", want: "p1 p2 p3"},
		{name: "both sides", in: "p1\n<!--nextpage-->\np2", want: "p1\n\np2"},
		{name: "trailing only", in: "p1<!--nextpage-->\np2", want: "p1\np2"},
		{name: "leading only", in: "p1\n<!--nextpage-->p2", want: "p1\np2"},
		{name: "no markers", in: "plain text", want: "plain text"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Flatten(tt.in)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, got, Flatten(got), "flattening twice is a no-op")
		})
	}
}

func TestEndnotes_Scenario(t *testing.T) {
	in := "A <a href='http://x.com'>X</a> B <a href='http://y.com'>Y</a>"

	out, refs := Endnotes(in, "Endnotes")

	require.True(t, strings.HasPrefix(out, "A X[1] B Y[2]"))
	require.Equal(t, []core.LinkReference{
		{Index: 1, Text: "X", URL: "http://x.com"},
		{Index: 2, Text: "Y", URL: "http://y.com"},
	}, refs)
	assert.Contains(t, out, `<div id="print-endnotes"><strong>Endnotes</strong><ol><li>X: http://x.com</li><li>Y: http://y.com</li></ol></div>`)
}

func TestEndnotes_NoLinks(t *testing.T) {
	out, refs := Endnotes("just text", "Endnotes")
	assert.Equal(t, "just text", out)
	assert.Empty(t, refs)
}

func TestEndnotes_AttributesAndImages(t *testing.T) {
	in := `<a class="c" href="https://a.example/?q=1&r=2" target="_blank">first</a>` +
		`<A HREF="https://b.example"><img src="pic.png" alt="p"></A>` +
		`<a rel="x" href="https://a.example/?q=1&r=2">first</a>`

	out, refs := Endnotes(in, "Links")

	require.Len(t, refs, 3)
	for i, ref := range refs {
		assert.Equal(t, i+1, ref.Index)
	}
	assert.Equal(t, "[Image]", refs[1].Text)
	assert.True(t, strings.HasPrefix(out, `first[1]<img src="pic.png" alt="p">[2]first[3]`))
	assert.Contains(t, out, "<li>first: https://a.example/?q=1&amp;r=2</li>")
	assert.Contains(t, out, "<li>[Image]: https://b.example</li>")
	assert.Contains(t, out, "<strong>Links</strong>")
}

func TestEndnotes_MalformedPassesThrough(t *testing.T) {
	in := "<a href=\"broken>never closed"
	out, refs := Endnotes(in, "Endnotes")
	assert.Equal(t, in, out)
	assert.Empty(t, refs)
}

func TestAutoLinks_Placement(t *testing.T) {
	opts := options.Defaults()
	c := Context{Resource: core.PostResource(1), Post: core.Post{Body: "body"}, Content: "body"}
	link := `<p class="wpf_wrapper"><a class="print_link" href="https://example.com/post/print/">Print this entry</a></p><!-- .wpf_wrapper -->`

	opts.Placement = options.PlacementBelow
	assert.Equal(t, "body"+link, AutoLinks(c, opts, fakeLinks{}))

	opts.Placement = options.PlacementAbove
	assert.Equal(t, link+"body", AutoLinks(c, opts, fakeLinks{}))

	opts.Placement = options.PlacementBoth
	assert.Equal(t, link+"body"+link, AutoLinks(c, opts, fakeLinks{}))
}

func TestAutoLinks_PageLink(t *testing.T) {
	opts := options.Defaults()
	opts.LinkTarget = options.TargetNew
	c := Context{
		Resource:    core.PostResource(1),
		Post:        core.Post{Body: "one<!--nextpage-->two"},
		Content:     "two",
		CurrentPage: 2,
	}

	got := AutoLinks(c, opts, fakeLinks{})

	assert.Contains(t, got, `<a class="print_link" href="https://example.com/post/print/" target="_blank">Print this entry</a> | `)
	assert.Contains(t, got, `<a class="print_link print_link_cur" href="https://example.com/post/print/2/" target="_blank">Print this page</a>`)

	c.CurrentPage = 0
	assert.Contains(t, AutoLinks(c, opts, fakeLinks{}), `/print/1/`)

	opts.PageLinkText = ""
	assert.NotContains(t, AutoLinks(c, opts, fakeLinks{}), "_cur")
}

func TestAutoLinks_NoPageLinkWithoutMarkers(t *testing.T) {
	c := Context{Resource: core.PostResource(1), Post: core.Post{Body: "single"}, Content: "single"}
	assert.NotContains(t, AutoLinks(c, options.Defaults(), fakeLinks{}), "_cur")
}

func TestAutoLinks_UnsupportedResource(t *testing.T) {
	c := Context{Resource: core.PostResource(1), Content: "body"}
	assert.Equal(t, "body", AutoLinks(c, options.Defaults(), fakeLinks{unsupported: true}))
	assert.Equal(t, "body", AutoLinks(c, options.Defaults(), nil))
}

func TestPipeline_PrintModeAllPages(t *testing.T) {
	p := NewPipeline(options.Defaults(), fakeLinks{}, nil)
	post := core.Post{ID: 1, Type: "post", Body: `p1<!--nextpage--><a href="http://x.com">X</a>`}

	res := p.Apply(Context{
		Request:  core.PrintRequest{Active: true, PageSelector: "all"},
		Resource: core.PostResource(1),
		Post:     post,
		Content:  "p1",
	})

	assert.True(t, strings.HasPrefix(res.Content, "p1 X[1]"))
	require.Len(t, res.Endnotes, 1)
	assert.NotContains(t, res.Content, "wpf_wrapper", "no auto links in print mode")
}

func TestPipeline_PrintModeSinglePageKeepsContent(t *testing.T) {
	p := NewPipeline(options.Defaults(), fakeLinks{}, nil)
	post := core.Post{ID: 1, Type: "post", Body: "p1<!--nextpage-->p2"}

	res := p.Apply(Context{
		Request: core.PrintRequest{Active: true, PageSelector: "/2"},
		Post:    post,
		Content: "p2",
	})

	assert.Equal(t, "p2", res.Content)
	assert.Empty(t, res.Endnotes)
}

func TestPipeline_EndnotesDisabled(t *testing.T) {
	opts := options.Defaults()
	opts.EndnotesEnabled = false
	p := NewPipeline(opts, fakeLinks{}, nil)

	res := p.Apply(Context{
		Request: core.PrintRequest{Active: true, PageSelector: "/1"},
		Content: `<a href="http://x.com">X</a>`,
	})
	assert.Equal(t, `<a href="http://x.com">X</a>`, res.Content)
}

func TestPipeline_NormalViewAutoLinks(t *testing.T) {
	opts := options.Defaults()
	opts.AutoInsert = true
	p := NewPipeline(opts, fakeLinks{}, nil)

	c := Context{
		Resource: core.PostResource(1),
		Post:     core.Post{ID: 1, Type: "post", Body: `<a href="http://x.com">X</a>`},
		Content:  `<a href="http://x.com">X</a>`,
	}
	res := p.Apply(c)
	assert.Contains(t, res.Content, "wpf_wrapper")
	assert.Contains(t, res.Content, `<a href="http://x.com">X</a>`, "links untouched outside print mode")

	c.Post.Type = "attachment"
	assert.NotContains(t, p.Apply(c).Content, "wpf_wrapper", "ineligible post type")
}
