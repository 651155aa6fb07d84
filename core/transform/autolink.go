package transform

import (
	"html"
	"strings"

	"github.com/gaurav-prasanna/printfriendly/core"
	"github.com/gaurav-prasanna/printfriendly/core/options"
	"github.com/gaurav-prasanna/printfriendly/core/pages"
	"github.com/gaurav-prasanna/printfriendly/core/printurl"
)

// LinkBuilder produces print URLs; *printurl.Builder satisfies it.
type LinkBuilder interface {
	Build(resource core.Resource, page printurl.Page) (string, bool)
}

// AutoLinks places print links around c.Content according to opts. The
// primary link addresses the whole resource; when the post has several pages
// and opts.PageLinkText is set, a second link addresses the current page.
// Content is returned as-is when the resource has no print URL.
func AutoLinks(c Context, opts options.Options, links LinkBuilder) string {
	content := c.Content
	if links == nil {
		return content
	}
	primary, ok := links.Build(c.Resource, printurl.AllPages())
	if !ok {
		return content
	}

	var b strings.Builder
	b.WriteString(`<p class="wpf_wrapper">`)
	writeAnchor(&b, opts.CSSClass, primary, opts.PrimaryLinkText, opts.LinkTarget)

	if opts.PageLinkText != "" && pages.Has(c.Post.Body) {
		current := c.CurrentPage
		if current < 1 {
			current = 1
		}
		if pageURL, ok := links.Build(c.Resource, printurl.PageNumber(current)); ok {
			b.WriteString(" | ")
			writeAnchor(&b, opts.CSSClass+" "+opts.CSSClass+"_cur", pageURL, opts.PageLinkText, opts.LinkTarget)
		}
	}
	b.WriteString(`</p><!-- .wpf_wrapper -->`)
	block := b.String()

	switch opts.Placement {
	case options.PlacementAbove:
		return block + content
	case options.PlacementBoth:
		return block + content + block
	default:
		return content + block
	}
}

func writeAnchor(b *strings.Builder, class, href, text string, target options.LinkTarget) {
	b.WriteString(`<a class="`)
	b.WriteString(class)
	b.WriteString(`" href="`)
	b.WriteString(html.EscapeString(href))
	b.WriteString(`"`)
	if target == options.TargetNew {
		b.WriteString(` target="_blank"`)
	}
	b.WriteString(`>`)
	b.WriteString(text)
	b.WriteString(`</a>`)
}
