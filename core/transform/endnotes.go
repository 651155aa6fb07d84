package transform

import (
	"html"
	"regexp"
	"strconv"
	"strings"

	"github.com/gaurav-prasanna/printfriendly/core"
)

// anchorRegex is a best-effort anchor matcher, not an HTML parser. It
// tolerates attributes around href but misses anchors spanning lines and
// mishandles quotes nested inside attribute values.
var anchorRegex = regexp.MustCompile(`(?i)<a\s[^>]*?href\s*=\s*["']([^"']*)["'][^>]*>(.*?)</a>`)

var imageRegex = regexp.MustCompile(`(?i)<img\b[^>]*>`)

// ImagePlaceholder replaces images inside link text in endnote entries.
const ImagePlaceholder = "[Image]"

// Endnotes replaces every anchor in content with its text followed by a
// bracketed index and appends a numbered list of the link targets headed by
// label. Indexes start at 1 in document order. Content without anchors is
// returned unchanged with no endnote block.
func Endnotes(content, label string) (string, []core.LinkReference) {
	var refs []core.LinkReference

	out := anchorRegex.ReplaceAllStringFunc(content, func(match string) string {
		m := anchorRegex.FindStringSubmatch(match)
		if m == nil {
			return match
		}
		index := len(refs) + 1
		refs = append(refs, core.LinkReference{
			Index: index,
			Text:  imageRegex.ReplaceAllString(m[2], ImagePlaceholder),
			URL:   m[1],
		})
		return m[2] + "[" + strconv.Itoa(index) + "]"
	})

	if len(refs) == 0 {
		return content, nil
	}
	return out + EndnoteBlock(label, refs), refs
}

// EndnoteBlock renders the endnote list for refs.
func EndnoteBlock(label string, refs []core.LinkReference) string {
	var b strings.Builder
	b.WriteString(`<div id="print-endnotes"><strong>`)
	b.WriteString(label)
	b.WriteString(`</strong><ol>`)
	for _, ref := range refs {
		b.WriteString("<li>")
		b.WriteString(ref.Text)
		b.WriteString(": ")
		b.WriteString(html.EscapeString(ref.URL))
		b.WriteString("</li>")
	}
	b.WriteString(`</ol></div><!-- #print-endnotes -->`)
	return b.String()
}
