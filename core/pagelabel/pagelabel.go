// Package pagelabel formats "page N of M" labels for print views of a single
// page of a multi-page post.
package pagelabel

import (
	"strconv"

	"github.com/gaurav-prasanna/printfriendly/core"
	"github.com/gaurav-prasanna/printfriendly/core/classify"
	"github.com/gaurav-prasanna/printfriendly/core/pages"
)

// Format returns before + current + sep + total + after. It returns false
// outside print mode, when the full content was requested, or when content
// has no page-break markers.
func Format(req core.PrintRequest, content, before, sep, after string) (string, bool) {
	current, _ := classify.SelectPagination(req.PageSelector, 1)
	return FormatPage(req, current, content, before, sep, after)
}

// FormatPage is Format with the current page already resolved by the host,
// as in query-style URLs where the page travels in its own variable.
func FormatPage(req core.PrintRequest, current int, content, before, sep, after string) (string, bool) {
	if !req.Active || classify.WantsAllPages(req.PageSelector) || !pages.Has(content) {
		return "", false
	}
	if current < 1 {
		current = 1
	}
	return before + strconv.Itoa(current) + sep + strconv.Itoa(pages.Total(content)) + after, true
}
