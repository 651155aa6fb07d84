// Package transform rewrites post content for print views.
//
// The pipeline runs three stages in order: flattening multi-page bodies
// (print mode only), inserting print links (normal views only), and turning
// hyperlinks into numbered endnotes (print mode only). Every stage is a pure
// string transform; content it does not recognize passes through unchanged.
package transform

import (
	"strings"

	"github.com/gaurav-prasanna/printfriendly/core/pages"
)

// flattenRules are applied in order; earlier rules consume the newlines
// later rules would otherwise see.
var flattenRules = []struct{ from, to string }{
	{"\n" + pages.Marker + "\n", "\n\n"},
	{"\n" + pages.Marker, "\n"},
	{pages.Marker + "\n", "\n"},
	{pages.Marker, " "},
}

// Flatten joins all pages of a multi-page body into one.
func Flatten(body string) string {
	for _, r := range flattenRules {
		body = strings.ReplaceAll(body, r.from, r.to)
	}
	return body
}
