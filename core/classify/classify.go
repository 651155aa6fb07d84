// Package classify decides, from a request's query variables, whether print
// mode is active and which page of a multi-page post was selected.
package classify

import (
	"strconv"
	"strings"

	"github.com/gaurav-prasanna/printfriendly/core"
)

// Classify reports print mode for the given query variables. Print mode is
// active whenever the print key is present, whatever its value.
func Classify(queryVars map[string]string) core.PrintRequest {
	selector, ok := queryVars[core.PrintKey]
	return core.PrintRequest{Active: ok, PageSelector: selector}
}

// SelectPagination returns the page addressed by a selector of the form
// "<x>/<n>". Any other shape leaves current untouched and returns false.
func SelectPagination(selector string, current int) (int, bool) {
	segments := strings.Split(selector, "/")
	if len(segments) != 2 {
		return current, false
	}
	n, err := strconv.Atoi(segments[1])
	if err != nil {
		return current, false
	}
	return n, true
}

// WantsAllPages reports whether the selector asks for the full, flattened
// content of a multi-page post.
func WantsAllPages(selector string) bool {
	return selector == "" || selector == "all" || selector == "/all"
}

// NormalizeRequest treats a request for the page named "print" as a print
// request for the home page. It returns a new map and never alters queryVars.
func NormalizeRequest(queryVars map[string]string) map[string]string {
	out := make(map[string]string, len(queryVars))
	for k, v := range queryVars {
		out[k] = v
	}
	if out["pagename"] == core.PrintKey {
		out[core.PrintKey] = ""
		delete(out, "page")
		delete(out, "pagename")
	}
	return out
}
