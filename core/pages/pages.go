// Package pages handles the page-break markers that split a post into
// several logical pages.
package pages

import "strings"

// Marker delimits one logical page of a multi-page post.
const Marker = "<!--nextpage-->"

// Has reports whether body contains at least one page-break marker.
func Has(body string) bool {
	return strings.Contains(body, Marker)
}

// Count returns the number of page-break markers in body.
func Count(body string) int {
	return strings.Count(body, Marker)
}

// Total returns the number of logical pages in body.
func Total(body string) int {
	return Count(body) + 1
}

// Split breaks body into its logical pages, trimming the newlines that
// surround each marker.
func Split(body string) []string {
	parts := strings.Split(body, Marker)
	for i, p := range parts {
		if i > 0 {
			p = strings.TrimPrefix(p, "\n")
		}
		if i < len(parts)-1 {
			p = strings.TrimSuffix(p, "\n")
		}
		parts[i] = p
	}
	return parts
}

// Page returns the 1-based page n of body. Out-of-range values clamp to the
// first or last page.
func Page(body string, n int) string {
	parts := Split(body)
	switch {
	case n < 1:
		n = 1
	case n > len(parts):
		n = len(parts)
	}
	return parts[n-1]
}
