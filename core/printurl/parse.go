package printurl

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

// ParseURL recovers the page number addressed by a print URL built in mode.
// It returns false for URLs that address the full content or are not print
// URLs at all.
func ParseURL(raw string, mode Mode) (int, bool) {
	u, err := url.Parse(raw)
	if err != nil {
		return 0, false
	}

	if mode == QueryMode {
		q := u.Query()
		if _, ok := q[Segment]; !ok {
			return 0, false
		}
		if n, err := strconv.Atoi(q.Get("page")); err == nil {
			return n, true
		}
		if n, err := strconv.Atoi(q.Get(Segment)); err == nil {
			return n, true
		}
		return 0, false
	}

	segments := strings.Split(strings.Trim(u.Path, "/"), "/")
	for i := len(segments) - 1; i >= 0; i-- {
		if segments[i] != Segment {
			continue
		}
		if i+1 < len(segments) {
			if n, err := strconv.Atoi(segments[i+1]); err == nil {
				return n, true
			}
		}
		return 0, false
	}
	return 0, false
}

// ParsePage reads a page selector as typed by a user: "all" or "" for the
// full content, "current" for the sentinel, or a page number.
func ParsePage(s string) (Page, error) {
	switch s = strings.ToLower(strings.TrimSpace(s)); s {
	case "", "all":
		return AllPages(), nil
	case "current":
		return CurrentPageSentinel(), nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return Page{}, fmt.Errorf("invalid page %q (want all, current or a number)", s)
	}
	return PageNumber(n), nil
}
