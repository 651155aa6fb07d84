package site

import (
	"net/url"
	"slices"
	"strconv"
	"strings"

	"github.com/gaurav-prasanna/printfriendly/core"
	"github.com/gaurav-prasanna/printfriendly/core/printurl"
)

// QueryVars turns a request URL into query variables. Query-style sites read
// the query string as-is; path-style sites additionally map the path through
// the rewrite rules in ParsePath.
func (c *Catalog) QueryVars(u *url.URL) map[string]string {
	vars := make(map[string]string)
	if c.settings.Mode == printurl.PathMode {
		path := u.Path
		if base, err := url.Parse(c.settings.BaseURL); err == nil && base.Path != "" {
			path = strings.TrimPrefix(path, base.Path)
		}
		for k, v := range c.ParsePath(path) {
			vars[k] = v
		}
	}
	for k, v := range u.Query() {
		if _, set := vars[k]; !set && len(v) > 0 {
			vars[k] = v[0]
		}
	}
	return vars
}

// ParsePath applies the path-style rewrite rules:
//
//	/<slug>[/<n>][/print[/<x>]]
//	/category/<slug>[/print[/<x>]]
//	/tag/<slug>[/print[/<x>]]
//	/<taxonomy>/<slug>[/print[/<x>]]
//	/<post-type>/<slug>[/<n>][/print[/<x>]]
//	/print
//
// The print variable holds "/<x>" when a trailing segment follows the print
// segment and "" otherwise.
func (c *Catalog) ParsePath(path string) map[string]string {
	vars := make(map[string]string)

	segments := splitPath(path)
	if i := slices.Index(segments, printurl.Segment); i >= 0 {
		rest := segments[i+1:]
		segments = segments[:i]
		if len(segments) == 0 && len(rest) == 0 {
			vars["pagename"] = printurl.Segment
			return vars
		}
		vars[core.PrintKey] = ""
		if len(rest) > 0 {
			vars[core.PrintKey] = "/" + strings.Join(rest, "/")
		}
	}

	switch {
	case len(segments) == 0:
	case len(segments) == 2 && segments[0] == "category":
		vars["category_name"] = segments[1]
	case len(segments) == 2 && segments[0] == "tag":
		vars["tag"] = segments[1]
	case len(segments) == 2 && slices.Contains(c.Taxonomies(), segments[0]):
		vars["taxonomy"] = segments[0]
		vars["term"] = segments[1]
	case len(segments) >= 2 && c.IsCustomPostType(segments[0]):
		vars[segments[0]] = segments[1]
		setPage(vars, segments[2:])
	default:
		vars["name"] = segments[0]
		setPage(vars, segments[1:])
	}
	return vars
}

func setPage(vars map[string]string, rest []string) {
	if len(rest) == 1 {
		if _, err := strconv.Atoi(rest[0]); err == nil {
			vars["page"] = rest[0]
		}
	}
}

func splitPath(path string) []string {
	var out []string
	for _, s := range strings.Split(path, "/") {
		if s != "" {
			out = append(out, s)
		}
	}
	return out
}
