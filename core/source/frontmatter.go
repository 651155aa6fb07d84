package source

import (
	"bytes"
	"errors"
	"time"

	"gopkg.in/yaml.v3"
)

// ErrMissingClosingDelimiter is returned when front matter is opened but never closed.
var ErrMissingClosingDelimiter = errors.New("front matter: missing closing delimiter")

// frontMatter is the YAML header of a content file.
type frontMatter struct {
	ID         int                 `yaml:"id"`
	Slug       string              `yaml:"slug"`
	Type       string              `yaml:"type"`
	Title      string              `yaml:"title"`
	Author     string              `yaml:"author"`
	Date       time.Time           `yaml:"date"`
	Categories []string            `yaml:"categories"`
	Tags       []string            `yaml:"tags"`
	Taxonomies map[string][]string `yaml:"taxonomies"`
}

// splitFrontMatter separates `---` delimited YAML from the body. Content
// without an opening delimiter is all body.
func splitFrontMatter(content []byte) (header, body []byte, err error) {
	content = bytes.ReplaceAll(content, []byte("\r\n"), []byte("\n"))

	open := []byte("---\n")
	if !bytes.HasPrefix(content, open) {
		return nil, content, nil
	}
	rest := content[len(open):]
	if bytes.HasPrefix(rest, open) {
		return nil, rest[len(open):], nil
	}

	idx := bytes.Index(rest, []byte("\n---\n"))
	if idx < 0 {
		if bytes.HasSuffix(rest, []byte("\n---")) {
			return rest[:len(rest)-len("\n---")+1], nil, nil
		}
		return nil, nil, ErrMissingClosingDelimiter
	}
	return rest[:idx+1], rest[idx+len("\n---\n"):], nil
}

func parseFrontMatter(header []byte) (frontMatter, error) {
	var fm frontMatter
	if len(header) == 0 {
		return fm, nil
	}
	if err := yaml.Unmarshal(header, &fm); err != nil {
		return fm, err
	}
	return fm, nil
}
