package markdown

import (
	"bytes"
	"strings"
)

// Frontmatter is the --- delimited key: value block at the top of a
// document. Only flat keys are understood.
type Frontmatter struct {
	Title string
	Tags  []string
	Raw   map[string]string
}

// splitFrontmatter separates a leading frontmatter block from the body.
// Without a closed block the whole input is body.
func splitFrontmatter(content []byte) (*Frontmatter, []byte) {
	rest, ok := bytes.CutPrefix(content, []byte("---\n"))
	if !ok {
		return nil, content
	}
	head, body, ok := bytes.Cut(rest, []byte("\n---"))
	if !ok {
		return nil, content
	}
	// Drop the remainder of the closing delimiter line.
	if i := bytes.IndexByte(body, '\n'); i >= 0 {
		body = body[i+1:]
	} else {
		body = nil
	}

	fm := &Frontmatter{Raw: make(map[string]string)}
	for _, line := range strings.Split(string(head), "\n") {
		key, val, ok := strings.Cut(line, ":")
		if !ok {
			continue
		}
		key, val = strings.TrimSpace(key), strings.TrimSpace(val)
		fm.Raw[key] = val
		switch key {
		case "title":
			fm.Title = strings.Trim(val, `"'`)
		case "tags":
			for _, tag := range strings.Split(strings.Trim(val, "[]"), ",") {
				if tag = strings.TrimSpace(tag); tag != "" {
					fm.Tags = append(fm.Tags, tag)
				}
			}
		}
	}
	return fm, body
}
