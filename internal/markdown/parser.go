// Package markdown parses documents with goldmark and renders them as
// styled terminal text.
package markdown

import (
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// Parser wraps goldmark for markdown processing.
type Parser struct {
	md goldmark.Markdown
}

func NewParser() *Parser {
	return &Parser{
		md: goldmark.New(),
	}
}

// Document is a parsed markdown file.
type Document struct {
	Frontmatter *Frontmatter
	Headings    []Heading
	source      []byte
	root        ast.Node
}

// Parse parses content, setting any frontmatter aside.
func (p *Parser) Parse(content []byte) *Document {
	fm, body := splitFrontmatter(content)
	root := p.md.Parser().Parse(text.NewReader(body))
	return &Document{
		Frontmatter: fm,
		Headings:    headings(root, body),
		source:      body,
		root:        root,
	}
}

// Title is the frontmatter title, else the first heading, else "".
func (d *Document) Title() string {
	if d.Frontmatter != nil && d.Frontmatter.Title != "" {
		return d.Frontmatter.Title
	}
	if len(d.Headings) > 0 {
		return d.Headings[0].Text
	}
	return ""
}
