package markdown

import (
	"bytes"
	"strings"

	"github.com/yuin/goldmark/ast"
)

// Heading represents a markdown heading.
type Heading struct {
	Level int
	Text  string
	Line  int // 1-based line number in the body
}

func headings(root ast.Node, source []byte) []Heading {
	var out []Heading
	ast.Walk(root, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		h, ok := n.(*ast.Heading)
		if !entering || !ok {
			return ast.WalkContinue, nil
		}
		txt := strings.TrimSpace(plainText(h, source))
		if txt == "" {
			return ast.WalkSkipChildren, nil
		}
		line := 1
		if lines := h.Lines(); lines.Len() > 0 {
			line += bytes.Count(source[:lines.At(0).Start], []byte("\n"))
		}
		out = append(out, Heading{Level: h.Level, Text: txt, Line: line})
		return ast.WalkSkipChildren, nil
	})
	return out
}

// plainText concatenates the text below n without styling.
func plainText(n ast.Node, source []byte) string {
	var b strings.Builder
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		switch c := c.(type) {
		case *ast.Text:
			b.Write(c.Segment.Value(source))
			if c.SoftLineBreak() || c.HardLineBreak() {
				b.WriteByte(' ')
			}
		case *ast.String:
			b.Write(c.Value)
		case *ast.AutoLink:
			b.Write(c.Label(source))
		default:
			b.WriteString(plainText(c, source))
		}
	}
	return b.String()
}
