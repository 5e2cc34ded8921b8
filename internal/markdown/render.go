package markdown

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/yuin/goldmark/ast"

	"github.com/pfassina/dockyard/internal/theme"
)

// Styles are the lipgloss styles used when rendering a document.
type Styles struct {
	Heading lipgloss.Style
	Strong  lipgloss.Style
	Emph    lipgloss.Style
	Code    lipgloss.Style
	Link    lipgloss.Style
	Quote   lipgloss.Style
	Rule    lipgloss.Style
	Bullet  lipgloss.Style
}

func StylesFrom(th *theme.Theme) Styles {
	return Styles{
		Heading: lipgloss.NewStyle().Foreground(th.Accent).Bold(true),
		Strong:  lipgloss.NewStyle().Bold(true),
		Emph:    lipgloss.NewStyle().Italic(true),
		Code:    lipgloss.NewStyle().Foreground(th.LeaderMode),
		Link:    lipgloss.NewStyle().Foreground(th.Accent).Underline(true),
		Quote:   lipgloss.NewStyle().Foreground(th.Subtle),
		Rule:    lipgloss.NewStyle().Foreground(th.Border),
		Bullet:  lipgloss.NewStyle().Foreground(th.Accent),
	}
}

// Render lays the document out as lines no wider than width.
func (d *Document) Render(width int, st Styles) string {
	width = max(width, 10)
	r := renderer{src: d.source, st: st}
	var blocks []string
	for n := d.root.FirstChild(); n != nil; n = n.NextSibling() {
		if b := r.block(n, width); b != "" {
			blocks = append(blocks, b)
		}
	}
	return strings.Join(blocks, "\n\n")
}

type renderer struct {
	src []byte
	st  Styles
}

func (r renderer) block(n ast.Node, width int) string {
	switch n := n.(type) {
	case *ast.Heading:
		prefix := strings.Repeat("#", n.Level) + " "
		return r.st.Heading.Render(ansi.Wordwrap(prefix+plainText(n, r.src), width, ""))
	case *ast.Paragraph, *ast.TextBlock:
		return ansi.Wordwrap(r.inline(n), width, "")
	case *ast.ThematicBreak:
		return r.st.Rule.Render(strings.Repeat("─", width))
	case *ast.FencedCodeBlock, *ast.CodeBlock, *ast.HTMLBlock:
		return r.code(n, width)
	case *ast.Blockquote:
		bar := r.st.Quote.Render("│ ")
		var parts []string
		for c := n.FirstChild(); c != nil; c = c.NextSibling() {
			parts = append(parts, r.block(c, width-2))
		}
		lines := strings.Split(strings.Join(parts, "\n\n"), "\n")
		for i, l := range lines {
			lines[i] = bar + r.st.Quote.Render(l)
		}
		return strings.Join(lines, "\n")
	case *ast.List:
		return r.list(n, width)
	}
	return ansi.Wordwrap(plainText(n, r.src), width, "")
}

func (r renderer) code(n ast.Node, width int) string {
	lines := n.Lines()
	out := make([]string, 0, lines.Len())
	for i := 0; i < lines.Len(); i++ {
		seg := lines.At(i)
		l := strings.TrimRight(string(seg.Value(r.src)), "\n")
		out = append(out, r.st.Code.Render(ansi.Truncate("  "+l, width, "…")))
	}
	return strings.Join(out, "\n")
}

func (r renderer) list(l *ast.List, width int) string {
	var items []string
	num := l.Start
	for item := l.FirstChild(); item != nil; item = item.NextSibling() {
		marker := "• "
		if l.IsOrdered() {
			marker = fmt.Sprintf("%d. ", num)
			num++
		}
		indent := ansi.StringWidth(marker)
		var parts []string
		for c := item.FirstChild(); c != nil; c = c.NextSibling() {
			parts = append(parts, r.block(c, width-indent))
		}
		body := strings.Split(strings.Join(parts, "\n"), "\n")
		pad := strings.Repeat(" ", indent)
		for i := range body {
			if i == 0 {
				body[i] = r.st.Bullet.Render(marker) + body[i]
			} else {
				body[i] = pad + body[i]
			}
		}
		items = append(items, strings.Join(body, "\n"))
	}
	sep := "\n"
	if !l.IsTight {
		sep = "\n\n"
	}
	return strings.Join(items, sep)
}

// inline renders the children of a block with emphasis, code and links
// styled.
func (r renderer) inline(n ast.Node) string {
	var b strings.Builder
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		switch c := c.(type) {
		case *ast.Text:
			b.Write(c.Segment.Value(r.src))
			switch {
			case c.HardLineBreak():
				b.WriteByte('\n')
			case c.SoftLineBreak():
				b.WriteByte(' ')
			}
		case *ast.String:
			b.Write(c.Value)
		case *ast.Emphasis:
			st := r.st.Emph
			if c.Level >= 2 {
				st = r.st.Strong
			}
			b.WriteString(st.Render(r.inline(c)))
		case *ast.CodeSpan:
			b.WriteString(r.st.Code.Render(plainText(c, r.src)))
		case *ast.Link:
			b.WriteString(r.st.Link.Render(r.inline(c)))
		case *ast.AutoLink:
			b.WriteString(r.st.Link.Render(string(c.URL(r.src))))
		case *ast.Image:
			b.WriteString("[" + plainText(c, r.src) + "]")
		case *ast.RawHTML:
		default:
			b.WriteString(r.inline(c))
		}
	}
	return b.String()
}
