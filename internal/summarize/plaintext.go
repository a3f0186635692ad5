package summarize

import (
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

var markdown = goldmark.New()

// PlainText flattens model output written in Markdown. Emphasis, links and
// heading markers are dropped, blocks are separated by a blank line and list
// items are kept one per line with a "- " prefix.
func PlainText(md string) string {
	src := []byte(md)
	doc := markdown.Parser().Parse(text.NewReader(src))

	var blocks []string
	collectBlocks(doc, src, &blocks)
	return strings.Join(blocks, "\n\n")
}

func collectBlocks(n ast.Node, src []byte, out *[]string) {
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		switch c.Kind() {
		case ast.KindParagraph, ast.KindHeading, ast.KindTextBlock:
			appendBlock(out, inlineText(c, src))
		case ast.KindCodeBlock, ast.KindFencedCodeBlock:
			appendBlock(out, blockLines(c, src))
		case ast.KindList:
			var items []string
			for item := c.FirstChild(); item != nil; item = item.NextSibling() {
				var parts []string
				collectBlocks(item, src, &parts)
				if len(parts) > 0 {
					items = append(items, "- "+strings.Join(parts, " "))
				}
			}
			appendBlock(out, strings.Join(items, "\n"))
		case ast.KindThematicBreak, ast.KindHTMLBlock:
		default:
			collectBlocks(c, src, out)
		}
	}
}

func appendBlock(out *[]string, s string) {
	if s = strings.TrimSpace(s); s != "" {
		*out = append(*out, s)
	}
}

func inlineText(n ast.Node, src []byte) string {
	var buf strings.Builder
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		switch v := c.(type) {
		case *ast.Text:
			buf.Write(v.Segment.Value(src))
			if v.SoftLineBreak() || v.HardLineBreak() {
				buf.WriteByte(' ')
			}
		case *ast.String:
			buf.Write(v.Value)
		case *ast.AutoLink:
			buf.Write(v.Label(src))
		case *ast.RawHTML:
		default:
			buf.WriteString(inlineText(c, src))
		}
	}
	return buf.String()
}

func blockLines(n ast.Node, src []byte) string {
	var buf strings.Builder
	lines := n.Lines()
	for i := 0; i < lines.Len(); i++ {
		seg := lines.At(i)
		buf.Write(seg.Value(src))
	}
	return buf.String()
}
