// Package normalize turns markup subtrees into clean, bounded plain text.
package normalize

import (
	"strings"
	"unicode/utf8"

	"github.com/antchfx/xmlquery"
	"golang.org/x/net/html"
	"golang.org/x/text/unicode/norm"
)

// Whitespace composes the text to NFC, collapses every whitespace run
// (including newlines) to a single space and trims both ends.
func Whitespace(s string) string {
	return strings.Join(strings.Fields(norm.NFC.String(s)), " ")
}

// Truncate cuts s to at most n code points. It is not word-boundary aware and
// adds no ellipsis. n <= 0 means no limit.
func Truncate(s string, n int) string {
	if n <= 0 || utf8.RuneCountInString(s) <= n {
		return s
	}
	i := 0
	for pos := range s {
		if i == n {
			return s[:pos]
		}
		i++
	}
	return s
}

// Clean normalizes whitespace and truncates to n code points.
func Clean(s string, n int) string {
	return Truncate(Whitespace(s), n)
}

// Lead returns the lower-cased first n code points of s.
func Lead(s string, n int) string {
	return strings.ToLower(Truncate(s, n))
}

// Len returns the length of s in code points.
func Len(s string) int {
	return utf8.RuneCountInString(s)
}

// htmlNoise lists elements whose content never counts as text.
var htmlNoise = map[string]bool{
	"script": true,
	"style":  true,
}

// HTMLText returns the normalized text under n, skipping scripts and styles.
func HTMLText(n *html.Node) string {
	if n == nil {
		return ""
	}
	var buf strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		switch n.Type {
		case html.TextNode:
			buf.WriteString(n.Data)
			return
		case html.ElementNode:
			if htmlNoise[strings.ToLower(n.Data)] {
				return
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return Whitespace(buf.String())
}

// XMLSkipFunc reports whether an element subtree is excluded from text.
type XMLSkipFunc func(*xmlquery.Node) bool

// XMLText returns the normalized text under n. Elements for which skip
// returns true are left out together with their descendants.
func XMLText(n *xmlquery.Node, skip XMLSkipFunc) string {
	if n == nil {
		return ""
	}
	var buf strings.Builder
	var walk func(*xmlquery.Node)
	walk = func(n *xmlquery.Node) {
		switch n.Type {
		case xmlquery.TextNode, xmlquery.CharDataNode:
			buf.WriteString(n.Data)
			return
		case xmlquery.CommentNode, xmlquery.DeclarationNode, xmlquery.AttributeNode:
			return
		case xmlquery.ElementNode:
			if skip != nil && skip(n) {
				return
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return Whitespace(buf.String())
}

// SkipElements returns an XMLSkipFunc matching the given local element names.
func SkipElements(names ...string) XMLSkipFunc {
	set := make(map[string]bool, len(names))
	for _, name := range names {
		set[name] = true
	}
	return func(n *xmlquery.Node) bool {
		return set[n.Data]
	}
}

// AnySkip combines skip functions; an element is skipped if any of them
// matches.
func AnySkip(fns ...XMLSkipFunc) XMLSkipFunc {
	return func(n *xmlquery.Node) bool {
		for _, fn := range fns {
			if fn != nil && fn(n) {
				return true
			}
		}
		return false
	}
}
