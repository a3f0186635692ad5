package parser

import (
	"io"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"

	"github.com/dgallion1/papersum/internal/document"
	"github.com/dgallion1/papersum/internal/normalize"
)

// HTMLExtractor handles arbitrary web pages with no reliable section
// semantics.
type HTMLExtractor struct{}

func (p *HTMLExtractor) Extract(r io.Reader) (*document.Extraction, error) {
	root, err := html.Parse(r)
	if err != nil {
		return nil, &document.ParseError{Format: document.FormatHTML, Err: err}
	}
	return p.ExtractDocument(goquery.NewDocumentFromNode(root)), nil
}

// ExtractDocument runs the keyword scan and the positional fallback over an
// already parsed page.
func (p *HTMLExtractor) ExtractDocument(doc *goquery.Document) *document.Extraction {
	out := &document.Extraction{
		Title:    htmlTitle(doc),
		Abstract: htmlAbstract(doc),
	}

	fillFromFragments(&out.Sections, htmlBlocks(doc), blockLead, classifySection)
	if !out.Sections.Complete() {
		applyPositionalFallback(&out.Sections, substantialParagraphs(doc))
	}
	return out
}

func htmlTitle(doc *goquery.Document) string {
	if t := selectionText(doc.Find("title").First()); t != "" {
		return t
	}
	if t := metaContent(doc, `meta[property="og:title"]`); t != "" {
		return t
	}
	return document.UntitledDocument
}

// abstractStrategy proposes an abstract; an empty result passes to the next
// strategy.
type abstractStrategy func(doc *goquery.Document) string

var abstractStrategies = []abstractStrategy{
	metaAbstract(`meta[name="description"]`),
	metaAbstract(`meta[property="og:description"]`),
	markedAbstract("div, section, p", "class"),
	markedAbstract("[id]", "id"),
	leadingParagraphAbstract,
	documentTextAbstract,
}

func htmlAbstract(doc *goquery.Document) string {
	for _, strategy := range abstractStrategies {
		if a := strategy(doc); a != "" {
			return a
		}
	}
	return ""
}

func metaAbstract(selector string) abstractStrategy {
	return func(doc *goquery.Document) string {
		return metaContent(doc, selector)
	}
}

// markedAbstract picks the first element matching selector whose attr value
// contains "abstract", case-insensitively.
func markedAbstract(selector, attr string) abstractStrategy {
	return func(doc *goquery.Document) string {
		marked := doc.Find(selector).FilterFunction(func(_ int, s *goquery.Selection) bool {
			v, _ := s.Attr(attr)
			return strings.Contains(strings.ToLower(v), "abstract")
		}).First()
		return normalize.Truncate(selectionText(marked), document.MaxFallbackAbstractChars)
	}
}

func leadingParagraphAbstract(doc *goquery.Document) string {
	var out string
	doc.Find("p").EachWithBreak(func(i int, s *goquery.Selection) bool {
		if i >= abstractProbeCount {
			return false
		}
		if t := selectionText(s); normalize.Len(t) > minParagraphChars {
			out = normalize.Truncate(t, document.MaxFallbackAbstractChars)
			return false
		}
		return true
	})
	return out
}

func documentTextAbstract(doc *goquery.Document) string {
	return normalize.Truncate(selectionText(doc.Selection), document.MaxFallbackAbstractChars)
}

// htmlBlocks returns every p/div/section long enough to classify, in
// document order.
func htmlBlocks(doc *goquery.Document) []document.Fragment {
	var out []document.Fragment
	doc.Find("p, div, section").Each(func(_ int, s *goquery.Selection) {
		t := selectionText(s)
		if normalize.Len(t) < minBlockChars {
			return
		}
		out = append(out, document.Fragment{Text: normalize.Truncate(t, document.MaxSectionChars)})
	})
	return out
}

func blockLead(f document.Fragment) string {
	return normalize.Lead(f.Text, blockLeadChars)
}

// substantialParagraphs returns the text of every <p> longer than
// minParagraphChars, in document order.
func substantialParagraphs(doc *goquery.Document) []string {
	var out []string
	doc.Find("p").Each(func(_ int, s *goquery.Selection) {
		if t := selectionText(s); normalize.Len(t) > minParagraphChars {
			out = append(out, t)
		}
	})
	return out
}

// applyPositionalFallback maps the N-th substantial paragraph to the N-th
// category. Categories already filled keep their value; the paragraph at
// their position is not reused.
func applyPositionalFallback(sections *document.Sections, paragraphs []string) {
	for i, c := range document.Categories {
		if i >= len(paragraphs) {
			return
		}
		sections.Fill(c, normalize.Truncate(paragraphs[i], document.MaxSectionChars))
	}
}

func metaContent(doc *goquery.Document, selector string) string {
	v, _ := doc.Find(selector).First().Attr("content")
	return strings.TrimSpace(v)
}

func selectionText(s *goquery.Selection) string {
	if s == nil || len(s.Nodes) == 0 {
		return ""
	}
	return normalize.HTMLText(s.Nodes[0])
}
