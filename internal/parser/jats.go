package parser

import (
	"encoding/xml"
	"errors"
	"io"
	"strings"

	"github.com/antchfx/xmlquery"
	"golang.org/x/net/html/charset"

	"github.com/dgallion1/papersum/internal/classify"
	"github.com/dgallion1/papersum/internal/document"
	"github.com/dgallion1/papersum/internal/normalize"
)

// JATSExtractor handles journal-article XML as served by the PMC
// E-utilities efetch endpoint.
type JATSExtractor struct{}

// jatsNoise matches subtrees that are never section content.
var jatsNoise = normalize.AnySkip(
	normalize.SkipElements("ref-list", "ref", "fig", "table-wrap", "fn-group"),
	isCitationMarker,
)

// jatsParseOptions keeps the decoder strict but resolves HTML named entities
// such as &nbsp;, which hand-saved articles often carry without a DTD.
var jatsParseOptions = xmlquery.ParserOptions{
	Decoder: &xmlquery.DecoderOptions{
		Strict:        true,
		Entity:        xml.HTMLEntity,
		CharsetReader: charset.NewReaderLabel,
	},
}

func (p *JATSExtractor) Extract(r io.Reader) (*document.Extraction, error) {
	doc, err := xmlquery.ParseWithOptions(r, jatsParseOptions)
	if err != nil {
		return nil, &document.ParseError{Format: document.FormatXML, Err: err}
	}
	return p.ExtractTree(doc)
}

// ExtractTree runs the structural pass and the paragraph fallback over an
// already parsed article tree.
func (p *JATSExtractor) ExtractTree(doc *xmlquery.Node) (*document.Extraction, error) {
	if doc == nil || rootElement(doc) == nil {
		return nil, &document.ParseError{Format: document.FormatXML, Err: errors.New("no root element")}
	}

	out := &document.Extraction{
		Title:    jatsTitle(doc),
		Abstract: jatsAbstract(doc),
	}

	body := xmlquery.FindOne(doc, "//body")
	if body == nil {
		return out, nil
	}

	fillFromFragments(&out.Sections, jatsSections(body), titleLead, classifySection)
	if !out.Sections.Complete() {
		applyParagraphFallbacks(&out.Sections, jatsParagraphs(body))
	}
	return out, nil
}

func jatsTitle(doc *xmlquery.Node) string {
	group := xmlquery.FindOne(doc, "//title-group")
	if group == nil {
		return document.UntitledPMC
	}
	title := normalize.XMLText(xmlquery.FindOne(group, ".//article-title"), nil)
	if title == "" {
		return document.UntitledPMC
	}
	return title
}

func jatsAbstract(doc *xmlquery.Node) string {
	abstract := xmlquery.FindOne(doc, "//abstract")
	return normalize.XMLText(abstract, normalize.SkipElements("title", "label"))
}

// jatsSections turns each top-level <sec> of body into a fragment hinted by
// its own title.
func jatsSections(body *xmlquery.Node) []document.Fragment {
	var out []document.Fragment
	for _, sec := range xmlquery.Find(body, "./sec") {
		titleNode := xmlquery.FindOne(sec, "./title")
		skip := jatsNoise
		if titleNode != nil {
			skip = normalize.AnySkip(jatsNoise, func(n *xmlquery.Node) bool { return n == titleNode })
		}
		out = append(out, document.Fragment{
			Text:      normalize.Truncate(normalize.XMLText(sec, skip), document.MaxSectionChars),
			TitleHint: strings.ToLower(normalize.XMLText(titleNode, nil)),
		})
	}
	return out
}

// jatsParagraphs returns the cleaned text of every <p> under body in
// document order, leaving out captions and notes inside noise subtrees.
// Paragraphs are not truncated here; the length gates look at the full text.
func jatsParagraphs(body *xmlquery.Node) []string {
	var out []string
	for _, p := range xmlquery.Find(body, ".//p") {
		if insideNoise(p, body) {
			continue
		}
		if t := normalize.XMLText(p, jatsNoise); t != "" {
			out = append(out, t)
		}
	}
	return out
}

func insideNoise(n, stop *xmlquery.Node) bool {
	for a := n.Parent; a != nil && a != stop; a = a.Parent {
		if jatsNoise(a) {
			return true
		}
	}
	return false
}

func isCitationMarker(n *xmlquery.Node) bool {
	return n.Data == "xref" && n.SelectAttr("ref-type") == "bibr"
}

func rootElement(doc *xmlquery.Node) *xmlquery.Node {
	for c := doc.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == xmlquery.ElementNode {
			return c
		}
	}
	return nil
}

func titleLead(f document.Fragment) string {
	return f.TitleHint
}

func classifySection(lead string) (document.Category, bool) {
	return classify.Classify(lead, classify.Sections)
}

// paragraphFallback picks a paragraph for one category. Each fallback scans
// the whole paragraph sequence on its own, so one paragraph may satisfy
// several categories.
type paragraphFallback struct {
	category document.Category
	accept   func(text string) bool
}

var paragraphFallbacks = []paragraphFallback{
	{category: document.Introduction, accept: longerThan(minParagraphChars)},
	cueFallback(document.MaterialsMethods),
	cueFallback(document.Results),
	cueFallback(document.Discussion),
}

func longerThan(n int) func(string) bool {
	return func(text string) bool {
		return normalize.Len(text) > n
	}
}

func cueFallback(c document.Category) paragraphFallback {
	group, _ := classify.Lookup(classify.ParagraphCues, c)
	return paragraphFallback{
		category: c,
		accept: func(text string) bool {
			return group.Matches(normalize.Lead(text, paragraphLeadChars))
		},
	}
}

func applyParagraphFallbacks(sections *document.Sections, paragraphs []string) {
	for _, fb := range paragraphFallbacks {
		if sections.Get(fb.category) != "" {
			continue
		}
		for _, text := range paragraphs {
			if fb.accept(text) {
				sections.Fill(fb.category, normalize.Truncate(text, document.MaxSectionChars))
				break
			}
		}
	}
}
