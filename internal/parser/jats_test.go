package parser

import (
	"errors"
	"strings"
	"testing"

	"github.com/dgallion1/papersum/internal/document"
	"github.com/dgallion1/papersum/internal/normalize"
)

const jatsArticle = `<?xml version="1.0" encoding="UTF-8"?>
<!DOCTYPE article PUBLIC "-//NLM//DTD JATS (Z39.96) Journal Archiving and Interchange DTD v1.3 20210610//EN" "JATS-archivearticle1-3.dtd">
<article article-type="research-article">
  <front>
    <article-meta>
      <title-group>
        <article-title>Sleep  and
          memory consolidation</article-title>
      </title-group>
      <abstract>
        <title>Abstract</title>
        <p>We studied   sleep.</p>
      </abstract>
    </article-meta>
  </front>
  <body>
    <sec>
      <title>Introduction</title>
      <p>Intro placeholder text <xref ref-type="bibr" rid="r1">[1]</xref>.</p>
    </sec>
    <sec>
      <title>Methods</title>
      <p>Methods placeholder text.</p>
      <fig id="f1"><label>Figure 1</label><caption><p>Figure caption leak.</p></caption></fig>
      <table-wrap id="t1"><table><tr><td>Table cell leak</td></tr></table></table-wrap>
    </sec>
    <sec>
      <title>Results</title>
      <p>Results placeholder text.</p>
    </sec>
    <sec>
      <title>Discussion</title>
      <p>Discussion placeholder text.</p>
      <fn-group><fn><p>Footnote leak.</p></fn></fn-group>
    </sec>
  </body>
  <back>
    <ref-list><ref id="r1"><mixed-citation>Reference leak.</mixed-citation></ref></ref-list>
  </back>
</article>`

func extractJATS(t *testing.T, src string) *document.Extraction {
	t.Helper()
	p := &JATSExtractor{}
	out, err := p.Extract(strings.NewReader(src))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return out
}

func TestJATSExtractor_StructuredSections(t *testing.T) {
	out := extractJATS(t, jatsArticle)

	if out.Title != "Sleep and memory consolidation" {
		t.Errorf("expected title %q, got %q", "Sleep and memory consolidation", out.Title)
	}
	if out.Abstract != "We studied sleep." {
		t.Errorf("expected abstract %q, got %q", "We studied sleep.", out.Abstract)
	}

	want := document.Sections{
		Introduction:     "Intro placeholder text .",
		MaterialsMethods: "Methods placeholder text.",
		Results:          "Results placeholder text.",
		Discussion:       "Discussion placeholder text.",
	}
	if out.Sections != want {
		t.Errorf("unexpected sections:\n got  %+v\n want %+v", out.Sections, want)
	}

	for _, c := range document.Categories {
		if strings.Contains(out.Sections.Get(c), "leak") {
			t.Errorf("%s contains noise: %q", c, out.Sections.Get(c))
		}
	}
}

func TestJATSExtractor_DefaultTitle(t *testing.T) {
	out := extractJATS(t, `<article><body><sec><title>Results</title><p>Short.</p></sec></body></article>`)
	if out.Title != document.UntitledPMC {
		t.Errorf("expected %q, got %q", document.UntitledPMC, out.Title)
	}
	if out.Abstract != "" {
		t.Errorf("expected empty abstract, got %q", out.Abstract)
	}
	if out.Sections.Results != "Short." {
		t.Errorf("expected results %q, got %q", "Short.", out.Sections.Results)
	}
}

func TestJATSExtractor_BlankTitleDefaults(t *testing.T) {
	out := extractJATS(t, `<article><front><title-group><article-title>  </article-title></title-group></front></article>`)
	if out.Title != document.UntitledPMC {
		t.Errorf("expected %q, got %q", document.UntitledPMC, out.Title)
	}
}

func TestJATSExtractor_FirstSectionWins(t *testing.T) {
	src := `<article><body>
<sec><title>Results of the first experiment</title><p>First results.</p></sec>
<sec><title>Results of the second experiment</title><p>Second results.</p></sec>
</body></article>`
	out := extractJATS(t, src)
	if out.Sections.Results != "First results." {
		t.Errorf("expected first results section to win, got %q", out.Sections.Results)
	}
}

func TestJATSExtractor_TieBreakUsesCategoryOrder(t *testing.T) {
	src := `<article><body><sec><title>Results and Discussion</title><p>Combined text.</p></sec></body></article>`
	out := extractJATS(t, src)
	if out.Sections.Results != "Combined text." {
		t.Errorf("expected results to win the tie, got %q", out.Sections.Results)
	}
	if out.Sections.Discussion != "" {
		t.Errorf("expected discussion to stay empty, got %q", out.Sections.Discussion)
	}
}

func TestJATSExtractor_SectionTruncated(t *testing.T) {
	long := strings.Repeat("a", 2500)
	out := extractJATS(t, `<article><body><sec><title>Discussion</title><p>`+long+`</p></sec></body></article>`)
	if got := normalize.Len(out.Sections.Discussion); got != document.MaxSectionChars {
		t.Errorf("expected %d code points, got %d", document.MaxSectionChars, got)
	}
}

func TestJATSExtractor_ParagraphFallback(t *testing.T) {
	longIntro := "This opening paragraph is deliberately long enough to pass the substantial paragraph threshold of one hundred."
	src := `<article><body>
<sec><title>Overview of the cohort</title><p>Mapped by title.</p></sec>
<sec><title>Untitled block</title>
  <p>` + longIntro + `</p>
  <p>Our protocol used fixed tissue samples.</p>
  <p>We observed a clear effect in all animals.</p>
  <p>These findings suggest a shared mechanism.</p>
</sec>
</body></article>`
	out := extractJATS(t, src)

	if out.Sections.Introduction != "Mapped by title." {
		t.Errorf("expected introduction from structural pass, got %q", out.Sections.Introduction)
	}
	if out.Sections.MaterialsMethods != "Our protocol used fixed tissue samples." {
		t.Errorf("unexpected materials_methods %q", out.Sections.MaterialsMethods)
	}
	if out.Sections.Results != "We observed a clear effect in all animals." {
		t.Errorf("unexpected results %q", out.Sections.Results)
	}
	if out.Sections.Discussion != "These findings suggest a shared mechanism." {
		t.Errorf("unexpected discussion %q", out.Sections.Discussion)
	}
}

func TestJATSExtractor_FallbackFieldsIndependent(t *testing.T) {
	// One paragraph satisfies both the results and discussion gates.
	src := `<article><body><p>We measured and found data to suggest a link between sleep and memory in adults and children alike in every cohort.</p></body></article>`
	out := extractJATS(t, src)
	p := "We measured and found data to suggest a link between sleep and memory in adults and children alike in every cohort."
	if out.Sections.Introduction != p {
		t.Errorf("expected introduction from long paragraph, got %q", out.Sections.Introduction)
	}
	if out.Sections.Results != p {
		t.Errorf("expected results from same paragraph, got %q", out.Sections.Results)
	}
	if out.Sections.Discussion != p {
		t.Errorf("expected discussion from same paragraph, got %q", out.Sections.Discussion)
	}
	if out.Sections.MaterialsMethods != "" {
		t.Errorf("expected empty materials_methods, got %q", out.Sections.MaterialsMethods)
	}
}

func TestJATSExtractor_FallbackIgnoresNoise(t *testing.T) {
	src := `<article><body>
<fig><caption><p>Methods figure caption that should never become a section of the record.</p></caption></fig>
</body></article>`
	out := extractJATS(t, src)
	if out.Sections.MaterialsMethods != "" {
		t.Errorf("expected figure caption to be ignored, got %q", out.Sections.MaterialsMethods)
	}
}

func TestJATSExtractor_NoBody(t *testing.T) {
	out := extractJATS(t, `<article><front><title-group><article-title>Only a title</article-title></title-group></front></article>`)
	if out.Title != "Only a title" {
		t.Errorf("expected title, got %q", out.Title)
	}
	if len(out.Sections.Missing()) != len(document.Categories) {
		t.Errorf("expected all sections empty, got %+v", out.Sections)
	}
}

func TestJATSExtractor_HTMLEntities(t *testing.T) {
	out := extractJATS(t, `<article><front><title-group><article-title>Sleep&nbsp;in orbit &mdash; a study</article-title></title-group></front>
<body><sec><title>Results</title><p>Crews slept 5&frac12; hours &plusmn; 1.</p></sec></body></article>`)
	if out.Title != "Sleep in orbit \u2014 a study" {
		t.Errorf("unexpected title %q", out.Title)
	}
	if out.Sections.Results != "Crews slept 5\u00bd hours \u00b1 1." {
		t.Errorf("unexpected results %q", out.Sections.Results)
	}
}

func TestJATSExtractor_DeclaredCharset(t *testing.T) {
	src := "<?xml version=\"1.0\" encoding=\"ISO-8859-1\"?>\n" +
		"<article><front><title-group><article-title>Caf\xe9 crews</article-title></title-group></front></article>"
	out := extractJATS(t, src)
	if out.Title != "Caf\u00e9 crews" {
		t.Errorf("expected latin-1 title decoded, got %q", out.Title)
	}
}

func TestJATSExtractor_MalformedIsParseError(t *testing.T) {
	inputs := map[string]string{
		"unclosed":       `<article><body><sec><title>Intro</title></body>`,
		"empty":          ``,
		"unknown entity": `<article><front><title-group><article-title>A &bogus; title</article-title></title-group></front></article>`,
	}
	for name, src := range inputs {
		t.Run(name, func(t *testing.T) {
			p := &JATSExtractor{}
			_, err := p.Extract(strings.NewReader(src))
			if err == nil {
				t.Fatal("expected error")
			}
			var pe *document.ParseError
			if !errors.As(err, &pe) {
				t.Fatalf("expected ParseError, got %T", err)
			}
			if pe.Format != document.FormatXML {
				t.Errorf("expected format %q, got %q", document.FormatXML, pe.Format)
			}
		})
	}
}
