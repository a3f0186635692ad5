package document

import "fmt"

// Format tags the markup family of a source document.
type Format string

const (
	FormatXML  Format = "structured-xml"
	FormatHTML Format = "generic-html"
)

// ParseFormat maps a format tag to a Format.
func ParseFormat(s string) (Format, error) {
	switch Format(s) {
	case FormatXML, FormatHTML:
		return Format(s), nil
	default:
		return "", fmt.Errorf("unknown document format: %q", s)
	}
}

// Field limits in characters (Unicode code points).
const (
	MaxSectionChars          = 1000
	MaxFallbackAbstractChars = 500
	MaxCombinedChars         = 3000
)

// Default titles when the document carries none.
const (
	UntitledPMC      = "Untitled PMC Article"
	UntitledDocument = "Untitled Document"
)

// Source is a fetched document ready for extraction.
type Source struct {
	Format      Format
	Body        []byte
	ContentType string
}

// Fragment is one structural unit considered during classification: an XML
// section or an HTML block.
type Fragment struct {
	Text      string // Cleaned body text
	TitleHint string // Lower-cased section title (empty for HTML blocks)
}

// Extraction is the output of an extractor before assembly.
type Extraction struct {
	Title    string
	Abstract string
	Sections Sections
}

// Record is the final structured representation of a document.
type Record struct {
	Title             string   `json:"title"`
	Link              string   `json:"link"`
	Abstract          string   `json:"abstract"`
	Introduction      string   `json:"introduction"`
	MaterialsMethods  string   `json:"materials_methods"`
	Results           string   `json:"results"`
	Discussion        string   `json:"discussion"`
	SimplifiedVersion string   `json:"simplified_version"`
	Keywords          []string `json:"keywords"`
}

// ParseError reports a document that could not be walked.
type ParseError struct {
	Format Format
	Err    error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse %s: %v", e.Format, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}
