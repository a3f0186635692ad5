package parser

import (
	"bytes"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/dgallion1/papersum/internal/document"
)

// Extractor maps raw document bytes into title, abstract and body sections.
type Extractor interface {
	Extract(r io.Reader) (*document.Extraction, error)
}

// Length gates shared by the extractors, in code points.
const (
	minBlockChars      = 50  // HTML blocks shorter than this are skipped
	minParagraphChars  = 100 // "substantial" paragraph threshold
	blockLeadChars     = 100 // lead window for HTML block classification
	paragraphLeadChars = 50  // lead window for XML paragraph cues
	abstractProbeCount = 5   // leading <p> elements probed for an abstract
)

// ForFormat returns the extractor for a format tag.
func ForFormat(format document.Format) (Extractor, error) {
	switch format {
	case document.FormatXML:
		return &JATSExtractor{}, nil
	case document.FormatHTML:
		return &HTMLExtractor{}, nil
	default:
		return nil, fmt.Errorf("unsupported document format: %q", format)
	}
}

// FormatForFile guesses a format tag from a filename extension.
func FormatForFile(filename string) document.Format {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".xml", ".nxml":
		return document.FormatXML
	default:
		return document.FormatHTML
	}
}

// Extract dispatches src to the extractor for its format.
func Extract(src *document.Source, log *slog.Logger) (*document.Extraction, error) {
	ex, err := ForFormat(src.Format)
	if err != nil {
		return nil, err
	}
	out, err := ex.Extract(bytes.NewReader(src.Body))
	if err != nil {
		return nil, err
	}
	if log != nil {
		log.Debug("extracted document",
			"format", src.Format,
			"title_len", len(out.Title),
			"abstract_len", len(out.Abstract),
			"introduction_len", len(out.Sections.Introduction),
			"materials_methods_len", len(out.Sections.MaterialsMethods),
			"results_len", len(out.Sections.Results),
			"discussion_len", len(out.Sections.Discussion),
		)
	}
	return out, nil
}

// fillFromFragments classifies fragments in order and stores each match in
// its category if still empty. lead selects the text matched against the
// keyword table.
func fillFromFragments(sections *document.Sections, fragments []document.Fragment, lead func(document.Fragment) string, classifyFn func(string) (document.Category, bool)) {
	for _, f := range fragments {
		if sections.Complete() {
			return
		}
		cat, ok := classifyFn(lead(f))
		if !ok {
			continue
		}
		sections.Fill(cat, f.Text)
	}
}
