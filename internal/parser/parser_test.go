package parser

import (
	"bytes"
	"errors"
	"log/slog"
	"testing"

	"github.com/dgallion1/papersum/internal/document"
)

func TestForFormat(t *testing.T) {
	xml, err := ForFormat(document.FormatXML)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := xml.(*JATSExtractor); !ok {
		t.Errorf("expected *JATSExtractor, got %T", xml)
	}

	html, err := ForFormat(document.FormatHTML)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := html.(*HTMLExtractor); !ok {
		t.Errorf("expected *HTMLExtractor, got %T", html)
	}

	if _, err := ForFormat("pdf"); err == nil {
		t.Error("expected error for unsupported format")
	}
}

func TestFormatForFile(t *testing.T) {
	tests := map[string]document.Format{
		"article.xml":  document.FormatXML,
		"PMC123.NXML":  document.FormatXML,
		"page.html":    document.FormatHTML,
		"page.htm":     document.FormatHTML,
		"no-extension": document.FormatHTML,
	}
	for name, want := range tests {
		if got := FormatForFile(name); got != want {
			t.Errorf("%s: expected %q, got %q", name, want, got)
		}
	}
}

func TestExtract_Dispatches(t *testing.T) {
	var logBuf bytes.Buffer
	log := slog.New(slog.NewJSONHandler(&logBuf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	xmlSrc := &document.Source{
		Format: document.FormatXML,
		Body:   []byte(`<article><front><title-group><article-title>XML title</article-title></title-group></front></article>`),
	}
	out, err := Extract(xmlSrc, log)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.Title != "XML title" {
		t.Errorf("expected %q, got %q", "XML title", out.Title)
	}
	if !bytes.Contains(logBuf.Bytes(), []byte(`"msg":"extracted document"`)) {
		t.Errorf("expected debug log line, got %s", logBuf.String())
	}

	htmlSrc := &document.Source{
		Format: document.FormatHTML,
		Body:   []byte(`<html><head><title>HTML title</title></head></html>`),
	}
	out, err = Extract(htmlSrc, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.Title != "HTML title" {
		t.Errorf("expected %q, got %q", "HTML title", out.Title)
	}
}

func TestExtract_ParseFailure(t *testing.T) {
	_, err := Extract(&document.Source{Format: document.FormatXML, Body: []byte("<article><body>")}, nil)
	var pe *document.ParseError
	if !errors.As(err, &pe) {
		t.Fatalf("expected ParseError, got %v", err)
	}
}
