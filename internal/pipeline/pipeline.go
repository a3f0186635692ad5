// Package pipeline runs fetch, extraction and assembly for one paper.
package pipeline

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/dgallion1/papersum/internal/document"
	"github.com/dgallion1/papersum/internal/parser"
)

// Fetcher retrieves a document for a URL.
type Fetcher interface {
	Fetch(ctx context.Context, rawURL string) (*document.Source, error)
}

// Pipeline is stateless; one instance serves concurrent requests.
type Pipeline struct {
	fetcher   Fetcher
	assembler *Assembler
	log       *slog.Logger
}

func New(f Fetcher, a *Assembler, log *slog.Logger) *Pipeline {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return &Pipeline{fetcher: f, assembler: a, log: log}
}

// Summarize fetches rawURL and builds its record. Fetch errors are returned
// unchanged so callers can classify them.
func (p *Pipeline) Summarize(ctx context.Context, rawURL string) (*document.Record, error) {
	if p.fetcher == nil {
		return nil, fmt.Errorf("no fetcher configured")
	}
	src, err := p.fetcher.Fetch(ctx, rawURL)
	if err != nil {
		p.log.Warn("fetch failed", "url", rawURL, "error", err)
		return nil, err
	}
	return p.Process(ctx, rawURL, src)
}

// Process extracts and assembles an already fetched document. Only a
// *document.ParseError aborts; every other gap degrades to empty fields or a
// placeholder summary.
func (p *Pipeline) Process(ctx context.Context, link string, src *document.Source) (*document.Record, error) {
	log := p.log.With("link", link, "format", src.Format)

	ex, err := parser.Extract(src, log)
	if err != nil {
		log.Error("extraction failed", "error", err)
		return nil, err
	}
	if missing := ex.Sections.Missing(); len(missing) > 0 {
		log.Info("sections not found", "missing", missing)
	}

	rec := p.assembler.Assemble(ctx, link, ex)
	log.Info("record assembled", "title", rec.Title, "keywords", len(rec.Keywords))
	return rec, nil
}
