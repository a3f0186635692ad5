package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/dgallion1/papersum/internal/document"
	"github.com/dgallion1/papersum/internal/keywords"
	"github.com/dgallion1/papersum/internal/normalize"
	"github.com/dgallion1/papersum/internal/summarize"
)

// Placeholders used when no summary could be produced.
const (
	PlaceholderUnavailable = "AI summarization not available."
	PlaceholderFailed      = "AI could not generate summary."
)

// Assembler turns an extraction into a record, asking the simplifier for
// exactly one summary per record.
type Assembler struct {
	simplifier summarize.Simplifier
	timeout    time.Duration
	log        *slog.Logger
}

// NewAssembler builds an assembler. A nil simplifier means summarization is
// not configured. timeout <= 0 leaves the call bounded only by ctx.
func NewAssembler(s summarize.Simplifier, timeout time.Duration, log *slog.Logger) *Assembler {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return &Assembler{simplifier: s, timeout: timeout, log: log}
}

// CombinedText is the bounded text sent to the simplifier.
func CombinedText(ex *document.Extraction) string {
	s := fmt.Sprintf("Abstract: %s\n\nIntroduction: %s\n\nMaterials and Methods: %s\n\nResults: %s\n\nDiscussion: %s",
		ex.Abstract,
		ex.Sections.Introduction,
		ex.Sections.MaterialsMethods,
		ex.Sections.Results,
		ex.Sections.Discussion,
	)
	return normalize.Truncate(s, document.MaxCombinedChars)
}

// Assemble never fails: simplifier errors, timeouts and empty output all
// degrade to a placeholder summary.
func (a *Assembler) Assemble(ctx context.Context, link string, ex *document.Extraction) *document.Record {
	rec := &document.Record{
		Title:            ex.Title,
		Link:             link,
		Abstract:         ex.Abstract,
		Introduction:     ex.Sections.Introduction,
		MaterialsMethods: ex.Sections.MaterialsMethods,
		Results:          ex.Sections.Results,
		Discussion:       ex.Sections.Discussion,
		Keywords:         keywords.Extract(keywordSource(ex), keywords.DefaultMax),
	}
	rec.SimplifiedVersion = a.simplify(ctx, link, CombinedText(ex))
	return rec
}

func (a *Assembler) simplify(ctx context.Context, link, text string) string {
	if a.simplifier == nil {
		return PlaceholderUnavailable
	}
	if a.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, a.timeout)
		defer cancel()
	}

	log := a.log.With("link", link, "model", a.simplifier.Model())
	start := time.Now()
	out, err := a.simplifier.Simplify(ctx, text)
	if err != nil {
		log.Warn("simplification failed",
			"error", err,
			"retryable", summarize.IsRetryable(err),
			"duration_ms", time.Since(start).Milliseconds(),
		)
		return PlaceholderFailed
	}
	if out == "" {
		log.Warn("simplification returned no usable text")
		return PlaceholderFailed
	}
	log.Debug("simplification complete", "summary_len", len(out), "duration_ms", time.Since(start).Milliseconds())
	return out
}

func keywordSource(ex *document.Extraction) string {
	return ex.Abstract + " " +
		ex.Sections.Introduction + " " +
		ex.Sections.MaterialsMethods + " " +
		ex.Sections.Results + " " +
		ex.Sections.Discussion
}
