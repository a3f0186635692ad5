package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"net/url"
	"strings"

	"github.com/dgallion1/papersum/internal/document"
	"github.com/dgallion1/papersum/internal/fetch"
)

type summarizeRequest struct {
	URL string `json:"url"`
}

type summaryResponse struct {
	Title               string   `json:"title"`
	Link                string   `json:"link"`
	Abstract            string   `json:"abstract"`
	Introduction        string   `json:"introduction"`
	MaterialsMethods    string   `json:"materials_methods"`
	Results             string   `json:"results"`
	Discussion          string   `json:"discussion"`
	SimplifiedAIVersion string   `json:"simplified_ai_version"`
	Keywords            []string `json:"keywords"`
}

func newSummaryResponse(rec *document.Record) summaryResponse {
	kw := rec.Keywords
	if kw == nil {
		kw = []string{}
	}
	return summaryResponse{
		Title:               rec.Title,
		Link:                rec.Link,
		Abstract:            rec.Abstract,
		Introduction:        rec.Introduction,
		MaterialsMethods:    rec.MaterialsMethods,
		Results:             rec.Results,
		Discussion:          rec.Discussion,
		SimplifiedAIVersion: rec.SimplifiedVersion,
		Keywords:            kw,
	}
}

func (s *Server) handleSummarize(w http.ResponseWriter, r *http.Request) {
	var req summarizeRequest
	if err := json.NewDecoder(io.LimitReader(r.Body, 64<<10)).Decode(&req); err != nil {
		jsonError(w, "invalid request body", http.StatusUnprocessableEntity)
		return
	}
	s.summarizeURL(w, r, req.URL)
}

func (s *Server) handleSummarizeGet(w http.ResponseWriter, r *http.Request) {
	s.summarizeURL(w, r, r.URL.Query().Get("url"))
}

func (s *Server) summarizeURL(w http.ResponseWriter, r *http.Request, raw string) {
	target, ok := validateURL(raw)
	if !ok {
		jsonError(w, "Invalid URL format", http.StatusUnprocessableEntity)
		return
	}

	rec, err := s.pipeline.Summarize(r.Context(), target)
	if err != nil {
		s.writePipelineError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, newSummaryResponse(rec))
}

// handleExtract summarizes a document posted as the request body, bypassing
// fetch. The format comes from ?format= or, failing that, the Content-Type.
func (s *Server) handleExtract(w http.ResponseWriter, r *http.Request) {
	format, err := requestFormat(r)
	if err != nil {
		jsonError(w, err.Error(), http.StatusBadRequest)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxDocumentBytes)
	body, err := io.ReadAll(r.Body)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			jsonError(w, fmt.Sprintf("document exceeds max size (%d bytes)", s.cfg.MaxDocumentBytes), http.StatusRequestEntityTooLarge)
			return
		}
		jsonError(w, "failed to read body", http.StatusBadRequest)
		return
	}

	src := &document.Source{Format: format, Body: body, ContentType: r.Header.Get("Content-Type")}
	rec, err := s.pipeline.Process(r.Context(), r.URL.Query().Get("link"), src)
	if err != nil {
		s.writePipelineError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, newSummaryResponse(rec))
}

func requestFormat(r *http.Request) (document.Format, error) {
	if v := r.URL.Query().Get("format"); v != "" {
		return document.ParseFormat(v)
	}
	mt, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if strings.HasSuffix(mt, "/xml") || strings.HasSuffix(mt, "+xml") {
		return document.FormatXML, nil
	}
	return document.FormatHTML, nil
}

// validateURL accepts absolute http and https URLs with a host.
func validateURL(raw string) (string, bool) {
	raw = strings.TrimSpace(raw)
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" {
		return "", false
	}
	switch strings.ToLower(u.Scheme) {
	case "http", "https":
		return u.String(), true
	default:
		return "", false
	}
}

func (s *Server) writePipelineError(w http.ResponseWriter, err error) {
	var status *fetch.StatusError
	var parseErr *document.ParseError
	switch {
	case errors.As(err, &status):
		jsonError(w, fmt.Sprintf("HTTP error fetching URL: %d - %v", status.StatusCode, err), http.StatusBadRequest)
	case errors.Is(err, fetch.ErrTimeout):
		jsonError(w, "Timeout fetching URL: "+err.Error(), http.StatusBadRequest)
	case errors.Is(err, fetch.ErrNetwork):
		jsonError(w, "Network error fetching URL: "+err.Error(), http.StatusBadRequest)
	case errors.Is(err, fetch.ErrDisallowed):
		jsonError(w, "Blocked by robots.txt: "+err.Error(), http.StatusBadRequest)
	case errors.Is(err, fetch.ErrTooLarge):
		jsonError(w, "Document too large: "+err.Error(), http.StatusBadRequest)
	case errors.As(err, &parseErr):
		jsonError(w, fmt.Sprintf("Error parsing %s content: %v", formatLabel(parseErr.Format), parseErr.Err), http.StatusInternalServerError)
	default:
		s.log.Error("request failed", "error", err)
		jsonError(w, "Error processing request: "+err.Error(), http.StatusInternalServerError)
	}
}

func formatLabel(f document.Format) string {
	if f == document.FormatXML {
		return "XML"
	}
	return "HTML"
}
