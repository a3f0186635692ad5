// Package fetch retrieves paper documents over HTTP, preferring the PMC
// E-utilities XML feed for PubMed Central articles.
package fetch

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"

	"golang.org/x/net/html/charset"

	"github.com/dgallion1/papersum/internal/config"
	"github.com/dgallion1/papersum/internal/document"
)

const (
	maxRedirects    = 10
	minEutilsBytes  = 100
	pmcHost         = "pmc.ncbi.nlm.nih.gov"
	eutilsUserAgent = "papersum/1.0 (+https://github.com/dgallion1/papersum)"
)

var pmcIDPattern = regexp.MustCompile(`/PMC(\d+)`)

// Client fetches documents. It holds no per-request state and is safe for
// concurrent use.
type Client struct {
	http          *http.Client
	eutils        *http.Client
	userAgent     string
	maxBytes      int64
	ncbiAPIKey    string
	eutilsBaseURL string
	respectRobots bool
	log           *slog.Logger
}

func New(cfg config.Config, log *slog.Logger) *Client {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return &Client{
		http: &http.Client{
			Timeout: cfg.FetchTimeout,
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				if len(via) >= maxRedirects {
					return fmt.Errorf("stopped after %d redirects", maxRedirects)
				}
				return nil
			},
		},
		eutils:        &http.Client{Timeout: cfg.EutilsTimeout},
		userAgent:     cfg.UserAgent,
		maxBytes:      cfg.MaxDocumentBytes,
		ncbiAPIKey:    cfg.NCBIAPIKey,
		eutilsBaseURL: cfg.EutilsBaseURL,
		respectRobots: cfg.RespectRobots,
		log:           log,
	}
}

// Close releases idle connections.
func (c *Client) Close() {
	c.http.CloseIdleConnections()
	c.eutils.CloseIdleConnections()
}

// PMCID returns the "PMC<digits>" identifier of a PubMed Central article URL.
func PMCID(rawURL string) (string, bool) {
	if !strings.Contains(rawURL, pmcHost) {
		return "", false
	}
	m := pmcIDPattern.FindStringSubmatch(rawURL)
	if m == nil {
		return "", false
	}
	return "PMC" + m[1], true
}

// Fetch retrieves rawURL. PMC articles are first requested as JATS XML from
// E-utilities when an NCBI key is configured; any failure there falls back
// to fetching the page itself as HTML.
func (c *Client) Fetch(ctx context.Context, rawURL string) (*document.Source, error) {
	if id, ok := PMCID(rawURL); ok && c.ncbiAPIKey != "" {
		src, err := c.fetchEutils(ctx, id)
		if err == nil {
			c.log.Info("fetched pmc article via eutils", "pmc_id", id, "bytes", len(src.Body))
			return src, nil
		}
		c.log.Warn("eutils fetch failed, falling back to page", "pmc_id", id, "error", err)
	}

	if c.respectRobots {
		if err := c.checkRobots(ctx, rawURL); err != nil {
			return nil, err
		}
	}
	return c.fetchPage(ctx, rawURL)
}

func (c *Client) eutilsURL(pmcID string) string {
	q := url.Values{}
	q.Set("db", "pmc")
	q.Set("id", pmcID)
	q.Set("rettype", "full")
	q.Set("retmode", "xml")
	q.Set("api_key", c.ncbiAPIKey)
	return c.eutilsBaseURL + "/efetch.fcgi?" + q.Encode()
}

func (c *Client) fetchEutils(ctx context.Context, pmcID string) (*document.Source, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.eutilsURL(pmcID), nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", eutilsUserAgent)
	req.Header.Set("Accept", "application/xml, text/xml, */*")

	resp, err := c.eutils.Do(req)
	if err != nil {
		return nil, classifyTransport(err)
	}
	defer resp.Body.Close()

	body, err := c.readCapped(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK || len(body) <= minEutilsBytes {
		return nil, fmt.Errorf("eutils status %d with %d bytes", resp.StatusCode, len(body))
	}
	return &document.Source{
		Format:      document.FormatXML,
		Body:        body,
		ContentType: resp.Header.Get("Content-Type"),
	}, nil
}

func (c *Client) fetchPage(ctx context.Context, rawURL string) (*document.Source, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,image/webp,image/apng,*/*;q=0.8")
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")
	req.Header.Set("Upgrade-Insecure-Requests", "1")

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, classifyTransport(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &StatusError{URL: rawURL, StatusCode: resp.StatusCode}
	}

	raw, err := c.readCapped(resp.Body)
	if err != nil {
		return nil, err
	}
	contentType := resp.Header.Get("Content-Type")
	body := decodeUTF8(raw, contentType)

	c.log.Debug("fetched page",
		"url", rawURL,
		"status", resp.StatusCode,
		"bytes", len(raw),
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return &document.Source{
		Format:      document.FormatHTML,
		Body:        body,
		ContentType: contentType,
	}, nil
}

// readCapped reads r fully, failing with ErrTooLarge past maxBytes.
func (c *Client) readCapped(r io.Reader) ([]byte, error) {
	limit := c.maxBytes
	if limit <= 0 {
		return readBody(r)
	}
	body, err := readBody(io.LimitReader(r, limit+1))
	if err != nil {
		return nil, err
	}
	if int64(len(body)) > limit {
		return nil, fmt.Errorf("%w: exceeds %d bytes", ErrTooLarge, limit)
	}
	return body, nil
}

func readBody(r io.Reader) ([]byte, error) {
	body, err := io.ReadAll(r)
	if err != nil {
		return nil, classifyTransport(err)
	}
	return body, nil
}

// decodeUTF8 converts raw to UTF-8 using the declared or sniffed charset.
// Undecodable input is returned unchanged.
func decodeUTF8(raw []byte, contentType string) []byte {
	r, err := charset.NewReader(bytes.NewReader(raw), contentType)
	if err != nil {
		return raw
	}
	out, err := io.ReadAll(r)
	if err != nil {
		return raw
	}
	return out
}
