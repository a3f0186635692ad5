package fetch

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/temoto/robotstxt"
)

// checkRobots returns ErrDisallowed when the host's robots.txt forbids
// rawURL for our user agent. A missing or unreachable robots.txt allows.
func (c *Client) checkRobots(ctx context.Context, rawURL string) error {
	u, err := url.Parse(rawURL)
	if err != nil || u.Host == "" {
		return nil
	}
	robotsURL := fmt.Sprintf("%s://%s/robots.txt", u.Scheme, u.Host)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, robotsURL, nil)
	if err != nil {
		return nil
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Debug("robots.txt unavailable, allowing", "url", robotsURL, "error", err)
		return nil
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 500 {
		c.log.Debug("robots.txt server error, allowing", "url", robotsURL, "status", resp.StatusCode)
		return nil
	}

	data, err := robotstxt.FromResponse(resp)
	if err != nil {
		c.log.Debug("robots.txt unparsable, allowing", "url", robotsURL, "error", err)
		return nil
	}
	if !data.TestAgent(u.RequestURI(), c.userAgent) {
		return fmt.Errorf("%w: %s", ErrDisallowed, rawURL)
	}
	return nil
}
