// Package fetch downloads job postings and reduces them to their description text.
package fetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
)

const (
	// DefaultTimeout bounds a single posting download
	DefaultTimeout = 30 * time.Second
	// DefaultUserAgent identifies the CLI to job boards
	DefaultUserAgent = "Mozilla/5.0 (compatible; resumate/1.0)"

	maxBodyBytes = 5 << 20
)

// Error represents a failed posting download.
type Error struct {
	URL        string
	StatusCode int
	Message    string
	Cause      error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("fetch error for %s: %s: %v", e.URL, e.Message, e.Cause)
	}
	return fmt.Sprintf("fetch error for %s: %s", e.URL, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// Options configures a Client.
type Options struct {
	Timeout   time.Duration
	UserAgent string
	Headers   map[string]string
}

// Client fetches job postings over HTTP.
type Client struct {
	http    *http.Client
	options Options
}

// NewClient creates a client. A nil opts uses DefaultTimeout and DefaultUserAgent.
func NewClient(opts *Options) *Client {
	o := Options{Timeout: DefaultTimeout, UserAgent: DefaultUserAgent}
	if opts != nil {
		if opts.Timeout > 0 {
			o.Timeout = opts.Timeout
		}
		if opts.UserAgent != "" {
			o.UserAgent = opts.UserAgent
		}
		o.Headers = opts.Headers
	}
	return &Client{
		http:    &http.Client{Timeout: o.Timeout},
		options: o,
	}
}

// JobPosting downloads rawURL and returns the posting's description text,
// using the selectors of the job board the URL belongs to.
func (c *Client) JobPosting(ctx context.Context, rawURL string) (string, error) {
	body, err := c.get(ctx, rawURL)
	if err != nil {
		return "", err
	}

	board := DetectBoard(rawURL)
	text, err := ExtractMainText(body, board.Content, board.Noise...)
	if err != nil {
		return "", &Error{URL: rawURL, Message: "failed to extract posting text", Cause: err}
	}
	if text == "" {
		return "", &Error{URL: rawURL, Message: "posting has no text"}
	}
	return text, nil
}

func (c *Client) get(ctx context.Context, rawURL string) (string, error) {
	parsed, err := url.Parse(rawURL)
	if err != nil || parsed.Host == "" || (parsed.Scheme != "http" && parsed.Scheme != "https") {
		return "", &Error{URL: rawURL, Message: "invalid URL", Cause: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return "", &Error{URL: rawURL, Message: "failed to create request", Cause: err}
	}
	req.Header.Set("User-Agent", c.options.UserAgent)
	for key, value := range c.options.Headers {
		req.Header.Set(key, value)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return "", &Error{URL: rawURL, Message: "HTTP request failed", Cause: err}
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return "", &Error{URL: rawURL, StatusCode: resp.StatusCode, Message: fmt.Sprintf("HTTP status %d", resp.StatusCode)}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return "", &Error{URL: rawURL, Message: "failed to read response body", Cause: err}
	}
	return string(body), nil
}

// ExtractMainText parses HTML and returns the text of the first element matching
// contentSelectors, after removing page chrome and noiseSelectors. It falls back to body.
func ExtractMainText(html string, contentSelectors []string, noiseSelectors ...string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return "", fmt.Errorf("failed to parse HTML: %w", err)
	}

	doc.Find("nav, footer, header, script, style, noscript, iframe, .sidebar, .cookie-banner, .popup").Remove()
	if len(noiseSelectors) > 0 {
		doc.Find(strings.Join(noiseSelectors, ", ")).Remove()
	}

	content := doc.Find("body")
	for _, selector := range contentSelectors {
		if selection := doc.Find(selector); selection.Length() > 0 {
			content = selection.First()
			break
		}
	}

	// block elements end lines so list items do not run together
	content.Find("br").ReplaceWithHtml("\n")
	content.Find("p, li, h1, h2, h3, h4, div").Each(func(_ int, s *goquery.Selection) {
		s.AppendHtml("\n")
	})
	return cleanWhitespace(content.Text()), nil
}

// cleanWhitespace trims every line and drops blank ones
func cleanWhitespace(text string) string {
	var cleaned []string
	for _, line := range strings.Split(text, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			cleaned = append(cleaned, line)
		}
	}
	return strings.Join(cleaned, "\n")
}
