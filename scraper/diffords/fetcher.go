package diffords

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/go-resty/resty/v2"
	"golang.org/x/net/html"
)

// TextFetcher returns the rendered plain text of a page.
type TextFetcher interface {
	FetchText(ctx context.Context, url string) (string, error)
}

// StatusError is returned when a page answers with a non-2xx status.
type StatusError struct {
	URL        string
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("GET %s: unexpected status %d", e.URL, e.StatusCode)
}

// HTTPFetcher issues one plain GET per page, without retries or timeout.
type HTTPFetcher struct {
	client *resty.Client
}

// NewHTTPFetcher creates an HTTPFetcher sending the given User-Agent.
func NewHTTPFetcher(userAgent string) *HTTPFetcher {
	client := resty.New().SetHeader("User-Agent", userAgent)
	return &HTTPFetcher{client: client}
}

func (f *HTTPFetcher) FetchText(ctx context.Context, url string) (string, error) {
	res, err := f.client.R().
		SetContext(ctx).
		Get(url)
	if err != nil {
		return "", fmt.Errorf("GET %s: %w", url, err)
	}
	if !res.IsSuccess() {
		return "", &StatusError{URL: url, StatusCode: res.StatusCode()}
	}
	return ExtractText(bytes.NewReader(res.Body()))
}

// ExtractText parses an HTML document and returns its visible text:
// every text node, trimmed, empty ones dropped, joined by newlines.
func ExtractText(r io.Reader) (string, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return "", fmt.Errorf("parse html: %w", err)
	}
	doc.Find("script, style, noscript, template").Remove()

	var lines []string
	for _, n := range doc.Nodes {
		collectText(n, &lines)
	}
	return strings.Join(lines, "\n"), nil
}

func collectText(node *html.Node, lines *[]string) {
	if node.Type == html.TextNode {
		if s := strings.TrimSpace(node.Data); s != "" {
			*lines = append(*lines, s)
		}
		return
	}
	for child := node.FirstChild; child != nil; child = child.NextSibling {
		collectText(child, lines)
	}
}
