// Package scrape fetches a web page and returns the elements matching a
// CSS selector. It is independent of the agent service.
package scrape

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	// Packages
	cascadia "github.com/andybalholm/cascadia"
	client "github.com/mutablelogic/go-client"
	txtai "github.com/mutablelogic/go-txtai"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

// Scraper fetches pages with a go-client configured by the options given
// to New. It is safe for concurrent use.
type Scraper struct {
	opts []client.ClientOpt
}

// StatusError is returned when the server responds with an error status.
type StatusError struct {
	Code int
}

// status records the last response seen on the wire for one fetch
type status struct {
	next     http.RoundTripper
	code     int
	redirect bool
}

///////////////////////////////////////////////////////////////////////////////
// GLOBALS

// ErrScrape is returned for any failure other than an error status,
// including when the server cannot be reached.
var ErrScrape = errors.New("failed to scrape website")

///////////////////////////////////////////////////////////////////////////////
// LIFECYCLE

// New returns a scraper. The options are applied to the client created
// for each fetch; the endpoint is always the page URL. There is no timeout
// unless one is given.
func New(opts ...client.ClientOpt) *Scraper {
	return &Scraper{opts: append([]client.ClientOpt{client.OptTimeout(0)}, opts...)}
}

///////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// Scrape fetches the page at pageURL and returns one record per element
// matching selector, in document order. No match returns an empty slice.
func (s *Scraper) Scrape(ctx context.Context, pageURL, selector string) ([]Record, error) {
	sel, err := parseArgs(pageURL, selector)
	if err != nil {
		return nil, err
	}

	// One client per page, so the endpoint is the page itself
	c, err := client.New(append(append([]client.ClientOpt{}, s.opts...), client.OptEndpoint(pageURL))...)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScrape, err)
	}

	// Fetch and parse, reporting the status only when the server sent one
	var doc page
	var st status
	if err := c.DoWithContext(ctx, client.NewRequest(), &doc, client.OptReqTransport(st.wrap)); err != nil {
		if code := st.failed(); code != 0 {
			return nil, &StatusError{Code: code}
		}
		return nil, fmt.Errorf("%w: %w", ErrScrape, err)
	} else if doc.Document == nil {
		return nil, ErrScrape
	}

	// Return the matching elements
	return doc.records(sel), nil
}

///////////////////////////////////////////////////////////////////////////////
// ERROR

func (e *StatusError) Error() string {
	return fmt.Sprintf("failed to fetch URL: %d", e.Code)
}

///////////////////////////////////////////////////////////////////////////////
// PRIVATE METHODS

func (s *status) wrap(next http.RoundTripper) http.RoundTripper {
	if next == nil {
		next = http.DefaultTransport
	}
	s.next = next
	return s
}

func (s *status) RoundTrip(req *http.Request) (*http.Response, error) {
	resp, err := s.next.RoundTrip(req)
	if err == nil {
		s.code = resp.StatusCode
		s.redirect = resp.StatusCode >= 300 && resp.StatusCode < 400 && resp.Header.Get("Location") != ""
	}
	return resp, err
}

// failed returns the final status code when it was not a success, or zero
// when the fetch failed for any other reason (no response, too many
// redirects, an unreadable body)
func (s *status) failed() int {
	switch {
	case s.code == 0, s.redirect:
		return 0
	case s.code >= 200 && s.code < 300:
		return 0
	default:
		return s.code
	}
}

func parseArgs(pageURL, selector string) (cascadia.Selector, error) {
	if u, err := url.Parse(pageURL); err != nil {
		return nil, txtai.ErrBadParameter.Withf("invalid URL %q", pageURL)
	} else if u.Scheme != "http" && u.Scheme != "https" {
		return nil, txtai.ErrBadParameter.Withf("invalid URL %q", pageURL)
	} else if u.Host == "" {
		return nil, txtai.ErrBadParameter.Withf("invalid URL %q", pageURL)
	}
	if strings.TrimSpace(selector) == "" {
		return nil, txtai.ErrBadParameter.With("selector cannot be empty")
	}
	sel, err := cascadia.Compile(selector)
	if err != nil {
		return nil, txtai.ErrBadParameter.Withf("invalid selector %q: %v", selector, err)
	}
	return sel, nil
}
