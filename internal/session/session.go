// Package session owns outbound connectivity to DAFilms.cz: one cookie
// jar for the process lifetime, default headers, and status-aware GET and
// POST helpers. Parsers and resolvers never touch the jar directly; only
// the authenticator mutates it, through ResetCookies.
package session

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"

	"github.com/dafilmscz/godafilms/internal/util"
)

const UserAgent = "Mozilla/5.0 (X11; Linux x86_64; rv:146.0) Gecko/20100101 Firefox/146.0"

// NetworkError reports a transport-level failure (DNS, TLS, timeout).
type NetworkError struct {
	URL string
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("network error for %s: %v", e.URL, e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }

// StatusError reports a non-2xx response. The response body is still
// delivered to the caller, so endpoints that signal access control
// through status codes (the player endpoint answers 403 for paywalled
// films) can branch on Code instead of treating it as a hard failure.
type StatusError struct {
	URL  string
	Code int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("server returned %d for %s", e.Code, e.URL)
}

// Response is the subset of the HTTP response the scrapers consume. The
// body is fully read and the connection released before it is returned.
type Response struct {
	StatusCode int
	Header     http.Header
	Body       []byte
}

// Session wraps an HTTP client with a persistent cookie jar and default
// headers. One Session is shared by the authenticator and every scraper
// for the lifetime of the process.
type Session struct {
	client *http.Client
}

// New creates a session with a fresh cookie jar and the pooled transport.
func New() *Session {
	jar, _ := cookiejar.New(nil)
	return &Session{client: util.NewHTTPClient(jar)}
}

// Get issues a GET request. Extra headers override the defaults per call.
func (s *Session) Get(ctx context.Context, rawURL string, headers map[string]string) (*Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, &NetworkError{URL: rawURL, Err: err}
	}
	return s.do(req, headers)
}

// PostForm issues a form-encoded POST request.
func (s *Session) PostForm(ctx context.Context, rawURL string, form url.Values, headers map[string]string) (*Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, rawURL, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, &NetworkError{URL: rawURL, Err: err}
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return s.do(req, headers)
}

func (s *Session) do(req *http.Request, headers map[string]string) (*Response, error) {
	req.Header.Set("User-Agent", UserAgent)
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	util.Debug("session request", "method", req.Method, "url", req.URL.String())

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, &NetworkError{URL: req.URL.String(), Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &NetworkError{URL: req.URL.String(), Err: err}
	}

	out := &Response{
		StatusCode: resp.StatusCode,
		Header:     resp.Header,
		Body:       body,
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return out, &StatusError{URL: req.URL.String(), Code: resp.StatusCode}
	}
	return out, nil
}

// ResetCookies replaces the cookie jar wholesale. Used by logout so no
// residual cookies survive into the next session.
func (s *Session) ResetCookies() {
	jar, _ := cookiejar.New(nil)
	s.client.Jar = jar
}
