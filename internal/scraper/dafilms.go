// Package scraper turns DAFilms.cz HTML pages into structured film
// records and playable stream URLs. The site has no public API; every
// extraction here works against pages meant for browsers and degrades
// through fallbacks instead of committing to one markup shape.
package scraper

import (
	"strings"

	"github.com/dafilmscz/godafilms/internal/session"
)

const (
	DAFilmsBase = "https://dafilms.cz"

	// svodCollectionPath is the collection holding every film covered by
	// the subscription.
	svodCollectionPath = "/collection/35-svod-covered"
)

// Sort selects the ordering of the full-catalog listing.
type Sort string

const (
	SortDefault Sort = ""
	SortNewest  Sort = "newest"
	SortOldest  Sort = "oldest"
	SortTitle   Sort = "title"
)

// query maps the sort selector onto the site's o/oa query parameters:
// o=r orders by addition time, o=t by title, oa picks the direction.
func (s Sort) query() string {
	switch s {
	case SortNewest:
		return "?o=r&oa=1"
	case SortOldest:
		return "?o=r&oa=0"
	case SortTitle:
		return "?o=t&oa=1"
	default:
		return ""
	}
}

// ParseError reports that an expected markup or structured-data shape was
// absent from a page after all fallback strategies were exhausted.
type ParseError struct {
	Page   string
	Reason string
}

func (e *ParseError) Error() string {
	return "parse error on " + e.Page + ": " + e.Reason
}

// ResolutionError reports that stream extraction exhausted every strategy.
type ResolutionError struct {
	FilmID string
}

func (e *ResolutionError) Error() string {
	return "stream not found for film " + e.FilmID
}

// Client scrapes DAFilms.cz through a shared authenticated session. It
// never mutates the session's cookie state; that is the authenticator's
// job.
type Client struct {
	session *session.Session
	baseURL string
}

// NewClient creates a scraper client for the production site.
func NewClient(sess *session.Session) *Client {
	return &Client{session: sess, baseURL: DAFilmsBase}
}

// NewClientWithBase creates a scraper client against a custom base URL.
// Tests point this at an httptest server.
func NewClientWithBase(sess *session.Session, baseURL string) *Client {
	return &Client{session: sess, baseURL: strings.TrimRight(baseURL, "/")}
}

// resolveURL resolves relative URLs to absolute URLs
func (c *Client) resolveURL(ref string) string {
	if strings.HasPrefix(ref, "http") {
		return ref
	}
	if strings.HasPrefix(ref, "/") {
		return c.baseURL + ref
	}
	return c.baseURL + "/" + ref
}

// filmIDFromURL derives the stable film id: the path segment following
// the /film/ marker, up to the next slash.
func filmIDFromURL(u string) string {
	idx := strings.LastIndex(u, "/film/")
	if idx < 0 {
		return ""
	}
	rest := u[idx+len("/film/"):]
	if slash := strings.IndexByte(rest, '/'); slash >= 0 {
		rest = rest[:slash]
	}
	if q := strings.IndexByte(rest, '?'); q >= 0 {
		rest = rest[:q]
	}
	return rest
}
