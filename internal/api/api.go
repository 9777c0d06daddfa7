// Package api is the inbound contract for hosts embedding the DAFilms
// client: listing, search, detail, stream resolution and session
// management behind one explicitly constructed Client. The session
// context is injected into every component; nothing here is a lazily
// initialized global.
package api

import (
	"context"

	"github.com/pkg/errors"

	"github.com/dafilmscz/godafilms/internal/auth"
	"github.com/dafilmscz/godafilms/internal/models"
	"github.com/dafilmscz/godafilms/internal/scraper"
	"github.com/dafilmscz/godafilms/internal/session"
)

// Sort re-exports the catalog ordering selector.
type Sort = scraper.Sort

const (
	SortDefault = scraper.SortDefault
	SortNewest  = scraper.SortNewest
	SortOldest  = scraper.SortOldest
	SortTitle   = scraper.SortTitle
)

// Client bundles one session, its authenticator and the scraper. All
// calls are synchronous and issue one request at a time; the cookie jar
// is shared state owned by the session/authenticator pair alone.
type Client struct {
	session *session.Session
	auth    *auth.Authenticator
	scraper *scraper.Client
}

// New creates a client against the production site.
func New() *Client {
	return NewWithBase(scraper.DAFilmsBase)
}

// NewWithBase creates a client against a custom base URL.
func NewWithBase(baseURL string) *Client {
	sess := session.New()
	return &Client{
		session: sess,
		auth:    auth.New(sess, baseURL),
		scraper: scraper.NewClientWithBase(sess, baseURL),
	}
}

// Login authenticates the session with the given credentials.
func (c *Client) Login(ctx context.Context, username, password string) error {
	return errors.Wrap(c.auth.Login(ctx, username, password), "login")
}

// Logout resets the session to anonymous and drops all cookies.
func (c *Client) Logout() {
	c.auth.Logout()
}

// IsLoggedIn reports the current login state.
func (c *Client) IsLoggedIn() bool {
	return c.auth.IsLoggedIn()
}

// NewestFilms lists the catalog newest-first.
func (c *Client) NewestFilms(ctx context.Context, limit int) ([]models.FilmRecord, error) {
	films, err := c.scraper.NewestFilms(ctx, limit)
	return films, errors.Wrap(err, "newest films")
}

// AllFilms lists the full catalog in the given order.
func (c *Client) AllFilms(ctx context.Context, sort Sort, limit int) ([]models.FilmRecord, error) {
	films, err := c.scraper.AllFilms(ctx, sort, limit)
	return films, errors.Wrap(err, "all films")
}

// SubscriptionFilms lists films covered by the subscription.
func (c *Client) SubscriptionFilms(ctx context.Context, limit int) ([]models.FilmRecord, error) {
	films, err := c.scraper.SubscriptionFilms(ctx, limit)
	return films, errors.Wrap(err, "subscription films")
}

// PurchasedFilms lists the user's purchased films. Requires login.
func (c *Client) PurchasedFilms(ctx context.Context) ([]models.FilmRecord, error) {
	films, err := c.scraper.PurchasedFilms(ctx)
	return films, errors.Wrap(err, "purchased films")
}

// SearchFilms searches the catalog by title.
func (c *Client) SearchFilms(ctx context.Context, query string, limit int) ([]models.FilmRecord, error) {
	films, err := c.scraper.SearchFilms(ctx, query, limit)
	return films, errors.Wrapf(err, "search %q", query)
}

// FilmDetail fetches structured metadata for one film.
func (c *Client) FilmDetail(ctx context.Context, filmID string) (*models.FilmDetail, error) {
	detail, err := c.scraper.FilmDetail(ctx, filmID)
	return detail, errors.Wrapf(err, "detail for %s", filmID)
}

// ResolveStream resolves a playable media URL for one film, or a
// paywalled outcome when the site denies access. URLs are time-limited
// and session-bound, so every playback request resolves afresh.
func (c *Client) ResolveStream(ctx context.Context, filmID string) (*models.Stream, error) {
	stream, err := c.scraper.ResolveStream(ctx, filmID)
	return stream, errors.Wrapf(err, "stream for %s", filmID)
}
