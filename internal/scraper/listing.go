package scraper

import (
	"bytes"
	"context"
	"fmt"
	"net/url"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/dafilmscz/godafilms/internal/models"
	"github.com/dafilmscz/godafilms/internal/util"
)

// bgImageRe pulls the thumbnail URL out of an inline background-image
// style attribute, e.g. style="background-image: url('https://...')".
var bgImageRe = regexp.MustCompile(`url\(['"]([^'"]+)['"]\)`)

// NewestFilms lists the catalog ordered by addition time, newest first.
func (c *Client) NewestFilms(ctx context.Context, limit int) ([]models.FilmRecord, error) {
	return c.filmsFromListing(ctx, SortNewest, limit)
}

// AllFilms lists the full catalog with the given sort order.
func (c *Client) AllFilms(ctx context.Context, sort Sort, limit int) ([]models.FilmRecord, error) {
	return c.filmsFromListing(ctx, sort, limit)
}

// SubscriptionFilms lists the films covered by the subscription (SVOD
// collection).
func (c *Client) SubscriptionFilms(ctx context.Context, limit int) ([]models.FilmRecord, error) {
	resp, err := c.session.Get(ctx, c.baseURL+svodCollectionPath, nil)
	if err != nil {
		return nil, fmt.Errorf("fetching subscription films: %w", err)
	}
	return c.parseFilmCards(resp.Body, limit)
}

// SearchFilms searches the catalog by title.
func (c *Client) SearchFilms(ctx context.Context, query string, limit int) ([]models.FilmRecord, error) {
	searchURL := c.baseURL + "/film?q=" + url.QueryEscape(query)

	util.Debug("film search", "query", query, "url", searchURL)

	resp, err := c.session.Get(ctx, searchURL, nil)
	if err != nil {
		return nil, fmt.Errorf("searching films: %w", err)
	}
	return c.parseFilmCards(resp.Body, limit)
}

func (c *Client) filmsFromListing(ctx context.Context, sort Sort, limit int) ([]models.FilmRecord, error) {
	listingURL := c.baseURL + "/film" + sort.query()

	resp, err := c.session.Get(ctx, listingURL, nil)
	if err != nil {
		return nil, fmt.Errorf("fetching film listing: %w", err)
	}
	return c.parseFilmCards(resp.Body, limit)
}

// parseFilmCards extracts film records from the repeated card markup all
// listing pages share (newest, catalog, collection, search). Order
// follows the document; collection stops as soon as limit records are
// gathered since listing pages can carry far more cards than requested.
// A malformed card is skipped, never fatal.
func (c *Client) parseFilmCards(page []byte, limit int) ([]models.FilmRecord, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(page))
	if err != nil {
		return nil, &ParseError{Page: "listing", Reason: "unreadable HTML: " + err.Error()}
	}

	var films []models.FilmRecord

	doc.Find(`li[data-film-item="true"]`).EachWithBreak(func(i int, card *goquery.Selection) bool {
		link := card.Find("a.ui-movie-card__link").First()
		href, exists := link.Attr("href")
		if !exists || href == "" {
			return true
		}

		filmURL := c.resolveURL(href)
		id := filmIDFromURL(filmURL)
		if id == "" {
			return true
		}

		// Title falls back through the secondary class to a placeholder;
		// a card is never dropped for a missing title.
		title := strings.TrimSpace(card.Find(".ui-movie-card__link--title").First().Text())
		if title == "" {
			title = strings.TrimSpace(card.Find(".ui-movie-card__title").First().Text())
		}
		if title == "" {
			title = "Unknown Title"
		}

		thumb := ""
		if style, ok := link.Attr("style"); ok {
			if m := bgImageRe.FindStringSubmatch(style); m != nil {
				thumb = m[1]
			}
		}
		if thumb == "" {
			thumb, _ = card.Find("img").First().Attr("src")
		}

		films = append(films, models.FilmRecord{
			ID:       id,
			Title:    title,
			URL:      filmURL,
			ThumbURL: thumb,
		})

		return len(films) < limit
	})

	return films, nil
}
