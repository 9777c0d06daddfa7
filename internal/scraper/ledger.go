package scraper

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/dafilmscz/godafilms/internal/models"
)

// purchaseMarker is the purpose-column phrase identifying a film
// purchase among the other transactions on the payments page.
const purchaseMarker = "Stažení filmu"

// PurchasedFilms extracts the user's purchased films from the payments
// page, a transaction history table unrelated to the card listings.
// Thumbnails are left unset; the payments table has none, and fetching a
// detail page per purchase up front would make long ledgers slow. The
// caller resolves them lazily when it needs one.
func (c *Client) PurchasedFilms(ctx context.Context) ([]models.FilmRecord, error) {
	resp, err := c.session.Get(ctx, c.baseURL+"/user/detail/payments", nil)
	if err != nil {
		return nil, fmt.Errorf("fetching payments page: %w", err)
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(resp.Body))
	if err != nil {
		return nil, &ParseError{Page: "payments", Reason: "unreadable HTML: " + err.Error()}
	}

	var films []models.FilmRecord
	seen := make(map[string]bool)

	doc.Find("table.table-responsive tbody tr").Each(func(i int, row *goquery.Selection) {
		cols := row.Find("td")
		if cols.Length() < 2 {
			return
		}

		purpose := cols.Eq(1)
		if !strings.Contains(purpose.Text(), purchaseMarker) {
			return
		}

		var href, title string
		purpose.Find("a").EachWithBreak(func(_ int, a *goquery.Selection) bool {
			h, ok := a.Attr("href")
			if ok && strings.Contains(h, "/film/") {
				href = h
				title = strings.TrimSpace(a.Text())
				return false
			}
			return true
		})
		if href == "" {
			return
		}

		filmURL := c.resolveURL(href)
		id := filmIDFromURL(filmURL)
		if id == "" || seen[id] {
			return
		}
		seen[id] = true

		if title == "" {
			title = "Unknown Title"
		}

		films = append(films, models.FilmRecord{
			ID:    id,
			Title: title,
			URL:   filmURL,
		})
	})

	return films, nil
}
