package scraper

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"unicode"

	"github.com/PuerkitoBio/goquery"

	"github.com/dafilmscz/godafilms/internal/models"
	"github.com/dafilmscz/godafilms/internal/util"
)

// jsonLDMovie mirrors the schema.org Movie block embedded on detail pages.
type jsonLDMovie struct {
	Type        string `json:"@type"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Director    []struct {
		Name string `json:"name"`
	} `json:"director"`
	Actor []struct {
		Name string `json:"name"`
	} `json:"actor"`
	Image string `json:"image"`
}

// FilmDetail scrapes structured metadata from a film's detail page. The
// page carries several JSON-LD blocks (breadcrumbs, organization, movie);
// the first block declaring @type Movie wins. Blocks that fail to parse
// even after sanitization are skipped, not fatal.
func (c *Client) FilmDetail(ctx context.Context, filmID string) (*models.FilmDetail, error) {
	resp, err := c.session.Get(ctx, c.baseURL+"/film/"+filmID, nil)
	if err != nil {
		return nil, fmt.Errorf("fetching film %s: %w", filmID, err)
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(resp.Body))
	if err != nil {
		return nil, &ParseError{Page: "film/" + filmID, Reason: "unreadable HTML: " + err.Error()}
	}

	var movie *jsonLDMovie
	doc.Find(`script[type="application/ld+json"]`).EachWithBreak(func(i int, s *goquery.Selection) bool {
		var block jsonLDMovie
		if err := json.Unmarshal([]byte(sanitizeJSONLD(s.Text())), &block); err != nil {
			util.Debug("skipping unparseable JSON-LD block", "film", filmID, "index", i)
			return true
		}
		if block.Type != "Movie" {
			return true
		}
		movie = &block
		return false
	})

	if movie == nil {
		return nil, &ParseError{Page: "film/" + filmID, Reason: "no Movie JSON-LD block found"}
	}

	detail := &models.FilmDetail{
		Title:    movie.Name,
		Plot:     movie.Description,
		ThumbURL: movie.Image,
	}
	if len(movie.Director) > 0 {
		detail.Director = movie.Director[0].Name
	}
	for _, actor := range movie.Actor {
		detail.Cast = append(detail.Cast, actor.Name)
	}

	return detail, nil
}

// sanitizeJSONLD cleans the site's JSON-LD blocks enough for strict
// parsing: the CMS leaves raw newlines, non-breaking spaces and
// typographic punctuation inside string values.
func sanitizeJSONLD(raw string) string {
	r := strings.NewReplacer(
		"\n", "",
		"\r", "",
		"\t", "",
		" ", " ", // non-breaking space
		"–", "-", // en dash
		"“", `"`, // left double quote
		"”", `"`, // right double quote
	)
	clean := r.Replace(raw)

	clean = strings.Map(func(ch rune) rune {
		if unicode.IsPrint(ch) || unicode.IsSpace(ch) {
			return ch
		}
		return -1
	}, clean)

	return strings.Join(strings.Fields(clean), " ")
}
