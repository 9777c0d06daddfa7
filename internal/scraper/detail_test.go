package scraper

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// The Movie block carries a raw newline and an en dash inside string
// values, which strict JSON parsing rejects until sanitized.
const detailPage = `<html><head>
<script type="application/ld+json">
{"@context": "https://schema.org", "@type": "BreadcrumbList", "itemListElement": []}
</script>
<script type="application/ld+json">
{this block is not JSON at all
</script>
<script type="application/ld+json">
{
  "@context": "https://schema.org",
  "@type": "Movie",
  "name": "Karel, já a ty",
  "description": "Příběh o lásce
 a přátelství – komorní portrét.",
  "director": [{"name": "Bohdan Karásek"}],
  "actor": [{"name": "Jenovéfa Boková"}, {"name": "Miloslav König"}],
  "image": "https://img.dafilms.cz/karel.jpg"
}
</script>
</head><body></body></html>`

func TestFilmDetailPicksMovieBlock(t *testing.T) {
	t.Parallel()

	var gotPath string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		_, _ = fmt.Fprint(w, detailPage)
	}))
	defer server.Close()

	detail, err := newTestClient(server.URL).FilmDetail(context.Background(), "10919-karel-ja-a-ty")
	require.NoError(t, err)

	assert.Equal(t, "/film/10919-karel-ja-a-ty", gotPath)
	assert.Equal(t, "Karel, já a ty", detail.Title)
	assert.Equal(t, "Příběh o lásce a přátelství - komorní portrét.", detail.Plot)
	assert.Equal(t, "Bohdan Karásek", detail.Director)
	assert.Equal(t, []string{"Jenovéfa Boková", "Miloslav König"}, detail.Cast)
	assert.Equal(t, "https://img.dafilms.cz/karel.jpg", detail.ThumbURL)
}

func TestFilmDetailFailsWithoutMovieBlock(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = fmt.Fprint(w, `<html><head>
			<script type="application/ld+json">{"@type": "Organization", "name": "DAFilms"}</script>
		</head><body></body></html>`)
	}))
	defer server.Close()

	_, err := newTestClient(server.URL).FilmDetail(context.Background(), "1-nic")

	var parseErr *ParseError
	require.ErrorAs(t, err, &parseErr)
	assert.Contains(t, parseErr.Error(), "no Movie JSON-LD block")
}

func TestFilmDetailHandlesMissingOptionalFields(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = fmt.Fprint(w, `<html><head>
			<script type="application/ld+json">{"@type": "Movie", "name": "Bez režie", "description": "Popis"}</script>
		</head><body></body></html>`)
	}))
	defer server.Close()

	detail, err := newTestClient(server.URL).FilmDetail(context.Background(), "2-bez-rezie")
	require.NoError(t, err)

	assert.Equal(t, "Bez režie", detail.Title)
	assert.Empty(t, detail.Director)
	assert.Empty(t, detail.Cast)
	assert.Empty(t, detail.ThumbURL)
}

func TestSanitizeJSONLD(t *testing.T) {
	t.Parallel()

	raw := "{\"name\":\n \"A B\t–\rC\"}"
	assert.Equal(t, `{"name": "A B-C"}`, sanitizeJSONLD(raw))
}
