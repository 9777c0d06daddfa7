package scraper

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dafilmscz/godafilms/internal/session"
)

func newTestClient(serverURL string) *Client {
	return NewClientWithBase(session.New(), serverURL)
}

func filmCard(href, titleClass, title, style, img string) string {
	card := `<li data-film-item="true">`
	card += fmt.Sprintf(`<a class="ui-movie-card__link" href="%s"`, href)
	if style != "" {
		card += fmt.Sprintf(` style="%s"`, style)
	}
	card += ">"
	if title != "" {
		card += fmt.Sprintf(`<span class="%s">%s</span>`, titleClass, title)
	}
	if img != "" {
		card += fmt.Sprintf(`<img src="%s">`, img)
	}
	card += "</a></li>"
	return card
}

func TestListingRespectsLimitAndOrder(t *testing.T) {
	t.Parallel()

	page := "<html><body><ul>"
	for i := 1; i <= 5; i++ {
		page += filmCard(fmt.Sprintf("/film/%d-film-cislo-%d", i, i),
			"ui-movie-card__link--title", fmt.Sprintf("Film %d", i), "", "")
	}
	page += "</ul></body></html>"

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = fmt.Fprint(w, page)
	}))
	defer server.Close()

	films, err := newTestClient(server.URL).NewestFilms(context.Background(), 3)
	require.NoError(t, err)
	require.Len(t, films, 3)

	for i, film := range films {
		assert.Equal(t, fmt.Sprintf("%d-film-cislo-%d", i+1, i+1), film.ID)
		assert.Equal(t, fmt.Sprintf("Film %d", i+1), film.Title)
		assert.NotEmpty(t, film.URL)
	}
}

func TestListingThumbnailFallbacks(t *testing.T) {
	t.Parallel()

	page := "<html><body><ul>" +
		// background-image style wins
		filmCard("/film/1-prvni", "ui-movie-card__link--title", "Prvni",
			"background-image: url('https://img.test/style.jpg')", "https://img.test/img.jpg") +
		// no style, img src is the fallback
		filmCard("/film/2-druhy", "ui-movie-card__link--title", "Druhy", "", "https://img.test/img2.jpg") +
		// neither source leaves the thumbnail unset
		filmCard("/film/3-treti", "ui-movie-card__link--title", "Treti", "", "") +
		"</ul></body></html>"

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = fmt.Fprint(w, page)
	}))
	defer server.Close()

	films, err := newTestClient(server.URL).NewestFilms(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, films, 3)

	assert.Equal(t, "https://img.test/style.jpg", films[0].ThumbURL)
	assert.Equal(t, "https://img.test/img2.jpg", films[1].ThumbURL)
	assert.Empty(t, films[2].ThumbURL)
}

func TestListingTitleFallbacks(t *testing.T) {
	t.Parallel()

	page := "<html><body><ul>" +
		filmCard("/film/1-prvni", "ui-movie-card__title", "Secondary Title", "", "") +
		filmCard("/film/2-druhy", "ui-movie-card__link--title", "", "", "") +
		"</ul></body></html>"

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = fmt.Fprint(w, page)
	}))
	defer server.Close()

	films, err := newTestClient(server.URL).NewestFilms(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, films, 2)

	assert.Equal(t, "Secondary Title", films[0].Title)
	// A card is never dropped for a missing title.
	assert.Equal(t, "Unknown Title", films[1].Title)
}

func TestListingSkipsCardsWithoutAnchor(t *testing.T) {
	t.Parallel()

	page := `<html><body><ul>
		<li data-film-item="true"><span>broken card</span></li>` +
		filmCard("/film/1-prvni", "ui-movie-card__link--title", "Prvni", "", "") +
		"</ul></body></html>"

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = fmt.Fprint(w, page)
	}))
	defer server.Close()

	films, err := newTestClient(server.URL).NewestFilms(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, films, 1)
	assert.Equal(t, "1-prvni", films[0].ID)
}

func TestSearchFindsKarel(t *testing.T) {
	t.Parallel()

	var gotQuery string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query().Get("q")
		_, _ = fmt.Fprint(w, "<html><body><ul>"+
			filmCard("/film/10919-karel-ja-a-ty", "ui-movie-card__link--title", "Karel, já a ty",
				"background-image: url('https://img.dafilms.cz/karel.jpg')", "")+
			"</ul></body></html>")
	}))
	defer server.Close()

	films, err := newTestClient(server.URL).SearchFilms(context.Background(), "Karel", 20)
	require.NoError(t, err)
	require.Len(t, films, 1)

	assert.Equal(t, "Karel", gotQuery)
	assert.Equal(t, "10919-karel-ja-a-ty", films[0].ID)
	assert.Equal(t, "Karel, já a ty", films[0].Title)
	assert.Equal(t, "https://img.dafilms.cz/karel.jpg", films[0].ThumbURL)
	assert.Equal(t, server.URL+"/film/10919-karel-ja-a-ty", films[0].URL)
}

func TestCatalogSortQueryParameters(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		sort Sort
		want string
	}{
		{"newest", SortNewest, "o=r&oa=1"},
		{"oldest", SortOldest, "o=r&oa=0"},
		{"title", SortTitle, "o=t&oa=1"},
		{"default", SortDefault, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var gotQuery string
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				gotQuery = r.URL.RawQuery
				_, _ = fmt.Fprint(w, "<html><body></body></html>")
			}))
			defer server.Close()

			_, err := newTestClient(server.URL).AllFilms(context.Background(), tt.sort, 10)
			require.NoError(t, err)
			assert.Equal(t, tt.want, gotQuery)
		})
	}
}

func TestSubscriptionListingUsesCollectionPath(t *testing.T) {
	t.Parallel()

	var gotPath string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		_, _ = fmt.Fprint(w, "<html><body><ul>"+
			filmCard("/film/42-svod-film", "ui-movie-card__link--title", "SVOD Film", "", "")+
			"</ul></body></html>")
	}))
	defer server.Close()

	films, err := newTestClient(server.URL).SubscriptionFilms(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, films, 1)
	assert.Equal(t, "/collection/35-svod-covered", gotPath)
	assert.Equal(t, "42-svod-film", films[0].ID)
}
