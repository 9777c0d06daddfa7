// Package appflow holds the CLI's user-facing flows: login gating,
// listing output, interactive film selection and the playback handoff.
package appflow

import (
	"context"
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/ktr0731/go-fuzzyfinder"
	"github.com/pkg/errors"

	"github.com/dafilmscz/godafilms/internal/api"
	"github.com/dafilmscz/godafilms/internal/config"
	"github.com/dafilmscz/godafilms/internal/models"
	"github.com/dafilmscz/godafilms/internal/player"
	"github.com/dafilmscz/godafilms/internal/util"
)

var (
	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#4ECDC4")).
			Bold(true)

	idStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#96CEB4"))

	noticeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFA726")).
			Bold(true)
)

// EnsureLogin logs the client in, using stored credentials when present
// and prompting otherwise. Newly prompted credentials are saved back to
// the settings file after a successful login.
func EnsureLogin(ctx context.Context, client *api.Client, settings *config.Settings) error {
	if client.IsLoggedIn() {
		return nil
	}

	username, password := settings.Username, settings.Password
	prompted := false

	if username == "" || password == "" {
		var err error
		username, err = util.PromptInput("DAFilms e-mail")
		if err != nil {
			return errors.Wrap(err, "reading username")
		}
		password, err = util.PromptPassword("Password")
		if err != nil {
			return errors.Wrap(err, "reading password")
		}
		prompted = true
	}

	if err := client.Login(ctx, username, password); err != nil {
		return err
	}

	if prompted {
		settings.Username = username
		settings.Password = password
		if err := config.Save(*settings); err != nil {
			util.Warn("could not save credentials", "err", err)
		}
	}

	util.Info("logged in", "user", username)
	return nil
}

// PrintFilms renders a listing to stdout, one film per line.
func PrintFilms(films []models.FilmRecord) {
	if len(films) == 0 {
		fmt.Println(noticeStyle.Render("No films found"))
		return
	}
	for _, film := range films {
		fmt.Printf("%s  %s\n", idStyle.Render(film.ID), titleStyle.Render(film.Title))
	}
}

// PrintDetail renders film metadata to stdout. This is also where
// thumbnails for purchased films get resolved, lazily, via the detail
// page; the payments ledger carries none.
func PrintDetail(detail *models.FilmDetail) {
	fmt.Println(titleStyle.Render(detail.Title))
	if detail.Director != "" {
		fmt.Printf("Director: %s\n", detail.Director)
	}
	for _, actor := range detail.Cast {
		fmt.Printf("Cast: %s\n", actor)
	}
	if detail.Plot != "" {
		fmt.Printf("\n%s\n", detail.Plot)
	}
	if detail.ThumbURL != "" {
		fmt.Printf("\nThumbnail: %s\n", detail.ThumbURL)
	}
}

// SelectFilm lets the user pick one film from a listing.
func SelectFilm(films []models.FilmRecord) (*models.FilmRecord, error) {
	if len(films) == 0 {
		return nil, errors.New("nothing to select from")
	}

	idx, err := fuzzyfinder.Find(films, func(i int) string {
		return films[i].Title
	})
	if err != nil {
		return nil, errors.Wrap(err, "film selection")
	}
	return &films[idx], nil
}

// PlayFilm resolves a stream for the film and hands it to mpv. A
// paywalled outcome is reported to the user, not treated as a failure.
func PlayFilm(ctx context.Context, client *api.Client, filmID, title string) error {
	stream, err := client.ResolveStream(ctx, filmID)
	if err != nil {
		return err
	}

	if stream.Paywalled {
		fmt.Println(noticeStyle.Render("This film requires a purchase or subscription"))
		return nil
	}

	util.Info("resolved stream", "quality", string(stream.Quality))
	return player.Play(stream.URL, title)
}
