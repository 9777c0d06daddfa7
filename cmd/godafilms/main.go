package main

import (
	"context"
	"flag"
	"fmt"
	"log"

	"github.com/dafilmscz/godafilms/internal/api"
	"github.com/dafilmscz/godafilms/internal/appflow"
	"github.com/dafilmscz/godafilms/internal/config"
	"github.com/dafilmscz/godafilms/internal/scraper"
	"github.com/dafilmscz/godafilms/internal/util"
	"github.com/dafilmscz/godafilms/internal/version"
)

func main() {
	versionFlag := flag.Bool("version", false, "show version information")
	debugFlag := flag.Bool("debug", false, "enable debug mode")
	helpFlag := flag.Bool("help", false, "show help message")
	altHelpFlag := flag.Bool("h", false, "show help message")
	limitFlag := flag.Int("limit", 0, "cap listing length")
	sortFlag := flag.String("sort", "", "catalog order: newest | oldest | title")

	flag.Parse()

	if *versionFlag || version.HasVersionArg() {
		version.ShowVersion()
		return
	}

	if *helpFlag || *altHelpFlag || flag.NArg() == 0 {
		util.Helper()
		return
	}

	util.SetDebugMode(*debugFlag)
	util.InitLogger()

	settings, err := config.Load()
	if err != nil {
		util.Warn("could not read settings, using defaults", "err", err)
	}

	limit := settings.Limit
	if *limitFlag > 0 {
		limit = *limitFlag
	}

	baseURL := scraper.DAFilmsBase
	if settings.BaseURL != "" {
		baseURL = settings.BaseURL
	}
	client := api.NewWithBase(baseURL)

	ctx := context.Background()
	action := flag.Arg(0)
	argument := flag.Arg(1)

	if err := run(ctx, client, &settings, action, argument, *sortFlag, limit); err != nil {
		log.Fatalln(util.ErrorHandler(err))
	}
}

func run(ctx context.Context, client *api.Client, settings *config.Settings, action, argument, sort string, limit int) error {
	switch action {
	case "newest":
		films, err := client.NewestFilms(ctx, limit)
		if err != nil {
			return err
		}
		appflow.PrintFilms(films)

	case "all":
		films, err := client.AllFilms(ctx, api.Sort(sort), limit)
		if err != nil {
			return err
		}
		appflow.PrintFilms(films)

	case "subscription":
		films, err := client.SubscriptionFilms(ctx, limit)
		if err != nil {
			return err
		}
		appflow.PrintFilms(films)

	case "purchased":
		if err := appflow.EnsureLogin(ctx, client, settings); err != nil {
			return err
		}
		films, err := client.PurchasedFilms(ctx)
		if err != nil {
			return err
		}
		appflow.PrintFilms(films)

	case "search":
		query := argument
		if query == "" {
			var err error
			query, err = util.PromptInput("Search DAFilms")
			if err != nil {
				return err
			}
		}
		films, err := client.SearchFilms(ctx, query, limit)
		if err != nil {
			return err
		}
		appflow.PrintFilms(films)

	case "detail":
		if argument == "" {
			return fmt.Errorf("usage: godafilms detail <film-id>")
		}
		detail, err := client.FilmDetail(ctx, argument)
		if err != nil {
			return err
		}
		appflow.PrintDetail(detail)

	case "play":
		filmID, title := argument, argument
		if filmID == "" {
			query, err := util.PromptInput("Search DAFilms")
			if err != nil {
				return err
			}
			films, err := client.SearchFilms(ctx, query, limit)
			if err != nil {
				return err
			}
			film, err := appflow.SelectFilm(films)
			if err != nil {
				return err
			}
			filmID, title = film.ID, film.Title
		}
		if err := appflow.EnsureLogin(ctx, client, settings); err != nil {
			return err
		}
		return appflow.PlayFilm(ctx, client, filmID, title)

	case "login":
		return appflow.EnsureLogin(ctx, client, settings)

	case "logout":
		client.Logout()
		settings.Username = ""
		settings.Password = ""
		if err := config.Save(*settings); err != nil {
			util.Warn("could not clear stored credentials", "err", err)
		}
		util.Info("logged out")

	case "status":
		if client.IsLoggedIn() {
			fmt.Println("logged in")
		} else {
			fmt.Println("not logged in")
		}

	default:
		util.Helper()
		return fmt.Errorf("unknown action %q", action)
	}

	return nil
}
