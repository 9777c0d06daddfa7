package scraper

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"regexp"
	"strings"

	"github.com/dafilmscz/godafilms/internal/models"
	"github.com/dafilmscz/godafilms/internal/session"
	"github.com/dafilmscz/godafilms/internal/util"
)

// The player endpoint answers the same URL with either strict JSON
// (snippets map carrying an HTML fragment) or a raw HTML fragment,
// depending on server mood. Each extraction strategy below is a pure
// function returning (stream, ok); ResolveStream composes them with
// first-success-wins semantics so the fragility stays contained and each
// strategy is testable on its own.

const playerSnippetKey = "#film-player-container"

var (
	// sourcesRe matches the inline `sources = [...]` array-literal
	// assignment inside the player fragment. That is script text embedded
	// in markup, not a JSON field, so it has to be found by text search.
	sourcesRe = regexp.MustCompile(`(?s)sources\s*=\s*\[([^\]]+)\]`)

	// sourceObjRe splits the array body into brace-delimited objects.
	sourceObjRe = regexp.MustCompile(`\{[^}]+\}`)

	srcFieldRe   = regexp.MustCompile(`"src"\s*:\s*"([^"]+)"`)
	labelFieldRe = regexp.MustCompile(`"label"\s*:\s*"([^"]+)"`)

	// mp4InSourcesRe and anyMP4Re back the least-structured fallbacks.
	mp4InSourcesRe = regexp.MustCompile(`https[^"\s]+\.mp4`)
	anyMP4Re       = regexp.MustCompile(`https?://[^"'\s,&]+\.mp4`)
)

// ResolveStream asks the film's player sub-endpoint for a playable media
// URL. A 403 means the film requires purchase; that is reported as a
// paywalled Stream, never as an error. Paywall detection rests on the
// status code alone; the observed responses carry no other signal.
func (c *Client) ResolveStream(ctx context.Context, filmID string) (*models.Stream, error) {
	playerURL := c.baseURL + "/film/" + filmID + "/player"

	headers := map[string]string{
		"Accept":           "*/*",
		"Accept-Language":  "cs,sk;q=0.8,en-US;q=0.5,en;q=0.3",
		"X-Requested-With": "XMLHttpRequest",
		"Referer":          c.baseURL + "/film/" + filmID,
		"Sec-Fetch-Dest":   "empty",
		"Sec-Fetch-Mode":   "cors",
		"Sec-Fetch-Site":   "same-origin",
	}

	resp, err := c.session.Get(ctx, playerURL, headers)
	if err != nil {
		var statusErr *session.StatusError
		if errors.As(err, &statusErr) && statusErr.Code == http.StatusForbidden {
			util.Debug("player endpoint returned 403, film is paywalled", "film", filmID)
			return &models.Stream{Paywalled: true}, nil
		}
		return nil, fmt.Errorf("fetching player for film %s: %w", filmID, err)
	}

	body := resp.Body

	var payload map[string]any
	if json.Unmarshal(body, &payload) == nil {
		if stream, ok := extractFromPlayerSnippet(payload); ok {
			return stream, nil
		}
		if stream, ok := extractFromSimpleJSON(payload); ok {
			return stream, nil
		}
	} else {
		text := string(body)
		if stream, ok := extractFromSourcesBlock(text); ok {
			return stream, nil
		}
		if stream, ok := extractAnyMP4(text); ok {
			return stream, nil
		}
	}

	return nil, &ResolutionError{FilmID: filmID}
}

// extractFromPlayerSnippet walks the structured path: JSON payload →
// snippets map → player-container HTML fragment → inline sources array.
func extractFromPlayerSnippet(payload map[string]any) (*models.Stream, bool) {
	snippets, ok := payload["snippets"].(map[string]any)
	if !ok {
		return nil, false
	}
	fragment, ok := snippets[playerSnippetKey].(string)
	if !ok {
		return nil, false
	}

	match := sourcesRe.FindStringSubmatch(fragment)
	if match == nil {
		return nil, false
	}

	var candidates []models.Stream
	for i, obj := range sourceObjRe.FindAllString(match[1], -1) {
		srcMatch := srcFieldRe.FindStringSubmatch(obj)
		if srcMatch == nil {
			continue
		}
		src := strings.ReplaceAll(srcMatch[1], `\/`, "/")

		label := fmt.Sprintf("Quality %d", i+1)
		if labelMatch := labelFieldRe.FindStringSubmatch(obj); labelMatch != nil {
			label = labelMatch[1]
		}

		candidates = append(candidates, models.Stream{
			URL:     src,
			Label:   label,
			Quality: qualityOf(src),
		})
	}

	return pickBest(candidates)
}

// extractFromSimpleJSON covers the plainer JSON shapes the endpoint has
// been seen to answer with: a top-level sources list, a stream string, or
// a url string, tried in that order.
func extractFromSimpleJSON(payload map[string]any) (*models.Stream, bool) {
	if sources, ok := payload["sources"].([]any); ok {
		for _, entry := range sources {
			obj, ok := entry.(map[string]any)
			if !ok {
				continue
			}
			if src, ok := obj["src"].(string); ok && src != "" {
				label, _ := obj["label"].(string)
				return &models.Stream{URL: src, Label: label, Quality: qualityOf(src)}, true
			}
		}
	}
	if stream, ok := payload["stream"].(string); ok && stream != "" {
		return &models.Stream{URL: stream, Quality: qualityOf(stream)}, true
	}
	if u, ok := payload["url"].(string); ok && u != "" {
		return &models.Stream{URL: u, Quality: qualityOf(u)}, true
	}
	return nil, false
}

// extractFromSourcesBlock scans a non-JSON response for the sources
// array-literal and picks an .mp4 URL out of it.
func extractFromSourcesBlock(text string) (*models.Stream, bool) {
	match := sourcesRe.FindStringSubmatch(text)
	if match == nil {
		return nil, false
	}
	return pickBestURL(mp4InSourcesRe.FindAllString(match[1], -1))
}

// extractAnyMP4 is the last resort: any http(s)://...mp4 URL anywhere in
// the raw response.
func extractAnyMP4(text string) (*models.Stream, bool) {
	return pickBestURL(anyMP4Re.FindAllString(text, -1))
}

// qualityOf classifies a candidate URL: the site tags its HD renditions
// with a 720p path segment.
func qualityOf(url string) models.Quality {
	if strings.Contains(url, "720p") {
		return models.QualityHD
	}
	return models.QualitySD
}

// pickBest prefers the first HD candidate, else the first candidate in
// document order.
func pickBest(candidates []models.Stream) (*models.Stream, bool) {
	if len(candidates) == 0 {
		return nil, false
	}
	for i := range candidates {
		if candidates[i].Quality == models.QualityHD {
			return &candidates[i], true
		}
	}
	return &candidates[0], true
}

func pickBestURL(urls []string) (*models.Stream, bool) {
	var candidates []models.Stream
	for _, u := range urls {
		u = strings.ReplaceAll(u, `\/`, "/")
		candidates = append(candidates, models.Stream{URL: u, Quality: qualityOf(u)})
	}
	return pickBest(candidates)
}
