// Package models contains data structures for DAFilms content
package models

// Quality labels a stream source by resolution class.
type Quality string

const (
	QualityHD Quality = "HD"
	QualitySD Quality = "SD"
)

// FilmRecord represents one film as it appears on a listing, search or
// payments page. Identity is ID; two records with the same ID are the
// same film regardless of title drift.
type FilmRecord struct {
	ID       string // site-assigned slug, e.g. "10919-karel-ja-a-ty"
	Title    string
	URL      string // absolute URL of the film page
	ThumbURL string // empty when the page carries no thumbnail
}

// FilmDetail holds the structured metadata scraped from a film's detail
// page. It has no identity beyond the film ID used to fetch it.
type FilmDetail struct {
	Title    string
	Plot     string
	Director string // empty when the site lists no director
	Cast     []string
	ThumbURL string
}

// Stream is the outcome of resolving a film's player endpoint: either a
// playable media URL with its quality label, or a paywall signal.
// Paywalled is a first-class result, not an error; the site answers 403
// for films that require purchase.
type Stream struct {
	URL       string
	Label     string
	Quality   Quality
	Paywalled bool
}
