package sources

import "context"

// Entry is the uniform search-result shape every source collaborator
// produces: whatever a site's markup looks like, the aggregation core only
// ever sees this.
type Entry struct {
	Title       string `json:"title"`
	AltTitle    string `json:"alt_title,omitempty"`
	ID          string `json:"id"`
	URL         string `json:"url"`
	Poster      string `json:"poster,omitempty"`
	Cover       string `json:"cover,omitempty"`
	Description string `json:"description,omitempty"`
}

// Episode is one numbered episode in a source's own list. Number is unique
// within one list; fractional numbers (specials, ".5" episodes) are allowed.
type Episode struct {
	Number float64 `json:"episode_number"`
	ID     string  `json:"id"`
	URL    string  `json:"url"`
}

// Chapter is the manga counterpart of Episode.
type Chapter struct {
	Number float64 `json:"chapter_number"`
	ID     string  `json:"id"`
	URL    string  `json:"url"`
}

// Stream is a playable stream location plus optional embeddable markup.
type Stream struct {
	URL   string `json:"stream_url"`
	Embed string `json:"embed,omitempty"`
}

// Source is the contract every scraper collaborator implements. Search and
// Episodes return their own transport and parse errors; the aggregation
// layer degrades those to empty lists, so implementations never need to.
type Source interface {
	Key() string
	Name() string
	HealthCheck(ctx context.Context) error
	Search(ctx context.Context, query string) ([]Entry, error)
	Episodes(ctx context.Context, id string) ([]Episode, error)
	StreamURL(ctx context.Context, episodeID string) (*Stream, error)
}

// ChapterLister is implemented by sources that also expose numbered manga
// chapters.
type ChapterLister interface {
	Chapters(ctx context.Context, id string) ([]Chapter, error)
}
