package aggregate

import (
	"context"
	"log/slog"
	"time"

	"github.com/sourcegraph/conc"

	"github.com/davide/animerge/internal/sources"
)

// StreamStatus is one source's answer to a stream lookup.
type StreamStatus struct {
	Available bool   `json:"available"`
	StreamURL string `json:"stream_url,omitempty"`
	Embed     string `json:"embed,omitempty"`
}

// SeasonMap groups a source's episodes by season label. Sources that expose
// a flat list land under "S1".
type SeasonMap map[string][]AggregatedEpisode

type ServiceConfig struct {
	SourceTimeout time.Duration
}

// Service fans requests out to every registered source concurrently and runs
// the merge engine over whatever came back. Each fetch gets its own bounded
// timeout; a failed or slow source contributes an empty list and never blocks
// the rest. All merge state is call-scoped, so the service is safe for
// concurrent use without locking.
type Service struct {
	registry *sources.Registry
	timeout  time.Duration
	logger   *slog.Logger
}

func NewService(registry *sources.Registry, cfg ServiceConfig, logger *slog.Logger) *Service {
	if cfg.SourceTimeout <= 0 {
		cfg.SourceTimeout = 12 * time.Second
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &Service{
		registry: registry,
		timeout:  cfg.SourceTimeout,
		logger:   logger,
	}
}

// Search queries every source concurrently and merges the results into
// unified records.
func (s *Service) Search(ctx context.Context, query string) []UnifiedRecord {
	ordered := s.registry.Ordered()
	names := make([]string, len(ordered))
	lists := make([][]sources.Entry, len(ordered))

	var wg conc.WaitGroup
	for i, source := range ordered {
		i, source := i, source
		names[i] = source.Key()
		wg.Go(func() {
			fetchCtx, cancel := context.WithTimeout(ctx, s.timeout)
			defer cancel()

			entries, err := source.Search(fetchCtx, query)
			if err != nil {
				s.logger.Warn("source search failed", "source", source.Key(), "query", query, "error", err)
				return
			}
			lists[i] = entries
		})
	}
	wg.Wait()

	return Merge(names, lists)
}

// Episodes fetches the episode list of every source named in ids and merges
// them by episode number. Availability is reported for every registered
// source, queried or not.
func (s *Service) Episodes(ctx context.Context, ids map[string]string) []AggregatedEpisode {
	ordered := s.registry.Ordered()
	names := make([]string, len(ordered))
	lists := make([][]sources.Episode, len(ordered))

	var wg conc.WaitGroup
	for i, source := range ordered {
		i, source := i, source
		names[i] = source.Key()
		id, requested := ids[source.Key()]
		if !requested || id == "" {
			continue
		}
		wg.Go(func() {
			fetchCtx, cancel := context.WithTimeout(ctx, s.timeout)
			defer cancel()

			episodes, err := source.Episodes(fetchCtx, id)
			if err != nil {
				s.logger.Warn("source episodes failed", "source", source.Key(), "id", id, "error", err)
				return
			}
			lists[i] = episodes
		})
	}
	wg.Wait()

	return MergeEpisodes(names, lists)
}

// Chapters is Episodes for manga sources; sources that do not list chapters
// simply contribute nothing.
func (s *Service) Chapters(ctx context.Context, ids map[string]string) []AggregatedChapter {
	ordered := s.registry.Ordered()
	names := make([]string, len(ordered))
	lists := make([][]sources.Chapter, len(ordered))

	var wg conc.WaitGroup
	for i, source := range ordered {
		i, source := i, source
		names[i] = source.Key()
		lister, ok := source.(sources.ChapterLister)
		if !ok {
			continue
		}
		id, requested := ids[source.Key()]
		if !requested || id == "" {
			continue
		}
		wg.Go(func() {
			fetchCtx, cancel := context.WithTimeout(ctx, s.timeout)
			defer cancel()

			chapters, err := lister.Chapters(fetchCtx, id)
			if err != nil {
				s.logger.Warn("source chapters failed", "source", source.Key(), "id", id, "error", err)
				return
			}
			lists[i] = chapters
		})
	}
	wg.Wait()

	return MergeChapters(names, lists)
}

// Streams resolves the stream location of one episode per named source. The
// answer always covers every registered source; sources without a requested
// id, or whose lookup failed, report unavailable.
func (s *Service) Streams(ctx context.Context, ids map[string]string) map[string]StreamStatus {
	ordered := s.registry.Ordered()
	statuses := make([]StreamStatus, len(ordered))

	var wg conc.WaitGroup
	for i, source := range ordered {
		i, source := i, source
		episodeID, requested := ids[source.Key()]
		if !requested || episodeID == "" {
			continue
		}
		wg.Go(func() {
			fetchCtx, cancel := context.WithTimeout(ctx, s.timeout)
			defer cancel()

			stream, err := source.StreamURL(fetchCtx, episodeID)
			if err != nil || stream == nil || stream.URL == "" {
				if err != nil {
					s.logger.Warn("source stream failed", "source", source.Key(), "episodeId", episodeID, "error", err)
				}
				return
			}
			statuses[i] = StreamStatus{Available: true, StreamURL: stream.URL, Embed: stream.Embed}
		})
	}
	wg.Wait()

	result := make(map[string]StreamStatus, len(ordered))
	for i, source := range ordered {
		result[source.Key()] = statuses[i]
	}
	return result
}

// Seasons returns each source's episodes grouped by season label. The answer
// covers every registered source; sources without a queried id carry an empty
// map. The scraped sites expose flat episode lists, so everything lands under
// "S1"; each episode still carries the full per-source availability shape.
func (s *Service) Seasons(ctx context.Context, ids map[string]string) map[string]SeasonMap {
	ordered := s.registry.Ordered()
	names := make([]string, len(ordered))
	lists := make([][]sources.Episode, len(ordered))

	var wg conc.WaitGroup
	for i, source := range ordered {
		i, source := i, source
		names[i] = source.Key()
		id, requested := ids[source.Key()]
		if !requested || id == "" {
			continue
		}
		wg.Go(func() {
			fetchCtx, cancel := context.WithTimeout(ctx, s.timeout)
			defer cancel()

			episodes, err := source.Episodes(fetchCtx, id)
			if err != nil {
				s.logger.Warn("source episodes failed", "source", source.Key(), "id", id, "error", err)
				return
			}
			lists[i] = episodes
		})
	}
	wg.Wait()

	result := make(map[string]SeasonMap, len(ordered))
	for i, name := range names {
		if _, requested := ids[name]; !requested {
			result[name] = SeasonMap{}
			continue
		}
		seasonEpisodes := make([]AggregatedEpisode, 0, len(lists[i]))
		for _, episode := range lists[i] {
			availability := map[string]Availability{}
			for _, other := range names {
				availability[other] = Availability{Available: false}
			}
			availability[name] = Availability{Available: true, URL: episode.URL, ID: episode.ID}
			seasonEpisodes = append(seasonEpisodes, AggregatedEpisode{Number: episode.Number, Sources: availability})
		}
		result[name] = SeasonMap{"S1": seasonEpisodes}
	}
	return result
}
