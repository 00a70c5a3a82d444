package aggregate

import (
	"sort"

	"github.com/davide/animerge/internal/sources"
)

// Availability records whether one source can serve a numbered entry.
type Availability struct {
	Available bool   `json:"available"`
	URL       string `json:"url,omitempty"`
	ID        string `json:"id,omitempty"`
}

// AggregatedEpisode is one episode number with per-source availability.
type AggregatedEpisode struct {
	Number  float64                 `json:"episode_number"`
	Sources map[string]Availability `json:"sources"`
}

// AggregatedChapter mirrors AggregatedEpisode for manga chapters.
type AggregatedChapter struct {
	Number  float64                 `json:"chapter_number"`
	Sources map[string]Availability `json:"sources"`
}

type numbered struct {
	number float64
	id     string
	url    string
}

// MergeEpisodes folds per-source episode lists into one list keyed by
// episode number. Sources are visited in priority order; within one source's
// own list the first entry seen for a number wins. Every output episode
// carries an availability record for every name, with absent sources marked
// unavailable. The result is sorted by number.
func MergeEpisodes(names []string, lists [][]sources.Episode) []AggregatedEpisode {
	converted := make([][]numbered, len(lists))
	for i, list := range lists {
		converted[i] = make([]numbered, 0, len(list))
		for _, episode := range list {
			converted[i] = append(converted[i], numbered{number: episode.Number, id: episode.ID, url: episode.URL})
		}
	}

	merged := mergeNumbered(names, converted)
	episodes := make([]AggregatedEpisode, 0, len(merged))
	for _, entry := range merged {
		episodes = append(episodes, AggregatedEpisode{Number: entry.number, Sources: entry.sources})
	}
	return episodes
}

// MergeChapters is MergeEpisodes for chapter lists.
func MergeChapters(names []string, lists [][]sources.Chapter) []AggregatedChapter {
	converted := make([][]numbered, len(lists))
	for i, list := range lists {
		converted[i] = make([]numbered, 0, len(list))
		for _, chapter := range list {
			converted[i] = append(converted[i], numbered{number: chapter.Number, id: chapter.ID, url: chapter.URL})
		}
	}

	merged := mergeNumbered(names, converted)
	chapters := make([]AggregatedChapter, 0, len(merged))
	for _, entry := range merged {
		chapters = append(chapters, AggregatedChapter{Number: entry.number, Sources: entry.sources})
	}
	return chapters
}

type mergedNumber struct {
	number  float64
	sources map[string]Availability
}

func mergeNumbered(names []string, lists [][]numbered) []mergedNumber {
	byNumber := map[float64]*mergedNumber{}

	for i, list := range lists {
		name := names[i]
		for _, entry := range list {
			record, exists := byNumber[entry.number]
			if !exists {
				record = &mergedNumber{number: entry.number, sources: map[string]Availability{}}
				byNumber[entry.number] = record
			}
			if _, seen := record.sources[name]; seen {
				// Duplicate number within one source's list: first wins.
				continue
			}
			record.sources[name] = Availability{Available: true, URL: entry.url, ID: entry.id}
		}
	}

	merged := make([]mergedNumber, 0, len(byNumber))
	for _, record := range byNumber {
		for _, name := range names {
			if _, present := record.sources[name]; !present {
				record.sources[name] = Availability{Available: false}
			}
		}
		merged = append(merged, *record)
	}

	sort.Slice(merged, func(i, j int) bool {
		return merged[i].number < merged[j].number
	})
	return merged
}
