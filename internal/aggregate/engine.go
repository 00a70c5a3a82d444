package aggregate

import (
	"github.com/davide/animerge/internal/match"
	"github.com/davide/animerge/internal/sources"
)

// SourceRef points back at one source's copy of a merged work.
type SourceRef struct {
	Name string `json:"name"`
	ID   string `json:"id"`
	URL  string `json:"url,omitempty"`
}

type Images struct {
	Poster string `json:"poster,omitempty"`
	Cover  string `json:"cover,omitempty"`
}

// UnifiedRecord is one merged catalog entry: a single work exposed through
// every source known to carry it.
type UnifiedRecord struct {
	Title           string      `json:"title"`
	Description     string      `json:"description,omitempty"`
	Images          Images      `json:"images"`
	Sources         []SourceRef `json:"sources"`
	HasMultiServers bool        `json:"has_multi_servers"`
}

// Merge pairs and merges matching entries across per-source result lists into
// unified records. names[i] labels lists[i]; the first list is the anchor and
// the slice order is source priority.
//
// Matching is greedy first-fit: for each anchor entry the other sources are
// scanned in order and the first unused entry clearing the match bar is
// consumed. Entries left unmatched become singleton records, themselves
// checked against later-priority sources only. Within one call no entry is
// consumed twice; the used-index sets live on the stack, so concurrent calls
// never share state.
func Merge(names []string, lists [][]sources.Entry) []UnifiedRecord {
	if len(lists) == 0 {
		return []UnifiedRecord{}
	}

	used := make([]map[int]bool, len(lists))
	for i := range used {
		used[i] = map[int]bool{}
	}

	records := make([]UnifiedRecord, 0, len(lists[0]))
	for _, anchor := range lists[0] {
		record := newRecord(names[0], anchor)
		claimMatches(&record, anchor, 1, names, lists, used)
		records = append(records, record)
	}

	// Whatever the anchor did not claim still deserves a record of its own.
	for i := 1; i < len(lists); i++ {
		for j, entry := range lists[i] {
			if used[i][j] {
				continue
			}
			used[i][j] = true
			record := newRecord(names[i], entry)
			claimMatches(&record, entry, i+1, names, lists, used)
			records = append(records, record)
		}
	}

	for i := range records {
		records[i].HasMultiServers = len(records[i].Sources) > 1
	}
	return records
}

// claimMatches scans sources from index `from` onward and folds the first
// unused matching entry of each into the record.
func claimMatches(record *UnifiedRecord, anchor sources.Entry, from int, names []string, lists [][]sources.Entry, used []map[int]bool) {
	for i := from; i < len(lists); i++ {
		for j, candidate := range lists[i] {
			if used[i][j] {
				continue
			}
			if !match.ShouldMatch(anchor.ID, candidate.ID, anchor.Title, candidate.Title, anchor.AltTitle) {
				continue
			}
			used[i][j] = true
			mergeInto(record, names[i], candidate)
			break
		}
	}
}

func newRecord(name string, entry sources.Entry) UnifiedRecord {
	return UnifiedRecord{
		Title:       entry.Title,
		Description: entry.Description,
		Images: Images{
			Poster: entry.Poster,
			Cover:  entry.Cover,
		},
		Sources: []SourceRef{{Name: name, ID: entry.ID, URL: entry.URL}},
	}
}

// mergeInto attaches a matched entry; metadata fields keep the value from the
// first source in priority order that had one.
func mergeInto(record *UnifiedRecord, name string, entry sources.Entry) {
	record.Sources = append(record.Sources, SourceRef{Name: name, ID: entry.ID, URL: entry.URL})

	if record.Description == "" {
		record.Description = entry.Description
	}
	if record.Images.Poster == "" {
		record.Images.Poster = entry.Poster
	}
	if record.Images.Cover == "" {
		record.Images.Cover = entry.Cover
	}
}
