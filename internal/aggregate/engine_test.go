package aggregate

import (
	"testing"

	"github.com/davide/animerge/internal/sources"
)

func TestMergePairsMatchingEntriesAcrossSources(t *testing.T) {
	names := []string{"animeworld", "animesaturn"}
	lists := [][]sources.Entry{
		{{Title: "Naruto Shippuden", ID: "naruto-shippuden-1", URL: "https://aw/naruto"}},
		{{Title: "Naruto Shippuden", ID: "naruto-shippuden-1", URL: "https://as/naruto"}},
	}

	records := Merge(names, lists)
	if len(records) != 1 {
		t.Fatalf("expected exactly 1 unified record, got %d", len(records))
	}

	record := records[0]
	if len(record.Sources) != 2 {
		t.Fatalf("expected 2 sources, got %d", len(record.Sources))
	}
	if !record.HasMultiServers {
		t.Fatalf("expected has_multi_servers true")
	}
	if record.Sources[0].Name != "animeworld" || record.Sources[1].Name != "animesaturn" {
		t.Fatalf("expected sources in priority order, got %+v", record.Sources)
	}
}

func TestMergeKeepsUnrelatedEntriesApart(t *testing.T) {
	names := []string{"animeworld", "animesaturn"}
	lists := [][]sources.Entry{
		{{Title: "One Piece", ID: "one-piece"}},
		{{Title: "One Punch Man", ID: "one-punch-man"}},
	}

	records := Merge(names, lists)
	if len(records) != 2 {
		t.Fatalf("expected 2 singleton records, got %d", len(records))
	}
	for _, record := range records {
		if record.HasMultiServers {
			t.Fatalf("expected singleton record, got %+v", record)
		}
	}
}

func TestMergeLanguageAsymmetryNeverMerges(t *testing.T) {
	names := []string{"animeworld", "animesaturn"}
	lists := [][]sources.Entry{
		{{Title: "Tokyo Revengers Sub ITA", ID: "tokyo-revengers-x"}},
		{{Title: "Tokyo Revengers", ID: "tokyo-revengers-y"}},
	}

	records := Merge(names, lists)
	if len(records) != 2 {
		t.Fatalf("expected language-tagged entry to stay separate, got %d records", len(records))
	}
}

func TestMergeConsumesEachEntryAtMostOnce(t *testing.T) {
	names := []string{"animeworld", "animesaturn"}
	lists := [][]sources.Entry{
		{
			{Title: "Naruto", ID: "naruto-aw-1"},
			{Title: "Naruto", ID: "naruto-aw-2"},
		},
		{
			{Title: "Naruto", ID: "naruto-as-1"},
		},
	}

	records := Merge(names, lists)

	seen := map[string]int{}
	for _, record := range records {
		for _, ref := range record.Sources {
			if ref.Name == "animesaturn" {
				seen[ref.ID]++
			}
		}
	}
	for id, count := range seen {
		if count > 1 {
			t.Fatalf("entry %q consumed %d times", id, count)
		}
	}

	// Both anchor entries must still be present.
	if len(records) != 2 {
		t.Fatalf("expected 2 records, got %d", len(records))
	}
}

func TestMergeFirstFitIsOrderDependent(t *testing.T) {
	names := []string{"animeworld", "animesaturn"}
	lists := [][]sources.Entry{
		{{Title: "Bleach", ID: "bleach-1"}},
		{
			{Title: "Bleach", ID: "bleach-first"},
			{Title: "Bleach", ID: "bleach-second"},
		},
	}

	records := Merge(names, lists)
	if len(records) != 2 {
		t.Fatalf("expected merged record plus leftover singleton, got %d", len(records))
	}
	if records[0].Sources[1].ID != "bleach-first" {
		t.Fatalf("expected first-fit to take the earliest candidate, got %q", records[0].Sources[1].ID)
	}
	if records[1].Sources[0].ID != "bleach-second" {
		t.Fatalf("expected leftover singleton for the later candidate, got %+v", records[1])
	}
}

func TestMergeMetadataPrefersPriorityOrder(t *testing.T) {
	names := []string{"animeworld", "animesaturn"}
	lists := [][]sources.Entry{
		{{Title: "Naruto", ID: "naruto-1", Description: "anchor description"}},
		{{Title: "Naruto", ID: "naruto-1", Poster: "https://as/poster.jpg", Description: "other description"}},
	}

	records := Merge(names, lists)
	if len(records) != 1 {
		t.Fatalf("expected 1 record, got %d", len(records))
	}
	if records[0].Description != "anchor description" {
		t.Fatalf("expected anchor description kept, got %q", records[0].Description)
	}
	if records[0].Images.Poster != "https://as/poster.jpg" {
		t.Fatalf("expected poster filled from matched source, got %q", records[0].Images.Poster)
	}
}

func TestMergeLeftoversMatchLaterSources(t *testing.T) {
	names := []string{"animeworld", "animesaturn", "animeunity"}
	lists := [][]sources.Entry{
		{}, // anchor found nothing
		{{Title: "Vinland Saga", ID: "vinland-saga-1"}},
		{{Title: "Vinland Saga", ID: "vinland-saga-1"}},
	}

	records := Merge(names, lists)
	if len(records) != 1 {
		t.Fatalf("expected leftovers from later sources to merge, got %d records", len(records))
	}
	if len(records[0].Sources) != 2 || !records[0].HasMultiServers {
		t.Fatalf("expected 2-source record, got %+v", records[0])
	}
}

func TestMergeEmptyInput(t *testing.T) {
	if got := Merge(nil, nil); len(got) != 0 {
		t.Fatalf("expected empty result for no lists, got %d", len(got))
	}
	if got := Merge([]string{"animeworld"}, [][]sources.Entry{{}}); len(got) != 0 {
		t.Fatalf("expected empty result for empty anchor, got %d", len(got))
	}
}
