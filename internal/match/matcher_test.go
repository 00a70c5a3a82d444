package match

import "testing"

func TestShouldMatchIdentifierAuthoritative(t *testing.T) {
	// Identical identifier decomposition needs no title at all.
	if !ShouldMatch("demon-slayer-1", "demon-slayer-1", "", "", "") {
		t.Fatalf("expected identical identifiers to match without titles")
	}
	if !ShouldMatch("naruto-shippuden-2-ita", "naruto-shippuden-2-ita", "", "", "") {
		t.Fatalf("expected identical season and language to match")
	}
}

func TestShouldMatchFranchiseNeedsTitleConfirmation(t *testing.T) {
	// Same base, differing language tag: titles must confirm at the lower bar.
	if got := ShouldMatch("naruto-shippuden-2-ita", "naruto-shippuden-2", "", "", ""); got {
		t.Fatalf("expected no match without title confirmation")
	}
	if !ShouldMatch("naruto-shippuden-2-ita", "naruto-shippuden-2", "Naruto Shippuden (ITA)", "Naruto Shippuden", "") {
		t.Fatalf("expected franchise match with confirming titles")
	}
	// Differing seasons with confirming similar titles.
	if !ShouldMatch("overlord-2", "overlord-3", "Overlord", "Overlord", "") {
		t.Fatalf("expected same-franchise match on identical titles")
	}
}

func TestShouldMatchTitleOnly(t *testing.T) {
	if !ShouldMatch("naruto-shippuden.x1", "ns-stream-442", "Naruto Shippuden", "Naruto Shippuden", "") {
		t.Fatalf("expected title-only match for identical titles")
	}
	if ShouldMatch("one-piece", "one-punch-man", "One Piece", "One Punch Man", "") {
		t.Fatalf("expected unrelated titles not to match")
	}
}

func TestShouldMatchVetoPrecedence(t *testing.T) {
	// Subtitle mismatch on raw titles vetoes despite high raw similarity.
	if ShouldMatch("blue-lock", "blue-lock-episode-nagi", "Blue Lock", "Blue Lock: Episode Nagi", "") {
		t.Fatalf("expected subtitle difference to veto the match")
	}
	// Language-tag asymmetry on non-parenthesized markers vetoes.
	if ShouldMatch("naruto-a", "naruto-b", "Naruto Sub ITA", "Naruto", "") {
		t.Fatalf("expected language asymmetry to veto the match")
	}
}

func TestShouldMatchAltTitleRetry(t *testing.T) {
	// Primary title fails, the anchor's alternate (native) title matches.
	if !ShouldMatch("solo-leveling", "ore-dake-level-up-na-ken", "Solo Leveling", "Ore dake Level Up na Ken", "Ore dake Level Up na Ken") {
		t.Fatalf("expected alternate title to rescue the match")
	}
	if ShouldMatch("solo-leveling", "ore-dake-level-up-na-ken", "Solo Leveling", "Ore dake Level Up na Ken", "") {
		t.Fatalf("expected no match without an alternate title")
	}
}

func TestShouldMatchNoTitlesAvailable(t *testing.T) {
	if ShouldMatch("some-show", "another-show", "", "", "") {
		t.Fatalf("expected no match when no titles are available")
	}
}
