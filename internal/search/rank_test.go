package search

import (
	"testing"

	"github.com/lcrowe/marquee/internal/domain"
)

func sampleItems() []domain.MediaSummary {
	return []domain.MediaSummary{
		{ID: "1", Title: "Blade Runner"},
		{ID: "2", Title: "Blade Runner 2049"},
		{ID: "3", Title: "The Thing"},
		{ID: "4", Title: "Alien"},
	}
}

func TestRank(t *testing.T) {
	t.Run("empty query returns every item unranked", func(t *testing.T) {
		matches := Rank("", sampleItems())
		if len(matches) != 4 {
			t.Fatalf("len = %d, want 4", len(matches))
		}
		for _, m := range matches {
			if m.Score != 0 || m.MatchedIndexes != nil {
				t.Errorf("unranked match carries metadata: %+v", m)
			}
		}
	})

	t.Run("whitespace query behaves like empty", func(t *testing.T) {
		if got := len(Rank("   ", sampleItems())); got != 4 {
			t.Errorf("len = %d, want 4", got)
		}
	})

	t.Run("non-matching items are dropped", func(t *testing.T) {
		matches := Rank("blade", sampleItems())
		if len(matches) != 2 {
			t.Fatalf("len = %d, want 2: %+v", len(matches), matches)
		}
		for _, m := range matches {
			if m.Item.ID != "1" && m.Item.ID != "2" {
				t.Errorf("unexpected match: %+v", m.Item)
			}
		}
	})

	t.Run("matches are case-insensitive", func(t *testing.T) {
		matches := Rank("ALIEN", sampleItems())
		if len(matches) != 1 || matches[0].Item.Title != "Alien" {
			t.Errorf("matches = %+v", matches)
		}
	})

	t.Run("matched indexes cover the query characters", func(t *testing.T) {
		matches := Rank("thing", sampleItems())
		if len(matches) != 1 {
			t.Fatalf("matches = %+v", matches)
		}
		if len(matches[0].MatchedIndexes) != 5 {
			t.Errorf("MatchedIndexes = %v, want five positions", matches[0].MatchedIndexes)
		}
	})
}

func TestSuggestTitles(t *testing.T) {
	titles := []string{"Blade Runner", "Blade Runner 2049", "The Thing", "Alien"}

	t.Run("empty query suggests nothing", func(t *testing.T) {
		if got := SuggestTitles("", titles, 3); got != nil {
			t.Errorf("suggestions = %v, want nil", got)
		}
	})

	t.Run("close titles are suggested", func(t *testing.T) {
		got := SuggestTitles("blade", titles, 10)
		if len(got) == 0 {
			t.Fatal("expected suggestions for a close query")
		}
		if got[0] != "Blade Runner" {
			t.Errorf("best suggestion = %q, want Blade Runner", got[0])
		}
	})

	t.Run("limit truncates the suggestions", func(t *testing.T) {
		got := SuggestTitles("blade", titles, 1)
		if len(got) > 1 {
			t.Errorf("len = %d, want at most 1", len(got))
		}
	})
}
