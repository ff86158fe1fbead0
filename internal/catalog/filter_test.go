package catalog

import (
	"testing"

	"github.com/lcrowe/marquee/internal/domain"
)

func TestRatingRangeNormalize(t *testing.T) {
	cases := []struct {
		name string
		in   RatingRange
		want RatingRange
	}{
		{"already valid", RatingRange{2, 8}, RatingRange{2, 8}},
		{"clamps below zero", RatingRange{-5, 8}, RatingRange{0, 8}},
		{"clamps above ten", RatingRange{2, 15}, RatingRange{2, 10}},
		{"swaps inverted bounds", RatingRange{9, 3}, RatingRange{3, 9}},
		{"clamps then swaps", RatingRange{12, -1}, RatingRange{0, 10}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.in.Normalize(); got != tc.want {
				t.Errorf("Normalize(%v) = %v, want %v", tc.in, got, tc.want)
			}
		})
	}
}

func TestRatingRangeIsFull(t *testing.T) {
	if !FullRatingRange().IsFull() {
		t.Error("FullRatingRange should report full")
	}
	if (RatingRange{Min: 1, Max: 10}).IsFull() {
		t.Error("narrowed range should not report full")
	}
}

func TestFilterApply(t *testing.T) {
	t.Run("nil fields leave state unchanged", func(t *testing.T) {
		f := DefaultFilter()
		f.Search = "dune"
		f.Year = 2021

		got := f.apply(FilterUpdate{})
		if got.Search != "dune" || got.Year != 2021 {
			t.Errorf("empty update mutated state: %+v", got)
		}
	})

	t.Run("set fields are merged", func(t *testing.T) {
		typeID := "T2"
		year := 1984
		sort := SortTitle
		got := DefaultFilter().apply(FilterUpdate{TypeID: &typeID, Year: &year, SortField: &sort})

		if got.TypeID != "T2" || got.Year != 1984 || got.SortField != SortTitle {
			t.Errorf("update not applied: %+v", got)
		}
		if got.SortOrder != OrderDesc {
			t.Errorf("untouched sort order changed: %q", got.SortOrder)
		}
	})

	t.Run("rating updates are normalized", func(t *testing.T) {
		rating := RatingRange{Min: 9, Max: 3}
		got := DefaultFilter().apply(FilterUpdate{Rating: &rating})
		if got.Rating != (RatingRange{Min: 3, Max: 9}) {
			t.Errorf("rating = %v, want normalized {3 9}", got.Rating)
		}
	})

	t.Run("genre list is copied", func(t *testing.T) {
		genres := []string{"G1", "G2"}
		got := DefaultFilter().apply(FilterUpdate{GenreIDs: &genres})
		genres[0] = "mutated"
		if got.GenreIDs[0] != "G1" {
			t.Error("applied filter shares backing array with caller slice")
		}
	})
}

func TestTabForType(t *testing.T) {
	tab := TabForType(domain.MediaType{ID: "T1", Name: "Movies", Slug: "movies"})
	if tab.Name != "movies" || tab.TypeID != "T1" {
		t.Errorf("tab = %+v", tab)
	}
	if TabAll.TypeID != "" {
		t.Errorf("TabAll should carry no type, got %q", TabAll.TypeID)
	}
}

func TestPageState(t *testing.T) {
	t.Run("defaults page size when invalid", func(t *testing.T) {
		p := NewPageState(0)
		if p.ItemsPerPage != defaultItemsPerPage {
			t.Errorf("ItemsPerPage = %d, want %d", p.ItemsPerPage, defaultItemsPerPage)
		}
		if p.CurrentPage != 1 || p.TotalPages != 1 {
			t.Errorf("unexpected initial state: %+v", p)
		}
	})

	t.Run("clamps into the valid range", func(t *testing.T) {
		p := PageState{CurrentPage: 2, ItemsPerPage: 20, TotalPages: 5}
		if got := p.clampPage(0); got != 1 {
			t.Errorf("clampPage(0) = %d, want 1", got)
		}
		if got := p.clampPage(-3); got != 1 {
			t.Errorf("clampPage(-3) = %d, want 1", got)
		}
		if got := p.clampPage(99); got != 5 {
			t.Errorf("clampPage(99) = %d, want 5", got)
		}
		if got := p.clampPage(3); got != 3 {
			t.Errorf("clampPage(3) = %d, want 3", got)
		}
	})
}
