package catalog

import (
	"reflect"
	"testing"
)

func TestBuildParamsDefaults(t *testing.T) {
	t.Run("default filter on a typed tab", func(t *testing.T) {
		got := BuildParams(DefaultFilter(), NewPageState(20), Tab{Name: "movies", TypeID: "T1"})

		want := Params{
			"page":  "1",
			"limit": "20",
			"type":  "T1",
			"sort":  "releaseDate",
			"order": "desc",
		}
		if !reflect.DeepEqual(got, want) {
			t.Errorf("params = %v, want %v", got, want)
		}
	})

	t.Run("all tab carries no type param", func(t *testing.T) {
		got := BuildParams(DefaultFilter(), NewPageState(20), TabAll)
		if _, ok := got["type"]; ok {
			t.Errorf("expected no type param, got %q", got["type"])
		}
	})

	t.Run("zero-value filter falls back to default sort", func(t *testing.T) {
		got := BuildParams(FilterState{Rating: FullRatingRange()}, NewPageState(20), TabAll)
		if got["sort"] != "releaseDate" || got["order"] != "desc" {
			t.Errorf("sort/order = %q/%q, want releaseDate/desc", got["sort"], got["order"])
		}
	})
}

func TestBuildParamsSearch(t *testing.T) {
	page := NewPageState(20)

	t.Run("whitespace-only search is omitted", func(t *testing.T) {
		f := DefaultFilter()
		f.Search = "   "
		got := BuildParams(f, page, TabAll)
		if _, ok := got["search"]; ok {
			t.Error("expected search param to be absent")
		}
	})

	t.Run("search is trimmed", func(t *testing.T) {
		f := DefaultFilter()
		f.Search = "  blade runner  "
		got := BuildParams(f, page, TabAll)
		if got["search"] != "blade runner" {
			t.Errorf("search = %q, want %q", got["search"], "blade runner")
		}
	})
}

func TestBuildParamsTypeOverride(t *testing.T) {
	f := DefaultFilter()
	f.TypeID = "T2"
	got := BuildParams(f, NewPageState(20), Tab{Name: "movies", TypeID: "T1"})
	if got["type"] != "T2" {
		t.Errorf("type = %q, want explicit filter type T2", got["type"])
	}
}

func TestBuildParamsGenres(t *testing.T) {
	t.Run("single and multi genre filters coexist", func(t *testing.T) {
		f := DefaultFilter()
		f.GenreID = "G1"
		f.GenreIDs = []string{"G2", "G3"}
		got := BuildParams(f, NewPageState(20), TabAll)
		if got["genre"] != "G1" {
			t.Errorf("genre = %q, want G1", got["genre"])
		}
		if got["genres"] != "G2,G3" {
			t.Errorf("genres = %q, want G2,G3", got["genres"])
		}
	})

	t.Run("empty multi-genre list is omitted", func(t *testing.T) {
		f := DefaultFilter()
		f.GenreIDs = []string{}
		got := BuildParams(f, NewPageState(20), TabAll)
		if _, ok := got["genres"]; ok {
			t.Error("expected genres param to be absent")
		}
	})
}

func TestBuildParamsRating(t *testing.T) {
	page := NewPageState(20)

	t.Run("full range is omitted", func(t *testing.T) {
		got := BuildParams(DefaultFilter(), page, TabAll)
		if _, ok := got["minRating"]; ok {
			t.Error("expected minRating to be absent for the full range")
		}
		if _, ok := got["maxRating"]; ok {
			t.Error("expected maxRating to be absent for the full range")
		}
	})

	t.Run("narrowed range renders without trailing zeros", func(t *testing.T) {
		f := DefaultFilter()
		f.Rating = RatingRange{Min: 7, Max: 10}
		got := BuildParams(f, page, TabAll)
		if got["minRating"] != "7" {
			t.Errorf("minRating = %q, want 7", got["minRating"])
		}
		if got["maxRating"] != "10" {
			t.Errorf("maxRating = %q, want 10", got["maxRating"])
		}
	})

	t.Run("fractional bounds keep their precision", func(t *testing.T) {
		f := DefaultFilter()
		f.Rating = RatingRange{Min: 6.5, Max: 8.5}
		got := BuildParams(f, page, TabAll)
		if got["minRating"] != "6.5" || got["maxRating"] != "8.5" {
			t.Errorf("rating bounds = %q/%q, want 6.5/8.5", got["minRating"], got["maxRating"])
		}
	})

	t.Run("out-of-range bounds clamp back to the full range", func(t *testing.T) {
		f := DefaultFilter()
		f.Rating = RatingRange{Min: -3, Max: 42}
		got := BuildParams(f, page, TabAll)
		if _, ok := got["minRating"]; ok {
			t.Error("clamped full range should omit rating params")
		}
	})

	t.Run("inverted bounds are swapped", func(t *testing.T) {
		f := DefaultFilter()
		f.Rating = RatingRange{Min: 9, Max: 4}
		got := BuildParams(f, page, TabAll)
		if got["minRating"] != "4" || got["maxRating"] != "9" {
			t.Errorf("rating bounds = %q/%q, want 4/9", got["minRating"], got["maxRating"])
		}
	})
}

func TestBuildParamsYear(t *testing.T) {
	f := DefaultFilter()
	f.Year = 1997
	got := BuildParams(f, NewPageState(20), TabAll)
	if got["year"] != "1997" {
		t.Errorf("year = %q, want 1997", got["year"])
	}

	f.Year = 0
	got = BuildParams(f, NewPageState(20), TabAll)
	if _, ok := got["year"]; ok {
		t.Error("expected year param to be absent when unset")
	}
}

func TestParamsDeterminism(t *testing.T) {
	f := DefaultFilter()
	f.Search = "dune"
	f.GenreIDs = []string{"G7", "G2"}
	f.Year = 2021
	page := PageState{CurrentPage: 3, ItemsPerPage: 20}

	a := BuildParams(f, page, Tab{Name: "movies", TypeID: "T1"})
	b := BuildParams(f, page, Tab{Name: "movies", TypeID: "T1"})

	if !reflect.DeepEqual(a, b) {
		t.Errorf("identical inputs built different params: %v vs %v", a, b)
	}
	if a.Signature() != b.Signature() {
		t.Errorf("identical params produced different signatures: %q vs %q", a.Signature(), b.Signature())
	}
}

func TestParamsSignatureDistinguishesInputs(t *testing.T) {
	base := DefaultFilter()
	searched := DefaultFilter()
	searched.Search = "alien"

	a := BuildParams(base, NewPageState(20), TabAll)
	b := BuildParams(searched, NewPageState(20), TabAll)
	if a.Signature() == b.Signature() {
		t.Error("different filters produced identical signatures")
	}
}
