package catalog

import "github.com/lcrowe/marquee/internal/domain"

// SortField selects the backend sort column
type SortField string

const (
	SortReleaseDate SortField = "releaseDate"
	SortTitle       SortField = "title"
	SortRating      SortField = "rating"
	SortDuration    SortField = "duration"
)

// SortOrder selects ascending or descending sort
type SortOrder string

const (
	OrderAsc  SortOrder = "asc"
	OrderDesc SortOrder = "desc"
)

// Rating bounds for the full (identity) rating filter
const (
	RatingMin = 0.0
	RatingMax = 10.0
)

// RatingRange bounds the rating filter. The full range [0,10] is the
// identity filter and is omitted from request parameters.
type RatingRange struct {
	Min float64
	Max float64
}

// FullRatingRange returns the identity rating filter
func FullRatingRange() RatingRange {
	return RatingRange{Min: RatingMin, Max: RatingMax}
}

// IsFull reports whether the range matches the full default [0,10]
func (r RatingRange) IsFull() bool {
	return r.Min == RatingMin && r.Max == RatingMax
}

// Normalize clamps both bounds into [0,10] and swaps them if inverted,
// preserving the min <= max invariant
func (r RatingRange) Normalize() RatingRange {
	clamp := func(v float64) float64 {
		if v < RatingMin {
			return RatingMin
		}
		if v > RatingMax {
			return RatingMax
		}
		return v
	}
	min, max := clamp(r.Min), clamp(r.Max)
	if min > max {
		min, max = max, min
	}
	return RatingRange{Min: min, Max: max}
}

// FilterState holds every user-adjustable catalog filter. The zero-ish
// DefaultFilter matches everything.
type FilterState struct {
	Search    string
	TypeID    string   // explicit type filter; overrides the tab-derived type
	GenreID   string   // single exact-genre filter
	GenreIDs  []string // multi-genre OR-match filter; may coexist with GenreID
	Year      int      // 0 = no year filter
	Rating    RatingRange
	SortField SortField
	SortOrder SortOrder
}

// DefaultFilter returns the identity filter with default sort
func DefaultFilter() FilterState {
	return FilterState{
		Rating:    FullRatingRange(),
		SortField: SortReleaseDate,
		SortOrder: OrderDesc,
	}
}

// FilterUpdate is a partial filter mutation; nil fields are left unchanged.
type FilterUpdate struct {
	TypeID    *string
	GenreID   *string
	GenreIDs  *[]string
	Year      *int
	Rating    *RatingRange
	SortField *SortField
	SortOrder *SortOrder
}

// apply merges the update into f, normalizing the rating range
func (f FilterState) apply(u FilterUpdate) FilterState {
	if u.TypeID != nil {
		f.TypeID = *u.TypeID
	}
	if u.GenreID != nil {
		f.GenreID = *u.GenreID
	}
	if u.GenreIDs != nil {
		f.GenreIDs = append([]string(nil), (*u.GenreIDs)...)
	}
	if u.Year != nil {
		f.Year = *u.Year
	}
	if u.Rating != nil {
		f.Rating = u.Rating.Normalize()
	}
	if u.SortField != nil {
		f.SortField = *u.SortField
	}
	if u.SortOrder != nil {
		f.SortOrder = *u.SortOrder
	}
	return f
}

// Tab is one entry of the closed tab set shown above the catalog.
// A tab with a TypeID implies a type filter; TabAll implies none.
type Tab struct {
	Name   string
	TypeID string
}

// TabAll browses every content type
var TabAll = Tab{Name: "all"}

// TabForType builds the tab for a backend media type
func TabForType(mt domain.MediaType) Tab {
	return Tab{Name: mt.Slug, TypeID: mt.ID}
}

// PageState tracks pagination bookkeeping. TotalPages/TotalItems are
// derived from the most recent committed response.
type PageState struct {
	CurrentPage  int
	ItemsPerPage int
	TotalPages   int
	TotalItems   int
}

// NewPageState returns page 1 with the given fixed page size
func NewPageState(itemsPerPage int) PageState {
	if itemsPerPage < 1 {
		itemsPerPage = defaultItemsPerPage
	}
	return PageState{CurrentPage: 1, ItemsPerPage: itemsPerPage, TotalPages: 1}
}

// clampPage clamps n into [1, TotalPages]
func (p PageState) clampPage(n int) int {
	if n < 1 {
		return 1
	}
	if p.TotalPages >= 1 && n > p.TotalPages {
		return p.TotalPages
	}
	return n
}
