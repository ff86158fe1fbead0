package catalog

import (
	"net/url"
	"strconv"
	"strings"
)

// Params is the normalized request-parameter set for a catalog fetch.
type Params map[string]string

// Signature returns a canonical encoding of the params, usable as a
// cache key. Identical params always produce identical signatures.
func (p Params) Signature() string {
	v := url.Values{}
	for k, val := range p {
		v.Set(k, val)
	}
	return v.Encode() // keys sorted by Encode
}

// BuildParams translates filter, page, and tab state into request
// parameters. Pure and deterministic: no side effects, identical inputs
// yield an identical Params map.
//
// Inclusion rules:
//   - page and limit are always present
//   - search only when non-empty after trimming
//   - type from the tab mapping, overridden by an explicit filter TypeID
//   - genre (single exact match) and genres (comma-joined OR-match) are
//     independent backend filters and may coexist
//   - minRating/maxRating only when the range differs from the full [0,10]
//   - sort and order always present, defaulted when unset
func BuildParams(filter FilterState, page PageState, tab Tab) Params {
	p := Params{
		"page":  strconv.Itoa(page.CurrentPage),
		"limit": strconv.Itoa(page.ItemsPerPage),
	}

	if search := strings.TrimSpace(filter.Search); search != "" {
		p["search"] = search
	}

	typeID := tab.TypeID
	if filter.TypeID != "" {
		typeID = filter.TypeID
	}
	if typeID != "" {
		p["type"] = typeID
	}

	if filter.GenreID != "" {
		p["genre"] = filter.GenreID
	}
	if len(filter.GenreIDs) > 0 {
		p["genres"] = strings.Join(filter.GenreIDs, ",")
	}

	if filter.Year > 0 {
		p["year"] = strconv.Itoa(filter.Year)
	}

	if rating := filter.Rating.Normalize(); !rating.IsFull() {
		p["minRating"] = formatRating(rating.Min)
		p["maxRating"] = formatRating(rating.Max)
	}

	sortField := filter.SortField
	if sortField == "" {
		sortField = SortReleaseDate
	}
	sortOrder := filter.SortOrder
	if sortOrder == "" {
		sortOrder = OrderDesc
	}
	p["sort"] = string(sortField)
	p["order"] = string(sortOrder)

	return p
}

// formatRating renders a rating bound without trailing zeros ("7", "7.5")
func formatRating(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
