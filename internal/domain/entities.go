package domain

import (
	"fmt"
	"time"
)

// MediaSummary is a single catalog entry as returned by the backend's
// listing endpoint. Genre references are IDs only; display names are
// resolved through a GenreResolver.
type MediaSummary struct {
	ID          string        `json:"id"`
	Title       string        `json:"title"`
	ReleaseYear int           `json:"releaseYear"`
	Rating      float64       `json:"rating"` // 0-10 audience rating
	Duration    time.Duration `json:"duration"`
	GenreIDs    []string      `json:"genreIds"`
	TypeID      string        `json:"typeId"`
	PosterURL   string        `json:"posterUrl"`
	TMDBID      int           `json:"tmdbId"` // 0 when the backend has no external ref
}

// FormattedDuration returns the duration in a human-readable format
func (m MediaSummary) FormattedDuration() string {
	h := int(m.Duration.Hours())
	mins := int(m.Duration.Minutes()) % 60
	if h > 0 {
		return fmt.Sprintf("%dh %dm", h, mins)
	}
	return fmt.Sprintf("%dm", mins)
}

// FormattedRating renders the rating as e.g. "7.4" or "-" when unrated
func (m MediaSummary) FormattedRating() string {
	if m.Rating <= 0 {
		return "-"
	}
	return fmt.Sprintf("%.1f", m.Rating)
}

// MediaPage is one page of catalog results with pagination metadata.
type MediaPage struct {
	Items       []MediaSummary `json:"items"`
	CurrentPage int            `json:"currentPage"`
	TotalPages  int            `json:"totalPages"`
	TotalItems  int            `json:"totalItems"`
}

// Genre is a catalog genre lookup entry
type Genre struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// MediaType is a content type lookup entry ("movie", "series", ...)
type MediaType struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

// Director is a director lookup entry
type Director struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	MediaCount int    `json:"mediaCount"`
}

// Producer is a producer lookup entry
type Producer struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	MediaCount int    `json:"mediaCount"`
}

// GenreCount is one entry of a genre distribution, keyed by display name.
type GenreCount struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// Category identifies one of the backend's statistic endpoints
type Category string

const (
	CategoryGenres    Category = "genres"
	CategoryDirectors Category = "directors"
	CategoryProducers Category = "producers"
	CategoryTypes     Category = "types"
	CategoryMedia     Category = "media"
)

// Categories lists every statistic category in display order
func Categories() []Category {
	return []Category{CategoryGenres, CategoryDirectors, CategoryProducers, CategoryTypes, CategoryMedia}
}

// CategoryStats holds per-category counters from the backend.
// The zero value is the fallback shape when a category fetch fails.
type CategoryStats struct {
	Total          int `json:"total"`
	Active         int `json:"active"`
	AddedThisMonth int `json:"addedThisMonth"`
}

// StatsSummary is the reconciled dashboard view model. Categories whose
// fetch failed carry zero-valued stats and appear in Failed.
type StatsSummary struct {
	Genres    CategoryStats
	Directors CategoryStats
	Producers CategoryStats
	Types     CategoryStats
	Media     CategoryStats

	Failed []Category
}

// ByCategory returns the stats for a single category
func (s StatsSummary) ByCategory(cat Category) CategoryStats {
	switch cat {
	case CategoryGenres:
		return s.Genres
	case CategoryDirectors:
		return s.Directors
	case CategoryProducers:
		return s.Producers
	case CategoryTypes:
		return s.Types
	case CategoryMedia:
		return s.Media
	default:
		return CategoryStats{}
	}
}

// User is an authenticated backend user
type User struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

// IsAdmin reports whether the user may see admin-only views
func (u User) IsAdmin() bool {
	return u.Role == "admin"
}

// Session is the result of a successful login
type Session struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}
