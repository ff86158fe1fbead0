package domain

import "context"

// CatalogRepository provides paged, filtered access to the media catalog
type CatalogRepository interface {
	// FetchMedia returns one page of catalog results for the given
	// request parameters (page, limit, search, type, genre filters, sort)
	FetchMedia(ctx context.Context, params map[string]string) (*MediaPage, error)
}

// LookupRepository provides the catalog's reference tables
type LookupRepository interface {
	FetchGenres(ctx context.Context) ([]Genre, error)
	FetchTypes(ctx context.Context) ([]MediaType, error)
	FetchDirectors(ctx context.Context) ([]Director, error)
	FetchProducers(ctx context.Context) ([]Producer, error)
}

// StatsRepository provides per-category statistics for the dashboard
type StatsRepository interface {
	FetchCategoryStats(ctx context.Context, cat Category) (*CategoryStats, error)
}

// AuthRepository provides backend authentication
type AuthRepository interface {
	// Login exchanges credentials for a session token
	Login(ctx context.Context, email, password string) (*Session, error)

	// CurrentUser returns the user owning the given token
	CurrentUser(ctx context.Context, token string) (*User, error)
}

// GenreResolver resolves genre IDs to display names.
// Returns ok=false for unknown IDs; callers skip those references.
type GenreResolver interface {
	ResolveGenreName(genreID string) (string, bool)
}
