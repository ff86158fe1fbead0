package service

import (
	"sort"

	"github.com/lcrowe/marquee/internal/domain"
)

// TopGenreCount is how many genres the dashboard distribution shows
const TopGenreCount = 5

// TopGenres derives a genre distribution from a media sample. Every
// genre reference of every item is counted under its resolved display
// name; references the resolver does not know are skipped. The result is
// sorted descending by count (ties keep first-encountered order) and
// truncated to TopGenreCount entries. Total function: never fails.
func TopGenres(items []domain.MediaSummary, resolver domain.GenreResolver) []domain.GenreCount {
	counts := make(map[string]int)
	var order []string // first-encountered order for deterministic ties

	for _, item := range items {
		for _, genreID := range item.GenreIDs {
			name, ok := resolver.ResolveGenreName(genreID)
			if !ok {
				continue
			}
			if _, seen := counts[name]; !seen {
				order = append(order, name)
			}
			counts[name]++
		}
	}

	distribution := make([]domain.GenreCount, 0, len(order))
	for _, name := range order {
		distribution = append(distribution, domain.GenreCount{Name: name, Count: counts[name]})
	}

	sort.SliceStable(distribution, func(i, j int) bool {
		return distribution[i].Count > distribution[j].Count
	})

	if len(distribution) > TopGenreCount {
		distribution = distribution[:TopGenreCount]
	}
	return distribution
}
