package api

import (
	"time"

	"github.com/lcrowe/marquee/internal/domain"
)

// mapMedia converts a wire media entry to a domain summary
func mapMedia(d mediaDTO) domain.MediaSummary {
	return domain.MediaSummary{
		ID:          d.ID,
		Title:       d.Title,
		ReleaseYear: d.ReleaseYear,
		Rating:      d.Rating,
		Duration:    time.Duration(d.DurationMin) * time.Minute,
		GenreIDs:    d.GenreIDs,
		TypeID:      d.TypeID,
		PosterURL:   d.PosterURL,
		TMDBID:      d.TMDBID,
	}
}

func mapMediaPage(resp mediaListResponse) *domain.MediaPage {
	items := make([]domain.MediaSummary, len(resp.Items))
	for i, d := range resp.Items {
		items[i] = mapMedia(d)
	}

	totalPages := resp.Pagination.TotalPages
	if totalPages < 1 {
		totalPages = 1
	}

	return &domain.MediaPage{
		Items:       items,
		CurrentPage: resp.Pagination.CurrentPage,
		TotalPages:  totalPages,
		TotalItems:  resp.Pagination.Total,
	}
}

func mapGenres(dtos []genreDTO) []domain.Genre {
	genres := make([]domain.Genre, len(dtos))
	for i, d := range dtos {
		genres[i] = domain.Genre{ID: d.ID, Name: d.Name}
	}
	return genres
}

func mapTypes(dtos []typeDTO) []domain.MediaType {
	types := make([]domain.MediaType, len(dtos))
	for i, d := range dtos {
		types[i] = domain.MediaType{ID: d.ID, Name: d.Name, Slug: d.Slug}
	}
	return types
}

func mapDirectors(dtos []personDTO) []domain.Director {
	directors := make([]domain.Director, len(dtos))
	for i, d := range dtos {
		directors[i] = domain.Director{ID: d.ID, Name: d.Name, MediaCount: d.MediaCount}
	}
	return directors
}

func mapProducers(dtos []personDTO) []domain.Producer {
	producers := make([]domain.Producer, len(dtos))
	for i, d := range dtos {
		producers[i] = domain.Producer{ID: d.ID, Name: d.Name, MediaCount: d.MediaCount}
	}
	return producers
}

func mapUser(d userDTO) domain.User {
	return domain.User{ID: d.ID, Name: d.Name, Email: d.Email, Role: d.Role}
}
