package service

import (
	"context"
	"log/slog"
	"sync"

	"github.com/lcrowe/marquee/internal/domain"
	"github.com/lcrowe/marquee/internal/store"
)

// LookupService holds the catalog's reference tables (genres, types,
// directors, producers) and resolves IDs to display names. Tables are
// loaded once from the backend and cached in memory and in the store;
// the store copy gives a warm start when the backend is unreachable.
type LookupService struct {
	repo   domain.LookupRepository
	store  *store.CatalogStore // nil disables persistence
	logger *slog.Logger

	mu        sync.RWMutex
	genres    []domain.Genre
	types     []domain.MediaType
	directors []domain.Director
	producers []domain.Producer
	genreName map[string]string
	typeName  map[string]string
	loaded    bool
}

// NewLookupService creates a new lookup service
func NewLookupService(repo domain.LookupRepository, st *store.CatalogStore, logger *slog.Logger) *LookupService {
	if logger == nil {
		logger = slog.Default()
	}
	return &LookupService{
		repo:      repo,
		store:     st,
		logger:    logger,
		genreName: make(map[string]string),
		typeName:  make(map[string]string),
	}
}

// Load fetches all lookup tables from the backend, falling back to the
// store when a fetch fails. A partial load is not an error: missing
// tables just resolve nothing until the next Load.
func (s *LookupService) Load(ctx context.Context) error {
	genres, err := s.repo.FetchGenres(ctx)
	if err != nil {
		s.logger.Warn("failed to fetch genres, trying cache", "error", err)
		if cached, ok := s.cachedGenres(); ok {
			genres = cached
		} else {
			return err
		}
	} else if s.store != nil {
		s.store.SaveGenres(genres)
	}

	types, err := s.repo.FetchTypes(ctx)
	if err != nil {
		s.logger.Warn("failed to fetch types, trying cache", "error", err)
		if cached, ok := s.cachedTypes(); ok {
			types = cached
		}
	} else if s.store != nil {
		s.store.SaveTypes(types)
	}

	directors, err := s.repo.FetchDirectors(ctx)
	if err != nil {
		s.logger.Warn("failed to fetch directors", "error", err)
	} else if s.store != nil {
		s.store.SaveDirectors(directors)
	}

	producers, err := s.repo.FetchProducers(ctx)
	if err != nil {
		s.logger.Warn("failed to fetch producers", "error", err)
	} else if s.store != nil {
		s.store.SaveProducers(producers)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.genres = genres
	s.types = types
	if directors != nil {
		s.directors = directors
	}
	if producers != nil {
		s.producers = producers
	}

	s.genreName = make(map[string]string, len(genres))
	for _, g := range genres {
		s.genreName[g.ID] = g.Name
	}
	s.typeName = make(map[string]string, len(types))
	for _, t := range types {
		s.typeName[t.ID] = t.Name
	}
	s.loaded = true

	s.logger.Info("loaded lookup tables", "genres", len(genres), "types", len(types))
	return nil
}

func (s *LookupService) cachedGenres() ([]domain.Genre, bool) {
	if s.store == nil {
		return nil, false
	}
	return s.store.GetGenres()
}

func (s *LookupService) cachedTypes() ([]domain.MediaType, bool) {
	if s.store == nil {
		return nil, false
	}
	return s.store.GetTypes()
}

// ResolveGenreName resolves a genre ID to its display name.
// Implements domain.GenreResolver.
func (s *LookupService) ResolveGenreName(genreID string) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	name, ok := s.genreName[genreID]
	return name, ok
}

// ResolveTypeName resolves a media type ID to its display name
func (s *LookupService) ResolveTypeName(typeID string) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	name, ok := s.typeName[typeID]
	return name, ok
}

// Genres returns the loaded genre table
func (s *LookupService) Genres() []domain.Genre {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.genres
}

// Types returns the loaded media type table
func (s *LookupService) Types() []domain.MediaType {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.types
}

// Loaded reports whether Load has completed at least once
func (s *LookupService) Loaded() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loaded
}
