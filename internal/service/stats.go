package service

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/lcrowe/marquee/internal/domain"
	"github.com/lcrowe/marquee/internal/store"
)

// ErrAllStatsFailed indicates no statistic category could be fetched
var ErrAllStatsFailed = errors.New("all statistic categories failed")

// StatsService reconciles the per-category statistic endpoints into one
// dashboard summary. Categories are fetched concurrently and a failed
// category degrades to zero-valued stats instead of failing the summary;
// only when every category fails does Summary return an error.
type StatsService struct {
	repo   domain.StatsRepository
	store  *store.CatalogStore // nil disables persistence
	logger *slog.Logger
}

// NewStatsService creates a new stats service
func NewStatsService(repo domain.StatsRepository, st *store.CatalogStore, logger *slog.Logger) *StatsService {
	if logger == nil {
		logger = slog.Default()
	}
	return &StatsService{repo: repo, store: st, logger: logger}
}

// Summary fetches every category concurrently, waits for all to settle,
// and reconciles the results
func (s *StatsService) Summary(ctx context.Context) (*domain.StatsSummary, error) {
	categories := domain.Categories()

	type result struct {
		cat   domain.Category
		stats *domain.CategoryStats
		err   error
	}

	results := make([]result, len(categories))

	var wg sync.WaitGroup
	for i, cat := range categories {
		wg.Add(1)
		go func(i int, cat domain.Category) {
			defer wg.Done()
			stats, err := s.repo.FetchCategoryStats(ctx, cat)
			results[i] = result{cat: cat, stats: stats, err: err}
		}(i, cat)
	}
	wg.Wait()

	summary := &domain.StatsSummary{}
	var firstErr error
	failed := 0

	for _, r := range results {
		if r.err != nil {
			s.logger.Warn("category stats fetch failed", "category", r.cat, "error", r.err)
			summary.Failed = append(summary.Failed, r.cat)
			failed++
			if firstErr == nil {
				firstErr = r.err
			}
			continue // zero-valued stats for this category
		}
		s.assign(summary, r.cat, *r.stats)
	}

	if failed == len(categories) {
		return nil, errors.Join(ErrAllStatsFailed, firstErr)
	}

	if s.store != nil {
		if err := s.store.SaveStats(summary); err != nil {
			s.logger.Warn("failed to cache stats summary", "error", err)
		}
	}

	return summary, nil
}

// CachedSummary returns the last persisted summary and its save time, if any
func (s *StatsService) CachedSummary() (*domain.StatsSummary, time.Time, bool) {
	if s.store == nil {
		return nil, time.Time{}, false
	}
	return s.store.GetStats()
}

func (s *StatsService) assign(summary *domain.StatsSummary, cat domain.Category, stats domain.CategoryStats) {
	switch cat {
	case domain.CategoryGenres:
		summary.Genres = stats
	case domain.CategoryDirectors:
		summary.Directors = stats
	case domain.CategoryProducers:
		summary.Producers = stats
	case domain.CategoryTypes:
		summary.Types = stats
	case domain.CategoryMedia:
		summary.Media = stats
	}
}
