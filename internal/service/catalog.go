package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/lcrowe/marquee/internal/catalog"
	"github.com/lcrowe/marquee/internal/domain"
	"github.com/lcrowe/marquee/internal/store"
)

// CatalogService implements domain.CatalogRepository with a local cache
// layer: successful pages are written through to the store keyed by
// request signature, and on a network failure the last cached page for
// the same signature is served so the browser keeps working offline.
type CatalogService struct {
	repo   domain.CatalogRepository
	store  *store.CatalogStore // nil disables caching
	logger *slog.Logger
}

// NewCatalogService creates a new catalog service
func NewCatalogService(repo domain.CatalogRepository, st *store.CatalogStore, logger *slog.Logger) *CatalogService {
	if logger == nil {
		logger = slog.Default()
	}
	return &CatalogService{repo: repo, store: st, logger: logger}
}

// FetchMedia returns one page of catalog results
func (s *CatalogService) FetchMedia(ctx context.Context, params map[string]string) (*domain.MediaPage, error) {
	signature := catalog.Params(params).Signature()

	page, err := s.repo.FetchMedia(ctx, params)
	if err != nil {
		if domain.IsNetworkError(err) && s.store != nil {
			if cached, savedAt, ok := s.store.GetPage(signature); ok {
				s.logger.Warn("backend unreachable, serving cached page",
					"signature", signature, "age", time.Since(savedAt))
				return cached, nil
			}
		}
		return nil, err
	}

	if s.store != nil {
		if err := s.store.SavePage(signature, page); err != nil {
			s.logger.Warn("failed to cache page", "error", err, "signature", signature)
		}
	}

	s.logger.Debug("fetched catalog page", "signature", signature, "items", len(page.Items))
	return page, nil
}

// Invalidate drops all cached pages, forcing fresh fetches
func (s *CatalogService) Invalidate() {
	if s.store != nil {
		s.store.InvalidatePages()
	}
	s.logger.Info("invalidated cached catalog pages")
}
