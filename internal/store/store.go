package store

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/lcrowe/marquee/internal/domain"
	bolt "go.etcd.io/bbolt"
)

// Bucket names
var (
	bucketLookups = []byte("lookups")
	bucketPages   = []byte("pages")
	bucketStats   = []byte("stats")
)

// CatalogStore is the local cache for backend data: lookup tables
// (genres, types, directors, producers), recently fetched catalog pages
// keyed by request signature, and the last dashboard summary. Backed by
// BoltDB with an in-memory layer promoted on access.
type CatalogStore struct {
	db *bolt.DB
	mu sync.RWMutex // Protects memory cache

	cache map[string][]byte
}

// NewCatalogStore opens the cache under baseCacheDir, namespaced by a
// hash of the backend URL. An empty baseCacheDir yields a memory-only store.
func NewCatalogStore(baseCacheDir, backendURL string) (*CatalogStore, error) {
	if baseCacheDir == "" {
		return &CatalogStore{cache: make(map[string][]byte)}, nil
	}

	dir := baseCacheDir
	if backendURL != "" {
		dir = filepath.Join(baseCacheDir, hashBackendURL(backendURL))
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}

	dbPath := filepath.Join(dir, "marquee.db")
	db, err := bolt.Open(dbPath, 0600, &bolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("failed to open bolt db: %w", err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		for _, bucket := range [][]byte{bucketLookups, bucketPages, bucketStats} {
			if _, err := tx.CreateBucketIfNotExists(bucket); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		db.Close()
		return nil, err
	}

	return &CatalogStore{db: db, cache: make(map[string][]byte)}, nil
}

func hashBackendURL(backendURL string) string {
	normalized := strings.TrimRight(strings.ToLower(backendURL), "/")
	hash := sha256.Sum256([]byte(normalized))
	return hex.EncodeToString(hash[:6])
}

func (s *CatalogStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// === Generic helpers ===

func (s *CatalogStore) get(bucket []byte, key string, dest interface{}) bool {
	cacheKey := string(bucket) + ":" + key

	// Check memory cache first
	s.mu.RLock()
	if data, ok := s.cache[cacheKey]; ok {
		s.mu.RUnlock()
		return json.Unmarshal(data, dest) == nil
	}
	s.mu.RUnlock()

	if s.db == nil {
		return false
	}

	var data []byte
	s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucket)
		if b == nil {
			return nil
		}
		if v := b.Get([]byte(key)); v != nil {
			data = make([]byte, len(v))
			copy(data, v)
		}
		return nil
	})

	if data == nil {
		return false
	}

	// Promote to memory cache
	s.mu.Lock()
	s.cache[cacheKey] = data
	s.mu.Unlock()

	return json.Unmarshal(data, dest) == nil
}

func (s *CatalogStore) set(bucket []byte, key string, value interface{}) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}

	cacheKey := string(bucket) + ":" + key

	s.mu.Lock()
	s.cache[cacheKey] = data
	s.mu.Unlock()

	if s.db == nil {
		return nil // Memory-only mode
	}

	return s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucket)
		return b.Put([]byte(key), data)
	})
}

func (s *CatalogStore) deleteAll(bucket []byte) {
	s.mu.Lock()
	prefix := string(bucket) + ":"
	for k := range s.cache {
		if strings.HasPrefix(k, prefix) {
			delete(s.cache, k)
		}
	}
	s.mu.Unlock()

	if s.db == nil {
		return
	}

	s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucket)
		if b == nil {
			return nil
		}
		c := b.Cursor()
		for k, _ := c.First(); k != nil; k, _ = c.Next() {
			if err := b.Delete(k); err != nil {
				return err
			}
		}
		return nil
	})
}

// === Lookup tables ===

func (s *CatalogStore) GetGenres() ([]domain.Genre, bool) {
	var genres []domain.Genre
	ok := s.get(bucketLookups, "genres", &genres)
	return genres, ok
}

func (s *CatalogStore) SaveGenres(genres []domain.Genre) error {
	return s.set(bucketLookups, "genres", genres)
}

func (s *CatalogStore) GetTypes() ([]domain.MediaType, bool) {
	var types []domain.MediaType
	ok := s.get(bucketLookups, "types", &types)
	return types, ok
}

func (s *CatalogStore) SaveTypes(types []domain.MediaType) error {
	return s.set(bucketLookups, "types", types)
}

func (s *CatalogStore) GetDirectors() ([]domain.Director, bool) {
	var directors []domain.Director
	ok := s.get(bucketLookups, "directors", &directors)
	return directors, ok
}

func (s *CatalogStore) SaveDirectors(directors []domain.Director) error {
	return s.set(bucketLookups, "directors", directors)
}

func (s *CatalogStore) GetProducers() ([]domain.Producer, bool) {
	var producers []domain.Producer
	ok := s.get(bucketLookups, "producers", &producers)
	return producers, ok
}

func (s *CatalogStore) SaveProducers(producers []domain.Producer) error {
	return s.set(bucketLookups, "producers", producers)
}

// === Catalog pages (keyed by request signature) ===

// pageEnvelope wraps a cached page with its save time so consumers can
// judge freshness
type pageEnvelope struct {
	Page    *domain.MediaPage `json:"page"`
	SavedAt time.Time         `json:"savedAt"`
}

func (s *CatalogStore) GetPage(signature string) (*domain.MediaPage, time.Time, bool) {
	var env pageEnvelope
	if !s.get(bucketPages, signature, &env) || env.Page == nil {
		return nil, time.Time{}, false
	}
	return env.Page, env.SavedAt, true
}

func (s *CatalogStore) SavePage(signature string, page *domain.MediaPage) error {
	return s.set(bucketPages, signature, pageEnvelope{Page: page, SavedAt: time.Now()})
}

// === Dashboard summary ===

type statsEnvelope struct {
	Summary *domain.StatsSummary `json:"summary"`
	SavedAt time.Time            `json:"savedAt"`
}

func (s *CatalogStore) GetStats() (*domain.StatsSummary, time.Time, bool) {
	var env statsEnvelope
	if !s.get(bucketStats, "summary", &env) || env.Summary == nil {
		return nil, time.Time{}, false
	}
	return env.Summary, env.SavedAt, true
}

func (s *CatalogStore) SaveStats(summary *domain.StatsSummary) error {
	return s.set(bucketStats, "summary", statsEnvelope{Summary: summary, SavedAt: time.Now()})
}

// === Invalidation ===

// InvalidatePages drops all cached catalog pages, e.g. after an admin
// mutation on the backend
func (s *CatalogStore) InvalidatePages() {
	s.deleteAll(bucketPages)
}

// InvalidateAll wipes the entire cache
func (s *CatalogStore) InvalidateAll() {
	s.mu.Lock()
	s.cache = make(map[string][]byte)
	s.mu.Unlock()

	if s.db == nil {
		return
	}

	s.db.Update(func(tx *bolt.Tx) error {
		for _, bucket := range [][]byte{bucketLookups, bucketPages, bucketStats} {
			b := tx.Bucket(bucket)
			if b == nil {
				continue
			}
			c := b.Cursor()
			for k, _ := c.First(); k != nil; k, _ = c.Next() {
				if err := b.Delete(k); err != nil {
					return err
				}
			}
		}
		return nil
	})
}
