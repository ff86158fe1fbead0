package catalog

import (
	"sync"

	"github.com/lcrowe/marquee/internal/domain"
)

// ResultSlot holds the most recent reconciled fetch outcome. Every fetch
// is issued under a monotonically increasing sequence number; a completion
// only commits when its number still matches the latest issued one, so a
// slow response superseded by a newer request can never overwrite fresh
// data (last-request-wins).
type ResultSlot struct {
	mu sync.Mutex

	seq           uint64
	items         []domain.MediaSummary
	totalPages    int
	totalItems    int
	loading       bool
	err           error
	lastSignature string
	loadedOnce    bool
}

// SlotView is an immutable snapshot of the slot's state.
type SlotView struct {
	Items      []domain.MediaSummary
	TotalPages int
	TotalItems int
	Loading    bool
	Err        error

	// Signature of the params behind the most recent completed fetch
	LastSignature string
}

// NewResultSlot returns an empty slot in the loading state, matching the
// initial-mount lifecycle of the controller.
func NewResultSlot() *ResultSlot {
	return &ResultSlot{loading: true, totalPages: 1}
}

// Begin registers a new in-flight request and returns its sequence token.
// Any previously issued token becomes stale immediately.
func (s *ResultSlot) Begin(signature string) uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.seq++
	s.loading = true
	s.lastSignature = signature
	return s.seq
}

// Commit stores a successful response if token is still the latest issued
// sequence number. Stale completions are discarded and Commit returns false.
func (s *ResultSlot) Commit(token uint64, page *domain.MediaPage) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if token != s.seq {
		return false
	}

	s.items = page.Items
	s.totalPages = page.TotalPages
	if s.totalPages < 1 {
		s.totalPages = 1
	}
	s.totalItems = page.TotalItems
	s.loading = false
	s.err = nil
	s.loadedOnce = true
	return true
}

// Fail records a fetch error if token is still the latest issued sequence
// number. Previously committed items are left untouched; on an initial
// load they stay empty. Stale failures are discarded and Fail returns false.
func (s *ResultSlot) Fail(token uint64, err error) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if token != s.seq {
		return false
	}

	s.err = err
	s.loading = false
	return true
}

// View returns a snapshot of the slot's current state
func (s *ResultSlot) View() SlotView {
	s.mu.Lock()
	defer s.mu.Unlock()

	return SlotView{
		Items:         s.items,
		TotalPages:    s.totalPages,
		TotalItems:    s.totalItems,
		Loading:       s.loading,
		Err:           s.err,
		LastSignature: s.lastSignature,
	}
}
