package catalog

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/lcrowe/marquee/internal/domain"
)

const (
	defaultItemsPerPage = 20
	defaultDebounce     = 500 * time.Millisecond
	defaultFetchTimeout = 30 * time.Second
)

// Phase is the controller's lifecycle state
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseLoading
	PhaseLoaded
	PhaseErrored
)

// String returns a human-readable representation of the phase
func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseLoading:
		return "loading"
	case PhaseLoaded:
		return "loaded"
	case PhaseErrored:
		return "errored"
	default:
		return "unknown"
	}
}

// AuthState is the read-only slice of the auth service the controller
// needs to decide whether admin actions are exposed.
type AuthState interface {
	IsAuthenticated() bool
	CurrentUser() (domain.User, bool)
}

// Snapshot is the controller's externally visible state at one instant.
type Snapshot struct {
	Phase  Phase
	Filter FilterState
	Page   PageState
	Tab    Tab
	Items  []domain.MediaSummary
	Err    error

	// AdminEnabled is true when the current user may see admin actions
	AdminEnabled bool
}

// Listener receives a snapshot on every committed state transition.
type Listener func(Snapshot)

// Options tunes controller behavior. Zero values select defaults.
type Options struct {
	ItemsPerPage int
	Debounce     time.Duration
	FetchTimeout time.Duration
}

// Controller owns the catalog's filter, tab, and page state. Every state
// mutation rebuilds request parameters, issues an asynchronous fetch, and
// reconciles the response into the ResultSlot; subscribers are notified
// on each transition. One instance per mounted view.
type Controller struct {
	repo   domain.CatalogRepository
	auth   AuthState
	logger *slog.Logger

	debounce     time.Duration
	fetchTimeout time.Duration

	slot *ResultSlot

	mu           sync.Mutex
	filter       FilterState
	page         PageState
	tab          Tab
	phase        Phase
	pending      *CancelHandle // debounced search dispatch, nil when idle
	listeners    map[int]Listener
	nextListener int
	closed       bool
}

// NewController creates a controller with default filter state. Call
// Start to issue the initial fetch.
func NewController(repo domain.CatalogRepository, auth AuthState, logger *slog.Logger, opts Options) *Controller {
	if logger == nil {
		logger = slog.Default()
	}
	if opts.ItemsPerPage <= 0 {
		opts.ItemsPerPage = defaultItemsPerPage
	}
	if opts.Debounce <= 0 {
		opts.Debounce = defaultDebounce
	}
	if opts.FetchTimeout <= 0 {
		opts.FetchTimeout = defaultFetchTimeout
	}

	return &Controller{
		repo:         repo,
		auth:         auth,
		logger:       logger,
		debounce:     opts.Debounce,
		fetchTimeout: opts.FetchTimeout,
		slot:         NewResultSlot(),
		filter:       DefaultFilter(),
		page:         NewPageState(opts.ItemsPerPage),
		tab:          TabAll,
		phase:        PhaseIdle,
		listeners:    make(map[int]Listener),
	}
}

// Subscribe registers a listener and returns its unsubscribe function
func (c *Controller) Subscribe(l Listener) func() {
	c.mu.Lock()
	id := c.nextListener
	c.nextListener++
	c.listeners[id] = l
	c.mu.Unlock()

	return func() {
		c.mu.Lock()
		delete(c.listeners, id)
		c.mu.Unlock()
	}
}

// Start issues the initial fetch
func (c *Controller) Start() {
	c.mu.Lock()
	c.dispatchLocked()
	c.mu.Unlock()
	c.notify()
}

// SetSearch updates the search text, resets pagination, and schedules a
// debounced fetch. Rapid keystrokes coalesce: each call cancels the
// previously scheduled dispatch, so only the last text within the quiet
// period reaches the backend.
func (c *Controller) SetSearch(text string) {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.filter.Search = text
	c.page.CurrentPage = 1
	if c.pending != nil {
		c.pending.Cancel()
	}
	c.pending = ScheduleAfter(c.debounce, func() {
		c.mu.Lock()
		if c.closed {
			c.mu.Unlock()
			return
		}
		c.pending = nil
		c.dispatchLocked()
		c.mu.Unlock()
		c.notify()
	})
	c.mu.Unlock()
	c.notify()
}

// SetFilter applies a partial filter mutation, resets pagination, and
// fetches immediately
func (c *Controller) SetFilter(update FilterUpdate) {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.filter = c.filter.apply(update)
	c.page.CurrentPage = 1
	c.cancelPendingLocked()
	c.dispatchLocked()
	c.mu.Unlock()
	c.notify()
}

// SetTab switches the active tab, resets pagination, and fetches. A
// no-op when the tab is unchanged.
func (c *Controller) SetTab(tab Tab) {
	c.mu.Lock()
	if c.closed || tab == c.tab {
		c.mu.Unlock()
		return
	}
	c.tab = tab
	c.page.CurrentPage = 1
	c.cancelPendingLocked()
	c.dispatchLocked()
	c.mu.Unlock()
	c.notify()
}

// SetPage navigates to page n, clamped into [1, TotalPages]. Filter and
// tab state are untouched. A no-op when the clamped page is unchanged.
func (c *Controller) SetPage(n int) {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	n = c.page.clampPage(n)
	if n == c.page.CurrentPage {
		c.mu.Unlock()
		return
	}
	c.page.CurrentPage = n
	c.dispatchLocked()
	c.mu.Unlock()
	c.notify()
}

// NextPage advances one page
func (c *Controller) NextPage() {
	c.mu.Lock()
	n := c.page.CurrentPage + 1
	c.mu.Unlock()
	c.SetPage(n)
}

// PrevPage goes back one page
func (c *Controller) PrevPage() {
	c.mu.Lock()
	n := c.page.CurrentPage - 1
	c.mu.Unlock()
	c.SetPage(n)
}

// ClearFilters resets the filter to defaults, keeping the active tab,
// and fetches
func (c *Controller) ClearFilters() {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.filter = DefaultFilter()
	c.page.CurrentPage = 1
	c.cancelPendingLocked()
	c.dispatchLocked()
	c.mu.Unlock()
	c.notify()
}

// Refresh re-issues the current params without resetting pagination
func (c *Controller) Refresh() {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.dispatchLocked()
	c.mu.Unlock()
	c.notify()
}

// Retry re-issues the last request unchanged after an error
func (c *Controller) Retry() {
	c.Refresh()
}

// Snapshot returns the controller's current state
func (c *Controller) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshotLocked()
}

// Close cancels any pending debounced dispatch and detaches listeners.
// In-flight fetches complete but their results are discarded by the
// sequence check or notify no one.
func (c *Controller) Close() {
	c.mu.Lock()
	c.closed = true
	c.cancelPendingLocked()
	c.listeners = make(map[int]Listener)
	c.mu.Unlock()
}

// cancelPendingLocked drops the scheduled debounced dispatch, if any
func (c *Controller) cancelPendingLocked() {
	if c.pending != nil {
		c.pending.Cancel()
		c.pending = nil
	}
}

// dispatchLocked builds params from current state and issues the fetch.
// Caller holds c.mu.
func (c *Controller) dispatchLocked() {
	if c.closed {
		return
	}
	params := BuildParams(c.filter, c.page, c.tab)
	token := c.slot.Begin(params.Signature())
	c.phase = PhaseLoading
	go c.fetch(token, params)
}

func (c *Controller) fetch(token uint64, params Params) {
	ctx, cancel := context.WithTimeout(context.Background(), c.fetchTimeout)
	defer cancel()

	page, err := c.repo.FetchMedia(ctx, map[string]string(params))
	if err != nil {
		if !c.slot.Fail(token, err) {
			// Superseded by a newer request; drop silently
			c.logger.Debug("discarded stale fetch error", "signature", params.Signature())
			return
		}
		c.logger.Error("catalog fetch failed", "error", err, "signature", params.Signature())
		c.mu.Lock()
		c.phase = PhaseErrored
		c.mu.Unlock()
		c.notify()
		return
	}

	if !c.slot.Commit(token, page) {
		c.logger.Debug("discarded stale fetch result", "signature", params.Signature())
		return
	}

	c.mu.Lock()
	c.phase = PhaseLoaded
	c.page.TotalPages = page.TotalPages
	if c.page.TotalPages < 1 {
		c.page.TotalPages = 1
	}
	c.page.TotalItems = page.TotalItems
	if c.page.CurrentPage > c.page.TotalPages {
		c.page.CurrentPage = c.page.TotalPages
	}
	c.mu.Unlock()

	c.logger.Debug("catalog fetch committed", "items", len(page.Items), "totalPages", page.TotalPages)
	c.notify()
}

// snapshotLocked builds a snapshot. Caller holds c.mu.
func (c *Controller) snapshotLocked() Snapshot {
	view := c.slot.View()
	return Snapshot{
		Phase:        c.phase,
		Filter:       c.filter,
		Page:         c.page,
		Tab:          c.tab,
		Items:        view.Items,
		Err:          view.Err,
		AdminEnabled: c.adminEnabledLocked(),
	}
}

func (c *Controller) adminEnabledLocked() bool {
	if c.auth == nil || !c.auth.IsAuthenticated() {
		return false
	}
	user, ok := c.auth.CurrentUser()
	return ok && user.IsAdmin()
}

// notify delivers the current snapshot to all listeners outside the lock
func (c *Controller) notify() {
	c.mu.Lock()
	snap := c.snapshotLocked()
	ls := make([]Listener, 0, len(c.listeners))
	for _, l := range c.listeners {
		ls = append(ls, l)
	}
	c.mu.Unlock()

	for _, l := range ls {
		l(snap)
	}
}
