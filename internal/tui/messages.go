package tui

import (
	"time"

	"github.com/lcrowe/marquee/internal/catalog"
	"github.com/lcrowe/marquee/internal/domain"
	"github.com/lcrowe/marquee/internal/tmdb"
)

// Message types for the TUI

// ErrMsg represents an error
type ErrMsg struct {
	Err     error
	Context string
}

// Error implements the error interface
func (e ErrMsg) Error() string {
	if e.Context != "" {
		return e.Context + ": " + e.Err.Error()
	}
	return e.Err.Error()
}

// SnapshotMsg carries a committed catalog controller state transition
type SnapshotMsg struct {
	Snapshot catalog.Snapshot
}

// LookupsLoadedMsg signals that lookup tables are ready and carries the
// tab set derived from the backend's media types
type LookupsLoadedMsg struct {
	Tabs []catalog.Tab
}

// DashboardLoadedMsg carries the reconciled stats summary and genre
// distribution for the admin dashboard. CachedAt is non-zero when the
// summary came from the local cache instead of a live fetch.
type DashboardLoadedMsg struct {
	Summary   *domain.StatsSummary
	TopGenres []domain.GenreCount
	CachedAt  time.Time
}

// DetailLoadedMsg carries supplemental metadata for the selected item
type DetailLoadedMsg struct {
	ItemID string
	Detail *tmdb.Detail
}

// LoginResultMsg signals the outcome of a login attempt
type LoginResultMsg struct {
	Err error
}

// StatusMsg sets a temporary status message
type StatusMsg struct {
	Message string
	IsError bool
}

// ClearStatusMsg clears the status bar message
type ClearStatusMsg struct{}
