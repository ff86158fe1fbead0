package catalog

import (
	"sync"
	"time"
)

// CancelHandle cancels a scheduled invocation. Cancel is idempotent and
// safe to call after the function has already fired.
type CancelHandle struct {
	timer *time.Timer
	once  sync.Once
}

// Cancel stops the pending invocation if it has not fired yet
func (h *CancelHandle) Cancel() {
	h.once.Do(func() {
		h.timer.Stop()
	})
}

// ScheduleAfter invokes fn on its own goroutine after d unless the
// returned handle is cancelled first. Used for search debouncing: each
// keystroke cancels the previous handle, so only the last keystroke
// within the quiet period triggers a fetch.
func ScheduleAfter(d time.Duration, fn func()) *CancelHandle {
	return &CancelHandle{timer: time.AfterFunc(d, fn)}
}
