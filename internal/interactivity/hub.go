// Package interactivity matches inbound control clicks to the sessions
// waiting for them
package interactivity

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/zinin/pagerbot/internal/pager"
)

// ErrDuplicateID is returned when a control id already has a waiter
var ErrDuplicateID = errors.New("control id already awaited")

// waiter receives at most one click. Dispatch removes all of its ids
// under the hub lock when it delivers.
type waiter struct {
	ids       []string
	ch        chan pager.Click
	delivered bool
}

// Hub routes clicks to waiters by control id. Safe for concurrent use.
type Hub struct {
	mu      sync.Mutex
	waiters map[string]*waiter
}

// NewHub creates an empty Hub
func NewHub() *Hub {
	return &Hub{
		waiters: make(map[string]*waiter),
	}
}

// Wait blocks until a click on one of ids is dispatched, the timeout
// elapses (ok is false), or ctx is done.
func (h *Hub) Wait(ctx context.Context, ids []string, timeout time.Duration) (pager.Click, bool, error) {
	w := &waiter{ids: append([]string(nil), ids...), ch: make(chan pager.Click, 1)}
	if err := h.register(w); err != nil {
		return pager.Click{}, false, err
	}

	timer := time.NewTimer(timeout)
	defer timer.Stop()

	select {
	case c := <-w.ch:
		return c, true, nil
	case <-timer.C:
		if !h.unregister(w) {
			// delivered while the timer fired
			return <-w.ch, true, nil
		}
		return pager.Click{}, false, nil
	case <-ctx.Done():
		h.unregister(w)
		return pager.Click{}, false, ctx.Err()
	}
}

// Dispatch delivers a click to the waiter registered for its control id.
// Returns false when nobody waits for the id. A delivered click ends the
// wait, so a second click on the same waiter is refused.
func (h *Hub) Dispatch(c pager.Click) bool {
	h.mu.Lock()
	defer h.mu.Unlock()

	w, ok := h.waiters[c.ControlID]
	if !ok {
		return false
	}
	w.ch <- c
	w.delivered = true
	h.remove(w)
	return true
}

// Pending returns the number of control ids being waited for
func (h *Hub) Pending() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.waiters)
}

func (h *Hub) register(w *waiter) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	for _, id := range w.ids {
		if _, exists := h.waiters[id]; exists {
			return ErrDuplicateID
		}
	}
	for _, id := range w.ids {
		h.waiters[id] = w
	}
	return nil
}

// unregister removes w and reports whether it was still registered.
// False means a click was delivered to w.
func (h *Hub) unregister(w *waiter) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	if w.delivered {
		return false
	}
	h.remove(w)
	return true
}

// remove deletes the ids owned by w. Caller holds h.mu.
func (h *Hub) remove(w *waiter) {
	for _, id := range w.ids {
		if h.waiters[id] == w {
			delete(h.waiters, id)
		}
	}
}
