// Package livelist implements the live-paginated-list pattern shared by
// every message log, media bucket, sidebar and feed view: a live
// subscription keeps the newest page of rows fresh while older history is
// pulled in backwards with cursor-based one-shot fetches.
package livelist

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
)

// DefaultPageSize is the window size used by every list view.
const DefaultPageSize = 50

// Subscription is a standing query delivering the entire current top
// window, newest-first, every time the underlying data changes. The
// updates channel is closed when the subscription ends; Err reports why.
type Subscription[T any] interface {
	Updates() <-chan []T
	Err() error
	Stop()
}

// Source produces rows for one kind of list, scoped by an opaque key
// (room id, thread id, bucket owner id). Both methods order rows
// newest-first by a server-assigned monotonic timestamp.
type Source[T any] interface {
	Subscribe(ctx context.Context, scope string, limit int) (Subscription[T], error)
	FetchBefore(ctx context.Context, scope string, before time.Time, limit int) ([]T, error)
}

// Event describes one applied live update.
type Event[T any] struct {
	// Rows is the full visible list, oldest to newest.
	Rows []T
	// WasEmpty is true when the list held no rows before this update;
	// together with the scroll policy it drives autoscroll.
	WasEmpty bool
}

// Controller owns one live window plus its backfilled history. All
// methods are safe for concurrent use. A controller is bound to at most
// one scope at a time; SetScope tears the previous subscription down.
type Controller[T any] struct {
	src      Source[T]
	pageSize int
	key      func(T) string
	orderKey func(T) time.Time
	onChange func(Event[T])

	mu     sync.Mutex
	gen    uint64
	scope  string
	sub    Subscription[T]
	older  []T // rows fetched by LoadMore or retained from the window, ascending
	window []T // live top window, ascending
	more   bool
	live   bool
	err    error
	done   chan struct{}
}

// New builds a controller. key must uniquely identify a row; orderKey
// returns the server-assigned ordering timestamp. onChange may be nil.
func New[T any](src Source[T], pageSize int, key func(T) string, orderKey func(T) time.Time, onChange func(Event[T])) *Controller[T] {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	return &Controller[T]{
		src:      src,
		pageSize: pageSize,
		key:      key,
		orderKey: orderKey,
		onChange: onChange,
		more:     true,
	}
}

// SetScope cancels any prior subscription, clears all state and opens a
// live subscription for the new scope.
func (c *Controller[T]) SetScope(ctx context.Context, scope string) error {
	c.mu.Lock()
	c.stopLocked()
	c.gen++
	gen := c.gen
	c.scope = scope
	c.older = nil
	c.window = nil
	c.more = true
	c.err = nil
	c.mu.Unlock()

	sub, err := c.src.Subscribe(ctx, scope, c.pageSize)
	if err != nil {
		c.mu.Lock()
		if c.gen == gen {
			c.err = err
		}
		c.mu.Unlock()
		return err
	}

	done := make(chan struct{})
	c.mu.Lock()
	if c.gen != gen {
		// a newer SetScope raced us; discard this subscription
		c.mu.Unlock()
		sub.Stop()
		close(done)
		return nil
	}
	c.sub = sub
	c.live = true
	c.done = done
	c.mu.Unlock()

	go c.consume(sub, done, gen)
	return nil
}

// consume applies windows until the subscription ends. On failure the
// last good state is kept and the error is surfaced, per the
// stop-and-keep policy: no retry here, resubscribing is the caller's
// decision.
func (c *Controller[T]) consume(sub Subscription[T], done chan struct{}, gen uint64) {
	defer close(done)
	for win := range sub.Updates() {
		c.apply(win, gen)
	}
	c.mu.Lock()
	if c.gen == gen {
		c.live = false
		if err := sub.Err(); err != nil && c.err == nil {
			c.err = err
			log.Error().Err(err).Str("scope", c.scope).Msg("live subscription failed")
		}
	}
	c.mu.Unlock()
}

// apply replaces the live top window with a fresh snapshot. Rows that
// fell off the old window because newer rows arrived are retained below
// it; rows missing from inside the new window's range were deleted
// remotely and simply vanish.
func (c *Controller[T]) apply(newestFirst []T, gen uint64) {
	asc := reverse(newestFirst)

	c.mu.Lock()
	if c.gen != gen {
		c.mu.Unlock()
		return
	}
	wasEmpty := len(c.older)+len(c.window) == 0

	if len(asc) > 0 {
		oldest := c.orderKey(asc[0])
		seen := make(map[string]bool, len(asc))
		for _, row := range asc {
			seen[c.key(row)] = true
		}
		for _, row := range c.window {
			if !seen[c.key(row)] && c.orderKey(row).Before(oldest) {
				c.older = append(c.older, row)
			}
		}
	}
	c.window = asc

	var ev Event[T]
	if c.onChange != nil {
		ev = Event[T]{Rows: c.rowsLocked(), WasEmpty: wasEmpty}
	}
	cb := c.onChange
	c.mu.Unlock()

	if cb != nil {
		cb(ev)
	}
}

// LoadMore fetches one page of rows older than the oldest visible row and
// prepends it. A short page flips HasMore to false. Rows already visible
// are never duplicated.
func (c *Controller[T]) LoadMore(ctx context.Context) error {
	c.mu.Lock()
	if !c.more {
		c.mu.Unlock()
		return nil
	}
	scope := c.scope
	gen := c.gen
	var cursor time.Time
	switch {
	case len(c.older) > 0:
		cursor = c.orderKey(c.older[0])
	case len(c.window) > 0:
		cursor = c.orderKey(c.window[0])
	default:
		c.mu.Unlock()
		return nil
	}
	c.mu.Unlock()

	page, err := c.src.FetchBefore(ctx, scope, cursor, c.pageSize)
	if err != nil {
		return err
	}

	c.mu.Lock()
	if c.gen == gen {
		// dedupe against the state as it is now, not as it was before the
		// fetch: a concurrent backfill or live update may have landed the
		// same rows in the meantime
		visible := make(map[string]bool, len(c.older)+len(c.window))
		for _, row := range c.older {
			visible[c.key(row)] = true
		}
		for _, row := range c.window {
			visible[c.key(row)] = true
		}
		asc := reverse(page)
		fresh := asc[:0:0]
		for _, row := range asc {
			if !visible[c.key(row)] {
				fresh = append(fresh, row)
			}
		}
		c.older = append(fresh, c.older...)
		c.more = len(page) == c.pageSize
	}
	c.mu.Unlock()
	return nil
}

// Rows returns the visible list, oldest to newest.
func (c *Controller[T]) Rows() []T {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.rowsLocked()
}

func (c *Controller[T]) rowsLocked() []T {
	rows := make([]T, 0, len(c.older)+len(c.window))
	rows = append(rows, c.older...)
	rows = append(rows, c.window...)
	return rows
}

// HasMore reports whether older rows may remain beyond the visible list.
func (c *Controller[T]) HasMore() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.more
}

// Live reports whether the top window is still fed by a subscription.
func (c *Controller[T]) Live() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.live
}

// Err returns the subscription error that stopped the feed, if any.
func (c *Controller[T]) Err() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.err
}

// Scope returns the currently bound scope key.
func (c *Controller[T]) Scope() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.scope
}

// Close stops the subscription. The controller may be rebound afterwards
// with SetScope.
func (c *Controller[T]) Close() {
	c.mu.Lock()
	done := c.done
	c.stopLocked()
	c.mu.Unlock()
	if done != nil {
		<-done
	}
}

func (c *Controller[T]) stopLocked() {
	if c.sub != nil {
		c.sub.Stop()
		c.sub = nil
	}
	c.live = false
	c.done = nil
}

func reverse[T any](rows []T) []T {
	out := make([]T, len(rows))
	for i, row := range rows {
		out[len(rows)-1-i] = row
	}
	return out
}
