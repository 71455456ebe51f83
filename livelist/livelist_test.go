package livelist_test

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Willclarkmusic/AIGM-TheEndPoint-sub000/livelist"
)

type row struct {
	ID string
	At time.Time
}

func rowKey(r row) string      { return r.ID }
func rowOrder(r row) time.Time { return r.At }

// makeRows builds n rows with strictly increasing ordering keys.
func makeRows(n int) []row {
	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	rows := make([]row, n)
	for i := range rows {
		rows[i] = row{ID: fmt.Sprintf("m%02d", i), At: base.Add(time.Duration(i) * time.Second)}
	}
	return rows
}

type fakeSub struct {
	ch   chan []row
	err  error
	once sync.Once
}

func (s *fakeSub) Updates() <-chan []row { return s.ch }
func (s *fakeSub) Err() error            { return s.err }
func (s *fakeSub) Stop()                 { s.once.Do(func() { close(s.ch) }) }

// fail ends the subscription with an error, as a broken backend stream
// would.
func (s *fakeSub) fail(err error) {
	s.err = err
	s.Stop()
}

type fakeSource struct {
	mu      sync.Mutex
	history []row // ascending
	sub     *fakeSub
	subs    int
}

func (f *fakeSource) Subscribe(_ context.Context, _ string, limit int) (livelist.Subscription[row], error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	sub := &fakeSub{ch: make(chan []row, 16)}
	f.sub = sub
	f.subs++
	sub.ch <- f.windowLocked(limit)
	return sub, nil
}

func (f *fakeSource) FetchBefore(_ context.Context, _ string, before time.Time, limit int) ([]row, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var page []row
	for i := len(f.history) - 1; i >= 0 && len(page) < limit; i-- {
		if f.history[i].At.Before(before) {
			page = append(page, f.history[i])
		}
	}
	return page, nil
}

// windowLocked returns the newest limit rows, newest-first.
func (f *fakeSource) windowLocked(limit int) []row {
	var win []row
	for i := len(f.history) - 1; i >= 0 && len(win) < limit; i-- {
		win = append(win, f.history[i])
	}
	return win
}

// push appends a row and redelivers the live window.
func (f *fakeSource) push(r row, limit int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.history = append(f.history, r)
	f.sub.ch <- f.windowLocked(limit)
}

// redeliver resends the current window without changing history.
func (f *fakeSource) redeliver(limit int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sub.ch <- f.windowLocked(limit)
}

func waitEvent(t *testing.T, events <-chan livelist.Event[row]) livelist.Event[row] {
	t.Helper()
	select {
	case ev := <-events:
		return ev
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for live update")
		return livelist.Event[row]{}
	}
}

func ids(rows []row) []string {
	out := make([]string, len(rows))
	for i, r := range rows {
		out[i] = r.ID
	}
	return out
}

func newController(src *fakeSource, pageSize int) (*livelist.Controller[row], chan livelist.Event[row]) {
	events := make(chan livelist.Event[row], 16)
	ctl := livelist.New(src, pageSize, rowKey, rowOrder, func(ev livelist.Event[row]) { events <- ev })
	return ctl, events
}

func TestInitialWindowIsNewestPageAscending(t *testing.T) {
	src := &fakeSource{history: makeRows(7)}
	ctl, events := newController(src, 5)
	defer ctl.Close()

	require.NoError(t, ctl.SetScope(context.Background(), "room-1"))
	ev := waitEvent(t, events)

	assert.True(t, ev.WasEmpty)
	assert.Equal(t, []string{"m02", "m03", "m04", "m05", "m06"}, ids(ev.Rows))
	assert.True(t, ctl.Live())
}

func TestWindowSmallerThanPage(t *testing.T) {
	src := &fakeSource{history: makeRows(3)}
	ctl, events := newController(src, 5)
	defer ctl.Close()

	require.NoError(t, ctl.SetScope(context.Background(), "room-1"))
	ev := waitEvent(t, events)
	assert.Equal(t, []string{"m00", "m01", "m02"}, ids(ev.Rows))
}

func TestLoadMorePrependsWithoutDuplicates(t *testing.T) {
	src := &fakeSource{history: makeRows(8)}
	ctl, events := newController(src, 5)
	defer ctl.Close()

	require.NoError(t, ctl.SetScope(context.Background(), "room-1"))
	waitEvent(t, events)

	require.NoError(t, ctl.LoadMore(context.Background()))

	rows := ctl.Rows()
	assert.Equal(t, []string{"m00", "m01", "m02", "m03", "m04", "m05", "m06", "m07"}, ids(rows))
	assert.False(t, ctl.HasMore(), "a short page means history is exhausted")

	// a further LoadMore is a no-op
	require.NoError(t, ctl.LoadMore(context.Background()))
	assert.Len(t, ctl.Rows(), 8)
}

func TestLoadMoreFullPageKeepsHasMore(t *testing.T) {
	src := &fakeSource{history: makeRows(15)}
	ctl, events := newController(src, 5)
	defer ctl.Close()

	require.NoError(t, ctl.SetScope(context.Background(), "room-1"))
	waitEvent(t, events)

	require.NoError(t, ctl.LoadMore(context.Background()))
	assert.Len(t, ctl.Rows(), 10)
	assert.True(t, ctl.HasMore())
}

// gatedSource blocks every FetchBefore until released, so backfills can
// be forced to overlap.
type gatedSource struct {
	fakeSource
	started chan struct{}
	release chan struct{}
}

func (g *gatedSource) FetchBefore(ctx context.Context, scope string, before time.Time, limit int) ([]row, error) {
	g.started <- struct{}{}
	<-g.release
	return g.fakeSource.FetchBefore(ctx, scope, before, limit)
}

func TestConcurrentLoadMoreDoesNotDuplicateRows(t *testing.T) {
	src := &gatedSource{
		fakeSource: fakeSource{history: makeRows(12)},
		started:    make(chan struct{}),
		release:    make(chan struct{}),
	}
	events := make(chan livelist.Event[row], 16)
	ctl := livelist.New(src, 5, rowKey, rowOrder, func(ev livelist.Event[row]) { events <- ev })
	defer ctl.Close()

	require.NoError(t, ctl.SetScope(context.Background(), "room-1"))
	waitEvent(t, events)

	// both calls read the same cursor and fetch the same page
	errs := make(chan error, 2)
	for i := 0; i < 2; i++ {
		go func() { errs <- ctl.LoadMore(context.Background()) }()
	}
	<-src.started
	<-src.started
	close(src.release)
	require.NoError(t, <-errs)
	require.NoError(t, <-errs)

	rows := ids(ctl.Rows())
	assert.Equal(t, []string{"m02", "m03", "m04", "m05", "m06", "m07", "m08", "m09", "m10", "m11"}, rows)
	counts := make(map[string]int)
	for _, id := range rows {
		counts[id]++
	}
	for id, n := range counts {
		assert.Equalf(t, 1, n, "row %s appears %d times", id, n)
	}
}

func TestLiveUpdateRetainsRowsThatSlidOut(t *testing.T) {
	src := &fakeSource{history: makeRows(5)}
	ctl, events := newController(src, 5)
	defer ctl.Close()

	require.NoError(t, ctl.SetScope(context.Background(), "room-1"))
	waitEvent(t, events)

	// a new message slides m00 out of the 5-row window
	src.push(row{ID: "m05", At: time.Date(2025, 1, 1, 0, 1, 0, 0, time.UTC)}, 5)
	ev := waitEvent(t, events)

	assert.Equal(t, []string{"m00", "m01", "m02", "m03", "m04", "m05"}, ids(ev.Rows))
	assert.False(t, ev.WasEmpty)
}

func TestRemoteDeleteInsideWindowVanishes(t *testing.T) {
	src := &fakeSource{history: makeRows(5)}
	ctl, events := newController(src, 5)
	defer ctl.Close()

	require.NoError(t, ctl.SetScope(context.Background(), "room-1"))
	waitEvent(t, events)

	// another party deletes m02; the next snapshot simply lacks it
	src.mu.Lock()
	src.history = append(src.history[:2], src.history[3:]...)
	src.mu.Unlock()
	src.redeliver(5)

	ev := waitEvent(t, events)
	assert.Equal(t, []string{"m00", "m01", "m03", "m04"}, ids(ev.Rows))
}

func TestSetScopeResetsStateAndResubscribes(t *testing.T) {
	src := &fakeSource{history: makeRows(8)}
	ctl, events := newController(src, 5)
	defer ctl.Close()

	require.NoError(t, ctl.SetScope(context.Background(), "room-1"))
	waitEvent(t, events)
	require.NoError(t, ctl.LoadMore(context.Background()))
	assert.False(t, ctl.HasMore())

	require.NoError(t, ctl.SetScope(context.Background(), "room-2"))
	ev := waitEvent(t, events)

	assert.True(t, ev.WasEmpty, "scope change clears prior rows")
	assert.True(t, ctl.HasMore(), "has-more resets on scope change")
	assert.Equal(t, 2, src.subs)
	assert.Equal(t, "room-2", ctl.Scope())
}

func TestSubscriptionErrorKeepsLastGoodState(t *testing.T) {
	src := &fakeSource{history: makeRows(4)}
	ctl, events := newController(src, 5)
	defer ctl.Close()

	require.NoError(t, ctl.SetScope(context.Background(), "room-1"))
	waitEvent(t, events)

	src.sub.fail(errors.New("stream broken"))

	assert.Eventually(t, func() bool { return !ctl.Live() }, time.Second, 5*time.Millisecond)
	assert.Error(t, ctl.Err())
	assert.Len(t, ctl.Rows(), 4, "last good window survives")
}

func TestScrollPolicy(t *testing.T) {
	p := livelist.ScrollPolicy{}

	assert.True(t, p.ShouldPin(0, false))
	assert.True(t, p.ShouldPin(100, false), "exactly at the threshold still pins")
	assert.False(t, p.ShouldPin(101, false), "reader scrolled up is not yanked down")
	assert.True(t, p.ShouldPin(5000, true), "first load always pins")

	tight := livelist.ScrollPolicy{BottomThreshold: 10}
	assert.False(t, tight.ShouldPin(50, false))
	assert.True(t, tight.ShouldPin(10, false))
}
