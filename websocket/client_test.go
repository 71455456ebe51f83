package websocket

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Willclarkmusic/AIGM-TheEndPoint-sub000/livelist"
	"github.com/Willclarkmusic/AIGM-TheEndPoint-sub000/models"
)

type stubSub struct {
	ch   chan []models.Message
	once sync.Once
}

func (s *stubSub) Updates() <-chan []models.Message { return s.ch }

func (s *stubSub) Err() error { return nil }

func (s *stubSub) Stop() { s.once.Do(func() { close(s.ch) }) }

// stubSource hands out one subscription per Subscribe call and records
// the scope it was asked for.
type stubSource struct {
	scope string
	sub   *stubSub
}

func (s *stubSource) Subscribe(ctx context.Context, scope string, limit int) (livelist.Subscription[models.Message], error) {
	s.scope = scope
	s.sub = &stubSub{ch: make(chan []models.Message, 4)}
	return s.sub, nil
}

func (s *stubSource) FetchBefore(ctx context.Context, scope string, before time.Time, limit int) ([]models.Message, error) {
	return nil, nil
}

type stubGuard struct {
	denyRoom bool
}

func (g stubGuard) CanAccessRoom(ctx context.Context, uid, serverID, roomID string) error {
	if g.denyRoom {
		return errors.New("denied")
	}
	return nil
}

func (g stubGuard) CanAccessThread(ctx context.Context, uid, threadID string) error {
	return nil
}

func newTestClient(src *stubSource, guard Guard) *Client {
	return NewClient(NewHub(), nil, "u1", Sources{RoomMessages: src}, guard)
}

func waitFrame(t *testing.T, c *Client) ServerMessage {
	t.Helper()
	select {
	case msg := <-c.send:
		return msg
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for frame")
		return ServerMessage{}
	}
}

func msgAt(id string, at time.Time) models.Message {
	return models.Message{ID: id, Text: id, CreatedAt: at}
}

func TestSubscribePushesSnapshotAndPinsFirstFill(t *testing.T) {
	src := &stubSource{}
	c := newTestClient(src, stubGuard{})
	defer c.closeStreams()

	err := c.subscribe(ClientMessage{Action: ActionSubscribe, ID: "sub1", Stream: StreamRoomMessages, Scope: "srv1/room1"})
	require.NoError(t, err)
	assert.Equal(t, "srv1/room1", src.scope)

	base := time.Now()
	src.sub.ch <- []models.Message{msgAt("m2", base.Add(2*time.Second)), msgAt("m1", base.Add(time.Second))}

	frame := waitFrame(t, c)
	assert.Equal(t, "snapshot", frame.Type)
	assert.Equal(t, "sub1", frame.ID)
	// first fill always pins, regardless of scroll distance
	assert.True(t, frame.ScrollToBottom)
	rows := frame.Rows.([]models.Message)
	require.Len(t, rows, 2)
	assert.Equal(t, "m1", rows[0].ID)
	assert.Equal(t, "m2", rows[1].ID)
}

func TestScrollStateFarFromBottomSuppressesAutoscroll(t *testing.T) {
	src := &stubSource{}
	c := newTestClient(src, stubGuard{})
	defer c.closeStreams()

	require.NoError(t, c.subscribe(ClientMessage{Action: ActionSubscribe, ID: "sub1", Stream: StreamRoomMessages, Scope: "srv1/room1"}))

	base := time.Now()
	src.sub.ch <- []models.Message{msgAt("m1", base)}
	waitFrame(t, c)

	// reader scrolled up into history
	c.handle(ClientMessage{Action: ActionScrollState, ID: "sub1", DistanceFromBottom: 400})

	src.sub.ch <- []models.Message{msgAt("m2", base.Add(time.Second)), msgAt("m1", base)}
	frame := waitFrame(t, c)
	assert.False(t, frame.ScrollToBottom)

	// back near the bottom, new rows pin again
	c.handle(ClientMessage{Action: ActionScrollState, ID: "sub1", DistanceFromBottom: 40})
	src.sub.ch <- []models.Message{msgAt("m3", base.Add(2*time.Second)), msgAt("m2", base.Add(time.Second))}
	frame = waitFrame(t, c)
	assert.True(t, frame.ScrollToBottom)
}

func TestSubscribeDeniedByGuard(t *testing.T) {
	src := &stubSource{}
	c := newTestClient(src, stubGuard{denyRoom: true})

	err := c.subscribe(ClientMessage{Action: ActionSubscribe, ID: "sub1", Stream: StreamRoomMessages, Scope: "srv1/room1"})
	assert.Error(t, err)
	assert.Nil(t, src.sub)
}

func TestSubscribeRejectsMalformedRoomScope(t *testing.T) {
	c := newTestClient(&stubSource{}, stubGuard{})

	err := c.subscribe(ClientMessage{Action: ActionSubscribe, ID: "sub1", Stream: StreamRoomMessages, Scope: "no-slash"})
	assert.Error(t, err)
}

func TestUnsubscribeStopsStream(t *testing.T) {
	src := &stubSource{}
	c := newTestClient(src, stubGuard{})

	require.NoError(t, c.subscribe(ClientMessage{Action: ActionSubscribe, ID: "sub1", Stream: StreamRoomMessages, Scope: "srv1/room1"}))
	c.handle(ClientMessage{Action: ActionUnsubscribe, ID: "sub1"})

	frame := waitFrame(t, c)
	assert.Equal(t, "unsubscribed", frame.Type)
	_, ok := c.stream("sub1")
	assert.False(t, ok)
}

func TestOwnerBoundStreamsForceOwnScope(t *testing.T) {
	mediaSrc := &stubMediaSource{}
	c := NewClient(NewHub(), nil, "u1", Sources{MediaFiles: mediaSrc}, stubGuard{})
	defer c.closeStreams()

	// scope in the frame is ignored for the personal media bucket
	err := c.subscribe(ClientMessage{Action: ActionSubscribe, ID: "sub1", Stream: StreamMedia, Scope: "someone-else"})
	require.NoError(t, err)
	assert.Equal(t, "u1", mediaSrc.scope)
}

type stubMediaSource struct {
	scope string
}

func (s *stubMediaSource) Subscribe(ctx context.Context, scope string, limit int) (livelist.Subscription[models.MediaFile], error) {
	s.scope = scope
	return &stubMediaSub{ch: make(chan []models.MediaFile)}, nil
}

func (s *stubMediaSource) FetchBefore(ctx context.Context, scope string, before time.Time, limit int) ([]models.MediaFile, error) {
	return nil, nil
}

type stubMediaSub struct {
	ch chan []models.MediaFile
}

func (s *stubMediaSub) Updates() <-chan []models.MediaFile { return s.ch }

func (s *stubMediaSub) Err() error { return nil }

func (s *stubMediaSub) Stop() { close(s.ch) }
