package websocket

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"

	"github.com/Willclarkmusic/AIGM-TheEndPoint-sub000/livelist"
	"github.com/Willclarkmusic/AIGM-TheEndPoint-sub000/models"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 16 * 1024
)

// Guard answers whether the connected user may open a stream scope.
type Guard interface {
	CanAccessRoom(ctx context.Context, uid, serverID, roomID string) error
	CanAccessThread(ctx context.Context, uid, threadID string) error
}

// Sources bundles the live sources every client subscription draws from.
type Sources struct {
	RoomMessages   livelist.Source[models.Message]
	DMMessages     livelist.Source[models.Message]
	Threads        livelist.Source[models.DMThread]
	MediaFiles     livelist.Source[models.MediaFile]
	Posts          livelist.Source[models.Post]
	FriendRequests livelist.Source[models.FriendRequest]
}

// stream is one open subscription on a client connection.
type stream interface {
	loadMore(ctx context.Context) error
	setDistance(d float64)
	close()
}

// Client is one websocket connection for one authenticated user.
type Client struct {
	hub     *Hub
	conn    *websocket.Conn
	UserID  string
	sources Sources
	guard   Guard
	policy  livelist.ScrollPolicy

	send chan ServerMessage

	ctx    context.Context
	cancel context.CancelFunc

	mu      sync.Mutex
	streams map[string]stream
}

func NewClient(hub *Hub, conn *websocket.Conn, userID string, sources Sources, guard Guard) *Client {
	ctx, cancel := context.WithCancel(context.Background())
	return &Client{
		hub:     hub,
		conn:    conn,
		UserID:  userID,
		sources: sources,
		guard:   guard,
		send:    make(chan ServerMessage, 256),
		ctx:     ctx,
		cancel:  cancel,
		streams: make(map[string]stream),
	}
}

// ReadPump processes inbound frames until the connection drops, then
// tears every open subscription down.
func (c *Client) ReadPump() {
	defer func() {
		c.closeStreams()
		c.cancel()
		c.hub.Unregister(c)
		c.conn.Close()
		log.Debug().Str("uid", c.UserID).Msg("websocket closed")
	}()

	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, raw, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Warn().Err(err).Str("uid", c.UserID).Msg("websocket read failed")
			}
			return
		}
		var msg ClientMessage
		if err := json.Unmarshal(raw, &msg); err != nil {
			c.reply(ServerMessage{Type: "error", Error: "malformed frame"})
			continue
		}
		c.handle(msg)
	}
}

// WritePump flushes outbound frames and keeps the connection alive with
// pings.
func (c *Client) WritePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case msg, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteJSON(msg); err != nil {
				return
			}
		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

func (c *Client) handle(msg ClientMessage) {
	switch msg.Action {
	case ActionSubscribe:
		if err := c.subscribe(msg); err != nil {
			c.reply(ServerMessage{Type: "error", ID: msg.ID, Error: err.Error()})
			return
		}
		c.reply(ServerMessage{Type: "subscribed", ID: msg.ID, Stream: msg.Stream})

	case ActionUnsubscribe:
		c.mu.Lock()
		st, ok := c.streams[msg.ID]
		if ok {
			delete(c.streams, msg.ID)
		}
		c.mu.Unlock()
		if ok {
			st.close()
			c.reply(ServerMessage{Type: "unsubscribed", ID: msg.ID})
		}

	case ActionLoadMore:
		st, ok := c.stream(msg.ID)
		if !ok {
			c.reply(ServerMessage{Type: "error", ID: msg.ID, Error: "unknown subscription"})
			return
		}
		if err := st.loadMore(c.ctx); err != nil {
			c.reply(ServerMessage{Type: "error", ID: msg.ID, Error: err.Error()})
		}

	case ActionScrollState:
		if st, ok := c.stream(msg.ID); ok {
			st.setDistance(msg.DistanceFromBottom)
		}

	default:
		c.reply(ServerMessage{Type: "error", ID: msg.ID, Error: "unknown action"})
	}
}

// subscribe authorizes the requested scope, forces owner-bound streams
// onto the caller's own id, and opens the live controller. Subscribing
// again under an existing id replaces the previous stream.
func (c *Client) subscribe(msg ClientMessage) error {
	if msg.ID == "" {
		return errors.New("subscription id is required")
	}

	var st stream
	var err error
	switch msg.Stream {
	case StreamRoomMessages:
		serverID, roomID, ok := strings.Cut(msg.Scope, "/")
		if !ok {
			return errors.New("room scope must be serverId/roomId")
		}
		if err := c.guard.CanAccessRoom(c.ctx, c.UserID, serverID, roomID); err != nil {
			return err
		}
		st, err = openStream(c, msg.ID, msg.Stream, c.sources.RoomMessages, msg.Scope, messageKey, messageOrder)

	case StreamDMMessages:
		if err := c.guard.CanAccessThread(c.ctx, c.UserID, msg.Scope); err != nil {
			return err
		}
		st, err = openStream(c, msg.ID, msg.Stream, c.sources.DMMessages, msg.Scope, messageKey, messageOrder)

	case StreamDMThreads:
		st, err = openStream(c, msg.ID, msg.Stream, c.sources.Threads, c.UserID, threadKey, threadOrder)

	case StreamMedia:
		st, err = openStream(c, msg.ID, msg.Stream, c.sources.MediaFiles, c.UserID, mediaKey, mediaOrder)

	case StreamFriendRequests:
		st, err = openStream(c, msg.ID, msg.Stream, c.sources.FriendRequests, c.UserID, requestKey, requestOrder)

	case StreamPosts:
		st, err = openStream(c, msg.ID, msg.Stream, c.sources.Posts, msg.Scope, postKey, postOrder)

	default:
		return errors.New("unknown stream")
	}
	if err != nil {
		return err
	}

	c.mu.Lock()
	prev := c.streams[msg.ID]
	c.streams[msg.ID] = st
	c.mu.Unlock()
	if prev != nil {
		prev.close()
	}
	return nil
}

func (c *Client) stream(id string) (stream, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	st, ok := c.streams[id]
	return st, ok
}

func (c *Client) closeStreams() {
	c.mu.Lock()
	streams := c.streams
	c.streams = make(map[string]stream)
	c.mu.Unlock()
	for _, st := range streams {
		st.close()
	}
}

// reply enqueues a frame, dropping it when the writer is backed up; a
// consumer that stopped draining is reaped by the ping deadline.
func (c *Client) reply(msg ServerMessage) {
	select {
	case c.send <- msg:
	default:
		log.Warn().Str("uid", c.UserID).Msg("websocket send buffer full, frame dropped")
	}
}

// liveStream binds a livelist controller to one subscription id and
// forwards every applied window as a snapshot frame.
type liveStream[T any] struct {
	client *Client
	id     string
	name   string
	ctrl   *livelist.Controller[T]

	mu       sync.Mutex
	distance float64
}

func openStream[T any](c *Client, id, name string, src livelist.Source[T], scope string, key func(T) string, order func(T) time.Time) (stream, error) {
	ls := &liveStream[T]{client: c, id: id, name: name}
	ls.ctrl = livelist.New(src, livelist.DefaultPageSize, key, order, func(ev livelist.Event[T]) {
		ls.snapshot(ev.Rows, ev.WasEmpty)
	})
	if err := ls.ctrl.SetScope(c.ctx, scope); err != nil {
		return nil, err
	}
	return ls, nil
}

func (ls *liveStream[T]) snapshot(rows []T, wasEmpty bool) {
	hasMore := ls.ctrl.HasMore()
	ls.client.reply(ServerMessage{
		Type:           "snapshot",
		ID:             ls.id,
		Stream:         ls.name,
		Rows:           rows,
		HasMore:        &hasMore,
		ScrollToBottom: ls.client.policy.ShouldPin(ls.getDistance(), wasEmpty),
	})
}

// loadMore pulls one older page and pushes the grown list; backfill
// never triggers autoscroll, the reader is looking at history.
func (ls *liveStream[T]) loadMore(ctx context.Context) error {
	if err := ls.ctrl.LoadMore(ctx); err != nil {
		return err
	}
	hasMore := ls.ctrl.HasMore()
	ls.client.reply(ServerMessage{
		Type:    "snapshot",
		ID:      ls.id,
		Stream:  ls.name,
		Rows:    ls.ctrl.Rows(),
		HasMore: &hasMore,
	})
	return nil
}

func (ls *liveStream[T]) setDistance(d float64) {
	ls.mu.Lock()
	ls.distance = d
	ls.mu.Unlock()
}

func (ls *liveStream[T]) getDistance() float64 {
	ls.mu.Lock()
	defer ls.mu.Unlock()
	return ls.distance
}

func (ls *liveStream[T]) close() {
	ls.ctrl.Close()
}

func messageKey(m models.Message) string { return m.ID }

func messageOrder(m models.Message) time.Time { return m.CreatedAt }

func threadKey(t models.DMThread) string { return t.ID }

func threadOrder(t models.DMThread) time.Time { return t.LastMessageAt }

func mediaKey(f models.MediaFile) string { return f.ID }

func mediaOrder(f models.MediaFile) time.Time { return f.UploadedAt }

func postKey(p models.Post) string { return p.ID }

func postOrder(p models.Post) time.Time { return p.CreatedAt }

func requestKey(r models.FriendRequest) string { return r.ID }

func requestOrder(r models.FriendRequest) time.Time { return r.CreatedAt }
