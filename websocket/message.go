package websocket

// Stream names a client can subscribe to.
const (
	StreamRoomMessages   = "room_messages"
	StreamDMMessages     = "dm_messages"
	StreamDMThreads      = "dm_threads"
	StreamMedia          = "media"
	StreamPosts          = "posts"
	StreamFriendRequests = "friend_requests"
)

// Client actions.
const (
	ActionSubscribe   = "subscribe"
	ActionUnsubscribe = "unsubscribe"
	ActionLoadMore    = "load_more"
	ActionScrollState = "scroll_state"
)

// ClientMessage is an inbound frame from the client.
type ClientMessage struct {
	Action string `json:"action"`
	// ID names the subscription the action applies to; the client picks
	// it and reuses it for load_more, scroll_state and unsubscribe.
	ID     string `json:"id"`
	Stream string `json:"stream,omitempty"`
	Scope  string `json:"scope,omitempty"`
	// DistanceFromBottom is the viewport's distance from the newest row
	// in pixels, reported with scroll_state.
	DistanceFromBottom float64 `json:"distance_from_bottom,omitempty"`
}

// ServerMessage is an outbound frame to the client.
type ServerMessage struct {
	Type   string `json:"type"` // snapshot, subscribed, unsubscribed, notification, error
	ID     string `json:"id,omitempty"`
	Stream string `json:"stream,omitempty"`

	// Snapshot payload: the full visible list, oldest to newest.
	Rows    any   `json:"rows,omitempty"`
	HasMore *bool `json:"has_more,omitempty"`
	// ScrollToBottom tells the view to pin to the newest row, following
	// the near-bottom autoscroll rule.
	ScrollToBottom bool `json:"scroll_to_bottom,omitempty"`

	// Notification payload.
	Title string            `json:"title,omitempty"`
	Body  string            `json:"body,omitempty"`
	Data  map[string]string `json:"data,omitempty"`

	Error string `json:"error,omitempty"`
}
