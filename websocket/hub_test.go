package websocket

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHubSlowConsumerDropsFrameWithoutClosingSend(t *testing.T) {
	hub := NewHub()
	go hub.Run()

	c := NewClient(hub, nil, "u1", Sources{}, stubGuard{})
	hub.Register(c)

	for i := 0; i < cap(c.send); i++ {
		c.send <- ServerMessage{Type: "snapshot"}
	}
	hub.Push("u1", ServerMessage{Type: "notification"})
	// a second push only lands once the first was fully handled
	hub.Push("u1", ServerMessage{Type: "notification"})

	// a live update arriving after the overflow must still be safe
	assert.NotPanics(t, func() { c.reply(ServerMessage{Type: "snapshot"}) })

	<-c.send
	c.reply(ServerMessage{Type: "snapshot"})
	assert.Len(t, c.send, cap(c.send), "send stays open and writable after an overflow")
}

func TestHubUnregisterClosesSend(t *testing.T) {
	hub := NewHub()
	go hub.Run()

	c := NewClient(hub, nil, "u1", Sources{}, stubGuard{})
	hub.Register(c)
	hub.Unregister(c)
	hub.Push("u1", ServerMessage{Type: "notification"})

	_, ok := <-c.send
	assert.False(t, ok, "unregister is the only place that closes send")
}
