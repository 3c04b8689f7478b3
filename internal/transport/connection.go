// Package transport is the thin, concrete realization of the external
// inbound-command/outbound-event boundary: gorilla/websocket for the
// duplex per-viewer channel, gorilla/mux for the HTTP surface. It holds
// no game logic — every command is a direct call into internal/registry.
package transport

import (
	"sync"

	"github.com/gorilla/websocket"

	"github.com/anagramthief/core/internal"
)

// Connection adapts one gorilla/websocket connection to the
// registry.Subscriber interface. gorilla/websocket forbids concurrent
// writers on the same connection, so every outbound send goes through
// writeMu.
type Connection struct {
	id   string
	conn *websocket.Conn

	writeMu sync.Mutex

	mu       sync.Mutex
	roomID   string
	isPlayer bool
}

// NewConnection wraps conn for viewer id.
func NewConnection(id string, conn *websocket.Conn) *Connection {
	return &Connection{id: id, conn: conn}
}

// ID implements registry.Subscriber.
func (c *Connection) ID() string { return c.id }

// Send implements registry.Subscriber.
func (c *Connection) Send(msg internal.Message[any]) error {
	c.writeMu.Lock()
	defer c.writeMu.Unlock()
	return c.conn.WriteJSON(msg)
}

// SetRoom records which room this connection is currently attached to
// and whether it joined as a player (vs. a spectator), for bookkeeping
// on disconnect.
func (c *Connection) SetRoom(roomID string, isPlayer bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.roomID = roomID
	c.isPlayer = isPlayer
}

// Room returns the last room this connection attached to, and whether
// it is seated as a player there.
func (c *Connection) Room() (roomID string, isPlayer bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.roomID, c.isPlayer
}

// Close closes the underlying connection.
func (c *Connection) Close() error {
	return c.conn.Close()
}
