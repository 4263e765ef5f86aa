package ws

import (
	"encoding/json"
	"errors"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"mentesana-server/entities"
	"mentesana-server/logger"
	"mentesana-server/metrics"
)

// ErrNotConnected is returned when the user has no open connection.
var ErrNotConnected = errors.New("user not connected")

const writeWait = 5 * time.Second

// Conn is the part of *websocket.Conn the manager uses.
type Conn interface {
	WriteMessage(messageType int, data []byte) error
	SetWriteDeadline(t time.Time) error
	Close() error
}

// client serializes writes; a websocket connection allows one writer.
type client struct {
	mu   sync.Mutex
	conn Conn
}

func (c *client) write(payload []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
	return c.conn.WriteMessage(websocket.TextMessage, payload)
}

// Manager keeps track of active user websocket connections.
type Manager struct {
	mu          sync.RWMutex
	connections map[int64]*client // userID -> conn
}

func NewManager() *Manager {
	return &Manager{connections: make(map[int64]*client)}
}

// Register registers a user connection, replacing any existing one.
func (m *Manager) Register(userID int64, conn Conn) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if old, ok := m.connections[userID]; ok {
		if old.conn != conn {
			_ = old.conn.Close()
		}
	} else {
		metrics.WSConnected()
	}
	m.connections[userID] = &client{conn: conn}
}

// Unregister removes the user's connection if it is still conn.
func (m *Manager) Unregister(userID int64, conn Conn) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if c, ok := m.connections[userID]; ok && c.conn == conn {
		_ = conn.Close()
		delete(m.connections, userID)
		metrics.WSDisconnected()
	}
}

// Send writes a text message to the user if connected.
func (m *Manager) Send(userID int64, payload []byte) error {
	m.mu.RLock()
	c, ok := m.connections[userID]
	m.mu.RUnlock()
	if !ok {
		return ErrNotConnected
	}
	return c.write(payload)
}

// Ping sends a ping control frame on conn while it is still the user's
// registered connection.
func (m *Manager) Ping(userID int64, conn Conn) error {
	m.mu.RLock()
	c, ok := m.connections[userID]
	m.mu.RUnlock()
	if !ok || c.conn != conn {
		return ErrNotConnected
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
	return c.conn.WriteMessage(websocket.PingMessage, nil)
}

// Notify pushes event to the user. Delivery is best effort.
func (m *Manager) Notify(userID int64, event entities.Event) {
	if !m.IsConnected(userID) {
		return
	}
	event.UserID = userID
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now().UTC()
	}
	b, err := json.Marshal(event)
	if err != nil {
		logger.Warn("encode event", "type", event.Type, "err", err)
		return
	}
	if err := m.Send(userID, b); err != nil {
		logger.Debug("event not delivered", "user", userID, "type", event.Type, "err", err)
	}
}

// IsConnected returns whether a user is currently connected.
func (m *Manager) IsConnected(userID int64) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.connections[userID]
	return ok
}

// Count returns the number of connected users.
func (m *Manager) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.connections)
}
