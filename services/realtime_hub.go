package services

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

const (
	wsSendQueue    = 16
	wsPingInterval = 25 * time.Second
	wsWriteTimeout = 5 * time.Second
)

// WSClient is one open notification socket. Writes happen only on its own
// pump goroutine, fed through a bounded queue.
type WSClient struct {
	SessionID string

	conn      *websocket.Conn
	send      chan []byte
	closeOnce sync.Once
}

func NewWSClient(sessionID string, conn *websocket.Conn) *WSClient {
	return &WSClient{SessionID: sessionID, conn: conn, send: make(chan []byte, wsSendQueue)}
}

// RealtimeHub fans notifications out to every open socket of a session.
type RealtimeHub struct {
	mu       sync.RWMutex
	sessions map[string]map[*WSClient]struct{}
}

func NewRealtimeHub() *RealtimeHub {
	return &RealtimeHub{sessions: make(map[string]map[*WSClient]struct{})}
}

// Attach registers c and starts its write pump.
func (h *RealtimeHub) Attach(c *WSClient) {
	h.mu.Lock()
	set, ok := h.sessions[c.SessionID]
	if !ok {
		set = make(map[*WSClient]struct{})
		h.sessions[c.SessionID] = set
	}
	set[c] = struct{}{}
	h.mu.Unlock()

	go c.pump()
}

// Detach unregisters c; its pump closes the connection once the queue drains.
func (h *RealtimeHub) Detach(c *WSClient) {
	h.mu.Lock()
	if set, ok := h.sessions[c.SessionID]; ok {
		delete(set, c)
		if len(set) == 0 {
			delete(h.sessions, c.SessionID)
		}
	}
	h.mu.Unlock()
	c.closeOnce.Do(func() { close(c.send) })
}

func (h *RealtimeHub) Connected(sessionID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.sessions[sessionID])
}

// Broadcast queues payload on every socket of the session and returns how many
// accepted it. A socket whose queue is full misses the message.
func (h *RealtimeHub) Broadcast(sessionID string, payload any) (int, error) {
	msg, err := json.Marshal(payload)
	if err != nil {
		return 0, err
	}
	h.mu.RLock()
	defer h.mu.RUnlock()
	queued := 0
	for c := range h.sessions[sessionID] {
		select {
		case c.send <- msg:
			queued++
		default:
		}
	}
	return queued, nil
}

func (c *WSClient) pump() {
	ping := time.NewTicker(wsPingInterval)
	defer func() {
		ping.Stop()
		_ = c.conn.Close()
	}()
	for {
		select {
		case msg, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(wsWriteTimeout))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, nil)
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				return
			}
		case <-ping.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(wsWriteTimeout))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
