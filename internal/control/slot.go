package control

import (
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

// ViewerPolicy controls how additional viewers are handled.
type ViewerPolicy int

const (
	// ViewerReject rejects new connections when one is active.
	ViewerReject ViewerPolicy = iota
	// ViewerReplace closes the active connection when a new one arrives.
	ViewerReplace
)

// ErrViewerActive is returned by Accept under ViewerReject when a viewer is connected.
var ErrViewerActive = errors.New("viewer already connected")

// errNotActive is returned when writing to a connection that lost its slot.
var errNotActive = errors.New("connection not active")

// Slot holds the single active websocket of a server and serializes writes to it.
type Slot struct {
	mu      sync.Mutex
	writeMu sync.Mutex
	policy  ViewerPolicy
	conn    *websocket.Conn
}

// NewSlot returns an empty slot using policy for newcomers.
func NewSlot(policy ViewerPolicy) *Slot {
	return &Slot{policy: policy}
}

// Accept makes conn the active connection, closing the previous one under ViewerReplace.
// It reports whether a previous connection was displaced; the caller owns
// cleanup of that viewer's state since its own Release will report false.
func (s *Slot) Accept(conn *websocket.Conn) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	displaced := false
	if s.conn != nil {
		if s.policy != ViewerReplace {
			return false, ErrViewerActive
		}
		Reject(s.conn, "replaced by another viewer")
		displaced = true
	}
	s.conn = conn
	return displaced, nil
}

// Active reports whether conn still owns the slot.
func (s *Slot) Active(conn *websocket.Conn) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.conn == conn
}

// Release closes conn and frees the slot if conn still owns it.
// It reports whether conn was the active connection.
func (s *Slot) Release(conn *websocket.Conn) bool {
	s.mu.Lock()
	active := s.conn == conn
	if active {
		s.conn = nil
	}
	s.mu.Unlock()
	_ = conn.Close()
	return active
}

// Send writes v as JSON when conn still owns the slot.
func (s *Slot) Send(conn *websocket.Conn, v any) error {
	if !s.Active(conn) {
		return errNotActive
	}
	s.writeMu.Lock()
	defer s.writeMu.Unlock()
	return conn.WriteJSON(v)
}

// Reject sends a policy violation close and closes the socket.
func Reject(conn *websocket.Conn, reason string) {
	message := websocket.FormatCloseMessage(websocket.ClosePolicyViolation, reason)
	_ = conn.WriteControl(websocket.CloseMessage, message, time.Now().Add(time.Second))
	_ = conn.Close()
}

// NewUpgrader returns the upgrader shared by the websocket endpoints.
func NewUpgrader() websocket.Upgrader {
	return websocket.Upgrader{
		ReadBufferSize:  4096,
		WriteBufferSize: 4096,
		CheckOrigin:     func(*http.Request) bool { return true },
	}
}
