package control

import (
	"log"
	"net/http"

	"github.com/frudas24/webspatium/internal/session"
	"github.com/gorilla/websocket"
)

// Server feeds viewer pointer messages into the widget and streams frames back.
type Server struct {
	upgrader websocket.Upgrader
	slot     *Slot
	widget   *Widget
	session  *session.Session
}

// NewServer creates a control websocket server.
func NewServer(widget *Widget, sess *session.Session, policy ViewerPolicy) *Server {
	return &Server{
		upgrader: NewUpgrader(),
		slot:     NewSlot(policy),
		widget:   widget,
		session:  sess,
	}
}

// ServeHTTP upgrades the connection, sends the current frame and processes messages.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	displaced, err := s.slot.Accept(conn)
	if err != nil {
		Reject(conn, err.Error())
		return
	}
	if displaced {
		// the previous viewer may have left a drag open
		s.widget.Release()
	}
	s.session.ViewerConnected(session.TransportWebSocket)
	defer s.disconnect(conn)

	if err := s.slot.Send(conn, s.widget.Frame()); err != nil {
		return
	}

	for {
		var msg Message
		if err := conn.ReadJSON(&msg); err != nil {
			return
		}
		frame, ok := s.widget.Handle(msg)
		if !ok {
			continue
		}
		if err := s.slot.Send(conn, frame); err != nil {
			log.Printf("control: %v", err)
			return
		}
	}
}

// disconnect frees the slot and ends any drag the viewer left behind.
func (s *Server) disconnect(conn *websocket.Conn) {
	if s.slot.Release(conn) {
		s.widget.Release()
	}
	s.session.ViewerDisconnected()
}
