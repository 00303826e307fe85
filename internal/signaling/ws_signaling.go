package signaling

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"sync"

	"github.com/frudas24/webspatium/internal/control"
	pub "github.com/frudas24/webspatium/internal/webrtc"
	"github.com/gorilla/websocket"
	"github.com/pion/webrtc/v3"
)

// PeerFactory creates peer connections for new viewers.
type PeerFactory interface {
	NewPeer() (*webrtc.PeerConnection, error)
}

var _ PeerFactory = (*pub.Publisher)(nil)

var errEmptyOffer = errors.New("empty offer")

// Server negotiates the control data channel over a websocket.
type Server struct {
	upgrader websocket.Upgrader
	slot     *control.Slot
	peers    PeerFactory

	mu   sync.Mutex
	peer *webrtc.PeerConnection
}

// NewServer creates a signaling server. A nil factory disables the endpoint.
func NewServer(peers PeerFactory, policy control.ViewerPolicy) *Server {
	return &Server{
		upgrader: control.NewUpgrader(),
		slot:     control.NewSlot(policy),
		peers:    peers,
	}
}

// ServeHTTP upgrades the request and answers offers until the viewer leaves.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if s.peers == nil {
		http.Error(w, "webrtc disabled", http.StatusServiceUnavailable)
		return
	}

	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	displaced, err := s.slot.Accept(conn)
	if err != nil {
		control.Reject(conn, err.Error())
		return
	}
	if displaced {
		s.closePeer()
	}
	defer s.disconnect(conn)

	peer, err := s.peers.NewPeer()
	if err != nil {
		log.Printf("signaling: new peer: %v", err)
		return
	}
	s.mu.Lock()
	if !s.slot.Active(conn) {
		// displaced while the peer was being built
		s.mu.Unlock()
		_ = peer.Close()
		return
	}
	s.peer = peer
	s.mu.Unlock()

	peer.OnICECandidate(func(c *webrtc.ICECandidate) {
		if c == nil {
			return
		}
		candidate := c.ToJSON()
		_ = s.slot.Send(conn, Message{T: "ice", Candidate: &candidate})
	})

	for {
		var msg Message
		if err := conn.ReadJSON(&msg); err != nil {
			return
		}
		if err := s.handle(conn, peer, msg); err != nil {
			log.Printf("signaling: %v", err)
			return
		}
	}
}

// disconnect frees the slot and closes the viewer's peer if it is still current.
func (s *Server) disconnect(conn *websocket.Conn) {
	if s.slot.Release(conn) {
		s.closePeer()
	}
}

// closePeer closes and forgets the current peer.
func (s *Server) closePeer() {
	s.mu.Lock()
	peer := s.peer
	s.peer = nil
	s.mu.Unlock()
	if peer != nil {
		_ = peer.Close()
	}
}

// handle dispatches one signaling message.
func (s *Server) handle(conn *websocket.Conn, peer *webrtc.PeerConnection, msg Message) error {
	switch msg.T {
	case "offer":
		answer, err := answerOffer(peer, msg.SDP)
		if err != nil {
			return err
		}
		return s.slot.Send(conn, Message{T: "answer", SDP: answer})
	case "ice":
		if msg.Candidate == nil {
			return nil
		}
		return peer.AddICECandidate(*msg.Candidate)
	default:
		return nil
	}
}

// answerOffer applies a remote offer and returns the answer SDP once gathering completes.
func answerOffer(peer *webrtc.PeerConnection, sdp string) (string, error) {
	if sdp == "" {
		return "", errEmptyOffer
	}
	offer := webrtc.SessionDescription{Type: webrtc.SDPTypeOffer, SDP: sdp}
	if err := peer.SetRemoteDescription(offer); err != nil {
		return "", fmt.Errorf("set remote description: %w", err)
	}
	answer, err := peer.CreateAnswer(nil)
	if err != nil {
		return "", fmt.Errorf("create answer: %w", err)
	}
	gathered := webrtc.GatheringCompletePromise(peer)
	if err := peer.SetLocalDescription(answer); err != nil {
		return "", fmt.Errorf("set local description: %w", err)
	}
	<-gathered
	local := peer.LocalDescription()
	if local == nil {
		return "", errors.New("missing local description")
	}
	return local.SDP, nil
}
