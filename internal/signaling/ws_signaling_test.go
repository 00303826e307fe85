package signaling

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/frudas24/webspatium/internal/control"
	pub "github.com/frudas24/webspatium/internal/webrtc"
	"github.com/gorilla/websocket"
	"github.com/pion/webrtc/v3"
)

// failingPeers always fails to create a peer.
type failingPeers struct{}

// NewPeer returns an error.
func (failingPeers) NewPeer() (*webrtc.PeerConnection, error) {
	return nil, errors.New("no peers")
}

// blockingPeers creates plain peers.
type blockingPeers struct{}

// NewPeer returns a default peer connection.
func (blockingPeers) NewPeer() (*webrtc.PeerConnection, error) {
	return webrtc.NewPeerConnection(webrtc.Configuration{})
}

// wsURL converts an httptest URL to a websocket URL.
func wsURL(srv *httptest.Server) string {
	return "ws" + strings.TrimPrefix(srv.URL, "http")
}

// TestServeHTTP_Disabled verifies a nil factory yields 503.
func TestServeHTTP_Disabled(t *testing.T) {
	rec := httptest.NewRecorder()
	NewServer(nil, control.ViewerReplace).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ws/signal", nil))
	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d", rec.Code)
	}
}

// TestServeHTTP_PeerFailureCloses verifies the socket closes when no peer can be created.
func TestServeHTTP_PeerFailureCloses(t *testing.T) {
	srv := httptest.NewServer(NewServer(failingPeers{}, control.ViewerReplace))
	defer srv.Close()

	conn, _, err := websocket.DefaultDialer.Dial(wsURL(srv), nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer conn.Close()
	_ = conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	if _, _, err := conn.ReadMessage(); err == nil {
		t.Fatalf("expected connection closed")
	}
}

// TestServeHTTP_RejectSecondViewer verifies the reject policy.
func TestServeHTTP_RejectSecondViewer(t *testing.T) {
	srv := httptest.NewServer(NewServer(blockingPeers{}, control.ViewerReject))
	defer srv.Close()

	first, _, err := websocket.DefaultDialer.Dial(wsURL(srv), nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer first.Close()
	time.Sleep(100 * time.Millisecond)

	second, _, err := websocket.DefaultDialer.Dial(wsURL(srv), nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer second.Close()
	_ = second.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, _, err = second.ReadMessage()
	if !websocket.IsCloseError(err, websocket.ClosePolicyViolation) {
		t.Fatalf("expected policy violation close, got %v", err)
	}
}

// currentPeer waits until the server holds a peer other than prev.
func currentPeer(t *testing.T, s *Server, prev *webrtc.PeerConnection) *webrtc.PeerConnection {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		s.mu.Lock()
		peer := s.peer
		s.mu.Unlock()
		if peer != nil && peer != prev {
			return peer
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatalf("expected a new peer")
	return nil
}

// TestServeHTTP_ReplaceClosesOldPeer verifies a takeover closes the displaced viewer's peer.
func TestServeHTTP_ReplaceClosesOldPeer(t *testing.T) {
	s := NewServer(blockingPeers{}, control.ViewerReplace)
	srv := httptest.NewServer(s)
	defer srv.Close()

	first, _, err := websocket.DefaultDialer.Dial(wsURL(srv), nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer first.Close()
	old := currentPeer(t, s, nil)

	second, _, err := websocket.DefaultDialer.Dial(wsURL(srv), nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer second.Close()
	next := currentPeer(t, s, old)

	if got := old.SignalingState(); got != webrtc.SignalingStateClosed {
		t.Fatalf("expected displaced peer closed, got %v", got)
	}
	if got := next.SignalingState(); got == webrtc.SignalingStateClosed {
		t.Fatalf("expected new peer open")
	}

	_ = first.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, _, err = first.ReadMessage()
	if !websocket.IsCloseError(err, websocket.ClosePolicyViolation) {
		t.Fatalf("expected policy violation close, got %v", err)
	}
}

// TestAnswerOffer_Empty verifies an empty offer is rejected before touching the peer.
func TestAnswerOffer_Empty(t *testing.T) {
	if _, err := answerOffer(nil, ""); !errors.Is(err, errEmptyOffer) {
		t.Fatalf("expected errEmptyOffer, got %v", err)
	}
}

// TestAnswerOffer_DataChannel verifies a data channel offer gets an answer.
func TestAnswerOffer_DataChannel(t *testing.T) {
	offerer, err := webrtc.NewPeerConnection(webrtc.Configuration{})
	if err != nil {
		t.Fatalf("offerer: %v", err)
	}
	defer offerer.Close()
	if _, err := offerer.CreateDataChannel(pub.ControlLabel, nil); err != nil {
		t.Fatalf("data channel: %v", err)
	}
	offer, err := offerer.CreateOffer(nil)
	if err != nil {
		t.Fatalf("offer: %v", err)
	}

	answerer, err := webrtc.NewPeerConnection(webrtc.Configuration{})
	if err != nil {
		t.Fatalf("answerer: %v", err)
	}
	defer answerer.Close()

	sdp, err := answerOffer(answerer, offer.SDP)
	if err != nil {
		t.Fatalf("answer: %v", err)
	}
	if !strings.Contains(sdp, "webrtc-datachannel") {
		t.Fatalf("expected data channel section in answer")
	}
}
