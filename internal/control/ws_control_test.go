package control

import (
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/frudas24/webspatium/internal/canvasctl"
	"github.com/gorilla/websocket"
)

// dial opens a websocket to the test server.
func dial(t *testing.T, srv *httptest.Server) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	return conn
}

// readFrame reads one frame with a deadline.
func readFrame(t *testing.T, conn *websocket.Conn) Frame {
	t.Helper()
	_ = conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	var frame Frame
	if err := conn.ReadJSON(&frame); err != nil {
		t.Fatalf("read frame: %v", err)
	}
	return frame
}

// TestServer_FrameOnConnectAndDrag verifies the websocket round trip.
func TestServer_FrameOnConnectAndDrag(t *testing.T) {
	w, sess, _ := newTestWidget(t)
	srv := httptest.NewServer(NewServer(w, sess, ViewerReplace))
	defer srv.Close()

	conn := dial(t, srv)
	defer conn.Close()

	if frame := readFrame(t, conn); frame.T != "frame" || len(frame.Ops) == 0 {
		t.Fatalf("unexpected initial frame: %+v", frame)
	}
	if sess.Snapshot().Viewers != 1 {
		t.Fatalf("expected 1 viewer")
	}

	if err := conn.WriteJSON(Message{T: "down", ClientX: 50, ClientY: 50}); err != nil {
		t.Fatalf("write: %v", err)
	}
	if frame := readFrame(t, conn); !frame.ScrollLocked {
		t.Fatalf("expected scroll locked after down")
	}
	if err := conn.WriteJSON(Message{T: "move", ClientX: 100, ClientY: 100}); err != nil {
		t.Fatalf("write: %v", err)
	}
	frame := readFrame(t, conn)
	if frame.Source.X > 1e-9 || frame.Source.X < -1e-9 {
		t.Fatalf("expected source at origin, got %+v", frame.Source)
	}
}

// TestServer_ReplacePolicy verifies a new viewer takes over.
func TestServer_ReplacePolicy(t *testing.T) {
	w, sess, _ := newTestWidget(t)
	srv := httptest.NewServer(NewServer(w, sess, ViewerReplace))
	defer srv.Close()

	first := dial(t, srv)
	defer first.Close()
	readFrame(t, first)

	second := dial(t, srv)
	defer second.Close()
	readFrame(t, second)

	_ = first.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, _, err := first.ReadMessage()
	if !websocket.IsCloseError(err, websocket.ClosePolicyViolation) {
		t.Fatalf("expected policy violation close, got %v", err)
	}
}

// TestServer_ReplaceMidDragEndsDrag verifies a takeover ends the old viewer's drag
// so the newcomer's hover does not move the source.
func TestServer_ReplaceMidDragEndsDrag(t *testing.T) {
	w, sess, _ := newTestWidget(t)
	srv := httptest.NewServer(NewServer(w, sess, ViewerReplace))
	defer srv.Close()

	first := dial(t, srv)
	defer first.Close()
	start := readFrame(t, first).Source

	if err := first.WriteJSON(Message{T: "down", ClientX: 50, ClientY: 50}); err != nil {
		t.Fatalf("write: %v", err)
	}
	if frame := readFrame(t, first); !frame.ScrollLocked {
		t.Fatalf("expected scroll locked after down")
	}

	second := dial(t, srv)
	defer second.Close()
	if frame := readFrame(t, second); frame.ScrollLocked {
		t.Fatalf("expected takeover frame unlocked, got %+v", frame)
	}
	snap := sess.Snapshot()
	if snap.ScrollLocked || snap.Selection.Index != canvasctl.NoSelection {
		t.Fatalf("expected drag ended, got selection %+v scrollLocked %v", snap.Selection, snap.ScrollLocked)
	}

	if err := second.WriteJSON(Message{T: "move", ClientX: 190, ClientY: 190}); err != nil {
		t.Fatalf("write: %v", err)
	}
	frame := readFrame(t, second)
	if frame.Source != start {
		t.Fatalf("expected source %+v, got %+v", start, frame.Source)
	}
	if frame.ScrollLocked {
		t.Fatalf("expected hover to leave scroll unlocked")
	}
}

// TestServer_RejectPolicy verifies a second viewer is refused.
func TestServer_RejectPolicy(t *testing.T) {
	w, sess, _ := newTestWidget(t)
	srv := httptest.NewServer(NewServer(w, sess, ViewerReject))
	defer srv.Close()

	first := dial(t, srv)
	defer first.Close()
	readFrame(t, first)

	second := dial(t, srv)
	defer second.Close()
	_ = second.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, _, err := second.ReadMessage()
	if !websocket.IsCloseError(err, websocket.ClosePolicyViolation) {
		t.Fatalf("expected policy violation close, got %v", err)
	}
}
