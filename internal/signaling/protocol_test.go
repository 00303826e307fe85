package signaling

import (
	"encoding/json"
	"strings"
	"testing"
)

// TestProtocol_ICE verifies decoding an ICE candidate message.
func TestProtocol_ICE(t *testing.T) {
	var msg Message
	payload := `{"t":"ice","candidate":{"candidate":"candidate:1 1 UDP 2122252543 192.0.2.3 54400 typ host","sdpMid":"0"}}`
	if err := json.Unmarshal([]byte(payload), &msg); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	if msg.T != "ice" || msg.Candidate == nil || msg.Candidate.SDPMid == nil || *msg.Candidate.SDPMid != "0" {
		t.Fatalf("unexpected message: %+v", msg)
	}
}

// TestProtocol_AnswerOmitsCandidate verifies answers are encoded without candidate.
func TestProtocol_AnswerOmitsCandidate(t *testing.T) {
	data, err := json.Marshal(Message{T: "answer", SDP: "v=0"})
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	if strings.Contains(string(data), "candidate") {
		t.Fatalf("expected no candidate field, got %s", data)
	}
}
