// Package webrtc carries widget control messages over a WebRTC data channel.
package webrtc

import (
	"fmt"
	"log"
	"sync"

	"github.com/pion/interceptor"
	"github.com/pion/webrtc/v3"
)

// ControlLabel is the data channel label the viewer opens for pointer events.
const ControlLabel = "control"

// MessageHandler applies a raw control message and returns an optional reply.
type MessageHandler interface {
	HandleJSON(data []byte) ([]byte, bool, error)
}

// Publisher manages the WebRTC peer connection that carries the control channel.
type Publisher struct {
	mu      sync.Mutex
	api     *webrtc.API
	peer    *webrtc.PeerConnection
	handler MessageHandler
	onOpen  func()
	onClose func()
}

// NewPublisher initializes a WebRTC publisher with default codecs/interceptors.
func NewPublisher(handler MessageHandler) (*Publisher, error) {
	if handler == nil {
		return nil, fmt.Errorf("message handler is required")
	}
	media := &webrtc.MediaEngine{}
	if err := media.RegisterDefaultCodecs(); err != nil {
		return nil, fmt.Errorf("register codecs: %w", err)
	}

	interceptors := &interceptor.Registry{}
	if err := webrtc.RegisterDefaultInterceptors(media, interceptors); err != nil {
		return nil, fmt.Errorf("register interceptors: %w", err)
	}

	api := webrtc.NewAPI(
		webrtc.WithMediaEngine(media),
		webrtc.WithInterceptorRegistry(interceptors),
	)

	return &Publisher{api: api, handler: handler}, nil
}

// OnChannel registers callbacks fired when the control channel opens and closes.
func (p *Publisher) OnChannel(open, closed func()) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.onOpen = open
	p.onClose = closed
}

// NewPeer creates a new peer connection that accepts the control channel.
func (p *Publisher) NewPeer() (*webrtc.PeerConnection, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.peer != nil {
		_ = p.peer.Close()
		p.peer = nil
	}

	peer, err := p.api.NewPeerConnection(webrtc.Configuration{})
	if err != nil {
		return nil, err
	}

	peer.OnDataChannel(func(dc *webrtc.DataChannel) {
		if dc.Label() != ControlLabel {
			debugf("webrtc: ignoring data channel %q", dc.Label())
			return
		}
		p.attachChannel(dc)
	})

	p.peer = peer
	return peer, nil
}

// ClosePeer closes the current peer connection.
func (p *Publisher) ClosePeer() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.peer != nil {
		_ = p.peer.Close()
		p.peer = nil
	}
}

// attachChannel wires a control channel to the message handler.
func (p *Publisher) attachChannel(dc *webrtc.DataChannel) {
	p.mu.Lock()
	onOpen, onClose := p.onOpen, p.onClose
	p.mu.Unlock()

	dc.OnOpen(func() {
		debugf("webrtc: control channel open id=%v", dc.ID())
		if onOpen != nil {
			onOpen()
		}
	})
	dc.OnClose(func() {
		debugf("webrtc: control channel closed")
		if onClose != nil {
			onClose()
		}
	})
	dc.OnMessage(func(msg webrtc.DataChannelMessage) {
		reply, ok, err := p.handler.HandleJSON(msg.Data)
		if err != nil {
			log.Printf("webrtc: %v", err)
			return
		}
		if !ok {
			return
		}
		if err := dc.SendText(string(reply)); err != nil {
			debugf("webrtc: send frame: %v", err)
		}
	})
}
