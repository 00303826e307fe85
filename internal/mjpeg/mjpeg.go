// Package mjpeg serves the widget preview as a multipart JPEG stream.
package mjpeg

import (
	"bytes"
	"fmt"
	"image"
	"image/jpeg"
	"net/http"
	"strconv"
	"sync"
	"time"
)

const (
	boundary       = "frame"
	defaultQuality = 80
	keepAlive      = 1 * time.Second
)

// Stream broadcasts JPEG frames to connected HTTP clients.
// Frames published inside the minimum interval are coalesced and the latest
// one is sent when the interval elapses.
type Stream struct {
	mu          sync.RWMutex
	subs        map[chan []byte]struct{}
	last        []byte
	quality     int
	minInterval time.Duration
	lastPush    time.Time
	trailing    *time.Timer
}

// NewStream creates a stream with a minimum publish interval and JPEG quality.
func NewStream(minInterval time.Duration, quality int) *Stream {
	if quality <= 0 || quality > 100 {
		quality = defaultQuality
	}
	return &Stream{
		subs:        make(map[chan []byte]struct{}),
		quality:     quality,
		minInterval: minInterval,
	}
}

// PublishImage encodes img and publishes it.
func (s *Stream) PublishImage(img image.Image) error {
	s.mu.RLock()
	quality := s.quality
	s.mu.RUnlock()
	jpg, err := EncodeImage(img, quality)
	if err != nil {
		return err
	}
	s.Publish(jpg)
	return nil
}

// Publish sends a JPEG frame to all subscribers with throttling.
func (s *Stream) Publish(jpg []byte) {
	now := time.Now()
	frame := append([]byte(nil), jpg...)
	s.mu.Lock()
	defer s.mu.Unlock()
	s.last = frame
	if wait := s.minInterval - now.Sub(s.lastPush); s.minInterval > 0 && wait > 0 {
		if s.trailing == nil {
			s.trailing = time.AfterFunc(wait, s.flushTrailing)
		}
		return
	}
	s.broadcastLocked(frame, now)
}

// Subscribers returns the number of connected clients.
func (s *Stream) Subscribers() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.subs)
}

// Handler serves the MJPEG multipart stream to the HTTP client.
func (s *Stream) Handler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "multipart/x-mixed-replace; boundary="+boundary)
	w.Header().Set("Cache-Control", "no-cache, no-store, must-revalidate")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("Pragma", "no-cache")

	fl, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "streaming unsupported", http.StatusInternalServerError)
		return
	}

	ch := s.subscribe()
	defer s.unsubscribe(ch)

	keep := time.NewTicker(keepAlive)
	defer keep.Stop()

	for {
		select {
		case <-r.Context().Done():
			return
		case jpg := <-ch:
			if err := writePart(w, jpg); err != nil {
				return
			}
			fl.Flush()
		case <-keep.C:
			s.mu.RLock()
			j := append([]byte(nil), s.last...)
			s.mu.RUnlock()
			if len(j) > 0 {
				if err := writePart(w, j); err != nil {
					return
				}
				fl.Flush()
			}
		}
	}
}

// EncodeImage encodes img as a JPEG buffer.
func EncodeImage(img image.Image, quality int) ([]byte, error) {
	if img == nil {
		return nil, fmt.Errorf("nil image")
	}
	if quality <= 0 || quality > 100 {
		quality = defaultQuality
	}
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: quality}); err != nil {
		return nil, fmt.Errorf("encode jpeg: %w", err)
	}
	return buf.Bytes(), nil
}

// flushTrailing broadcasts the frame held back by throttling.
func (s *Stream) flushTrailing() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.trailing = nil
	if len(s.last) == 0 {
		return
	}
	s.broadcastLocked(s.last, time.Now())
}

// broadcastLocked replaces any queued frame in each subscriber channel.
func (s *Stream) broadcastLocked(frame []byte, now time.Time) {
	s.lastPush = now
	for ch := range s.subs {
		select {
		case <-ch:
		default:
		}
		select {
		case ch <- frame:
		default:
		}
	}
}

// subscribe registers a new client for MJPEG frames.
func (s *Stream) subscribe() chan []byte {
	ch := make(chan []byte, 1)
	s.mu.Lock()
	s.subs[ch] = struct{}{}
	if len(s.last) > 0 {
		ch <- append([]byte(nil), s.last...)
	}
	s.mu.Unlock()
	return ch
}

// unsubscribe removes a client subscription.
func (s *Stream) unsubscribe(ch chan []byte) {
	s.mu.Lock()
	delete(s.subs, ch)
	close(ch)
	s.mu.Unlock()
}

// writePart writes a single JPEG frame to the multipart response.
func writePart(w http.ResponseWriter, jpg []byte) error {
	_, _ = w.Write([]byte("\r\n--" + boundary + "\r\n"))
	_, _ = w.Write([]byte("Content-Type: image/jpeg\r\n"))
	_, _ = w.Write([]byte("Content-Length: " + strconv.Itoa(len(jpg)) + "\r\n\r\n"))
	_, err := w.Write(jpg)
	return err
}
