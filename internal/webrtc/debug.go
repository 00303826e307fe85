package webrtc

import (
	"log"
	"sync/atomic"
)

// debugChannel controls whether verbose data channel logs are emitted.
var debugChannel atomic.Bool

// SetDebugLogging enables/disables verbose WebRTC debug logs.
func SetDebugLogging(enabled bool) {
	debugChannel.Store(enabled)
}

// debugf logs only when debug logging is enabled.
func debugf(format string, args ...any) {
	if debugChannel.Load() {
		log.Printf(format, args...)
	}
}
