// Package coordinator provides the playback control state machine.
//
// A single goroutine owns the UI state and consumes one serialized
// stream of events from three concurrent sources: debounced input,
// periodic daemon status polls, and completions of in-flight daemon
// commands. Nothing else reads or writes the state, so it needs no
// locks.
package coordinator

import (
	"time"

	"spindle/internal/infra/mpd"
)

// Mode represents the control mode.
type Mode int

const (
	ModeBrowsing Mode = iota // Scrolling the station list
	ModePlaying              // A station is selected and a play command has been issued
	ModeVolume               // Rotation adjusts volume instead of station
)

// String returns the string representation of the mode.
func (m Mode) String() string {
	switch m {
	case ModeBrowsing:
		return "browsing"
	case ModePlaying:
		return "playing"
	case ModeVolume:
		return "volume"
	default:
		return "unknown"
	}
}

// uiState is the coordinator's exclusively-owned state. Mutated only by
// the event-handling step of the coordinator goroutine.
type uiState struct {
	mode     Mode
	selected int // Always a valid station list index

	volume       int  // Last known or optimistic volume
	volumeReturn Mode // Mode to restore when leaving ModeVolume

	status mpd.Status // Last-received daemon snapshot

	// Error overlay over the current mode. Cleared by deadline or the
	// next input event.
	overlay      string
	overlayUntil time.Time

	lastInputAt time.Time
	clock       string // Title bar clock, set only while idle
}

// clearOverlay drops the overlay. Reports whether there was one.
func (s *uiState) clearOverlay() bool {
	if s.overlay == "" {
		return false
	}
	s.overlay = ""
	s.overlayUntil = time.Time{}
	return true
}

// setOverlay shows a classification label until the deadline.
func (s *uiState) setOverlay(label string, until time.Time) {
	s.overlay = label
	s.overlayUntil = until
}
