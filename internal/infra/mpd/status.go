package mpd

import (
	"strconv"

	gompd "github.com/fhs/gompd/v2/mpd"
)

// PlaybackState represents the daemon playback state.
type PlaybackState int

const (
	StateStopped PlaybackState = iota
	StatePlaying
	StateBuffering
	StateError
)

// String returns the string representation of the state.
func (s PlaybackState) String() string {
	switch s {
	case StateStopped:
		return "stopped"
	case StatePlaying:
		return "playing"
	case StateBuffering:
		return "buffering"
	case StateError:
		return "error"
	default:
		return "unknown"
	}
}

// Status is the last-known daemon snapshot. The adapter owns it; the
// coordinator only keeps the most recent copy.
type Status struct {
	State  PlaybackState
	Song   *int // Playlist position of the current song, nil when stopped
	Volume int  // 0..100
	Err    string
}

// SameShape reports whether two snapshots are indistinguishable for the
// display: state, song and volume match.
func (s Status) SameShape(o Status) bool {
	if s.State != o.State || s.Volume != o.Volume || s.Err != o.Err {
		return false
	}
	if (s.Song == nil) != (o.Song == nil) {
		return false
	}
	return s.Song == nil || *s.Song == *o.Song
}

// parseStatus converts raw MPD status attributes into a Status snapshot.
// MPD has no explicit buffering state: "play" before any audio format has
// been decoded is reported as buffering.
func parseStatus(attrs gompd.Attrs) Status {
	st := Status{Volume: -1}

	if v, err := strconv.Atoi(attrs["volume"]); err == nil {
		st.Volume = v
	}
	if pos, err := strconv.Atoi(attrs["song"]); err == nil {
		st.Song = &pos
	}
	st.Err = attrs["error"]

	switch attrs["state"] {
	case "play":
		if attrs["audio"] == "" {
			st.State = StateBuffering
		} else {
			st.State = StatePlaying
		}
	default:
		// "stop", "pause" and anything unrecognized read as stopped; a
		// paused network stream holds no resumable position.
		st.State = StateStopped
	}
	if st.Err != "" {
		st.State = StateError
	}

	return st
}
