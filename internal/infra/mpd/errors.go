package mpd

import (
	"context"
	"net"

	"github.com/cockroachdb/errors"
)

// Errors
var (
	ErrDaemonUnavailable = errors.New("playback daemon unavailable")
	ErrStreamError       = errors.New("stream error")
	ErrCommandTimeout    = errors.New("command timed out")
)

// Class is the failure classification surfaced to the coordinator.
type Class int

const (
	ClassNone Class = iota
	ClassDaemonUnavailable
	ClassStreamError
	ClassCommandTimeout
)

// String returns the string representation of the class.
func (c Class) String() string {
	switch c {
	case ClassNone:
		return "none"
	case ClassDaemonUnavailable:
		return "daemon_unavailable"
	case ClassStreamError:
		return "stream_error"
	case ClassCommandTimeout:
		return "command_timeout"
	default:
		return "unknown"
	}
}

// Label returns the short text shown on the display for the class.
func (c Class) Label() string {
	switch c {
	case ClassDaemonUnavailable:
		return "DAEMON DOWN"
	case ClassStreamError:
		return "STREAM ERROR"
	case ClassCommandTimeout:
		return "TIMEOUT"
	default:
		return ""
	}
}

// Classify maps an adapter error onto the failure taxonomy. The adapter
// never returns an unclassifiable failure: anything that is not a
// connectivity or deadline problem came back from the daemon itself and
// is treated as a stream error.
func Classify(err error) Class {
	switch {
	case err == nil:
		return ClassNone
	case errors.Is(err, ErrCommandTimeout),
		errors.Is(err, context.DeadlineExceeded),
		errors.Is(err, context.Canceled):
		return ClassCommandTimeout
	case errors.Is(err, ErrDaemonUnavailable):
		return ClassDaemonUnavailable
	case errors.Is(err, ErrStreamError):
		return ClassStreamError
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		if netErr.Timeout() {
			return ClassCommandTimeout
		}
		return ClassDaemonUnavailable
	}
	var opErr *net.OpError
	if errors.As(err, &opErr) {
		return ClassDaemonUnavailable
	}

	return ClassStreamError
}
