package gpio

import "time"

// ButtonEvent is the outcome of one button sample.
type ButtonEvent int

const (
	BtnNone ButtonEvent = iota
	BtnClick
	BtnLongPress
)

// ButtonFSM debounces one push button. It is fed raw pressed/released
// samples with their timestamps and emits at most one of Click or
// LongPress per physical press: a press must stay stable for the
// debounce window to arm, releasing an armed press before the long-press
// threshold yields Click, and crossing the threshold yields LongPress
// immediately (the later release then emits nothing).
//
// The FSM never reads the wall clock itself, so tests drive it with
// synthetic timestamps.
type ButtonFSM struct {
	debounce  time.Duration
	longPress time.Duration

	down      bool
	pressedAt time.Time
	armed     bool
	fired     bool
}

// NewButtonFSM creates a button FSM with the given debounce window and
// long-press threshold.
func NewButtonFSM(debounce, longPress time.Duration) *ButtonFSM {
	return &ButtonFSM{debounce: debounce, longPress: longPress}
}

// Sample feeds one level sample taken at the given time.
func (f *ButtonFSM) Sample(pressed bool, at time.Time) ButtonEvent {
	if pressed {
		if !f.down {
			// Edge down; bounce restarts the window from here.
			f.down = true
			f.pressedAt = at
			f.armed = false
			f.fired = false
			return BtnNone
		}
		held := at.Sub(f.pressedAt)
		if !f.armed && held >= f.debounce {
			f.armed = true
		}
		if f.armed && !f.fired && held >= f.longPress {
			f.fired = true
			return BtnLongPress
		}
		return BtnNone
	}

	if !f.down {
		return BtnNone
	}
	f.down = false
	if f.armed && !f.fired {
		f.armed = false
		return BtnClick
	}
	f.armed = false
	return BtnNone
}
