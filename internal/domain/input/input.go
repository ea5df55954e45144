// Package input provides the debounced logical input event type.
package input

import "time"

// Kind represents a logical input event kind.
type Kind int

const (
	RotateCW  Kind = iota // One clockwise encoder detent
	RotateCCW             // One anti-clockwise encoder detent
	Click                 // Short, debounced button press
	LongPress             // Button held past the long-press threshold
)

// String returns the string representation of the kind.
func (k Kind) String() string {
	switch k {
	case RotateCW:
		return "rotate_cw"
	case RotateCCW:
		return "rotate_ccw"
	case Click:
		return "click"
	case LongPress:
		return "long_press"
	default:
		return "unknown"
	}
}

// Button identifies a physical button line.
type Button int

const (
	ButtonNone Button = iota // Rotation events carry no button
	ButtonKnob               // Push switch on the rotary encoder
	ButtonMenu               // Auxiliary menu/volume button
	ButtonCancel             // Auxiliary cancel button
)

// String returns the string representation of the button.
func (b Button) String() string {
	switch b {
	case ButtonNone:
		return "none"
	case ButtonKnob:
		return "knob"
	case ButtonMenu:
		return "menu"
	case ButtonCancel:
		return "cancel"
	default:
		return "unknown"
	}
}

// Event is one debounced logical input event. Produced by the sampler,
// consumed exactly once by the coordinator.
type Event struct {
	Kind   Kind
	Button Button
	At     time.Time
}
