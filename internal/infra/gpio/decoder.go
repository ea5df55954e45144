// Package gpio provides the hardware input debouncer: quadrature
// decoding for the rotary encoder and debounced click/long-press
// detection for the push buttons, sampled from GPIO lines.
package gpio

// Direction is the outcome of one quadrature transition.
type Direction int

const (
	DirNone Direction = iota
	DirCW
	DirCCW
)

// Quadrature decoder states and emit flags. The table is the classic
// full-step gray-code state machine: a detent is emitted only when a
// complete, correctly-ordered sequence has been observed, so contact
// bounce flips between sub-states without ever emitting. An invalid
// transition silently resets to start; that is physical bounce, not an
// error to surface.
const (
	rStart uint8 = iota
	rCWFinal
	rCWBegin
	rCWNext
	rCCWBegin
	rCCWFinal
	rCCWNext

	emitCW  uint8 = 0x10
	emitCCW uint8 = 0x20
)

// fullStepTable[state][pinstate] with pinstate = B<<1 | A.
var fullStepTable = [7][4]uint8{
	{rStart, rCWBegin, rCCWBegin, rStart},
	{rCWNext, rStart, rCWFinal, rStart | emitCW},
	{rCWNext, rCWBegin, rStart, rStart},
	{rCWNext, rCWBegin, rCWFinal, rStart},
	{rCCWNext, rStart, rCCWBegin, rStart},
	{rCCWNext, rCCWFinal, rStart, rStart | emitCCW},
	{rCCWNext, rCCWFinal, rCCWBegin, rStart},
}

// Decoder tracks the two-bit quadrature phase of a rotary encoder.
// The zero value is ready to use.
type Decoder struct {
	state uint8
}

// Transition feeds the current levels of the A and B channels and
// returns the detent direction completed by this sample, if any.
func (d *Decoder) Transition(a, b bool) Direction {
	pinstate := 0
	if a {
		pinstate |= 1
	}
	if b {
		pinstate |= 2
	}
	d.state = fullStepTable[d.state&0x0f][pinstate]
	switch d.state & 0x30 {
	case emitCW:
		return DirCW
	case emitCCW:
		return DirCCW
	default:
		return DirNone
	}
}
