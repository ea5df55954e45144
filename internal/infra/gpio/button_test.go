package gpio

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

const (
	testDebounce  = 20 * time.Millisecond
	testLongPress = 800 * time.Millisecond
)

// playback feeds (pressed, offset) samples and collects emitted events.
func playback(f *ButtonFSM, samples []struct {
	pressed bool
	at      time.Duration
}) []ButtonEvent {
	base := time.Unix(1000, 0)
	var out []ButtonEvent
	for _, s := range samples {
		if ev := f.Sample(s.pressed, base.Add(s.at)); ev != BtnNone {
			out = append(out, ev)
		}
	}
	return out
}

func TestButtonFSM(t *testing.T) {
	tests := []struct {
		name    string
		samples []struct {
			pressed bool
			at      time.Duration
		}
		want []ButtonEvent
	}{
		{
			name: "stable press and release is a click",
			samples: []struct {
				pressed bool
				at      time.Duration
			}{
				{true, 0},
				{true, 25 * time.Millisecond},
				{false, 100 * time.Millisecond},
			},
			want: []ButtonEvent{BtnClick},
		},
		{
			name: "release inside debounce window emits nothing",
			samples: []struct {
				pressed bool
				at      time.Duration
			}{
				{true, 0},
				{true, 5 * time.Millisecond},
				{false, 10 * time.Millisecond},
			},
			want: nil,
		},
		{
			name: "hold past threshold is a long press, release adds nothing",
			samples: []struct {
				pressed bool
				at      time.Duration
			}{
				{true, 0},
				{true, 25 * time.Millisecond},
				{true, 900 * time.Millisecond},
				{true, 950 * time.Millisecond},
				{false, time.Second},
			},
			want: []ButtonEvent{BtnLongPress},
		},
		{
			name: "bounce restarts the debounce window",
			samples: []struct {
				pressed bool
				at      time.Duration
			}{
				{true, 0},
				{false, 5 * time.Millisecond},
				{true, 8 * time.Millisecond},
				{true, 40 * time.Millisecond},
				{false, 60 * time.Millisecond},
			},
			want: []ButtonEvent{BtnClick},
		},
		{
			name: "two presses emit two clicks",
			samples: []struct {
				pressed bool
				at      time.Duration
			}{
				{true, 0},
				{true, 30 * time.Millisecond},
				{false, 50 * time.Millisecond},
				{true, 200 * time.Millisecond},
				{true, 230 * time.Millisecond},
				{false, 260 * time.Millisecond},
			},
			want: []ButtonEvent{BtnClick, BtnClick},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := NewButtonFSM(testDebounce, testLongPress)
			assert.Equal(t, tt.want, playback(f, tt.samples))
		})
	}
}

func TestButtonFSM_NeverBothPerPress(t *testing.T) {
	f := NewButtonFSM(testDebounce, testLongPress)
	base := time.Unix(1000, 0)

	var clicks, longs int
	for ms := 0; ms <= 1200; ms += 5 {
		switch f.Sample(ms < 1000, base.Add(time.Duration(ms)*time.Millisecond)) {
		case BtnClick:
			clicks++
		case BtnLongPress:
			longs++
		}
	}

	assert.Equal(t, 0, clicks)
	assert.Equal(t, 1, longs)
}
