package gpio

import (
	"context"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/creasty/defaults"
	"github.com/go-playground/validator/v10"
	"github.com/mitchellh/mapstructure"
	zlog "github.com/rs/zerolog/log"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpioreg"

	"spindle/internal/domain/input"
)

// Settings is the gpio backend configuration, decoded from the free-form
// input.settings block.
type Settings struct {
	PinA      string `mapstructure:"pin_a" validate:"required"`
	PinB      string `mapstructure:"pin_b" validate:"required"`
	PinKnob   string `mapstructure:"pin_knob" validate:"required"`
	PinMenu   string `mapstructure:"pin_menu" validate:"required"`
	PinCancel string `mapstructure:"pin_cancel" validate:"required"`

	PollMs      int `mapstructure:"poll_ms" default:"5" validate:"gte=1,lte=50"`
	DebounceMs  int `mapstructure:"debounce_ms" default:"20" validate:"gte=1,lte=200"`
	LongPressMs int `mapstructure:"long_press_ms" default:"800" validate:"gte=200,lte=5000"`
}

// DecodeSettings decodes, defaults and validates a settings map.
func DecodeSettings(settings map[string]any) (Settings, error) {
	var s Settings
	if err := mapstructure.Decode(settings, &s); err != nil {
		return s, errors.Wrap(err, "failed to decode input settings")
	}
	if err := defaults.Set(&s); err != nil {
		return s, errors.Wrap(err, "failed to set defaults")
	}
	if err := validator.New().Struct(s); err != nil {
		return s, errors.Wrap(err, "input settings validation failed")
	}
	return s, nil
}

// Pins holds the five input lines. All are read with internal pull-ups;
// a line reads low while its contact is closed.
type Pins struct {
	A      gpio.PinIO
	B      gpio.PinIO
	Knob   gpio.PinIO
	Menu   gpio.PinIO
	Cancel gpio.PinIO
}

// OpenPins resolves and configures the pins named in the settings.
// periph host.Init must have been called.
func OpenPins(s Settings) (Pins, error) {
	var p Pins
	for _, entry := range []struct {
		name string
		dst  *gpio.PinIO
	}{
		{s.PinA, &p.A},
		{s.PinB, &p.B},
		{s.PinKnob, &p.Knob},
		{s.PinMenu, &p.Menu},
		{s.PinCancel, &p.Cancel},
	} {
		pin := gpioreg.ByName(entry.name)
		if pin == nil {
			return p, errors.Newf("no such pin: %s", entry.name)
		}
		if err := pin.In(gpio.PullUp, gpio.NoEdge); err != nil {
			return p, errors.Wrapf(err, "failed to configure pin %s", entry.name)
		}
		*entry.dst = pin
	}
	return p, nil
}

// Sampler polls the input lines at a fixed interval and emits debounced
// logical events. It has no other side effect; a stuck line simply stops
// producing events.
type Sampler struct {
	pins     Pins
	interval time.Duration

	decoder Decoder
	buttons map[input.Button]*ButtonFSM

	events chan input.Event
}

// NewSampler creates a sampler over the given pins.
func NewSampler(pins Pins, s Settings) *Sampler {
	debounce := time.Duration(s.DebounceMs) * time.Millisecond
	longPress := time.Duration(s.LongPressMs) * time.Millisecond
	return &Sampler{
		pins:     pins,
		interval: time.Duration(s.PollMs) * time.Millisecond,
		buttons: map[input.Button]*ButtonFSM{
			input.ButtonKnob:   NewButtonFSM(debounce, longPress),
			input.ButtonMenu:   NewButtonFSM(debounce, longPress),
			input.ButtonCancel: NewButtonFSM(debounce, longPress),
		},
		events: make(chan input.Event, 64),
	}
}

// Events returns the debounced event channel.
func (s *Sampler) Events() <-chan input.Event {
	return s.events
}

// Run samples until the context is cancelled.
func (s *Sampler) Run(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.step(time.Now())
		}
	}
}

// step takes one sample of every line.
func (s *Sampler) step(now time.Time) {
	// Pull-ups: closed contact reads low.
	a := s.pins.A.Read() == gpio.Low
	b := s.pins.B.Read() == gpio.Low

	switch s.decoder.Transition(a, b) {
	case DirCW:
		s.emit(input.Event{Kind: input.RotateCW, At: now})
	case DirCCW:
		s.emit(input.Event{Kind: input.RotateCCW, At: now})
	}

	s.sampleButton(input.ButtonKnob, s.pins.Knob, now)
	s.sampleButton(input.ButtonMenu, s.pins.Menu, now)
	s.sampleButton(input.ButtonCancel, s.pins.Cancel, now)
}

func (s *Sampler) sampleButton(btn input.Button, pin gpio.PinIO, now time.Time) {
	pressed := pin.Read() == gpio.Low
	switch s.buttons[btn].Sample(pressed, now) {
	case BtnClick:
		s.emit(input.Event{Kind: input.Click, Button: btn, At: now})
	case BtnLongPress:
		s.emit(input.Event{Kind: input.LongPress, Button: btn, At: now})
	}
}

// emit sends without blocking; the consumer owns the pace and overflow
// events are dropped.
func (s *Sampler) emit(e input.Event) {
	select {
	case s.events <- e:
	default:
		zlog.Debug().Msgf("gpio: event queue full, dropping %s", e.Kind)
	}
}
