// Package epd provides the e-paper display renderer.
//
// The renderer consumes immutable view snapshots, composes them into a
// 1-bit frame and pushes it to the panel on its own schedule: frames are
// never pushed more often than the panel's minimum refresh interval, and
// requests arriving during the cooldown are coalesced so only the most
// recent snapshot is drawn. Draw failures are logged and never affect
// playback state.
package epd

import (
	"image"
	"image/color"

	"github.com/cockroachdb/errors"
	"github.com/creasty/defaults"
	"github.com/go-playground/validator/v10"
	"github.com/mitchellh/mapstructure"
	"periph.io/x/conn/v3/spi/spireg"
	"periph.io/x/devices/v3/waveshare2in13v4"
)

// Panel is the pixel-push surface the renderer draws to. It matches the
// waveshare2in13v4 device; tests substitute a fake.
type Panel interface {
	Init() error
	Clear(c color.Color) error
	Draw(r image.Rectangle, src image.Image, sp image.Point) error
	Bounds() image.Rectangle
	Sleep() error
	Halt() error
}

var _ Panel = (*waveshare2in13v4.Dev)(nil)

// Settings is the display driver configuration, decoded from the
// free-form display.settings block.
type Settings struct {
	SPIPort      string `mapstructure:"spi_port"` // Empty selects the first available port
	MinRefreshMs int    `mapstructure:"min_refresh_ms" default:"1000" validate:"gte=100,lte=60000"`

	// SleepBetweenFrames puts the panel controller to sleep after each
	// refresh. E-paper holds its image unpowered, so this only costs a
	// wake on the next frame.
	SleepBetweenFrames *bool `mapstructure:"sleep_between_frames" default:"true"`
}

// DecodeSettings decodes, defaults and validates a settings map.
func DecodeSettings(settings map[string]any) (Settings, error) {
	var s Settings
	if err := mapstructure.Decode(settings, &s); err != nil {
		return s, errors.Wrap(err, "failed to decode display settings")
	}
	if err := defaults.Set(&s); err != nil {
		return s, errors.Wrap(err, "failed to set defaults")
	}
	if err := validator.New().Struct(s); err != nil {
		return s, errors.Wrap(err, "display settings validation failed")
	}
	return s, nil
}

// OpenPanel opens the SPI port and the e-paper HAT. periph host.Init
// must have been called.
func OpenPanel(s Settings) (Panel, error) {
	port, err := spireg.Open(s.SPIPort)
	if err != nil {
		return nil, errors.Wrap(err, "failed to open SPI port")
	}
	opts := waveshare2in13v4.EPD2in13v4
	dev, err := waveshare2in13v4.NewHat(port, &opts)
	if err != nil {
		_ = port.Close()
		return nil, errors.Wrap(err, "failed to open e-paper device")
	}
	return dev, nil
}
