package epd

import (
	"context"
	"image"
	"image/color"
	"image/draw"
	"sync"
	"time"

	zlog "github.com/rs/zerolog/log"
	"periph.io/x/devices/v3/ssd1306/image1bit"

	"spindle/internal/domain/view"
)

// Renderer owns the panel. Request never blocks the caller; the render
// loop runs on its own goroutine and applies latest-wins coalescing
// under the minimum refresh interval.
type Renderer struct {
	panel        Panel
	minInterval  time.Duration
	sleepBetween bool

	mu      sync.Mutex
	pending *view.Snapshot

	wake chan struct{}
}

// NewRenderer creates a renderer over the panel.
func NewRenderer(panel Panel, s Settings) *Renderer {
	sleep := s.SleepBetweenFrames == nil || *s.SleepBetweenFrames
	return &Renderer{
		panel:        panel,
		minInterval:  time.Duration(s.MinRefreshMs) * time.Millisecond,
		sleepBetween: sleep,
		wake:         make(chan struct{}, 1),
	}
}

// Request schedules the snapshot for display, replacing any snapshot
// still waiting for the panel. Fire-and-forget: it never blocks and
// never fails from the caller's point of view.
func (r *Renderer) Request(snap view.Snapshot) {
	r.mu.Lock()
	r.pending = &snap
	r.mu.Unlock()

	select {
	case r.wake <- struct{}{}:
	default:
	}
}

// Run drives the panel until the context is cancelled, then clears it
// and puts it to sleep.
func (r *Renderer) Run(ctx context.Context) {
	asleep := false
	if err := r.panel.Init(); err != nil {
		zlog.Error().Msgf("epd: init failed: %v", err)
	} else if err := r.panel.Clear(color.White); err != nil {
		zlog.Error().Msgf("epd: clear failed: %v", err)
	}

	var lastDrawn view.Snapshot
	var haveDrawn bool
	var lastDrawAt time.Time

	for {
		select {
		case <-ctx.Done():
			r.shutdown(asleep)
			return
		case <-r.wake:
		}

		for {
			// Respect the panel's minimum refresh interval; anything
			// requested meanwhile collapses into the latest snapshot.
			if !lastDrawAt.IsZero() {
				if wait := r.minInterval - time.Since(lastDrawAt); wait > 0 {
					select {
					case <-ctx.Done():
						r.shutdown(asleep)
						return
					case <-time.After(wait):
					}
				}
			}

			snap, ok := r.take()
			if !ok {
				break
			}
			if haveDrawn && snap == lastDrawn {
				continue
			}

			if r.draw(snap, &asleep) {
				lastDrawn = snap
				haveDrawn = true
				lastDrawAt = time.Now()
			}
		}
	}
}

// take removes and returns the pending snapshot.
func (r *Renderer) take() (view.Snapshot, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.pending == nil {
		return view.Snapshot{}, false
	}
	snap := *r.pending
	r.pending = nil
	return snap, true
}

// draw pushes one frame. A write failure is logged and reported false;
// the display is best-effort and playback state is unaffected.
func (r *Renderer) draw(snap view.Snapshot, asleep *bool) bool {
	if *asleep {
		if err := r.panel.Init(); err != nil {
			zlog.Error().Msgf("epd: wake failed: %v", err)
			return false
		}
		*asleep = false
	}

	frame := BuildFrame(snap)
	buf := image1bit.NewVerticalLSB(r.panel.Bounds())
	src := image.Image(frame)
	if r.panel.Bounds().Dx() != frame.Bounds().Dx() {
		src = rotateToPortrait(frame)
	}
	draw.Draw(buf, buf.Bounds(), src, image.Point{}, draw.Src)

	if err := r.panel.Draw(r.panel.Bounds(), buf, image.Point{}); err != nil {
		zlog.Error().Msgf("epd: draw failed: %v", err)
		return false
	}

	if r.sleepBetween {
		if err := r.panel.Sleep(); err != nil {
			zlog.Warn().Msgf("epd: sleep failed: %v", err)
		} else {
			*asleep = true
		}
	}
	return true
}

func (r *Renderer) shutdown(asleep bool) {
	if asleep {
		if err := r.panel.Init(); err != nil {
			zlog.Warn().Msgf("epd: wake for shutdown failed: %v", err)
		}
	}
	if err := r.panel.Clear(color.White); err != nil {
		zlog.Warn().Msgf("epd: shutdown clear failed: %v", err)
	}
	if err := r.panel.Halt(); err != nil {
		zlog.Warn().Msgf("epd: halt failed: %v", err)
	}
}
