package coordinator

import (
	"context"
	"time"

	"github.com/google/uuid"
	zlog "github.com/rs/zerolog/log"

	"spindle/internal/domain/input"
	"spindle/internal/domain/station"
	"spindle/internal/infra/mpd"
)

// Config holds coordinator configuration.
type Config struct {
	StatusPoll   time.Duration // Daemon status poll period
	VolumeStep   int           // Volume change per detent
	VolumeIdle   time.Duration // Idle period that exits volume mode
	ErrorOverlay time.Duration // How long an error overlay stays without input
	IdleClock    time.Duration // Idle period before the title bar clock shows

	// LivePreview retunes the daemon on every detent while playing.
	// When false, rotation drops back to browsing and the knob click
	// confirms the selection.
	LivePreview bool

	// Autoplay starts the first station at boot instead of waiting in
	// the browse screen.
	Autoplay bool
}

// statusResult is one completed status poll.
type statusResult struct {
	status mpd.Status
	err    error
}

// Coordinator runs the control loop.
type Coordinator struct {
	cfg      Config
	stations station.List
	player   Player
	renderer Renderer

	inputs   <-chan input.Event
	statusCh chan statusResult
	cmds     *commander

	// One-slot pushback used when folding rotation bursts pulls a
	// non-matching event off the queue.
	queued *input.Event

	st    uiState
	dirty bool

	now func() time.Time
}

// New creates a coordinator. The station list must be non-empty.
func New(cfg Config, stations station.List, player Player, renderer Renderer, inputs <-chan input.Event) *Coordinator {
	if cfg.VolumeStep <= 0 {
		cfg.VolumeStep = 5
	}
	return &Coordinator{
		cfg:      cfg,
		stations: stations,
		player:   player,
		renderer: renderer,
		inputs:   inputs,
		statusCh: make(chan statusResult, 1),
		cmds:     newCommander(player),
		st: uiState{
			mode:     ModeBrowsing,
			selected: 0,
			volume:   -1,
		},
		now: time.Now,
	}
}

// Run drives the control loop until the context is cancelled. It never
// terminates on its own: every failure path leads back to a well-defined
// state with a user-visible indication.
func (c *Coordinator) Run(ctx context.Context) {
	c.st.lastInputAt = c.now()

	if c.cfg.Autoplay {
		c.startPlay(ctx, c.st.selected)
	}
	c.render()

	go c.pollLoop(ctx)

	housekeep := time.NewTicker(250 * time.Millisecond)
	defer housekeep.Stop()

	for {
		if ev := c.takeQueued(); ev != nil {
			c.step(ctx, *ev)
			continue
		}

		select {
		case <-ctx.Done():
			return
		case ev := <-c.inputs:
			c.step(ctx, ev)
		case res := <-c.cmds.results:
			superseded := c.cmds.pendingPlay()
			c.cmds.completed(ctx)
			c.handleResult(res, superseded)
			c.flush()
		case res := <-c.statusCh:
			c.handleStatus(res)
			c.flush()
		case <-housekeep.C:
			c.housekeeping(c.now())
			c.flush()
		}
	}
}

// step handles one input event and renders if state changed.
func (c *Coordinator) step(ctx context.Context, ev input.Event) {
	c.handleInput(ctx, ev)
	c.flush()
}

// flush issues at most one render request for the preceding transition.
func (c *Coordinator) flush() {
	if !c.dirty {
		return
	}
	c.dirty = false
	c.render()
}

func (c *Coordinator) render() {
	c.renderer.Request(c.snapshot())
}

// pollLoop is the independent status poll source. It runs concurrently
// with command issuance and folds results into the serialized event
// stream.
func (c *Coordinator) pollLoop(ctx context.Context) {
	ticker := time.NewTicker(c.cfg.StatusPoll)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			status, err := c.player.Status(ctx)
			select {
			case c.statusCh <- statusResult{status: status, err: err}:
			default:
				// Loop busy; this poll is stale by the next tick anyway.
			}
		}
	}
}

// handleInput mutates state for one debounced input event.
func (c *Coordinator) handleInput(ctx context.Context, ev input.Event) {
	c.st.lastInputAt = ev.At
	if c.st.clearOverlay() {
		c.dirty = true
	}
	if c.st.clock != "" {
		c.st.clock = ""
		c.dirty = true
	}

	switch ev.Kind {
	case input.RotateCW, input.RotateCCW:
		c.handleRotation(ctx, ev)
	case input.Click:
		c.handleClick(ctx, ev.Button)
	case input.LongPress:
		if ev.Button == input.ButtonMenu {
			c.enterVolumeMode()
		}
	}
}

// handleRotation applies a rotation burst: consecutive same-direction
// detents already queued fold into one multi-step move.
func (c *Coordinator) handleRotation(ctx context.Context, ev input.Event) {
	steps := c.foldRotation(ev.Kind)
	if ev.Kind == input.RotateCCW {
		steps = -steps
	}

	switch c.st.mode {
	case ModeBrowsing:
		c.st.selected = c.stations.Step(c.st.selected, steps)
		c.dirty = true

	case ModePlaying:
		c.st.selected = c.stations.Step(c.st.selected, steps)
		if c.cfg.LivePreview {
			c.startPlay(ctx, c.st.selected)
		} else {
			c.st.mode = ModeBrowsing
		}
		c.dirty = true

	case ModeVolume:
		level := clampVolume(c.currentVolume() + steps*c.cfg.VolumeStep)
		if level != c.st.volume {
			c.st.volume = level
			c.cmds.issue(ctx, command{id: uuid.New(), kind: cmdVolume, level: level})
			c.dirty = true
		}
	}
}

func (c *Coordinator) handleClick(ctx context.Context, btn input.Button) {
	if c.st.mode == ModeVolume {
		// Any click leaves volume mode.
		c.exitVolumeMode()
		return
	}

	switch btn {
	case input.ButtonKnob:
		switch c.st.mode {
		case ModeBrowsing:
			c.startPlay(ctx, c.st.selected)
			c.dirty = true
		case ModePlaying:
			c.cmds.issue(ctx, command{id: uuid.New(), kind: cmdStop})
			c.st.mode = ModeBrowsing
			c.dirty = true
		}

	case input.ButtonCancel:
		// Snap the selection back to what the daemon is actually
		// playing.
		if c.st.mode == ModeBrowsing && c.st.status.Song != nil {
			sel := c.stations.Clamp(*c.st.status.Song)
			if sel != c.st.selected {
				c.st.selected = sel
				c.dirty = true
			}
		}
	}
}

// startPlay issues a play intent for index and moves to ModePlaying
// optimistically; a classified failure reverts it.
func (c *Coordinator) startPlay(ctx context.Context, index int) {
	c.cmds.issue(ctx, command{id: uuid.New(), kind: cmdPlay, index: index})
	c.st.mode = ModePlaying
}

func (c *Coordinator) enterVolumeMode() {
	if c.st.mode != ModeVolume {
		c.st.volumeReturn = c.st.mode
	}
	c.st.mode = ModeVolume
	c.st.volume = c.currentVolume()
	c.st.clearOverlay()
	c.st.clock = ""
	c.dirty = true
}

func (c *Coordinator) exitVolumeMode() {
	c.st.mode = c.st.volumeReturn
	c.dirty = true
}

// currentVolume returns the working volume level: the optimistic value
// while adjusting, else the daemon-reported one.
func (c *Coordinator) currentVolume() int {
	if c.st.volume >= 0 {
		return c.st.volume
	}
	if c.st.status.Volume >= 0 {
		return c.st.status.Volume
	}
	return 50
}

// handleResult folds one command completion into the state. superseded
// marks a completion whose intent has already been replaced by a newer
// play.
func (c *Coordinator) handleResult(res cmdResult, superseded bool) {
	if res.err == nil {
		zlog.Debug().Msgf("coordinator: %s ok id=%s", res.cmd.kind, res.cmd.id)
		return
	}

	class := mpd.Classify(res.err)
	zlog.Warn().Msgf("coordinator: %s failed id=%s class=%s: %v",
		res.cmd.kind, res.cmd.id, class, res.err)

	// A replacement play is already on the wire; its own completion
	// decides what the user sees, this one is stale.
	if res.cmd.kind == cmdPlay && superseded {
		return
	}

	// Revert optimistic state: a failed play means nothing is playing.
	if res.cmd.kind == cmdPlay && c.st.mode == ModePlaying {
		c.st.mode = ModeBrowsing
	}

	c.st.setOverlay(class.Label(), c.now().Add(c.cfg.ErrorOverlay))
	c.dirty = true
}

// handleStatus folds one status poll into the state. The display tracks
// daemon reality, not just optimistic UI state.
func (c *Coordinator) handleStatus(res statusResult) {
	if res.err != nil {
		zlog.Debug().Msgf("coordinator: status poll failed: %v", res.err)
		return
	}
	if c.st.status.SameShape(res.status) {
		return
	}

	prev := c.st.status
	c.st.status = res.status

	// Track the daemon volume unless the user is mid-adjustment.
	if c.st.mode != ModeVolume && res.status.Volume >= 0 {
		c.st.volume = res.status.Volume
	}

	if prev.State != res.status.State || !sameSong(prev.Song, res.status.Song) {
		c.dirty = true
	}
}

// housekeeping applies the time-driven transitions: overlay expiry,
// volume-mode idle exit, idle clock.
func (c *Coordinator) housekeeping(now time.Time) {
	if c.st.overlay != "" && now.After(c.st.overlayUntil) {
		c.st.clearOverlay()
		c.dirty = true
	}

	if c.st.mode == ModeVolume && now.Sub(c.st.lastInputAt) >= c.cfg.VolumeIdle {
		c.exitVolumeMode()
	}

	if c.st.mode != ModeVolume && now.Sub(c.st.lastInputAt) >= c.cfg.IdleClock {
		clock := now.Format("15:04")
		if clock != c.st.clock {
			c.st.clock = clock
			c.dirty = true
		}
	}
}

// foldRotation counts queued events of the same kind, stopping at the
// first non-matching event, which is pushed back for the next loop turn.
func (c *Coordinator) foldRotation(kind input.Kind) int {
	n := 1
	for {
		select {
		case next := <-c.inputs:
			if next.Kind == kind {
				n++
				continue
			}
			c.queued = &next
			return n
		default:
			return n
		}
	}
}

func (c *Coordinator) takeQueued() *input.Event {
	ev := c.queued
	c.queued = nil
	return ev
}

func sameSong(a, b *int) bool {
	if (a == nil) != (b == nil) {
		return false
	}
	return a == nil || *a == *b
}

func clampVolume(v int) int {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}
