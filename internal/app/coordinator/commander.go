package coordinator

import (
	"context"

	"github.com/google/uuid"
	zlog "github.com/rs/zerolog/log"
)

// cmdKind represents a daemon command kind.
type cmdKind int

const (
	cmdPlay cmdKind = iota
	cmdStop
	cmdVolume
)

// String returns the string representation of the kind.
func (k cmdKind) String() string {
	switch k {
	case cmdPlay:
		return "play"
	case cmdStop:
		return "stop"
	case cmdVolume:
		return "volume"
	default:
		return "unknown"
	}
}

// command is one daemon command intent. The ID correlates the eventual
// completion with its log lines.
type command struct {
	id    uuid.UUID
	kind  cmdKind
	index int // cmdPlay
	level int // cmdVolume
}

// cmdResult is the completion of an issued command, folded back into the
// coordinator's event stream.
type cmdResult struct {
	cmd command
	err error
}

// commander enforces the single in-flight command invariant: at most one
// daemon command is unacknowledged at any time. An intent arriving while
// one is in flight replaces any intent already waiting (latest-wins), so
// rapid rotation collapses to the newest station instead of queuing
// stale changes at the daemon.
//
// All fields are owned by the coordinator goroutine; the spawned command
// goroutine only writes to the results channel.
type commander struct {
	player  Player
	results chan cmdResult

	inFlight bool
	pending  *command
}

func newCommander(player Player) *commander {
	return &commander{
		player:  player,
		results: make(chan cmdResult, 4),
	}
}

// issue submits a command intent.
func (c *commander) issue(ctx context.Context, cmd command) {
	if c.inFlight {
		if c.pending != nil {
			zlog.Debug().Msgf("commander: replacing pending %s with %s id=%s",
				c.pending.kind, cmd.kind, cmd.id)
		}
		c.pending = &cmd
		return
	}
	c.start(ctx, cmd)
}

// pendingPlay reports whether a replacement play intent is waiting for
// the in-flight slot.
func (c *commander) pendingPlay() bool {
	return c.pending != nil && c.pending.kind == cmdPlay
}

// completed must be called for every result taken from the results
// channel; it releases the in-flight slot and starts any pending intent.
func (c *commander) completed(ctx context.Context) {
	c.inFlight = false
	if c.pending == nil {
		return
	}
	next := *c.pending
	c.pending = nil
	c.start(ctx, next)
}

func (c *commander) start(ctx context.Context, cmd command) {
	c.inFlight = true
	zlog.Debug().Msgf("commander: issuing %s id=%s", cmd.kind, cmd.id)

	go func() {
		var err error
		switch cmd.kind {
		case cmdPlay:
			err = c.player.Play(ctx, cmd.index)
		case cmdStop:
			err = c.player.Stop(ctx)
		case cmdVolume:
			err = c.player.SetVolume(ctx, cmd.level)
		}
		c.results <- cmdResult{cmd: cmd, err: err}
	}()
}
