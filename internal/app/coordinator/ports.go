package coordinator

import (
	"context"

	"spindle/internal/domain/view"
	"spindle/internal/infra/mpd"
)

// Player is the daemon command surface the coordinator drives. Failures
// come back classified (mpd.Classify); Play is idempotent.
type Player interface {
	Play(ctx context.Context, index int) error
	Stop(ctx context.Context) error
	SetVolume(ctx context.Context, level int) error
	Status(ctx context.Context) (mpd.Status, error)
}

// Renderer accepts render requests. Implementations must not block:
// rendering is fire-and-forget and coalesced downstream.
type Renderer interface {
	Request(view.Snapshot)
}

var _ Player = (*mpd.Client)(nil)
