// Package mpd provides the playback daemon client adapter.
//
// It is the sole translator between the MPD protocol and the
// coordinator's command/status model. Every call is bounded by the
// configured timeout; a timed-out or disconnected call poisons its
// connection, which is redialed on the next use. Commands and status
// polls use separate connections so polling can proceed while a command
// is in flight.
package mpd

import (
	"context"
	"sync"
	"time"

	"github.com/cockroachdb/errors"
	gompd "github.com/fhs/gompd/v2/mpd"
	zlog "github.com/rs/zerolog/log"

	"spindle/internal/domain/station"
)

// Config represents daemon client configuration.
type Config struct {
	Addr    string
	Timeout time.Duration
}

// Client is the daemon client adapter.
type Client struct {
	cfg Config

	cmd    conn // Command channel: play/stop/volume/playlist
	status conn // Read-only status channel
}

// conn is one lazily-dialed MPD connection.
type conn struct {
	mu sync.Mutex
	c  *gompd.Client
}

// New creates a new daemon client adapter. No connection is made until
// the first call.
func New(cfg Config) *Client {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 2 * time.Second
	}
	return &Client{cfg: cfg}
}

// Close closes both connections.
func (c *Client) Close() {
	c.cmd.close()
	c.status.close()
}

// Play selects the playlist position index and starts playback. Issuing
// it again for the index already playing is a daemon-side no-op and
// still returns success.
func (c *Client) Play(ctx context.Context, index int) error {
	return c.do(ctx, &c.cmd, "play", func(mc *gompd.Client) error {
		return mc.Play(index)
	})
}

// Stop stops playback.
func (c *Client) Stop(ctx context.Context) error {
	return c.do(ctx, &c.cmd, "stop", func(mc *gompd.Client) error {
		return mc.Stop()
	})
}

// SetVolume sets the daemon volume, clamped to [0, 100].
func (c *Client) SetVolume(ctx context.Context, level int) error {
	if level < 0 {
		level = 0
	}
	if level > 100 {
		level = 100
	}
	return c.do(ctx, &c.cmd, "setvol", func(mc *gompd.Client) error {
		return mc.SetVolume(level)
	})
}

// Status fetches the current daemon status. It never blocks longer than
// the configured timeout.
func (c *Client) Status(ctx context.Context) (Status, error) {
	var attrs gompd.Attrs
	err := c.do(ctx, &c.status, "status", func(mc *gompd.Client) error {
		a, err := mc.Status()
		if err != nil {
			return err
		}
		attrs = a
		return nil
	})
	if err != nil {
		return Status{}, err
	}
	return parseStatus(attrs), nil
}

// SyncPlaylist replaces the daemon playlist with the station list, one
// stream URI per playlist position, so Play(i) selects station i.
func (c *Client) SyncPlaylist(ctx context.Context, stations station.List) error {
	if err := c.do(ctx, &c.cmd, "clear", func(mc *gompd.Client) error {
		return mc.Clear()
	}); err != nil {
		return err
	}
	for i := 0; i < stations.Len(); i++ {
		s := stations.At(i)
		err := c.do(ctx, &c.cmd, "add", func(mc *gompd.Client) error {
			return mc.Add(s.StreamURI)
		})
		if err != nil {
			return errors.Wrapf(err, "failed to add station %q", s.Name)
		}
	}
	zlog.Info().Msgf("mpd: playlist synced: stations=%d", stations.Len())
	return nil
}

// do runs one protocol exchange on the given connection with a bounded
// deadline. A redial is attempted once if the connection had gone away.
func (c *Client) do(ctx context.Context, cn *conn, op string, fn func(*gompd.Client) error) error {
	cn.mu.Lock()
	defer cn.mu.Unlock()

	for attempt := 0; ; attempt++ {
		mc, err := cn.getLocked(c.cfg.Addr)
		if err != nil {
			return errors.Wrapf(errors.WithSecondaryError(ErrDaemonUnavailable, err), "%s: dial failed", op)
		}

		err = c.runBounded(ctx, cn, mc, fn)
		if err == nil {
			return nil
		}

		// One redial on a dead connection; daemon-reported errors and
		// timeouts are final.
		if attempt == 0 && Classify(err) == ClassDaemonUnavailable {
			zlog.Debug().Msgf("mpd: %s failed, redialing: %v", op, err)
			cn.closeLocked()
			continue
		}
		return errors.Wrapf(err, "%s failed", op)
	}
}

// runBounded executes fn, abandoning and poisoning the connection if the
// timeout or the context expires first.
func (c *Client) runBounded(ctx context.Context, cn *conn, mc *gompd.Client, fn func(*gompd.Client) error) error {
	done := make(chan error, 1)
	go func() {
		done <- fn(mc)
	}()

	timer := time.NewTimer(c.cfg.Timeout)
	defer timer.Stop()

	select {
	case err := <-done:
		if err == nil {
			return nil
		}
		var ackErr gompd.Error
		if errors.As(err, &ackErr) {
			// The daemon answered with an ACK: the connection is fine,
			// the stream or command is not.
			return errors.WithSecondaryError(ErrStreamError, err)
		}
		cn.closeLocked()
		return errors.WithSecondaryError(ErrDaemonUnavailable, err)
	case <-timer.C:
		// The exchange goroutine is unblocked by closing the socket.
		cn.closeLocked()
		return ErrCommandTimeout
	case <-ctx.Done():
		cn.closeLocked()
		return errors.WithSecondaryError(ErrCommandTimeout, ctx.Err())
	}
}

// getLocked returns the live connection, dialing if needed.
func (cn *conn) getLocked(addr string) (*gompd.Client, error) {
	if cn.c != nil {
		return cn.c, nil
	}
	mc, err := gompd.Dial("tcp", addr)
	if err != nil {
		return nil, err
	}
	cn.c = mc
	return mc, nil
}

func (cn *conn) closeLocked() {
	if cn.c != nil {
		_ = cn.c.Close()
		cn.c = nil
	}
}

func (cn *conn) close() {
	cn.mu.Lock()
	defer cn.mu.Unlock()
	cn.closeLocked()
}
