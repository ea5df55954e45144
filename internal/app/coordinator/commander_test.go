package coordinator

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func take(t *testing.T, ch chan cmdResult) cmdResult {
	t.Helper()
	select {
	case res := <-ch:
		return res
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for command result")
		return cmdResult{}
	}
}

func TestCommander_LatestWinsWhileInFlight(t *testing.T) {
	ctx := context.Background()
	player := &fakePlayer{gate: make(chan struct{})}
	c := newCommander(player)

	c.issue(ctx, command{id: uuid.New(), kind: cmdPlay, index: 0})
	c.issue(ctx, command{id: uuid.New(), kind: cmdPlay, index: 1})
	c.issue(ctx, command{id: uuid.New(), kind: cmdPlay, index: 2})

	close(player.gate)
	first := take(t, c.results)
	assert.Equal(t, 0, first.cmd.index)
	c.completed(ctx)

	second := take(t, c.results)
	assert.Equal(t, 2, second.cmd.index, "intermediate intent replaced")
	c.completed(ctx)

	select {
	case <-c.results:
		t.Fatal("replaced intent must never reach the daemon")
	case <-time.After(100 * time.Millisecond):
	}
	assert.Equal(t, []int{0, 2}, player.playCalls())
}

func TestCommander_IdleIssuesImmediately(t *testing.T) {
	ctx := context.Background()
	player := &fakePlayer{}
	c := newCommander(player)

	c.issue(ctx, command{id: uuid.New(), kind: cmdStop})
	res := take(t, c.results)
	require.NoError(t, res.err)
	assert.Equal(t, cmdStop, res.cmd.kind)
	c.completed(ctx)

	c.issue(ctx, command{id: uuid.New(), kind: cmdVolume, level: 30})
	res = take(t, c.results)
	assert.Equal(t, cmdVolume, res.cmd.kind)
	c.completed(ctx)

	player.mu.Lock()
	defer player.mu.Unlock()
	assert.Equal(t, 1, player.stops)
	assert.Equal(t, []int{30}, player.volumes)
}
