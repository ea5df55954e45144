package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "spindle.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

const minimalConfig = `
stations:
  - name: Groove Salad
    stream_uri: http://ice.somafm.com/groovesalad
  - name: Drone Zone
    stream_uri: http://ice.somafm.com/dronezone
`

func TestLoad_DefaultsApplied(t *testing.T) {
	cfg, err := Load(writeConfig(t, minimalConfig))
	require.NoError(t, err)

	assert.Equal(t, "localhost:6600", cfg.MPD.Addr)
	assert.Equal(t, 2*time.Second, cfg.MPD.CommandTimeout())
	assert.Equal(t, "gpio", cfg.Input.Backend)
	assert.Equal(t, "waveshare2in13v4", cfg.Display.Driver)
	assert.Equal(t, 500*time.Millisecond, cfg.Coordinator.StatusPoll())
	assert.Equal(t, 5, cfg.Coordinator.VolumeStep)
	assert.Equal(t, 3*time.Second, cfg.Coordinator.VolumeIdle())
	assert.Equal(t, 5*time.Second, cfg.Coordinator.ErrorOverlay())
	assert.Equal(t, 30*time.Second, cfg.Coordinator.IdleClock())
	assert.True(t, cfg.Coordinator.IsLivePreview())
	assert.False(t, cfg.Coordinator.Autoplay)

	list := cfg.StationList()
	require.Equal(t, 2, list.Len())
	assert.Equal(t, "Groove Salad", list.At(0).Name)
	assert.Equal(t, 0, list.At(0).Index)
	assert.Equal(t, 1, list.At(1).Index)
}

func TestLoad_ExplicitValues(t *testing.T) {
	cfg, err := Load(writeConfig(t, `
mpd:
  addr: radio.local:6600
  command_timeout_ms: 1500
coordinator:
  status_poll_ms: 250
  volume_step: 2
  live_preview: false
  autoplay: true
stations:
  - name: Lush
    stream_uri: http://ice.somafm.com/lush
`))
	require.NoError(t, err)

	assert.Equal(t, "radio.local:6600", cfg.MPD.Addr)
	assert.Equal(t, 1500*time.Millisecond, cfg.MPD.CommandTimeout())
	assert.Equal(t, 250*time.Millisecond, cfg.Coordinator.StatusPoll())
	assert.Equal(t, 2, cfg.Coordinator.VolumeStep)
	assert.False(t, cfg.Coordinator.IsLivePreview())
	assert.True(t, cfg.Coordinator.Autoplay)
}

func TestLoad_RequiresStations(t *testing.T) {
	_, err := Load(writeConfig(t, `
mpd:
  addr: localhost:6600
`))
	assert.Error(t, err)
}

func TestLoad_RejectsInvalidStation(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{
			name: "missing name",
			content: `
stations:
  - stream_uri: http://ice.somafm.com/lush
`,
		},
		{
			name: "bad uri",
			content: `
stations:
  - name: Lush
    stream_uri: not a url
`,
		},
		{
			name: "poll too fast",
			content: `
coordinator:
  status_poll_ms: 10
stations:
  - name: Lush
    stream_uri: http://ice.somafm.com/lush
`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.content))
			assert.Error(t, err)
		})
	}
}

func TestLoad_EnvOverridesAddr(t *testing.T) {
	t.Setenv("MPD_ADDR", "10.0.0.5:6600")

	cfg, err := Load(writeConfig(t, `
mpd:
  addr: file.local:6600
stations:
  - name: Lush
    stream_uri: http://ice.somafm.com/lush
`))
	require.NoError(t, err)
	assert.Equal(t, "10.0.0.5:6600", cfg.MPD.Addr)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}
