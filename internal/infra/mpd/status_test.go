package mpd

import (
	"testing"

	gompd "github.com/fhs/gompd/v2/mpd"
	"github.com/stretchr/testify/assert"
)

func intp(v int) *int { return &v }

func TestParseStatus(t *testing.T) {
	tests := []struct {
		name  string
		attrs gompd.Attrs
		want  Status
	}{
		{
			name: "playing",
			attrs: gompd.Attrs{
				"state": "play", "song": "2", "volume": "80",
				"audio": "44100:24:2",
			},
			want: Status{State: StatePlaying, Song: intp(2), Volume: 80},
		},
		{
			name:  "stopped",
			attrs: gompd.Attrs{"state": "stop", "volume": "80"},
			want:  Status{State: StateStopped, Volume: 80},
		},
		{
			name:  "play before audio decodes reads as buffering",
			attrs: gompd.Attrs{"state": "play", "song": "0", "volume": "100"},
			want:  Status{State: StateBuffering, Song: intp(0), Volume: 100},
		},
		{
			name: "daemon error wins over state",
			attrs: gompd.Attrs{
				"state": "play", "song": "1", "volume": "70",
				"audio": "44100:24:2",
				"error": "Failed to decode http://example.com/stream",
			},
			want: Status{
				State: StateError, Song: intp(1), Volume: 70,
				Err: "Failed to decode http://example.com/stream",
			},
		},
		{
			name:  "pause reads as stopped",
			attrs: gompd.Attrs{"state": "pause", "song": "3", "volume": "60"},
			want:  Status{State: StateStopped, Song: intp(3), Volume: 60},
		},
		{
			name:  "no mixer reports volume -1",
			attrs: gompd.Attrs{"state": "stop"},
			want:  Status{State: StateStopped, Volume: -1},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, parseStatus(tt.attrs))
		})
	}
}

func TestStatus_SameShape(t *testing.T) {
	base := Status{State: StatePlaying, Song: intp(1), Volume: 80}

	tests := []struct {
		name  string
		other Status
		want  bool
	}{
		{"identical", Status{State: StatePlaying, Song: intp(1), Volume: 80}, true},
		{"different state", Status{State: StateStopped, Song: intp(1), Volume: 80}, false},
		{"different song", Status{State: StatePlaying, Song: intp(2), Volume: 80}, false},
		{"missing song", Status{State: StatePlaying, Volume: 80}, false},
		{"different volume", Status{State: StatePlaying, Song: intp(1), Volume: 70}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, base.SameShape(tt.other))
		})
	}
}
