package station

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func newTestList(n int) List {
	stations := make([]Station, n)
	for i := range stations {
		stations[i] = Station{Name: string(rune('A' + i)), StreamURI: "http://example.com/s"}
	}
	return NewList(stations)
}

func TestList_Wraparound(t *testing.T) {
	l := newTestList(4)

	tests := []struct {
		name string
		got  int
		want int
	}{
		{"next from middle", l.Next(1), 2},
		{"next wraps at end", l.Next(3), 0},
		{"prev from middle", l.Prev(2), 1},
		{"prev wraps at start", l.Prev(0), 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.got)
		})
	}
}

func TestList_Step(t *testing.T) {
	l := newTestList(5)

	tests := []struct {
		name  string
		from  int
		steps int
		want  int
	}{
		{"forward", 0, 2, 2},
		{"forward wrap", 3, 4, 2},
		{"backward", 2, -1, 1},
		{"backward wrap", 0, -1, 4},
		{"backward multiple wraps", 1, -12, 4},
		{"full circle", 2, 5, 2},
		{"zero", 2, 0, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, l.Step(tt.from, tt.steps))
		})
	}
}

func TestList_Clamp(t *testing.T) {
	l := newTestList(3)

	assert.Equal(t, 0, l.Clamp(-2))
	assert.Equal(t, 1, l.Clamp(1))
	assert.Equal(t, 2, l.Clamp(7))
}

func TestNewList_AssignsIndexes(t *testing.T) {
	l := NewList([]Station{{Name: "one"}, {Name: "two"}})

	assert.Equal(t, 0, l.At(0).Index)
	assert.Equal(t, 1, l.At(1).Index)
	assert.Equal(t, []string{"one", "two"}, l.Names())
}

func TestList_Empty(t *testing.T) {
	var l List

	assert.Equal(t, 0, l.Len())
	assert.Equal(t, 0, l.Next(0))
	assert.Equal(t, 0, l.Prev(0))
	assert.Equal(t, 0, l.Step(0, 3))
}
