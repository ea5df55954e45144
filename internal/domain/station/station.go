// Package station provides the Station domain entity.
package station

// Station represents one entry in the fixed station list.
type Station struct {
	Index     int    // Position in the station list
	Name      string // Display name
	StreamURI string // Stream URL handed to the playback daemon
}

// List is an ordered, read-only set of stations. It is built once at
// startup and never mutated afterwards.
type List struct {
	stations []Station
}

// NewList builds a List, assigning each station its position.
func NewList(stations []Station) List {
	out := make([]Station, len(stations))
	copy(out, stations)
	for i := range out {
		out[i].Index = i
	}
	return List{stations: out}
}

// Len returns the number of stations.
func (l List) Len() int {
	return len(l.stations)
}

// At returns the station at index i. i must be a valid index.
func (l List) At(i int) Station {
	return l.stations[i]
}

// Clamp forces i into the valid index range.
func (l List) Clamp(i int) int {
	if len(l.stations) == 0 {
		return 0
	}
	if i < 0 {
		return 0
	}
	if i >= len(l.stations) {
		return len(l.stations) - 1
	}
	return i
}

// Next returns the index after i, wrapping past the end.
func (l List) Next(i int) int {
	if len(l.stations) == 0 {
		return 0
	}
	return (l.Clamp(i) + 1) % len(l.stations)
}

// Prev returns the index before i, wrapping past the start.
func (l List) Prev(i int) int {
	if len(l.stations) == 0 {
		return 0
	}
	return (l.Clamp(i) + len(l.stations) - 1) % len(l.stations)
}

// Step moves n positions from i with wraparound. n may be negative.
func (l List) Step(i, n int) int {
	if len(l.stations) == 0 {
		return 0
	}
	size := len(l.stations)
	j := (l.Clamp(i) + n) % size
	if j < 0 {
		j += size
	}
	return j
}

// Names returns the station names in order.
func (l List) Names() []string {
	names := make([]string, len(l.stations))
	for i, s := range l.stations {
		names[i] = s.Name
	}
	return names
}
