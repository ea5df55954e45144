// Package view provides the immutable render snapshot passed to the display.
package view

// Mode mirrors the coordinator mode for layout selection. The renderer
// never reads coordinator state directly; it only sees snapshots.
type Mode int

const (
	ModeNowPlaying Mode = iota // Single centered station line
	ModeBrowse                 // Three-line list, selected row inverted
	ModeVolume                 // Volume bar
)

// Snapshot is the complete drawable state for one frame. Values are
// copied out of the coordinator state; the renderer owns nothing mutable.
type Snapshot struct {
	Mode Mode

	Title string // Title bar text
	Clock string // Right-aligned title bar clock, empty when hidden

	// Browse list rows. Prev and Next are empty outside ModeBrowse.
	Prev     string
	Selected string
	Next     string

	Playing   bool // Playback glyph on the selected row
	Buffering bool

	Volume int // 0..100, shown in ModeVolume

	// Error overlay, drawn boxed over any mode when non-empty.
	Error string
}
