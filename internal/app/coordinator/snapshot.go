package coordinator

import (
	"spindle/internal/domain/view"
	"spindle/internal/infra/mpd"
)

const titleText = "Internet Radio"

// snapshot derives the immutable render input from the current state.
// The renderer never sees uiState itself.
func (c *Coordinator) snapshot() view.Snapshot {
	st := &c.st

	snap := view.Snapshot{
		Title:  titleText,
		Clock:  st.clock,
		Volume: st.volume,
		Error:  st.overlay,
	}

	switch st.mode {
	case ModeVolume:
		snap.Mode = view.ModeVolume
	case ModeBrowsing:
		snap.Mode = view.ModeBrowse
		snap.Prev = c.stations.At(c.stations.Prev(st.selected)).Name
		snap.Selected = c.stations.At(st.selected).Name
		snap.Next = c.stations.At(c.stations.Next(st.selected)).Name
	default:
		snap.Mode = view.ModeNowPlaying
		snap.Selected = c.stations.At(st.selected).Name
		switch st.status.State {
		case mpd.StatePlaying:
			snap.Playing = true
		default:
			// Optimistic: a play command is out, the daemon has not
			// confirmed yet. Polling reconciles the glyph.
			snap.Buffering = true
		}
	}

	return snap
}
