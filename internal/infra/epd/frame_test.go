package epd

import (
	"image"
	"testing"

	"github.com/stretchr/testify/assert"

	"spindle/internal/domain/view"
)

func TestBuildFrame_Geometry(t *testing.T) {
	frame := BuildFrame(view.Snapshot{Title: "Internet Radio", Selected: "Groove Salad"})

	assert.Equal(t, image.Rect(0, 0, 250, 122), frame.Bounds())
	// Title bar separator rule is solid black.
	for x := 0; x < 250; x++ {
		assert.Equal(t, inkBlack, frame.GrayAt(x, titleHeight).Y, "x=%d", x)
	}
}

func TestBuildFrame_BrowseInvertsSelectedRow(t *testing.T) {
	frame := BuildFrame(view.Snapshot{
		Mode:     view.ModeBrowse,
		Title:    "Internet Radio",
		Prev:     "Drone Zone",
		Selected: "Groove Salad",
		Next:     "Lush",
	})

	// The middle row background is black; the rows above and below are
	// white at their left margin (no text is drawn there).
	midY := titleHeight + 4 + rowHeight + rowHeight/2
	assert.Equal(t, inkBlack, frame.GrayAt(1, midY).Y)
	assert.Equal(t, inkWhite, frame.GrayAt(1, midY-rowHeight).Y)
	assert.Equal(t, inkWhite, frame.GrayAt(1, midY+rowHeight).Y)
}

func TestBuildFrame_VolumeBarFill(t *testing.T) {
	empty := BuildFrame(view.Snapshot{Mode: view.ModeVolume, Volume: 0})
	full := BuildFrame(view.Snapshot{Mode: view.ModeVolume, Volume: 100})
	half := BuildFrame(view.Snapshot{Mode: view.ModeVolume, Volume: 50})

	// Sample just inside the bar, a quarter of the way along.
	quarterX := 20 + (230-20)/4
	midY := (58 + 78) / 2
	assert.Equal(t, inkWhite, empty.GrayAt(quarterX, midY).Y)
	assert.Equal(t, inkBlack, full.GrayAt(quarterX, midY).Y)
	assert.Equal(t, inkBlack, half.GrayAt(quarterX, midY).Y)

	threeQuarterX := 20 + 3*(230-20)/4
	assert.Equal(t, inkWhite, half.GrayAt(threeQuarterX, midY).Y)
}

func TestBuildFrame_OverlayBoxed(t *testing.T) {
	frame := BuildFrame(view.Snapshot{
		Mode:     view.ModeBrowse,
		Selected: "Groove Salad",
		Error:    "DAEMON DOWN",
	})

	// Overlay border corners are black, interior margin is white even
	// though the inverted browse row runs underneath.
	assert.Equal(t, inkBlack, frame.GrayAt(25, 38).Y)
	assert.Equal(t, inkBlack, frame.GrayAt(225, 84).Y)
	assert.Equal(t, inkWhite, frame.GrayAt(30, 43).Y)
}

func TestRotateToPortrait(t *testing.T) {
	src := BuildFrame(view.Snapshot{Title: "t"})
	dst := rotateToPortrait(src)

	assert.Equal(t, image.Rect(0, 0, 122, 250), dst.Bounds())
	// The title separator line (landscape y=titleHeight) becomes the
	// vertical line x = 121-titleHeight after a clockwise rotation.
	assert.Equal(t, inkBlack, dst.GrayAt(121-titleHeight, 0).Y)
	assert.Equal(t, inkBlack, dst.GrayAt(121-titleHeight, 249).Y)
}
