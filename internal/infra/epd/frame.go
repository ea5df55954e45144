package epd

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"spindle/internal/domain/view"
)

// Landscape frame geometry for the 2.13" panel.
const (
	frameW = 250
	frameH = 122

	titleHeight = 17
	rowHeight   = 26
	glyphW      = 7 // basicfont.Face7x13 advance
)

const (
	inkBlack = uint8(0)
	inkWhite = uint8(255)
)

// BuildFrame composes a landscape frame for the snapshot.
func BuildFrame(snap view.Snapshot) *image.Gray {
	img := image.NewGray(image.Rect(0, 0, frameW, frameH))
	draw.Draw(img, img.Bounds(), &image.Uniform{color.Gray{Y: inkWhite}}, image.Point{}, draw.Src)

	drawTitleBar(img, snap)

	switch snap.Mode {
	case view.ModeBrowse:
		drawBrowse(img, snap)
	case view.ModeVolume:
		drawVolume(img, snap)
	default:
		drawNowPlaying(img, snap)
	}

	if snap.Error != "" {
		drawOverlay(img, snap.Error)
	}

	return img
}

func drawTitleBar(img *image.Gray, snap view.Snapshot) {
	text(img, 2, 12, snap.Title, inkBlack)
	if snap.Clock != "" {
		text(img, frameW-2-textWidth(snap.Clock), 12, snap.Clock, inkBlack)
	}
	hline(img, 0, titleHeight, frameW, inkBlack)
}

func drawNowPlaying(img *image.Gray, snap view.Snapshot) {
	textCentered(img, 64, snap.Selected, inkBlack)

	status := "STOPPED"
	if snap.Buffering {
		status = "TUNING..."
	} else if snap.Playing {
		status = "> PLAYING"
	}
	textCentered(img, 104, status, inkBlack)
}

func drawBrowse(img *image.Gray, snap view.Snapshot) {
	rows := [3]string{snap.Prev, snap.Selected, snap.Next}
	y := titleHeight + 4
	for i, name := range rows {
		top := y + i*rowHeight
		if i == 1 {
			// Selected row inverted.
			fillRect(img, 0, top, frameW-1, top+rowHeight-1, inkBlack)
			textCentered(img, top+17, name, inkWhite)
		} else {
			textCentered(img, top+17, name, inkBlack)
		}
	}
}

func drawVolume(img *image.Gray, snap view.Snapshot) {
	textCentered(img, 44, "VOLUME", inkBlack)

	const x0, x1, y0, y1 = 20, 230, 58, 78
	rectOutline(img, x0, y0, x1, y1, inkBlack)
	vol := snap.Volume
	if vol < 0 {
		vol = 0
	}
	if vol > 100 {
		vol = 100
	}
	fillTo := x0 + (x1-x0)*vol/100
	if fillTo > x0 {
		fillRect(img, x0, y0, fillTo, y1, inkBlack)
	}
	textCentered(img, 100, fmt.Sprintf("%d%%", vol), inkBlack)
}

func drawOverlay(img *image.Gray, msg string) {
	const x0, y0, x1, y1 = 25, 38, 225, 84
	fillRect(img, x0, y0, x1, y1, inkWhite)
	rectOutline(img, x0, y0, x1, y1, inkBlack)
	rectOutline(img, x0+2, y0+2, x1-2, y1-2, inkBlack)
	textCentered(img, (y0+y1)/2+5, msg, inkBlack)
}

func textWidth(s string) int {
	return glyphW * len(s)
}

func textCentered(img *image.Gray, baseline int, s string, ink uint8) {
	x := (frameW - textWidth(s)) / 2
	if x < 0 {
		x = 0
	}
	text(img, x, baseline, s, ink)
}

func text(img *image.Gray, x, baseline int, s string, ink uint8) {
	d := font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(color.Gray{Y: ink}),
		Face: basicfont.Face7x13,
		Dot:  fixed.P(x, baseline),
	}
	d.DrawString(s)
}

func hline(img *image.Gray, x, y, w int, ink uint8) {
	for i := x; i < x+w; i++ {
		img.SetGray(i, y, color.Gray{Y: ink})
	}
}

func fillRect(img *image.Gray, x0, y0, x1, y1 int, ink uint8) {
	for y := y0; y <= y1; y++ {
		for x := x0; x <= x1; x++ {
			if image.Pt(x, y).In(img.Rect) {
				img.SetGray(x, y, color.Gray{Y: ink})
			}
		}
	}
}

func rectOutline(img *image.Gray, x0, y0, x1, y1 int, ink uint8) {
	hline(img, x0, y0, x1-x0+1, ink)
	hline(img, x0, y1, x1-x0+1, ink)
	for y := y0; y <= y1; y++ {
		img.SetGray(x0, y, color.Gray{Y: ink})
		img.SetGray(x1, y, color.Gray{Y: ink})
	}
}

// rotateToPortrait rotates the landscape frame 90 degrees clockwise into
// the panel's native portrait orientation.
func rotateToPortrait(src *image.Gray) *image.Gray {
	dst := image.NewGray(image.Rect(0, 0, frameH, frameW))
	for y := 0; y < frameW; y++ {
		for x := 0; x < frameH; x++ {
			dst.SetGray(x, y, src.GrayAt(y, frameH-1-x))
		}
	}
	return dst
}
