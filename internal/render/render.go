// Package render draws a desktop snapshot to an image: the interaction
// surface for clients that want pixels instead of records. Windows are
// painted in z-order, topmost last, so the result matches what a desktop
// surface would display.
package render

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"unicode/utf8"

	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/azinterface/azdesk/internal/model"
)

const titleBarHeight = 24

var (
	backgroundColor = color.RGBA{R: 24, G: 28, B: 40, A: 255}
	windowColor     = color.RGBA{R: 236, G: 238, B: 244, A: 255}
	titleBarColor   = color.RGBA{R: 70, G: 80, B: 110, A: 255}
	focusBarColor   = color.RGBA{R: 120, G: 150, B: 240, A: 255}
	borderColor     = color.RGBA{R: 40, G: 44, B: 58, A: 255}
	titleTextColor  = color.RGBA{R: 255, G: 255, B: 255, A: 255}
)

// Snapshot rasterizes the desktop state at its screen size.
func Snapshot(snap model.Snapshot) *image.RGBA {
	w, h := snap.Screen[0], snap.Screen[1]
	if w <= 0 || h <= 0 {
		w, h = 1920, 1080
	}

	img := image.NewRGBA(image.Rect(0, 0, w, h))
	fillRect(img, img.Bounds(), backgroundColor)

	// snap.Windows is ordered by z ascending; painting in order puts the
	// focused window on top.
	for _, win := range snap.Windows {
		if win.Minimized {
			continue
		}
		drawWindow(img, win)
	}

	return img
}

// WritePNG rasterizes the snapshot and writes it as PNG, downscaled by the
// given factor. Scale values outside (0, 1] fall back to 1.
func WritePNG(w io.Writer, snap model.Snapshot, scale float64) error {
	img := Snapshot(snap)

	if scale > 0 && scale < 1 {
		sw := int(float64(img.Bounds().Dx()) * scale)
		sh := int(float64(img.Bounds().Dy()) * scale)
		if sw < 1 {
			sw = 1
		}
		if sh < 1 {
			sh = 1
		}
		scaled := image.NewRGBA(image.Rect(0, 0, sw, sh))
		xdraw.ApproxBiLinear.Scale(scaled, scaled.Bounds(), img, img.Bounds(), xdraw.Src, nil)
		img = scaled
	}

	if err := png.Encode(w, img); err != nil {
		return fmt.Errorf("encode png: %w", err)
	}
	return nil
}

func drawWindow(img *image.RGBA, win model.Window) {
	frame := image.Rect(win.X(), win.Y(), win.X()+win.Width(), win.Y()+win.Height())
	frame = frame.Intersect(img.Bounds())
	if frame.Empty() {
		return
	}

	fillRect(img, frame, windowColor)

	barColor := titleBarColor
	if win.Focused {
		barColor = focusBarColor
	}
	bar := image.Rect(frame.Min.X, frame.Min.Y, frame.Max.X, frame.Min.Y+titleBarHeight)
	fillRect(img, bar.Intersect(frame), barColor)

	strokeRect(img, frame, borderColor)

	label := fmt.Sprintf("%s [%d]", win.Title, win.ID)
	drawLabel(img, bar.Intersect(frame), label)
}

func fillRect(img *image.RGBA, r image.Rectangle, c color.Color) {
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			img.Set(x, y, c)
		}
	}
}

func strokeRect(img *image.RGBA, r image.Rectangle, c color.Color) {
	for x := r.Min.X; x < r.Max.X; x++ {
		img.Set(x, r.Min.Y, c)
		img.Set(x, r.Max.Y-1, c)
	}
	for y := r.Min.Y; y < r.Max.Y; y++ {
		img.Set(r.Min.X, y, c)
		img.Set(r.Max.X-1, y, c)
	}
}

// truncateLabel cuts text to maxChars runes. Titles may be non-ASCII, so the
// cut lands on a rune boundary, never mid-sequence.
func truncateLabel(text string, maxChars int) string {
	if utf8.RuneCountInString(text) <= maxChars {
		return text
	}
	return string([]rune(text)[:maxChars])
}

// drawLabel renders text clipped to the title bar rectangle.
func drawLabel(img *image.RGBA, bar image.Rectangle, text string) {
	if bar.Empty() {
		return
	}

	face := basicfont.Face7x13
	maxChars := (bar.Dx() - 12) / 7
	if maxChars <= 0 {
		return
	}
	text = truncateLabel(text, maxChars)

	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(titleTextColor),
		Face: face,
		Dot: fixed.Point26_6{
			X: fixed.I(bar.Min.X + 6),
			Y: fixed.I(bar.Min.Y + (titleBarHeight+face.Ascent)/2),
		},
	}
	d.DrawString(text)
}
