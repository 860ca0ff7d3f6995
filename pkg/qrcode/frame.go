package qr

import (
	"image/color"
	"strings"

	"github.com/fogleman/gg"
)

// drawFrame draws the caption pill. It reports whether anything was drawn; a
// missing font or an unmeasurable caption leaves the canvas untouched.
func (r *Renderer) drawFrame(dc *gg.Context, text string, profile Profile, fg color.Color) bool {
	text = strings.ToUpper(strings.TrimSpace(text))
	if text == "" {
		return false
	}

	face, err := r.assets.FontFace(profile.FontSize)
	if err != nil {
		r.logger.Warnf("skip frame text: %v", err)
		return false
	}
	dc.SetFontFace(face)

	textWidth, _ := dc.MeasureString(text)
	if textWidth <= 0 {
		r.logger.Warnf("skip frame text: measured width of %q is %.1f", text, textWidth)
		return false
	}

	centerX := float64(profile.CanvasWidth) / 2
	boxWidth := textWidth + profile.FramePadding
	boxX := centerX - boxWidth/2
	boxY := float64(profile.CanvasHeight)/2 - profile.FrameHeight/2 - profile.FrameOffset

	dc.SetRGBA(1, 1, 1, profile.FrameOpacity)
	dc.DrawRoundedRectangle(boxX, boxY, boxWidth, profile.FrameHeight, profile.FrameRadius)
	dc.Fill()

	dc.SetColor(fg)
	dc.DrawStringAnchored(text, centerX, boxY+profile.FrameBaseline, 0.5, 0)
	return true
}
