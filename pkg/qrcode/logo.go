package qr

import (
	"github.com/fogleman/gg"
	"github.com/nfnt/resize"
)

// drawLogo places the brand logo centered near the bottom of the canvas.
// It reports whether the logo was drawn; a missing asset is only logged.
func (r *Renderer) drawLogo(dc *gg.Context, profile Profile) bool {
	logo, err := r.assets.Logo()
	if err != nil {
		r.logger.Warnf("skip logo: %v", err)
		return false
	}

	scaled := resize.Resize(uint(profile.LogoWidth), uint(profile.LogoHeight), logo, resize.Lanczos3)
	x := profile.CanvasWidth/2 - profile.LogoWidth/2
	dc.DrawImage(scaled, x, profile.LogoY)
	return true
}
