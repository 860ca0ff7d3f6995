package qr

import (
	"image/color"
	"math"

	"github.com/fogleman/gg"
)

// RoundedCornerRadius is the corner radius of rounded modules. It does not scale
// with the cell so small modules stay close to square.
const RoundedCornerRadius = 2

// DrawModule fills one module cell. Finder cells are always full squares so
// scanners can locate the symbol whatever the dot style is. Nothing is drawn
// outside [x, x+cell] × [y, y+cell].
func DrawModule(dc *gg.Context, x, y, cell float64, finder bool, style DotStyle, c color.Color) {
	dc.SetColor(c)
	if finder {
		dc.DrawRectangle(x, y, cell, cell)
		dc.Fill()
		return
	}

	switch style {
	case DotDots:
		dc.DrawCircle(x+cell/2, y+cell/2, cell/3)
	case DotRounded:
		dc.DrawRoundedRectangle(x, y, cell, cell, math.Min(RoundedCornerRadius, cell/2))
	default:
		// classy and extra-rounded have no geometry of their own yet.
		dc.DrawRectangle(x, y, cell, cell)
	}
	dc.Fill()
}

func (r *Renderer) drawModules(dc *gg.Context, matrix Matrix, profile Profile, style DotStyle, fg color.Color) {
	size := matrix.Size()
	cell := profile.CellSize(size)
	for row := 0; row < size; row++ {
		for col := 0; col < size; col++ {
			if !matrix.Get(row, col) {
				continue
			}
			x := profile.OriginX + float64(col)*cell
			y := profile.OriginY + float64(row)*cell
			DrawModule(dc, x, y, cell, IsFinder(row, col, size), style, fg)
		}
	}
}
