package qr

import "strings"

// Profile describes one output resolution. Preview and Final share every
// proportion; only the scale differs.
type Profile struct {
	Name string

	ModuleArea   float64 // side of the square the module grid is drawn into
	CanvasWidth  int
	CanvasHeight int
	OriginX      float64
	OriginY      float64

	FontSize      float64
	FramePadding  float64 // added to the measured text width
	FrameHeight   float64
	FrameRadius   float64
	FrameOffset   float64 // upward shift of the box from the canvas center
	FrameBaseline float64 // text baseline measured from the box top
	FrameOpacity  float64

	LogoWidth  int
	LogoHeight int
	LogoY      int
}

// ScaleTolerance bounds how far the grid fraction of two profiles may drift apart.
const ScaleTolerance = 0.1

var (
	Preview = Profile{
		Name:          "preview",
		ModuleArea:    200,
		CanvasWidth:   240,
		CanvasHeight:  280,
		OriginX:       20,
		OriginY:       20,
		FontSize:      16,
		FramePadding:  16,
		FrameHeight:   30,
		FrameRadius:   8,
		FrameOffset:   20,
		FrameBaseline: 20,
		FrameOpacity:  0.85,
		LogoWidth:     80,
		LogoHeight:    30,
		LogoY:         230,
	}

	Final = Profile{
		Name:          "final",
		ModuleArea:    300,
		CanvasWidth:   340,
		CanvasHeight:  400,
		OriginX:       20,
		OriginY:       20,
		FontSize:      22,
		FramePadding:  20,
		FrameHeight:   40,
		FrameRadius:   12,
		FrameOffset:   40,
		FrameBaseline: 27,
		FrameOpacity:  0.95,
		LogoWidth:     100,
		LogoHeight:    40,
		LogoY:         340,
	}
)

// ProfileByName returns the canonical profile for "preview" or "final".
func ProfileByName(name string) (Profile, bool) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case Preview.Name:
		return Preview, true
	case Final.Name:
		return Final, true
	default:
		return Profile{}, false
	}
}

// GridFraction returns the share of the canvas width and height covered by the module grid.
func (p Profile) GridFraction() (float64, float64) {
	return p.ModuleArea / float64(p.CanvasWidth), p.ModuleArea / float64(p.CanvasHeight)
}

// CellSize returns the pixel side of one module for a matrix of the given size.
func (p Profile) CellSize(matrixSize int) float64 {
	return p.ModuleArea / float64(matrixSize)
}
