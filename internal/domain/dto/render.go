package dto

import (
	"strings"

	qr "github.com/enqur/qrstudio/pkg/qrcode"
)

// RenderParams are the raw form values of a render request.
type RenderParams struct {
	Link                 string `json:"link" form:"link"`
	Design               string `json:"design" form:"design"`
	DotStyle             string `json:"dotStyle" form:"dotStyle"`
	CornerStyle          string `json:"cornerStyle" form:"cornerStyle"`
	BackgroundColor      string `json:"backgroundColor" form:"backgroundColor"`
	ForegroundColor      string `json:"foregroundColor" form:"foregroundColor"`
	FrameText            string `json:"frameText" form:"frameText"`
	ResetToDefaultColors bool   `json:"resetToDefaultColors" form:"resetToDefaultColors"`
}

// Style converts the form values to a renderer style. Corner style is stored
// with the record but has no effect on rendering.
func (p RenderParams) Style() qr.StyleConfig {
	return qr.StyleConfig{
		DotStyle:        qr.ParseDotStyle(p.DotStyle),
		BackgroundColor: p.BackgroundColor,
		ForegroundColor: p.ForegroundColor,
		Design:          qr.ParseDesign(p.Design),
		ResetToDefaults: p.ResetToDefaultColors,
		FrameText:       p.FrameText,
	}
}

// TrimmedLink returns the link without surrounding whitespace.
func (p RenderParams) TrimmedLink() string {
	return strings.TrimSpace(p.Link)
}
