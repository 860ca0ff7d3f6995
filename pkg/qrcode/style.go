package qr

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"
)

// DotStyle selects how data modules are drawn.
type DotStyle int

const (
	DotSquare DotStyle = iota
	DotDots
	DotRounded
	DotClassy
	DotExtraRounded
)

var dotStyleTags = map[string]DotStyle{
	"square":        DotSquare,
	"dots":          DotDots,
	"rounded":       DotRounded,
	"classy":        DotClassy,
	"extra-rounded": DotExtraRounded,
}

// ParseDotStyle maps a form tag to a DotStyle. Unknown or empty tags map to DotSquare.
func ParseDotStyle(tag string) DotStyle {
	if style, ok := dotStyleTags[strings.ToLower(strings.TrimSpace(tag))]; ok {
		return style
	}
	return DotSquare
}

func (s DotStyle) String() string {
	switch s {
	case DotDots:
		return "dots"
	case DotRounded:
		return "rounded"
	case DotClassy:
		return "classy"
	case DotExtraRounded:
		return "extra-rounded"
	default:
		return "square"
	}
}

// Design is one of the predefined color designs.
type Design int

const (
	Style1 Design = iota
	Style2
	Style3
)

// ParseDesign maps a form tag to a Design. Unknown tags fall back to Style1.
func ParseDesign(tag string) Design {
	switch strings.ToLower(strings.TrimSpace(tag)) {
	case "style2":
		return Style2
	case "style3":
		return Style3
	default:
		return Style1
	}
}

func (d Design) String() string {
	switch d {
	case Style2:
		return "style2"
	case Style3:
		return "style3"
	default:
		return "style1"
	}
}

var (
	White     = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	Black     = color.RGBA{A: 255}
	RoyalBlue = color.RGBA{R: 0x41, G: 0x69, B: 0xE1, A: 255}
	Tomato    = color.RGBA{R: 0xFF, G: 0x63, B: 0x47, A: 255}
)

// Foreground returns the default module color of the design.
func (d Design) Foreground() color.RGBA {
	switch d {
	case Style2:
		return RoyalBlue
	case Style3:
		return Tomato
	default:
		return Black
	}
}

// StyleConfig is the user supplied styling of one render.
type StyleConfig struct {
	DotStyle        DotStyle
	BackgroundColor string
	ForegroundColor string
	Design          Design
	ResetToDefaults bool
	FrameText       string
}

// EffectiveColors are the colors actually used for drawing.
type EffectiveColors struct {
	Background color.RGBA
	Foreground color.RGBA
}

// Resolve applies reset, override and design defaults. It never fails: colors
// that do not parse are treated as unset.
func Resolve(style StyleConfig) EffectiveColors {
	if style.ResetToDefaults {
		return EffectiveColors{Background: White, Foreground: style.Design.Foreground()}
	}

	colors := EffectiveColors{Background: White, Foreground: style.Design.Foreground()}
	if fg, ok := ParseColor(style.ForegroundColor); ok {
		colors.Foreground = fg
	}
	if bg, ok := ParseColor(style.BackgroundColor); ok {
		colors.Background = bg
	}
	return colors
}

// ParseColor parses "#rrggbb", "rrggbb", "#rgb" and "rgb". The result is always opaque.
func ParseColor(value string) (color.RGBA, bool) {
	hex := strings.TrimPrefix(strings.TrimSpace(value), "#")
	if len(hex) == 3 {
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
	}
	if len(hex) != 6 {
		return color.RGBA{}, false
	}

	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return color.RGBA{}, false
	}
	return color.RGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 255}, true
}

// Hex formats c as "#rrggbb".
func Hex(c color.RGBA) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}
