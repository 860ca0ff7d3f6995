package qr

import (
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolve(t *testing.T) {
	tests := []struct {
		name  string
		style StyleConfig
		want  EffectiveColors
	}{
		{
			name: "reset ignores overrides",
			style: StyleConfig{
				ResetToDefaults: true,
				ForegroundColor: "#123456",
				BackgroundColor: "#abcdef",
				Design:          Style2,
			},
			want: EffectiveColors{Background: White, Foreground: RoyalBlue},
		},
		{
			name:  "empty colors fall back to design",
			style: StyleConfig{Design: Style3},
			want:  EffectiveColors{Background: White, Foreground: Tomato},
		},
		{
			name:  "overrides win without reset",
			style: StyleConfig{Design: Style2, ForegroundColor: "#123456", BackgroundColor: "abcdef"},
			want: EffectiveColors{
				Background: color.RGBA{R: 0xab, G: 0xcd, B: 0xef, A: 255},
				Foreground: color.RGBA{R: 0x12, G: 0x34, B: 0x56, A: 255},
			},
		},
		{
			name:  "unparsable colors count as unset",
			style: StyleConfig{Design: Style1, ForegroundColor: "tomato", BackgroundColor: "#12"},
			want:  EffectiveColors{Background: White, Foreground: Black},
		},
		{
			name:  "unknown design tag resolves to style1",
			style: StyleConfig{Design: ParseDesign("style9")},
			want:  EffectiveColors{Background: White, Foreground: Black},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Resolve(tt.style))
		})
	}
}

func TestParseDotStyle(t *testing.T) {
	tests := map[string]DotStyle{
		"square":        DotSquare,
		"dots":          DotDots,
		"Rounded":       DotRounded,
		"classy":        DotClassy,
		"extra-rounded": DotExtraRounded,
		"":              DotSquare,
		"hexagon":       DotSquare,
	}
	for tag, want := range tests {
		assert.Equal(t, want, ParseDotStyle(tag), "tag %q", tag)
	}

	for _, style := range []DotStyle{DotSquare, DotDots, DotRounded, DotClassy, DotExtraRounded} {
		assert.Equal(t, style, ParseDotStyle(style.String()))
	}
}

func TestParseDesign(t *testing.T) {
	assert.Equal(t, Style1, ParseDesign(""))
	assert.Equal(t, Style2, ParseDesign("style2"))
	assert.Equal(t, Style3, ParseDesign(" STYLE3 "))
	assert.Equal(t, Style1, ParseDesign("fancy"))
	assert.Equal(t, "style3", Style3.String())
}

func TestParseColor(t *testing.T) {
	tests := []struct {
		in     string
		want   color.RGBA
		wantOK bool
	}{
		{"#4169E1", RoyalBlue, true},
		{"ff6347", Tomato, true},
		{"#fff", White, true},
		{"", color.RGBA{}, false},
		{"#12345", color.RGBA{}, false},
		{"#zzzzzz", color.RGBA{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := ParseColor(tt.in)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}

	assert.Equal(t, "#4169e1", Hex(RoyalBlue))
}
