package qr

import (
	"errors"
	"fmt"
	"image"
	"os"
	"sync"

	"github.com/enqur/qrstudio/pkg/logger/types"
	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
)

// ErrNoFont is returned by Assets.FontFace when no font could be loaded.
var ErrNoFont = errors.New("no frame font available")

// AssetConfig points at the optional brand assets.
type AssetConfig struct {
	LogoPath string
	FontPath string
	// NoFallbackFont disables the embedded Go Bold face used when FontPath is
	// empty or unreadable.
	NoFallbackFont bool
}

// Assets is a process-wide, read-only cache of the logo and the frame font.
// Each asset is loaded at most once; the loaded values are never mutated and
// are safe to share between concurrent renders.
type Assets struct {
	cfg    AssetConfig
	logger *types.Logger

	logoOnce sync.Once
	logo     image.Image
	logoErr  error

	fontOnce sync.Once
	font     *truetype.Font
	fontErr  error
}

func NewAssets(cfg AssetConfig, logger *types.Logger) *Assets {
	return &Assets{cfg: cfg, logger: orNop(logger)}
}

// Logo returns the decoded brand logo.
func (a *Assets) Logo() (image.Image, error) {
	a.logoOnce.Do(func() {
		if a.cfg.LogoPath == "" {
			a.logoErr = fmt.Errorf("logo path is not configured")
			return
		}
		a.logo, a.logoErr = gg.LoadImage(a.cfg.LogoPath)
	})
	return a.logo, a.logoErr
}

// Font returns the parsed frame font.
func (a *Assets) Font() (*truetype.Font, error) {
	a.fontOnce.Do(func() {
		a.font, a.fontErr = a.loadFont()
	})
	return a.font, a.fontErr
}

func (a *Assets) loadFont() (*truetype.Font, error) {
	var fileErr error
	if a.cfg.FontPath != "" {
		data, err := os.ReadFile(a.cfg.FontPath)
		if err == nil {
			f, err := truetype.Parse(data)
			if err == nil {
				return f, nil
			}
			fileErr = fmt.Errorf("failed to parse font %s: %w", a.cfg.FontPath, err)
		} else {
			fileErr = fmt.Errorf("failed to read font: %w", err)
		}
	}

	if a.cfg.NoFallbackFont {
		if fileErr == nil {
			fileErr = fmt.Errorf("font path is not configured")
		}
		return nil, fmt.Errorf("%w: %v", ErrNoFont, fileErr)
	}
	if fileErr != nil {
		a.logger.Warnf("frame font unavailable, using embedded Go Bold: %v", fileErr)
	}
	return truetype.Parse(gobold.TTF)
}

// FontFace returns a new face of the frame font at the given pixel size.
// Faces keep glyph caches and must not be shared between goroutines.
func (a *Assets) FontFace(size float64) (font.Face, error) {
	f, err := a.Font()
	if err != nil {
		return nil, err
	}
	return truetype.NewFace(f, &truetype.Options{Size: size}), nil
}
