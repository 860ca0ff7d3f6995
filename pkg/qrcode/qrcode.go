package qr

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"strings"

	"github.com/enqur/qrstudio/pkg/logger/types"
	"github.com/fogleman/gg"
	"go.uber.org/zap"
)

// Request is a single render call.
type Request struct {
	Link    string
	Style   StyleConfig
	Profile Profile
}

// Result is an encoded PNG owned by the caller.
type Result struct {
	PNG    []byte
	Width  int
	Height int
}

// DataURL returns the PNG as a data:image/png;base64 URL.
func (r Result) DataURL() string {
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(r.PNG)
}

// Renderer draws styled QR codes. It keeps no per-render state and is safe
// for concurrent use.
type Renderer struct {
	encoder Encoder
	assets  *Assets
	logger  *types.Logger
}

// NewRenderer creates a Renderer. A nil encoder means SkipEncoder, nil assets
// means no logo and the embedded font.
func NewRenderer(encoder Encoder, assets *Assets, logger *types.Logger) *Renderer {
	logger = orNop(logger)
	if encoder == nil {
		encoder = SkipEncoder{}
	}
	if assets == nil {
		assets = NewAssets(AssetConfig{}, logger)
	}
	return &Renderer{
		encoder: encoder,
		assets:  assets,
		logger:  logger,
	}
}

// Preview renders link with the Preview profile.
func (r *Renderer) Preview(link string, style StyleConfig) (Result, error) {
	return r.Render(Request{Link: link, Style: style, Profile: Preview})
}

// Final renders link with the Final profile.
func (r *Renderer) Final(link string, style StyleConfig) (Result, error) {
	return r.Render(Request{Link: link, Style: style, Profile: Final})
}

// Render runs the whole pipeline: encode, background, modules, frame text,
// logo and PNG encoding. Only an empty link or an encoder rejection fail the
// render; missing optional assets degrade to a plainer image.
func (r *Renderer) Render(req Request) (Result, error) {
	link := strings.TrimSpace(req.Link)
	if link == "" {
		return Result{}, ErrEmptyLink
	}

	matrix, err := r.encoder.Encode(link)
	if err != nil {
		return Result{}, fmt.Errorf("%w: %v", ErrEncoding, err)
	}

	profile := req.Profile
	colors := Resolve(req.Style)

	dc := gg.NewContext(profile.CanvasWidth, profile.CanvasHeight)
	dc.SetColor(colors.Background)
	dc.Clear()

	r.drawModules(dc, matrix, profile, req.Style.DotStyle, colors.Foreground)
	r.drawFrame(dc, req.Style.FrameText, profile, colors.Foreground)
	r.drawLogo(dc, profile)

	var buf bytes.Buffer
	if err = dc.EncodePNG(&buf); err != nil {
		return Result{}, fmt.Errorf("failed to encode png: %w", err)
	}

	return Result{
		PNG:    buf.Bytes(),
		Width:  profile.CanvasWidth,
		Height: profile.CanvasHeight,
	}, nil
}

func orNop(logger *types.Logger) *types.Logger {
	if logger != nil {
		return logger
	}
	return &types.Logger{SugaredLogger: zap.NewNop().Sugar(), Name: "nop"}
}
