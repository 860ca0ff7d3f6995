package qr

import (
	"github.com/skip2/go-qrcode"
)

// Encoder turns text into a QR module matrix.
type Encoder interface {
	Encode(text string) (Matrix, error)
}

// SkipEncoder encodes with github.com/skip2/go-qrcode at the highest recovery level (H).
type SkipEncoder struct{}

func (SkipEncoder) Encode(text string) (Matrix, error) {
	code, err := qrcode.New(text, qrcode.Highest)
	if err != nil {
		return Matrix{}, err
	}
	// The quiet zone is part of the canvas layout, not of the matrix.
	code.DisableBorder = true

	return NewMatrix(code.Bitmap())
}
