package qr

import "errors"

var (
	// ErrEmptyLink is returned before any rendering work when the link is blank.
	ErrEmptyLink = errors.New("link is required")
	// ErrEncoding wraps every rejection coming from the QR encoder.
	ErrEncoding = errors.New("failed to encode QR code")
)
