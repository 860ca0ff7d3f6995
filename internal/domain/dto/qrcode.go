package dto

import (
	"time"

	"github.com/enqur/qrstudio/internal/domain/entity"
)

type QRCode struct {
	ID                   string    `json:"id"`
	Link                 string    `json:"link"`
	Design               string    `json:"design"`
	DotStyle             string    `json:"dotStyle"`
	CornerStyle          string    `json:"cornerStyle"`
	BackgroundColor      string    `json:"backgroundColor"`
	ForegroundColor      string    `json:"foregroundColor"`
	FrameText            string    `json:"frameText"`
	ResetToDefaultColors bool      `json:"resetToDefaultColors"`
	CreatedAt            time.Time `json:"createdAt"`
}

func NewQRCode(q entity.QRCode) QRCode {
	return QRCode{
		ID:                   q.ID,
		Link:                 q.Link,
		Design:               q.Design,
		DotStyle:             q.DotStyle,
		CornerStyle:          q.CornerStyle,
		BackgroundColor:      q.BackgroundColor,
		ForegroundColor:      q.ForegroundColor,
		FrameText:            q.FrameText,
		ResetToDefaultColors: q.ResetToDefaults,
		CreatedAt:            q.CreatedAt,
	}
}

// History is one page of a user's generated codes, newest first.
type History struct {
	Items  []QRCode `json:"history"`
	Total  int64    `json:"total"`
	Limit  int      `json:"limit"`
	Offset int      `json:"offset"`
}
