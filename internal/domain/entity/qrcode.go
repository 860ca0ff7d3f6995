package entity

import (
	"time"
)

type QRCode struct {
	ID              string    `gorm:"primaryKey;type:uuid;default:gen_random_uuid()"`
	CreatedAt       time.Time `gorm:"index"`
	UpdatedAt       time.Time
	Owner           string `gorm:"not null;index"`
	Link            string `gorm:"not null"`
	Design          string `gorm:"not null;default:style1"`
	DotStyle        string `gorm:"not null;default:square"`
	CornerStyle     string `gorm:"not null;default:square"`
	BackgroundColor string
	ForegroundColor string
	FrameText       string
	ResetToDefaults bool
}
