package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"

	"github.com/enqur/qrstudio/internal/domain/common/errorz"
	"github.com/enqur/qrstudio/internal/domain/dto"
	"github.com/enqur/qrstudio/internal/domain/entity"
	"github.com/enqur/qrstudio/pkg/logger/types"
	qr "github.com/enqur/qrstudio/pkg/qrcode"
)

const (
	DefaultHistoryLimit = 20
	MaxHistoryLimit     = 100
)

type QRCodeStorage interface {
	Create(ctx context.Context, code *entity.QRCode) (*entity.QRCode, error)
	Get(ctx context.Context, id string) (*entity.QRCode, error)
	GetByOwner(ctx context.Context, owner string, limit, offset int) ([]entity.QRCode, error)
	CountByOwner(ctx context.Context, owner string) (int64, error)
	Delete(ctx context.Context, id string) error
	DeleteByOwner(ctx context.Context, owner string) (int64, error)
}

type PreviewCache interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, png []byte) error
}

type QRMailer interface {
	SendGenerationEmail(to string, code *entity.QRCode, png []byte) error
}

type qrRenderer interface {
	Preview(link string, style qr.StyleConfig) (qr.Result, error)
	Final(link string, style qr.StyleConfig) (qr.Result, error)
}

// QrService renders QR codes and keeps the generation history. Storage, cache
// and mailer are optional; pass nil to disable them.
type QrService struct {
	renderer qrRenderer
	storage  QRCodeStorage
	cache    PreviewCache
	mailer   QRMailer
	logger   *types.Logger
}

func NewQrService(renderer qrRenderer, storage QRCodeStorage, cache PreviewCache, mailer QRMailer, logger *types.Logger) *QrService {
	return &QrService{
		renderer: renderer,
		storage:  storage,
		cache:    cache,
		mailer:   mailer,
		logger:   logger,
	}
}

// Preview renders params with the preview profile, serving repeated requests from the cache.
func (s *QrService) Preview(ctx context.Context, params dto.RenderParams) (qr.Result, error) {
	link := params.TrimmedLink()
	style := params.Style()

	var key string
	if s.cache != nil && link != "" {
		key = PreviewCacheKey(link, style, qr.Preview)
		cached, err := s.cache.Get(ctx, key)
		switch {
		case err == nil:
			return qr.Result{PNG: cached, Width: qr.Preview.CanvasWidth, Height: qr.Preview.CanvasHeight}, nil
		case !errors.Is(err, errorz.ErrNotFound):
			s.logger.Warnf("failed to read preview cache: %v", err)
		}
	}

	result, err := s.renderer.Preview(link, style)
	if err != nil {
		return qr.Result{}, err
	}

	if key != "" {
		if err = s.cache.Set(ctx, key, result.PNG); err != nil {
			s.logger.Warnf("failed to store preview in cache: %v", err)
		}
	}
	return result, nil
}

// Generate renders params with the final profile. When owner is set and storage
// is configured the code is saved to the owner's history, and with notify the
// owner receives the image by email. The returned record is nil when nothing was saved.
func (s *QrService) Generate(ctx context.Context, owner string, params dto.RenderParams, notify bool) (*entity.QRCode, qr.Result, error) {
	style := params.Style()
	result, err := s.renderer.Final(params.TrimmedLink(), style)
	if err != nil {
		return nil, qr.Result{}, err
	}

	colors := qr.Resolve(style)
	code := &entity.QRCode{
		Owner:           owner,
		Link:            params.TrimmedLink(),
		Design:          style.Design.String(),
		DotStyle:        style.DotStyle.String(),
		CornerStyle:     cornerStyle(params.CornerStyle),
		BackgroundColor: qr.Hex(colors.Background),
		ForegroundColor: qr.Hex(colors.Foreground),
		FrameText:       strings.TrimSpace(params.FrameText),
		ResetToDefaults: params.ResetToDefaultColors,
	}

	var saved *entity.QRCode
	if s.storage != nil && owner != "" {
		saved, err = s.storage.Create(ctx, code)
		if err != nil {
			return nil, qr.Result{}, fmt.Errorf("failed to save qr code: %w", err)
		}
		code = saved
		s.logger.Infof("(owner: %s) generated qr code %s", owner, code.ID)
	}

	if notify && s.mailer != nil && strings.Contains(owner, "@") {
		if err = s.mailer.SendGenerationEmail(owner, code, result.PNG); err != nil {
			s.logger.Errorf("(owner: %s) failed to send generation email: %v", owner, err)
		}
	}

	return saved, result, nil
}

// History returns one page of the owner's codes, newest first. A zero limit
// means DefaultHistoryLimit; larger limits are capped at MaxHistoryLimit.
func (s *QrService) History(ctx context.Context, owner string, limit, offset int) (dto.History, error) {
	if s.storage == nil {
		return dto.History{}, errorz.ErrStorageDisabled
	}
	if owner == "" || limit < 0 || offset < 0 {
		return dto.History{}, errorz.ErrInvalidInput
	}
	if limit == 0 {
		limit = DefaultHistoryLimit
	}
	limit = min(limit, MaxHistoryLimit)

	codes, err := s.storage.GetByOwner(ctx, owner, limit, offset)
	if err != nil {
		return dto.History{}, err
	}
	total, err := s.storage.CountByOwner(ctx, owner)
	if err != nil {
		return dto.History{}, err
	}

	items := make([]dto.QRCode, 0, len(codes))
	for _, code := range codes {
		items = append(items, dto.NewQRCode(code))
	}
	return dto.History{Items: items, Total: total, Limit: limit, Offset: offset}, nil
}

// Delete removes one of the owner's codes.
func (s *QrService) Delete(ctx context.Context, owner, id string) error {
	if s.storage == nil {
		return errorz.ErrStorageDisabled
	}
	if owner == "" || strings.TrimSpace(id) == "" {
		return errorz.ErrInvalidInput
	}

	code, err := s.storage.Get(ctx, id)
	if err != nil {
		return err
	}
	if code.Owner != owner {
		return errorz.ErrForbidden
	}
	return s.storage.Delete(ctx, id)
}

// ClearAll removes every code of the owner and reports how many were removed.
func (s *QrService) ClearAll(ctx context.Context, owner string) (int64, error) {
	if s.storage == nil {
		return 0, errorz.ErrStorageDisabled
	}
	if owner == "" {
		return 0, errorz.ErrInvalidInput
	}
	return s.storage.DeleteByOwner(ctx, owner)
}

// PreviewCacheKey identifies a rendered image by everything that affects its pixels.
func PreviewCacheKey(link string, style qr.StyleConfig, profile qr.Profile) string {
	colors := qr.Resolve(style)
	h := sha256.New()
	for _, part := range []string{
		profile.Name,
		link,
		style.DotStyle.String(),
		qr.Hex(colors.Background),
		qr.Hex(colors.Foreground),
		strings.ToUpper(strings.TrimSpace(style.FrameText)),
	} {
		h.Write([]byte(part))
		h.Write([]byte{0})
	}
	return "preview:" + hex.EncodeToString(h.Sum(nil))
}

var cornerStyles = map[string]bool{"square": true, "rounded": true, "extra-rounded": true, "dot": true}

func cornerStyle(tag string) string {
	tag = strings.ToLower(strings.TrimSpace(tag))
	if cornerStyles[tag] {
		return tag
	}
	return "square"
}
