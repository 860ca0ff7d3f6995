package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"testing"

	"github.com/enqur/qrstudio/internal/domain/common/errorz"
	"github.com/enqur/qrstudio/internal/domain/dto"
	"github.com/enqur/qrstudio/internal/domain/entity"
	"github.com/enqur/qrstudio/pkg/logger/types"
	qr "github.com/enqur/qrstudio/pkg/qrcode"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type countingRenderer struct {
	*qr.Renderer
	previews int
	finals   int
}

func (r *countingRenderer) Preview(link string, style qr.StyleConfig) (qr.Result, error) {
	r.previews++
	return r.Renderer.Preview(link, style)
}

func (r *countingRenderer) Final(link string, style qr.StyleConfig) (qr.Result, error) {
	r.finals++
	return r.Renderer.Final(link, style)
}

type memoryStorage struct {
	codes  map[string]entity.QRCode
	nextID int
	err    error
}

func newMemoryStorage() *memoryStorage {
	return &memoryStorage{codes: map[string]entity.QRCode{}}
}

func (s *memoryStorage) Create(_ context.Context, code *entity.QRCode) (*entity.QRCode, error) {
	if s.err != nil {
		return nil, s.err
	}
	s.nextID++
	code.ID = fmt.Sprintf("id-%d", s.nextID)
	s.codes[code.ID] = *code
	return code, nil
}

func (s *memoryStorage) Get(_ context.Context, id string) (*entity.QRCode, error) {
	code, ok := s.codes[id]
	if !ok {
		return nil, errorz.ErrNotFound
	}
	return &code, nil
}

func (s *memoryStorage) owned(owner string) []entity.QRCode {
	var codes []entity.QRCode
	for _, code := range s.codes {
		if code.Owner == owner {
			codes = append(codes, code)
		}
	}
	sort.Slice(codes, func(i, j int) bool { return codes[i].ID > codes[j].ID })
	return codes
}

func (s *memoryStorage) GetByOwner(_ context.Context, owner string, limit, offset int) ([]entity.QRCode, error) {
	codes := s.owned(owner)
	if offset >= len(codes) {
		return nil, nil
	}
	return codes[offset:min(offset+limit, len(codes))], nil
}

func (s *memoryStorage) CountByOwner(_ context.Context, owner string) (int64, error) {
	return int64(len(s.owned(owner))), nil
}

func (s *memoryStorage) Delete(_ context.Context, id string) error {
	delete(s.codes, id)
	return nil
}

func (s *memoryStorage) DeleteByOwner(_ context.Context, owner string) (int64, error) {
	codes := s.owned(owner)
	for _, code := range codes {
		delete(s.codes, code.ID)
	}
	return int64(len(codes)), nil
}

type memoryCache struct {
	data   map[string][]byte
	getErr error
}

func (c *memoryCache) Get(_ context.Context, key string) ([]byte, error) {
	if c.getErr != nil {
		return nil, c.getErr
	}
	data, ok := c.data[key]
	if !ok {
		return nil, errorz.ErrNotFound
	}
	return data, nil
}

func (c *memoryCache) Set(_ context.Context, key string, png []byte) error {
	c.data[key] = png
	return nil
}

type sentMail struct {
	to   string
	code entity.QRCode
	png  []byte
}

type fakeMailer struct {
	sent []sentMail
	err  error
}

func (m *fakeMailer) SendGenerationEmail(to string, code *entity.QRCode, png []byte) error {
	m.sent = append(m.sent, sentMail{to: to, code: *code, png: png})
	return m.err
}

func nopLogger() *types.Logger {
	return &types.Logger{SugaredLogger: zap.NewNop().Sugar(), Name: "test"}
}

func newRenderer() *countingRenderer {
	return &countingRenderer{Renderer: qr.NewRenderer(nil, nil, nil)}
}

func TestQrService_PreviewCache(t *testing.T) {
	ctx := context.Background()
	renderer := newRenderer()
	cache := &memoryCache{data: map[string][]byte{}}
	s := NewQrService(renderer, nil, cache, nil, nopLogger())

	params := dto.RenderParams{Link: " https://example.com ", DotStyle: "dots", FrameText: "hi"}
	first, err := s.Preview(ctx, params)
	require.NoError(t, err)
	second, err := s.Preview(ctx, params)
	require.NoError(t, err)

	assert.Equal(t, 1, renderer.previews)
	assert.Equal(t, first.PNG, second.PNG)
	assert.Equal(t, qr.Preview.CanvasWidth, second.Width)
	assert.Len(t, cache.data, 1)

	params.DotStyle = "rounded"
	_, err = s.Preview(ctx, params)
	require.NoError(t, err)
	assert.Equal(t, 2, renderer.previews)
}

func TestQrService_PreviewCacheServesMatchingImage(t *testing.T) {
	ctx := context.Background()
	renderer := newRenderer()
	s := NewQrService(renderer, nil, &memoryCache{data: map[string][]byte{}}, nil, nopLogger())

	_, err := s.Preview(ctx, dto.RenderParams{Link: "https://example.com", FrameText: "hi"})
	require.NoError(t, err)

	padded := dto.RenderParams{Link: "https://example.com", FrameText: "   hi   "}
	cached, err := s.Preview(ctx, padded)
	require.NoError(t, err)
	assert.Equal(t, 1, renderer.previews)

	direct, err := renderer.Renderer.Preview(padded.TrimmedLink(), padded.Style())
	require.NoError(t, err)
	assert.Equal(t, direct.PNG, cached.PNG)
}

func TestQrService_PreviewCacheFailureIsNotFatal(t *testing.T) {
	renderer := newRenderer()
	cache := &memoryCache{data: map[string][]byte{}, getErr: errors.New("connection refused")}
	s := NewQrService(renderer, nil, cache, nil, nopLogger())

	res, err := s.Preview(context.Background(), dto.RenderParams{Link: "https://example.com"})
	require.NoError(t, err)
	assert.NotEmpty(t, res.PNG)
	assert.Equal(t, 1, renderer.previews)
}

func TestQrService_PreviewEmptyLink(t *testing.T) {
	s := NewQrService(newRenderer(), nil, &memoryCache{data: map[string][]byte{}}, nil, nopLogger())

	_, err := s.Preview(context.Background(), dto.RenderParams{Link: "  "})
	assert.ErrorIs(t, err, qr.ErrEmptyLink)
}

func TestPreviewCacheKey(t *testing.T) {
	base := dto.RenderParams{Link: "https://example.com", DotStyle: "dots", FrameText: "scan me"}.Style()

	// Captions are trimmed and uppercased before drawing.
	same := base
	same.FrameText = "  SCAN ME "
	assert.Equal(t, PreviewCacheKey("https://example.com", base, qr.Preview), PreviewCacheKey("https://example.com", same, qr.Preview))

	// style2 and an explicit royal blue foreground render the same pixels.
	design := dto.RenderParams{Design: "style2"}.Style()
	explicit := dto.RenderParams{ForegroundColor: "#4169e1"}.Style()
	assert.Equal(t, PreviewCacheKey("x", design, qr.Preview), PreviewCacheKey("x", explicit, qr.Preview))

	assert.NotEqual(t, PreviewCacheKey("https://example.com", base, qr.Preview), PreviewCacheKey("https://example.com", base, qr.Final))
	assert.NotEqual(t, PreviewCacheKey("https://example.com", base, qr.Preview), PreviewCacheKey("https://example.org", base, qr.Preview))
}

func TestQrService_Generate(t *testing.T) {
	ctx := context.Background()
	storage := newMemoryStorage()
	mailer := &fakeMailer{}
	s := NewQrService(newRenderer(), storage, nil, mailer, nopLogger())

	params := dto.RenderParams{
		Link:            "https://example.com",
		Design:          "style3",
		DotStyle:        "Rounded",
		CornerStyle:     "dot",
		BackgroundColor: "#eee",
		FrameText:       " menu ",
	}
	code, res, err := s.Generate(ctx, "ann@example.com", params, true)
	require.NoError(t, err)
	require.NotNil(t, code)

	assert.Equal(t, "id-1", code.ID)
	assert.Equal(t, "ann@example.com", code.Owner)
	assert.Equal(t, "style3", code.Design)
	assert.Equal(t, "rounded", code.DotStyle)
	assert.Equal(t, "dot", code.CornerStyle)
	assert.Equal(t, "#eeeeee", code.BackgroundColor)
	assert.Equal(t, "#ff6347", code.ForegroundColor)
	assert.Equal(t, "menu", code.FrameText)
	assert.Equal(t, qr.Final.CanvasWidth, res.Width)

	require.Len(t, mailer.sent, 1)
	assert.Equal(t, "ann@example.com", mailer.sent[0].to)
	assert.Equal(t, "id-1", mailer.sent[0].code.ID)
	assert.Equal(t, res.PNG, mailer.sent[0].png)
}

func TestQrService_GenerateWithoutPersistence(t *testing.T) {
	ctx := context.Background()
	mailer := &fakeMailer{err: errors.New("smtp down")}

	s := NewQrService(newRenderer(), nil, nil, mailer, nopLogger())
	code, res, err := s.Generate(ctx, "ann@example.com", dto.RenderParams{Link: "https://example.com"}, true)
	require.NoError(t, err, "mail failures are only logged")
	assert.Nil(t, code)
	assert.NotEmpty(t, res.PNG)

	storage := newMemoryStorage()
	s = NewQrService(newRenderer(), storage, nil, mailer, nopLogger())
	code, _, err = s.Generate(ctx, "", dto.RenderParams{Link: "https://example.com"}, true)
	require.NoError(t, err)
	assert.Nil(t, code)
	assert.Empty(t, storage.codes)

	// Telegram owners have no mailbox.
	_, _, err = s.Generate(ctx, "telegram:42", dto.RenderParams{Link: "https://example.com"}, true)
	require.NoError(t, err)
	assert.Len(t, mailer.sent, 1)
}

func TestQrService_GenerateErrors(t *testing.T) {
	ctx := context.Background()
	storage := newMemoryStorage()
	s := NewQrService(newRenderer(), storage, nil, nil, nopLogger())

	_, _, err := s.Generate(ctx, "ann@example.com", dto.RenderParams{}, false)
	assert.ErrorIs(t, err, qr.ErrEmptyLink)
	assert.Empty(t, storage.codes)

	storage.err = errors.New("db down")
	_, _, err = s.Generate(ctx, "ann@example.com", dto.RenderParams{Link: "https://example.com"}, false)
	assert.ErrorContains(t, err, "db down")
}

func TestQrService_HistoryDeleteClear(t *testing.T) {
	ctx := context.Background()
	storage := newMemoryStorage()
	s := NewQrService(newRenderer(), storage, nil, nil, nopLogger())

	for _, owner := range []string{"ann@example.com", "ann@example.com", "ann@example.com", "bob@example.com"} {
		_, _, err := s.Generate(ctx, owner, dto.RenderParams{Link: "https://example.com"}, false)
		require.NoError(t, err)
	}

	page, err := s.History(ctx, "ann@example.com", 2, 0)
	require.NoError(t, err)
	assert.EqualValues(t, 3, page.Total)
	require.Len(t, page.Items, 2)
	assert.Equal(t, "id-3", page.Items[0].ID)

	page, err = s.History(ctx, "ann@example.com", 0, 0)
	require.NoError(t, err)
	assert.Equal(t, DefaultHistoryLimit, page.Limit)
	assert.Len(t, page.Items, 3)

	page, err = s.History(ctx, "ann@example.com", 1000, 0)
	require.NoError(t, err)
	assert.Equal(t, MaxHistoryLimit, page.Limit)

	_, err = s.History(ctx, "ann@example.com", -1, 0)
	assert.ErrorIs(t, err, errorz.ErrInvalidInput)

	assert.ErrorIs(t, s.Delete(ctx, "ann@example.com", "id-4"), errorz.ErrForbidden)
	assert.ErrorIs(t, s.Delete(ctx, "ann@example.com", "missing"), errorz.ErrNotFound)
	assert.ErrorIs(t, s.Delete(ctx, "ann@example.com", " "), errorz.ErrInvalidInput)
	require.NoError(t, s.Delete(ctx, "ann@example.com", "id-1"))

	deleted, err := s.ClearAll(ctx, "ann@example.com")
	require.NoError(t, err)
	assert.EqualValues(t, 2, deleted)

	page, err = s.History(ctx, "bob@example.com", 10, 0)
	require.NoError(t, err)
	assert.EqualValues(t, 1, page.Total)
}

func TestQrService_StorageDisabled(t *testing.T) {
	ctx := context.Background()
	s := NewQrService(newRenderer(), nil, nil, nil, nopLogger())

	_, err := s.History(ctx, "ann@example.com", 10, 0)
	assert.ErrorIs(t, err, errorz.ErrStorageDisabled)
	assert.ErrorIs(t, s.Delete(ctx, "ann@example.com", "id-1"), errorz.ErrStorageDisabled)
	_, err = s.ClearAll(ctx, "ann@example.com")
	assert.ErrorIs(t, err, errorz.ErrStorageDisabled)
}
