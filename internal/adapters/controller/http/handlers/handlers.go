package handlers

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/enqur/qrstudio/internal/adapters/controller/http/middlewares"
	"github.com/enqur/qrstudio/internal/domain/common/errorz"
	"github.com/enqur/qrstudio/internal/domain/dto"
	"github.com/enqur/qrstudio/internal/domain/entity"
	"github.com/enqur/qrstudio/pkg/logger/types"
	qr "github.com/enqur/qrstudio/pkg/qrcode"
	"github.com/gin-gonic/gin"
)

type qrService interface {
	Preview(ctx context.Context, params dto.RenderParams) (qr.Result, error)
	Generate(ctx context.Context, owner string, params dto.RenderParams, notify bool) (*entity.QRCode, qr.Result, error)
	History(ctx context.Context, owner string, limit, offset int) (dto.History, error)
	Delete(ctx context.Context, owner, id string) error
	ClearAll(ctx context.Context, owner string) (int64, error)
}

// Handler serves the QR API.
type Handler struct {
	qrService qrService
	logger    *types.Logger
}

func New(qrService qrService, logger *types.Logger) *Handler {
	return &Handler{qrService: qrService, logger: logger}
}

type generateRequest struct {
	dto.RenderParams
	Notify *bool `json:"notify"`
}

// GeneratePreview renders a preview from query parameters. With format=dataurl
// the image is wrapped in JSON, otherwise the raw PNG is returned.
func (h *Handler) GeneratePreview(c *gin.Context) {
	var params dto.RenderParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.qrService.Preview(c.Request.Context(), params)
	if err != nil {
		h.abort(c, err)
		return
	}

	if c.Query("format") == "dataurl" {
		c.JSON(http.StatusOK, gin.H{"image": result.DataURL()})
		return
	}
	c.Header("Cache-Control", "no-store")
	c.Data(http.StatusOK, "image/png", result.PNG)
}

// Generate renders the final image and saves it to the caller's history.
func (h *Handler) Generate(c *gin.Context) {
	var req generateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	owner := middlewares.Owner(c)
	notify := req.Notify == nil || *req.Notify
	code, result, err := h.qrService.Generate(c.Request.Context(), owner, req.RenderParams, notify)
	if err != nil {
		h.abort(c, err)
		return
	}

	var id string
	if code != nil {
		id = code.ID
	}
	c.JSON(http.StatusOK, gin.H{"id": id, "image": result.DataURL()})
}

func (h *Handler) History(c *gin.Context) {
	owner, ok := requireOwner(c)
	if !ok {
		return
	}

	limit, errLimit := strconv.Atoi(c.DefaultQuery("limit", "0"))
	offset, errOffset := strconv.Atoi(c.DefaultQuery("offset", "0"))
	if errLimit != nil || errOffset != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "limit and offset must be integers"})
		return
	}

	history, err := h.qrService.History(c.Request.Context(), owner, limit, offset)
	if err != nil {
		h.abort(c, err)
		return
	}
	c.JSON(http.StatusOK, history)
}

func (h *Handler) Delete(c *gin.Context) {
	owner, ok := requireOwner(c)
	if !ok {
		return
	}

	if err := h.qrService.Delete(c.Request.Context(), owner, c.Param("id")); err != nil {
		h.abort(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (h *Handler) ClearAll(c *gin.Context) {
	owner, ok := requireOwner(c)
	if !ok {
		return
	}

	deleted, err := h.qrService.ClearAll(c.Request.Context(), owner)
	if err != nil {
		h.abort(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "deleted": deleted})
}

func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func requireOwner(c *gin.Context) (string, bool) {
	owner := middlewares.Owner(c)
	if owner == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return "", false
	}
	return owner, true
}

// abort maps domain errors to status codes. Unknown errors are logged and hidden.
func (h *Handler) abort(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, qr.ErrEmptyLink), errors.Is(err, errorz.ErrInvalidInput):
		status = http.StatusBadRequest
	case errors.Is(err, qr.ErrEncoding):
		status = http.StatusUnprocessableEntity
	case errors.Is(err, errorz.ErrForbidden):
		status = http.StatusForbidden
	case errors.Is(err, errorz.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, errorz.ErrStorageDisabled):
		status = http.StatusServiceUnavailable
	}

	if status == http.StatusInternalServerError {
		h.logger.Errorf("(owner: %s) %s %s: %v", middlewares.Owner(c), c.Request.Method, c.FullPath(), err)
		c.JSON(status, gin.H{"error": "internal server error"})
		return
	}
	c.JSON(status, gin.H{"error": err.Error()})
}
