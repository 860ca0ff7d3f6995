package qr

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/enqur/qrstudio/internal/domain/dto"
	"github.com/enqur/qrstudio/internal/domain/entity"
	"github.com/enqur/qrstudio/pkg/logger/types"
	qrcode "github.com/enqur/qrstudio/pkg/qrcode"
	tele "gopkg.in/telebot.v3"
)

const usage = "Send me a link and I will reply with a QR code.\n\n" +
	"Add a caption after a vertical bar to print it on the code:\n" +
	"https://example.com | scan me"

type qrService interface {
	Generate(ctx context.Context, owner string, params dto.RenderParams, notify bool) (*entity.QRCode, qrcode.Result, error)
}

type Handler struct {
	qrService qrService
	logger    *types.Logger
}

func New(qrService qrService, logger *types.Logger) *Handler {
	return &Handler{
		qrService: qrService,
		logger:    logger,
	}
}

func (h *Handler) Start(c tele.Context) error {
	h.logger.Infof("(user: %d) press start button", c.Sender().ID)
	return c.Send(usage)
}

// Generate renders the message text as a final QR code and replies with the photo.
func (h *Handler) Generate(c tele.Context) error {
	params := ParseMessage(c.Text())
	if params.Link == "" {
		return c.Send(usage)
	}

	owner := Owner(c.Sender())
	_, result, err := h.qrService.Generate(context.Background(), owner, params, false)
	switch {
	case errors.Is(err, qrcode.ErrEncoding):
		h.logger.Warnf("(user: %d) link cannot be encoded: %v", c.Sender().ID, err)
		return c.Send("This link is too long to fit in a QR code.")
	case err != nil:
		h.logger.Errorf("(user: %d) failed to generate qr code: %v", c.Sender().ID, err)
		return c.Send("Something went wrong, please try again later.")
	}

	h.logger.Infof("(user: %d) generated qr code for %s", c.Sender().ID, params.Link)
	return c.Send(&tele.Photo{
		File:    tele.FromReader(bytes.NewReader(result.PNG)),
		Caption: params.Link,
	})
}

// ParseMessage splits "link | frame text" into render params.
func ParseMessage(text string) dto.RenderParams {
	link, frameText, _ := strings.Cut(text, "|")
	return dto.RenderParams{
		Link:      strings.TrimSpace(link),
		FrameText: strings.TrimSpace(frameText),
	}
}

// Owner is the history owner of a telegram user.
func Owner(user *tele.User) string {
	return fmt.Sprintf("telegram:%d", user.ID)
}
