package smtp

import (
	"bytes"
	"fmt"
	"html/template"
	"io"
	"net/url"
	"strings"
	"time"

	"github.com/enqur/qrstudio/internal/domain/entity"
	"github.com/enqur/qrstudio/pkg/logger/types"
	"github.com/google/uuid"
	"gopkg.in/gomail.v2"
)

// Config holds the sender settings.
type Config struct {
	From   string // sender address
	Domain string // Message-ID domain
	AppURL string // public base URL used for preview links
}

// Client sends notification emails.
type Client struct {
	dialer *gomail.Dialer
	cfg    Config
	logger *types.Logger
}

// NewClient initializes Client.
func NewClient(dialer *gomail.Dialer, cfg Config, logger *types.Logger) *Client {
	return &Client{dialer: dialer, cfg: cfg, logger: logger}
}

var generationTemplate = template.Must(template.New("generation").Parse(`<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
  <h1 style="color: #59c3ff; text-align: center;">Your QR Code is Ready!</h1>
  <p>Your QR code has been successfully generated. Here are the details:</p>
  <ul>
    <li><strong>Link:</strong> {{.Link}}</li>
    <li><strong>Design:</strong> {{.Design}}</li>
    <li><strong>Dot style:</strong> {{.DotStyle}}</li>
    <li><strong>Corner style:</strong> {{.CornerStyle}}</li>
    <li><strong>Colors:</strong> {{.ForegroundColor}} on {{.BackgroundColor}}</li>
    {{- if .FrameText}}
    <li><strong>Frame text:</strong> {{.FrameText}}</li>
    {{- end}}
  </ul>
  {{- if .PreviewURL}}
  <p><a href="{{.PreviewURL}}">Open the preview</a></p>
  {{- end}}
  <p>The image is attached to this email. You can also download it again from your dashboard.</p>
</div>`))

type generationData struct {
	*entity.QRCode
	PreviewURL string
}

// SendGenerationEmail mails the owner a summary of the generated code with the PNG attached.
func (c *Client) SendGenerationEmail(to string, code *entity.QRCode, png []byte) error {
	msg, err := c.GenerationMessage(to, code, png)
	if err != nil {
		return err
	}
	if err = c.dialer.DialAndSend(msg); err != nil {
		return fmt.Errorf("failed to send generation email: %w", err)
	}

	c.logger.Infof("(to: %s) generation email successfully sent", to)
	return nil
}

// GenerationMessage builds the generation email without sending it.
func (c *Client) GenerationMessage(to string, code *entity.QRCode, png []byte) (*gomail.Message, error) {
	var body bytes.Buffer
	if err := generationTemplate.Execute(&body, generationData{QRCode: code, PreviewURL: c.previewURL(code)}); err != nil {
		return nil, fmt.Errorf("failed to render generation email: %w", err)
	}

	msg := gomail.NewMessage()
	msg.SetHeader("Message-ID", generateMessageID(c.cfg.Domain))
	msg.SetHeader("Date", time.Now().Format(time.RFC1123Z))
	msg.SetAddressHeader("From", c.cfg.From, "Enqur QR Code")
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", "Your QR Code has been generated!")
	msg.SetBody("text/plain", fmt.Sprintf("Your QR code for %s is ready. The image is attached.", code.Link))
	msg.AddAlternative("text/html", body.String())
	msg.Attach("qrcode.png",
		gomail.SetHeader(map[string][]string{"Content-Type": {"image/png"}}),
		gomail.SetCopyFunc(func(w io.Writer) error {
			_, err := w.Write(png)
			return err
		}),
	)
	return msg, nil
}

func (c *Client) previewURL(code *entity.QRCode) string {
	if c.cfg.AppURL == "" {
		return ""
	}
	query := url.Values{}
	query.Set("link", code.Link)
	query.Set("design", code.Design)
	query.Set("dotStyle", code.DotStyle)
	query.Set("cornerStyle", code.CornerStyle)
	query.Set("backgroundColor", code.BackgroundColor)
	query.Set("foregroundColor", code.ForegroundColor)
	if code.FrameText != "" {
		query.Set("frameText", code.FrameText)
	}
	return strings.TrimRight(c.cfg.AppURL, "/") + "/api/qr/generate-preview?" + query.Encode()
}

func generateMessageID(domain string) string {
	uniqueID := uuid.New().String()
	return fmt.Sprintf("<%s@%s>", uniqueID, domain)
}
