package bot

import (
	"time"

	"github.com/enqur/qrstudio/internal/domain/service"
	"github.com/enqur/qrstudio/pkg/logger"
	"github.com/enqur/qrstudio/pkg/logger/types"
	"go.uber.org/zap/zapcore"
	tele "gopkg.in/telebot.v3"
)

type Bot struct {
	*tele.Bot
	QrService *service.QrService
	Logger    *types.Logger

	logChatID int64
	logLevel  zapcore.Level
}

// Options configure the bot. A zero LogChatID disables log forwarding.
type Options struct {
	Token     string
	LogChatID int64
	LogLevel  string
}

func New(opts Options, qrService *service.QrService) (*Bot, error) {
	botLogger, err := logger.Named("bot")
	if err != nil {
		return nil, err
	}

	logLevel := zapcore.ErrorLevel
	if opts.LogLevel != "" {
		if err = logLevel.UnmarshalText([]byte(opts.LogLevel)); err != nil {
			return nil, err
		}
	}

	settings := tele.Settings{
		Token:  opts.Token,
		Poller: &tele.LongPoller{Timeout: 10 * time.Second},
		OnError: func(err error, ctx tele.Context) {
			if ctx == nil || ctx.Sender() == nil {
				botLogger.Errorf("Error: %v", err)
				return
			}
			botLogger.Errorf("(user: %d) | Error: %v", ctx.Sender().ID, err)
		},
	}

	b, err := tele.NewBot(settings)
	if err != nil {
		return nil, err
	}

	err = b.SetCommands([]tele.Command{{Text: "start", Description: "How to use the bot"}})
	if err != nil {
		return nil, err
	}

	return &Bot{
		Bot:       b,
		QrService: qrService,
		Logger:    botLogger,
		logChatID: opts.LogChatID,
		logLevel:  logLevel,
	}, nil
}

// Start installs the chat log hook when configured and starts polling. It blocks until Stop.
func (b *Bot) Start() {
	if b.logChatID != 0 {
		notifyLogger, err := logger.Named("notify")
		if err != nil {
			logger.Log.Errorf("Failed to create notify logger: %v", err)
		} else {
			notifyService := service.NewNotifyService(b.Bot, notifyLogger)
			logHook, err := notifyService.LogHook(b.logChatID, b.logLevel)
			if err != nil {
				logger.Log.Errorf("Failed to create notify log hook: %v", err)
			} else {
				logger.SetLogHook(logHook)
			}
		}
	}

	logger.Log.Info("Bot starting")
	b.Bot.Start()
}
