package service

import (
	"fmt"
	"strings"

	"github.com/enqur/qrstudio/pkg/logger/types"
	"go.uber.org/zap/zapcore"
	tele "gopkg.in/telebot.v3"
)

const logSendFailure = "failed to send log to chat"

type NotifyService struct {
	bot    *tele.Bot
	logger *types.Logger
}

func NewNotifyService(bot *tele.Bot, logger *types.Logger) *NotifyService {
	return &NotifyService{
		bot:    bot,
		logger: logger,
	}
}

// LogHook returns a log hook that forwards entries of at least level to the chat.
func (s *NotifyService) LogHook(chatID int64, level zapcore.Level) (types.LogHook, error) {
	chat, err := s.bot.ChatByID(chatID)
	if err != nil {
		return nil, err
	}
	return func(log types.Log) {
		if log.Level < level || strings.Contains(log.Message, logSendFailure) {
			return
		}
		go func() {
			if _, errSend := s.bot.Send(chat, FormatLog(log)); errSend != nil {
				s.logger.Errorf("%s %d: %v", logSendFailure, chatID, errSend)
			}
		}()
	}, nil
}

// FormatLog renders a log entry as a plain text chat message.
func FormatLog(log types.Log) string {
	return fmt.Sprintf("%s | %s | %s\n%s\n\n%s",
		log.Level.CapitalString(),
		log.LoggerName,
		log.Timestamp.Format("2006-01-02 15:04:05"),
		log.Caller,
		log.Message,
	)
}
