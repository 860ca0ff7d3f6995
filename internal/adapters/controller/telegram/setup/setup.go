package setup

import (
	"github.com/enqur/qrstudio/cmd/bot"
	"github.com/enqur/qrstudio/internal/adapters/controller/telegram/handlers/qr"
	"github.com/spf13/viper"
	tele "gopkg.in/telebot.v3"
	"gopkg.in/telebot.v3/middleware"
)

func Setup(b *bot.Bot) {
	qrHandler := qr.New(b.QrService, b.Logger)

	if viper.GetBool("settings.debug") {
		b.Use(middleware.Logger())
	}
	b.Use(middleware.Recover())

	b.Handle("/start", qrHandler.Start)
	b.Handle(tele.OnText, qrHandler.Generate)
}
