package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/enqur/qrstudio/cmd/bot"
	"github.com/enqur/qrstudio/internal/adapters/config"
	httpHandlers "github.com/enqur/qrstudio/internal/adapters/controller/http/handlers"
	httpSetup "github.com/enqur/qrstudio/internal/adapters/controller/http/setup"
	setupBot "github.com/enqur/qrstudio/internal/adapters/controller/telegram/setup"
	"github.com/enqur/qrstudio/internal/adapters/database/postgres"
	"github.com/enqur/qrstudio/internal/domain/service"
	"github.com/enqur/qrstudio/pkg/logger"
	"github.com/enqur/qrstudio/pkg/logger/types"
	qr "github.com/enqur/qrstudio/pkg/qrcode"
	"github.com/enqur/qrstudio/pkg/smtp"
	"github.com/gin-gonic/gin"
	"github.com/spf13/viper"

	_ "time/tzdata"
)

func main() {
	cfg := config.Get()

	renderLogger := named("renderer")
	assets := qr.NewAssets(qr.AssetConfig{
		LogoPath: viper.GetString("assets.logo"),
		FontPath: viper.GetString("assets.font"),
	}, renderLogger)
	renderer := qr.NewRenderer(qr.SkipEncoder{}, assets, renderLogger)

	var storage service.QRCodeStorage
	if cfg.Database != nil {
		storage = postgres.NewQRCodeStorage(cfg.Database)
	}
	var cache service.PreviewCache
	if cfg.Redis != nil {
		cache = cfg.Redis.Previews
	}
	var mailer service.QRMailer
	if cfg.SMTPDialer != nil {
		mailer = smtp.NewClient(cfg.SMTPDialer, cfg.SMTP, named("smtp"))
	}
	qrService := service.NewQrService(renderer, storage, cache, mailer, named("service"))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var b *bot.Bot
	if viper.GetBool("bot.enabled") {
		var err error
		b, err = bot.New(bot.Options{
			Token:     viper.GetString("bot.token"),
			LogChatID: viper.GetInt64("bot.log-chat-id"),
			LogLevel:  viper.GetString("bot.log-level"),
		}, qrService)
		if err != nil {
			logger.Log.Panicf("Failed to create bot: %v", err)
		}
		setupBot.Setup(b)
		go b.Start()
	}

	if !viper.GetBool("settings.debug") {
		gin.SetMode(gin.ReleaseMode)
	}
	httpLogger := named("http")
	server := &http.Server{
		Addr:              viper.GetString("server.addr"),
		Handler:           httpSetup.Router(httpHandlers.New(qrService, httpLogger), httpLogger),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Log.Infof("HTTP server listening on %s", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Log.Panicf("HTTP server failed: %v", err)
		}
	}()

	<-ctx.Done()
	logger.Log.Info("Shutting down")

	if b != nil {
		b.Stop()
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Log.Errorf("Failed to shut down HTTP server: %v", err)
	}
}

func named(name string) *types.Logger {
	l, err := logger.Named(name)
	if err != nil {
		panic(err)
	}
	return l
}
