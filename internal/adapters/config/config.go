package config

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	postgresStorage "github.com/enqur/qrstudio/internal/adapters/database/postgres"
	"github.com/enqur/qrstudio/internal/adapters/database/redis"
	"github.com/enqur/qrstudio/pkg/logger"
	"github.com/enqur/qrstudio/pkg/smtp"
	"github.com/spf13/viper"
	"gopkg.in/gomail.v2"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"
)

// EnvPrefix is the prefix of environment overrides, e.g. QRSTUDIO_SERVER_ADDR.
const EnvPrefix = "QRSTUDIO"

type Config struct {
	Database   *gorm.DB      // nil when service.database.enabled is false
	Redis      *redis.Client // nil when service.redis.enabled is false
	SMTPDialer *gomail.Dialer
	SMTP       smtp.Config
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("settings.debug", false)
	v.SetDefault("settings.timezone", "UTC")
	v.SetDefault("settings.log-to-file", false)
	v.SetDefault("settings.logs-dir", "logs")

	v.SetDefault("server.addr", ":8080")

	v.SetDefault("assets.logo", "assets/images/logo.jpg")
	v.SetDefault("assets.font", "assets/fonts/Poppins-Black.ttf")

	v.SetDefault("service.database.enabled", false)
	v.SetDefault("service.database.host", "localhost")
	v.SetDefault("service.database.port", 5432)
	v.SetDefault("service.database.user", "postgres")
	v.SetDefault("service.database.password", "")
	v.SetDefault("service.database.name", "qrstudio")

	v.SetDefault("service.redis.enabled", false)
	v.SetDefault("service.redis.host", "localhost")
	v.SetDefault("service.redis.port", 6379)
	v.SetDefault("service.redis.password", "")
	v.SetDefault("service.redis.db", 0)
	v.SetDefault("service.redis.preview-ttl", 10*time.Minute)

	v.SetDefault("service.smtp.enabled", false)
	v.SetDefault("service.smtp.host", "")
	v.SetDefault("service.smtp.port", 587)
	v.SetDefault("service.smtp.email", "")
	v.SetDefault("service.smtp.password", "")
	v.SetDefault("service.smtp.domain", "localhost")
	v.SetDefault("service.smtp.app-url", "")

	v.SetDefault("bot.enabled", false)
	v.SetDefault("bot.token", "")
	v.SetDefault("bot.log-chat-id", 0)
	v.SetDefault("bot.log-level", "error")
}

// Load reads config.yaml from dir into the global viper instance. A missing
// file is fine: defaults and QRSTUDIO_* variables still apply.
func Load(dir string) error {
	v := viper.GetViper()
	setDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(dir)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return fmt.Errorf("failed to read config: %w", err)
		}
	}
	return nil
}

func Get() *Config {
	if err := Load("."); err != nil {
		panic(err)
	}

	location, err := time.LoadLocation(viper.GetString("settings.timezone"))
	if err != nil {
		panic(fmt.Errorf("failed to load time location: %w", err))
	}

	err = logger.Init(logger.Config{
		Debug:        viper.GetBool("settings.debug"),
		TimeLocation: location,
		LogToFile:    viper.GetBool("settings.log-to-file"),
		LogsDir:      viper.GetString("settings.logs-dir"),
	})
	if err != nil {
		panic(err)
	}

	cfg := &Config{}

	if viper.GetBool("service.database.enabled") {
		cfg.Database = openDatabase()
	}

	if viper.GetBool("service.redis.enabled") {
		redisClient, errRedis := redis.New(context.Background(), redis.Options{
			Host:       viper.GetString("service.redis.host"),
			Port:       viper.GetInt("service.redis.port"),
			Password:   viper.GetString("service.redis.password"),
			DB:         viper.GetInt("service.redis.db"),
			PreviewTTL: viper.GetDuration("service.redis.preview-ttl"),
		})
		if errRedis != nil {
			logger.Log.Panicf("Failed to connect to redis: %v", errRedis)
		}
		logger.Log.Info("Successfully connected to redis")
		cfg.Redis = redisClient
	}

	if viper.GetBool("service.smtp.enabled") {
		cfg.SMTPDialer = gomail.NewDialer(
			viper.GetString("service.smtp.host"),
			viper.GetInt("service.smtp.port"),
			viper.GetString("service.smtp.email"),
			viper.GetString("service.smtp.password"),
		)
		cfg.SMTP = smtp.Config{
			From:   viper.GetString("service.smtp.email"),
			Domain: viper.GetString("service.smtp.domain"),
			AppURL: viper.GetString("service.smtp.app-url"),
		}
	}

	return cfg
}

func openDatabase() *gorm.DB {
	gormConfig := &gorm.Config{}
	if viper.GetBool("settings.debug") {
		gormConfig.Logger = gormLogger.New(
			log.New(os.Stdout, "\r\n", log.LstdFlags),
			gormLogger.Config{
				SlowThreshold: time.Second,
				LogLevel:      gormLogger.Info,
				Colorful:      true,
			},
		)
	}

	database, err := gorm.Open(postgres.Open(DSN()), gormConfig)
	if err != nil {
		logger.Log.Panicf("Failed to connect to the database: %v", err)
	}
	logger.Log.Info("Successfully connected to the database")

	if err = database.AutoMigrate(postgresStorage.Migrations...); err != nil {
		logger.Log.Panicf("Failed to migrate database: %v", err)
	}
	return database
}

// DSN builds the postgres connection string from service.database.*.
func DSN() string {
	return fmt.Sprintf("user=%s password=%s dbname=%s host=%s port=%d sslmode=disable TimeZone=%s",
		viper.GetString("service.database.user"),
		viper.GetString("service.database.password"),
		viper.GetString("service.database.name"),
		viper.GetString("service.database.host"),
		viper.GetInt("service.database.port"),
		viper.GetString("settings.timezone"),
	)
}
