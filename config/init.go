package config

import (
	"fmt"

	"rentals/constants"
	"rentals/services/logger"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func ConnectCloudinary(cfg CloudinaryConfig, log logger.Logger) (*cloudinary.Cloudinary, error) {
	if !cfg.Enabled() {
		log.Warn("Cloudinary credentials are not set, image upload disabled")
		return nil, nil
	}
	cld, err := cloudinary.NewFromParams(cfg.CloudName, cfg.APIKey, cfg.APISecret)
	if err != nil {
		return nil, fmt.Errorf("lỗi khi khởi tạo Cloudinary: %w", err)
	}
	cld.Config.URL.Secure = true
	return cld, nil
}

// NewLogger dựng logger theo cấu hình: stdout (slog/tint), file và fluentd
func NewLogger(cfg LoggingConfig) (logger.Logger, func(), error) {
	level := logger.ParseLevel(cfg.Level)
	loggers := []logger.Logger{
		logger.NewSlogLogger(logger.SlogConfig{Level: level, JSON: cfg.JSON, Color: cfg.Color}),
	}
	var closers []func() error

	if cfg.FileDir != "" {
		fileLog, f, err := logger.NewFileLogger(cfg.FileDir, level)
		if err != nil {
			return nil, nil, fmt.Errorf("open log file: %w", err)
		}
		loggers = append(loggers, fileLog)
		closers = append(closers, f.Close)
	}

	if cfg.FluentEnabled {
		fl, err := logger.NewFluentLogger(cfg.FluentHost, cfg.FluentPort, "rentals", level)
		if err != nil {
			return nil, nil, err
		}
		loggers = append(loggers, fl)
		closers = append(closers, fl.Close)
	}

	cleanup := func() {
		for _, c := range closers {
			_ = c()
		}
	}
	return logger.NewMultiLogger(loggers...), cleanup, nil
}

// InitApp tạo gin engine với CORS cho phép gửi cookie phiên
func InitApp(cfg *AppConfig) *gin.Engine {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())

	configCors := cors.DefaultConfig()
	configCors.AddAllowHeaders("Authorization", constants.RequestIDHeader, constants.SessionIDHeader)
	configCors.AddExposeHeaders(constants.RequestIDHeader, constants.SessionIDHeader)
	configCors.AllowCredentials = true
	configCors.AllowAllOrigins = false
	if len(cfg.HTTP.AllowedOrigins) > 0 {
		configCors.AllowOrigins = cfg.HTTP.AllowedOrigins
	} else {
		configCors.AllowOriginFunc = func(origin string) bool {
			return !cfg.IsProduction()
		}
	}
	router.Use(cors.New(configCors))

	router.SetTrustedProxies(nil)
	return router
}
