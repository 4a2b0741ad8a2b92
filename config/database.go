package config

import (
	"fmt"
	"os"
	"time"

	"rentals/services/logger"

	"github.com/lib/pq"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

type DatabaseConfig struct {
	DSN      string
	MaxOpen  int
	MaxIdle  int
	Lifetime time.Duration
}

func loadDatabaseConfig(env string) (DatabaseConfig, error) {
	cfg := DatabaseConfig{
		MaxOpen:  getEnvAsInt("DB_MAX_OPEN_CONNS", 20),
		MaxIdle:  getEnvAsInt("DB_MAX_IDLE_CONNS", 5),
		Lifetime: getEnvAsDuration("DB_CONN_MAX_LIFETIME", 30*time.Minute),
	}

	if url := os.Getenv("DATABASE_URL"); url != "" {
		dsn, err := pq.ParseURL(url)
		if err != nil {
			return cfg, fmt.Errorf("invalid DATABASE_URL: %w", err)
		}
		cfg.DSN = dsn
		return cfg, nil
	}

	dsn, err := getDBConfigByEnv(env)
	if err != nil {
		return cfg, err
	}
	cfg.DSN = dsn
	return cfg, nil
}

func getDBConfigByEnv(env string) (string, error) {
	var prefix string
	switch env {
	case "dev":
		prefix = "DEV"
	case "qc":
		prefix = "QC"
	case "prod":
		prefix = "PROD"
	default:
		return "", fmt.Errorf("unknown environment: %s", env)
	}

	host := os.Getenv(prefix + "_DB_HOST")
	if host == "" {
		return "", fmt.Errorf("DATABASE_URL or %s_DB_HOST environment variable is required", prefix)
	}
	sslmode := getEnvAsString(prefix+"_DB_SSLMODE", "require")

	return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s TimeZone=UTC",
		host,
		os.Getenv(prefix+"_DB_USER"),
		os.Getenv(prefix+"_DB_PASSWORD"),
		os.Getenv(prefix+"_DB_NAME"),
		getEnvAsString(prefix+"_DB_PORT", "5432"),
		sslmode), nil
}

// gormWriter chuyển log của gorm sang logger của ứng dụng
type gormWriter struct {
	log logger.Logger
}

func (w gormWriter) Printf(format string, v ...interface{}) {
	w.log.Warn(format, v...)
}

func ConnectDB(cfg DatabaseConfig, log logger.Logger) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(cfg.DSN), &gorm.Config{
		Logger: gormlogger.New(gormWriter{log: log}, gormlogger.Config{
			SlowThreshold:             time.Second,
			LogLevel:                  gormlogger.Warn,
			IgnoreRecordNotFoundError: true,
		}),
	})
	if err != nil {
		return nil, fmt.Errorf("fail to connect to db: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(cfg.MaxOpen)
	sqlDB.SetMaxIdleConns(cfg.MaxIdle)
	sqlDB.SetConnMaxLifetime(cfg.Lifetime)

	log.Info("Successfully connected to db")
	return db, nil
}
