package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"rentals/constants"

	"github.com/joho/godotenv"
)

type HTTPConfig struct {
	Port           string
	AllowedOrigins []string
	// PublicURL dùng để dựng link trong email
	PublicURL string
}

type RedisConfig struct {
	Addr     string
	Username string
	Password string
	DB       int
}

// Enabled false khi không cấu hình REDIS_ADDR; cache khi đó bị tắt
func (r RedisConfig) Enabled() bool { return r.Addr != "" }

type CloudinaryConfig struct {
	CloudName string
	APIKey    string
	APISecret string
	Folder    string
}

func (c CloudinaryConfig) Enabled() bool {
	return c.CloudName != "" && c.APIKey != "" && c.APISecret != ""
}

type AuthConfig struct {
	JWTSecret      string
	SessionTTL     time.Duration
	GoogleClientID string
	SecureCookies  bool
}

type MailConfig struct {
	// Delivery: smtp | queue | none
	Delivery     string
	SMTPHost     string
	SMTPPort     int
	SMTPUser     string
	SMTPPassword string
	From         string
	AdminAddress string
	DigestSpec   string
}

type AMQPConfig struct {
	URL   string
	Queue string
}

type LoggingConfig struct {
	Level         string
	JSON          bool
	Color         bool
	FileDir       string
	FluentEnabled bool
	FluentHost    string
	FluentPort    int
}

// AppConfig chứa toàn bộ cấu hình, được dựng một lần khi khởi động
type AppConfig struct {
	AppName    string
	Env        string
	HTTP       HTTPConfig
	Database   DatabaseConfig
	Redis      RedisConfig
	Cloudinary CloudinaryConfig
	Auth       AuthConfig
	Mail       MailConfig
	AMQP       AMQPConfig
	Logging    LoggingConfig
}

func (c *AppConfig) IsProduction() bool { return c.Env == "prod" }

// LoadConfig nạp .env (nếu có) rồi đọc biến môi trường vào AppConfig
func LoadConfig(envPath ...string) (*AppConfig, error) {
	var err error
	if len(envPath) > 0 {
		err = godotenv.Load(envPath...)
	} else {
		err = godotenv.Load()
	}
	if err != nil {
		log.Printf("Warning: Error loading .env file: %v", err)
	}
	return FromEnv()
}

// FromEnv đọc cấu hình chỉ từ biến môi trường
func FromEnv() (*AppConfig, error) {
	cfg := &AppConfig{
		AppName: getEnvAsString("APP_NAME", "rentals"),
		Env:     getEnvAsString("ENV", "dev"),
	}

	cfg.HTTP = HTTPConfig{
		Port:           getEnvAsString("PORT", "8080"),
		AllowedOrigins: getEnvAsList("ALLOWED_ORIGINS"),
		PublicURL:      strings.TrimRight(getEnvAsString("PUBLIC_URL", "http://localhost:3000"), "/"),
	}

	db, err := loadDatabaseConfig(cfg.Env)
	if err != nil {
		return nil, err
	}
	cfg.Database = db

	cfg.Redis = RedisConfig{
		Addr:     os.Getenv("REDIS_ADDR"),
		Username: os.Getenv("REDIS_USER"),
		Password: os.Getenv("REDIS_PASSWORD"),
		DB:       getEnvAsInt("REDIS_DB", 0),
	}

	cfg.Cloudinary = CloudinaryConfig{
		CloudName: os.Getenv("CLOUDINARY_CLOUD_NAME"),
		APIKey:    os.Getenv("CLOUDINARY_API_KEY"),
		APISecret: os.Getenv("CLOUDINARY_API_SECRET"),
		Folder:    getEnvAsString("CLOUDINARY_FOLDER", "apartments"),
	}

	cfg.Auth = AuthConfig{
		JWTSecret:      os.Getenv("JWT_SECRET"),
		SessionTTL:     getEnvAsDuration("SESSION_TTL", constants.SessionTTL),
		GoogleClientID: os.Getenv("GOOGLE_CLIENT_ID"),
		SecureCookies:  getEnvAsBool("SECURE_COOKIES", cfg.Env == "prod"),
	}
	if cfg.Auth.JWTSecret == "" {
		if cfg.Env == "prod" {
			return nil, fmt.Errorf("JWT_SECRET environment variable is required")
		}
		log.Println("WARNING: JWT_SECRET is not set, using an insecure development secret")
		cfg.Auth.JWTSecret = "dev-secret"
	}

	cfg.Mail = MailConfig{
		Delivery:     strings.ToLower(getEnvAsString("MAIL_DELIVERY", constants.MailDeliverySMTP)),
		SMTPHost:     os.Getenv("SMTP_HOST"),
		SMTPPort:     getEnvAsInt("SMTP_PORT", 587),
		SMTPUser:     os.Getenv("SMTP_USER"),
		SMTPPassword: os.Getenv("SMTP_PASSWORD"),
		From:         os.Getenv("MAIL_FROM"),
		AdminAddress: os.Getenv("MAIL_ADMIN_ADDRESS"),
		DigestSpec:   getEnvAsString("MAIL_DIGEST_CRON", "0 8 * * *"),
	}
	switch cfg.Mail.Delivery {
	case constants.MailDeliverySMTP, constants.MailDeliveryQueue, constants.MailDeliveryNone:
	default:
		return nil, fmt.Errorf("MAIL_DELIVERY must be one of smtp, queue, none; got %q", cfg.Mail.Delivery)
	}
	if cfg.Mail.Delivery == constants.MailDeliverySMTP && cfg.Mail.SMTPHost == "" {
		log.Println("WARNING: MAIL_DELIVERY is smtp, but SMTP_HOST is not set. Disabling emails.")
		cfg.Mail.Delivery = constants.MailDeliveryNone
	}

	cfg.AMQP = AMQPConfig{
		URL:   os.Getenv("RABBITMQ_URL"),
		Queue: getEnvAsString("RABBITMQ_MAIL_QUEUE", constants.QueueBookingEmails),
	}
	if cfg.Mail.Delivery == constants.MailDeliveryQueue && cfg.AMQP.URL == "" {
		return nil, fmt.Errorf("RABBITMQ_URL environment variable is required when MAIL_DELIVERY=queue")
	}

	cfg.Logging = LoggingConfig{
		Level:         getEnvAsString("LOG_LEVEL", "info"),
		JSON:          getEnvAsBool("LOG_JSON", cfg.Env == "prod"),
		Color:         getEnvAsBool("LOG_COLOR", true),
		FileDir:       os.Getenv("LOG_DIR"),
		FluentEnabled: getEnvAsBool("FLUENTBIT_ENABLED", false),
		FluentHost:    os.Getenv("FLUENTBIT_HOST"),
		FluentPort:    getEnvAsInt("FLUENTBIT_PORT", 24224),
	}
	if cfg.Logging.FluentEnabled && cfg.Logging.FluentHost == "" {
		log.Println("WARNING: FLUENTBIT_ENABLED is true, but FLUENTBIT_HOST is not set. Disabling Fluent Bit.")
		cfg.Logging.FluentEnabled = false
	}

	return cfg, nil
}

func getEnvAsString(key, defaultValue string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	value, err := strconv.Atoi(os.Getenv(key))
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvAsBool(key string, defaultValue bool) bool {
	value, err := strconv.ParseBool(os.Getenv(key))
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	value, err := time.ParseDuration(os.Getenv(key))
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvAsList(key string) []string {
	var out []string
	for _, part := range strings.Split(os.Getenv(key), ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
