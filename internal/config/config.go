package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	Server ServerConfig
	DB     DBConfig
	JWT    JWTConfig
	S3     S3Config
	DocAI  DocAIConfig
	Parse  ParseConfig
	CORS   CORSConfig
	Log    LogConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port         string        `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	Environment  string        `mapstructure:"environment"`
}

// DBConfig holds PostgreSQL connection settings.
type DBConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	Name     string `mapstructure:"name"`
	SSLMode  string `mapstructure:"sslmode"`
	MaxOpen  int    `mapstructure:"max_open"`
	MaxIdle  int    `mapstructure:"max_idle"`
}

// DSN returns the PostgreSQL connection string.
func (d *DBConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.Name, d.SSLMode,
	)
}

// JWTConfig holds JWT validation settings for the API.
type JWTConfig struct {
	Secret string `mapstructure:"secret"`
	Issuer string `mapstructure:"issuer"`
}

// S3Config holds AWS S3 settings.
type S3Config struct {
	Region        string `mapstructure:"region"`
	Bucket        string `mapstructure:"bucket"`
	Endpoint      string `mapstructure:"endpoint"`
	AccessKey     string `mapstructure:"access_key"`
	SecretKey     string `mapstructure:"secret_key"`
	MaxFileSizeMB int64  `mapstructure:"max_file_size_mb"`
	PresignExpiry int64  `mapstructure:"presign_expiry"`
}

// DocAIConfig holds document-analysis processor settings.
type DocAIConfig struct {
	Endpoint    string `mapstructure:"endpoint"`
	APIKey      string `mapstructure:"api_key"`
	TimeoutSecs int    `mapstructure:"timeout_secs"`
}

// ParseConfig holds extraction engine and batch settings.
type ParseConfig struct {
	DefaultCountry  string  `mapstructure:"default_country"`
	MinConfidence   float64 `mapstructure:"min_confidence"`
	BatchMaxWorkers int     `mapstructure:"batch_max_workers"`
	BatchMaxFiles   int     `mapstructure:"batch_max_files"`
}

// CORSConfig holds CORS settings.
type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// Load reads configuration from environment variables with the LADING_ prefix.
func Load() (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("LADING")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Server defaults
	v.SetDefault("server.port", ":8080")
	v.SetDefault("server.read_timeout", "30s")
	v.SetDefault("server.write_timeout", "30s")
	v.SetDefault("server.environment", "development")

	// DB defaults
	v.SetDefault("db.host", "localhost")
	v.SetDefault("db.port", 5432)
	v.SetDefault("db.user", "lading")
	v.SetDefault("db.password", "lading_secret")
	v.SetDefault("db.name", "lading_db")
	v.SetDefault("db.sslmode", "disable")
	v.SetDefault("db.max_open", 25)
	v.SetDefault("db.max_idle", 10)

	// JWT defaults
	v.SetDefault("jwt.secret", "change-me-in-production")
	v.SetDefault("jwt.issuer", "lading")

	// S3 defaults
	v.SetDefault("s3.region", "us-east-1")
	v.SetDefault("s3.bucket", "lading-documents")
	v.SetDefault("s3.endpoint", "")
	v.SetDefault("s3.max_file_size_mb", 50)
	v.SetDefault("s3.presign_expiry", 900)

	// DocAI defaults
	v.SetDefault("docai.endpoint", "")
	v.SetDefault("docai.api_key", "")
	v.SetDefault("docai.timeout_secs", 120)

	// Parse defaults
	v.SetDefault("parse.default_country", "USA")
	v.SetDefault("parse.min_confidence", 0.6)
	v.SetDefault("parse.batch_max_workers", 5)
	v.SetDefault("parse.batch_max_files", 50)

	// Log defaults
	v.SetDefault("log.level", "debug")
	v.SetDefault("log.format", "console")

	// CORS defaults (localhost origins for development)
	v.SetDefault("cors.allowed_origins", "http://localhost:3000,http://127.0.0.1:3000")

	// Bind environment variables explicitly for nested keys
	envBindings := map[string]string{
		"server.port":             "LADING_SERVER_PORT",
		"server.read_timeout":     "LADING_SERVER_READ_TIMEOUT",
		"server.write_timeout":    "LADING_SERVER_WRITE_TIMEOUT",
		"server.environment":      "LADING_SERVER_ENVIRONMENT",
		"db.host":                 "LADING_DB_HOST",
		"db.port":                 "LADING_DB_PORT",
		"db.user":                 "LADING_DB_USER",
		"db.password":             "LADING_DB_PASSWORD",
		"db.name":                 "LADING_DB_NAME",
		"db.sslmode":              "LADING_DB_SSLMODE",
		"db.max_open":             "LADING_DB_MAX_OPEN",
		"db.max_idle":             "LADING_DB_MAX_IDLE",
		"jwt.secret":              "LADING_JWT_SECRET",
		"jwt.issuer":              "LADING_JWT_ISSUER",
		"s3.region":               "LADING_S3_REGION",
		"s3.bucket":               "LADING_S3_BUCKET",
		"s3.endpoint":             "LADING_S3_ENDPOINT",
		"s3.access_key":           "LADING_S3_ACCESS_KEY",
		"s3.secret_key":           "LADING_S3_SECRET_KEY",
		"s3.max_file_size_mb":     "LADING_S3_MAX_FILE_SIZE_MB",
		"s3.presign_expiry":       "LADING_S3_PRESIGN_EXPIRY",
		"docai.endpoint":          "LADING_DOCAI_ENDPOINT",
		"docai.api_key":           "LADING_DOCAI_API_KEY",
		"docai.timeout_secs":      "LADING_DOCAI_TIMEOUT_SECS",
		"parse.default_country":   "LADING_PARSE_DEFAULT_COUNTRY",
		"parse.min_confidence":    "LADING_PARSE_MIN_CONFIDENCE",
		"parse.batch_max_workers": "LADING_PARSE_BATCH_MAX_WORKERS",
		"parse.batch_max_files":   "LADING_PARSE_BATCH_MAX_FILES",
		"cors.allowed_origins":    "LADING_CORS_ALLOWED_ORIGINS",
		"log.level":               "LADING_LOG_LEVEL",
		"log.format":              "LADING_LOG_FORMAT",
	}
	for key, env := range envBindings {
		_ = v.BindEnv(key, env)
	}

	cfg := &Config{}

	// Railway/Heroku/Render set a PORT env var. Use it if LADING_SERVER_PORT is not explicitly set.
	serverPort := v.GetString("server.port")
	if port := os.Getenv("PORT"); port != "" && os.Getenv("LADING_SERVER_PORT") == "" {
		serverPort = ":" + port
	}

	cfg.Server = ServerConfig{
		Port:         serverPort,
		ReadTimeout:  v.GetDuration("server.read_timeout"),
		WriteTimeout: v.GetDuration("server.write_timeout"),
		Environment:  v.GetString("server.environment"),
	}
	cfg.DB = DBConfig{
		Host:     v.GetString("db.host"),
		Port:     v.GetInt("db.port"),
		User:     v.GetString("db.user"),
		Password: v.GetString("db.password"),
		Name:     v.GetString("db.name"),
		SSLMode:  v.GetString("db.sslmode"),
		MaxOpen:  v.GetInt("db.max_open"),
		MaxIdle:  v.GetInt("db.max_idle"),
	}
	cfg.JWT = JWTConfig{
		Secret: v.GetString("jwt.secret"),
		Issuer: v.GetString("jwt.issuer"),
	}
	cfg.S3 = S3Config{
		Region:        v.GetString("s3.region"),
		Bucket:        v.GetString("s3.bucket"),
		Endpoint:      v.GetString("s3.endpoint"),
		AccessKey:     v.GetString("s3.access_key"),
		SecretKey:     v.GetString("s3.secret_key"),
		MaxFileSizeMB: v.GetInt64("s3.max_file_size_mb"),
		PresignExpiry: v.GetInt64("s3.presign_expiry"),
	}
	cfg.DocAI = DocAIConfig{
		Endpoint:    v.GetString("docai.endpoint"),
		APIKey:      v.GetString("docai.api_key"),
		TimeoutSecs: v.GetInt("docai.timeout_secs"),
	}
	cfg.Parse = ParseConfig{
		DefaultCountry:  v.GetString("parse.default_country"),
		MinConfidence:   v.GetFloat64("parse.min_confidence"),
		BatchMaxWorkers: v.GetInt("parse.batch_max_workers"),
		BatchMaxFiles:   v.GetInt("parse.batch_max_files"),
	}
	cfg.Log = LogConfig{
		Level:  v.GetString("log.level"),
		Format: v.GetString("log.format"),
	}

	// Parse CORS allowed origins from comma-separated string
	var corsOrigins []string
	for _, o := range strings.Split(v.GetString("cors.allowed_origins"), ",") {
		o = strings.TrimSpace(o)
		if o != "" {
			corsOrigins = append(corsOrigins, o)
		}
	}
	cfg.CORS = CORSConfig{AllowedOrigins: corsOrigins}

	return cfg, nil
}
