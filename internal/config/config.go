package config

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

// Config represents the application configuration structure.
// It contains settings for the environment, HTTP server, database connection,
// outbound providers and graceful shutdown behavior.
type Config struct {
	// Environment specifies the current running environment (development, production, etc.)
	Environment string `env:"ENVIRONMENT" env-default:"development" yaml:"environment"`
	// Debug enables debug logs and exposes underlying error details in API responses
	Debug bool `env:"DEBUG" env-default:"false" yaml:"debug"`
	// AppName is used in messages sent to users
	AppName string `env:"APP_NAME" env-default:"Artisan" yaml:"appName"`
	// AppURL is the public base URL of the service
	AppURL string `env:"APP_URL" env-default:"http://localhost:8080" yaml:"appURL"`

	// HTTP contains all HTTP server related configurations
	HTTP struct {
		// Addr is the address and port the HTTP server will listen on
		Addr string `env:"HTTP_ADDR" env-default:":8080" yaml:"addr"`
		// ReadTimeout is the maximum duration for reading the entire request, including the body
		ReadTimeout time.Duration `env:"HTTP_READ_TIMEOUT" env-default:"1m" yaml:"readTimeout"`
		// ReadHeaderTimeout is the amount of time allowed to read request headers
		ReadHeaderTimeout time.Duration `env:"HTTP_READ_HEADER_TIMEOUT" env-default:"10s" yaml:"readHeaderTimeout"`
		// WriteTimeout is the maximum duration before timing out writes of the response
		WriteTimeout time.Duration `env:"HTTP_WRITE_TIMEOUT" env-default:"2m" yaml:"writeTimeout"`
		// IdleTimeout is the maximum amount of time to wait for the next request when keep-alives are enabled
		IdleTimeout time.Duration `env:"HTTP_IDLE_TIMEOUT" env-default:"2m" yaml:"idleTimeout"`
		// RequestTimeout is the maximum time allowed for processing a single request
		RequestTimeout time.Duration `env:"HTTP_REQUEST_TIMEOUT" env-default:"10s" yaml:"requestTimeout"`
		// MaxHeaderBytes controls the maximum number of bytes the server will read parsing the request header
		MaxHeaderBytes int `env:"HTTP_MAX_HEADER_BYTES" env-default:"0" yaml:"maxHeaderBytes"`
		// MetricsPath defines the URL path where metrics are exposed
		MetricsPath string `env:"HTTP_METRICS_PATH" env-default:"/metrics" yaml:"metricsPath"`
		// AllowedOrigins lists the origins allowed by CORS. Empty or "*" allows any origin
		AllowedOrigins []string `env:"HTTP_ALLOWED_ORIGINS" env-separator:"," yaml:"allowedOrigins"`
	} `yaml:"http"`

	// Database contains all database connection related configurations
	Database struct {
		// Username for database authentication
		Username string `env:"DATABASE_USERNAME" env-default:"myuser" yaml:"username"`
		// Password for database authentication
		Password string `env:"DATABASE_PASSWORD" env-default:"mypassword" yaml:"password"`
		// Host is the database server hostname or IP address
		Host string `env:"DATABASE_HOST" env-default:"localhost" yaml:"host"`
		// Port is the database server port number
		Port int `env:"DATABASE_PORT" env-default:"5432" yaml:"port"`
		// SslMode defines the SSL mode for the database connection
		SslMode string `env:"DATABASE_SSL_MODE" env-default:"disable" yaml:"sslMode"`
		// DatabaseName is the name of the database to connect to
		DatabaseName string `env:"DATABASE_NAME" env-default:"artisan" yaml:"name"`
		// MaxOpenConnections limits the number of open connections to the database
		MaxOpenConnections int `env:"DATABASE_MAX_OPEN_CONNECTIONS" env-default:"10" yaml:"maxOpenConnections"`
		// MaxIdleConnections limits the number of connections in the idle connection pool
		MaxIdleConnections int `env:"DATABASE_MAX_IDLE_CONNECTIONS" env-default:"8" yaml:"maxIdleConnections"`
		// ConnMaxLifetime is the maximum amount of time a connection may be reused
		ConnMaxLifetime time.Duration `env:"DATABASE_CONNECTION_MAX_LIFETIME" env-default:"3m" yaml:"connMaxLifetime"`
		// ConnMaxIdleTime is the maximum amount of time a connection may be idle
		ConnMaxIdleTime time.Duration `env:"DATABASE_CONNECTION_MAX_IDLE_TIME" env-default:"3m" yaml:"connMaxIdleTime"`
	} `yaml:"database"`

	// JWT configures bearer token signing and verification (RS256, PEM encoded keys)
	JWT struct {
		PrivateKey string        `env:"JWT_PRIVATE_KEY" yaml:"privateKey"`
		PublicKey  string        `env:"JWT_PUBLIC_KEY"  yaml:"publicKey"`
		TTL        time.Duration `env:"JWT_TTL"         env-default:"720h" yaml:"ttl"`
	} `yaml:"jwt"`

	// OTP configures one-time password validity and resend throttling
	OTP struct {
		TTL            time.Duration `env:"OTP_TTL"             env-default:"10m" yaml:"ttl"`
		ResendInterval time.Duration `env:"OTP_RESEND_INTERVAL" env-default:"1m"  yaml:"resendInterval"`
	} `yaml:"otp"`

	// Media configures where uploads are stored and how they are served
	Media struct {
		// BaseURL is prefixed to stored relative paths
		BaseURL          string `env:"MEDIA_BASE_URL"          env-default:"http://localhost:8080/storage" yaml:"baseURL"`
		Root             string `env:"MEDIA_ROOT"              env-default:"./storage"                     yaml:"root"`
		MaxDimension     int    `env:"MEDIA_MAX_DIMENSION"     env-default:"800"                           yaml:"maxDimension"`
		MaxBytes         int    `env:"MEDIA_MAX_BYTES"         env-default:"2097152"                       yaml:"maxBytes"`
		PortfolioQuality int    `env:"MEDIA_PORTFOLIO_QUALITY" env-default:"75"                            yaml:"portfolioQuality"`
		ProfileQuality   int    `env:"MEDIA_PROFILE_QUALITY"   env-default:"65"                            yaml:"profileQuality"`
		DefaultAvatar    string `env:"MEDIA_DEFAULT_AVATAR"    env-default:"https://images.unsplash.com/photo-1507003211169-0a1dd7228f2d?w=300&h=300&fit=crop&crop=face" yaml:"defaultAvatar"` //nolint: lll
	} `yaml:"media"`

	// Worker configures background delivery jobs
	Worker struct {
		Enabled       bool    `env:"WORKER_ENABLED"         env-default:"true" yaml:"enabled"`
		MaxWorkers    int     `env:"WORKER_MAX_WORKERS"     env-default:"20"   yaml:"maxWorkers"`
		MaxAttempts   int     `env:"WORKER_MAX_ATTEMPTS"    env-default:"5"    yaml:"maxAttempts"`
		RatePerSecond float64 `env:"WORKER_RATE_PER_SECOND" env-default:"10"   yaml:"ratePerSecond"`
	} `yaml:"worker"`

	// Twilio configures WhatsApp OTP delivery and phone verification
	Twilio struct {
		AccountSID       string `env:"TWILIO_SID"         yaml:"accountSID"`
		AuthToken        string `env:"TWILIO_KEY"         yaml:"authToken"`
		WhatsAppFrom     string `env:"TWILIO_WHATSAPP_FROM" yaml:"whatsAppFrom"`
		ContentSID       string `env:"TWILIO_CONTENT_SID" yaml:"contentSID"`
		VerifyServiceSID string `env:"TWILIO_SERVICE_SID" yaml:"verifyServiceSID"`
	} `yaml:"twilio"`

	// SendChamp configures the SMS fallback channel
	SendChamp struct {
		APIKey     string `env:"SENDCHAMP_KEY"         yaml:"apiKey"`
		SenderName string `env:"SENDCHAMP_SENDER_NAME" yaml:"senderName"`
	} `yaml:"sendChamp"`

	// SMTP configures outgoing e-mail
	SMTP struct {
		Host       string `env:"SMTP_HOST"        env-default:"localhost" yaml:"host"`
		Port       int    `env:"SMTP_PORT"        env-default:"587"       yaml:"port"`
		Username   string `env:"SMTP_USERNAME"    yaml:"username"`
		Password   string `env:"SMTP_PASSWORD"    yaml:"password"`
		From       string `env:"SMTP_FROM"        env-default:"no-reply@localhost" yaml:"from"`
		AdminEmail string `env:"SMTP_ADMIN_EMAIL" yaml:"adminEmail"`
	} `yaml:"smtp"`

	// Kafka configures chat message fan-out. No brokers disables publishing.
	Kafka struct {
		Brokers []string `env:"KAFKA_BROKERS" env-separator:"," yaml:"brokers"`
		Topic   string   `env:"KAFKA_TOPIC"   env-default:"chat-messages" yaml:"topic"`
	} `yaml:"kafka"`

	// GracefulShutdownTimeout is the maximum duration to wait for ongoing requests to complete during shutdown
	GracefulShutdownTimeout time.Duration `env:"GRACEFUL_SHUTDOWN_TIMEOUT" env-default:"10s" yaml:"gracefulShutdownTimeout"` //nolint: lll
}

// Load receives the path for yaml config file and returns a filled Config struct.
// Variables from an optional .env file in the working directory are exported
// first so they take part in env overrides.
func Load(configPath string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("could not load .env file: %w", err)
	}

	var cfg Config
	err := cleanenv.ReadConfig(configPath, &cfg)
	if err != nil {
		return nil, fmt.Errorf("could not read config: %w", err)
	}

	return &cfg, nil
}
