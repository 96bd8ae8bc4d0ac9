package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"
)

// Application modes accepted in APP_MODE. DEV switches logs to text output.
const (
	AppModeProduction = "PROD"
	AppModeDevelop    = "DEV"
)

// Config is the service configuration, read from the environment.
//
// Required: RAZORPAY_KEY_SECRET, TRACKING_BASE_URL. TRACKING_TIMEOUT must be positive.
// An empty AMQP_URL disables event publication.
type Config struct {
	// HTTPPort is the port the HTTP API listens on.
	HTTPPort string `env:"HTTP_PORT" envDefault:"8080"`

	// DB* address the postgres database; see DSN.
	DBHost     string `env:"DB_HOST" envDefault:"localhost"`
	DBPort     string `env:"DB_PORT" envDefault:"5432"`
	DBUser     string `env:"DB_USER" envDefault:"postgres"`
	DBPassword string `env:"DB_PASSWORD"`
	DBName     string `env:"DB_NAME" envDefault:"orders"`
	DBSslMode  string `env:"DB_SSLMODE" envDefault:"disable"`

	// AppMode is AppModeProduction or AppModeDevelop.
	AppMode  string `env:"APP_MODE" envDefault:"DEV"`
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`

	// RazorpayKeySecret signs and verifies payment signatures. RazorpayKeyID is only
	// needed to create gateway orders.
	RazorpayKeyID         string `env:"RAZORPAY_KEY_ID"`
	RazorpayKeySecret     string `env:"RAZORPAY_KEY_SECRET,required"`
	PaymentCurrency       string `env:"PAYMENT_CURRENCY" envDefault:"INR"`
	PaymentMaxAmountMinor int64  `env:"PAYMENT_MAX_AMOUNT_MINOR" envDefault:"10000000"`

	// TrackingBaseURL locates the tracking service. TrackingTimeout bounds every call to it.
	TrackingBaseURL string        `env:"TRACKING_BASE_URL,required"`
	TrackingTimeout time.Duration `env:"TRACKING_TIMEOUT" envDefault:"5s"`

	// RequirePaymentBeforeDelivery refuses to deliver unpaid orders.
	RequirePaymentBeforeDelivery bool `env:"REQUIRE_PAYMENT_BEFORE_DELIVERY" envDefault:"true"`

	// AMQPURL and AMQPExchange configure where order events are published.
	AMQPURL      string `env:"AMQP_URL"`
	AMQPExchange string `env:"AMQP_EXCHANGE" envDefault:"orders"`

	// IncidentReportSchedule is a cron spec for the incident report job.
	IncidentReportSchedule string `env:"INCIDENT_REPORT_SCHEDULE" envDefault:"@every 5m"`
}

// LoadConfig reads envFile into the process environment when it exists and parses the
// environment into a Config. Variables already set win over the file.
func LoadConfig(envFile string) (Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("error loading %s: %w", envFile, err)
		}
	}

	var config Config
	if err := env.Parse(&config); err != nil {
		return Config{}, fmt.Errorf("error parsing env config: %w", err)
	}
	if config.TrackingTimeout <= 0 {
		return Config{}, fmt.Errorf("error parsing env config: TRACKING_TIMEOUT must be positive, got %s", config.TrackingTimeout)
	}
	return config, nil
}

// DSN is the postgres connection string for gorm.
func (c Config) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSslMode)
}
