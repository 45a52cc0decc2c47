package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"restaurant/internal/pkg/logging"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

type Config struct {
	HTTPPort string `env:"HTTP_PORT" envDefault:"8080"`

	DBHost     string `env:"DB_HOST" envDefault:"localhost"`
	DBPort     string `env:"DB_PORT" envDefault:"5432"`
	DBUser     string `env:"DB_USER" envDefault:"postgres"`
	DBPassword string `env:"DB_PASSWORD"`
	DBName     string `env:"DB_NAME" envDefault:"restaurant"`
	DBSslMode  string `env:"DB_SSLMODE" envDefault:"disable"`

	// Optional broker transports; empty disables them.
	RabbitMQURL      string   `env:"RABBITMQ_URL"`
	RabbitMQExchange string   `env:"RABBITMQ_EXCHANGE" envDefault:"restaurant.events"`
	KafkaBrokers     []string `env:"KAFKA_BROKERS" envSeparator:","`
	KafkaTopic       string   `env:"KAFKA_TOPIC" envDefault:"restaurant.events"`

	OTELServiceName string `env:"OTEL_SERVICE_NAME" envDefault:"restaurant"`
	OTELEndpoint    string `env:"OTEL_EXPORTER_OTLP_ENDPOINT"`

	LogLevel      string `env:"LOG_LEVEL" envDefault:"info"`
	LogFile       string `env:"LOG_FILE"`
	LogMaxSizeMB  int    `env:"LOG_MAX_SIZE_MB" envDefault:"100"`
	LogMaxBackups int    `env:"LOG_MAX_BACKUPS" envDefault:"5"`
	LogMaxAgeDays int    `env:"LOG_MAX_AGE_DAYS" envDefault:"14"`

	WSSweepSchedule     string        `env:"WS_SWEEP_SCHEDULE" envDefault:"*/30 * * * * *"`
	PropagatorWorkers   int           `env:"PROPAGATOR_WORKERS" envDefault:"4"`
	PropagatorQueueSize int           `env:"PROPAGATOR_QUEUE_SIZE" envDefault:"1024"`
	PropagatorTimeout   time.Duration `env:"PROPAGATOR_PUBLISH_TIMEOUT" envDefault:"5s"`
	ShutdownTimeout     time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"15s"`
}

// LoadConfig reads the optional .env files, then the process environment.
// Variables already set in the environment win over .env values.
func LoadConfig(files ...string) (Config, error) {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("load %s: %w", f, err)
		}
	}

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}

func (c Config) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSslMode)
}

func (c Config) Logging() logging.Config {
	return logging.Config{
		Level:      c.LogLevel,
		File:       c.LogFile,
		MaxSizeMB:  c.LogMaxSizeMB,
		MaxBackups: c.LogMaxBackups,
		MaxAgeDays: c.LogMaxAgeDays,
	}
}
