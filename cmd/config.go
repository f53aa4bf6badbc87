package cmd

import (
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

type Config struct {
	HTTPPort string `envconfig:"HTTP_PORT" default:"8080"`

	DBHost     string `envconfig:"DB_HOST" default:"localhost"`
	DBPort     string `envconfig:"DB_PORT" default:"5432"`
	DBUser     string `envconfig:"DB_USER" default:"postgres"`
	DBPassword string `envconfig:"DB_PASSWORD" default:"postgres"`
	DBName     string `envconfig:"DB_NAME" default:"fulfillment"`
	DBSslMode  string `envconfig:"DB_SSLMODE" default:"disable"`

	JWTSecret string `envconfig:"JWT_SECRET" required:"true"`
	JWTIssuer string `envconfig:"JWT_ISSUER" default:"fulfillment"`

	KafkaBrokers  []string `envconfig:"KAFKA_BROKERS" default:"localhost:9092"`
	KafkaClientID string   `envconfig:"KAFKA_CLIENT_ID" default:"fulfillment"`
	KafkaTopic    string   `envconfig:"KAFKA_TOPIC" default:"fulfillment.events"`

	RedisAddr  string `envconfig:"REDIS_ADDR" default:"localhost:6379"`
	RedisDB    int    `envconfig:"REDIS_DB" default:"0"`
	HeatmapKey string `envconfig:"HEATMAP_KEY" default:"fulfillment:heatmap"`

	TaxRate     decimal.Decimal `envconfig:"TAX_RATE" default:"0.075"`
	DeliveryFee decimal.Decimal `envconfig:"DELIVERY_FEE" default:"1000"`

	// MatchingRadius of zero picks the metric's default radius.
	MatchingMetric string  `envconfig:"MATCHING_METRIC" default:"planar"`
	MatchingRadius float64 `envconfig:"MATCHING_RADIUS" default:"0"`

	SweepSchedule string `envconfig:"SWEEP_SCHEDULE" default:"@every 30s"`
	SweepLimit    int    `envconfig:"SWEEP_LIMIT" default:"50"`

	HeatmapSchedule string        `envconfig:"HEATMAP_SCHEDULE" default:"@every 5m"`
	HeatmapWindow   time.Duration `envconfig:"HEATMAP_WINDOW" default:"24h"`
	HeatmapTTL      time.Duration `envconfig:"HEATMAP_TTL" default:"30m"`
	HeatmapMaxCells int           `envconfig:"HEATMAP_MAX_CELLS" default:"200"`

	DispatchBuffer int `envconfig:"DISPATCH_BUFFER" default:"256"`

	LogLevel  string `envconfig:"LOG_LEVEL" default:"info"`
	LogFormat string `envconfig:"LOG_FORMAT" default:"text"`
}

// LoadConfig reads an optional .env file, then the environment.
func LoadConfig() (Config, error) {
	_ = godotenv.Load()

	var config Config
	if err := envconfig.Process("", &config); err != nil {
		return Config{}, fmt.Errorf("load config: %w", err)
	}
	return config, nil
}

func (c Config) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSslMode)
}

func (c Config) HTTPAddress() string {
	return "0.0.0.0:" + c.HTTPPort
}

// NewLogger builds the root logger from LOG_LEVEL and LOG_FORMAT.
func (c Config) NewLogger() (*logrus.Logger, error) {
	level, err := logrus.ParseLevel(c.LogLevel)
	if err != nil {
		return nil, err
	}

	logger := logrus.New()
	logger.SetLevel(level)
	switch c.LogFormat {
	case "json":
		logger.SetFormatter(&logrus.JSONFormatter{})
	case "text":
		logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	default:
		return nil, fmt.Errorf("unknown log format %q", c.LogFormat)
	}
	return logger, nil
}
