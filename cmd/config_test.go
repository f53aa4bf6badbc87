package cmd

import (
	"os"
	"testing"
	"time"

	"fulfillment/internal/core/domain/services"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	config, err := LoadConfig()

	require.NoError(t, err)
	assert.Equal(t, "8080", config.HTTPPort)
	assert.True(t, decimal.RequireFromString("0.075").Equal(config.TaxRate))
	assert.True(t, decimal.NewFromInt(1000).Equal(config.DeliveryFee))
	assert.Equal(t, []string{"localhost:9092"}, config.KafkaBrokers)
	assert.Equal(t, "@every 30s", config.SweepSchedule)
	assert.Equal(t, 24*time.Hour, config.HeatmapWindow)
	assert.Equal(t, "0.0.0.0:8080", config.HTTPAddress())
	assert.Contains(t, config.DSN(), "dbname=fulfillment")
}

func TestLoadConfig_Overrides(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("KAFKA_BROKERS", "kafka-1:9092,kafka-2:9092")
	t.Setenv("DELIVERY_FEE", "750.50")
	t.Setenv("HEATMAP_TTL", "1h")

	config, err := LoadConfig()

	require.NoError(t, err)
	assert.Equal(t, []string{"kafka-1:9092", "kafka-2:9092"}, config.KafkaBrokers)
	assert.Equal(t, "750.5", config.DeliveryFee.String())
	assert.Equal(t, time.Hour, config.HeatmapTTL)
}

func TestLoadConfig_RequiresJWTSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "restored after the test")
	require.NoError(t, os.Unsetenv("JWT_SECRET"))

	_, err := LoadConfig()

	assert.ErrorContains(t, err, "JWT_SECRET")
}

func TestNewCourierMatcher(t *testing.T) {
	planar, err := newCourierMatcher("planar", 0)
	require.NoError(t, err)
	assert.Equal(t, services.DefaultPlanarRadius, planar.Radius())

	haversine, err := newCourierMatcher("haversine", 0)
	require.NoError(t, err)
	assert.Equal(t, services.DefaultHaversineRadius, haversine.Radius())

	custom, err := newCourierMatcher("haversine", 2.5)
	require.NoError(t, err)
	assert.Equal(t, 2.5, custom.Radius())

	_, err = newCourierMatcher("manhattan", 1)
	assert.Error(t, err)
}

func TestConfig_NewLogger(t *testing.T) {
	logger, err := Config{LogLevel: "debug", LogFormat: "json"}.NewLogger()
	require.NoError(t, err)
	assert.Equal(t, logrus.DebugLevel, logger.GetLevel())
	assert.IsType(t, &logrus.JSONFormatter{}, logger.Formatter)

	_, err = Config{LogLevel: "info", LogFormat: "xml"}.NewLogger()
	assert.Error(t, err)

	_, err = Config{LogLevel: "loud", LogFormat: "text"}.NewLogger()
	assert.Error(t, err)
}
