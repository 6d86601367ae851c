package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Rental-api/pkg/config"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "rental-api", cfg.App.Name)
	assert.Equal(t, config.CatalogPostgres, cfg.Catalog.Source)
	assert.Equal(t, 5*time.Minute, cfg.Cache.TTL)
	assert.False(t, cfg.MQTT.Enabled)
	assert.Equal(t, 3*time.Second, cfg.MQTT.PublishTimeout)
	assert.Equal(t, "3500", cfg.Billing.DefaultElectricityRate.String())
	assert.Equal(t, "15000", cfg.Billing.DefaultWaterRate.String())
	assert.Equal(t, "0.0.0.0:8080", cfg.HTTP.Addr())
}

func TestLoad_Env(t *testing.T) {
	t.Setenv("CATALOG_SOURCE", "Memory")
	t.Setenv("CATALOG_LATENCY", "300ms")
	t.Setenv("REDIS_ADDR", "localhost:6379")
	t.Setenv("REDIS_DB", "2")
	t.Setenv("BILLING_WATER_RATE", "18000")
	t.Setenv("HTTP_PORT", "9090")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, config.CatalogMemory, cfg.Catalog.Source)
	assert.Equal(t, 300*time.Millisecond, cfg.Catalog.Latency)
	assert.Equal(t, "localhost:6379", cfg.Cache.RedisAddr)
	assert.Equal(t, 2, cfg.Cache.RedisDB)
	assert.Equal(t, "18000", cfg.Billing.DefaultWaterRate.String())
	assert.Equal(t, 9090, cfg.HTTP.Port)
}

func TestLoad_Invalido(t *testing.T) {
	t.Setenv("CATALOG_SOURCE", "mongo")
	_, err := config.Load()
	assert.Error(t, err)

	t.Setenv("CATALOG_SOURCE", "memory")
	t.Setenv("MQTT_ENABLED", "true")
	_, err = config.Load()
	assert.Error(t, err)
}

func TestDBConfig_DSN(t *testing.T) {
	c := config.DBConfig{Host: "db", Port: 5432, User: "app", Password: "p@ss:w", DBName: "rental", SSLMode: "disable"}
	assert.Equal(t, "postgres://app:p%40ss%3Aw@db:5432/rental?sslmode=disable", c.ConnectionString())

	c.DatabaseURL = "postgres://x"
	assert.Equal(t, "postgres://x", c.ConnectionString())
}
