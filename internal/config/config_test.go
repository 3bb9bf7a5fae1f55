package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	for _, k := range []string{"SERVICE_NAME", "SERVER_PORT", "DB_DRIVER", "DATABASE_URL", "DB_HOST", "JWT_SECRET", "TOKEN_TTL", "SIGNUP_BALANCE", "KAFKA_BROKERS"} {
		t.Setenv(k, "")
	}

	cfg := Load()
	assert.Equal(t, "storefront", cfg.ServiceName)
	assert.Equal(t, 8080, cfg.ServerPort)
	assert.Equal(t, "postgres", cfg.DBDriver)
	assert.Equal(t, 24*time.Hour, cfg.TokenTTL)
	assert.InDelta(t, 1000, cfg.SignupBalance, 1e-9)
	assert.Nil(t, cfg.KafkaBrokers)

	err := cfg.Validate()
	require.Error(t, err)
	assert.ErrorContains(t, err, "JWT_SECRET")
	assert.ErrorContains(t, err, "DATABASE_URL")
}

func TestLoad_FromEnv(t *testing.T) {
	t.Setenv("DATABASE_URL", "")
	t.Setenv("DB_HOST", "db")
	t.Setenv("DB_PORT", "6543")
	t.Setenv("DB_USER", "shop")
	t.Setenv("DB_PASSWORD", "p@ss")
	t.Setenv("DB_NAME", "storefront")
	t.Setenv("JWT_SECRET", "s3cret")
	t.Setenv("TOKEN_TTL", "2h")
	t.Setenv("SIGNUP_BALANCE", "250.5")
	t.Setenv("KAFKA_BROKERS", "k1:9092,k2:9092")

	cfg := Load()
	assert.Equal(t, "postgres://shop:p%40ss@db:6543/storefront?sslmode=disable", cfg.DatabaseURL)
	assert.Equal(t, cfg.DatabaseURL, cfg.DSN())
	assert.Equal(t, []byte("s3cret"), cfg.JWTSecret)
	assert.Equal(t, 2*time.Hour, cfg.TokenTTL)
	assert.InDelta(t, 250.5, cfg.SignupBalance, 1e-9)
	assert.Equal(t, []string{"k1:9092", "k2:9092"}, cfg.KafkaBrokers)
	assert.NoError(t, cfg.Validate())
}

func TestValidate_SQLite(t *testing.T) {
	cfg := Config{DBDriver: "sqlite", SQLitePath: "shop.db", JWTSecret: []byte("x")}
	assert.NoError(t, cfg.Validate())
	assert.Equal(t, "shop.db", cfg.DSN())

	cfg.DBDriver = "mysql"
	assert.ErrorContains(t, cfg.Validate(), "unsupported")
}
