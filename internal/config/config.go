package config

import (
	"errors"
	"fmt"
	"net"
	"net/url"
	"os"
	"time"

	pkgcfg "github.com/Skotchmaster/storefront/pkg/config"
	pkgdb "github.com/Skotchmaster/storefront/pkg/db"
	"github.com/Skotchmaster/storefront/pkg/tokens"
)

type Config struct {
	ServiceName string
	ServerPort  int
	LogLevel    string

	DBDriver    string
	DatabaseURL string
	SQLitePath  string

	JWTSecret []byte
	TokenTTL  time.Duration

	SignupBalance float64

	KafkaBrokers []string
}

func Load() Config {
	return Config{
		ServiceName: pkgcfg.EnvDefault("SERVICE_NAME", "storefront"),
		ServerPort:  pkgcfg.EnvIntDefault("SERVER_PORT", 8080),
		LogLevel:    pkgcfg.EnvDefault("LOG_LEVEL", "info"),

		DBDriver:    pkgcfg.EnvDefault("DB_DRIVER", pkgdb.DriverPostgres),
		DatabaseURL: databaseURL(),
		SQLitePath:  pkgcfg.EnvDefault("SQLITE_PATH", "storefront.db"),

		JWTSecret: []byte(os.Getenv("JWT_SECRET")),
		TokenTTL:  pkgcfg.EnvDurationDefault("TOKEN_TTL", tokens.DefaultTTL),

		SignupBalance: pkgcfg.EnvFloatDefault("SIGNUP_BALANCE", 1000),

		KafkaBrokers: pkgcfg.CSV(os.Getenv("KAFKA_BROKERS")),
	}
}

// databaseURL prefers DATABASE_URL and falls back to the DB_HOST/DB_PORT/
// DB_USER/DB_PASSWORD/DB_NAME set.
func databaseURL() string {
	if v := os.Getenv("DATABASE_URL"); v != "" {
		return v
	}
	host := os.Getenv("DB_HOST")
	if host == "" {
		return ""
	}
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(os.Getenv("DB_USER"), os.Getenv("DB_PASSWORD")),
		Host:     net.JoinHostPort(host, pkgcfg.EnvDefault("DB_PORT", "5432")),
		Path:     "/" + os.Getenv("DB_NAME"),
		RawQuery: "sslmode=disable",
	}
	return u.String()
}

// DSN returns the connection string for the configured driver.
func (c Config) DSN() string {
	if c.DBDriver == pkgdb.DriverSQLite {
		return c.SQLitePath
	}
	return c.DatabaseURL
}

func (c Config) Validate() error {
	var errs []error
	if len(c.JWTSecret) == 0 {
		errs = append(errs, errors.New("missing required env JWT_SECRET"))
	}
	switch c.DBDriver {
	case pkgdb.DriverPostgres:
		if c.DatabaseURL == "" {
			errs = append(errs, errors.New("missing required env DATABASE_URL"))
		}
	case pkgdb.DriverSQLite:
	default:
		errs = append(errs, fmt.Errorf("unsupported DB_DRIVER %q", c.DBDriver))
	}
	return errors.Join(errs...)
}
