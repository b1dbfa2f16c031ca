package config

import (
	"errors"
	"fmt"
	"net"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
)

type Config struct {
	AppPort string

	MySQLHost string
	MySQLPort string
	MySQLDB   string
	MySQLUser string
	MySQLPass string

	RedisAddr string
	RedisDB   int

	IdempTTLSecs   int
	SummaryTTLSecs int

	// Seed values for a fresh fund; ignored once the settings row exists.
	SponsorInitialInvestment decimal.Decimal
	AnnualInterestRate       decimal.Decimal
}

func getenv(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}

func getdecimal(k, d string) decimal.Decimal {
	raw := getenv(k, d)
	if v, err := decimal.NewFromString(raw); err == nil {
		return v
	}
	v, _ := decimal.NewFromString(d)
	return v
}

func Load() *Config {
	// .env is a convenience for local runs; absent files are fine.
	_ = godotenv.Load()

	c := &Config{
		AppPort:   getenv("APP_PORT", "8080"),
		MySQLHost: getenv("MYSQL_HOST", "mysql"),
		MySQLPort: getenv("MYSQL_PORT", "3306"),
		MySQLDB:   getenv("MYSQL_DB", "welfarefund"),
		MySQLUser: getenv("MYSQL_USER", "welfarefund"),
		MySQLPass: getenv("MYSQL_PASS", "welfarefund"),

		RedisAddr:      getenv("REDIS_ADDR", "redis:6379"),
		IdempTTLSecs:   300,
		SummaryTTLSecs: 30,

		SponsorInitialInvestment: getdecimal("SPONSOR_INITIAL_INVESTMENT", "250000"),
		AnnualInterestRate:       getdecimal("ANNUAL_INTEREST_RATE", "0.05"),
	}
	if v := os.Getenv("REDIS_DB"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.RedisDB = n
		}
	}
	if v := os.Getenv("IDEMPOTENCY_TTL_SECONDS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.IdempTTLSecs = n
		}
	}
	if v := os.Getenv("SUMMARY_TTL_SECONDS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.SummaryTTLSecs = n
		}
	}
	return c
}

func (c *Config) Validate() error {
	if c.MySQLHost == "" || c.MySQLPort == "" || c.MySQLDB == "" || c.MySQLUser == "" {
		return errors.New("missing MySQL config (MYSQL_HOST/PORT/DB/USER)")
	}
	if _, err := net.LookupPort("tcp", c.MySQLPort); err != nil {
		return fmt.Errorf("invalid MYSQL_PORT %q: %w", c.MySQLPort, err)
	}
	if c.AppPort == "" {
		return errors.New("missing APP_PORT")
	}
	if c.SponsorInitialInvestment.Sign() < 0 {
		return errors.New("SPONSOR_INITIAL_INVESTMENT must not be negative")
	}
	return nil
}

func (c *Config) mysqlAddr() string { return net.JoinHostPort(c.MySQLHost, c.MySQLPort) }

func (c *Config) MySQLDSN() string {
	// multiStatements=true is handy for migrations; parseTime needed for DATETIME
	return fmt.Sprintf("%s:%s@tcp(%s)/%s?multiStatements=true&parseTime=true&charset=utf8mb4,utf8",
		c.MySQLUser, c.MySQLPass, c.mysqlAddr(), c.MySQLDB)
}
