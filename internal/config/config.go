package config

import (
	"errors"
	"log"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
)

const (
	defaultLocalStorePath = "shopfront.db"
	defaultShippingCost   = "5.99"
	defaultCurrency       = "USD"
)

var ErrMissingDBHost = errors.New("environment variables not loaded properly: DB_HOST is empty")

type Config struct {
	DBHost         string
	DBUser         string
	DBPassword     string
	DBName         string
	DBPort         string
	DBSSLMode      string
	AppEnv         string
	JWTSecret      string
	LocalStorePath string
	ShippingCost   decimal.Decimal
	Currency       string
}

// Load reads the environment (and a .env file when present) into a Config.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		DBHost:         os.Getenv("DB_HOST"),
		DBUser:         os.Getenv("DB_USER"),
		DBPassword:     os.Getenv("DB_PASSWORD"),
		DBName:         os.Getenv("DB_NAME"),
		DBPort:         os.Getenv("DB_PORT"),
		DBSSLMode:      getenv("DB_SSLMODE", "disable"),
		AppEnv:         os.Getenv("APP_ENV"),
		JWTSecret:      os.Getenv("JWT_SECRET"),
		LocalStorePath: getenv("LOCAL_STORE_PATH", defaultLocalStorePath),
		Currency:       strings.ToUpper(getenv("CURRENCY", defaultCurrency)),
	}

	shipping, err := decimal.NewFromString(getenv("SHIPPING_COST", defaultShippingCost))
	if err != nil || shipping.IsNegative() {
		shipping = decimal.RequireFromString(defaultShippingCost)
	}
	cfg.ShippingCost = shipping

	if cfg.DBHost == "" {
		return nil, ErrMissingDBHost
	}

	return cfg, nil
}

func LoadConfig() *Config {
	cfg, err := Load()
	if err != nil {
		log.Fatal(err)
	}
	return cfg
}

func getenv(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}
