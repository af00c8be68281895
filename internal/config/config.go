package config

import (
	"fmt"
	"os"
	"strconv"
)

// Config holds everything the service reads from the environment.
type Config struct {
	Port string

	PostgresUser     string
	PostgresPassword string
	PostgresDB       string
	PostgresHost     string
	PostgresPort     int

	JWTSecret string

	GoEnv string // dev/prod

	// Invoice PDFs are written here and served under /invoices.
	InvoiceDir string

	// SMTP for order confirmation mails. Optional: when SMTPHost is empty
	// mail dispatch is disabled and orders still succeed.
	SMTPHost string
	SMTPPort int
	SMTPUser string
	SMTPPass string

	// Seed admin. Created at boot when no admin user exists yet.
	AdminEmail    string
	AdminPassword string

	Quote QuoteConfig
}

// QuoteConfig bounds the price calculator.
type QuoteConfig struct {
	MinLiters          int64
	MaxLiters          int64
	FreeDeliveryLiters int64
	DeliveryFee        float64
}

func Load() (Config, error) {
	pgPort, err := mustAtoi("POSTGRES_PORT")
	if err != nil {
		return Config{}, err
	}

	cfg := Config{
		Port: os.Getenv("PORT"),

		PostgresUser:     os.Getenv("POSTGRES_USER"),
		PostgresPassword: os.Getenv("POSTGRES_PASSWORD"),
		PostgresDB:       os.Getenv("POSTGRES_DB"),
		PostgresHost:     os.Getenv("POSTGRES_HOST"),
		PostgresPort:     pgPort,

		JWTSecret: os.Getenv("JWT_SECRET"),
		GoEnv:     getenv("GO_ENV", "dev"),

		InvoiceDir: getenv("INVOICE_DIR", "invoices"),

		SMTPHost: os.Getenv("SMTP_HOST"),
		SMTPPort: atoiDefault("SMTP_PORT", 587),
		SMTPUser: os.Getenv("SMTP_USER"),
		SMTPPass: os.Getenv("SMTP_PASSWORD"),

		AdminEmail:    os.Getenv("ADMIN_EMAIL"),
		AdminPassword: os.Getenv("ADMIN_PASSWORD"),

		Quote: QuoteConfig{
			MinLiters:          int64(atoiDefault("QUOTE_MIN_LITERS", 500)),
			MaxLiters:          int64(atoiDefault("QUOTE_MAX_LITERS", 32000)),
			FreeDeliveryLiters: int64(atoiDefault("QUOTE_FREE_DELIVERY_LITERS", 3000)),
			DeliveryFee:        floatDefault("QUOTE_DELIVERY_FEE", 25.00),
		},
	}

	if cfg.Port == "" {
		return Config{}, fmt.Errorf("PORT is required")
	}
	if cfg.PostgresUser == "" {
		return Config{}, fmt.Errorf("POSTGRES_USER is required")
	}
	if cfg.PostgresPassword == "" {
		return Config{}, fmt.Errorf("POSTGRES_PASSWORD is required")
	}
	if cfg.PostgresDB == "" {
		return Config{}, fmt.Errorf("POSTGRES_DB is required")
	}
	if cfg.PostgresHost == "" {
		return Config{}, fmt.Errorf("POSTGRES_HOST is required")
	}
	if cfg.JWTSecret == "" {
		return Config{}, fmt.Errorf("JWT_SECRET is required")
	}
	if cfg.Quote.MinLiters <= 0 || cfg.Quote.MaxLiters <= cfg.Quote.MinLiters {
		return Config{}, fmt.Errorf("invalid quote liter bounds")
	}

	return cfg, nil
}

func getenv(key string, def string) string {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	return v
}

func mustAtoi(key string) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return 0, fmt.Errorf("%s is required", key)
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%s must be number: %w", key, err)
	}
	return i, nil
}

func atoiDefault(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return i
}

func floatDefault(key string, def float64) float64 {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return def
	}
	return f
}
