package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

// Config holds runtime settings read from the environment (and an optional .env file).
type Config struct {
	Env            string
	Port           string
	MongoURI       string
	DBName         string
	JWTSecret      string
	TokenExpiry    time.Duration
	RequestTimeout time.Duration
	AllowedOrigins []string
	CookieSecure   bool
	LogLevel       string
	LogFile        string
	RateLimitRPS   float64
	RateLimitBurst int
	TrustProxy     bool
}

// LoadConfig loads .env (if present) and builds a Config from environment variables.
func LoadConfig() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		logrus.Debug("No .env file found, reading configuration from environment")
	}

	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("APP_ENV", "production")
	v.SetDefault("PORT", "7777")
	v.SetDefault("MONGO_URI", "mongodb://localhost:27017")
	v.SetDefault("MONGO_DB", "devconnect")
	v.SetDefault("JWT_SECRET", "")
	v.SetDefault("TOKEN_EXPIRY", "168h")
	v.SetDefault("REQUEST_TIMEOUT", "10s")
	v.SetDefault("ALLOWED_ORIGINS", "http://localhost:5173")
	v.SetDefault("COOKIE_SECURE", true)
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FILE", "")
	v.SetDefault("RATE_LIMIT_RPS", 5)
	v.SetDefault("RATE_LIMIT_BURST", 10)
	v.SetDefault("TRUST_PROXY", false)

	cfg := &Config{
		Env:            v.GetString("APP_ENV"),
		Port:           v.GetString("PORT"),
		MongoURI:       v.GetString("MONGO_URI"),
		DBName:         v.GetString("MONGO_DB"),
		JWTSecret:      v.GetString("JWT_SECRET"),
		TokenExpiry:    v.GetDuration("TOKEN_EXPIRY"),
		RequestTimeout: v.GetDuration("REQUEST_TIMEOUT"),
		AllowedOrigins: splitList(v.GetString("ALLOWED_ORIGINS")),
		CookieSecure:   v.GetBool("COOKIE_SECURE"),
		LogLevel:       v.GetString("LOG_LEVEL"),
		LogFile:        v.GetString("LOG_FILE"),
		RateLimitRPS:   v.GetFloat64("RATE_LIMIT_RPS"),
		RateLimitBurst: v.GetInt("RATE_LIMIT_BURST"),
		TrustProxy:     v.GetBool("TRUST_PROXY"),
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.JWTSecret == "" {
		if c.Env != "development" {
			return fmt.Errorf("JWT_SECRET must be set when APP_ENV is %q", c.Env)
		}
		c.JWTSecret = "dev-secret-change-me"
	}
	if c.TokenExpiry <= 0 {
		return fmt.Errorf("TOKEN_EXPIRY must be positive, got %s", c.TokenExpiry)
	}
	if c.RequestTimeout <= 0 {
		return fmt.Errorf("REQUEST_TIMEOUT must be positive, got %s", c.RequestTimeout)
	}
	return nil
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
