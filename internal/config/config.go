package config

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
)

// Client holds the settings pilotctl and other callers need to reach the
// auth server.
type Client struct {
	Host     string        `env:"PILOT_HOST"`
	Timeout  time.Duration `env:"PILOT_TIMEOUT" envDefault:"10s"`
	LogLevel string        `env:"LOG_LEVEL" envDefault:"info"`
}

// LoadClient reads client configuration from environ, or from the process
// environment when environ is nil.
func LoadClient(environ map[string]string) (Client, error) {
	var cfg Client
	if err := env.ParseWithOptions(&cfg, env.Options{Environment: environ}); err != nil {
		return Client{}, fmt.Errorf("parse env: %w", err)
	}
	cfg.Host = strings.TrimRight(strings.TrimSpace(cfg.Host), "/")
	if cfg.Host == "" {
		return Client{}, errors.New("PILOT_HOST is required")
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}
	return cfg, nil
}

// Server holds runtime configuration of the reference auth server.
type Server struct {
	Port        string
	DatabaseURL string
	JWTSecret   string
	JWTIssuer   string
	JWTTTL      time.Duration
	CORSOrigins []string
	LogLevel    string
}

type serverEnv struct {
	Port          string `env:"PORT"`
	DatabaseURL   string `env:"DATABASE_URL"`
	JWTSecret     string `env:"JWT_SECRET"`
	JWTIssuer     string `env:"JWT_ISSUER"`
	JWTTTLMinutes string `env:"JWT_TTL_MINUTES"`
	CORSOrigins   string `env:"CORS_ALLOWED_ORIGINS"`
	LogLevel      string `env:"LOG_LEVEL"`
}

// LoadServer reads server configuration from the environment and performs
// minimal validation. An empty DATABASE_URL selects the in-memory store.
func LoadServer() (Server, error) {
	var raw serverEnv
	if err := env.Parse(&raw); err != nil {
		return Server{}, fmt.Errorf("parse env: %w", err)
	}

	cfg := Server{
		Port:        fallback(raw.Port, "8080"),
		DatabaseURL: strings.TrimSpace(raw.DatabaseURL),
		JWTSecret:   strings.TrimSpace(raw.JWTSecret),
		JWTIssuer:   fallback(raw.JWTIssuer, "pilot-auth"),
		CORSOrigins: parseCSV(fallback(raw.CORSOrigins, "*")),
		LogLevel:    fallback(raw.LogLevel, "info"),
	}

	minutes := fallback(raw.JWTTTLMinutes, "60")
	if ttlMinutes, err := strconv.Atoi(minutes); err == nil && ttlMinutes > 0 {
		cfg.JWTTTL = time.Duration(ttlMinutes) * time.Minute
	} else {
		cfg.JWTTTL = 60 * time.Minute
	}

	if cfg.JWTSecret == "" {
		return Server{}, errors.New("JWT_SECRET is required")
	}

	return cfg, nil
}

// HTTPAddress returns the host:port pair for the HTTP server to bind to.
func (c Server) HTTPAddress() string {
	return fmt.Sprintf(":%s", c.Port)
}

func fallback(value, def string) string {
	if strings.TrimSpace(value) == "" {
		return def
	}
	return strings.TrimSpace(value)
}

func parseCSV(input string) []string {
	parts := strings.Split(input, ",")
	var out []string
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			out = append(out, trimmed)
		}
	}
	if len(out) == 0 {
		return []string{"*"}
	}
	return out
}
