package config

import (
	"os"
	"strconv"
)

// SMTPConfig holds the outbound mail settings. Mail is optional:
// when no credentials are configured the scanner still records in-app
// notifications and never attempts delivery.
type SMTPConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	From     string
}

// Configured reports whether outbound mail can be attempted.
func (s SMTPConfig) Configured() bool {
	return s.User != "" && s.Password != ""
}

type Config struct {
	Port        string
	FrontendURL string
	SMTP        SMTPConfig
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// Load reads the configuration from the environment. godotenv is loaded
// by main before this runs.
func Load() *Config {
	smtpPort, err := strconv.Atoi(getEnv("SMTP_PORT", "587"))
	if err != nil {
		smtpPort = 587
	}

	return &Config{
		Port:        getEnv("PORT", "8080"),
		FrontendURL: getEnv("FRONTEND_URL", "http://localhost:3000"),
		SMTP: SMTPConfig{
			Host:     getEnv("SMTP_HOST", "smtp.gmail.com"),
			Port:     smtpPort,
			User:     os.Getenv("SMTP_USER"),
			Password: os.Getenv("SMTP_PASSWORD"),
			From:     getEnv("SMTP_FROM", os.Getenv("SMTP_USER")),
		},
	}
}
