package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type AppConfig struct {
	LogLevel       string
	AccountsPath   string
	OutputDir      string
	SnapshotDBPath string
	HTTPTimeout    time.Duration

	// How old a persisted partner directory snapshot may be before a
	// run re-lists partners from the Impact API.
	SnapshotMaxAge time.Duration

	FTPHost string

	NotifyProvider       string
	MailgunDomain        string
	MailgunPrivateAPIKey string
	SenderEmail          string
	SenderName           string
	SummaryRecipient     string
}

var Cfg *AppConfig

func LoadConfig() {
	errEnv := godotenv.Load()
	if errEnv != nil {
		log.Println("Info: No .env file found or error loading .env file. Relying on OS environment variables and defaults. Error (if any):", errEnv)
	} else {
		log.Println(".env file loaded successfully.")
	}

	log.Println("Loading application configuration...")

	httpTimeoutStr := getEnv("HTTP_TIMEOUT", "60s")
	httpTimeout, err := time.ParseDuration(httpTimeoutStr)
	if err != nil {
		log.Printf("WARNING: Invalid HTTP_TIMEOUT format '%s'. Using default 60s. Error: %v", httpTimeoutStr, err)
		httpTimeout = 60 * time.Second
	}

	snapshotMaxAgeStr := getEnv("SNAPSHOT_MAX_AGE", "12h")
	snapshotMaxAge, err := time.ParseDuration(snapshotMaxAgeStr)
	if err != nil {
		log.Printf("WARNING: Invalid SNAPSHOT_MAX_AGE format '%s'. Using default 12h. Error: %v", snapshotMaxAgeStr, err)
		snapshotMaxAge = 12 * time.Hour
	}

	Cfg = &AppConfig{
		LogLevel:       getEnv("LOG_LEVEL", "info"),
		AccountsPath:   getEnv("ACCOUNTS_PATH", "config.toml"),
		OutputDir:      getEnv("OUTPUT_DIR", "transactions"),
		SnapshotDBPath: getEnv("SNAPSHOT_DB_PATH", "./netimpact.db"),
		HTTPTimeout:    httpTimeout,
		SnapshotMaxAge: snapshotMaxAge,

		FTPHost: getEnv("FTP_HOST", "batch.impactradius.com"),

		NotifyProvider:       getEnv("NOTIFY_PROVIDER", "none"),
		MailgunDomain:        getEnv("MAILGUN_DOMAIN", ""),
		MailgunPrivateAPIKey: getEnv("MAILGUN_PRIVATE_API_KEY", ""),
		SenderEmail:          getEnv("SENDER_EMAIL", "noreply@example.com"),
		SenderName:           getEnv("SENDER_NAME", "netimpact"),
		SummaryRecipient:     getEnv("SUMMARY_RECIPIENT", ""),
	}

	if Cfg.NotifyProvider == "mailgun" {
		if Cfg.MailgunDomain == "" {
			log.Fatalf("FATAL: MAILGUN_DOMAIN is required when NOTIFY_PROVIDER is 'mailgun', but it's not set in environment or .env file.")
		}
		if Cfg.MailgunPrivateAPIKey == "" {
			log.Fatalf("FATAL: MAILGUN_PRIVATE_API_KEY is required when NOTIFY_PROVIDER is 'mailgun', but it's not set in environment or .env file.")
		}
		if Cfg.SummaryRecipient == "" {
			log.Fatalf("FATAL: SUMMARY_RECIPIENT must be configured when NOTIFY_PROVIDER is 'mailgun'.")
		}
	}

	log.Printf("Configuration loaded: LogLevel=%s, AccountsPath=%s, OutputDir=%s, NotifyProvider=%s",
		Cfg.LogLevel, Cfg.AccountsPath, Cfg.OutputDir, Cfg.NotifyProvider)
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	log.Printf("Environment variable %s not set, using default: %s", key, fallback)
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		log.Printf("Integer value for %s not set or empty, using default: %d", key, fallback)
		return fallback
	}
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	log.Printf("Invalid integer value for %s ('%s'), using default: %d", key, valueStr, fallback)
	return fallback
}
