package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	HTTPAddr  string
	DBPath    string
	OutputDir string

	CatalogSource   string
	CatalogCSVURL   string
	CatalogXLSXPath string

	GoogleCredentialsJSON string
	SheetURL              string
	SheetID               string
	SheetTab              string
	SheetsTimeoutMs       int
	SheetsRateLimitRPS    int
	SheetsMaxAttempts     int

	ResultLimit int
	LookupLog   bool

	LogLevel  string
	LogFormat string
}

func Load() (Config, error) {
	_ = godotenv.Load()

	cwd, err := os.Getwd()
	if err != nil {
		return Config{}, err
	}

	cfg := Config{
		HTTPAddr:  getEnv("HTTP_ADDR", ":8080"),
		DBPath:    getEnv("DB_PATH", filepath.Join(cwd, "data", "app.db")),
		OutputDir: getEnv("OUTPUT_DIR", filepath.Join(cwd, "out")),

		CatalogSource:   strings.ToLower(strings.TrimSpace(getEnv("CATALOG_SOURCE", "sheets"))),
		CatalogCSVURL:   getEnv("CATALOG_CSV_URL", ""),
		CatalogXLSXPath: getEnv("CATALOG_XLSX_PATH", ""),

		GoogleCredentialsJSON: getEnv("GOOGLE_CREDENTIALS_JSON", ""),
		SheetURL:              getEnv("SHEET_URL", "https://docs.google.com/spreadsheets/d/1_ZUG0tYgooafAtuXjZSVdt3XMFUHail67ts5Wy31A_U"),
		SheetID:               getEnv("SHEET_ID", ""),
		SheetTab:              getEnv("SHEET_TAB", "Data Pull"),
		SheetsTimeoutMs:       getEnvInt("SHEETS_TIMEOUT_MS", 30000),
		SheetsRateLimitRPS:    getEnvInt("SHEETS_RATE_LIMIT_RPS", 5),
		SheetsMaxAttempts:     getEnvInt("SHEETS_MAX_ATTEMPTS", 5),

		ResultLimit: getEnvInt("RESULT_LIMIT", 5),
		LookupLog:   getEnvBool("LOOKUP_LOG", true),

		LogLevel:  getEnv("LOG_LEVEL", "info"),
		LogFormat: getEnv("LOG_FORMAT", "text"),
	}

	return cfg, nil
}

func (c Config) Require(name, value string) error {
	if strings.TrimSpace(value) == "" {
		return fmt.Errorf("missing required env var: %s", name)
	}
	return nil
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	value := getEnv(key, "")
	if value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvBool(key string, fallback bool) bool {
	value := strings.ToLower(strings.TrimSpace(getEnv(key, "")))
	if value == "" {
		return fallback
	}
	if value == "1" || value == "true" || value == "yes" || value == "on" {
		return true
	}
	if value == "0" || value == "false" || value == "no" || value == "off" {
		return false
	}
	return fallback
}
