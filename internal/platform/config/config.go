// Package config loads server settings from the environment. A .env file in the
// working directory is read first when present; real environment variables win.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds server settings.
type Config struct {
	Port                         string
	ProjectID                    string
	GoogleApplicationCredentials string
	AvatarBucket                 string
	AvatarBaseURL                string
	ReportsRequired              int
	CORSAllowedOrigins           []string
	LogLevel                     string
}

// Load reads an optional .env file and then the environment.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("loading .env: %w", err)
	}
	return FromEnv()
}

// FromEnv builds a Config from the current environment only.
func FromEnv() (Config, error) {
	cfg := Config{
		Port:                         getEnv("PORT", "8080"),
		ProjectID:                    firstEnv("FIREBASE_PROJECT_ID", "GOOGLE_CLOUD_PROJECT"),
		GoogleApplicationCredentials: os.Getenv("GOOGLE_APPLICATION_CREDENTIALS"),
		AvatarBucket:                 os.Getenv("AVATAR_BUCKET"),
		AvatarBaseURL:                strings.TrimRight(getEnv("AVATAR_BASE_URL", "https://storage.googleapis.com"), "/"),
		CORSAllowedOrigins:           splitList(os.Getenv("CORS_ALLOWED_ORIGINS")),
		LogLevel:                     strings.ToLower(getEnv("LOG_LEVEL", "info")),
	}
	if cfg.ProjectID == "" {
		return Config{}, errors.New("FIREBASE_PROJECT_ID or GOOGLE_CLOUD_PROJECT must be set")
	}
	if cfg.AvatarBucket == "" {
		cfg.AvatarBucket = cfg.ProjectID + ".appspot.com"
	}

	reports, err := strconv.Atoi(getEnv("REPORTS_REQUIRED", "12"))
	if err != nil {
		return Config{}, fmt.Errorf("invalid REPORTS_REQUIRED: %w", err)
	}
	if reports <= 0 {
		return Config{}, fmt.Errorf("invalid REPORTS_REQUIRED: must be positive, got %d", reports)
	}
	cfg.ReportsRequired = reports

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func firstEnv(keys ...string) string {
	for _, k := range keys {
		if v := strings.TrimSpace(os.Getenv(k)); v != "" {
			return v
		}
	}
	return ""
}

func splitList(raw string) []string {
	var out []string
	for item := range strings.SplitSeq(raw, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}
