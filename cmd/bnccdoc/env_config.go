package main

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/alnah/go-bnccdoc/internal/config"
)

// envConfig holds configuration from environment variables.
// Secrets are expected here rather than in YAML files.
type envConfig struct {
	// Service
	ConfigPath   string // BNCCDOC_CONFIG: config file name or path
	Addr         string // BNCCDOC_ADDR: listen address
	DatabasePath string // BNCCDOC_DB_PATH: SQLite file
	Domain       string // BNCCDOC_DOMAIN: verification host
	LogLevel     string // BNCCDOC_LOG_LEVEL: debug, info, warn, error

	// Secrets
	JWTSecret    string // BNCCDOC_JWT_SECRET: token signing key
	GeminiAPIKey string // BNCCDOC_GEMINI_API_KEY: text generation key

	// Rendering
	BatchWorkers int    // BNCCDOC_BATCH_WORKERS: concurrent batch renders
	BrowserBin   string // ROD_BROWSER_BIN: Chrome binary
	NoSandbox    bool   // ROD_NO_SANDBOX: "1" disables the Chrome sandbox
}

// knownEnvVars lists valid BNCCDOC_* environment variables.
// Used to detect typos and warn users about unknown variables.
var knownEnvVars = map[string]bool{
	"BNCCDOC_CONFIG":         true,
	"BNCCDOC_ADDR":           true,
	"BNCCDOC_DB_PATH":        true,
	"BNCCDOC_DOMAIN":         true,
	"BNCCDOC_LOG_LEVEL":      true,
	"BNCCDOC_JWT_SECRET":     true,
	"BNCCDOC_GEMINI_API_KEY": true,
	"BNCCDOC_BATCH_WORKERS":  true,
}

// loadEnvConfig reads configuration from environment variables.
func loadEnvConfig() *envConfig {
	cfg := &envConfig{
		ConfigPath:   os.Getenv("BNCCDOC_CONFIG"),
		Addr:         os.Getenv("BNCCDOC_ADDR"),
		DatabasePath: os.Getenv("BNCCDOC_DB_PATH"),
		Domain:       os.Getenv("BNCCDOC_DOMAIN"),
		LogLevel:     os.Getenv("BNCCDOC_LOG_LEVEL"),
		JWTSecret:    os.Getenv("BNCCDOC_JWT_SECRET"),
		GeminiAPIKey: os.Getenv("BNCCDOC_GEMINI_API_KEY"),
		BrowserBin:   os.Getenv("ROD_BROWSER_BIN"),
		NoSandbox:    os.Getenv("ROD_NO_SANDBOX") == "1",
	}

	// Invalid values are ignored; the config file or defaults apply.
	if workers := os.Getenv("BNCCDOC_BATCH_WORKERS"); workers != "" {
		if w, err := strconv.Atoi(workers); err == nil && w > 0 {
			cfg.BatchWorkers = w
		}
	}

	return cfg
}

// warnUnknownEnvVars logs warnings for unrecognized BNCCDOC_* variables.
// Helps catch typos like BNCCDOC_JWT_SECRETS.
func warnUnknownEnvVars(w io.Writer) {
	for _, env := range os.Environ() {
		if strings.HasPrefix(env, "BNCCDOC_") {
			name := strings.SplitN(env, "=", 2)[0]
			if !knownEnvVars[name] {
				fmt.Fprintf(w, "warning: unknown environment variable %s (typo?)\n", name)
			}
		}
	}
}

// applyEnvConfig overlays set environment variables on cfg.
// Precedence: CLI flags > env vars > config file > defaults
// (CLI flags are applied afterwards by each command).
func applyEnvConfig(env *envConfig, cfg *config.Config) {
	if env.Addr != "" {
		cfg.Server.Addr = env.Addr
	}
	if env.DatabasePath != "" {
		cfg.Database.Path = env.DatabasePath
	}
	if env.Domain != "" {
		cfg.App.Domain = env.Domain
	}
	if env.LogLevel != "" {
		cfg.Log.Level = env.LogLevel
	}

	if env.JWTSecret != "" {
		cfg.Auth.JWTSecret = env.JWTSecret
	}
	if env.GeminiAPIKey != "" {
		cfg.Generation.APIKey = env.GeminiAPIKey
	}

	if env.BatchWorkers > 0 {
		cfg.Batch.Workers = env.BatchWorkers
	}
	if env.BrowserBin != "" && cfg.Render.BrowserBin == "" {
		cfg.Render.BrowserBin = env.BrowserBin
	}
	if env.NoSandbox {
		cfg.Render.NoSandbox = true
	}
}
