// Package config loads the service configuration from YAML.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/goccy/go-yaml"

	"github.com/alnah/go-bnccdoc/internal/fileutil"
)

// Sentinel errors for config operations.
var (
	ErrConfigNotFound  = errors.New("config file not found")
	ErrEmptyConfigName = errors.New("config name cannot be empty")
	ErrConfigParse     = errors.New("failed to parse config")
	ErrFieldTooLong    = errors.New("field exceeds maximum length")
	ErrInvalidValue    = errors.New("invalid config value")
	ErrInputTooLarge   = errors.New("config input exceeds maximum size")
)

// MaxInputSize limits YAML input to prevent memory exhaustion (1MB).
const MaxInputSize = 1 << 20

// Field length limits.
const (
	MaxAddrLength     = 255
	MaxPathLength     = 4096
	MaxDomainLength   = 253 // RFC 1035
	MaxBrandLength    = 60
	MaxFilenameLength = 200
	MaxModelLength    = 100
	MaxURLLength      = 2048
	MaxSecretLength   = 512
)

// Range limits.
const (
	MaxBatchWorkers   = 8
	MaxGenAttempts    = 10
	MinJWTSecretBytes = 16
)

// Config holds all configuration for the service and the CLI.
type Config struct {
	Server     ServerConfig     `yaml:"server"`
	Database   DatabaseConfig   `yaml:"database"`
	Auth       AuthConfig       `yaml:"auth"`
	App        AppConfig        `yaml:"app"`
	Render     RenderConfig     `yaml:"render"`
	Batch      BatchConfig      `yaml:"batch"`
	Export     ExportConfig     `yaml:"export"`
	Generation GenerationConfig `yaml:"generation"`
	Assets     AssetsConfig     `yaml:"assets"`
	Log        LogConfig        `yaml:"log"`
}

// ServerConfig defines the HTTP listener.
type ServerConfig struct {
	Addr            string        `yaml:"addr"`
	CORSOrigins     []string      `yaml:"corsOrigins"`
	ReadTimeout     time.Duration `yaml:"readTimeout"`
	WriteTimeout    time.Duration `yaml:"writeTimeout"` // must cover the slowest batch export
	ShutdownTimeout time.Duration `yaml:"shutdownTimeout"`
}

// DatabaseConfig defines the SQLite store.
type DatabaseConfig struct {
	Path string `yaml:"path"`
}

// AuthConfig defines access token issuance.
type AuthConfig struct {
	JWTSecret string        `yaml:"jwtSecret"`
	TokenTTL  time.Duration `yaml:"tokenTTL"`
}

// AppConfig defines public identity printed on documents.
type AppConfig struct {
	Domain string `yaml:"domain"` // verification host, without scheme
	Brand  string `yaml:"brand"`
}

// RenderConfig defines headless browser rendering.
type RenderConfig struct {
	LoadTimeout time.Duration `yaml:"loadTimeout"` // per-document page load budget
	PDFTimeout  time.Duration `yaml:"pdfTimeout"`  // whole single render budget
	BrowserBin  string        `yaml:"browserBin"`  // empty = rod default lookup
	NoSandbox   bool          `yaml:"noSandbox"`
}

// BatchConfig defines the all-plans export.
type BatchConfig struct {
	Workers int           `yaml:"workers"` // 1 = sequential
	Timeout time.Duration `yaml:"timeout"`
}

// ExportConfig defines download names.
type ExportConfig struct {
	DOCXFilename string `yaml:"docxFilename"`
}

// GenerationConfig defines the text generation client.
type GenerationConfig struct {
	APIKey      string        `yaml:"apiKey"`
	Model       string        `yaml:"model"`
	BaseURL     string        `yaml:"baseURL"` // empty = provider default
	MaxAttempts int           `yaml:"maxAttempts"`
	BaseBackoff time.Duration `yaml:"baseBackoff"`
}

// AssetsConfig defines asset loading options.
type AssetsConfig struct {
	BasePath string `yaml:"basePath"` // Empty = use embedded assets
}

// LogConfig defines structured logging.
type LogConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // json, console
}

// Defaults.
const (
	DefaultAddr         = ":3000"
	DefaultDatabasePath = "bnccdoc.db"
	DefaultDomain       = "bncc-ia.app"
	DefaultBrand        = "BNCC IA"
	DefaultDOCXFilename = "Relatorio_Avanca_Pariconha_Escola_2025.docx"
	DefaultModel        = "gemini-3-flash-preview"
)

// DefaultConfig returns a configuration that runs locally without a file.
// The JWT secret is left empty: the caller must supply one.
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Addr:            DefaultAddr,
			ReadTimeout:     30 * time.Second,
			WriteTimeout:    30 * time.Minute,
			ShutdownTimeout: 10 * time.Second,
		},
		Database: DatabaseConfig{Path: DefaultDatabasePath},
		Auth:     AuthConfig{TokenTTL: 24 * time.Hour},
		App:      AppConfig{Domain: DefaultDomain, Brand: DefaultBrand},
		Render: RenderConfig{
			LoadTimeout: 60 * time.Second,
			PDFTimeout:  2 * time.Minute,
		},
		Batch:  BatchConfig{Workers: 1, Timeout: 30 * time.Minute},
		Export: ExportConfig{DOCXFilename: DefaultDOCXFilename},
		Generation: GenerationConfig{
			Model:       DefaultModel,
			MaxAttempts: 3,
			BaseBackoff: 2 * time.Second,
		},
		Log: LogConfig{Level: "info", Format: "json"},
	}
}

// Validate checks field lengths and ranges.
// Called automatically by LoadConfig, and again by the CLI after
// environment overrides are applied.
func (c *Config) Validate() error {
	lengths := []struct {
		field string
		value string
		max   int
	}{
		{"server.addr", c.Server.Addr, MaxAddrLength},
		{"database.path", c.Database.Path, MaxPathLength},
		{"auth.jwtSecret", c.Auth.JWTSecret, MaxSecretLength},
		{"app.domain", c.App.Domain, MaxDomainLength},
		{"app.brand", c.App.Brand, MaxBrandLength},
		{"render.browserBin", c.Render.BrowserBin, MaxPathLength},
		{"export.docxFilename", c.Export.DOCXFilename, MaxFilenameLength},
		{"generation.apiKey", c.Generation.APIKey, MaxSecretLength},
		{"generation.model", c.Generation.Model, MaxModelLength},
		{"generation.baseURL", c.Generation.BaseURL, MaxURLLength},
		{"assets.basePath", c.Assets.BasePath, MaxPathLength},
	}
	for _, l := range lengths {
		if err := validateFieldLength(l.field, l.value, l.max); err != nil {
			return err
		}
	}
	for i, origin := range c.Server.CORSOrigins {
		if err := validateFieldLength(fmt.Sprintf("server.corsOrigins[%d]", i), origin, MaxURLLength); err != nil {
			return err
		}
	}

	if c.Server.Addr == "" {
		return fmt.Errorf("%w: server.addr is required", ErrInvalidValue)
	}
	if c.Database.Path == "" {
		return fmt.Errorf("%w: database.path is required", ErrInvalidValue)
	}
	if c.App.Domain == "" || strings.Contains(c.App.Domain, "/") {
		return fmt.Errorf("%w: app.domain must be a bare host name, got %q", ErrInvalidValue, c.App.Domain)
	}
	if c.App.Brand == "" {
		return fmt.Errorf("%w: app.brand is required", ErrInvalidValue)
	}
	if c.Auth.JWTSecret != "" && len(c.Auth.JWTSecret) < MinJWTSecretBytes {
		return fmt.Errorf("%w: auth.jwtSecret must be at least %d bytes", ErrInvalidValue, MinJWTSecretBytes)
	}

	durations := []struct {
		field string
		value time.Duration
	}{
		{"server.readTimeout", c.Server.ReadTimeout},
		{"server.writeTimeout", c.Server.WriteTimeout},
		{"server.shutdownTimeout", c.Server.ShutdownTimeout},
		{"auth.tokenTTL", c.Auth.TokenTTL},
		{"render.loadTimeout", c.Render.LoadTimeout},
		{"render.pdfTimeout", c.Render.PDFTimeout},
		{"batch.timeout", c.Batch.Timeout},
		{"generation.baseBackoff", c.Generation.BaseBackoff},
	}
	for _, d := range durations {
		if d.value <= 0 {
			return fmt.Errorf("%w: %s must be positive, got %s", ErrInvalidValue, d.field, d.value)
		}
	}
	if c.Render.LoadTimeout > c.Render.PDFTimeout {
		return fmt.Errorf("%w: render.loadTimeout (%s) exceeds render.pdfTimeout (%s)",
			ErrInvalidValue, c.Render.LoadTimeout, c.Render.PDFTimeout)
	}

	if c.Batch.Workers < 1 || c.Batch.Workers > MaxBatchWorkers {
		return fmt.Errorf("%w: batch.workers must be between 1 and %d, got %d", ErrInvalidValue, MaxBatchWorkers, c.Batch.Workers)
	}
	if c.Generation.MaxAttempts < 1 || c.Generation.MaxAttempts > MaxGenAttempts {
		return fmt.Errorf("%w: generation.maxAttempts must be between 1 and %d, got %d",
			ErrInvalidValue, MaxGenAttempts, c.Generation.MaxAttempts)
	}

	switch strings.ToLower(c.Log.Level) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("%w: log.level %q (must be debug, info, warn, or error)", ErrInvalidValue, c.Log.Level)
	}
	switch strings.ToLower(c.Log.Format) {
	case "json", "console":
	default:
		return fmt.Errorf("%w: log.format %q (must be json or console)", ErrInvalidValue, c.Log.Format)
	}

	return nil
}

// validateFieldLength checks if a field exceeds its maximum allowed length.
func validateFieldLength(fieldName, value string, maxLength int) error {
	if len(value) > maxLength {
		return fmt.Errorf("%w: %s (%d chars, max %d)", ErrFieldTooLong, fieldName, len(value), maxLength)
	}
	return nil
}

// Parse decodes YAML on top of DefaultConfig, rejecting unknown fields,
// and validates the result.
func Parse(data []byte) (*Config, error) {
	if len(data) > MaxInputSize {
		return nil, fmt.Errorf("%w: %d bytes (max %d)", ErrInputTooLarge, len(data), MaxInputSize)
	}

	cfg := DefaultConfig()
	if len(strings.TrimSpace(string(data))) > 0 {
		if err := yaml.UnmarshalWithOptions(data, cfg, yaml.Strict()); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrConfigParse, err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadConfig loads configuration from a file path or config name.
// If nameOrPath contains a path separator, it's treated as a file path.
// Otherwise, it's treated as a config name and searched in standard locations.
// Returns error if the file is not found (no silent fallback).
func LoadConfig(nameOrPath string) (*Config, error) {
	if nameOrPath == "" {
		return nil, ErrEmptyConfigName
	}

	configPath := nameOrPath
	if !fileutil.IsFilePath(nameOrPath) {
		var err error
		configPath, err = resolveConfigPath(nameOrPath)
		if err != nil {
			return nil, err
		}
	}

	data, err := os.ReadFile(configPath) // #nosec G304 -- config path is operator-provided
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, configPath)
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	return Parse(data)
}

// resolveConfigPath searches for a config file by name in standard locations.
// Tries extensions in order: .yaml, .yml
// Tries locations in order: current directory, <UserConfigDir>/bnccdoc/
func resolveConfigPath(name string) (string, error) {
	extensions := []string{".yaml", ".yml"}
	triedPaths := make([]string, 0, len(extensions)*2)

	for _, ext := range extensions {
		localPath := name + ext
		if fileutil.FileExists(localPath) {
			return localPath, nil
		}
		triedPaths = append(triedPaths, localPath)
	}

	if userConfigDir, err := os.UserConfigDir(); err == nil {
		for _, ext := range extensions {
			userPath := filepath.Join(userConfigDir, "bnccdoc", name+ext)
			if fileutil.FileExists(userPath) {
				return userPath, nil
			}
			triedPaths = append(triedPaths, userPath)
		}
	}

	return "", fmt.Errorf("%w: tried %s", ErrConfigNotFound, strings.Join(triedPaths, ", "))
}

// SearchPaths returns the paths error messages should mention for name.
func SearchPaths(name string) []string {
	paths := []string{name + ".yaml", name + ".yml"}
	if dir, err := os.UserConfigDir(); err == nil {
		paths = append(paths, filepath.Join(dir, "bnccdoc", name+".yaml"))
	}
	return paths
}
