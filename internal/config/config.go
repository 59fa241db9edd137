package config

import (
	"os"
	"path/filepath"
	"strconv"
	"time"
)

// Environment names accepted in MT_ENV.
const (
	EnvDevelopment = "development"
	EnvTesting     = "testing"
	EnvProduction  = "production"
)

// Config holds all configuration options for the manuscript tracker
type Config struct {
	Database    DatabaseConfig    `toml:"database"`
	Validation  ValidationConfig  `toml:"validation"`
	Display     DisplayConfig     `toml:"display"`
	Application ApplicationConfig `toml:"application"`
	Commands    CommandsConfig    `toml:"commands"`
	Server      ServerConfig      `toml:"server"`
	Backup      BackupConfig      `toml:"backup"`
}

// DatabaseConfig holds database-related configuration
type DatabaseConfig struct {
	Dir            string        `toml:"dir" env:"MT_DB_DIR"`
	Filename       string        `toml:"filename" env:"MT_DB_FILENAME"`
	QueryTimeout   time.Duration `toml:"query_timeout" env:"MT_DB_QUERY_TIMEOUT"`
	DirPermissions uint32        `toml:"dir_permissions" env:"MT_DB_DIR_PERMISSIONS"`
}

// ValidationConfig holds validation rules configuration
type ValidationConfig struct {
	TitleMaxLength       int `toml:"title_max_length" env:"MT_VALIDATION_TITLE_MAX"`
	DescriptionMaxLength int `toml:"description_max_length" env:"MT_VALIDATION_DESCRIPTION_MAX"`
}

// DisplayConfig holds display formatting configuration
type DisplayConfig struct {
	DateFormat string `toml:"date_format" env:"MT_DISPLAY_DATE_FORMAT"`
	Color      string `toml:"color" env:"MT_DISPLAY_COLOR"`
	BarWidth   int    `toml:"bar_width" env:"MT_DISPLAY_BAR_WIDTH"`
}

// ApplicationConfig holds application-level configuration
type ApplicationConfig struct {
	Env     string        `toml:"env" env:"MT_ENV"`
	Timeout time.Duration `toml:"timeout" env:"MT_APP_TIMEOUT"`
	Verbose bool          `toml:"verbose" env:"MT_APP_VERBOSE"`
}

// CommandsConfig holds command-specific defaults
type CommandsConfig struct {
	ReportDefaultFormat string `toml:"report_default_format" env:"MT_REPORT_DEFAULT_FORMAT"`
	ExportDefaultFormat string `toml:"export_default_format" env:"MT_EXPORT_DEFAULT_FORMAT"`
}

// ServerConfig holds settings for `mt serve`
type ServerConfig struct {
	Addr string `toml:"addr" env:"MT_SERVER_ADDR"`
}

// BackupConfig holds destinations for `mt backup`. Empty fields disable
// the corresponding destination.
type BackupConfig struct {
	Path       string `toml:"path" env:"MT_BACKUP_PATH"`
	Format     string `toml:"format" env:"MT_BACKUP_FORMAT"`
	S3Bucket   string `toml:"s3_bucket" env:"MT_BACKUP_S3_BUCKET"`
	S3Key      string `toml:"s3_key" env:"MT_BACKUP_S3_KEY"`
	S3Region   string `toml:"s3_region" env:"MT_BACKUP_S3_REGION"`
	S3Endpoint string `toml:"s3_endpoint" env:"MT_BACKUP_S3_ENDPOINT"`
}

var (
	reportFormats = []string{"table", "markdown", "checklist", "json", "yaml"}
	exportFormats = []string{"markdown", "json", "yaml", "csv"}
	backupFormats = []string{"json", "yaml"}
	colorModes    = []string{"auto", "always", "never"}
	environments  = []string{EnvDevelopment, EnvTesting, EnvProduction}
)

// DefaultDir returns ~/.mt, the home of the database and config file.
func DefaultDir() string {
	homeDir, _ := os.UserHomeDir()
	return filepath.Join(homeDir, ".mt")
}

// NewConfig creates a new configuration with sensible defaults
func NewConfig() *Config {
	dir := DefaultDir()

	return &Config{
		Database: DatabaseConfig{
			Dir:            dir,
			Filename:       "mt.db",
			QueryTimeout:   10 * time.Second,
			DirPermissions: 0755,
		},
		Validation: ValidationConfig{
			TitleMaxLength:       200,
			DescriptionMaxLength: 500,
		},
		Display: DisplayConfig{
			DateFormat: "2006-01-02",
			Color:      "auto",
			BarWidth:   20,
		},
		Application: ApplicationConfig{
			Env:     EnvProduction,
			Timeout: 60 * time.Second,
		},
		Commands: CommandsConfig{
			ReportDefaultFormat: "table",
			ExportDefaultFormat: "markdown",
		},
		Server: ServerConfig{
			Addr: "127.0.0.1:8080",
		},
		Backup: BackupConfig{
			Path:   filepath.Join(dir, "backup.json"),
			Format: "json",
		},
	}
}

// GetDatabasePath returns the full path to the database file
func (c *Config) GetDatabasePath() string {
	return filepath.Join(c.Database.Dir, c.Database.Filename)
}

// GetQueryTimeout returns the database query timeout
func (c *Config) GetQueryTimeout() time.Duration {
	return c.Database.QueryTimeout
}

// LoadFromEnvironment loads configuration from MT_* environment variables
func (c *Config) LoadFromEnvironment() error {
	// Database configuration
	if dir := os.Getenv("MT_DB_DIR"); dir != "" {
		c.Database.Dir = dir
	}
	if filename := os.Getenv("MT_DB_FILENAME"); filename != "" {
		c.Database.Filename = filename
	}
	if timeout := os.Getenv("MT_DB_QUERY_TIMEOUT"); timeout != "" {
		c.Database.QueryTimeout = ParseDurationWithFallback(timeout, c.Database.QueryTimeout)
	}
	if perms := os.Getenv("MT_DB_DIR_PERMISSIONS"); perms != "" {
		c.Database.DirPermissions = ParseUint32WithFallback(perms, 8, c.Database.DirPermissions)
	}

	// Validation configuration
	if maxLen := os.Getenv("MT_VALIDATION_TITLE_MAX"); maxLen != "" {
		c.Validation.TitleMaxLength = ParseIntWithFallback(maxLen, c.Validation.TitleMaxLength)
	}
	if maxLen := os.Getenv("MT_VALIDATION_DESCRIPTION_MAX"); maxLen != "" {
		c.Validation.DescriptionMaxLength = ParseIntWithFallback(maxLen, c.Validation.DescriptionMaxLength)
	}

	// Display configuration
	if format := os.Getenv("MT_DISPLAY_DATE_FORMAT"); format != "" {
		c.Display.DateFormat = format
	}
	if color := os.Getenv("MT_DISPLAY_COLOR"); color != "" {
		c.Display.Color = color
	}
	if width := os.Getenv("MT_DISPLAY_BAR_WIDTH"); width != "" {
		c.Display.BarWidth = ParseIntWithFallback(width, c.Display.BarWidth)
	}

	// Application configuration
	if env := os.Getenv("MT_ENV"); env != "" {
		c.Application.Env = env
	}
	if timeout := os.Getenv("MT_APP_TIMEOUT"); timeout != "" {
		c.Application.Timeout = ParseDurationWithFallback(timeout, c.Application.Timeout)
	}
	if verbose := os.Getenv("MT_APP_VERBOSE"); verbose != "" {
		c.Application.Verbose = ParseBoolWithFallback(verbose, c.Application.Verbose)
	}

	// Commands configuration
	if format := os.Getenv("MT_REPORT_DEFAULT_FORMAT"); format != "" {
		c.Commands.ReportDefaultFormat = format
	}
	if format := os.Getenv("MT_EXPORT_DEFAULT_FORMAT"); format != "" {
		c.Commands.ExportDefaultFormat = format
	}

	// Server configuration
	if addr := os.Getenv("MT_SERVER_ADDR"); addr != "" {
		c.Server.Addr = addr
	}

	// Backup configuration
	if path, ok := os.LookupEnv("MT_BACKUP_PATH"); ok {
		c.Backup.Path = path
	}
	if format := os.Getenv("MT_BACKUP_FORMAT"); format != "" {
		c.Backup.Format = format
	}
	if bucket := os.Getenv("MT_BACKUP_S3_BUCKET"); bucket != "" {
		c.Backup.S3Bucket = bucket
	}
	if key := os.Getenv("MT_BACKUP_S3_KEY"); key != "" {
		c.Backup.S3Key = key
	}
	if region := os.Getenv("MT_BACKUP_S3_REGION"); region != "" {
		c.Backup.S3Region = region
	}
	if endpoint := os.Getenv("MT_BACKUP_S3_ENDPOINT"); endpoint != "" {
		c.Backup.S3Endpoint = endpoint
	}

	return nil
}

// Validate validates the configuration and returns any errors
func (c *Config) Validate() error {
	// Validate database configuration
	if c.Database.Dir == "" {
		return &ConfigError{Field: "database.dir", Message: "database directory cannot be empty"}
	}
	if c.Database.Filename == "" {
		return &ConfigError{Field: "database.filename", Message: "database filename cannot be empty"}
	}
	if c.Database.QueryTimeout <= 0 {
		return &ConfigError{Field: "database.query_timeout", Message: "query timeout must be positive"}
	}

	// Validate validation configuration
	if c.Validation.TitleMaxLength < 1 {
		return &ConfigError{Field: "validation.title_max_length", Message: "title maximum length must be at least 1"}
	}
	if c.Validation.DescriptionMaxLength < 1 {
		return &ConfigError{Field: "validation.description_max_length", Message: "description maximum length must be at least 1"}
	}

	// Validate display configuration
	if c.Display.DateFormat == "" {
		return &ConfigError{Field: "display.date_format", Message: "date format cannot be empty"}
	}
	if !contains(colorModes, c.Display.Color) {
		return &ConfigError{Field: "display.color", Message: "color must be one of auto, always, never"}
	}
	if c.Display.BarWidth < 5 {
		return &ConfigError{Field: "display.bar_width", Message: "bar width must be at least 5"}
	}

	// Validate application configuration
	if !contains(environments, c.Application.Env) {
		return &ConfigError{Field: "application.env", Message: "env must be one of development, testing, production"}
	}
	if c.Application.Timeout <= 0 {
		return &ConfigError{Field: "application.timeout", Message: "application timeout must be positive"}
	}

	// Validate command defaults
	if !contains(reportFormats, c.Commands.ReportDefaultFormat) {
		return &ConfigError{Field: "commands.report_default_format", Message: "unsupported report format " + strconv.Quote(c.Commands.ReportDefaultFormat)}
	}
	if !contains(exportFormats, c.Commands.ExportDefaultFormat) {
		return &ConfigError{Field: "commands.export_default_format", Message: "unsupported export format " + strconv.Quote(c.Commands.ExportDefaultFormat)}
	}

	if c.Server.Addr == "" {
		return &ConfigError{Field: "server.addr", Message: "server address cannot be empty"}
	}

	if !contains(backupFormats, c.Backup.Format) {
		return &ConfigError{Field: "backup.format", Message: "backup format must be json or yaml"}
	}
	if c.Backup.S3Bucket != "" && c.Backup.S3Key == "" {
		return &ConfigError{Field: "backup.s3_key", Message: "an S3 key is required when a bucket is set"}
	}

	return nil
}

func contains(values []string, v string) bool {
	for _, candidate := range values {
		if candidate == v {
			return true
		}
	}
	return false
}

// ConfigError represents a configuration validation error
type ConfigError struct {
	Field   string
	Message string
}

func (e *ConfigError) Error() string {
	return e.Field + ": " + e.Message
}
