package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const (
	// EnvDevelopment is the only posture allowed to run with the built-in signing key
	EnvDevelopment = "development"

	// InsecureJWTSecret is the publicly known development signing key
	InsecureJWTSecret = "your_secret_key_change_me_NOW"

	// InsecureAdminPassword is the publicly known seed password
	InsecureAdminPassword = "password123"

	minSecretLength = 32
)

// Config holds all application configuration
type Config struct {
	// Env is the deployment posture (development, staging, production)
	Env string `mapstructure:"env"`

	// Server configuration
	Server ServerConfig `mapstructure:"server"`

	// Database configuration
	Database DatabaseConfig `mapstructure:"database"`

	// Authentication configuration
	Auth AuthConfig `mapstructure:"auth"`

	// Seed data configuration
	Seed SeedConfig `mapstructure:"seed"`

	// Logging configuration
	Log LogConfig `mapstructure:"log"`

	warnings []string
}

// ServerConfig holds HTTP server settings
type ServerConfig struct {
	Port            string        `mapstructure:"port"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
	AllowedOrigins  []string      `mapstructure:"allowed_origins"`
}

// DatabaseConfig holds database connection settings
type DatabaseConfig struct {
	Host           string        `mapstructure:"host"`
	Port           string        `mapstructure:"port"`
	User           string        `mapstructure:"user"`
	Password       string        `mapstructure:"password"`
	Name           string        `mapstructure:"name"`
	SSLMode        string        `mapstructure:"sslmode"`
	MaxOpenConns   int           `mapstructure:"max_open_conns"`
	MaxIdleConns   int           `mapstructure:"max_idle_conns"`
	MaxLifetime    time.Duration `mapstructure:"max_lifetime"`
	MigrationsPath string        `mapstructure:"migrations_path"`
}

// AuthConfig holds token signing and password hashing settings
type AuthConfig struct {
	JWTSecret  string `mapstructure:"jwt_secret"`
	BcryptCost int    `mapstructure:"bcrypt_cost"`
}

// SeedConfig holds the administrative account created by the seed command
type SeedConfig struct {
	AdminEmail    string `mapstructure:"admin_email"`
	AdminPassword string `mapstructure:"admin_password"`
}

// LogConfig holds logging settings
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"` // "json" or "pretty"
}

// envBindings keeps the flat variable names operators already use
var envBindings = map[string]string{
	"env":                      "ENV",
	"server.port":              "PORT",
	"server.read_timeout":      "SERVER_READ_TIMEOUT",
	"server.write_timeout":     "SERVER_WRITE_TIMEOUT",
	"server.shutdown_timeout":  "SERVER_SHUTDOWN_TIMEOUT",
	"server.allowed_origins":   "ALLOWED_ORIGINS",
	"database.host":            "DB_HOST",
	"database.port":            "DB_PORT",
	"database.user":            "DB_USER",
	"database.password":        "DB_PASSWORD",
	"database.name":            "DB_NAME",
	"database.sslmode":         "DB_SSLMODE",
	"database.max_open_conns":  "DB_MAX_OPEN_CONNS",
	"database.max_idle_conns":  "DB_MAX_IDLE_CONNS",
	"database.max_lifetime":    "DB_MAX_LIFETIME",
	"database.migrations_path": "MIGRATIONS_PATH",
	"auth.jwt_secret":          "JWT_SECRET",
	"auth.bcrypt_cost":         "BCRYPT_COST",
	"seed.admin_email":         "ADMIN_EMAIL",
	"seed.admin_password":      "ADMIN_PASSWORD",
	"log.level":                "LOG_LEVEL",
	"log.format":               "LOG_FORMAT",
}

// Load reads configuration from an optional config file and environment variables
func Load(configFile string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	for key, env := range envBindings {
		if err := v.BindEnv(key, env); err != nil {
			return nil, fmt.Errorf("failed to bind %s: %w", env, err)
		}
	}
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		// A missing default config file is fine; an explicit one must exist
		if configFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}

	// Validate required configuration
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("env", "production")

	v.SetDefault("server.port", "5000")
	v.SetDefault("server.read_timeout", 30*time.Second)
	v.SetDefault("server.write_timeout", 30*time.Second)
	v.SetDefault("server.shutdown_timeout", 30*time.Second)
	v.SetDefault("server.allowed_origins", []string{"*"})

	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", "5432")
	v.SetDefault("database.user", "postgres")
	v.SetDefault("database.password", "postgres")
	v.SetDefault("database.name", "workflow_hub")
	v.SetDefault("database.sslmode", "disable")
	v.SetDefault("database.max_open_conns", 25)
	v.SetDefault("database.max_idle_conns", 5)
	v.SetDefault("database.max_lifetime", 5*time.Minute)
	v.SetDefault("database.migrations_path", "./migrations")

	v.SetDefault("auth.jwt_secret", "")
	v.SetDefault("auth.bcrypt_cost", 10)

	v.SetDefault("seed.admin_email", "admin@example.com")
	v.SetDefault("seed.admin_password", "")

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
}

// IsDevelopment reports whether insecure development fallbacks are allowed
func (c *Config) IsDevelopment() bool {
	return strings.EqualFold(c.Env, EnvDevelopment)
}

// Validate checks if the configuration is valid and applies development fallbacks
func (c *Config) Validate() error {
	if c.Database.Host == "" {
		return fmt.Errorf("DB_HOST is required")
	}
	if c.Database.Name == "" {
		return fmt.Errorf("DB_NAME is required")
	}
	if c.Auth.BcryptCost < 4 || c.Auth.BcryptCost > 31 {
		return fmt.Errorf("BCRYPT_COST must be between 4 and 31")
	}

	if c.IsDevelopment() {
		if c.Auth.JWTSecret == "" {
			c.Auth.JWTSecret = InsecureJWTSecret
			c.warnings = append(c.warnings, "JWT_SECRET not set, using insecure development key")
		}
		if c.Seed.AdminPassword == "" {
			c.Seed.AdminPassword = InsecureAdminPassword
			c.warnings = append(c.warnings, "ADMIN_PASSWORD not set, using insecure development password")
		}
		return nil
	}

	switch {
	case c.Auth.JWTSecret == "":
		return fmt.Errorf("JWT_SECRET is required outside development")
	case c.Auth.JWTSecret == InsecureJWTSecret:
		return fmt.Errorf("JWT_SECRET must not be the well-known default outside development")
	case len(c.Auth.JWTSecret) < minSecretLength:
		return fmt.Errorf("JWT_SECRET must be at least %d bytes outside development", minSecretLength)
	}
	if c.Seed.AdminPassword == InsecureAdminPassword {
		return fmt.Errorf("ADMIN_PASSWORD must not be the well-known default outside development")
	}
	if c.Server.AllowsAnyOrigin() {
		c.warnings = append(c.warnings, "ALLOWED_ORIGINS permits any origin; set explicit origins outside development")
	}
	return nil
}

// AllowsAnyOrigin reports whether CORS is open to every origin. An empty list counts as open.
func (s *ServerConfig) AllowsAnyOrigin() bool {
	if len(s.AllowedOrigins) == 0 {
		return true
	}
	for _, o := range s.AllowedOrigins {
		if strings.TrimSpace(o) == "*" {
			return true
		}
	}
	return false
}

// Warnings returns the insecure fallbacks applied during validation
func (c *Config) Warnings() []string {
	return c.warnings
}

// GetDSN returns the PostgreSQL connection string
func (c *DatabaseConfig) GetDSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Name, c.SSLMode,
	)
}
