package config

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/nonso/acadport/internal/pkg/auth"
)

// Config is the application configuration, loaded from a YAML file with
// environment-variable overrides.
type Config struct {
	Server struct {
		Port        string `yaml:"port" env:"SERVER_PORT"`
		Mode        string `yaml:"mode" env:"SERVER_MODE"`
		StoragePath string `yaml:"storage_path" env:"STORAGE_PATH"`
		BaseURL     string `yaml:"base_url" env:"SERVER_BASE_URL"`
	} `yaml:"server"`

	Database struct {
		Host     string `yaml:"host" env:"DB_HOST"`
		Port     string `yaml:"port" env:"DB_PORT"`
		User     string `yaml:"user" env:"DB_USER"`
		Password string `yaml:"password" env:"DB_PASSWORD"`
		DBName   string `yaml:"dbname" env:"DB_NAME"`
		SSLMode  string `yaml:"sslmode" env:"DB_SSLMODE"`
		MaxConns int    `yaml:"max_conns" env:"DB_MAX_CONNS"`
	} `yaml:"database"`

	JWT struct {
		Secret          string `yaml:"secret" env:"JWT_SECRET"`
		TokenExpiration string `yaml:"token_expiration" env:"JWT_TOKEN_EXPIRATION"`
		Issuer          string `yaml:"issuer" env:"JWT_ISSUER"`
	} `yaml:"jwt"`

	// Admin is the configured back-office account. PasswordHash must be a
	// bcrypt hash; a plaintext password in config is rejected at startup.
	Admin struct {
		Email        string `yaml:"email" env:"ADMIN_EMAIL"`
		PasswordHash string `yaml:"password_hash" env:"ADMIN_PASSWORD_HASH"`
	} `yaml:"admin"`

	Export struct {
		ImageFetchTimeout string `yaml:"image_fetch_timeout" env:"EXPORT_IMAGE_FETCH_TIMEOUT"`
	} `yaml:"export"`

	Logging struct {
		Level  string `yaml:"level" env:"LOG_LEVEL"`
		Format string `yaml:"format" env:"LOG_FORMAT"`
	} `yaml:"logging"`
}

// LoadConfig loads configuration from a file and environment variables.
// A .env file next to the binary is applied first so local development
// overrides work without exporting anything.
func LoadConfig(configPath string) (*Config, error) {
	_ = godotenv.Load()

	config := &Config{}
	setDefaults(config)

	if _, err := os.Stat(configPath); err == nil {
		file, err := os.ReadFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(file, config); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	}

	if err := processStructFields(config); err != nil {
		return nil, fmt.Errorf("failed to load from environment: %w", err)
	}

	if err := validateConfig(config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return config, nil
}

func setDefaults(config *Config) {
	config.Server.Port = "8080"
	config.Server.Mode = "development"
	config.Server.StoragePath = "./uploads"
	config.Server.BaseURL = "http://localhost:8080"

	config.Database.Host = "localhost"
	config.Database.Port = "5432"
	config.Database.User = "postgres"
	config.Database.Password = "postgres"
	config.Database.DBName = "acadport"
	config.Database.SSLMode = "disable"
	config.Database.MaxConns = 20

	config.JWT.TokenExpiration = "24h"
	config.JWT.Issuer = "acadport"

	config.Export.ImageFetchTimeout = "5s"

	config.Logging.Level = "info"
	config.Logging.Format = "json"
}

func validateConfig(config *Config) error {
	if config.Database.Host == "" {
		return fmt.Errorf("database host is required")
	}
	if config.JWT.Secret == "" {
		return fmt.Errorf("JWT secret is required")
	}
	if _, err := time.ParseDuration(config.JWT.TokenExpiration); err != nil {
		return fmt.Errorf("invalid JWT token expiration format: %w", err)
	}
	if _, err := time.ParseDuration(config.Export.ImageFetchTimeout); err != nil {
		return fmt.Errorf("invalid export image fetch timeout format: %w", err)
	}
	if config.Admin.Email != "" {
		if err := auth.ValidateHash(config.Admin.PasswordHash); err != nil {
			return fmt.Errorf("admin password hash: %w", err)
		}
	}
	return nil
}

// PostgresDSN returns the pgx connection string.
func (c *Config) PostgresDSN() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.DBName,
		c.Database.SSLMode,
	)
}

// JWTTokenExpiration returns the parsed token lifetime. validateConfig has
// already checked the format.
func (c *Config) JWTTokenExpiration() time.Duration {
	d, _ := time.ParseDuration(c.JWT.TokenExpiration)
	return d
}

// ExportImageFetchTimeout returns the parsed per-image fetch budget.
func (c *Config) ExportImageFetchTimeout() time.Duration {
	d, _ := time.ParseDuration(c.Export.ImageFetchTimeout)
	return d
}
