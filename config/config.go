package config

import (
	"errors"
	"io/fs"
	"os"
	"time"

	"github.com/joho/godotenv"
	"go.mongodb.org/mongo-driver/mongo/options"
	"gopkg.in/yaml.v3"
)

const (
	CONFIG_PATH = "./res/config.yaml"
	ENV_PATH    = ".env"

	// Environment variables holding provider credentials.
	TMDBAPIKeyEnv = "TMDB_API_KEY"
	SerpAPIKeyEnv = "SERPAPI_KEY" // #nosec G101
)

// ServiceConfig holds the configuration for the service.
type ServiceConfig struct {
	ServiceName    string          `yaml:"service_name" validate:"required"`
	LogLevel       string          `yaml:"loglevel" validate:"required"`
	Host           string          `yaml:"host" validate:"required"`
	Port           string          `yaml:"port" validate:"required"`
	PrivateKeyPath string          `yaml:"private_key_path" validate:"required"`
	Session        SessionConfig   `yaml:"session" validate:"required"`
	RateLimit      RateLimitConfig `yaml:"rate_limit" validate:"required"`
	Database       Database        `yaml:"database" validate:"required"`
	Providers      Providers       `yaml:"providers" validate:"required"`
}

type SessionConfig struct {
	TTL          time.Duration `yaml:"ttl" validate:"required"`
	SecureCookie bool          `yaml:"secure_cookie"`
}

// RateLimitConfig bounds signup and login attempts.
type RateLimitConfig struct {
	RequestsPerSecond float64 `yaml:"requests_per_second" validate:"gt=0"`
	Burst             int     `yaml:"burst" validate:"gt=0"`
}

type Database struct {
	Type string `yaml:"type" validate:"required,oneof=sqlite postgres mongo"`
	// For SQLite
	SQLite SQLiteConfig `yaml:"sqlite_config" validate:"omitempty"`
	// For MongoDB
	MongoDB MongoDBConfig `yaml:"mongodb_config" validate:"omitempty"`
	// For PostgreSQL
	Postgres PostgresConfig `yaml:"postgres_config" validate:"omitempty"`
}

type SQLiteConfig struct {
	DSN         string   `yaml:"dsn" validate:"required"`
	ValidTables []string `yaml:"valid_tables" validate:"required"`
	ValidFields []string `yaml:"valid_fields" validate:"required"`
}

// MongoDBConfig holds the MongoDB database configuration.
type MongoDBConfig struct {
	DSN              string             `yaml:"dsn" validate:"required"`
	DatabaseName     string             `yaml:"database_name" validate:"required"`
	Timeout          time.Duration      `yaml:"timeout"`
	Options          MongoServerOptions `yaml:"mongo_server_options"`
	ValidCollections []string           `yaml:"valid_collections" validate:"required"`
	ValidFields      []string           `yaml:"valid_fields" validate:"required"`
}

type PostgresConfig struct {
	DSN         string                `yaml:"dsn" validate:"required"`
	Options     PostgresServerOptions `yaml:"postgres_server_options"`
	ValidTables []string              `yaml:"valid_tables" validate:"required"`
	ValidFields []string              `yaml:"valid_fields" validate:"required"`
}

type MongoServerOptions struct {
	APIVersion           string `yaml:"api_version"`
	SetStrict            bool   `yaml:"set_strict"`
	SetDeprecationErrors bool   `yaml:"set_deprecation_errors"`
}

type PostgresServerOptions struct {
	MaxOpenConns    int           `yaml:"max_open_conns"`
	MaxIdleConns    int           `yaml:"max_idle_conns"`
	ConnMaxLifetime time.Duration `yaml:"conn_max_lifetime"`
}

// Providers configures the upstream movie metadata, web search and language model services.
type Providers struct {
	Timeout time.Duration `yaml:"timeout" validate:"required"`
	TMDB    TMDBConfig    `yaml:"tmdb" validate:"required"`
	SerpAPI SerpAPIConfig `yaml:"serpapi" validate:"required"`
	Bedrock BedrockConfig `yaml:"bedrock" validate:"required"`
}

type TMDBConfig struct {
	BaseURL      string `yaml:"base_url" validate:"required,url"`
	ImageBaseURL string `yaml:"image_base_url" validate:"required,url"`
}

type SerpAPIConfig struct {
	BaseURL string `yaml:"base_url" validate:"required,url"`
	Results int    `yaml:"results" validate:"gt=0"`
}

type BedrockConfig struct {
	// Region falls back to the AWS default chain when empty.
	Region           string  `yaml:"region"`
	ModelID          string  `yaml:"model_id" validate:"required"`
	AnthropicVersion string  `yaml:"anthropic_version" validate:"required"`
	MaxTokens        int     `yaml:"max_tokens" validate:"gt=0"`
	Temperature      float64 `yaml:"temperature" validate:"gte=0,lte=1"`
}

// Credentials holds the externally provisioned provider keys. AWS credentials are
// resolved separately through the AWS default chain.
type Credentials struct {
	TMDBAPIKey string
	SerpAPIKey string
}

// ReadLocalConfig reads the service configuration from a YAML file at the specified path.
// It unmarshals the YAML content into a ServiceConfig struct and returns it.
// If there is an error reading the file or unmarshaling the content, it returns an error.
func ReadLocalConfig(configPath string) (*ServiceConfig, error) {
	config := &ServiceConfig{}

	yamlFile, err := os.ReadFile(configPath)
	if err != nil {
		return nil, err
	}

	err = yaml.Unmarshal(yamlFile, config)
	if err != nil {
		return nil, err
	}

	return config, nil
}

// LoadCredentials loads envPath into the process environment when the file exists
// (variables already set win) and then reads the provider keys.
func LoadCredentials(envPath string) (Credentials, error) {
	if envPath != "" {
		if err := godotenv.Load(envPath); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Credentials{}, err
		}
	}

	return Credentials{
		TMDBAPIKey: os.Getenv(TMDBAPIKeyEnv),
		SerpAPIKey: os.Getenv(SerpAPIKeyEnv),
	}, nil
}

// Missing returns the names of the credentials that are not set.
func (c Credentials) Missing() []string {
	var missing []string
	if c.TMDBAPIKey == "" {
		missing = append(missing, TMDBAPIKeyEnv)
	}
	if c.SerpAPIKey == "" {
		missing = append(missing, SerpAPIKeyEnv)
	}
	return missing
}

func BuildServerAPIOptions(cfg MongoServerOptions) *options.ServerAPIOptions {
	opts := options.ServerAPI(options.ServerAPIVersion(cfg.APIVersion))
	opts.SetStrict(cfg.SetStrict)
	opts.SetDeprecationErrors(cfg.SetDeprecationErrors)

	return opts
}

func ListToMap(list []string) map[string]bool {
	result := make(map[string]bool)
	for _, item := range list {
		result[item] = true
	}
	return result
}
