// Package config loads the archive configuration from YAML and the
// environment.
package config

import (
	"fmt"
	"time"
)

// Config is the root application configuration.
type Config struct {
	Server     ServerConfig     `yaml:"server"`
	Mongo      MongoConfig      `yaml:"mongo"`
	Replica    ReplicaConfig    `yaml:"replica"`
	Extraction ExtractionConfig `yaml:"extraction"`
	Import     ImportConfig     `yaml:"import"`
	Log        LogConfig        `yaml:"log"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host            string        `yaml:"host"             env:"SERVER_HOST"             env-default:"0.0.0.0"`
	Port            int           `yaml:"port"             env:"SERVER_PORT"             env-default:"8080"`
	ReadTimeout     time.Duration `yaml:"read_timeout"     env:"SERVER_READ_TIMEOUT"     env-default:"10s"`
	WriteTimeout    time.Duration `yaml:"write_timeout"    env:"SERVER_WRITE_TIMEOUT"    env-default:"30s"`
	IdleTimeout     time.Duration `yaml:"idle_timeout"     env:"SERVER_IDLE_TIMEOUT"     env-default:"60s"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"SERVER_SHUTDOWN_TIMEOUT" env-default:"10s"`
}

// MongoConfig holds document store settings.
type MongoConfig struct {
	URI          string `yaml:"uri"           env:"MONGO_URI"           env-default:"mongodb://localhost:27017"`
	Database     string `yaml:"database"      env:"MONGO_DATABASE"      env-default:"podcastarchive"`
	Collection   string `yaml:"collection"    env:"MONGO_COLLECTION"    env-default:"episodes"`
	FallbackPath string `yaml:"fallback_path" env:"MONGO_FALLBACK_PATH"`
}

// ReplicaConfig holds the optional Postgres replica settings. An empty
// DSN disables replication.
type ReplicaConfig struct {
	DSN string `yaml:"dsn" env:"REPLICA_DSN"`
}

// ExtractionConfig holds AI extraction service settings. An empty
// endpoint runs imports with heuristic extraction only.
type ExtractionConfig struct {
	Endpoint string `yaml:"endpoint" env:"EXTRACTION_ENDPOINT"`
	APIKey   string `yaml:"api_key"  env:"EXTRACTION_API_KEY"`
	Model    string `yaml:"model"    env:"EXTRACTION_MODEL" env-default:"gpt-4o-mini"`
}

// ImportConfig holds bulk import settings.
type ImportConfig struct {
	InterFileDelay time.Duration `yaml:"inter_file_delay" env:"IMPORT_INTER_FILE_DELAY" env-default:"500ms"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	File string `yaml:"file" env:"LOG_FILE"`
}

// Validate checks cross-field constraints cleanenv tags cannot express.
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server port %d out of range", c.Server.Port)
	}
	if c.Extraction.Endpoint != "" && c.Extraction.APIKey == "" {
		return fmt.Errorf("extraction endpoint set without api key")
	}
	return nil
}

// Addr is the server listen address.
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}
