package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration
type Config struct {
	// Server configuration
	Server ServerConfig

	// Database configuration (embedded SQLite)
	Database DatabaseConfig

	// Flat-file store configuration
	Stores StoresConfig

	// Quiz listing configuration
	Quiz QuizConfig

	// Import configuration
	Import ImportConfig
}

// ServerConfig holds HTTP server settings
type ServerConfig struct {
	Port            string        `mapstructure:"port"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

// DatabaseConfig holds the SQLite database settings
type DatabaseConfig struct {
	Path           string `mapstructure:"path"`
	MigrationsPath string `mapstructure:"migrations_path"`
}

// StoresConfig holds the flat-file JSON store locations
type StoresConfig struct {
	ArticlesFile string `mapstructure:"articles_file"`
	ContestsFile string `mapstructure:"contests_file"`
}

// QuizConfig holds the public quiz listing settings
type QuizConfig struct {
	SetsPerPage int `mapstructure:"sets_per_page"`
	SidebarSets int `mapstructure:"sidebar_sets"`
}

// ImportConfig holds bulk import settings
type ImportConfig struct {
	MaxUploadSize int64 `mapstructure:"max_upload_size"` // in bytes
}

// Load reads configuration from an optional config.yaml plus environment
// variables (prefix QCA_, e.g. QCA_SERVER_PORT). Missing config file is fine;
// defaults cover a local run.
func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")

	v.SetEnvPrefix("QCA")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.read_timeout", "30s")
	v.SetDefault("server.write_timeout", "300s")
	v.SetDefault("server.shutdown_timeout", "30s")

	v.SetDefault("database.path", "./data/quiz.db")
	v.SetDefault("database.migrations_path", "./migrations")

	v.SetDefault("stores.articles_file", "./data/articles.json")
	v.SetDefault("stores.contests_file", "./data/contests.json")

	v.SetDefault("quiz.sets_per_page", 6)
	v.SetDefault("quiz.sidebar_sets", 5)

	v.SetDefault("import.max_upload_size", 50*1024*1024) // 50MB
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Database.Path == "" {
		return fmt.Errorf("database.path is required")
	}
	if c.Stores.ArticlesFile == "" {
		return fmt.Errorf("stores.articles_file is required")
	}
	if c.Stores.ContestsFile == "" {
		return fmt.Errorf("stores.contests_file is required")
	}
	if c.Quiz.SetsPerPage < 1 {
		return fmt.Errorf("quiz.sets_per_page must be at least 1")
	}
	if c.Quiz.SidebarSets < 1 {
		return fmt.Errorf("quiz.sidebar_sets must be at least 1")
	}
	return nil
}
