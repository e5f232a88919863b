package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Config defines server configuration.
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	DB       DBConfig       `yaml:"db"`
	Redis    RedisConfig    `yaml:"redis"`
	Advisory AdvisoryConfig `yaml:"advisory"`
	Log      LogConfig      `yaml:"log"`
}

type ServerConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

type DBConfig struct {
	Path string `yaml:"path"`
}

// RedisConfig configures the cross-process change bus. An empty Addr keeps
// synchronization in-process only.
type RedisConfig struct {
	Addr    string `yaml:"addr"`
	Channel string `yaml:"channel"`
}

// AdvisoryConfig configures the anomaly advisory. An empty APIKey disables
// the remote call; the gate then behaves as an always-negative advisory.
type AdvisoryConfig struct {
	Endpoint string        `yaml:"endpoint"`
	APIKey   string        `yaml:"api_key"`
	Model    string        `yaml:"model"`
	Timeout  time.Duration `yaml:"timeout"`
}

type LogConfig struct {
	Level string `yaml:"level"`
}

// Load reads configuration from an optional YAML file and environment
// variables.
func Load() (Config, error) {
	cfg := Config{
		Server: ServerConfig{
			Host: "0.0.0.0",
			Port: 8080,
		},
		DB: DBConfig{
			Path: "jarda.db",
		},
		Advisory: AdvisoryConfig{
			Endpoint: "https://generativelanguage.googleapis.com",
			Model:    "gemini-2.5-flash",
			Timeout:  6 * time.Second,
		},
		Log: LogConfig{
			Level: "info",
		},
	}

	if path := os.Getenv("JARDA_CONFIG_PATH"); path != "" {
		if err := loadFromFile(path, &cfg); err != nil {
			return Config{}, err
		}
	}

	if host := os.Getenv("JARDA_SERVER_HOST"); host != "" {
		cfg.Server.Host = host
	}
	if portStr := os.Getenv("JARDA_SERVER_PORT"); portStr != "" {
		port, err := strconv.Atoi(portStr)
		if err != nil {
			return Config{}, fmt.Errorf("invalid JARDA_SERVER_PORT: %w", err)
		}
		cfg.Server.Port = port
	}
	if dbPath := os.Getenv("JARDA_DB_PATH"); dbPath != "" {
		cfg.DB.Path = dbPath
	}
	if addr := os.Getenv("JARDA_REDIS_ADDR"); addr != "" {
		cfg.Redis.Addr = addr
	}
	if channel := os.Getenv("JARDA_REDIS_CHANNEL"); channel != "" {
		cfg.Redis.Channel = channel
	}
	if key := os.Getenv("JARDA_ADVISORY_API_KEY"); key != "" {
		cfg.Advisory.APIKey = key
	}
	if endpoint := os.Getenv("JARDA_ADVISORY_ENDPOINT"); endpoint != "" {
		cfg.Advisory.Endpoint = endpoint
	}
	if level := os.Getenv("JARDA_LOG_LEVEL"); level != "" {
		cfg.Log.Level = level
	}

	return cfg, nil
}

func loadFromFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config file: %w", err)
	}
	return nil
}
