package main

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds the server settings. Everything has a working default, so a
// config file is optional; flags override file values.
type Config struct {
	// Addr is the HTTP listen address (default ":8080").
	Addr string `yaml:"addr"`

	// Definition is the path to the questionnaire file (JSON or YAML).
	Definition string `yaml:"definition"`

	// Store selects the session store backend: "memory" or "redis".
	Store string `yaml:"store"`

	// RedisAddr is the Redis address (default "localhost:6379").
	RedisAddr string `yaml:"redis_addr"`

	// RedisPassword is the Redis AUTH password, if any.
	RedisPassword string `yaml:"redis_password"`

	// SessionTTL bounds the lifetime of persisted sessions in Redis.
	// Zero means no expiry.
	SessionTTL time.Duration `yaml:"session_ttl"`

	// DistributedLock enables Redis-backed session locking for
	// multi-replica deployments. Requires the redis store.
	DistributedLock bool `yaml:"distributed_lock"`

	// EncryptionKey, when set, encrypts persisted sessions with AES-256.
	// Base64-encoded 32-byte key.
	EncryptionKey string `yaml:"encryption_key"`

	// PIIPatterns lists regexes of question codes whose answers are masked
	// before persisting.
	PIIPatterns []string `yaml:"pii_patterns"`

	// LogFormat selects "text" or "json" log output.
	LogFormat string `yaml:"log_format"`
}

func (c *Config) applyDefaults() {
	if c.Addr == "" {
		c.Addr = ":8080"
	}
	if c.Definition == "" {
		c.Definition = "questionnaire.json"
	}
	if c.Store == "" {
		c.Store = "memory"
	}
	if c.RedisAddr == "" {
		c.RedisAddr = "localhost:6379"
	}
	if c.LogFormat == "" {
		c.LogFormat = "text"
	}
}

// LoadConfig reads a configuration YAML file and returns a Config.
// An empty path yields the defaults.
func LoadConfig(path string) (Config, error) {
	var cfg Config
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("reading config file: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("parsing config file: %w", err)
		}
	}
	cfg.applyDefaults()
	return cfg, nil
}
