package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/sir_venger/splitter/internal/models"
	"github.com/sir_venger/splitter/pkg/digest"
)

const defaultPath = "./splitter.yaml"

type Config struct {
	HashAlgorithm string `yaml:"hash_algorithm" json:"hash_algorithm"`
	Cleanup       string `yaml:"cleanup" json:"cleanup"`
	Recover       bool   `yaml:"recover" json:"recover"`
	LogLevel      string `yaml:"log_level" json:"log_level"`
	Color         string `yaml:"color" json:"color"`
}

// Default возвращает настройки без файла и ENV.
func Default() Config {
	return Config{
		HashAlgorithm: digest.Default,
		Cleanup:       "ask",
		LogLevel:      "warn",
		Color:         "auto",
	}
}

// Load читает YAML-конфигурацию, применяет ENV-переопределения и возвращает актуальную структуру.
// Путь берётся из path, затем из SPLITTER_CONFIG; отсутствие файла по умолчанию не ошибка.
func Load(path string) (*Config, error) {
	explicit := path != ""
	if !explicit {
		if v := os.Getenv("SPLITTER_CONFIG"); v != "" {
			path, explicit = v, true
		} else {
			path = defaultPath
		}
	}

	c := Default()
	b, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(b, &c); err != nil {
			return nil, fmt.Errorf("%w: config %s: %w", models.ErrInvalidArgument, path, err)
		}
	case errors.Is(err, os.ErrNotExist) && !explicit:
	case errors.Is(err, os.ErrNotExist):
		return nil, fmt.Errorf("%w: config %s", models.ErrNotFound, path)
	default:
		return nil, fmt.Errorf("%w: config %s: %w", models.ErrIO, path, err)
	}

	// ENV override
	if v := os.Getenv("SPLITTER_HASH"); v != "" {
		c.HashAlgorithm = v
	}
	if v := os.Getenv("SPLITTER_CLEANUP"); v != "" {
		c.Cleanup = v
	}
	if v := os.Getenv("SPLITTER_RECOVER"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return nil, fmt.Errorf("%w: SPLITTER_RECOVER=%q", models.ErrInvalidArgument, v)
		}
		c.Recover = b
	}
	if v := os.Getenv("SPLITTER_LOG_LEVEL"); v != "" {
		c.LogLevel = v
	}
	if v := os.Getenv("SPLITTER_COLOR"); v != "" {
		c.Color = v
	}

	c.normalize()
	if err := c.Validate(); err != nil {
		return nil, err
	}

	return &c, nil
}

func (c *Config) normalize() {
	c.HashAlgorithm = digest.Normalize(c.HashAlgorithm)
	c.Cleanup = strings.ToLower(strings.TrimSpace(c.Cleanup))
	c.LogLevel = strings.ToLower(strings.TrimSpace(c.LogLevel))
	c.Color = strings.ToLower(strings.TrimSpace(c.Color))
}

// Validate проверяет значения перечислимых полей.
func (c *Config) Validate() error {
	if !digest.Supported(c.HashAlgorithm) {
		return fmt.Errorf("%w: hash_algorithm %q, supported: %s",
			models.ErrInvalidArgument, c.HashAlgorithm, strings.Join(digest.Algorithms(), ", "))
	}
	switch c.Cleanup {
	case "ask", "always", "never":
	default:
		return fmt.Errorf("%w: cleanup %q, expected ask, always or never", models.ErrInvalidArgument, c.Cleanup)
	}
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("%w: log_level %q", models.ErrInvalidArgument, c.LogLevel)
	}
	switch c.Color {
	case "auto", "always", "never":
	default:
		return fmt.Errorf("%w: color %q, expected auto, always or never", models.ErrInvalidArgument, c.Color)
	}

	return nil
}
