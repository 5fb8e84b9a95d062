package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/yuzeguitarist/qrgen/internal/app"
	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"
)

const (
	EnvListen      = "QRGEN_LISTEN"
	EnvLogLevel    = "QRGEN_LOG_LEVEL"
	EnvOpenBrowser = "QRGEN_OPEN_BROWSER"
)

type Config struct {
	Listen            string        `yaml:"listen"`            // host:port for the HTTP server
	LogLevel          string        `yaml:"logLevel"`          // zap level name
	CORSOrigins       []string      `yaml:"corsOrigins"`       // allowed origins for cross-site embedding
	ReadHeaderTimeout time.Duration `yaml:"readHeaderTimeout"` // e.g. "5s"
	WriteTimeout      time.Duration `yaml:"writeTimeout"`
	ShutdownTimeout   time.Duration `yaml:"shutdownTimeout"`
	OpenBrowser       bool          `yaml:"openBrowser"` // launch the landing page after start
}

func Default() *Config {
	return &Config{
		Listen:            app.DefaultListen,
		LogLevel:          "info",
		CORSOrigins:       []string{"*"},
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      30 * time.Second,
		ShutdownTimeout:   5 * time.Second,
	}
}

// Load reads path over the defaults. A missing file yields the defaults.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	b, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return nil, err
	}
	dec := yaml.NewDecoder(bytes.NewReader(b))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return cfg, nil
}

// ApplyEnv overrides fields from QRGEN_* variables.
func (c *Config) ApplyEnv(getenv func(string) string) error {
	if v := strings.TrimSpace(getenv(EnvListen)); v != "" {
		c.Listen = v
	}
	if v := strings.TrimSpace(getenv(EnvLogLevel)); v != "" {
		c.LogLevel = v
	}
	if v := strings.TrimSpace(getenv(EnvOpenBrowser)); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvOpenBrowser, err)
		}
		c.OpenBrowser = b
	}
	return nil
}

func (c *Config) Validate() error {
	if strings.TrimSpace(c.Listen) == "" {
		return fmt.Errorf("listen address required")
	}
	if _, err := zapcore.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("logLevel: %w", err)
	}
	if c.ReadHeaderTimeout <= 0 || c.WriteTimeout <= 0 || c.ShutdownTimeout <= 0 {
		return fmt.Errorf("timeouts must be positive")
	}
	return nil
}

func (c *Config) YAML() ([]byte, error) { return yaml.Marshal(c) }
