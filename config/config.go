/*
Package config loads server configuration.

Precedence, lowest to highest: built-in defaults, YAML file, environment
variables (ROSTER_*), command-line flags applied by the caller.
*/
package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config holds everything the server needs to start.
type Config struct {
	// Listen is the host:port the HTTP server binds to.
	Listen string `yaml:"listen"`

	// DBPath is the SQLite database path. ":memory:" for in-memory.
	DBPath string `yaml:"db_path"`

	// AllowedOrigins is the CORS allowlist for browser clients.
	AllowedOrigins []string `yaml:"allowed_origins"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Listen:         ":8080",
		DBPath:         "roster.db",
		AllowedOrigins: []string{"http://localhost:3000", "http://localhost:5173"},
	}
}

// Load reads the YAML file at path over the defaults, then applies
// environment overrides. An empty path skips the file; a missing file at
// an explicit path is an error.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return cfg, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("failed to parse config file: %w", err)
		}
	}

	cfg.applyEnv()
	cfg.Normalize()
	return cfg, nil
}

func (c *Config) applyEnv() {
	if v := os.Getenv("ROSTER_LISTEN"); v != "" {
		c.Listen = v
	}
	if v := os.Getenv("ROSTER_DB_PATH"); v != "" {
		c.DBPath = v
	}
	if v := os.Getenv("ROSTER_ALLOWED_ORIGINS"); v != "" {
		c.AllowedOrigins = splitAndTrim(v)
	}
}

// Normalize fills gaps left by a sparse YAML file.
func (c *Config) Normalize() {
	def := Default()
	if c.Listen == "" {
		c.Listen = def.Listen
	}
	if !strings.Contains(c.Listen, ":") {
		c.Listen = ":" + c.Listen
	}
	if c.DBPath == "" {
		c.DBPath = def.DBPath
	}
	if len(c.AllowedOrigins) == 0 {
		c.AllowedOrigins = def.AllowedOrigins
	}
}

func splitAndTrim(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
