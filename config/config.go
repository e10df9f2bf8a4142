package config

import (
	"fmt"
	"path/filepath"

	"github.com/caarlos0/env/v11"
)

// Server holds process-level settings parsed from the environment.
type Server struct {
	Port     string `env:"PORT" envDefault:"8080"`
	DataDir  string `env:"DATA_DIR" envDefault:"data"`
	DBFile   string `env:"DB_FILE" envDefault:"dishlist.db"`
	UseHTTPS bool   `env:"USE_HTTPS" envDefault:"false"`
}

// Load parses server configuration from environment variables.
func Load() (*Server, error) {
	var cfg Server
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse environment: %w", err)
	}
	return &cfg, nil
}

// DatabasePath returns the SQLite file path under the data directory.
func (c *Server) DatabasePath() string {
	return filepath.Join(c.DataDir, c.DBFile)
}

// ConfigPath returns the admin config JSON file path under the data directory.
func (c *Server) ConfigPath() string {
	return filepath.Join(c.DataDir, "config.json")
}
