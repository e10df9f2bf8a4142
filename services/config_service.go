package services

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/dishlist-app/dishlist/models"
	"github.com/dishlist-app/dishlist/repositories"
)

// ConfigService exposes the admin config, kept in sync between the JSON file
// and the config_entries table. The file stays hand-editable: whichever side
// changed more recently wins and the other side is rewritten to match.
type ConfigService interface {
	Get() (models.AppConfig, error)
	Update(dishTypes, adminNetworks []string) (models.AppConfig, error)
}

// configService implements ConfigService interface
type configService struct {
	repo     repositories.ConfigRepository
	filePath string

	mu        sync.Mutex
	cached    models.AppConfig
	loaded    bool
	fileMTime time.Time
}

// NewConfigService creates a new config service
func NewConfigService(repo repositories.ConfigRepository, filePath string) ConfigService {
	return &configService{repo: repo, filePath: filePath}
}

// Get returns the current config, reloading when the file changed on disk
func (s *configService) Get() (models.AppConfig, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	mtime := s.statFile()
	if s.loaded && mtime.Equal(s.fileMTime) {
		return s.cached, nil
	}

	cfg, err := s.reconcile()
	if err != nil {
		return models.AppConfig{}, err
	}

	s.cached = cfg
	s.loaded = true
	s.fileMTime = s.statFile()
	return cfg, nil
}

// Update validates and persists a new config to both file and database
func (s *configService) Update(dishTypes, adminNetworks []string) (models.AppConfig, error) {
	if len(dishTypes) == 0 {
		return models.AppConfig{}, fmt.Errorf("at least one dish type is required")
	}
	if len(adminNetworks) == 0 {
		return models.AppConfig{}, fmt.Errorf("at least one admin network is required")
	}

	cfg := models.AppConfig{DishTypes: dishTypes, AdminNetworks: adminNetworks}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.writeFile(cfg); err != nil {
		return models.AppConfig{}, err
	}
	if err := s.repo.Save(cfg); err != nil {
		return models.AppConfig{}, fmt.Errorf("failed to save config: %w", err)
	}

	s.cached = cfg
	s.loaded = true
	s.fileMTime = s.statFile()
	return cfg, nil
}

// reconcile merges the file and database copies, newest side winning. Callers
// must hold the mutex.
func (s *configService) reconcile() (models.AppConfig, error) {
	fileCfg, fileMTime, err := s.readFile()
	if err != nil {
		return models.AppConfig{}, err
	}

	dbCfg, dbUpdatedAt, err := s.repo.Load()
	if err != nil {
		return models.AppConfig{}, fmt.Errorf("failed to load config from database: %w", err)
	}

	switch {
	case fileCfg != nil && dbCfg != nil:
		if fileMTime.After(dbUpdatedAt) {
			if !fileCfg.Equal(*dbCfg) {
				if err := s.repo.Save(*fileCfg); err != nil {
					return models.AppConfig{}, fmt.Errorf("failed to sync config to database: %w", err)
				}
			}
			return *fileCfg, nil
		}
		if !fileCfg.Equal(*dbCfg) {
			if err := s.writeFile(*dbCfg); err != nil {
				return models.AppConfig{}, err
			}
		}
		return *dbCfg, nil

	case fileCfg != nil:
		if err := s.repo.Save(*fileCfg); err != nil {
			return models.AppConfig{}, fmt.Errorf("failed to sync config to database: %w", err)
		}
		return *fileCfg, nil

	case dbCfg != nil:
		if err := s.writeFile(*dbCfg); err != nil {
			return models.AppConfig{}, err
		}
		return *dbCfg, nil
	}

	cfg := models.DefaultAppConfig()
	if err := s.writeFile(cfg); err != nil {
		return models.AppConfig{}, err
	}
	if err := s.repo.Save(cfg); err != nil {
		return models.AppConfig{}, fmt.Errorf("failed to save default config: %w", err)
	}
	return cfg, nil
}

// readFile loads config.json; a missing file is not an error
func (s *configService) readFile() (*models.AppConfig, time.Time, error) {
	info, err := os.Stat(s.filePath)
	if os.IsNotExist(err) {
		return nil, time.Time{}, nil
	}
	if err != nil {
		return nil, time.Time{}, fmt.Errorf("failed to stat config file: %w", err)
	}

	data, err := os.ReadFile(s.filePath)
	if err != nil {
		return nil, time.Time{}, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg models.AppConfig
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, time.Time{}, fmt.Errorf("failed to parse config file: %w", err)
	}

	return &cfg, info.ModTime(), nil
}

func (s *configService) writeFile(cfg models.AppConfig) error {
	if err := os.MkdirAll(filepath.Dir(s.filePath), 0o755); err != nil {
		return fmt.Errorf("failed to create data directory: %w", err)
	}

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}

	if err := os.WriteFile(s.filePath, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

func (s *configService) statFile() time.Time {
	info, err := os.Stat(s.filePath)
	if err != nil {
		return time.Time{}
	}
	return info.ModTime()
}
