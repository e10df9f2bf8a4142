package services

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dishlist-app/dishlist/database"
	"github.com/dishlist-app/dishlist/models"
	"github.com/dishlist-app/dishlist/repositories"
)

// setupConfigService wires a config service against a real temp database
func setupConfigService(t *testing.T) (ConfigService, repositories.ConfigRepository, string) {
	dir := t.TempDir()

	t.Cleanup(func() {
		database.CloseDB()
	})

	if err := database.InitializeDatabase(filepath.Join(dir, "test.db")); err != nil {
		t.Fatalf("Failed to initialize test database: %v", err)
	}

	repo := repositories.NewConfigRepository(database.GetDB())
	filePath := filepath.Join(dir, "config.json")
	return NewConfigService(repo, filePath), repo, filePath
}

func TestConfigService_SeedsDefaults(t *testing.T) {
	service, repo, filePath := setupConfigService(t)

	cfg, err := service.Get()
	require.NoError(t, err)
	assert.True(t, cfg.Equal(models.DefaultAppConfig()))

	// The JSON file was written
	data, err := os.ReadFile(filePath)
	require.NoError(t, err)
	var fileCfg models.AppConfig
	require.NoError(t, json.Unmarshal(data, &fileCfg))
	assert.True(t, fileCfg.Equal(cfg))

	// The database rows were written
	dbCfg, _, err := repo.Load()
	require.NoError(t, err)
	require.NotNil(t, dbCfg)
	assert.True(t, dbCfg.Equal(cfg))
}

func TestConfigService_UpdatePersistsBothSides(t *testing.T) {
	service, repo, filePath := setupConfigService(t)

	_, err := service.Get()
	require.NoError(t, err)

	updated, err := service.Update(
		[]string{"Main Dish", "Soup"},
		[]string{"10.1.0.0/16"},
	)
	require.NoError(t, err)
	assert.Equal(t, []string{"Main Dish", "Soup"}, updated.DishTypes)

	cfg, err := service.Get()
	require.NoError(t, err)
	assert.True(t, cfg.Equal(updated))

	data, err := os.ReadFile(filePath)
	require.NoError(t, err)
	var fileCfg models.AppConfig
	require.NoError(t, json.Unmarshal(data, &fileCfg))
	assert.True(t, fileCfg.Equal(updated))

	dbCfg, _, err := repo.Load()
	require.NoError(t, err)
	require.NotNil(t, dbCfg)
	assert.True(t, dbCfg.Equal(updated))
}

func TestConfigService_RejectsEmptyLists(t *testing.T) {
	service, _, _ := setupConfigService(t)

	_, err := service.Update(nil, []string{"127.0.0.1/32"})
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "dish type")

	_, err = service.Update([]string{"Main Dish"}, nil)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "network")
}

func TestConfigService_PicksUpExternalFileEdit(t *testing.T) {
	service, repo, filePath := setupConfigService(t)

	_, err := service.Get()
	require.NoError(t, err)

	// Edit config.json behind the service's back, with a clearly newer mtime
	edited := models.AppConfig{
		DishTypes:     []string{"Main Dish", "Salad"},
		AdminNetworks: []string{"192.168.0.0/24"},
	}
	data, err := json.MarshalIndent(edited, "", "  ")
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filePath, data, 0o644))
	future := time.Now().Add(time.Hour)
	require.NoError(t, os.Chtimes(filePath, future, future))

	cfg, err := service.Get()
	require.NoError(t, err)
	assert.True(t, cfg.Equal(edited))

	// The edit was synced back into the database
	dbCfg, _, err := repo.Load()
	require.NoError(t, err)
	require.NotNil(t, dbCfg)
	assert.True(t, dbCfg.Equal(edited))
}

func TestConfigService_FileMissingFallsBackToDatabase(t *testing.T) {
	service, _, filePath := setupConfigService(t)

	saved, err := service.Update([]string{"Dessert"}, []string{"127.0.0.1"})
	require.NoError(t, err)

	require.NoError(t, os.Remove(filePath))

	cfg, err := service.Get()
	require.NoError(t, err)
	assert.True(t, cfg.Equal(saved))

	// The file was rewritten from the database copy
	_, err = os.Stat(filePath)
	assert.NoError(t, err)
}
