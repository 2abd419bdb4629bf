package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.Equal(t, SourceFile, cfg.DataSource)
	assert.Equal(t, "crop_production.csv", cfg.ProductionPath)
	assert.Equal(t, "data_core.csv", cfg.SoilPath)
	assert.Equal(t, 100, cfg.ForestTrees)
	assert.Equal(t, int64(42), cfg.ForestSeed)
	assert.Equal(t, "8080", cfg.AppPort)
}

func TestLoad_YAMLThenEnv(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)

	path := filepath.Join(dir, "agriguru.yaml")
	yamlContent := "data_source: postgres\nforest_trees: 10\nbudget_enabled: true\napp_port: \"9000\"\n"
	require.NoError(t, os.WriteFile(path, []byte(yamlContent), 0o644))

	t.Setenv("AGRIGURU_CONFIG", path)
	t.Setenv("APP_PORT", "9100")
	t.Setenv("FOREST_SEED", "7")
	t.Setenv("PIN_MOST_COMMON", "true")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, SourcePostgres, cfg.DataSource)
	assert.Equal(t, 10, cfg.ForestTrees)
	assert.True(t, cfg.BudgetEnabled)
	assert.Equal(t, "9100", cfg.AppPort)
	assert.Equal(t, int64(7), cfg.ForestSeed)
	assert.True(t, cfg.PinMostCommon)
}

func TestLoad_DotEnv(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("SOIL_PATH=/data/soil.xlsx\n"), 0o644))
	t.Setenv("AGRIGURU_CONFIG", "")
	t.Cleanup(func() { os.Unsetenv("SOIL_PATH") })

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "/data/soil.xlsx", cfg.SoilPath)
}

func TestLoad_MissingYAML(t *testing.T) {
	t.Setenv("AGRIGURU_CONFIG", filepath.Join(t.TempDir(), "missing.yaml"))

	_, err := Load()
	assert.Error(t, err)
}

func TestDSN(t *testing.T) {
	cfg := Default()
	assert.Equal(t, "host=localhost port=5432 user=agriguru_user password=agriguru_pass dbname=agriguru_db sslmode=disable", cfg.DSN())
}
