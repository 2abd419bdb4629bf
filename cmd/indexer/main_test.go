package main

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/akozadaev/agriguru/internal/config"
)

func TestReadFirst(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "migrations"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "migrations", "elasticsearch_mapping.json"), []byte(`{"mappings":{}}`), 0o644))
	t.Chdir(dir)

	data, err := readFirst("", "elasticsearch_mapping.json")
	require.NoError(t, err)
	assert.JSONEq(t, `{"mappings":{}}`, string(data))

	_, err = readFirst(filepath.Join(dir, "nope.json"), "elasticsearch_mapping.json")
	assert.Error(t, err)
}

func TestRun_RejectsUnknownTarget(t *testing.T) {
	err := run(context.Background(), config.Default(), options{target: "kafka"}, zap.NewNop())
	assert.ErrorContains(t, err, "unknown target")
}

func TestRun_MissingProductionFile(t *testing.T) {
	opts := options{target: targetAll, productionPath: filepath.Join(t.TempDir(), "missing.csv")}
	err := run(context.Background(), config.Default(), opts, zap.NewNop())
	assert.ErrorIs(t, err, os.ErrNotExist)
}
