package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("HUNT_SESSION_KEY", "test-key")

	cfg := Load()

	assert.Equal(t, ":8080", cfg.Addr)
	assert.Equal(t, "json", cfg.StoreEngine)
	assert.Equal(t, filepath.Join("answers", "answers.csv"), cfg.AnswersFile)
	assert.Equal(t, filepath.Join("answers", "progress.json"), cfg.ProgressFile)
	assert.Equal(t, []byte("test-key"), cfg.SessionKey)
	assert.Contains(t, cfg.FeedURL(), "format=csv")
	assert.Contains(t, cfg.FeedURL(), cfg.SheetID)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("HUNT_ADDR", ":9000")
	t.Setenv("HUNT_DATA_DIR", "/var/lib/hunt")
	t.Setenv("HUNT_STORE", "sqlite")
	t.Setenv("HUNT_SESSION_KEY", "k")

	cfg := Load()

	assert.Equal(t, ":9000", cfg.Addr)
	assert.Equal(t, "sqlite", cfg.StoreEngine)
	assert.Equal(t, filepath.Join("/var/lib/hunt", "progress.json"), cfg.ProgressFile)
}

func TestRandomSessionKeyWhenUnset(t *testing.T) {
	t.Setenv("HUNT_SESSION_KEY", "")

	cfg := Load()
	assert.Len(t, cfg.SessionKey, 32)
}

func TestLoadCategoryDescriptions(t *testing.T) {
	path := filepath.Join(t.TempDir(), "categories.yaml")
	yaml := "\"Игра в П\": \"Всё на букву П.\"\n\"Money money money\": \"Про деньги.\"\n"
	require.NoError(t, os.WriteFile(path, []byte(yaml), 0o644))

	descriptions, err := LoadCategoryDescriptions(path)
	require.NoError(t, err)
	assert.Equal(t, "Всё на букву П.", descriptions["Игра в П"])
	assert.Len(t, descriptions, 2)
}

func TestLoadCategoryDescriptionsMissingFile(t *testing.T) {
	descriptions, err := LoadCategoryDescriptions(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Empty(t, descriptions)
}

func TestLoadCategoryDescriptionsBadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "categories.yaml")
	require.NoError(t, os.WriteFile(path, []byte("[this is a list"), 0o644))

	_, err := LoadCategoryDescriptions(path)
	assert.Error(t, err)
}
