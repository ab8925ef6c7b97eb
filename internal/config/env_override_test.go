package config

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnvOverrides(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "env-gemini")
	t.Setenv("AMAP_API_KEY", "env-amap")
	t.Setenv("PAWPAL_DB", "/tmp/override.db")
	t.Setenv("PAWPAL_THEME", "dark")
	t.Setenv("PAWPAL_LANG", "zh")

	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "env-gemini", cfg.Assist.APIKey)
	assert.Equal(t, "env-amap", cfg.Geo.APIKey)
	assert.Equal(t, "/tmp/override.db", cfg.Journal.DatabasePath)
	assert.Equal(t, "dark", cfg.UI.Theme)
	assert.Equal(t, "zh", cfg.UI.Language)
}

func TestPawpalKeyBeatsGeminiKey(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "generic")
	t.Setenv("PAWPAL_API_KEY", "specific")

	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "specific", cfg.Assist.APIKey)
}

func TestEnvBeatsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pawpal.yaml")
	cfg := DefaultConfig()
	cfg.Assist.APIKey = "file-key"
	require.NoError(t, cfg.Save(path))

	t.Setenv("GEMINI_API_KEY", "env-key")
	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "env-key", loaded.Assist.APIKey)
}
