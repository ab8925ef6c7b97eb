package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, "PawPal", cfg.Name)
	assert.Equal(t, "gemini-2.5-flash", cfg.Assist.ChatModel)
	assert.Equal(t, 5*time.Second, cfg.GetPollInterval())
	assert.Equal(t, "light", cfg.UI.Theme)
	assert.Equal(t, "en", cfg.UI.Language)
}

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig().Journal.DatabasePath, cfg.Journal.DatabasePath)
}

func TestLoadFromYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pawpal.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
assist:
  api_key: yaml-key
  chat_model: gemini-2.5-pro
  poll_interval: 2s
ui:
  theme: dark
  language: zh
logging:
  debug: true
`), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "yaml-key", cfg.Assist.APIKey)
	assert.Equal(t, "gemini-2.5-pro", cfg.Assist.ChatModel)
	assert.Equal(t, 2*time.Second, cfg.GetPollInterval())
	assert.Equal(t, "dark", cfg.UI.Theme)
	assert.Equal(t, "zh", cfg.UI.Language)
	assert.True(t, cfg.Logging.Debug)
	// Untouched sections keep defaults.
	assert.Equal(t, "imagen-4.0-generate-001", cfg.Assist.ImageModel)
}

func TestLoadRejectsMalformedYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pawpal.yaml")
	require.NoError(t, os.WriteFile(path, []byte("assist: [unclosed"), 0644))
	_, err := Load(path)
	assert.Error(t, err)
}

func TestBadPollIntervalFallsBack(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Assist.PollInterval = "soon"
	assert.Equal(t, 5*time.Second, cfg.GetPollInterval())
	cfg.Assist.PollInterval = "-3s"
	assert.Equal(t, 5*time.Second, cfg.GetPollInterval())
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "pawpal.yaml")
	cfg := DefaultConfig()
	cfg.Assist.APIKey = "saved-key"
	require.NoError(t, cfg.Save(path))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "saved-key", loaded.Assist.APIKey)
}

func TestValidate(t *testing.T) {
	cfg := DefaultConfig()
	assert.Error(t, cfg.Validate(), "missing API key must fail validation")

	cfg.Assist.APIKey = "k"
	assert.NoError(t, cfg.Validate())

	cfg.UI.Theme = "sepia"
	assert.Error(t, cfg.Validate())
	cfg.UI.Theme = "dark"
	cfg.UI.Language = "fr"
	assert.Error(t, cfg.Validate())
}
