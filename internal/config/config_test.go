package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/PabloGalante/quorum-agent/internal/config"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{
		"QUORUM_MODE", "QUORUM_PORT", "QUORUM_MODEL_NAME", "QUORUM_IMAGE_MODEL_NAME",
		"QUORUM_THINKING_BUDGET", "QUORUM_STORAGE_BACKEND", "QUORUM_USE_MOCK_LLM",
	} {
		t.Setenv(key, "")
	}

	cfg := config.Load()

	assert.Equal(t, config.ModeLocal, cfg.Mode)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "gemini-2.5-flash", cfg.ModelName)
	assert.Equal(t, "gemini-2.5-flash-image", cfg.ImageModelName)
	assert.Equal(t, int32(8192), cfg.ThinkingBudget)
	assert.Equal(t, "memory", cfg.StorageBackend)
	assert.True(t, cfg.UseMockLLM, "local mode mocks the model by default")
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("QUORUM_MODE", "gcp")
	t.Setenv("QUORUM_GCP_PROJECT", "my-project")
	t.Setenv("QUORUM_GCP_LOCATION", "europe-west1")
	t.Setenv("QUORUM_PORT", "9090")
	t.Setenv("QUORUM_THINKING_BUDGET", "1024")
	t.Setenv("QUORUM_STORAGE_BACKEND", "sqlite")
	t.Setenv("QUORUM_HISTORY_PATH", "/tmp/history.db")
	t.Setenv("QUORUM_USE_MOCK_LLM", "false")

	cfg := config.Load()

	assert.Equal(t, config.ModeGCP, cfg.Mode)
	assert.Equal(t, "my-project", cfg.GCPProjectID)
	assert.Equal(t, "europe-west1", cfg.GCPLocation)
	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, int32(1024), cfg.ThinkingBudget)
	assert.Equal(t, "sqlite", cfg.StorageBackend)
	assert.Equal(t, "/tmp/history.db", cfg.HistoryPath)
	assert.False(t, cfg.UseMockLLM)
}

func TestLoadRosterDefaults(t *testing.T) {
	registry, err := config.LoadRoster("")
	require.NoError(t, err)

	assert.Equal(t, 5, registry.Len())

	all := registry.All()
	assert.Equal(t, "visionary", string(all[0].ID), "the visionary opens every round")
	assert.Equal(t, "skeptic", string(all[len(all)-1].ID), "the skeptic speaks last")
	for _, p := range all {
		assert.NotEmpty(t, p.RoleInstruction, "persona %s needs a role instruction", p.ID)
	}
}

func TestLoadRosterFromYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "roster.yaml")
	raw := `personas:
  - id: optimist
    display_name: "Polly Anna"
    title: "Chief Optimism Officer"
    role_instruction: "Find the upside."
  - id: pessimist
    display_name: "Murphy Law"
    title: "Chief Pessimism Officer"
    role_instruction: "Find the downside."
`
	require.NoError(t, os.WriteFile(path, []byte(raw), 0o644))

	registry, err := config.LoadRoster(path)
	require.NoError(t, err)

	// A roster file replaces the built-in board entirely.
	assert.Equal(t, 2, registry.Len())
	p, ok := registry.Get("optimist")
	require.True(t, ok)
	assert.Equal(t, "Polly Anna", p.DisplayName)
	assert.Equal(t, "Find the upside.", p.RoleInstruction)
}

func TestLoadRosterRejectsBadFiles(t *testing.T) {
	_, err := config.LoadRoster(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	path := filepath.Join(t.TempDir(), "broken.yaml")
	require.NoError(t, os.WriteFile(path, []byte("personas: [not: {valid"), 0o644))
	_, err = config.LoadRoster(path)
	assert.Error(t, err)
}
