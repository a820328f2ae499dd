package config

import (
	"log"
	"os"
	"strconv"
)

type Mode string

const (
	ModeLocal Mode = "local"
	ModeGCP   Mode = "gcp"
)

type Config struct {
	Mode Mode

	Port string

	GCPProjectID string
	GCPLocation  string

	ModelName      string
	ImageModelName string

	// ThinkingBudget is passed through to every deliberation call as
	// the model's compute budget. 0 leaves the provider default.
	ThinkingBudget int32

	StorageBackend string // "memory", "file", "sqlite" or "firestore"
	HistoryPath    string // file/sqlite backends
	RosterPath     string // optional YAML roster override

	UseMockLLM bool // true = use mock even on GCP
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getBoolEnv(key string, def bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	if v == "1" || v == "true" || v == "TRUE" {
		return true
	}
	return false
}

func getIntEnv(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}

// Load reads all env vars and builds the config
func Load() *Config {
	modeStr := getEnv("QUORUM_MODE", "local")
	var mode Mode
	switch modeStr {
	case "gcp":
		mode = ModeGCP
	default:
		mode = ModeLocal
	}

	cfg := &Config{
		Mode: mode,

		Port: getEnv("QUORUM_PORT", "8080"),

		GCPProjectID: getEnv("QUORUM_GCP_PROJECT", ""),
		GCPLocation:  getEnv("QUORUM_GCP_LOCATION", "us-central1"),

		ModelName:      getEnv("QUORUM_MODEL_NAME", "gemini-2.5-flash"),
		ImageModelName: getEnv("QUORUM_IMAGE_MODEL_NAME", "gemini-2.5-flash-image"),

		ThinkingBudget: int32(getIntEnv("QUORUM_THINKING_BUDGET", 8192)),

		StorageBackend: getEnv("QUORUM_STORAGE_BACKEND", "memory"),
		HistoryPath:    getEnv("QUORUM_HISTORY_PATH", "quorum-history.json"),
		RosterPath:     getEnv("QUORUM_ROSTER_PATH", ""),

		UseMockLLM: getBoolEnv("QUORUM_USE_MOCK_LLM", mode == ModeLocal),
	}

	// Minimal validation in GCP mode
	if cfg.Mode == ModeGCP && cfg.GCPProjectID == "" {
		log.Fatal("QUORUM_GCP_PROJECT must be set in gcp mode")
	}

	return cfg
}
