package config

import (
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Defaults match the reference Translink SEQ deployment.
const (
	DefaultBaseURL         = "http://127.0.0.1:5343/gtfs/seq/"
	DefaultStopNamePattern = "UQ Lakes station"

	defaultDataDir        = "static-data"
	defaultCacheDir       = "cached-data"
	defaultRefreshSeconds = 300
	defaultTimeoutMS      = 5000
	defaultLookaheadMin   = 10
	defaultPromptAttempts = 5
)

// Load reads the application configuration from path. A missing file is not
// an error: the defaults above apply, so the tracker runs out of the box
// against the reference feed. Environment variables (optionally loaded from
// a .env file) override both file values and defaults.
func Load(path string) (AppConfig, error) {
	var cfg AppConfig

	paths := []string{path}
	if path == "" {
		paths = []string{"config.yml", "./configs/config.yml"}
	}
	for _, p := range paths {
		data, err := os.ReadFile(p)
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return cfg, err
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, err
		}
		break
	}

	applyDefaults(&cfg)
	applyEnvOverrides(&cfg)

	v := validator.New()
	if err := v.Struct(cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func applyDefaults(cfg *AppConfig) {
	if cfg.Static.DataDir == "" {
		cfg.Static.DataDir = defaultDataDir
	}
	if cfg.Static.StopNamePattern == "" {
		cfg.Static.StopNamePattern = DefaultStopNamePattern
	}
	if cfg.Realtime.BaseURL == "" {
		cfg.Realtime.BaseURL = DefaultBaseURL
	}
	if cfg.Realtime.RefreshIntervalSeconds == 0 {
		cfg.Realtime.RefreshIntervalSeconds = defaultRefreshSeconds
	}
	if cfg.Realtime.TimeoutMS == 0 {
		cfg.Realtime.TimeoutMS = defaultTimeoutMS
	}
	if cfg.Realtime.CacheDir == "" {
		cfg.Realtime.CacheDir = defaultCacheDir
	}
	if cfg.Board.LookaheadMinutes == 0 {
		cfg.Board.LookaheadMinutes = defaultLookaheadMin
	}
	if cfg.Board.MaxPromptAttempts == 0 {
		cfg.Board.MaxPromptAttempts = defaultPromptAttempts
	}
}

func applyEnvOverrides(cfg *AppConfig) {
	// Load .env into the environment (ignore if missing).
	_ = godotenv.Load()

	if v := os.Getenv("UQLAKES_API_URL"); v != "" {
		cfg.Realtime.BaseURL = v
	}
	if v := os.Getenv("UQLAKES_STATIC_DIR"); v != "" {
		cfg.Static.DataDir = v
	}
	if v := os.Getenv("UQLAKES_CACHE_DIR"); v != "" {
		cfg.Realtime.CacheDir = v
	}
}
