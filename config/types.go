package config

// StaticConfig describes where the GTFS static tables live and how the
// target stop is selected from them.
type StaticConfig struct {
	DataDir         string `yaml:"dataDir"`
	StopNamePattern string `yaml:"stopNamePattern"`
}

// RealtimeConfig contains GTFS-Realtime feed configuration.
type RealtimeConfig struct {
	BaseURL                string `yaml:"baseURL" validate:"omitempty,url"`
	RefreshIntervalSeconds int    `yaml:"refreshIntervalSeconds" validate:"gte=0"`
	TimeoutMS              int    `yaml:"timeoutMS" validate:"gte=0"`
	CacheDir               string `yaml:"cacheDir"`
}

// BoardConfig contains the arrival-board query parameters.
type BoardConfig struct {
	LookaheadMinutes  int `yaml:"lookaheadMinutes" validate:"gte=0"`
	MaxPromptAttempts int `yaml:"maxPromptAttempts" validate:"gte=1"`
}

// AppConfig is the root configuration structure.
type AppConfig struct {
	Static   StaticConfig   `yaml:"static"`
	Realtime RealtimeConfig `yaml:"realtime"`
	Board    BoardConfig    `yaml:"board"`
}
