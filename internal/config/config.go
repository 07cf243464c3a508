package config

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
)

// Config holds application configuration.
type Config struct {
	// GeneratorAPIKey authenticates against the generation endpoint. The
	// OPENAI_API_KEY environment variable takes precedence over this field.
	GeneratorAPIKey string `json:"generator_api_key,omitempty"`

	// GeneratorBaseURL is the OpenAI-compatible endpoint for story
	// generation. Empty means the upstream default.
	GeneratorBaseURL string `json:"generator_base_url,omitempty"`

	// GeneratorModel is the model name used for story generation.
	GeneratorModel string `json:"generator_model,omitempty"`

	// GeneratorTimeoutSecs bounds a single generation call.
	GeneratorTimeoutSecs int `json:"generator_timeout_secs,omitempty"`

	// WebBind is the interface the web UI binds to.
	WebBind string `json:"web_bind,omitempty"`

	// WebPort is the web UI port.
	WebPort int `json:"web_port,omitempty"`

	// DBMaxOpenConns limits open database connections. If set to 1, all
	// database access is serialized. 0 means the sql.DB default.
	DBMaxOpenConns int `json:"db_max_open_conns,omitempty"`

	// DBMaxIdleConns limits idle database connections. 0 means the sql.DB
	// default.
	DBMaxIdleConns int `json:"db_max_idle_conns,omitempty"`

	// DisabledTools is a list of MCP tool names to exclude from
	// registration. Unknown tool names are logged as warnings.
	DisabledTools []string `json:"disabled_tools,omitempty"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		GeneratorModel:       "gpt-4o-mini",
		GeneratorTimeoutSecs: 120,
		WebBind:              "127.0.0.1",
		WebPort:              8642,
	}
}

// Load loads configuration from baseDir/config.json. Returns the default
// config if the file doesn't exist. The baseDir parameter allows tests to
// use t.TempDir() instead of ~/.fairshare.
func Load(baseDir string) (*Config, error) {
	cfg, err := loadFileRaw(filepath.Join(baseDir, "config.json"))
	if err != nil {
		return nil, err
	}
	return Merge(DefaultConfig(), cfg), nil
}

// loadFileRaw loads configuration from a specific file path. Returns a
// zero-valued config if the file doesn't exist (not defaults).
func loadFileRaw(configPath string) (*Config, error) {
	data, err := os.ReadFile(configPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &Config{}, nil
		}
		return nil, err
	}

	cfg := &Config{}
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Merge combines base and overlay configs. Overlay values take precedence
// for scalars; the tool list is replaced wholesale when set.
func Merge(base, overlay *Config) *Config {
	result := &Config{}

	result.GeneratorAPIKey = overlay.GeneratorAPIKey
	if result.GeneratorAPIKey == "" {
		result.GeneratorAPIKey = base.GeneratorAPIKey
	}

	result.GeneratorBaseURL = overlay.GeneratorBaseURL
	if result.GeneratorBaseURL == "" {
		result.GeneratorBaseURL = base.GeneratorBaseURL
	}

	result.GeneratorModel = overlay.GeneratorModel
	if result.GeneratorModel == "" {
		result.GeneratorModel = base.GeneratorModel
	}

	result.GeneratorTimeoutSecs = overlay.GeneratorTimeoutSecs
	if result.GeneratorTimeoutSecs == 0 {
		result.GeneratorTimeoutSecs = base.GeneratorTimeoutSecs
	}

	result.WebBind = overlay.WebBind
	if result.WebBind == "" {
		result.WebBind = base.WebBind
	}

	result.WebPort = overlay.WebPort
	if result.WebPort == 0 {
		result.WebPort = base.WebPort
	}

	result.DBMaxOpenConns = overlay.DBMaxOpenConns
	if result.DBMaxOpenConns == 0 {
		result.DBMaxOpenConns = base.DBMaxOpenConns
	}

	result.DBMaxIdleConns = overlay.DBMaxIdleConns
	if result.DBMaxIdleConns == 0 {
		result.DBMaxIdleConns = base.DBMaxIdleConns
	}

	result.DisabledTools = overlay.DisabledTools
	if len(result.DisabledTools) == 0 {
		result.DisabledTools = base.DisabledTools
	}

	return result
}
