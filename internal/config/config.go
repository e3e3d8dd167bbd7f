package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"
)

const (
	EnvPrefix      = "GITPILOT"
	ConfigDirName  = ".gitpilot"
	ConfigFileName = "config.json"

	ProviderGemini = "gemini"
	ProviderOpenAI = "openai"
)

// Config is the application configuration, constructed once at startup and
// passed into component constructors. There is no global instance.
type Config struct {
	// LLM selection
	Provider string `mapstructure:"provider" json:"provider"`

	// Gemini
	GoogleAPIKey      string  `mapstructure:"google_api_key" json:"google_api_key,omitempty"`
	GeminiModel       string  `mapstructure:"gemini_model" json:"gemini_model"`
	GeminiMaxTokens   int     `mapstructure:"gemini_max_tokens" json:"gemini_max_tokens"`
	GeminiTemperature float64 `mapstructure:"gemini_temperature" json:"gemini_temperature"`

	// OpenAI
	OpenAIAPIKey      string  `mapstructure:"openai_api_key" json:"openai_api_key,omitempty"`
	OpenAIModel       string  `mapstructure:"openai_model" json:"openai_model"`
	OpenAIBaseURL     string  `mapstructure:"openai_base_url" json:"openai_base_url"`
	OpenAIMaxTokens   int     `mapstructure:"openai_max_tokens" json:"openai_max_tokens"`
	OpenAITemperature float64 `mapstructure:"openai_temperature" json:"openai_temperature"`

	// Git
	GitPath           string `mapstructure:"git_path" json:"git_path"`
	GitTimeoutSeconds int    `mapstructure:"git_timeout" json:"git_timeout"`
	MaxCommits        int    `mapstructure:"max_commits" json:"max_commits"`

	// Safety
	SafeMode            bool `mapstructure:"safe_mode" json:"safe_mode"`
	RequireConfirmation bool `mapstructure:"require_confirmation" json:"require_confirmation"`

	// Output
	Verbose bool `mapstructure:"verbose" json:"verbose"`
}

// GitTimeout returns the per-command timeout as a duration.
func (c *Config) GitTimeout() time.Duration {
	return time.Duration(c.GitTimeoutSeconds) * time.Second
}

// Dir returns the config directory path, empty when the home directory is
// unresolvable.
func Dir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ConfigDirName)
}

// Path returns the config file path.
func Path() string {
	dir := Dir()
	if dir == "" {
		return ""
	}
	return filepath.Join(dir, ConfigFileName)
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()

	v.SetDefault("provider", ProviderGemini)
	v.SetDefault("gemini_model", "gemini-pro")
	v.SetDefault("gemini_max_tokens", 1000)
	v.SetDefault("gemini_temperature", 0.1)
	v.SetDefault("openai_model", "gpt-4")
	v.SetDefault("openai_base_url", "https://api.openai.com/v1")
	v.SetDefault("openai_max_tokens", 1000)
	v.SetDefault("openai_temperature", 0.1)
	v.SetDefault("git_path", "git")
	v.SetDefault("git_timeout", 30)
	v.SetDefault("max_commits", 5)
	v.SetDefault("safe_mode", true)
	v.SetDefault("require_confirmation", true)

	// Bare provider keys are accepted alongside the prefixed forms so the
	// usual GOOGLE_API_KEY / OPENAI_API_KEY variables work unchanged.
	_ = v.BindEnv("google_api_key", EnvPrefix+"_GOOGLE_API_KEY", "GOOGLE_API_KEY")
	_ = v.BindEnv("openai_api_key", EnvPrefix+"_OPENAI_API_KEY", "OPENAI_API_KEY")

	return v
}

// Load reads configuration from environment variables and the optional
// config file, applies defaults and validates bounds. Environment wins
// over the file; the file wins over defaults.
func Load() (*Config, error) {
	v := newViper()

	if dir := Dir(); dir != "" {
		v.SetConfigName("config")
		v.SetConfigType("json")
		v.AddConfigPath(dir)
		if err := v.ReadInConfig(); err != nil {
			if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
				return nil, fmt.Errorf("reading config file: %w", err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decoding config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate enforces the configuration bounds.
func (c *Config) Validate() error {
	if c.Provider != ProviderGemini && c.Provider != ProviderOpenAI {
		return fmt.Errorf("provider must be %q or %q, got %q", ProviderGemini, ProviderOpenAI, c.Provider)
	}
	if c.GitTimeoutSeconds < 5 || c.GitTimeoutSeconds > 300 {
		return fmt.Errorf("git_timeout must be between 5 and 300 seconds, got %d", c.GitTimeoutSeconds)
	}
	if c.MaxCommits < 1 || c.MaxCommits > 100 {
		return fmt.Errorf("max_commits must be between 1 and 100, got %d", c.MaxCommits)
	}
	if c.GeminiTemperature < 0 || c.GeminiTemperature > 1 {
		return fmt.Errorf("gemini_temperature must be between 0.0 and 1.0, got %g", c.GeminiTemperature)
	}
	if c.OpenAITemperature < 0 || c.OpenAITemperature > 1 {
		return fmt.Errorf("openai_temperature must be between 0.0 and 1.0, got %g", c.OpenAITemperature)
	}
	return nil
}

// Save writes the given settings to the config file, creating the
// directory when needed.
func Save(settings map[string]interface{}) error {
	dir := Dir()
	if dir == "" {
		return os.ErrNotExist
	}
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return err
	}

	v := newViper()
	v.SetConfigFile(Path())
	v.SetConfigType("json")
	// Merge existing file values so a single `config set` does not erase
	// the rest.
	_ = v.ReadInConfig()
	for key, value := range settings {
		v.Set(key, value)
	}
	return v.WriteConfigAs(Path())
}

// MaskKey returns a masked version of an API key for display.
func MaskKey(key string) string {
	if key == "" {
		return "(not set)"
	}
	if len(key) <= 4 {
		return "***"
	}
	return "***..." + key[len(key)-4:]
}
