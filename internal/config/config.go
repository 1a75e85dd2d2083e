package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const envPrefix = "PHOENYX"

// Config holds application configuration.
type Config struct {
	LLM      LLMConfig
	Terminal TerminalConfig
	UI       UIConfig
	Log      LogConfig
}

// LLMConfig holds chat provider settings.
type LLMConfig struct {
	Provider    string
	APIKeyEnv   string `mapstructure:"api_key_env"`
	APIKey      string `mapstructure:"api_key"`
	Model       string
	Temperature float64
	Timeout     time.Duration
	BaseURL     string `mapstructure:"base_url"`
}

// TerminalConfig tunes the login dialogue.
type TerminalConfig struct {
	// Speed divides every scripted delay; 2 plays twice as fast.
	Speed     float64
	MaskGlyph string `mapstructure:"mask_glyph"`
	// Verifier is "deny" (scripted failure) or "allow".
	Verifier string
}

// UIConfig holds presentation settings.
type UIConfig struct {
	AltScreen bool `mapstructure:"alt_screen"`
}

// LogConfig selects the zap level and the file logs are written to.
type LogConfig struct {
	Level string
	File  string
}

// Path is the config file location: $PHOENYX_CONFIG or ~/.config/phoenyx/config.toml.
func Path() string {
	if p := os.Getenv(envPrefix + "_CONFIG"); p != "" {
		return p
	}
	return filepath.Join(homeDir(), ".config", "phoenyx", "config.toml")
}

// Default returns the built-in configuration.
func Default() Config {
	var c Config
	v := newViper()
	_ = v.Unmarshal(&c)
	return c
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetDefault("llm.provider", "gemini")
	v.SetDefault("llm.api_key_env", "API_KEY")
	v.SetDefault("llm.api_key", "")
	v.SetDefault("llm.model", "gemini-3-flash-preview")
	v.SetDefault("llm.temperature", 0.7)
	v.SetDefault("llm.timeout", 30*time.Second)
	v.SetDefault("llm.base_url", "")
	v.SetDefault("terminal.speed", 1.0)
	v.SetDefault("terminal.mask_glyph", "•")
	v.SetDefault("terminal.verifier", "deny")
	v.SetDefault("ui.alt_screen", true)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.file", filepath.Join(cacheDir(), "phoenyx", "phoenyx.log"))
	v.SetConfigType("toml")
	return v
}

// Load reads configuration from file and env. Env var overrides use prefix PHOENYX_.
func Load() (Config, error) {
	v := newViper()
	v.SetConfigFile(Path())
	v.SetEnvPrefix(envPrefix)
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	return c, nil
}

// Save writes cfg to Path(), creating the directory if needed. The API key
// is written in plain text; env vars or the secret store are preferred.
func Save(cfg Config) error {
	path := Path()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("mkdir config dir: %w", err)
	}

	v := viper.New()
	v.SetConfigType("toml")
	v.Set("llm.provider", cfg.LLM.Provider)
	v.Set("llm.api_key_env", cfg.LLM.APIKeyEnv)
	v.Set("llm.api_key", cfg.LLM.APIKey)
	v.Set("llm.model", cfg.LLM.Model)
	v.Set("llm.temperature", cfg.LLM.Temperature)
	v.Set("llm.timeout", cfg.LLM.Timeout.String())
	v.Set("llm.base_url", cfg.LLM.BaseURL)
	v.Set("terminal.speed", cfg.Terminal.Speed)
	v.Set("terminal.mask_glyph", cfg.Terminal.MaskGlyph)
	v.Set("terminal.verifier", cfg.Terminal.Verifier)
	v.Set("ui.alt_screen", cfg.UI.AltScreen)
	v.Set("log.level", cfg.Log.Level)
	v.Set("log.file", cfg.Log.File)

	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// SpeedFactor converts Speed to a Timings scale factor.
func (t TerminalConfig) SpeedFactor() float64 {
	if t.Speed <= 0 {
		return 1
	}
	return 1 / t.Speed
}

// Glyph returns the first rune of MaskGlyph, or 0 for the engine default.
func (t TerminalConfig) Glyph() rune {
	for _, r := range t.MaskGlyph {
		return r
	}
	return 0
}

func homeDir() string {
	if h, err := os.UserHomeDir(); err == nil {
		return h
	}
	return os.Getenv("HOME")
}

func cacheDir() string {
	if d, err := os.UserCacheDir(); err == nil {
		return d
	}
	return os.TempDir()
}
