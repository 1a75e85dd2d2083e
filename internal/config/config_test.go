package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoadDefaultsWithoutFile(t *testing.T) {
	t.Setenv("PHOENYX_CONFIG", filepath.Join(t.TempDir(), "missing.toml"))

	c, err := Load()
	require.NoError(t, err)
	require.Equal(t, "gemini", c.LLM.Provider)
	require.Equal(t, "API_KEY", c.LLM.APIKeyEnv)
	require.Equal(t, "gemini-3-flash-preview", c.LLM.Model)
	require.InDelta(t, 0.7, c.LLM.Temperature, 1e-9)
	require.Equal(t, 30*time.Second, c.LLM.Timeout)
	require.Equal(t, "deny", c.Terminal.Verifier)
	require.Equal(t, '•', c.Terminal.Glyph())
	require.Equal(t, 1.0, c.Terminal.SpeedFactor())
	require.True(t, c.UI.AltScreen)
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("PHOENYX_CONFIG", filepath.Join(t.TempDir(), "missing.toml"))
	t.Setenv("PHOENYX_LLM_PROVIDER", "openai")
	t.Setenv("PHOENYX_TERMINAL_SPEED", "4")
	t.Setenv("PHOENYX_LLM_TIMEOUT", "5s")

	c, err := Load()
	require.NoError(t, err)
	require.Equal(t, "openai", c.LLM.Provider)
	require.Equal(t, 0.25, c.Terminal.SpeedFactor())
	require.Equal(t, 5*time.Second, c.LLM.Timeout)
}

func TestSaveThenLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.toml")
	t.Setenv("PHOENYX_CONFIG", path)

	c := Default()
	c.LLM.Model = "gemini-2.5-pro"
	c.Terminal.Speed = 2
	c.Terminal.MaskGlyph = "*"
	c.Log.Level = "debug"
	require.NoError(t, Save(c))

	_, err := os.Stat(path)
	require.NoError(t, err)

	got, err := Load()
	require.NoError(t, err)
	require.Equal(t, "gemini-2.5-pro", got.LLM.Model)
	require.Equal(t, 0.5, got.Terminal.SpeedFactor())
	require.Equal(t, '*', got.Terminal.Glyph())
	require.Equal(t, "debug", got.Log.Level)
	require.Equal(t, c.LLM.Timeout, got.LLM.Timeout)
}

func TestLoadRejectsMalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("[llm\nprovider = "), 0o600))
	t.Setenv("PHOENYX_CONFIG", path)

	_, err := Load()
	require.ErrorContains(t, err, "read config")
}

func TestSpeedFactorGuardsNonPositive(t *testing.T) {
	require.Equal(t, 1.0, TerminalConfig{Speed: 0}.SpeedFactor())
	require.Equal(t, 1.0, TerminalConfig{Speed: -3}.SpeedFactor())
	require.Equal(t, rune(0), TerminalConfig{}.Glyph())
}
