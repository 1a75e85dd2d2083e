package secrets

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestStoreRoundTrip(t *testing.T) {
	s := &Store{Dir: filepath.Join(t.TempDir(), "phoenyx")}

	_, err := s.Get("gemini")
	require.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, s.Set(" Gemini ", "  abc123  "))
	got, err := s.Get("gemini")
	require.NoError(t, err)
	require.Equal(t, "abc123", got)

	info, err := os.Stat(filepath.Join(s.Dir, fileName))
	require.NoError(t, err)
	require.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	raw, err := os.ReadFile(filepath.Join(s.Dir, fileName))
	require.NoError(t, err)
	require.NotContains(t, string(raw), "abc123")

	require.NoError(t, s.Delete("GEMINI"))
	_, err = s.Get("gemini")
	require.ErrorIs(t, err, ErrNotFound)
	require.ErrorIs(t, s.Delete("gemini"), ErrNotFound)
}

func TestStoreValidation(t *testing.T) {
	s := &Store{Dir: t.TempDir()}
	require.Error(t, s.Set("", "k"))
	require.Error(t, s.Set("openai", "   "))
	_, err := s.Get(" ")
	require.Error(t, err)
}

func TestStoreRejectsCorruptFile(t *testing.T) {
	s := &Store{Dir: t.TempDir()}
	require.NoError(t, os.WriteFile(filepath.Join(s.Dir, fileName), []byte("{not json"), 0o600))
	_, err := s.Get("gemini")
	require.ErrorContains(t, err, "parse")
}
