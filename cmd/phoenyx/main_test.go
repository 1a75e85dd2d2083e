package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jask/phoenyx/internal/llm"
	"github.com/jask/phoenyx/internal/secrets"
	"github.com/jask/phoenyx/internal/service"
)

type echoProvider struct {
	settings llm.Settings
	message  string
	history  []llm.Turn
}

func (p *echoProvider) Chat(_ context.Context, message string, history []llm.Turn) (string, error) {
	p.message, p.history = message, history
	return "echo: " + message, nil
}

type fixture struct {
	rt       *cli
	dir      string
	provider *echoProvider
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("PHOENYX_CONFIG", filepath.Join(dir, "config.toml"))
	t.Setenv("XDG_CACHE_HOME", filepath.Join(dir, "cache"))
	t.Setenv("API_KEY", "")
	t.Setenv("GEMINI_API_KEY", "")
	t.Setenv("OPENAI_API_KEY", "")

	f := &fixture{dir: dir, provider: &echoProvider{}}
	f.rt = &cli{
		newProvider: func(s llm.Settings) llm.Provider {
			f.provider.settings = s
			return f.provider
		},
		newStore: func() (*secrets.Store, error) {
			return &secrets.Store{Dir: filepath.Join(dir, "secrets")}, nil
		},
	}
	return f
}

func (f *fixture) run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd(f.rt)
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestLoginScriptFailurePath(t *testing.T) {
	f := newFixture(t)
	out, err := f.run(t, "y\nneo\nhunter2\nn\n", "login", "--script")
	require.NoError(t, err)

	require.Contains(t, out, "> DO YOU HAVE AN EXISTING ACCOUNT? (Y/N)")
	require.Contains(t, out, "< neo")
	require.Contains(t, out, "> IDENTITY RECOGNIZED: [NEO]")
	require.Contains(t, out, "< •••••••")
	require.NotContains(t, out, "hunter2")
	require.Contains(t, out, "> ERROR: INVALID CREDENTIALS.")
	require.Contains(t, out, "-- step=DONE outcome=FAILURE exited=true")
}

func TestLoginScriptSignup(t *testing.T) {
	f := newFixture(t)
	out, err := f.run(t, "n\ntrinity\nmatrix\n", "login", "--script")
	require.NoError(t, err)
	require.Contains(t, out, "> AVAILABILITY CONFIRMED: [TRINITY]")
	require.Contains(t, out, "> WELCOME TO THE NEXUS, INITIATE.")
	require.Contains(t, out, "-- step=DONE outcome=SUCCESS exited=false")
}

func TestLoginScriptStopsWhenAnswersRunOut(t *testing.T) {
	f := newFixture(t)
	out, err := f.run(t, "", "login", "--script")
	require.NoError(t, err)
	require.Contains(t, out, "-- step=ACCOUNT_CHECK outcome=- exited=false")
}

func TestAskPrintsReply(t *testing.T) {
	f := newFixture(t)
	t.Setenv("API_KEY", "k-env")
	out, err := f.run(t, "", "ask", "what", "is", "inari?")
	require.NoError(t, err)
	require.Equal(t, "echo: what is inari?\n", out)
	require.Equal(t, "what is inari?", f.provider.message)
	require.Len(t, f.provider.history, 1)
	require.Equal(t, service.Greeting, f.provider.history[0].Text)
	require.Equal(t, "k-env", f.provider.settings.APIKey)
	require.Equal(t, "gemini", f.provider.settings.Provider)
	require.NotEmpty(t, f.provider.settings.SystemPrompt)
}

func TestAskWithoutKeyFallsBack(t *testing.T) {
	f := newFixture(t)
	f.rt.newProvider = llm.New
	out, err := f.run(t, "", "ask", "hello")
	require.NoError(t, err)
	require.Equal(t, service.FallbackError+"\n", out)
}

func TestResolveAPIKeyOrder(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.rt.load())
	require.Empty(t, f.rt.resolveAPIKey())

	f.rt.cfg.LLM.APIKey = "from-config"
	require.Equal(t, "from-config", f.rt.resolveAPIKey())

	store, err := f.rt.newStore()
	require.NoError(t, err)
	require.NoError(t, store.Set("gemini", "from-store"))
	require.Equal(t, "from-store", f.rt.resolveAPIKey())

	t.Setenv("GEMINI_API_KEY", "from-provider-env")
	require.Equal(t, "from-provider-env", f.rt.resolveAPIKey())

	t.Setenv("API_KEY", "from-env")
	require.Equal(t, "from-env", f.rt.resolveAPIKey())
}

func TestConfigInit(t *testing.T) {
	f := newFixture(t)
	path := filepath.Join(f.dir, "config.toml")

	out, err := f.run(t, "", "config", "init")
	require.NoError(t, err)
	require.Contains(t, out, path)
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Contains(t, string(data), "gemini-3-flash-preview")

	_, err = f.run(t, "", "config", "init")
	require.ErrorContains(t, err, "already exists")

	require.NoError(t, os.WriteFile(path, []byte("not = [toml"), 0o644))
	_, err = f.run(t, "", "config", "init", "--force")
	require.NoError(t, err)
}

func TestBrokenConfigFailsOtherCommands(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, os.WriteFile(filepath.Join(f.dir, "config.toml"), []byte("not = [toml"), 0o644))
	_, err := f.run(t, "", "ask", "hi")
	require.ErrorContains(t, err, "config")
}

func TestKeySetAndDelete(t *testing.T) {
	f := newFixture(t)
	out, err := f.run(t, "", "key", "set", "OpenAI", "sk-123")
	require.NoError(t, err)
	require.Equal(t, "stored key for openai\n", out)

	store, err := f.rt.newStore()
	require.NoError(t, err)
	got, err := store.Get("openai")
	require.NoError(t, err)
	require.Equal(t, "sk-123", got)

	_, err = f.run(t, "", "key", "delete", "openai")
	require.NoError(t, err)
	_, err = store.Get("openai")
	require.ErrorIs(t, err, secrets.ErrNotFound)

	_, err = f.run(t, "", "key", "delete", "openai")
	require.ErrorIs(t, err, secrets.ErrNotFound)

	_, err = f.run(t, "", "key", "set", "openai")
	require.Error(t, err)
}

func TestLoginScriptAllowVerifierGrantsAccess(t *testing.T) {
	f := newFixture(t)
	t.Setenv("PHOENYX_TERMINAL_VERIFIER", "allow")
	out, err := f.run(t, "yes\nneo\npw\n", "login", "--script")
	require.NoError(t, err)
	require.Contains(t, out, "> ACCESS GRANTED.")
	require.Contains(t, out, "> WELCOME BACK, [NEO].")
	require.Contains(t, out, "-- step=DONE outcome=SUCCESS exited=false")
}
