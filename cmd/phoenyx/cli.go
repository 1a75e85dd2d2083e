package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/jask/phoenyx/internal/config"
	"github.com/jask/phoenyx/internal/content"
	"github.com/jask/phoenyx/internal/llm"
	"github.com/jask/phoenyx/internal/logging"
	"github.com/jask/phoenyx/internal/secrets"
	"github.com/jask/phoenyx/internal/service"
	"github.com/jask/phoenyx/internal/terminal"
)

// cli is what every command shares once config is resolved.
type cli struct {
	newProvider func(llm.Settings) llm.Provider
	newStore    func() (*secrets.Store, error)

	cfg config.Config
	log *zap.Logger
}

func defaultCLI() *cli {
	return &cli{
		newProvider: llm.New,
		newStore:    secrets.Default,
	}
}

// load reads .env, the config file and the environment, and opens the log.
func (rt *cli) load() error {
	// A missing .env is normal.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}
	rt.cfg = cfg
	rt.log = logging.NewOrNop(cfg.Log)
	return nil
}

func (rt *cli) close() {
	if rt.log != nil {
		_ = rt.log.Sync()
	}
}

func (rt *cli) nexus() *service.Nexus {
	provider := rt.newProvider(llm.Settings{
		Provider:     rt.cfg.LLM.Provider,
		APIKey:       rt.resolveAPIKey(),
		Model:        rt.cfg.LLM.Model,
		SystemPrompt: content.SystemPrompt,
		Temperature:  rt.cfg.LLM.Temperature,
		BaseURL:      rt.cfg.LLM.BaseURL,
	})
	return &service.Nexus{Provider: provider, Logger: rt.log, Timeout: rt.cfg.LLM.Timeout}
}

func (rt *cli) verifier() terminal.CredentialVerifier {
	return terminal.VerifierByName(rt.cfg.Terminal.Verifier)
}

// resolveAPIKey checks the environment, then the secret store, then the
// config file.
func (rt *cli) resolveAPIKey() string {
	provider := strings.ToLower(strings.TrimSpace(rt.cfg.LLM.Provider))
	envs := []string{strings.TrimSpace(rt.cfg.LLM.APIKeyEnv)}
	if provider == "openai" {
		envs = append(envs, "OPENAI_API_KEY")
	} else {
		envs = append(envs, "GEMINI_API_KEY")
	}
	for _, env := range envs {
		if env == "" {
			continue
		}
		if v := strings.TrimSpace(os.Getenv(env)); v != "" {
			return v
		}
	}
	if store, err := rt.newStore(); err == nil {
		if k, err := store.Get(provider); err == nil {
			return k
		}
	}
	return strings.TrimSpace(rt.cfg.LLM.APIKey)
}
