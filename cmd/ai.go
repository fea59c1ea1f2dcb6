package cmd

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/spigell/skill-matcher/internal/ai"
	"github.com/spigell/skill-matcher/internal/ai/gemini"
	"github.com/spigell/skill-matcher/internal/logger"
	"github.com/spigell/skill-matcher/internal/secrets"
)

const geminiAPIKeyEnv = "GEMINI_API_KEY"

func newQueryAnalyzer(ctx context.Context, cfg *AIConfig, l *zap.Logger) (ai.QueryAnalyzer, error) {
	provider := strings.TrimSpace(strings.ToLower(cfg.Provider))
	if provider != "" && provider != "gemini" {
		return nil, fmt.Errorf("unsupported ai provider: %s", cfg.Provider)
	}

	apiKey, err := secrets.Load(secrets.Source{
		Name:  "gemini api key",
		File:  cfg.Gemini.APIKeyFile,
		Value: cfg.Gemini.APIKey,
		Env:   geminiAPIKeyEnv,
	})
	if err != nil {
		return nil, fmt.Errorf("%w (set ai.gemini.api-key-file, GEMINI_API_KEY_FILE or %s)", err, geminiAPIKeyEnv)
	}

	generator, err := gemini.NewGenerator(ctx, apiKey, cfg.Gemini.Model, l)
	if err != nil {
		return nil, err
	}
	generator.SetMaxRetries(cfg.Gemini.MaxRetries)

	analyzerLogger := logger.WithCommonFields(l, "gemini", generator.Model())

	return gemini.NewQueryAnalyzer(generator, cfg.Gemini.MaxLogLength, analyzerLogger), nil
}
