package llm

import (
	"fmt"
	"log/slog"

	"github.com/yanqian/doc-summarizer/internal/domain/summarizer"
	"github.com/yanqian/doc-summarizer/internal/infra/config"
	"github.com/yanqian/doc-summarizer/internal/infra/llm/breaker"
	"github.com/yanqian/doc-summarizer/internal/infra/llm/chatgpt"
	"github.com/yanqian/doc-summarizer/internal/infra/llm/claude"
	"github.com/yanqian/doc-summarizer/internal/infra/llm/gemini"
)

// NewGenerator builds the client for cfg.Provider, guarded by a circuit breaker when enabled.
func NewGenerator(cfg config.LLMConfig, logger *slog.Logger) (summarizer.Generator, error) {
	var (
		gen summarizer.Generator
		err error
	)
	switch cfg.Provider {
	case config.ProviderGemini, "":
		gen, err = gemini.NewClient(cfg.APIKey, gemini.Options{
			BaseURL:     cfg.BaseURL,
			Timeout:     cfg.Timeout,
			Temperature: cfg.Temperature,
		})
	case config.ProviderOpenAI:
		gen, err = chatgpt.NewClient(cfg.APIKey, chatgpt.Options{
			BaseURL:     cfg.BaseURL,
			Timeout:     cfg.Timeout,
			Temperature: cfg.Temperature,
		})
	case config.ProviderAnthropic:
		gen, err = claude.NewClient(cfg.APIKey, claude.Options{
			BaseURL:     cfg.BaseURL,
			Timeout:     cfg.Timeout,
			Temperature: cfg.Temperature,
			MaxTokens:   cfg.MaxOutputTokens,
		})
	default:
		return nil, fmt.Errorf("unsupported llm provider %q", cfg.Provider)
	}
	if err != nil {
		return nil, err
	}

	if !cfg.CircuitBreaker.Enabled {
		return gen, nil
	}
	bcfg := breaker.DefaultConfig(cfg.Provider + "-api")
	if cfg.CircuitBreaker.FailureThreshold > 0 {
		bcfg.FailureThreshold = cfg.CircuitBreaker.FailureThreshold
	}
	if cfg.CircuitBreaker.MinRequests > 0 {
		bcfg.MinRequests = cfg.CircuitBreaker.MinRequests
	}
	if cfg.CircuitBreaker.Timeout > 0 {
		bcfg.Timeout = cfg.CircuitBreaker.Timeout
	}
	return breaker.Wrap(gen, bcfg, logger), nil
}
