package llm

import (
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/yanqian/doc-summarizer/internal/infra/config"
	"github.com/yanqian/doc-summarizer/internal/infra/llm/breaker"
	"github.com/yanqian/doc-summarizer/internal/infra/llm/chatgpt"
	"github.com/yanqian/doc-summarizer/internal/infra/llm/claude"
	"github.com/yanqian/doc-summarizer/internal/infra/llm/gemini"
)

func TestNewGenerator(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	tests := []struct {
		name    string
		cfg     config.LLMConfig
		check   func(t *testing.T, gen any)
		wantErr bool
	}{
		{
			name:  "gemini",
			cfg:   config.LLMConfig{Provider: config.ProviderGemini, APIKey: "k"},
			check: func(t *testing.T, gen any) { require.IsType(t, &gemini.Client{}, gen) },
		},
		{
			name:  "openai",
			cfg:   config.LLMConfig{Provider: config.ProviderOpenAI, APIKey: "k"},
			check: func(t *testing.T, gen any) { require.IsType(t, &chatgpt.Client{}, gen) },
		},
		{
			name:  "anthropic",
			cfg:   config.LLMConfig{Provider: config.ProviderAnthropic, APIKey: "k"},
			check: func(t *testing.T, gen any) { require.IsType(t, &claude.Client{}, gen) },
		},
		{
			name: "breaker",
			cfg: config.LLMConfig{Provider: config.ProviderGemini, APIKey: "k",
				CircuitBreaker: config.CircuitBreakerConfig{Enabled: true, FailureThreshold: 0.5}},
			check: func(t *testing.T, gen any) { require.IsType(t, &breaker.Generator{}, gen) },
		},
		{name: "unknown provider", cfg: config.LLMConfig{Provider: "cohere", APIKey: "k"}, wantErr: true},
		{name: "missing key", cfg: config.LLMConfig{Provider: config.ProviderOpenAI}, wantErr: true},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			gen, err := NewGenerator(tt.cfg, logger)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			tt.check(t, gen)
		})
	}
}
