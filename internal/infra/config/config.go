package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/yanqian/doc-summarizer/internal/domain/summarizer"
)

// Supported LLM providers.
const (
	ProviderGemini    = "gemini"
	ProviderOpenAI    = "openai"
	ProviderAnthropic = "anthropic"
)

// Config aggregates runtime configuration used across the service.
type Config struct {
	HTTP    HTTPConfig    `yaml:"http"`
	LLM     LLMConfig     `yaml:"llm"`
	Summary SummaryConfig `yaml:"summary"`
	Upload  UploadConfig  `yaml:"upload"`
	Metrics MetricsConfig `yaml:"metrics"`
}

// HTTPConfig controls server level behavior.
type HTTPConfig struct {
	Address        string        `yaml:"address"`
	ReadTimeout    time.Duration `yaml:"readTimeout"`
	WriteTimeout   time.Duration `yaml:"writeTimeout"`
	AllowedOrigins []string      `yaml:"allowedOrigins"`
}

// LLMConfig selects the provider and the fallback model list.
type LLMConfig struct {
	Provider        string               `yaml:"provider"`
	APIKey          string               `yaml:"apiKey"`
	BaseURL         string               `yaml:"baseUrl"`
	Model           string               `yaml:"model"`
	Candidates      []string             `yaml:"candidates"`
	Timeout         time.Duration        `yaml:"timeout"`
	Temperature     *float32             `yaml:"temperature"`
	MaxOutputTokens int                  `yaml:"maxOutputTokens"`
	CircuitBreaker  CircuitBreakerConfig `yaml:"circuitBreaker"`
}

// CircuitBreakerConfig guards the provider client.
type CircuitBreakerConfig struct {
	Enabled          bool          `yaml:"enabled"`
	FailureThreshold float64       `yaml:"failureThreshold"`
	MinRequests      uint32        `yaml:"minRequests"`
	Timeout          time.Duration `yaml:"timeout"`
}

// SummaryConfig defines chunking and prompt defaults.
type SummaryConfig struct {
	MaxChunkTokens    int    `yaml:"maxChunkTokens"`
	ChunkOverlapWords int    `yaml:"chunkOverlapWords"`
	MinDocumentChars  int    `yaml:"minDocumentChars"`
	DefaultLanguage   string `yaml:"defaultLanguage"`
}

// UploadConfig controls temporary upload storage.
type UploadConfig struct {
	MaxBytes int64  `yaml:"maxBytes"`
	TempDir  string `yaml:"tempDir"`
}

// MetricsConfig toggles the Prometheus endpoint.
type MetricsConfig struct {
	Enabled bool   `yaml:"enabled"`
	Path    string `yaml:"path"`
}

// Load reads configuration from a YAML file and environment variables.
func Load() (*Config, error) {
	cfg := defaultConfig()

	if path := os.Getenv("CONFIG_PATH"); path != "" {
		if err := hydrateFromFile(cfg, path); err != nil {
			return nil, err
		}
	} else if _, err := os.Stat("configs/config.yaml"); err == nil {
		if err := hydrateFromFile(cfg, "configs/config.yaml"); err != nil {
			return nil, err
		}
	}

	applyEnvOverrides(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

func hydrateFromFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config file: %w", err)
	}
	return nil
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("PORT"); v != "" {
		cfg.HTTP.Address = ":" + strings.TrimPrefix(v, ":")
	}
	if v := os.Getenv("HTTP_ADDRESS"); v != "" {
		cfg.HTTP.Address = v
	}
	if v := os.Getenv("HTTP_ALLOWED_ORIGINS"); v != "" {
		cfg.HTTP.AllowedOrigins = splitList(v)
	}
	if v := os.Getenv("LLM_PROVIDER"); v != "" {
		cfg.LLM.Provider = v
	}
	if v := firstEnv("LLM_API_KEY", "GEMINI_API_KEY"); v != "" {
		cfg.LLM.APIKey = v
	}
	if v := os.Getenv("LLM_BASE_URL"); v != "" {
		cfg.LLM.BaseURL = v
	}
	if v := firstEnv("LLM_MODEL", "MODEL"); v != "" {
		cfg.LLM.Model = v
	}
	if v := os.Getenv("LLM_CANDIDATES"); v != "" {
		cfg.LLM.Candidates = splitList(v)
	}
	if v := os.Getenv("LLM_TIMEOUT"); v != "" {
		if parsed, err := time.ParseDuration(v); err == nil {
			cfg.LLM.Timeout = parsed
		}
	}
	if v := os.Getenv("LLM_TEMPERATURE"); v != "" {
		if parsed, err := strconv.ParseFloat(v, 32); err == nil {
			temp := float32(parsed)
			cfg.LLM.Temperature = &temp
		}
	}
	if v := os.Getenv("LLM_CIRCUIT_BREAKER_ENABLED"); v != "" {
		cfg.LLM.CircuitBreaker.Enabled = parseBool(v)
	}
	if v := firstEnv("SUMMARY_MAX_CHUNK_TOKENS", "MAX_CHUNK_TOKENS"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			cfg.Summary.MaxChunkTokens = parsed
		}
	}
	if v := os.Getenv("SUMMARY_CHUNK_OVERLAP_WORDS"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			cfg.Summary.ChunkOverlapWords = parsed
		}
	}
	if v := os.Getenv("SUMMARY_DEFAULT_LANGUAGE"); v != "" {
		cfg.Summary.DefaultLanguage = v
	}
	if v := os.Getenv("UPLOAD_MAX_BYTES"); v != "" {
		if parsed, err := strconv.ParseInt(v, 10, 64); err == nil {
			cfg.Upload.MaxBytes = parsed
		}
	}
	if v := os.Getenv("UPLOAD_TEMP_DIR"); v != "" {
		cfg.Upload.TempDir = v
	}
	if v := os.Getenv("METRICS_ENABLED"); v != "" {
		cfg.Metrics.Enabled = parseBool(v)
	}
}

func defaultConfig() *Config {
	return &Config{
		HTTP: HTTPConfig{
			Address:      ":5000",
			ReadTimeout:  60 * time.Second,
			WriteTimeout: 5 * time.Minute,
		},
		LLM: LLMConfig{
			Provider:        ProviderGemini,
			Timeout:         60 * time.Second,
			MaxOutputTokens: 2048,
			CircuitBreaker: CircuitBreakerConfig{
				Enabled:          true,
				FailureThreshold: 0.6,
				MinRequests:      5,
				Timeout:          60 * time.Second,
			},
		},
		Summary: SummaryConfig{
			MaxChunkTokens:    2500,
			ChunkOverlapWords: 120,
			MinDocumentChars:  30,
			DefaultLanguage:   "English",
		},
		Upload: UploadConfig{
			MaxBytes: 20 << 20,
		},
		Metrics: MetricsConfig{
			Enabled: true,
			Path:    "/metrics",
		},
	}
}

// DefaultCandidates returns the fallback model list for a provider.
func DefaultCandidates(provider string) []string {
	switch provider {
	case ProviderOpenAI:
		return []string{"gpt-4o-mini", "gpt-4o", "gpt-4.1-mini"}
	case ProviderAnthropic:
		return []string{"claude-sonnet-4-5-20250929", "claude-3-5-haiku-latest"}
	default:
		return []string{
			"gemini-2.5-flash",
			"gemini-2.5-pro",
			"gemini-2.0-flash",
			"gemini-flash-latest",
			"gemini-pro-latest",
		}
	}
}

// ModelCandidates is the configured list, or the provider default when none is set.
func (c LLMConfig) ModelCandidates() []string {
	if len(c.Candidates) > 0 {
		return c.Candidates
	}
	return DefaultCandidates(c.Provider)
}

// Validate ensures the configuration is safe to use.
func (c *Config) Validate() error {
	if c.HTTP.Address == "" {
		return errors.New("http.address cannot be empty")
	}
	c.LLM.Provider = strings.ToLower(strings.TrimSpace(c.LLM.Provider))
	switch c.LLM.Provider {
	case ProviderGemini, ProviderOpenAI, ProviderAnthropic:
	default:
		return fmt.Errorf("llm.provider %q is not supported", c.LLM.Provider)
	}
	if strings.TrimSpace(c.LLM.APIKey) == "" {
		return errors.New("llm.apiKey cannot be empty")
	}
	if c.LLM.Timeout <= 0 {
		return errors.New("llm.timeout must be positive")
	}
	if c.LLM.CircuitBreaker.Enabled {
		if c.LLM.CircuitBreaker.FailureThreshold <= 0 || c.LLM.CircuitBreaker.FailureThreshold > 1 {
			return errors.New("llm.circuitBreaker.failureThreshold must be in (0, 1]")
		}
		if c.LLM.CircuitBreaker.Timeout <= 0 {
			return errors.New("llm.circuitBreaker.timeout must be positive")
		}
	}
	if c.Summary.MaxChunkTokens <= 0 {
		return errors.New("summary.maxChunkTokens must be positive")
	}
	if c.Summary.ChunkOverlapWords < 0 {
		return errors.New("summary.chunkOverlapWords cannot be negative")
	}
	if c.Summary.MinDocumentChars <= 0 {
		return errors.New("summary.minDocumentChars must be positive")
	}
	if strings.TrimSpace(c.Summary.DefaultLanguage) == "" {
		return errors.New("summary.defaultLanguage cannot be empty")
	}
	if c.Upload.MaxBytes <= 0 {
		return errors.New("upload.maxBytes must be positive")
	}
	if c.Metrics.Enabled && !strings.HasPrefix(c.Metrics.Path, "/") {
		return errors.New("metrics.path must start with /")
	}
	return nil
}

func firstEnv(keys ...string) string {
	for _, key := range keys {
		if v := os.Getenv(key); v != "" {
			return v
		}
	}
	return ""
}

func splitList(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func parseBool(v string) bool {
	return v == "1" || strings.EqualFold(v, "true")
}

// SummarizerConfig maps the loaded settings onto the summarizer service options.
func (c *Config) SummarizerConfig() summarizer.Config {
	return summarizer.Config{
		MaxChunkTokens:    c.Summary.MaxChunkTokens,
		ChunkOverlapWords: c.Summary.ChunkOverlapWords,
		MinDocumentChars:  c.Summary.MinDocumentChars,
		MaxUploadBytes:    c.Upload.MaxBytes,
		DefaultLanguage:   c.Summary.DefaultLanguage,
		ModelOverride:     c.LLM.Model,
		Candidates:        c.LLM.ModelCandidates(),
	}
}
