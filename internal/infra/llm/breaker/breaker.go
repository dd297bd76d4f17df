package breaker

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/sony/gobreaker"

	"github.com/yanqian/doc-summarizer/internal/domain/summarizer"
)

// Config tunes when the breaker opens.
type Config struct {
	Name             string
	MaxRequests      uint32
	Interval         time.Duration
	Timeout          time.Duration
	FailureThreshold float64
	MinRequests      uint32
}

// DefaultConfig returns the settings used for LLM providers.
func DefaultConfig(name string) Config {
	return Config{
		Name:             name,
		MaxRequests:      3,
		Interval:         30 * time.Second,
		Timeout:          60 * time.Second,
		FailureThreshold: 0.6,
		MinRequests:      5,
	}
}

// Generator guards a summarizer.Generator with a circuit breaker.
// Model-unavailable errors and caller cancellations do not count as failures,
// so walking the candidate list never trips the breaker.
type Generator struct {
	next    summarizer.Generator
	breaker *gobreaker.CircuitBreaker
}

// Wrap decorates next.
func Wrap(next summarizer.Generator, cfg Config, logger *slog.Logger) *Generator {
	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With("component", "llm.breaker")
	settings := gobreaker.Settings{
		Name:        cfg.Name,
		MaxRequests: cfg.MaxRequests,
		Interval:    cfg.Interval,
		Timeout:     cfg.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.Requests < cfg.MinRequests {
				return false
			}
			return float64(counts.TotalFailures)/float64(counts.Requests) >= cfg.FailureThreshold
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn("circuit breaker state changed", "circuit", name, "from", from.String(), "to", to.String())
		},
		IsSuccessful: isSuccessful,
	}
	return &Generator{next: next, breaker: gobreaker.NewCircuitBreaker(settings)}
}

// Generate runs the wrapped call unless the breaker is open.
func (g *Generator) Generate(ctx context.Context, model, prompt string) (string, error) {
	out, err := g.breaker.Execute(func() (interface{}, error) {
		return g.next.Generate(ctx, model, prompt)
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return "", fmt.Errorf("llm provider %s unavailable: %w", g.breaker.Name(), err)
		}
		return "", err
	}
	return out.(string), nil
}

// State exposes the breaker state for health reporting.
func (g *Generator) State() gobreaker.State {
	return g.breaker.State()
}

func isSuccessful(err error) bool {
	return err == nil ||
		summarizer.IsModelUnavailable(err) ||
		errors.Is(err, context.Canceled)
}

var _ summarizer.Generator = (*Generator)(nil)
