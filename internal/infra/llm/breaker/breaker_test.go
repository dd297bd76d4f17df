package breaker

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/sony/gobreaker"
	"github.com/stretchr/testify/require"

	"github.com/yanqian/doc-summarizer/internal/domain/summarizer"
)

type scriptedGenerator struct {
	err   error
	text  string
	calls int
}

func (s *scriptedGenerator) Generate(context.Context, string, string) (string, error) {
	s.calls++
	return s.text, s.err
}

func testConfig() Config {
	return Config{Name: "test", MaxRequests: 1, Interval: time.Minute, Timeout: time.Minute, FailureThreshold: 0.5, MinRequests: 2}
}

func TestGeneratorPassesThrough(t *testing.T) {
	t.Parallel()
	next := &scriptedGenerator{text: "ok"}
	gen := Wrap(next, testConfig(), discardLogger())

	text, err := gen.Generate(context.Background(), "m", "p")
	require.NoError(t, err)
	require.Equal(t, "ok", text)
	require.Equal(t, gobreaker.StateClosed, gen.State())
}

func TestGeneratorOpensOnFailures(t *testing.T) {
	t.Parallel()
	next := &scriptedGenerator{err: errors.New("status=503")}
	gen := Wrap(next, testConfig(), discardLogger())

	for i := 0; i < 2; i++ {
		_, err := gen.Generate(context.Background(), "m", "p")
		require.Error(t, err)
	}
	require.Equal(t, gobreaker.StateOpen, gen.State())

	_, err := gen.Generate(context.Background(), "m", "p")
	require.ErrorIs(t, err, gobreaker.ErrOpenState)
	require.False(t, summarizer.IsModelUnavailable(err))
	require.Equal(t, 2, next.calls)
}

func TestGeneratorIgnoresUnavailableModels(t *testing.T) {
	t.Parallel()
	next := &scriptedGenerator{err: fmt.Errorf("m: %w", summarizer.ErrModelUnavailable)}
	gen := Wrap(next, testConfig(), discardLogger())

	for i := 0; i < 5; i++ {
		_, err := gen.Generate(context.Background(), "m", "p")
		require.ErrorIs(t, err, summarizer.ErrModelUnavailable)
	}
	require.Equal(t, gobreaker.StateClosed, gen.State())
	require.Equal(t, 5, next.calls)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
