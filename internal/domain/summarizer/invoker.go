package summarizer

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	apperrors "github.com/yanqian/doc-summarizer/pkg/errors"
)

// ErrModelUnavailable marks a model the credential cannot use. Generators wrap it so the
// invoker can move on to the next candidate.
var ErrModelUnavailable = errors.New("model unavailable")

// Generator produces text for a prompt with a specific model.
// An empty result is valid and means the model produced nothing usable.
type Generator interface {
	Generate(ctx context.Context, model, prompt string) (string, error)
}

// IsModelUnavailable reports whether err means "this model does not exist for this credential".
func IsModelUnavailable(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, ErrModelUnavailable) {
		return true
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "404") || strings.Contains(msg, "not found")
}

// ModelInvoker tries candidate models in order until one returns text.
type ModelInvoker struct {
	generator  Generator
	candidates []string
	recorder   Recorder
	logger     *slog.Logger
}

// NewModelInvoker builds the candidate list: override first, then the fixed list, without duplicates.
func NewModelInvoker(generator Generator, override string, candidates []string, recorder Recorder, logger *slog.Logger) *ModelInvoker {
	if recorder == nil {
		recorder = NopRecorder{}
	}
	return &ModelInvoker{
		generator:  generator,
		candidates: candidateList(override, candidates),
		recorder:   recorder,
		logger:     logger.With("component", "summarizer.invoker"),
	}
}

// Candidates returns a copy of the ordered model list.
func (m *ModelInvoker) Candidates() []string {
	out := make([]string, len(m.candidates))
	copy(out, m.candidates)
	return out
}

// Generate returns the first non-empty output and the model that produced it.
// Only model-unavailable errors and empty outputs move on to the next candidate;
// any other error aborts immediately.
func (m *ModelInvoker) Generate(ctx context.Context, prompt string) (string, string, error) {
	var lastErr error
	for _, model := range m.candidates {
		text, err := m.generator.Generate(ctx, model, prompt)
		if err != nil {
			if IsModelUnavailable(err) {
				m.recorder.ModelAttempt(model, OutcomeUnavailable)
				m.logger.Warn("model unavailable, trying next candidate", "model", model, "error", err)
				lastErr = err
				continue
			}
			m.recorder.ModelAttempt(model, OutcomeFatal)
			return "", model, apperrors.Wrap(CodeGenerationFailed, "summary generation failed", err)
		}
		text = strings.TrimSpace(text)
		if text == "" {
			m.recorder.ModelAttempt(model, OutcomeEmpty)
			m.logger.Warn("model returned empty output, trying next candidate", "model", model)
			lastErr = errors.New("empty response from " + model)
			continue
		}
		m.recorder.ModelAttempt(model, OutcomeSuccess)
		m.logger.Info("generation model selected", "model", model)
		return text, model, nil
	}
	return "", "", apperrors.Wrap(CodeGenerationExhausted, "no compatible model for this credential", lastErr)
}

func candidateList(override string, candidates []string) []string {
	seen := make(map[string]struct{}, len(candidates)+1)
	out := make([]string, 0, len(candidates)+1)
	for _, name := range append([]string{override}, candidates...) {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		if _, dup := seen[name]; dup {
			continue
		}
		seen[name] = struct{}{}
		out = append(out, name)
	}
	return out
}
