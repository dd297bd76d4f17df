package summarizer

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"strings"
	"time"
	"unicode/utf8"

	apperrors "github.com/yanqian/doc-summarizer/pkg/errors"
	"github.com/yanqian/doc-summarizer/pkg/metrics"
)

const (
	defaultMaxChunkTokens   = 2500
	defaultMinDocumentChars = 30
	defaultLanguage         = "English"
	languageSampleRunes     = 2000
)

// ErrUploadTooLarge is returned by a Stager when the upload exceeds its byte limit.
var ErrUploadTooLarge = errors.New("upload exceeds size limit")

// supportedExtensions lists the file types the extractor understands.
var supportedExtensions = map[string]struct{}{
	"pdf":  {},
	"docx": {},
	"txt":  {},
}

// Service exposes summarization capabilities.
type Service interface {
	Summarize(ctx context.Context, req Request) (Response, error)
}

// Extractor turns a stored file into plain text.
type Extractor interface {
	Extract(ctx context.Context, path, ext string) (string, error)
}

// StagedFile is an upload copied to temporary storage.
type StagedFile struct {
	Path string
	Size int64
}

// Stager copies uploads to temporary storage and removes them again.
type Stager interface {
	Stage(ctx context.Context, filename string, content io.Reader) (StagedFile, error)
	Remove(path string) error
}

// LanguageDetector names the language of a text, e.g. "English".
type LanguageDetector interface {
	Detect(text string) (string, bool)
}

type service struct {
	cfg       Config
	invoker   *ModelInvoker
	extractor Extractor
	stager    Stager
	detector  LanguageDetector
	recorder  Recorder
	logger    *slog.Logger
}

// NewService is a wire provider for the summarizer domain. detector may be nil.
func NewService(cfg Config, invoker *ModelInvoker, extractor Extractor, stager Stager, detector LanguageDetector, recorder Recorder, logger *slog.Logger) Service {
	if recorder == nil {
		recorder = NopRecorder{}
	}
	return &service{
		cfg:       withDefaults(cfg),
		invoker:   invoker,
		extractor: extractor,
		stager:    stager,
		detector:  detector,
		recorder:  recorder,
		logger:    logger.With("component", "summarizer.service"),
	}
}

func withDefaults(cfg Config) Config {
	if cfg.MaxChunkTokens <= 0 {
		cfg.MaxChunkTokens = defaultMaxChunkTokens
	}
	if cfg.ChunkOverlapWords < 0 {
		cfg.ChunkOverlapWords = 0
	}
	if cfg.MinDocumentChars <= 0 {
		cfg.MinDocumentChars = defaultMinDocumentChars
	}
	if strings.TrimSpace(cfg.DefaultLanguage) == "" {
		cfg.DefaultLanguage = defaultLanguage
	}
	return cfg
}

func (s *service) Summarize(ctx context.Context, req Request) (Response, error) {
	start := time.Now()
	resp, err := s.summarize(ctx, req)
	elapsed := time.Since(start)
	if err != nil {
		code := apperrors.CodeOf(err)
		s.recorder.SummaryFailed(code)
		if code == CodeInvalidInput || code == CodeFileTooLarge {
			s.logger.Warn("summarize rejected", "stage", "failed", "code", code, "error", err)
		} else {
			s.logger.Error("summarize failed", "stage", "failed", "code", code, "error", err)
		}
		return Response{}, err
	}
	resp.DurationMs = elapsed.Milliseconds()
	s.recorder.SummaryCompleted(resp.ChunkCount, elapsed)
	s.logger.Info("summarize completed", "stage", "responded", "chunks", resp.ChunkCount, "model", resp.Model,
		"original_tokens", resp.Metrics.OriginalTokens, "summary_tokens", resp.Metrics.SummaryTokens, "duration_ms", resp.DurationMs)
	return resp, nil
}

func (s *service) summarize(ctx context.Context, req Request) (Response, error) {
	raw, err := s.readSource(ctx, req)
	if err != nil {
		return Response{}, err
	}

	s.logger.Debug("summarize stage", "stage", "normalizing")
	text := Normalize(raw)
	if utf8.RuneCountInString(text) < s.cfg.MinDocumentChars {
		return Response{}, apperrors.Wrap(CodeInvalidInput, "document is empty or too short to summarize", nil)
	}
	opts := s.resolveOptions(req, text)

	s.logger.Debug("summarize stage", "stage", "estimating")
	originalTokens := EstimateTokens(text)
	chunks := s.chunk(text, originalTokens)

	s.logger.Debug("summarize stage", "stage", "summarizing_chunks", "chunks", len(chunks))
	partials := make([]string, 0, len(chunks))
	var model string
	for i, chunk := range chunks {
		summary, used, err := s.summarizeChunk(ctx, chunk, opts)
		if err != nil {
			return Response{}, err
		}
		s.logger.Debug("chunk summarized", "index", i, "model", used)
		partials = append(partials, summary)
		model = used
	}

	s.logger.Debug("summarize stage", "stage", "merging", "parts", len(partials))
	final, mergeModel, err := s.mergeSummaries(ctx, partials, opts)
	if err != nil {
		return Response{}, err
	}
	if mergeModel != "" {
		model = mergeModel
	}

	s.logger.Debug("summarize stage", "stage", "computing_metrics")
	return Response{
		Summary:    final,
		Metrics:    metrics.NewReduction(originalTokens, EstimateTokens(final)),
		ChunkCount: len(chunks),
		Model:      model,
	}, nil
}

func (s *service) readSource(ctx context.Context, req Request) (string, error) {
	switch req.SourceType {
	case SourceText, "":
		if strings.TrimSpace(req.Text) == "" {
			return "", apperrors.Wrap(CodeInvalidInput, "text cannot be empty", nil)
		}
		return req.Text, nil
	case SourceFile:
		return s.extractUpload(ctx, req.File)
	default:
		return "", apperrors.Wrap(CodeInvalidInput, "invalid sourceType, use text or file", nil)
	}
}

// extractUpload stages the upload, extracts its text and always removes the staged copy.
func (s *service) extractUpload(ctx context.Context, upload *Upload) (string, error) {
	if upload == nil || upload.Content == nil {
		return "", apperrors.Wrap(CodeInvalidInput, "no file uploaded", nil)
	}
	if s.cfg.MaxUploadBytes > 0 && upload.Size > s.cfg.MaxUploadBytes {
		return "", apperrors.Wrap(CodeFileTooLarge, tooLargeMessage(s.cfg.MaxUploadBytes), nil)
	}

	staged, err := s.stager.Stage(ctx, upload.Filename, upload.Content)
	if err != nil {
		if errors.Is(err, ErrUploadTooLarge) {
			return "", apperrors.Wrap(CodeFileTooLarge, tooLargeMessage(s.cfg.MaxUploadBytes), err)
		}
		return "", apperrors.Wrap(CodeStagingFailed, "failed to store upload", err)
	}
	defer func() {
		if err := s.stager.Remove(staged.Path); err != nil {
			s.logger.Warn("failed to remove staged upload", "path", staged.Path, "error", err)
		}
	}()

	ext := fileExtension(upload.Filename)
	if _, ok := supportedExtensions[ext]; !ok {
		return "", apperrors.Wrap(CodeInvalidInput, "unsupported file type, use PDF, DOCX, or TXT", nil)
	}

	s.logger.Debug("summarize stage", "stage", "extracting", "ext", ext, "bytes", staged.Size)
	text, err := s.extractor.Extract(ctx, staged.Path, ext)
	if err != nil {
		return "", apperrors.Wrap(CodeExtractionFailed, "failed to extract document text", err)
	}
	return text, nil
}

func (s *service) resolveOptions(req Request, text string) Options {
	language := strings.TrimSpace(req.Language)
	if language == "" {
		language = s.cfg.DefaultLanguage
	}
	if strings.EqualFold(language, LanguageAuto) {
		language = s.detectLanguage(text)
	}
	return Options{Style: ParseStyle(string(req.Style)), Language: language}
}

func (s *service) detectLanguage(text string) string {
	if s.detector == nil {
		return s.cfg.DefaultLanguage
	}
	detected, ok := s.detector.Detect(prefixRunes(text, languageSampleRunes))
	if !ok || detected == "" {
		s.logger.Debug("language not detected, using default", "language", s.cfg.DefaultLanguage)
		return s.cfg.DefaultLanguage
	}
	return detected
}

func (s *service) chunk(text string, estimatedTokens int) []string {
	if estimatedTokens <= s.cfg.MaxChunkTokens {
		s.logger.Debug("summarize stage", "stage", "pass_through", "tokens", estimatedTokens)
		return []string{text}
	}
	s.logger.Debug("summarize stage", "stage", "splitting", "tokens", estimatedTokens, "budget", s.cfg.MaxChunkTokens)
	return SplitChunks(text, s.cfg.MaxChunkTokens, s.cfg.ChunkOverlapWords)
}

func (s *service) summarizeChunk(ctx context.Context, chunk string, opts Options) (string, string, error) {
	return s.invoker.Generate(ctx, buildChunkPrompt(chunk, opts))
}

// mergeSummaries returns a single partial unchanged without calling a model.
func (s *service) mergeSummaries(ctx context.Context, partials []string, opts Options) (string, string, error) {
	if len(partials) == 1 {
		return partials[0], "", nil
	}
	return s.invoker.Generate(ctx, buildMergePrompt(partials, opts))
}

func fileExtension(filename string) string {
	return strings.TrimPrefix(strings.ToLower(filepath.Ext(strings.TrimSpace(filename))), ".")
}

func tooLargeMessage(limit int64) string {
	if limit >= 1<<20 && limit%(1<<20) == 0 {
		return fmt.Sprintf("file exceeds the %d MiB upload limit", limit>>20)
	}
	return fmt.Sprintf("file exceeds the %d byte upload limit", limit)
}

func prefixRunes(text string, limit int) string {
	if limit <= 0 || utf8.RuneCountInString(text) <= limit {
		return text
	}
	return string([]rune(text)[:limit])
}
