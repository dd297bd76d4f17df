package summarizer

import (
	"io"
	"strings"

	"github.com/yanqian/doc-summarizer/pkg/metrics"
)

// Error codes surfaced through apperrors.AppError.
const (
	CodeInvalidInput        = "invalid_input"
	CodeFileTooLarge        = "file_too_large"
	CodeStagingFailed       = "staging_failed"
	CodeExtractionFailed    = "extraction_failed"
	CodeGenerationFailed    = "generation_failed"
	CodeGenerationExhausted = "generation_exhausted"
)

// Config configures chunking and the fallback model list. It is read-only after startup.
type Config struct {
	MaxChunkTokens    int
	ChunkOverlapWords int
	MinDocumentChars  int
	MaxUploadBytes    int64
	DefaultLanguage   string
	// ModelOverride is tried before Candidates when set.
	ModelOverride string
	Candidates    []string
}

// SourceKind tells the orchestrator where the raw text comes from.
type SourceKind string

const (
	SourceText SourceKind = "text"
	SourceFile SourceKind = "file"
)

// ParseSourceKind lower-cases the raw value; an empty value means text.
func ParseSourceKind(raw string) SourceKind {
	raw = strings.ToLower(strings.TrimSpace(raw))
	if raw == "" {
		return SourceText
	}
	return SourceKind(raw)
}

// Style selects the shape of the generated summary.
type Style string

const (
	StyleConcise  Style = "concise"
	StyleDetailed Style = "detailed"
	StyleBullets  Style = "bullets"
)

// ParseStyle maps unknown values to StyleConcise.
func ParseStyle(raw string) Style {
	switch Style(strings.ToLower(strings.TrimSpace(raw))) {
	case StyleDetailed:
		return StyleDetailed
	case StyleBullets:
		return StyleBullets
	default:
		return StyleConcise
	}
}

// LanguageAuto asks the orchestrator to detect the document language.
const LanguageAuto = "auto"

// Upload is a file attached to a request.
type Upload struct {
	Filename string
	Size     int64
	Content  io.Reader
}

// Request represents the incoming summarization payload.
type Request struct {
	SourceType SourceKind
	Text       string
	File       *Upload
	Style      Style
	Language   string
}

// Options are the per-request generation options after defaults were applied.
type Options struct {
	Style    Style
	Language string
}

// Response is returned by the sync endpoint.
type Response struct {
	Summary    string            `json:"summary"`
	Metrics    metrics.Reduction `json:"metrics"`
	ChunkCount int               `json:"chunkCount,omitempty"`
	Model      string            `json:"model,omitempty"`
	DurationMs int64             `json:"durationMs,omitempty"`
}
