package extract

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/yanqian/doc-summarizer/internal/domain/summarizer"
)

// ErrUnsupportedType is returned for extensions without a registered reader.
var ErrUnsupportedType = errors.New("unsupported file type")

type readerFunc func(ctx context.Context, path string) (string, error)

// Extractor dispatches on the lower-case file extension.
type Extractor struct {
	readers map[string]readerFunc
	logger  *slog.Logger
}

// NewExtractor wires the pdf, docx and txt readers.
func NewExtractor(logger *slog.Logger) *Extractor {
	if logger == nil {
		logger = slog.Default()
	}
	return &Extractor{
		readers: map[string]readerFunc{
			"pdf":  readPDF,
			"docx": readDOCX,
			"txt":  readTXT,
		},
		logger: logger.With("component", "extract"),
	}
}

// Extract returns the plain text of the file at path.
func (e *Extractor) Extract(ctx context.Context, path, ext string) (string, error) {
	ext = strings.TrimPrefix(strings.ToLower(strings.TrimSpace(ext)), ".")
	read, ok := e.readers[ext]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnsupportedType, ext)
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}
	text, err := read(ctx, path)
	if err != nil {
		return "", fmt.Errorf("extract %s: %w", ext, err)
	}
	e.logger.Debug("text extracted", "ext", ext, "chars", len(text))
	return text, nil
}

var _ summarizer.Extractor = (*Extractor)(nil)
