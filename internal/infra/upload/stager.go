package upload

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/yanqian/doc-summarizer/internal/domain/summarizer"
)

// DiskStager copies uploads into a temp directory under random names.
type DiskStager struct {
	dir      string
	maxBytes int64
	logger   *slog.Logger
}

// NewDiskStager constructs a stager. An empty dir means os.TempDir(); maxBytes <= 0 disables the cap.
func NewDiskStager(dir string, maxBytes int64, logger *slog.Logger) (*DiskStager, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if strings.TrimSpace(dir) == "" {
		dir = os.TempDir()
	}
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &DiskStager{dir: dir, maxBytes: maxBytes, logger: logger.With("component", "upload.stager")}, nil
}

// Stage writes content to a new file. Files over the cap are deleted and
// summarizer.ErrUploadTooLarge is returned.
func (s *DiskStager) Stage(ctx context.Context, filename string, content io.Reader) (summarizer.StagedFile, error) {
	if err := ctx.Err(); err != nil {
		return summarizer.StagedFile{}, err
	}
	path := filepath.Join(s.dir, "upload-"+uuid.NewString()+strings.ToLower(filepath.Ext(filename)))
	file, err := os.OpenFile(path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o600)
	if err != nil {
		return summarizer.StagedFile{}, fmt.Errorf("create staged file: %w", err)
	}

	reader := content
	if s.maxBytes > 0 {
		reader = io.LimitReader(content, s.maxBytes+1)
	}
	written, copyErr := io.Copy(file, reader)
	closeErr := file.Close()
	switch {
	case copyErr != nil:
		s.discard(path)
		return summarizer.StagedFile{}, fmt.Errorf("write staged file: %w", copyErr)
	case closeErr != nil:
		s.discard(path)
		return summarizer.StagedFile{}, fmt.Errorf("close staged file: %w", closeErr)
	case s.maxBytes > 0 && written > s.maxBytes:
		s.discard(path)
		return summarizer.StagedFile{}, summarizer.ErrUploadTooLarge
	}
	s.logger.Debug("upload staged", "path", path, "bytes", written)
	return summarizer.StagedFile{Path: path, Size: written}, nil
}

// Remove deletes a staged file. Missing files are not an error.
func (s *DiskStager) Remove(path string) error {
	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("remove staged file: %w", err)
	}
	return nil
}

func (s *DiskStager) discard(path string) {
	if err := s.Remove(path); err != nil {
		s.logger.Warn("failed to discard partial upload", "path", path, "error", err)
	}
}

var _ summarizer.Stager = (*DiskStager)(nil)
