package extract

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"code.sajari.com/docconv"
)

var errEmptyDOCX = errors.New("docx has no document text")

// readDOCX converts the main document part plus headers and footers to text.
func readDOCX(ctx context.Context, path string) (text string, err error) {
	file, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("open docx: %w", err)
	}
	defer file.Close()

	if err := ctx.Err(); err != nil {
		return "", err
	}

	// docconv dereferences a missing [Content_Types].xml part.
	defer func() {
		if r := recover(); r != nil {
			text, err = "", fmt.Errorf("malformed docx: %v", r)
		}
	}()

	text, _, err = docconv.ConvertDocx(file)
	if err != nil {
		return "", fmt.Errorf("convert docx: %w", err)
	}
	if strings.TrimSpace(text) == "" {
		return "", errEmptyDOCX
	}
	return text, nil
}
