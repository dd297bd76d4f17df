package extract

import (
	"context"
	"fmt"
	"os"
	"strings"
)

const utf8BOM = "\uFEFF"

// readTXT reads the file as UTF-8, dropping a leading BOM and invalid byte sequences.
func readTXT(_ context.Context, path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read txt: %w", err)
	}
	text := strings.TrimPrefix(string(data), utf8BOM)
	return strings.ToValidUTF8(text, ""), nil
}
