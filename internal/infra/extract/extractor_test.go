package extract

import (
	"archive/zip"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

const (
	mainDocumentType = "application/vnd.openxmlformats-officedocument.wordprocessingml.document.main+xml"
	headerType       = "application/vnd.openxmlformats-officedocument.wordprocessingml.header+xml"
)

const sampleDocument = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">
  <w:body>
    <w:p><w:r><w:t>Quarterly</w:t></w:r><w:r><w:t xml:space="preserve"> report</w:t></w:r></w:p>
    <w:p><w:r><w:t>Revenue</w:t><w:tab/><w:t>up 12% &amp; rising</w:t></w:r></w:p>
    <w:p><w:r><w:rPr><w:b/></w:rPr><w:t>Line</w:t><w:br/><w:t>break</w:t></w:r></w:p>
  </w:body>
</w:document>`

const sampleHeader = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<w:hdr xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"><w:p><w:r><w:t>ACME Confidential</w:t></w:r></w:p></w:hdr>`

func contentTypes(overrides map[string]string) string {
	var b strings.Builder
	b.WriteString(`<?xml version="1.0" encoding="UTF-8" standalone="yes"?>`)
	b.WriteString(`<Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types">`)
	for part, kind := range overrides {
		fmt.Fprintf(&b, `<Override PartName="%s" ContentType="%s"/>`, part, kind)
	}
	b.WriteString(`</Types>`)
	return b.String()
}

func TestExtractDOCX(t *testing.T) {
	t.Parallel()
	path := writeDOCX(t, map[string]string{
		"[Content_Types].xml": contentTypes(map[string]string{"/word/document.xml": mainDocumentType}),
		"word/document.xml":   sampleDocument,
	})

	text, err := newTestExtractor().Extract(context.Background(), path, "DOCX")
	require.NoError(t, err)
	require.Equal(t,
		[]string{"Quarterly", "report", "Revenue", "up", "12%", "&", "rising", "Line", "break"},
		strings.Fields(text))
	require.Less(t, strings.Index(text, "Revenue"), strings.Index(text, "break"))
}

func TestExtractDOCXIncludesHeader(t *testing.T) {
	t.Parallel()
	path := writeDOCX(t, map[string]string{
		"[Content_Types].xml": contentTypes(map[string]string{
			"/word/document.xml": mainDocumentType,
			"/word/header1.xml":  headerType,
		}),
		"word/document.xml": sampleDocument,
		"word/header1.xml":  sampleHeader,
	})

	text, err := newTestExtractor().Extract(context.Background(), path, "docx")
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(strings.TrimSpace(text), "ACME Confidential"))
	require.Contains(t, text, "Quarterly")
}

func TestExtractDOCXWithoutBody(t *testing.T) {
	t.Parallel()
	path := writeDOCX(t, map[string]string{
		"[Content_Types].xml": contentTypes(nil),
		"word/styles.xml":     `<w:styles/>`,
	})

	_, err := newTestExtractor().Extract(context.Background(), path, "docx")
	require.ErrorIs(t, err, errEmptyDOCX)
}

func TestExtractDOCXWithoutContentTypes(t *testing.T) {
	t.Parallel()
	path := writeDOCX(t, map[string]string{"word/document.xml": sampleDocument})

	_, err := newTestExtractor().Extract(context.Background(), path, "docx")
	require.ErrorContains(t, err, "malformed docx")
}

func TestExtractDOCXNotAZip(t *testing.T) {
	t.Parallel()
	path := writeFile(t, "fake.docx", []byte("plain text pretending"))

	_, err := newTestExtractor().Extract(context.Background(), path, "docx")
	require.Error(t, err)
}

func TestExtractTXT(t *testing.T) {
	tests := []struct {
		name string
		data []byte
		want string
	}{
		{name: "plain", data: []byte("hello\nworld"), want: "hello\nworld"},
		{name: "bom", data: append([]byte{0xEF, 0xBB, 0xBF}, []byte("héllo")...), want: "héllo"},
		{name: "invalid bytes", data: []byte{'a', 0xff, 'b'}, want: "ab"},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			path := writeFile(t, "doc.txt", tt.data)
			text, err := newTestExtractor().Extract(context.Background(), path, ".txt")
			require.NoError(t, err)
			require.Equal(t, tt.want, text)
		})
	}
}

func TestExtractPDFRejectsGarbage(t *testing.T) {
	t.Parallel()
	path := writeFile(t, "broken.pdf", []byte("not a pdf at all"))

	_, err := newTestExtractor().Extract(context.Background(), path, "pdf")
	require.Error(t, err)
}

func TestExtractPDFPagesInOrder(t *testing.T) {
	t.Parallel()
	text, err := newTestExtractor().Extract(context.Background(), filepath.Join("testdata", "two-pages.pdf"), "pdf")
	require.NoError(t, err)
	require.Equal(t, "Quarterly revenue grew\nCosts stayed flat\n", text)
	require.Equal(t, 2, strings.Count(text, "\n"))
}

func TestExtractUnsupportedExtension(t *testing.T) {
	t.Parallel()
	_, err := newTestExtractor().Extract(context.Background(), "/does/not/matter.csv", "csv")
	require.ErrorIs(t, err, ErrUnsupportedType)
}

func TestExtractMissingFile(t *testing.T) {
	t.Parallel()
	_, err := newTestExtractor().Extract(context.Background(), filepath.Join(t.TempDir(), "gone.txt"), "txt")
	require.ErrorIs(t, err, os.ErrNotExist)
}

func newTestExtractor() *Extractor {
	return NewExtractor(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func writeFile(t *testing.T, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, data, 0o600))
	return path
}

func writeDOCX(t *testing.T, parts map[string]string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "doc.docx")
	file, err := os.Create(path)
	require.NoError(t, err)
	archive := zip.NewWriter(file)
	for name, body := range parts {
		w, err := archive.Create(name)
		require.NoError(t, err)
		_, err = w.Write([]byte(body))
		require.NoError(t, err)
	}
	require.NoError(t, archive.Close())
	require.NoError(t, file.Close())
	return path
}
