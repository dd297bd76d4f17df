package http

import (
	"errors"
	"log/slog"
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/yanqian/doc-summarizer/internal/domain/summarizer"
)

const (
	formOverheadBytes = 1 << 20
	rootBanner        = "Document Summarizer Backend is running..."
)

// summarizeRequest is the wire shape shared by JSON and multipart bodies.
type summarizeRequest struct {
	SourceType string `json:"sourceType" form:"sourceType"`
	Text       string `json:"text" form:"text"`
	Style      string `json:"style" form:"style"`
	Language   string `json:"language" form:"language"`
}

// SummaryHandler wires the HTTP transport to the summarizer.
type SummaryHandler struct {
	svc          summarizer.Service
	maxBodyBytes int64
	logger       *slog.Logger
}

// NewSummaryHandler constructs the summary handler. maxUploadBytes <= 0 leaves the body uncapped.
func NewSummaryHandler(svc summarizer.Service, maxUploadBytes int64, logger *slog.Logger) *SummaryHandler {
	var maxBody int64
	if maxUploadBytes > 0 {
		maxBody = maxUploadBytes + formOverheadBytes
	}
	return &SummaryHandler{
		svc:          svc,
		maxBodyBytes: maxBody,
		logger:       logger.With("component", "http.handler"),
	}
}

// Summarize handles the sync summarization endpoint for JSON and multipart bodies.
func (h *SummaryHandler) Summarize(c *gin.Context) {
	if h.maxBodyBytes > 0 {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxBodyBytes)
	}

	req, closeFile, httpErr := h.bindRequest(c)
	if httpErr != nil {
		abortWithError(c, httpErr)
		return
	}
	defer closeFile()

	resp, err := h.svc.Summarize(c.Request.Context(), req)
	if err != nil {
		abortWithError(c, fromServiceError(err))
		return
	}

	c.JSON(http.StatusOK, resp)
}

// Root answers the plain text liveness banner.
func (h *SummaryHandler) Root(c *gin.Context) {
	c.String(http.StatusOK, rootBanner)
}

// Healthz reports readiness.
func (h *SummaryHandler) Healthz(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (h *SummaryHandler) bindRequest(c *gin.Context) (summarizer.Request, func(), *HTTPError) {
	noop := func() {}
	var body summarizeRequest

	if !strings.HasPrefix(c.ContentType(), gin.MIMEMultipartPOSTForm) {
		if err := c.ShouldBindJSON(&body); err != nil {
			return summarizer.Request{}, noop, bindError(err)
		}
		return toDomain(body, nil), noop, nil
	}

	if err := c.ShouldBind(&body); err != nil {
		return summarizer.Request{}, noop, bindError(err)
	}
	header, err := c.FormFile("file")
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			return toDomain(body, nil), noop, nil
		}
		return summarizer.Request{}, noop, bindError(err)
	}
	file, err := header.Open()
	if err != nil {
		return summarizer.Request{}, noop, NewHTTPError(http.StatusBadRequest, "invalid_request", "failed to read uploaded file", err)
	}
	closeFile := func() {
		if err := file.Close(); err != nil {
			h.logger.Warn("close uploaded file failed", "error", err)
		}
	}
	return toDomain(body, fileUpload(header, file)), closeFile, nil
}

func fileUpload(header *multipart.FileHeader, file multipart.File) *summarizer.Upload {
	return &summarizer.Upload{Filename: header.Filename, Size: header.Size, Content: file}
}

func toDomain(body summarizeRequest, upload *summarizer.Upload) summarizer.Request {
	return summarizer.Request{
		SourceType: summarizer.ParseSourceKind(body.SourceType),
		Text:       body.Text,
		File:       upload,
		Style:      summarizer.ParseStyle(body.Style),
		Language:   body.Language,
	}
}

func bindError(err error) *HTTPError {
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		return NewHTTPError(http.StatusRequestEntityTooLarge, summarizer.CodeFileTooLarge, "request body exceeds the upload limit", err)
	}
	return NewHTTPError(http.StatusBadRequest, "invalid_request", errMessage(err), err)
}

func errMessage(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}
