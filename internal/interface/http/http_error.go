package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yanqian/doc-summarizer/internal/domain/summarizer"
	apperrors "github.com/yanqian/doc-summarizer/pkg/errors"
)

const codeInternal = "internal_error"

// HTTPError captures the metadata required to serialize an error response consistently.
type HTTPError struct {
	Status  int
	Code    string
	Message string
	Err     error
}

// Error implements the error interface.
func (e *HTTPError) Error() string {
	if e == nil {
		return ""
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return e.Message
}

func (e *HTTPError) Unwrap() error {
	return e.Err
}

// NewHTTPError is a helper to build an HTTPError instance.
func NewHTTPError(status int, code, message string, err error) *HTTPError {
	return &HTTPError{Status: status, Code: code, Message: message, Err: err}
}

// fromServiceError keeps the domain code and client message and picks the status from the code.
func fromServiceError(err error) *HTTPError {
	code := apperrors.CodeOf(err)
	if code == "" {
		code = codeInternal
	}
	return NewHTTPError(statusForCode(code), code, apperrors.MessageOf(err), err)
}

func statusForCode(code string) int {
	switch code {
	case summarizer.CodeInvalidInput:
		return http.StatusBadRequest
	case summarizer.CodeFileTooLarge:
		return http.StatusRequestEntityTooLarge
	case summarizer.CodeExtractionFailed:
		return http.StatusUnprocessableEntity
	case summarizer.CodeGenerationFailed, summarizer.CodeGenerationExhausted:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func asHTTPError(err error) *HTTPError {
	if err == nil {
		return nil
	}
	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		return httpErr
	}
	return &HTTPError{
		Status:  http.StatusInternalServerError,
		Code:    codeInternal,
		Message: "something went wrong",
		Err:     err,
	}
}

func abortWithError(c *gin.Context, err *HTTPError) {
	if err == nil {
		return
	}
	_ = c.Error(err)
	c.Abort()
}
