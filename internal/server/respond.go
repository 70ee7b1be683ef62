package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/go-playground/validator/v10"

	"github.com/jmylchreest/swatch/internal/colour"
	"github.com/jmylchreest/swatch/internal/export"
	"github.com/jmylchreest/swatch/internal/favicon"
	imgloader "github.com/jmylchreest/swatch/internal/image"
	"github.com/jmylchreest/swatch/internal/security"
)

// ErrorResponse is the body of every error reply.
type ErrorResponse struct {
	Error   string `json:"error"`
	TraceID string `json:"trace_id,omitempty"`
}

// errBadRequest marks malformed request bodies and missing fields.
var errBadRequest = errors.New("bad request")

// statusFor maps an error to the HTTP status returned to the client.
func statusFor(err error) int {
	var validationErrs validator.ValidationErrors
	var maxBytes *http.MaxBytesError

	switch {
	case errors.Is(err, security.ErrSizeLimit),
		errors.Is(err, imgloader.ErrTooManyPixels),
		errors.As(err, &maxBytes):
		return http.StatusRequestEntityTooLarge

	case errors.Is(err, colour.ErrEmptyPalette):
		return http.StatusUnprocessableEntity

	case errors.Is(err, colour.ErrInvalidFormat),
		errors.Is(err, colour.ErrUnsupportedSchemeKind),
		errors.Is(err, export.ErrUnsupportedFormat),
		errors.Is(err, imgloader.ErrDecode),
		errors.Is(err, favicon.ErrInvalidText),
		errors.Is(err, favicon.ErrInvalidSize),
		errors.Is(err, favicon.ErrInvalidRadius),
		errors.Is(err, errBadRequest),
		errors.As(err, &validationErrs):
		return http.StatusBadRequest

	default:
		return http.StatusInternalServerError
	}
}

func respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func respondBytes(w http.ResponseWriter, contentType string, data []byte) {
	w.Header().Set("Content-Type", contentType)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

// faviconMaxAge is how long clients may cache rendered output.
const faviconMaxAge = 24 * time.Hour

// respondCacheable writes deterministic output with an ETag derived from its
// content, answering a matching If-None-Match with 304.
func respondCacheable(w http.ResponseWriter, r *http.Request, contentType string, data []byte) {
	etag := fmt.Sprintf(`"%016x"`, xxhash.Sum64(data))
	w.Header().Set("ETag", etag)
	w.Header().Set("Cache-Control", fmt.Sprintf("public, max-age=%d", int(faviconMaxAge.Seconds())))

	if match := r.Header.Get("If-None-Match"); match != "" && match == etag {
		w.WriteHeader(http.StatusNotModified)
		return
	}
	respondBytes(w, contentType, data)
}

func respondError(w http.ResponseWriter, r *http.Request, status int, message string) {
	respondJSON(w, status, ErrorResponse{Error: message, TraceID: TraceID(r.Context())})
}

// fail logs err and replies with its mapped status. Internal errors get a
// generic message so details stay in the logs.
func (s *Server) fail(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	message := err.Error()
	if status == http.StatusInternalServerError {
		s.logger.Error("request failed", "path", r.URL.Path, "trace_id", TraceID(r.Context()), "error", err)
		message = "internal server error"
	} else {
		s.logger.Debug("request rejected", "path", r.URL.Path, "status", status, "trace_id", TraceID(r.Context()), "error", err)
	}
	respondError(w, r, status, message)
}
