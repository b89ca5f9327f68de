package notes

import (
	"errors"
	"net/http"

	"go.uber.org/zap"

	"example.com/notetaker/internal/llm"
	"example.com/notetaker/internal/middleware"
)

// writeError maps a component error onto a status code and an
// {error, details} body. Server-side failures are logged.
func (h *Handlers) writeError(w http.ResponseWriter, r *http.Request, err error) {
	var upErr *llm.UpstreamError

	switch {
	case errors.Is(err, ErrValidation),
		errors.Is(err, llm.ErrInvalidInput),
		errors.Is(err, llm.ErrInvalidArgument):
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	case errors.Is(err, ErrNotFound):
		writeJSON(w, http.StatusNotFound, ErrorResponse{Error: "note not found"})
		return
	case errors.Is(err, llm.ErrNotConfigured),
		errors.Is(err, llm.ErrUnsupportedLanguage):
		writeJSON(w, http.StatusServiceUnavailable, ErrorResponse{Error: err.Error()})
		return
	}

	resp := ErrorResponse{Error: "internal server error", Details: err.Error()}
	switch {
	case errors.As(err, &upErr):
		resp.Error = "AI service request failed"
	case errors.Is(err, ErrStorage):
		resp.Error = "storage error"
	}

	h.log.Error(resp.Error,
		zap.String("request_id", middleware.RequestIDFrom(r.Context())),
		zap.String("path", r.URL.Path),
		zap.Error(err),
	)
	writeJSON(w, http.StatusInternalServerError, resp)
}
