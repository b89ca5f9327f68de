package notes

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"example.com/notetaker/internal/llm"
	"example.com/notetaker/internal/stringsx"
)

func (h *Handlers) translateNote(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	n, err := h.store.Get(r.Context(), id)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	// The body is optional; both fields default to true.
	var req TranslateNoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "invalid json"})
		return
	}

	resp := TranslateNoteResponse{Translations: map[string]string{}, OriginalNote: n}

	if boolOr(req.TranslateTitle, true) && !stringsx.IsEmpty(n.Title) {
		out, err := h.ai.Translate(r.Context(), n.Title, llm.DefaultLanguage)
		if err != nil {
			h.writeError(w, r, fmt.Errorf("title translation failed: %w", err))
			return
		}
		resp.Translations["title"] = out
		resp.TranslatedTitle = out
	}

	if boolOr(req.TranslateContent, true) && !stringsx.IsEmpty(n.Content) {
		out, err := h.ai.Translate(r.Context(), n.Content, llm.DefaultLanguage)
		if err != nil {
			h.writeError(w, r, fmt.Errorf("content translation failed: %w", err))
			return
		}
		resp.Translations["content"] = out
		resp.TranslatedContent = out
	}

	writeJSON(w, http.StatusOK, resp)
}

func (h *Handlers) translate(w http.ResponseWriter, r *http.Request) {
	var req TranslateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "invalid json"})
		return
	}
	if stringsx.IsEmpty(req.Text) {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "text is required for translation"})
		return
	}

	out, err := h.ai.Translate(r.Context(), req.Text, req.TargetLanguage)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, TranslateResponse{TranslatedText: out})
}

func (h *Handlers) autoComplete(w http.ResponseWriter, r *http.Request) {
	var req AutoCompleteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "invalid json"})
		return
	}

	res, err := h.ai.Complete(r.Context(), req.Title, req.Content, req.Type)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, AutoCompleteResponse{
		Success: true,
		Type:    string(res.Mode),
		Result:  res.Result,
	})
}

func boolOr(b *bool, def bool) bool {
	if b == nil {
		return def
	}
	return *b
}
