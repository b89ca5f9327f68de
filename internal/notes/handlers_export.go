package notes

import (
	"fmt"
	"net/http"
	"strconv"
)

func (h *Handlers) exportNote(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	n, err := h.store.Get(r.Context(), id)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	doc, err := RenderMarkdown(n)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeMarkdown(w, ExportFilename(n), doc)
}

func (h *Handlers) exportAll(w http.ResponseWriter, r *http.Request) {
	items, err := h.store.List(r.Context())
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	if len(items) == 0 {
		writeJSON(w, http.StatusNotFound, ErrorResponse{Error: "no notes to export"})
		return
	}

	at := h.now()
	doc, err := RenderMarkdownAll(items, at)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeMarkdown(w, ExportAllFilename(at), doc)
}

// writeMarkdown sends doc as a download. name must be header-safe; the
// Export*Filename helpers only produce [a-z0-9.-].
func writeMarkdown(w http.ResponseWriter, name string, doc []byte) {
	w.Header().Set("Content-Type", "text/markdown; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, name))
	w.Header().Set("Content-Length", strconv.Itoa(len(doc)))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(doc)
}
