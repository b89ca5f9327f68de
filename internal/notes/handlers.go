package notes

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"example.com/notetaker/internal/llm"
	"example.com/notetaker/internal/middleware"
	"example.com/notetaker/internal/stringsx"
)

type Handlers struct {
	store Store
	ai    Assistant
	db    Pinger
	log   *zap.Logger
	now   func() time.Time
}

// Store is an abstraction over the notes storage.
// It allows unit-testing handlers without a real database.
type Store interface {
	List(ctx context.Context) ([]Note, error)
	Create(ctx context.Context, title, content string) (Note, error)
	Get(ctx context.Context, id int64) (Note, error)
	Update(ctx context.Context, id int64, p NotePatch) (Note, error)
	Delete(ctx context.Context, id int64) error
	Search(ctx context.Context, q string) ([]Note, error)
}

// Assistant is the model-backed translation and completion client.
type Assistant interface {
	Configured() bool
	Translate(ctx context.Context, text, targetLanguage string) (string, error)
	Complete(ctx context.Context, title, content, mode string) (llm.Completion, error)
}

// Pinger reports database reachability for /health.
type Pinger interface {
	Ping(ctx context.Context) error
}

// NewHandlers wires the routing layer. A nil ai is replaced by an
// unconfigured client; a nil db reports the database as unavailable.
func NewHandlers(store Store, ai Assistant, db Pinger, log *zap.Logger) *Handlers {
	if ai == nil {
		ai = llm.New(llm.Config{})
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Handlers{store: store, ai: ai, db: db, log: log, now: time.Now}
}

// Routes serves the API at the root and, for the bundled front-end, under /api.
func (h *Handlers) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(
		chimw.RealIP,
		middleware.RequestID,
		middleware.AccessLog(h.log),
		middleware.Recover(h.log),
		cors.AllowAll().Handler,
	)

	h.register(r)
	r.Route("/api", h.register)

	return r
}

func (h *Handlers) register(r chi.Router) {
	r.Get("/health", h.health)

	r.Route("/notes", func(r chi.Router) {
		r.Post("/", h.create)
		r.Get("/", h.list)
		r.Get("/search", h.search)
		r.Get("/export-all", h.exportAll)

		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", h.get)
			r.Put("/", h.update)
			r.Delete("/", h.delete)
			r.Post("/translate", h.translateNote)
			r.Get("/export", h.exportNote)
		})
	})

	r.Post("/translate", h.translate)
	r.Post("/auto-complete", h.autoComplete)
}

func (h *Handlers) create(w http.ResponseWriter, r *http.Request) {
	var req CreateNoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "invalid json"})
		return
	}
	if stringsx.IsEmpty(req.Title) || stringsx.IsEmpty(req.Content) {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "title and content are required"})
		return
	}

	n, err := h.store.Create(r.Context(), req.Title, req.Content)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, n)
}

func (h *Handlers) list(w http.ResponseWriter, r *http.Request) {
	items, err := h.store.List(r.Context())
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, items)
}

func (h *Handlers) search(w http.ResponseWriter, r *http.Request) {
	items, err := h.store.Search(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, items)
}

func (h *Handlers) get(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	n, err := h.store.Get(r.Context(), id)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, n)
}

func (h *Handlers) update(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	var req UpdateNoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "invalid json"})
		return
	}
	patch := NotePatch{Title: req.Title, Content: req.Content}
	if patch.Empty() {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "no data provided"})
		return
	}

	n, err := h.store.Update(r.Context(), id, patch)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, n)
}

func (h *Handlers) delete(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	if err := h.store.Delete(r.Context(), id); err != nil {
		h.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handlers) health(w http.ResponseWriter, r *http.Request) {
	dbOK := false
	if h.db != nil {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		dbOK = h.db.Ping(ctx) == nil
	}

	writeJSON(w, http.StatusOK, HealthResponse{
		Status:               "ok",
		Message:              "NoteTaker API is running",
		DatabaseAvailable:    dbOK,
		TranslationAvailable: h.ai.Configured(),
	})
}

func parseID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
		return 0, false
	}
	return id, true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
