package main

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strconv"
	"strings"
	"testing"
	"time"

	openai "github.com/sashabaranov/go-openai"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"example.com/notetaker/internal/config"
	"example.com/notetaker/internal/notes"
)

// modelServer answers translation prompts with a fixed string and every
// other prompt with a continuation object.
func modelServer(t *testing.T) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req openai.ChatCompletionRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil || len(req.Messages) == 0 {
			http.Error(w, "bad request", http.StatusBadRequest)
			return
		}
		content := `{"continuation":"and eggs"}`
		if strings.Contains(req.Messages[0].Content, "translator") {
			content = "你好"
		}
		_ = json.NewEncoder(w).Encode(openai.ChatCompletionResponse{
			ID:     "chatcmpl-e2e",
			Object: "chat.completion",
			Model:  req.Model,
			Choices: []openai.ChatCompletionChoice{{
				Message:      openai.ChatCompletionMessage{Role: openai.ChatMessageRoleAssistant, Content: content},
				FinishReason: openai.FinishReasonStop,
			}},
		})
	}))
	t.Cleanup(srv.Close)
	return srv
}

func testConfig(t *testing.T, token, endpoint string) config.Config {
	t.Helper()
	return config.Config{
		DatabaseURL:     "sqlite:" + filepath.Join(t.TempDir(), "notes.db"),
		MaxOpenConns:    4,
		MaxIdleConns:    4,
		ConnMaxLifetime: time.Minute,
		ConnMaxIdleTime: time.Minute,
		HTTPAddr:        ":0",
		ShutdownTimeout: time.Second,
		LogLevel:        "debug",
		LLM: config.LLMConfig{
			Token:    token,
			Endpoint: endpoint,
			Model:    "gpt-4o-mini",
			Timeout:  2 * time.Second,
		},
	}
}

func startApp(t *testing.T, cfg config.Config) *httptest.Server {
	t.Helper()
	require.NoError(t, cfg.Validate())

	a, err := newApp(context.Background(), cfg, zaptest.NewLogger(t))
	require.NoError(t, err)
	t.Cleanup(func() { require.NoError(t, a.Close()) })

	srv := httptest.NewServer(a.handler)
	t.Cleanup(srv.Close)
	return srv
}

func call(t *testing.T, method, url, body string) (int, []byte) {
	t.Helper()
	var rd io.Reader
	if body != "" {
		rd = bytes.NewBufferString(body)
	}
	req, err := http.NewRequest(method, url, rd)
	require.NoError(t, err)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	b, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, b
}

func TestApp_NoteLifecycle(t *testing.T) {
	model := modelServer(t)
	srv := startApp(t, testConfig(t, "tok", model.URL))

	status, body := call(t, http.MethodPost, srv.URL+"/notes", `{"title":"Groceries","content":"milk"}`)
	require.Equal(t, http.StatusCreated, status)
	var created notes.Note
	require.NoError(t, json.Unmarshal(body, &created))
	require.Positive(t, created.ID)
	require.False(t, created.UpdatedAt.Before(created.CreatedAt))

	status, body = call(t, http.MethodGet, srv.URL+"/api/notes/"+itoa(created.ID), "")
	require.Equal(t, http.StatusOK, status)
	var got notes.Note
	require.NoError(t, json.Unmarshal(body, &got))
	require.Equal(t, "Groceries", got.Title)
	require.Equal(t, "milk", got.Content)

	status, body = call(t, http.MethodPut, srv.URL+"/notes/"+itoa(created.ID), `{"content":"milk, bread"}`)
	require.Equal(t, http.StatusOK, status)
	var updated notes.Note
	require.NoError(t, json.Unmarshal(body, &updated))
	require.Equal(t, "Groceries", updated.Title)
	require.True(t, updated.UpdatedAt.After(created.UpdatedAt))

	status, body = call(t, http.MethodGet, srv.URL+"/notes/search?q=BREAD", "")
	require.Equal(t, http.StatusOK, status)
	var found []notes.Note
	require.NoError(t, json.Unmarshal(body, &found))
	require.Len(t, found, 1)

	status, body = call(t, http.MethodPost, srv.URL+"/notes/"+itoa(created.ID)+"/translate", "")
	require.Equal(t, http.StatusOK, status)
	var tr notes.TranslateNoteResponse
	require.NoError(t, json.Unmarshal(body, &tr))
	require.Equal(t, "你好", tr.Translations["title"])
	require.Equal(t, "你好", tr.Translations["content"])

	status, body = call(t, http.MethodPost, srv.URL+"/auto-complete", `{"content":"milk","type":"continuation"}`)
	require.Equal(t, http.StatusOK, status)
	require.JSONEq(t, `{"success":true,"type":"continuation","result":{"continuation":"and eggs"}}`, string(body))

	status, body = call(t, http.MethodGet, srv.URL+"/notes/"+itoa(created.ID)+"/export", "")
	require.Equal(t, http.StatusOK, status)
	require.Contains(t, string(body), "# Groceries")

	status, _ = call(t, http.MethodDelete, srv.URL+"/notes/"+itoa(created.ID), "")
	require.Equal(t, http.StatusNoContent, status)

	status, _ = call(t, http.MethodGet, srv.URL+"/notes/"+itoa(created.ID), "")
	require.Equal(t, http.StatusNotFound, status)
}

func TestApp_WithoutToken(t *testing.T) {
	srv := startApp(t, testConfig(t, "", "https://models.example.invalid"))

	status, body := call(t, http.MethodGet, srv.URL+"/health", "")
	require.Equal(t, http.StatusOK, status)
	var health notes.HealthResponse
	require.NoError(t, json.Unmarshal(body, &health))
	require.True(t, health.DatabaseAvailable)
	require.False(t, health.TranslationAvailable)

	status, _ = call(t, http.MethodPost, srv.URL+"/translate", `{"text":"hello"}`)
	require.Equal(t, http.StatusServiceUnavailable, status)

	// caller errors are still reported as such
	status, _ = call(t, http.MethodPost, srv.URL+"/translate", `{"text":""}`)
	require.Equal(t, http.StatusBadRequest, status)
}

func itoa(id int64) string { return strconv.FormatInt(id, 10) }
