package tests

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rileyblackwell/imagi-oasis/internal/api"
	"github.com/rileyblackwell/imagi-oasis/internal/config"
	"github.com/rileyblackwell/imagi-oasis/internal/credits"
	"github.com/rileyblackwell/imagi-oasis/internal/database"
	"github.com/rileyblackwell/imagi-oasis/internal/llm"
	"github.com/rileyblackwell/imagi-oasis/internal/model"
	"github.com/rileyblackwell/imagi-oasis/internal/projectfs"
	"github.com/rileyblackwell/imagi-oasis/internal/repository"
	"github.com/rileyblackwell/imagi-oasis/internal/service"
)

// testEnv is a fully wired in-process deployment: temp SQLite database,
// stubbed vendor endpoints and the real router.
type testEnv struct {
	server       *httptest.Server
	projectsRoot string
	// nextAnthropicText and nextOpenAIText are what the stubbed vendor
	// endpoints return on their next call.
	nextAnthropicText func() string
	nextOpenAIText    func() string
}

func setupEnv(t *testing.T) *testEnv {
	t.Helper()

	env := &testEnv{projectsRoot: t.TempDir()}
	env.nextAnthropicText = func() string { return "stub" }
	env.nextOpenAIText = func() string { return "stub" }

	anthropic := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/v1/messages", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"content": []map[string]any{{"type": "text", "text": env.nextAnthropicText()}},
			"usage":   map[string]any{"output_tokens": 42},
		})
	}))
	t.Cleanup(anthropic.Close)

	openai := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/v1/chat/completions", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"choices": []map[string]any{{"message": map[string]any{"role": "assistant", "content": env.nextOpenAIText()}}},
			"usage":   map[string]any{"completion_tokens": 42},
		})
	}))
	t.Cleanup(openai.Close)

	db, err := database.InitDB(filepath.Join(t.TempDir(), "integration.db"))
	require.NoError(t, err)
	t.Cleanup(func() { require.NoError(t, db.Close()) })

	repo := repository.NewSQLiteRepository(db)
	ledger := credits.NewLedger(repo)
	loader := projectfs.NewLoader(env.projectsRoot)
	dispatcher := llm.NewDispatcher(
		llm.NewOpenAIClient(openai.URL, "test-key", 5*time.Second),
		llm.NewAnthropicClient(anthropic.URL, "test-key", 5*time.Second),
	)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	generationService := service.NewGenerationService(repo, dispatcher, ledger, loader, logger)
	conversationService := service.NewConversationService(repo)

	cfg := &config.Config{DefaultModel: "claude-3-7-sonnet"}
	router := api.NewRouter(
		api.NewGenerationHandler(generationService, cfg),
		api.NewConversationHandler(conversationService),
		api.NewCreditHandler(ledger),
		api.NewModelHandler(),
	)

	env.server = httptest.NewServer(router)
	t.Cleanup(env.server.Close)
	return env
}

func (e *testEnv) request(t *testing.T, method, path string, body any) (*http.Response, []byte) {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req, err := http.NewRequest(method, e.server.URL+path, reader)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-User-ID", "itest-user")

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.NoError(t, resp.Body.Close())
	return resp, raw
}

func TestFullGenerationFlow(t *testing.T) {
	env := setupEnv(t)

	// Without credits the generate endpoint refuses before any vendor call.
	resp, raw := env.request(t, http.MethodPost, "/api/v1/generate", map[string]any{
		"mode": "template", "file": "index.html", "input": "Make a landing page",
	})
	require.Equal(t, http.StatusPaymentRequired, resp.StatusCode, string(raw))
	var errResp api.ErrorResponse
	require.NoError(t, json.Unmarshal(raw, &errResp))
	require.NotNil(t, errResp.RequiredCredits)
	assert.True(t, errResp.RequiredCredits.Equal(decimal.RequireFromString("0.04")))

	// Top up.
	resp, raw = env.request(t, http.MethodPost, "/api/v1/credits/grant", map[string]any{"amount": "1.00"})
	require.Equal(t, http.StatusOK, resp.StatusCode, string(raw))

	// First generation: the vendor answers with swapped template tags, which
	// the validator repairs before anything is persisted.
	env.nextAnthropicText = func() string {
		return "{% load static %}\n{% extends 'base.html' %}\n<h1>Landing v1</h1>\n"
	}
	resp, raw = env.request(t, http.MethodPost, "/api/v1/generate", map[string]any{
		"mode": "template", "file": "index.html", "project_id": "proj-1",
		"input": "Make a landing page",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode, string(raw))
	var first model.GenerateResult
	require.NoError(t, json.Unmarshal(raw, &first))
	assert.Contains(t, first.Response, "{% extends 'base.html' %}\n{% load static %}")
	assert.Contains(t, first.Response, "Landing v1")
	require.NotEmpty(t, first.ConversationID)
	conversationID := first.ConversationID

	// The repaired content landed on disk.
	written, ok := projectfs.NewLoader(env.projectsRoot).LoadFile("proj-1", "index.html")
	require.True(t, ok)
	assert.Contains(t, written.Content, "Landing v1")

	// The balance dropped by exactly one request cost.
	resp, raw = env.request(t, http.MethodGet, "/api/v1/credits/balance", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var balance api.BalanceResponse
	require.NoError(t, json.Unmarshal(raw, &balance))
	assert.True(t, balance.Balance.Equal(decimal.RequireFromString("0.96")), "got %s", balance.Balance)

	// Second generation on the same file and conversation.
	env.nextAnthropicText = func() string {
		return "{% extends 'base.html' %}\n{% load static %}\n<h1>Landing v2</h1>\n"
	}
	resp, raw = env.request(t, http.MethodPost, "/api/v1/generate", map[string]any{
		"mode": "template", "file": "index.html", "project_id": "proj-1",
		"conversation_id": conversationID, "input": "Try a bolder headline",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode, string(raw))

	// History replays all four messages in creation order.
	resp, raw = env.request(t, http.MethodGet, "/api/v1/conversations/"+conversationID, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var full model.FullConversation
	require.NoError(t, json.Unmarshal(raw, &full))
	require.Len(t, full.Messages, 4)
	assert.Equal(t, model.RoleUser, full.Messages[0].Role)
	assert.Equal(t, model.RoleAssistant, full.Messages[1].Role)
	require.NotNil(t, full.SystemPrompt)

	// Undo drops the second exchange and restores v1.
	resp, raw = env.request(t, http.MethodPost, "/api/v1/conversations/"+conversationID+"/undo", map[string]any{
		"file": "index.html", "project_id": "proj-1",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode, string(raw))
	var undo model.UndoResult
	require.NoError(t, json.Unmarshal(raw, &undo))
	require.NotNil(t, undo.Content)
	assert.Contains(t, *undo.Content, "Landing v1")

	// A second undo finds no prior version left.
	resp, raw = env.request(t, http.MethodPost, "/api/v1/conversations/"+conversationID+"/undo", map[string]any{
		"file": "index.html",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	undo = model.UndoResult{}
	require.NoError(t, json.Unmarshal(raw, &undo))
	assert.Nil(t, undo.Content)
	assert.Equal(t, "no previous version available", undo.Message)
}

func TestOpenAIRouting(t *testing.T) {
	env := setupEnv(t)

	_, _ = env.request(t, http.MethodPost, "/api/v1/credits/grant", map[string]any{"amount": "1.00"})

	env.nextOpenAIText = func() string { return "OpenAI answered." }
	resp, raw := env.request(t, http.MethodPost, "/api/v1/generate", map[string]any{
		"mode": "chat", "model": "gpt-4o-mini", "input": "Say hi",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode, string(raw))
	var result model.GenerateResult
	require.NoError(t, json.Unmarshal(raw, &result))
	assert.Equal(t, "OpenAI answered.", result.Response)
	assert.True(t, result.CreditsUsed.Equal(decimal.RequireFromString("0.01")))
}

func TestUnsupportedModelFailsFast(t *testing.T) {
	env := setupEnv(t)

	_, _ = env.request(t, http.MethodPost, "/api/v1/credits/grant", map[string]any{"amount": "1.00"})

	resp, raw := env.request(t, http.MethodPost, "/api/v1/generate", map[string]any{
		"mode": "chat", "model": "llama-70b", "input": "Say hi",
	})
	require.Equal(t, http.StatusBadRequest, resp.StatusCode, string(raw))
}

func TestStylesheetFlow(t *testing.T) {
	env := setupEnv(t)

	_, _ = env.request(t, http.MethodPost, "/api/v1/credits/grant", map[string]any{"amount": "1.00"})

	// The vendor wraps the stylesheet in prose and a fenced block; only the
	// fenced CSS may survive.
	env.nextAnthropicText = func() string {
		return "Here is your stylesheet:\n```css\nbody { margin: 0; }\n```\nLet me know if you need changes."
	}
	resp, raw := env.request(t, http.MethodPost, "/api/v1/generate", map[string]any{
		"mode": "stylesheet", "file": "styles.css", "project_id": "proj-css",
		"input": "Reset the margins",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode, string(raw))
	var result model.GenerateResult
	require.NoError(t, json.Unmarshal(raw, &result))
	assert.Equal(t, "body { margin: 0; }", result.Response)
}

func TestHealthz(t *testing.T) {
	env := setupEnv(t)

	resp, raw := env.request(t, http.MethodGet, "/healthz", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `{"status":"ok"}`, string(raw))
}
