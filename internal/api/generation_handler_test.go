package api_test

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/rileyblackwell/imagi-oasis/internal/api"
	"github.com/rileyblackwell/imagi-oasis/internal/config"
	app_errors "github.com/rileyblackwell/imagi-oasis/internal/errors"
	"github.com/rileyblackwell/imagi-oasis/internal/interfaces/mocks"
	"github.com/rileyblackwell/imagi-oasis/internal/model"
	"github.com/rileyblackwell/imagi-oasis/internal/service"
	"github.com/rileyblackwell/imagi-oasis/internal/validate"
)

// addChiURLParams is a helper to simulate how the chi router injects URL
// parameters into a request's context. Our handlers rely on `chi.URLParam`
// to extract these values; without this helper it would return an empty
// string for any route with a path parameter.
func addChiURLParams(req *http.Request, params map[string]string) *http.Request {
	chiCtx := chi.NewRouteContext()
	for key, value := range params {
		chiCtx.URLParams.Add(key, value)
	}
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, chiCtx))
}

func setupGenerationHandler(t *testing.T) (*api.GenerationHandler, *mocks.MockGenerationService) {
	mockSvc := mocks.NewMockGenerationService(t)
	cfg := &config.Config{DefaultModel: "claude-3-7-sonnet"}
	return api.NewGenerationHandler(mockSvc, cfg), mockSvc
}

func TestGenerationHandler_HandleGenerate(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		handler, mockSvc := setupGenerationHandler(t)

		expected := &model.GenerateResult{
			Response:       "<h1>About</h1>",
			ConversationID: "conv-1",
			CreditsUsed:    decimal.RequireFromString("0.04"),
		}
		mockSvc.On("Generate", mock.Anything, mock.MatchedBy(func(req *service.GenerateRequest) bool {
			return req.UserID == "user-1" &&
				req.Mode == service.AgentTemplate &&
				req.Model == "claude-3-7-sonnet" &&
				req.Filename == "about.html"
		})).Return(expected, nil).Once()

		body := `{"mode":"template","file":"about.html","input":"Create an about page"}`
		req := httptest.NewRequest(http.MethodPost, "/api/v1/generate", strings.NewReader(body))
		req.Header.Set("X-User-ID", "user-1")
		rr := httptest.NewRecorder()

		handler.HandleGenerate(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		var resp model.GenerateResult
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
		assert.Equal(t, "conv-1", resp.ConversationID)
		assert.Equal(t, "<h1>About</h1>", resp.Response)
	})

	t.Run("Failure - Insufficient Credits", func(t *testing.T) {
		handler, mockSvc := setupGenerationHandler(t)

		mockSvc.On("Generate", mock.Anything, mock.Anything).Return(nil, &service.InsufficientCreditsError{
			Required: decimal.RequireFromString("0.04"),
			Balance:  decimal.RequireFromString("0.01"),
		}).Once()

		body := `{"mode":"chat","input":"hello"}`
		req := httptest.NewRequest(http.MethodPost, "/api/v1/generate", strings.NewReader(body))
		rr := httptest.NewRecorder()

		handler.HandleGenerate(rr, req)

		assert.Equal(t, http.StatusPaymentRequired, rr.Code)
		var resp api.ErrorResponse
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
		require.NotNil(t, resp.RequiredCredits)
		assert.True(t, resp.RequiredCredits.Equal(decimal.RequireFromString("0.04")))
	})

	t.Run("Failure - Invalid Mode", func(t *testing.T) {
		handler, _ := setupGenerationHandler(t)

		body := `{"mode":"poetry","input":"hello"}`
		req := httptest.NewRequest(http.MethodPost, "/api/v1/generate", strings.NewReader(body))
		rr := httptest.NewRecorder()

		handler.HandleGenerate(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("Failure - Missing Input", func(t *testing.T) {
		handler, _ := setupGenerationHandler(t)

		body := `{"mode":"chat"}`
		req := httptest.NewRequest(http.MethodPost, "/api/v1/generate", strings.NewReader(body))
		rr := httptest.NewRecorder()

		handler.HandleGenerate(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("Failure - Invalid JSON", func(t *testing.T) {
		handler, _ := setupGenerationHandler(t)

		req := httptest.NewRequest(http.MethodPost, "/api/v1/generate", strings.NewReader(`{"mode":`))
		rr := httptest.NewRecorder()

		handler.HandleGenerate(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("Failure - Vendor Error", func(t *testing.T) {
		handler, mockSvc := setupGenerationHandler(t)

		mockSvc.On("Generate", mock.Anything, mock.Anything).
			Return(nil, app_errors.ErrVendor).Once()

		body := `{"mode":"chat","input":"hello"}`
		req := httptest.NewRequest(http.MethodPost, "/api/v1/generate", strings.NewReader(body))
		rr := httptest.NewRecorder()

		handler.HandleGenerate(rr, req)

		assert.Equal(t, http.StatusBadGateway, rr.Code)
	})

	t.Run("Failure - Unrepairable Response", func(t *testing.T) {
		handler, mockSvc := setupGenerationHandler(t)

		svcErr := fmt.Errorf("%w: %w", app_errors.ErrInvalidResponse,
			&validate.Error{Reason: "base template is missing a doctype declaration", Content: "<html>half a page"})
		mockSvc.On("Generate", mock.Anything, mock.Anything).
			Return(nil, svcErr).Once()

		body := `{"mode":"template","file":"base.html","input":"make the base"}`
		req := httptest.NewRequest(http.MethodPost, "/api/v1/generate", strings.NewReader(body))
		rr := httptest.NewRecorder()

		handler.HandleGenerate(rr, req)

		assert.Equal(t, http.StatusUnprocessableEntity, rr.Code)

		var errResp api.ErrorResponse
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &errResp))
		assert.Equal(t, "base template is missing a doctype declaration", errResp.Error)
		require.NotNil(t, errResp.RawResponse)
		assert.Equal(t, "<html>half a page", *errResp.RawResponse)
	})

	t.Run("Defaults model from config", func(t *testing.T) {
		handler, mockSvc := setupGenerationHandler(t)

		mockSvc.On("Generate", mock.Anything, mock.MatchedBy(func(req *service.GenerateRequest) bool {
			return req.Model == "claude-3-7-sonnet"
		})).Return(&model.GenerateResult{ConversationID: "conv-1"}, nil).Once()

		body := `{"mode":"chat","input":"hello"}`
		req := httptest.NewRequest(http.MethodPost, "/api/v1/generate", strings.NewReader(body))
		rr := httptest.NewRecorder()

		handler.HandleGenerate(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
	})
}

func TestGenerationHandler_HandleUndo(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		handler, mockSvc := setupGenerationHandler(t)

		restored := "<h1>Old</h1>"
		mockSvc.On("Undo", mock.Anything, "user-1", "conv-1", "about.html", "proj-1").
			Return(&model.UndoResult{Content: &restored, Message: "restored previous version"}, nil).Once()

		body := `{"file":"about.html","project_id":"proj-1"}`
		req := httptest.NewRequest(http.MethodPost, "/api/v1/conversations/conv-1/undo", strings.NewReader(body))
		req.Header.Set("X-User-ID", "user-1")
		req = addChiURLParams(req, map[string]string{"conversationID": "conv-1"})
		rr := httptest.NewRecorder()

		handler.HandleUndo(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		var resp model.UndoResult
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
		require.NotNil(t, resp.Content)
		assert.Equal(t, restored, *resp.Content)
	})

	t.Run("Failure - Missing File", func(t *testing.T) {
		handler, _ := setupGenerationHandler(t)

		req := httptest.NewRequest(http.MethodPost, "/api/v1/conversations/conv-1/undo", strings.NewReader(`{}`))
		req = addChiURLParams(req, map[string]string{"conversationID": "conv-1"})
		rr := httptest.NewRecorder()

		handler.HandleUndo(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("Failure - Conversation Not Found", func(t *testing.T) {
		handler, mockSvc := setupGenerationHandler(t)

		mockSvc.On("Undo", mock.Anything, "default-user", "missing", "about.html", "").
			Return(nil, app_errors.ErrNotFound).Once()

		body := `{"file":"about.html"}`
		req := httptest.NewRequest(http.MethodPost, "/api/v1/conversations/missing/undo", strings.NewReader(body))
		req = addChiURLParams(req, map[string]string{"conversationID": "missing"})
		rr := httptest.NewRecorder()

		handler.HandleUndo(rr, req)

		assert.Equal(t, http.StatusNotFound, rr.Code)
	})
}
