package api

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/rileyblackwell/imagi-oasis/internal/config"
	app_errors "github.com/rileyblackwell/imagi-oasis/internal/errors"
	"github.com/rileyblackwell/imagi-oasis/internal/interfaces"
	"github.com/rileyblackwell/imagi-oasis/internal/service"
)

// GenerationHandler handles HTTP requests for the generation pipeline.
type GenerationHandler struct {
	service interfaces.GenerationService
	cfg     *config.Config
}

func NewGenerationHandler(svc interfaces.GenerationService, cfg *config.Config) *GenerationHandler {
	return &GenerationHandler{service: svc, cfg: cfg}
}

// GenerateRequest is the DTO for the generation endpoint.
type GenerateRequest struct {
	ConversationID string `json:"conversation_id,omitempty"`
	ProjectID      string `json:"project_id,omitempty" validate:"omitempty,max=128"`
	Mode           string `json:"mode" validate:"required,oneof=template stylesheet chat application" example:"template"`
	Model          string `json:"model,omitempty" example:"claude-3-7-sonnet"`
	File           string `json:"file,omitempty" validate:"omitempty,max=255"`
	Input          string `json:"input" validate:"required,min=1"`
}

// UndoRequest is the DTO for the per-file undo endpoint.
type UndoRequest struct {
	File      string `json:"file" validate:"required,min=1,max=255" example:"index.html"`
	ProjectID string `json:"project_id,omitempty" validate:"omitempty,max=128"`
}

// HandleGenerate godoc
// @Summary      Run one generation turn
// @Description  Assembles the prompt, dispatches to the model vendor, validates the response and persists the exchange. The user's balance is debited only when the full turn succeeds.
// @Tags         Generation
// @Accept       json
// @Produce      json
// @Param        request  body      GenerateRequest  true  "Generation request"
// @Success      200      {object}  model.GenerateResult
// @Failure      400      {object}  ErrorResponse
// @Failure      402      {object}  ErrorResponse
// @Failure      422      {object}  ErrorResponse
// @Failure      502      {object}  ErrorResponse
// @Router       /v1/generate [post]
func (h *GenerationHandler) HandleGenerate(w http.ResponseWriter, r *http.Request) {
	var req GenerateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, fmt.Errorf("%w: invalid request body", app_errors.ErrValidation))
		return
	}
	if err := validateRequest(req); err != nil {
		respondWithError(w, err)
		return
	}
	if req.Model == "" {
		req.Model = h.cfg.DefaultModel
	}

	result, err := h.service.Generate(r.Context(), &service.GenerateRequest{
		UserID:         userID(r),
		ConversationID: req.ConversationID,
		ProjectID:      req.ProjectID,
		Mode:           service.AgentMode(req.Mode),
		Model:          req.Model,
		Filename:       req.File,
		UserInput:      req.Input,
	})
	if err != nil {
		respondWithError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, result)
}

// HandleUndo godoc
// @Summary      Undo the last generation for one file
// @Description  Deletes the most recent exchange for the named file and returns the previous version of its content, re-validated.
// @Tags         Generation
// @Accept       json
// @Produce      json
// @Param        conversationID  path      string       true  "Conversation ID"
// @Param        request         body      UndoRequest  true  "Undo request"
// @Success      200             {object}  model.UndoResult
// @Failure      400             {object}  ErrorResponse
// @Failure      404             {object}  ErrorResponse
// @Router       /v1/conversations/{conversationID}/undo [post]
func (h *GenerationHandler) HandleUndo(w http.ResponseWriter, r *http.Request) {
	conversationID := chi.URLParam(r, "conversationID")

	var req UndoRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, fmt.Errorf("%w: invalid request body", app_errors.ErrValidation))
		return
	}
	if err := validateRequest(req); err != nil {
		respondWithError(w, err)
		return
	}

	result, err := h.service.Undo(r.Context(), userID(r), conversationID, req.File, req.ProjectID)
	if err != nil {
		respondWithError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, result)
}

// userID resolves the acting user. Authentication is out of scope here; the
// identity comes from a trusted upstream proxy header.
func userID(r *http.Request) string {
	if id := r.Header.Get("X-User-ID"); id != "" {
		return id
	}
	return "default-user"
}
