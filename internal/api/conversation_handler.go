package api

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	app_errors "github.com/rileyblackwell/imagi-oasis/internal/errors"
	"github.com/rileyblackwell/imagi-oasis/internal/interfaces"
)

// ConversationHandler handles HTTP requests for conversation lifecycle.
type ConversationHandler struct {
	service interfaces.ConversationService
}

func NewConversationHandler(svc interfaces.ConversationService) *ConversationHandler {
	return &ConversationHandler{service: svc}
}

// SystemPromptRequest is the DTO for replacing a conversation's system prompt.
type SystemPromptRequest struct {
	Content string `json:"content" validate:"required,min=1,max=10000"`
}

// HandleListConversations godoc
// @Summary      List conversations
// @Description  Returns all of the user's conversations, most recently updated first.
// @Tags         Conversations
// @Produce      json
// @Success      200  {array}   model.Conversation
// @Failure      500  {object}  ErrorResponse
// @Router       /v1/conversations [get]
func (h *ConversationHandler) HandleListConversations(w http.ResponseWriter, r *http.Request) {
	conversations, err := h.service.ListConversations(r.Context(), userID(r))
	if err != nil {
		respondWithError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, conversations)
}

// HandleGetConversation godoc
// @Summary      Get one conversation
// @Description  Returns the conversation with its system prompt and full message history in creation-time order.
// @Tags         Conversations
// @Produce      json
// @Param        conversationID  path      string  true  "Conversation ID"
// @Success      200             {object}  model.FullConversation
// @Failure      404             {object}  ErrorResponse
// @Router       /v1/conversations/{conversationID} [get]
func (h *ConversationHandler) HandleGetConversation(w http.ResponseWriter, r *http.Request) {
	full, err := h.service.GetFullConversation(r.Context(), userID(r), chi.URLParam(r, "conversationID"))
	if err != nil {
		respondWithError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, full)
}

// HandleClearConversation godoc
// @Summary      Clear a conversation
// @Description  Deletes the conversation's messages and pages but keeps the conversation and its system prompt.
// @Tags         Conversations
// @Produce      json
// @Param        conversationID  path      string  true  "Conversation ID"
// @Success      200             {object}  StatusResponse
// @Failure      404             {object}  ErrorResponse
// @Router       /v1/conversations/{conversationID}/clear [post]
func (h *ConversationHandler) HandleClearConversation(w http.ResponseWriter, r *http.Request) {
	if err := h.service.ClearConversation(r.Context(), userID(r), chi.URLParam(r, "conversationID")); err != nil {
		respondWithError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, StatusResponse{Status: "cleared"})
}

// HandleDeleteConversation godoc
// @Summary      Delete a conversation
// @Description  Removes the conversation and everything under it.
// @Tags         Conversations
// @Produce      json
// @Param        conversationID  path      string  true  "Conversation ID"
// @Success      200             {object}  StatusResponse
// @Failure      404             {object}  ErrorResponse
// @Router       /v1/conversations/{conversationID} [delete]
func (h *ConversationHandler) HandleDeleteConversation(w http.ResponseWriter, r *http.Request) {
	if err := h.service.DeleteConversation(r.Context(), userID(r), chi.URLParam(r, "conversationID")); err != nil {
		respondWithError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, StatusResponse{Status: "deleted"})
}

// HandleSetSystemPrompt godoc
// @Summary      Replace the system prompt
// @Description  Replaces the conversation's system prompt; later turns use the new prompt.
// @Tags         Conversations
// @Accept       json
// @Produce      json
// @Param        conversationID  path      string               true  "Conversation ID"
// @Param        request         body      SystemPromptRequest  true  "New system prompt"
// @Success      200             {object}  StatusResponse
// @Failure      400             {object}  ErrorResponse
// @Failure      404             {object}  ErrorResponse
// @Router       /v1/conversations/{conversationID}/system-prompt [put]
func (h *ConversationHandler) HandleSetSystemPrompt(w http.ResponseWriter, r *http.Request) {
	var req SystemPromptRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, fmt.Errorf("%w: invalid request body", app_errors.ErrValidation))
		return
	}
	if err := validateRequest(req); err != nil {
		respondWithError(w, err)
		return
	}
	if err := h.service.SetSystemPrompt(r.Context(), userID(r), chi.URLParam(r, "conversationID"), req.Content); err != nil {
		respondWithError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, StatusResponse{Status: "updated"})
}
