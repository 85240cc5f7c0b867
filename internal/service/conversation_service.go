package service

import (
	"context"
	"fmt"
	"strings"

	app_errors "github.com/rileyblackwell/imagi-oasis/internal/errors"
	"github.com/rileyblackwell/imagi-oasis/internal/model"
	"github.com/rileyblackwell/imagi-oasis/internal/repository"
)

// ConversationService manages conversation lifecycle outside of generation:
// listing, retrieval with history, reset and deletion.
type ConversationService struct {
	repo repository.Repository
}

func NewConversationService(repo repository.Repository) *ConversationService {
	return &ConversationService{repo: repo}
}

// ListConversations retrieves all conversations for a user.
func (s *ConversationService) ListConversations(ctx context.Context, userID string) ([]*model.Conversation, error) {
	return s.repo.GetConversations(ctx, userID)
}

// GetFullConversation retrieves a conversation with its system prompt and
// complete message history in creation-time order.
func (s *ConversationService) GetFullConversation(ctx context.Context, userID, conversationID string) (*model.FullConversation, error) {
	conv, err := s.owned(ctx, userID, conversationID)
	if err != nil {
		return nil, err
	}
	messages, err := s.repo.GetMessages(ctx, conversationID)
	if err != nil {
		return nil, fmt.Errorf("could not get messages: %w", err)
	}
	full := &model.FullConversation{Conversation: *conv, Messages: messages}
	if sp, err := s.repo.GetSystemPrompt(ctx, conversationID); err == nil {
		full.SystemPrompt = sp
	} else if err != repository.ErrNotFound {
		return nil, fmt.Errorf("could not get system prompt: %w", err)
	}
	return full, nil
}

// ClearConversation wipes a conversation's messages and pages while keeping
// the conversation and its system prompt.
func (s *ConversationService) ClearConversation(ctx context.Context, userID, conversationID string) error {
	if _, err := s.owned(ctx, userID, conversationID); err != nil {
		return err
	}
	return s.repo.ClearConversation(ctx, conversationID)
}

// DeleteConversation removes a conversation and everything under it.
func (s *ConversationService) DeleteConversation(ctx context.Context, userID, conversationID string) error {
	if _, err := s.owned(ctx, userID, conversationID); err != nil {
		return err
	}
	return s.repo.DeleteConversation(ctx, conversationID)
}

// SetSystemPrompt replaces the conversation's system prompt.
func (s *ConversationService) SetSystemPrompt(ctx context.Context, userID, conversationID, content string) error {
	if strings.TrimSpace(content) == "" {
		return fmt.Errorf("%w: system prompt cannot be empty", app_errors.ErrValidation)
	}
	if _, err := s.owned(ctx, userID, conversationID); err != nil {
		return err
	}
	return s.repo.UpsertSystemPrompt(ctx, conversationID, content)
}

// owned loads the conversation and hides other users' conversations behind
// a not-found, the same answer a missing ID gets.
func (s *ConversationService) owned(ctx context.Context, userID, conversationID string) (*model.Conversation, error) {
	conv, err := s.repo.GetConversation(ctx, conversationID)
	if err != nil {
		return nil, domainErr(err)
	}
	if conv.UserID != userID {
		return nil, app_errors.ErrNotFound
	}
	return conv, nil
}
