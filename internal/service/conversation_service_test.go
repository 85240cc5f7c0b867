package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	app_errors "github.com/rileyblackwell/imagi-oasis/internal/errors"
	"github.com/rileyblackwell/imagi-oasis/internal/model"
	"github.com/rileyblackwell/imagi-oasis/internal/repository"
	repo_mocks "github.com/rileyblackwell/imagi-oasis/internal/repository/mocks"
	"github.com/rileyblackwell/imagi-oasis/internal/service"
)

func setupConversationService(t *testing.T) (*service.ConversationService, *repo_mocks.MockRepository) {
	mockRepo := repo_mocks.NewMockRepository(t)
	return service.NewConversationService(mockRepo), mockRepo
}

func TestGetFullConversation(t *testing.T) {
	ctx := context.Background()
	svc, mockRepo := setupConversationService(t)

	now := time.Now().UTC()
	conv := &model.Conversation{ID: "conv-1", UserID: "user-1", CreatedAt: now, UpdatedAt: now}
	messages := []model.Message{
		{ID: "m-1", ConversationID: "conv-1", Role: model.RoleUser, Content: "hi", CreatedAt: now},
		{ID: "m-2", ConversationID: "conv-1", Role: model.RoleAssistant, Content: "hello", CreatedAt: now.Add(time.Millisecond)},
	}
	sp := &model.SystemPrompt{ID: "sp-1", ConversationID: "conv-1", Content: "You are helpful."}

	mockRepo.On("GetConversation", ctx, "conv-1").Return(conv, nil).Once()
	mockRepo.On("GetMessages", ctx, "conv-1").Return(messages, nil).Once()
	mockRepo.On("GetSystemPrompt", ctx, "conv-1").Return(sp, nil).Once()

	full, err := svc.GetFullConversation(ctx, "user-1", "conv-1")

	require.NoError(t, err)
	assert.Equal(t, "conv-1", full.ID)
	assert.Len(t, full.Messages, 2)
	require.NotNil(t, full.SystemPrompt)
	assert.Equal(t, "You are helpful.", full.SystemPrompt.Content)
}

func TestGetFullConversation_NoSystemPrompt(t *testing.T) {
	ctx := context.Background()
	svc, mockRepo := setupConversationService(t)

	conv := &model.Conversation{ID: "conv-1", UserID: "user-1"}
	mockRepo.On("GetConversation", ctx, "conv-1").Return(conv, nil).Once()
	mockRepo.On("GetMessages", ctx, "conv-1").Return([]model.Message{}, nil).Once()
	mockRepo.On("GetSystemPrompt", ctx, "conv-1").Return(nil, repository.ErrNotFound).Once()

	full, err := svc.GetFullConversation(ctx, "user-1", "conv-1")

	require.NoError(t, err)
	assert.Nil(t, full.SystemPrompt)
}

func TestGetFullConversation_WrongUser(t *testing.T) {
	ctx := context.Background()
	svc, mockRepo := setupConversationService(t)

	conv := &model.Conversation{ID: "conv-1", UserID: "user-1"}
	mockRepo.On("GetConversation", ctx, "conv-1").Return(conv, nil).Once()

	_, err := svc.GetFullConversation(ctx, "user-2", "conv-1")

	require.Error(t, err)
	assert.ErrorIs(t, err, app_errors.ErrNotFound)
}

func TestGetFullConversation_NotFound(t *testing.T) {
	ctx := context.Background()
	svc, mockRepo := setupConversationService(t)

	mockRepo.On("GetConversation", ctx, "missing").Return(nil, repository.ErrNotFound).Once()

	_, err := svc.GetFullConversation(ctx, "user-1", "missing")

	require.Error(t, err)
	assert.ErrorIs(t, err, app_errors.ErrNotFound)
}

func TestClearConversation(t *testing.T) {
	ctx := context.Background()
	svc, mockRepo := setupConversationService(t)

	conv := &model.Conversation{ID: "conv-1", UserID: "user-1"}
	mockRepo.On("GetConversation", ctx, "conv-1").Return(conv, nil).Once()
	mockRepo.On("ClearConversation", ctx, "conv-1").Return(nil).Once()

	require.NoError(t, svc.ClearConversation(ctx, "user-1", "conv-1"))
}

func TestDeleteConversation(t *testing.T) {
	ctx := context.Background()
	svc, mockRepo := setupConversationService(t)

	conv := &model.Conversation{ID: "conv-1", UserID: "user-1"}
	mockRepo.On("GetConversation", ctx, "conv-1").Return(conv, nil).Once()
	mockRepo.On("DeleteConversation", ctx, "conv-1").Return(nil).Once()

	require.NoError(t, svc.DeleteConversation(ctx, "user-1", "conv-1"))
}

func TestSetSystemPrompt(t *testing.T) {
	ctx := context.Background()
	svc, mockRepo := setupConversationService(t)

	conv := &model.Conversation{ID: "conv-1", UserID: "user-1"}
	mockRepo.On("GetConversation", ctx, "conv-1").Return(conv, nil).Once()
	mockRepo.On("UpsertSystemPrompt", ctx, "conv-1", "Be terse.").Return(nil).Once()

	require.NoError(t, svc.SetSystemPrompt(ctx, "user-1", "conv-1", "Be terse."))
}

func TestSetSystemPrompt_Empty(t *testing.T) {
	ctx := context.Background()
	svc, _ := setupConversationService(t)

	err := svc.SetSystemPrompt(ctx, "user-1", "conv-1", "  ")

	require.Error(t, err)
	assert.ErrorIs(t, err, app_errors.ErrValidation)
}

func TestListConversations(t *testing.T) {
	ctx := context.Background()
	svc, mockRepo := setupConversationService(t)

	expected := []*model.Conversation{{ID: "conv-1", UserID: "user-1"}}
	mockRepo.On("GetConversations", ctx, "user-1").Return(expected, nil).Once()

	got, err := svc.ListConversations(ctx, "user-1")

	require.NoError(t, err)
	assert.Equal(t, expected, got)
}
