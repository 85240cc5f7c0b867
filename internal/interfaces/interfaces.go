package interfaces

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/rileyblackwell/imagi-oasis/internal/model"
	"github.com/rileyblackwell/imagi-oasis/internal/service"
)

// This file defines the interfaces for our core services.
// Depending on these interfaces, instead of concrete implementations, allows for
// decoupling (e.g., API layer from Service layer) and easier testing via mocking.

// GenerationService defines the contract for the generation pipeline: one
// turn through credit gate, prompt assembly, vendor dispatch, validation and
// persistence, plus the per-file undo.
type GenerationService interface {
	Generate(ctx context.Context, req *service.GenerateRequest) (*model.GenerateResult, error)
	Undo(ctx context.Context, userID, conversationID, filename, projectID string) (*model.UndoResult, error)
}

// ConversationService defines the contract for conversation lifecycle logic.
type ConversationService interface {
	ListConversations(ctx context.Context, userID string) ([]*model.Conversation, error)
	GetFullConversation(ctx context.Context, userID, conversationID string) (*model.FullConversation, error)
	ClearConversation(ctx context.Context, userID, conversationID string) error
	DeleteConversation(ctx context.Context, userID, conversationID string) error
	SetSystemPrompt(ctx context.Context, userID, conversationID, content string) error
}

// CreditLedger defines the contract for balance reads and grants. Deductions
// never go through this interface; they ride inside the generation pipeline's
// exchange transaction.
type CreditLedger interface {
	Balance(ctx context.Context, userID string) (decimal.Decimal, error)
	Grant(ctx context.Context, userID string, amount decimal.Decimal) error
}
