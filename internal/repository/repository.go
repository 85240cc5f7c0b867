package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/rileyblackwell/imagi-oasis/internal/model"
)

// CreditDebit describes the conditional balance deduction that must commit
// atomically with a message exchange. A nil *CreditDebit on AppendExchange
// means the exchange is free (system-prompt seeding and the like).
type CreditDebit struct {
	UserID string
	Amount decimal.Decimal
}

// Repository defines the interface for data storage operations.
// This interface makes it easy to switch database implementations.
type Repository interface {
	CreateConversation(ctx context.Context, conv *model.Conversation) error
	GetConversation(ctx context.Context, conversationID string) (*model.Conversation, error)
	GetConversations(ctx context.Context, userID string) ([]*model.Conversation, error)
	DeleteConversation(ctx context.Context, conversationID string) error
	// ClearConversation deletes the conversation's messages and pages but
	// keeps the conversation row itself.
	ClearConversation(ctx context.Context, conversationID string) error

	UpsertSystemPrompt(ctx context.Context, conversationID, content string) error
	GetSystemPrompt(ctx context.Context, conversationID string) (*model.SystemPrompt, error)

	GetOrCreatePage(ctx context.Context, conversationID, filename string) (*model.Page, error)
	GetPage(ctx context.Context, conversationID, filename string) (*model.Page, error)

	// GetMessages returns a conversation's messages ordered strictly by
	// creation time (timestamp order, not insertion order).
	GetMessages(ctx context.Context, conversationID string) ([]model.Message, error)

	// AppendExchange persists the user and assistant messages of one
	// generation and, when debit is non-nil, deducts the balance — all in a
	// single transaction. The deduction is conditional on sufficient funds;
	// on a shortfall nothing is written and ErrInsufficientCredits is
	// returned.
	AppendExchange(ctx context.Context, conversationID string, userMsg, assistantMsg *model.Message, debit *CreditDebit) error

	// Undo support: latest assistant message for a page, its paired user
	// message, and hard deletion of exactly that pair.
	GetLatestAssistantMessage(ctx context.Context, pageID string) (*model.Message, error)
	GetLatestUserMessageBefore(ctx context.Context, pageID string, before time.Time) (*model.Message, error)
	DeleteMessages(ctx context.Context, messageIDs []string) error

	GetBalance(ctx context.Context, userID string) (decimal.Decimal, error)
	GrantCredits(ctx context.Context, userID string, amount decimal.Decimal) error
}
