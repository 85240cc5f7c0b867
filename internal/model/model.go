package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Conversation stores metadata about one user's generation conversation.
// A conversation optionally belongs to a project; its pages and messages are
// exclusively owned by it and are destroyed with it.
type Conversation struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	ProjectID *string   `json:"project_id,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// SystemPrompt is the one-to-one system-role content for a conversation.
type SystemPrompt struct {
	ID             string    `json:"id"`
	ConversationID string    `json:"conversation_id"`
	Content        string    `json:"content"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// Page is a conversation-scoped handle to one generation target file
// (e.g. "index.html"). Unique per (conversation, filename); created on first
// reference. Its generation history is tracked independently for undo.
type Page struct {
	ID             string    `json:"id"`
	ConversationID string    `json:"conversation_id"`
	Filename       string    `json:"filename"`
	CreatedAt      time.Time `json:"created_at"`
}

// Message roles. Replay must reproduce creation order exactly.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
	RoleSystem    = "system"
)

// Message is a single role-tagged entry in a conversation, optionally scoped
// to a page. Append-only in normal operation; undo is the only mutator that
// deletes messages.
type Message struct {
	ID             string    `json:"id"`
	ConversationID string    `json:"conversation_id"`
	PageID         *string   `json:"page_id,omitempty"`
	Role           string    `json:"role"`
	Content        string    `json:"content"`
	CreatedAt      time.Time `json:"created_at"`
}

// FullConversation includes the conversation metadata and all its messages,
// in creation-time order.
type FullConversation struct {
	Conversation
	SystemPrompt *SystemPrompt `json:"system_prompt,omitempty"`
	Messages     []Message     `json:"messages"`
}

// CreditBalance is the single canonical per-user balance row.
type CreditBalance struct {
	UserID    string          `json:"user_id"`
	Balance   decimal.Decimal `json:"balance"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// ProjectFile is a transient snapshot of one project file used as prompt
// context. Never persisted; read from the filesystem at generation time.
type ProjectFile struct {
	Path    string `json:"path"`
	Content string `json:"content"`
	Type    string `json:"type"` // "html" or "css"
}

// GenerateResult is what the agent facade returns to its caller on success.
type GenerateResult struct {
	Response       string          `json:"response"`
	ConversationID string          `json:"conversation_id"`
	CreditsUsed    decimal.Decimal `json:"credits_used"`
}

// UndoResult reports the outcome of a single-level undo for one page.
// Content is nil when there is no prior version to restore.
type UndoResult struct {
	Content *string `json:"content,omitempty"`
	Message string  `json:"message"`
}
