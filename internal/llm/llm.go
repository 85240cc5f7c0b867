package llm

import (
	"context"
	"net/http"
	"time"
)

// Message roles as they appear on the wire for both vendors.
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// ChatMessage is one role-tagged turn in the ordered prompt.
type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// GenerateRequest is a vendor-neutral completion request. The dispatcher
// shapes it into the concrete vendor payload.
type GenerateRequest struct {
	Model       string
	Messages    []ChatMessage
	Temperature float64
	MaxTokens   int
}

// GenerateResponse carries the raw text reply and, when the vendor reports
// it, the number of output tokens. An empty Text never reaches callers: the
// clients treat it as a hard failure.
type GenerateResponse struct {
	Text         string
	OutputTokens *int
}

// Client is the interface a single vendor adapter implements.
type Client interface {
	Complete(ctx context.Context, req *GenerateRequest) (*GenerateResponse, error)
}

// DefaultMaxTokens is applied when the caller leaves MaxTokens unset.
const DefaultMaxTokens = 4096

func newHTTPClient(timeout time.Duration) *http.Client {
	return &http.Client{Timeout: timeout}
}
