package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

const anthropicVersion = "2023-06-01"

type anthropicClient struct {
	client  *http.Client
	baseURL string
	apiKey  string
}

// NewAnthropicClient returns a Client speaking the Anthropic messages API.
func NewAnthropicClient(baseURL, apiKey string, timeout time.Duration) Client {
	return &anthropicClient{
		client:  newHTTPClient(timeout),
		baseURL: baseURL,
		apiKey:  apiKey,
	}
}

type anthropicRequest struct {
	Model       string        `json:"model"`
	System      string        `json:"system,omitempty"`
	Messages    []ChatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
	MaxTokens   int           `json:"max_tokens"`
}

type anthropicResponse struct {
	Content []struct {
		Type string `json:"type"`
		Text string `json:"text"`
	} `json:"content"`
	Usage struct {
		OutputTokens int `json:"output_tokens"`
	} `json:"usage"`
	Error *struct {
		Type    string `json:"type"`
		Message string `json:"message"`
	} `json:"error"`
}

// Complete reshapes the prompt for Anthropic: the API takes exactly one
// system string and rejects inline system turns, so leading system messages
// are concatenated into the system field and the rest of the list is
// filtered down to user/assistant turns.
func (c *anthropicClient) Complete(ctx context.Context, req *GenerateRequest) (*GenerateResponse, error) {
	maxTokens := req.MaxTokens
	if maxTokens == 0 {
		maxTokens = DefaultMaxTokens
	}

	var system string
	turns := make([]ChatMessage, 0, len(req.Messages))
	for _, msg := range req.Messages {
		switch msg.Role {
		case RoleSystem:
			if system == "" {
				system = msg.Content
			} else {
				system += "\n\n" + msg.Content
			}
		case RoleUser, RoleAssistant:
			turns = append(turns, msg)
		}
	}

	payload := anthropicRequest{
		Model:       req.Model,
		System:      system,
		Messages:    turns,
		Temperature: req.Temperature,
		MaxTokens:   maxTokens,
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("could not marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/messages", bytes.NewBuffer(body))
	if err != nil {
		return nil, fmt.Errorf("could not create http request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("x-api-key", c.apiKey)
	httpReq.Header.Set("anthropic-version", anthropicVersion)

	resp, err := c.client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("http request failed: %w", err)
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("could not read response body: %w", err)
	}

	var parsed anthropicResponse
	if err := json.Unmarshal(bodyBytes, &parsed); err != nil {
		return nil, fmt.Errorf("could not decode response: %s", string(bodyBytes))
	}
	if resp.StatusCode != http.StatusOK {
		if parsed.Error != nil {
			return nil, fmt.Errorf("anthropic returned status %d: %s", resp.StatusCode, parsed.Error.Message)
		}
		return nil, fmt.Errorf("anthropic returned non-200 status %d: %s", resp.StatusCode, string(bodyBytes))
	}

	var text string
	for _, block := range parsed.Content {
		if block.Type == "text" {
			text += block.Text
		}
	}
	if text == "" {
		return nil, fmt.Errorf("anthropic response contained no usable text")
	}

	out := &GenerateResponse{Text: text}
	if parsed.Usage.OutputTokens > 0 {
		tokens := parsed.Usage.OutputTokens
		out.OutputTokens = &tokens
	}
	return out, nil
}
