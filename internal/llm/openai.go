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

type openAIClient struct {
	client  *http.Client
	baseURL string
	apiKey  string
}

// NewOpenAIClient returns a Client speaking the OpenAI chat/completions API.
// The base URL is injectable so tests can point it at a local server.
func NewOpenAIClient(baseURL, apiKey string, timeout time.Duration) Client {
	return &openAIClient{
		client:  newHTTPClient(timeout),
		baseURL: baseURL,
		apiKey:  apiKey,
	}
}

type openAIRequest struct {
	Model       string        `json:"model"`
	Messages    []ChatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
	MaxTokens   int           `json:"max_tokens"`
}

type openAIResponse struct {
	Choices []struct {
		Message      ChatMessage `json:"message"`
		FinishReason string      `json:"finish_reason"`
	} `json:"choices"`
	Usage struct {
		CompletionTokens int `json:"completion_tokens"`
	} `json:"usage"`
	Error *struct {
		Message string `json:"message"`
		Type    string `json:"type"`
	} `json:"error"`
}

// Complete sends the message list as-is: the OpenAI API accepts inline
// system turns, so no reshaping is needed.
func (c *openAIClient) Complete(ctx context.Context, req *GenerateRequest) (*GenerateResponse, error) {
	maxTokens := req.MaxTokens
	if maxTokens == 0 {
		maxTokens = DefaultMaxTokens
	}
	payload := openAIRequest{
		Model:       req.Model,
		Messages:    req.Messages,
		Temperature: req.Temperature,
		MaxTokens:   maxTokens,
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("could not marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/chat/completions", bytes.NewBuffer(body))
	if err != nil {
		return nil, fmt.Errorf("could not create http request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("http request failed: %w", err)
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("could not read response body: %w", err)
	}

	var parsed openAIResponse
	if err := json.Unmarshal(bodyBytes, &parsed); err != nil {
		return nil, fmt.Errorf("could not decode response: %s", string(bodyBytes))
	}
	if resp.StatusCode != http.StatusOK {
		if parsed.Error != nil {
			return nil, fmt.Errorf("openai returned status %d: %s", resp.StatusCode, parsed.Error.Message)
		}
		return nil, fmt.Errorf("openai returned non-200 status %d: %s", resp.StatusCode, string(bodyBytes))
	}

	if len(parsed.Choices) == 0 || parsed.Choices[0].Message.Content == "" {
		// No usable text is a hard failure, not an empty success.
		return nil, fmt.Errorf("openai response contained no usable text")
	}

	out := &GenerateResponse{Text: parsed.Choices[0].Message.Content}
	if parsed.Usage.CompletionTokens > 0 {
		tokens := parsed.Usage.CompletionTokens
		out.OutputTokens = &tokens
	}
	return out, nil
}
