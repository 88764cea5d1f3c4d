package cortex

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"ml-discovery-be/internal/pkg/apperror"
	"ml-discovery-be/pkg/llm"
)

// CortexProvider calls the Snowflake Cortex REST inference API
// (POST /api/v2/cortex/inference:complete) with a programmatic access token.
type CortexProvider struct {
	AccountURL string
	Token      string
	ModelName  string
	Client     *http.Client
}

var _ llm.LLMProvider = &CortexProvider{}

func NewCortexProvider(accountURL, token, modelName string) *CortexProvider {
	return &CortexProvider{
		AccountURL: accountURL,
		Token:      token,
		ModelName:  modelName,
		Client: &http.Client{
			Timeout: 120 * time.Second,
		},
	}
}

type cortexMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type cortexCompleteRequest struct {
	Model       string          `json:"model"`
	Messages    []cortexMessage `json:"messages"`
	Temperature float64         `json:"temperature,omitempty"`
	MaxTokens   int             `json:"max_tokens,omitempty"`
	Stream      bool            `json:"stream"`
}

type cortexCompleteResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

func (c *CortexProvider) Chat(ctx context.Context, history []llm.Message, opts ...llm.Option) (string, error) {
	options := &llm.Options{}
	for _, opt := range opts {
		opt(options)
	}

	messages := make([]cortexMessage, len(history))
	for i, msg := range history {
		role := msg.Role
		if role == "model" {
			role = "assistant"
		}
		messages[i] = cortexMessage{Role: role, Content: msg.Content}
	}

	model := c.ModelName
	if options.Model != "" {
		model = options.Model
	}

	reqPayload := cortexCompleteRequest{
		Model:       model,
		Messages:    messages,
		Temperature: options.Temperature,
		Stream:      false,
	}
	if options.MaxTokens > 0 {
		reqPayload.MaxTokens = options.MaxTokens
	}

	payloadBytes, err := json.Marshal(reqPayload)
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	url := c.AccountURL + "/api/v2/cortex/inference:complete"
	req, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewBuffer(payloadBytes))
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.Token)

	resp, err := c.Client.Do(req)
	if err != nil {
		return "", apperror.Wrap(apperror.KindServiceUnavailable, "cortex request failed", err)
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", apperror.Wrap(apperror.KindServiceUnavailable, "read cortex response", err)
	}

	switch {
	case resp.StatusCode == http.StatusOK:
	case resp.StatusCode == http.StatusTooManyRequests:
		return "", apperror.New(apperror.KindRateLimited, "cortex throttled the request")
	case resp.StatusCode >= 500:
		return "", apperror.New(apperror.KindServiceUnavailable,
			fmt.Sprintf("cortex unavailable: status %d", resp.StatusCode))
	default:
		return "", apperror.New(apperror.KindGenerationError,
			fmt.Sprintf("cortex error: status %d, body: %s", resp.StatusCode, string(bodyBytes)))
	}

	var cortexResp cortexCompleteResponse
	if err := json.Unmarshal(bodyBytes, &cortexResp); err != nil {
		return "", apperror.Wrap(apperror.KindGenerationError, "unmarshal cortex response", err)
	}
	if len(cortexResp.Choices) == 0 {
		return "", apperror.New(apperror.KindGenerationError, "cortex returned no choices")
	}

	return cortexResp.Choices[0].Message.Content, nil
}

func (c *CortexProvider) Generate(ctx context.Context, prompt string, opts ...llm.Option) (string, error) {
	return c.Chat(ctx, []llm.Message{{Role: "user", Content: prompt}}, opts...)
}
