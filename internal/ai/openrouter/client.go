package openrouter

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"learnanything-backend/internal/ai"
	"learnanything-backend/internal/cache"
)

const (
	apiURL       = "https://openrouter.ai/api/v1/chat/completions"
	defaultModel = "google/gemini-2.5-flash"
	appTitle     = "LearnAnything"
)

// Client implements ai.Provider using the OpenRouter Chat Completions API.
type Client struct {
	apiKey     string
	model      string
	httpClient *http.Client
}

// NewClient constructs an OpenRouter client. The API key comes from
// OPENROUTER_API_KEY; without it every call fails, so fail construction.
func NewClient(model string) (*Client, error) {
	apiKey := strings.TrimSpace(os.Getenv("OPENROUTER_API_KEY"))
	if apiKey == "" {
		return nil, fmt.Errorf("OPENROUTER_API_KEY is required")
	}
	if strings.TrimSpace(model) == "" {
		model = defaultModel
	}
	timeout := 120 * time.Second
	if raw := strings.TrimSpace(os.Getenv("OPENROUTER_TIMEOUT_SECONDS")); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 {
			timeout = time.Duration(parsed) * time.Second
		}
	}
	return &Client{
		apiKey: apiKey,
		model:  model,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}, nil
}

// Name identifies the provider.
func (c *Client) Name() string { return "openrouter" }

type contentPart struct {
	Type string    `json:"type"`
	Text string    `json:"text,omitempty"`
	File *filePart `json:"file,omitempty"`
}

type filePart struct {
	Filename string `json:"filename"`
	FileData string `json:"file_data"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content any    `json:"content"`
}

type chatRequest struct {
	Model    string        `json:"model"`
	Messages []chatMessage `json:"messages"`
	Plugins  []any         `json:"plugins,omitempty"`
}

type chatResponse struct {
	ID      string `json:"id"`
	Model   string `json:"model"`
	Choices []struct {
		Message struct {
			Role    string `json:"role"`
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
		Code    int    `json:"code"`
	} `json:"error,omitempty"`
}

// GenerateQuiz generates a quiz from a document payload or text context.
func (c *Client) GenerateQuiz(ctx context.Context, input ai.GenerateQuizInput) (ai.GenerateQuizResult, error) {
	var (
		message chatMessage
		plugins []any
	)
	if input.Document != nil {
		prompt := ai.BuildQuizPrompt(input.NumQuestions, input.Difficulty, "")
		fileName := input.Document.FileName
		if fileName == "" {
			fileName = "document.pdf"
		}
		message = chatMessage{
			Role: "user",
			Content: []contentPart{
				{Type: "text", Text: prompt},
				{Type: "file", File: &filePart{
					Filename: fileName,
					FileData: cache.EncodeDataURL(input.Document.MediaType, input.Document.Data),
				}},
			},
		}
		plugins = []any{map[string]any{
			"id":  "file-parser",
			"pdf": map[string]any{"engine": "pdf-text"},
		}}
	} else {
		prompt := ai.BuildQuizPrompt(input.NumQuestions, input.Difficulty, input.Context)
		message = chatMessage{Role: "user", Content: prompt}
	}

	text, err := c.complete(ctx, []chatMessage{message}, plugins)
	if err != nil {
		return ai.GenerateQuizResult{}, err
	}
	return ai.ParseQuizJSON(text)
}

// GenerateStoryCards is not implemented for OpenRouter.
func (c *Client) GenerateStoryCards(ctx context.Context, input ai.GenerateStoryCardsInput) (ai.GenerateStoryCardsResult, error) {
	_ = ctx
	_ = input
	return ai.GenerateStoryCardsResult{}, ai.ErrNotImplemented
}

// GenerateSummary is not implemented for OpenRouter.
func (c *Client) GenerateSummary(ctx context.Context, input ai.GenerateSummaryInput) (string, error) {
	_ = ctx
	_ = input
	return "", ai.ErrNotImplemented
}

// GenerateEmbedding is not implemented for OpenRouter.
func (c *Client) GenerateEmbedding(ctx context.Context, input ai.GenerateEmbeddingInput) ([]float64, error) {
	_ = ctx
	_ = input
	return nil, ai.ErrNotImplemented
}

func (c *Client) complete(ctx context.Context, messages []chatMessage, plugins []any) (string, error) {
	reqBody := chatRequest{
		Model:    c.model,
		Messages: messages,
		Plugins:  plugins,
	}
	payload, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, apiURL, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Title", appTitle)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("openrouter request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("openrouter API error (%d): %s", resp.StatusCode, truncate(string(body), 512))
	}

	var parsed chatResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return "", fmt.Errorf("decode response: %w", err)
	}
	if parsed.Error != nil {
		return "", fmt.Errorf("openrouter API error: %s", parsed.Error.Message)
	}
	if len(parsed.Choices) == 0 || strings.TrimSpace(parsed.Choices[0].Message.Content) == "" {
		return "", fmt.Errorf("no content returned from OpenRouter")
	}
	return parsed.Choices[0].Message.Content, nil
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max]
}

var _ ai.Provider = (*Client)(nil)
