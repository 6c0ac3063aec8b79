package gemini

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"learnanything-backend/internal/ai"
)

const (
	baseURL      = "https://generativelanguage.googleapis.com/v1beta/models"
	defaultModel = "gemini-2.0-flash"
)

// Client implements ai.Provider using the Gemini generateContent API.
type Client struct {
	apiKey     string
	model      string
	httpClient *http.Client
}

// NewClient constructs a Gemini client. The API key comes from
// GEMINI_API_KEY; without it every call fails, so fail construction.
func NewClient(model string) (*Client, error) {
	apiKey := strings.TrimSpace(os.Getenv("GEMINI_API_KEY"))
	if apiKey == "" {
		return nil, fmt.Errorf("GEMINI_API_KEY is required")
	}
	if strings.TrimSpace(model) == "" {
		model = defaultModel
	}
	timeout := 120 * time.Second
	if raw := strings.TrimSpace(os.Getenv("GEMINI_TIMEOUT_SECONDS")); raw != "" {
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
func (c *Client) Name() string { return "gemini" }

type part struct {
	Text       string      `json:"text,omitempty"`
	InlineData *inlineData `json:"inline_data,omitempty"`
}

type inlineData struct {
	MimeType string `json:"mime_type"`
	Data     string `json:"data"`
}

type generateRequest struct {
	Contents []struct {
		Parts []part `json:"parts"`
	} `json:"contents"`
	GenerationConfig *generationConfig `json:"generationConfig,omitempty"`
}

type generationConfig struct {
	ResponseMimeType string `json:"responseMimeType,omitempty"`
}

type generateResponse struct {
	Candidates []struct {
		Content struct {
			Parts []struct {
				Text string `json:"text"`
			} `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
	Error *struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

// GenerateQuiz generates a quiz from a document payload or text context.
func (c *Client) GenerateQuiz(ctx context.Context, input ai.GenerateQuizInput) (ai.GenerateQuizResult, error) {
	var parts []part
	if input.Document != nil {
		prompt := ai.BuildQuizPrompt(input.NumQuestions, input.Difficulty, "")
		parts = []part{
			{InlineData: &inlineData{
				MimeType: input.Document.MediaType,
				Data:     base64.StdEncoding.EncodeToString(input.Document.Data),
			}},
			{Text: prompt},
		}
	} else {
		parts = []part{{Text: ai.BuildQuizPrompt(input.NumQuestions, input.Difficulty, input.Context)}}
	}

	text, err := c.generate(ctx, parts, true)
	if err != nil {
		return ai.GenerateQuizResult{}, err
	}
	return ai.ParseQuizJSON(text)
}

// GenerateStoryCards is not implemented for Gemini.
func (c *Client) GenerateStoryCards(ctx context.Context, input ai.GenerateStoryCardsInput) (ai.GenerateStoryCardsResult, error) {
	_ = ctx
	_ = input
	return ai.GenerateStoryCardsResult{}, ai.ErrNotImplemented
}

// GenerateSummary is not implemented for Gemini.
func (c *Client) GenerateSummary(ctx context.Context, input ai.GenerateSummaryInput) (string, error) {
	_ = ctx
	_ = input
	return "", ai.ErrNotImplemented
}

// GenerateEmbedding is not implemented for Gemini.
func (c *Client) GenerateEmbedding(ctx context.Context, input ai.GenerateEmbeddingInput) ([]float64, error) {
	_ = ctx
	_ = input
	return nil, ai.ErrNotImplemented
}

func (c *Client) generate(ctx context.Context, parts []part, jsonMode bool) (string, error) {
	var reqBody generateRequest
	reqBody.Contents = make([]struct {
		Parts []part `json:"parts"`
	}, 1)
	reqBody.Contents[0].Parts = parts
	if jsonMode {
		reqBody.GenerationConfig = &generationConfig{ResponseMimeType: "application/json"}
	}

	payload, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	endpoint := fmt.Sprintf("%s/%s:generateContent?key=%s", baseURL, c.model, url.QueryEscape(c.apiKey))
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("gemini request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("gemini API error (%d): %s", resp.StatusCode, truncate(string(body), 512))
	}

	var parsed generateResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return "", fmt.Errorf("decode response: %w", err)
	}
	if parsed.Error != nil {
		return "", fmt.Errorf("gemini API error: %s", parsed.Error.Message)
	}
	if len(parsed.Candidates) == 0 || len(parsed.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("no content returned from Gemini")
	}
	text := parsed.Candidates[0].Content.Parts[0].Text
	if strings.TrimSpace(text) == "" {
		return "", fmt.Errorf("no content returned from Gemini")
	}
	return text, nil
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max]
}

var _ ai.Provider = (*Client)(nil)
