package anthropic

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	DefaultBaseURL    = "https://api.anthropic.com/v1/messages"
	DefaultAPIVersion = "2023-06-01"
	DefaultModel      = "claude-3-sonnet-20240229"
	DefaultMaxTokens  = 2000

	requestTimeout = 90 * time.Second
)

func init() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}
}

// Anthropic_Model is a Messages API client used for one-shot completions,
// primarily smart contract generation.
type Anthropic_Model struct {
	Model     string
	MaxTokens int
	BaseURL   string // Optional: custom API endpoint
	APIKeyEnv string // Optional: env var name for API key (defaults to ANTHROPIC_API_KEY)
}

// Model_ID returns the backend model identifier.
func (a *Anthropic_Model) Model_ID() string {
	if a.Model != "" {
		return a.Model
	}
	return DefaultModel
}

// Complete sends a single user prompt and returns the concatenated text reply.
func (a *Anthropic_Model) Complete(ctx context.Context, prompt string) (string, error) {
	maxTokens := a.MaxTokens
	if maxTokens == 0 {
		maxTokens = DefaultMaxTokens
	}

	requestBody := AnthropicRequest{
		Model:     a.Model_ID(),
		MaxTokens: maxTokens,
		Messages:  []Message{{Role: "user", Content: prompt}},
	}

	jsonBytes, err := json.Marshal(requestBody)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request body: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()

	baseURL := a.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	req, err := http.NewRequestWithContext(ctx, "POST", baseURL, bytes.NewReader(jsonBytes))
	if err != nil {
		return "", fmt.Errorf("failed to create HTTP request: %w", err)
	}

	apiKeyEnv := a.APIKeyEnv
	if apiKeyEnv == "" {
		apiKeyEnv = "ANTHROPIC_API_KEY"
	}
	req.Header.Set("x-api-key", os.Getenv(apiKeyEnv))
	req.Header.Set("anthropic-version", DefaultAPIVersion)
	req.Header.Set("Content-Type", "application/json")

	client := &http.Client{}
	resp, err := client.Do(req)
	if err != nil {
		return "", fmt.Errorf("HTTP request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		var errResp ErrorResponse
		if err := json.Unmarshal(body, &errResp); err == nil && errResp.Error.Message != "" {
			return "", fmt.Errorf("Anthropic API error: %s (type: %s)", errResp.Error.Message, errResp.Error.Type)
		}
		return "", fmt.Errorf("Anthropic API error: status %d, body: %s", resp.StatusCode, string(body))
	}

	var response AnthropicResponse
	if err := json.Unmarshal(body, &response); err != nil {
		return "", fmt.Errorf("failed to unmarshal response: %w", err)
	}

	var text strings.Builder
	for _, block := range response.Content {
		if block.Type == "text" {
			text.WriteString(block.Text)
		}
	}
	if text.Len() == 0 {
		return "", fmt.Errorf("no text content in Anthropic response")
	}

	return text.String(), nil
}
