package grok

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/joho/godotenv"
	models "github.com/luxbin-chain/aurora/models"
)

const (
	GrokBaseURL  = "https://api.x.ai/v1/chat/completions"
	DefaultModel = "grok-beta"

	// Sampling is fixed for this deployment: Grok handles the expressive,
	// creative conversations and runs hot.
	DefaultTemperature = 0.9
	DefaultMaxTokens   = 600

	requestTimeout = 60 * time.Second
)

func init() {
	// Load .env file if it exists (not present in production)
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}
}

// Grok_Model is a chat-completion client for the xAI API. Configuration is
// read-only after construction.
type Grok_Model struct {
	Model       string   // Model identifier (e.g., "grok-beta")
	Temperature *float64 // Optional: overrides the fixed default
	MaxTokens   *int     // Optional: overrides the fixed default
	BaseURL     string   // Optional: custom API base URL (defaults to xAI)
	APIKeyEnv   string   // Optional: env var name for API key (defaults to GROK_API_KEY)
}

// Name identifies this provider in response metadata.
func (g *Grok_Model) Name() string {
	return "grok-enhanced"
}

// Model_ID returns the backend model identifier.
func (g *Grok_Model) Model_ID() string {
	if g.Model != "" {
		return g.Model
	}
	return DefaultModel
}

// Generate sends the conversation to the xAI API. Any transport, auth, or
// payload failure is returned as an error; the orchestrator treats that as
// "provider unavailable" and moves on.
func (g *Grok_Model) Generate(ctx context.Context, conversation []models.Chat_Message, tools []models.FunctionDeclaration) (models.Provider_Response, error) {
	if len(conversation) == 0 {
		return models.Provider_Response{}, fmt.Errorf("cannot generate with an empty conversation")
	}

	requestBody := g.createRequest(conversation, tools)

	jsonBytes, err := json.Marshal(requestBody)
	if err != nil {
		return models.Provider_Response{}, fmt.Errorf("failed to marshal request body: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()

	baseURL := g.BaseURL
	if baseURL == "" {
		baseURL = GrokBaseURL
	}

	req, err := http.NewRequestWithContext(ctx, "POST", baseURL, bytes.NewReader(jsonBytes))
	if err != nil {
		return models.Provider_Response{}, fmt.Errorf("failed to create HTTP request: %w", err)
	}
	g.setHeaders(req)

	client := &http.Client{}
	resp, err := client.Do(req)
	if err != nil {
		return models.Provider_Response{}, fmt.Errorf("HTTP request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return models.Provider_Response{}, fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		var errResp ErrorResponse
		if err := json.Unmarshal(body, &errResp); err == nil && errResp.Error.Message != "" {
			return models.Provider_Response{}, fmt.Errorf("xAI API error: %s (type: %s)", errResp.Error.Message, errResp.Error.Type)
		}
		return models.Provider_Response{}, fmt.Errorf("xAI API error: status %d, body: %s", resp.StatusCode, string(body))
	}

	var response GrokResponse
	if err := json.Unmarshal(body, &response); err != nil {
		return models.Provider_Response{}, fmt.Errorf("failed to unmarshal response: %w", err)
	}

	return toProviderResponse(response), nil
}

// toProviderResponse converts an xAI response to the standard Provider_Response
func toProviderResponse(response GrokResponse) models.Provider_Response {
	providerResponse := models.Provider_Response{}

	for _, choice := range response.Choices {
		if choice.Message.Content != "" {
			text := choice.Message.Content
			providerResponse.Parts = append(providerResponse.Parts, models.Model_Part{
				Text: &text,
			})
		}

		for _, toolCall := range choice.Message.ToolCalls {
			if toolCall.Type != "function" {
				continue
			}
			var args map[string]interface{}
			if err := json.Unmarshal([]byte(toolCall.Function.Arguments), &args); err != nil {
				log.Printf("Warning: Failed to unmarshal tool call arguments: %v", err)
				args = map[string]interface{}{}
			}
			providerResponse.Parts = append(providerResponse.Parts, models.Model_Part{
				FunctionCall: &models.FunctionCall{
					ID:   toolCall.ID,
					Name: toolCall.Function.Name,
					Args: args,
				},
			})
		}
	}

	return providerResponse
}

// createRequest builds the request body for the xAI API
func (g *Grok_Model) createRequest(conversation []models.Chat_Message, tools []models.FunctionDeclaration) GrokRequest {
	messages := make([]Message, 0, len(conversation))
	for _, m := range conversation {
		msg := Message{
			Role:    m.Role,
			Content: m.Content,
		}
		for _, tc := range m.Tool_Calls {
			argsBytes, _ := json.Marshal(tc.Args)
			msg.ToolCalls = append(msg.ToolCalls, ToolCall{
				ID:   tc.ID,
				Type: "function",
				Function: ToolCallFunction{
					Name:      tc.Name,
					Arguments: string(argsBytes),
				},
			})
		}
		if m.Tool_Call_ID != "" {
			toolCallID := m.Tool_Call_ID
			msg.ToolCallID = &toolCallID
		}
		messages = append(messages, msg)
	}

	request := GrokRequest{
		Model:    g.Model_ID(),
		Messages: messages,
	}

	if len(tools) > 0 {
		request.Tools = ConvertToGrokTools(tools)
		request.ToolChoice = "auto"
	}

	temperature := DefaultTemperature
	if g.Temperature != nil {
		temperature = *g.Temperature
	}
	request.Temperature = &temperature

	maxTokens := DefaultMaxTokens
	if g.MaxTokens != nil {
		maxTokens = *g.MaxTokens
	}
	request.MaxTokens = &maxTokens

	return request
}

// setHeaders sets the required headers for xAI API requests
func (g *Grok_Model) setHeaders(req *http.Request) {
	apiKeyEnv := g.APIKeyEnv
	if apiKeyEnv == "" {
		apiKeyEnv = "GROK_API_KEY"
	}
	apiKey := os.Getenv(apiKeyEnv)
	req.Header.Set("Authorization", "Bearer "+apiKey)
	req.Header.Set("Content-Type", "application/json")
}
