package openai

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
	OpenAIBaseURL = "https://api.openai.com/v1/chat/completions"
	DefaultModel  = "gpt-4o-mini"

	// Fixed sampling for general conversations.
	DefaultTemperature = 0.8
	DefaultMaxTokens   = 500

	requestTimeout = 60 * time.Second
)

func init() {
	// Load .env file if it exists (not present in production)
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}
}

// OpenAI_Model is a chat-completion client for the OpenAI API.
type OpenAI_Model struct {
	Model       string   // Model identifier (e.g., "gpt-4o-mini")
	Temperature *float64 // Optional: overrides the fixed default
	MaxTokens   *int     // Optional: overrides the fixed default
	BaseURL     string   // Optional: custom API base URL (defaults to OpenAI)
	APIKeyEnv   string   // Optional: env var name for API key (defaults to OPENAI_API_KEY)
}

// Name identifies this provider in response metadata.
func (o *OpenAI_Model) Name() string {
	return "openai-chatgpt"
}

// Model_ID returns the backend model identifier.
func (o *OpenAI_Model) Model_ID() string {
	if o.Model != "" {
		return o.Model
	}
	return DefaultModel
}

// Generate sends the conversation to the OpenAI API. Errors mean the provider
// is unavailable for this attempt; the caller decides what happens next.
func (o *OpenAI_Model) Generate(ctx context.Context, conversation []models.Chat_Message, tools []models.FunctionDeclaration) (models.Provider_Response, error) {
	if len(conversation) == 0 {
		return models.Provider_Response{}, fmt.Errorf("cannot generate with an empty conversation")
	}

	requestBody := o.createRequest(conversation, tools)

	jsonBytes, err := json.Marshal(requestBody)
	if err != nil {
		return models.Provider_Response{}, fmt.Errorf("failed to marshal request body: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()

	baseURL := o.BaseURL
	if baseURL == "" {
		baseURL = OpenAIBaseURL
	}

	req, err := http.NewRequestWithContext(ctx, "POST", baseURL, bytes.NewReader(jsonBytes))
	if err != nil {
		return models.Provider_Response{}, fmt.Errorf("failed to create HTTP request: %w", err)
	}
	o.setHeaders(req)

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
			return models.Provider_Response{}, fmt.Errorf("OpenAI API error: %s (type: %s)", errResp.Error.Message, errResp.Error.Type)
		}
		return models.Provider_Response{}, fmt.Errorf("OpenAI API error: status %d, body: %s", resp.StatusCode, string(body))
	}

	var response OpenAIResponse
	if err := json.Unmarshal(body, &response); err != nil {
		return models.Provider_Response{}, fmt.Errorf("failed to unmarshal response: %w", err)
	}

	return toProviderResponse(response), nil
}

// toProviderResponse converts an OpenAI response to the standard Provider_Response
func toProviderResponse(response OpenAIResponse) models.Provider_Response {
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

// createRequest builds the request body for the OpenAI API
func (o *OpenAI_Model) createRequest(conversation []models.Chat_Message, tools []models.FunctionDeclaration) OpenAIRequest {
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

	request := OpenAIRequest{
		Model:    o.Model_ID(),
		Messages: messages,
	}

	if len(tools) > 0 {
		request.Tools = ConvertToOpenAITools(tools)
		request.ToolChoice = "auto"
	}

	temperature := DefaultTemperature
	if o.Temperature != nil {
		temperature = *o.Temperature
	}
	request.Temperature = &temperature

	maxTokens := DefaultMaxTokens
	if o.MaxTokens != nil {
		maxTokens = *o.MaxTokens
	}
	request.MaxTokens = &maxTokens

	return request
}

// setHeaders sets the required headers for OpenAI API requests
func (o *OpenAI_Model) setHeaders(req *http.Request) {
	apiKeyEnv := o.APIKeyEnv
	if apiKeyEnv == "" {
		apiKeyEnv = "OPENAI_API_KEY"
	}
	apiKey := os.Getenv(apiKeyEnv)
	req.Header.Set("Authorization", "Bearer "+apiKey)
	req.Header.Set("Content-Type", "application/json")
}
