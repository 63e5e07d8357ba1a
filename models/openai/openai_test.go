package openai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	models "github.com/luxbin-chain/aurora/models"
)

func TestGenerate_Defaults(t *testing.T) {
	var captured OpenAIRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer oa-key" {
			t.Errorf("Bad auth header: %q", got)
		}
		json.NewDecoder(r.Body).Decode(&captured)
		json.NewEncoder(w).Encode(OpenAIResponse{
			Choices: []Choice{{Message: Message{Role: "assistant", Content: "Hello there."}}},
		})
	}))
	defer server.Close()

	t.Setenv("OPENAI_API_KEY", "oa-key")
	model := &OpenAI_Model{BaseURL: server.URL}

	msgs := []models.Chat_Message{{Role: "user", Content: "hi"}}
	response, err := model.Generate(context.Background(), msgs, nil)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if captured.Model != DefaultModel {
		t.Errorf("Expected model %s, got %s", DefaultModel, captured.Model)
	}
	if captured.Temperature == nil || *captured.Temperature != DefaultTemperature {
		t.Errorf("Expected temperature %v, got %v", DefaultTemperature, captured.Temperature)
	}
	if captured.MaxTokens == nil || *captured.MaxTokens != DefaultMaxTokens {
		t.Errorf("Expected max tokens %d, got %v", DefaultMaxTokens, captured.MaxTokens)
	}
	if response.Text() != "Hello there." {
		t.Errorf("Wrong text: %q", response.Text())
	}
}

func TestGenerate_DecodesToolCalls(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(OpenAIResponse{
			Choices: []Choice{{Message: Message{
				Role: "assistant",
				ToolCalls: []ToolCall{{
					ID:   "call_7",
					Type: "function",
					Function: ToolCallFunction{
						Name:      "search_web",
						Arguments: `{"query":"luxbin chain"}`,
					},
				}},
			}}},
		})
	}))
	defer server.Close()

	t.Setenv("OPENAI_API_KEY", "oa-key")
	model := &OpenAI_Model{BaseURL: server.URL}

	tools := []models.FunctionDeclaration{{Name: "search_web", Parameters: models.Parameters{Type: "object"}}}
	msgs := []models.Chat_Message{{Role: "user", Content: "find luxbin"}}

	response, err := model.Generate(context.Background(), msgs, tools)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	calls := response.Function_Calls()
	if len(calls) != 1 {
		t.Fatalf("Expected 1 function call, got %d", len(calls))
	}
	if calls[0].ID != "call_7" || calls[0].Name != "search_web" {
		t.Errorf("Call not decoded: %+v", calls[0])
	}
	if calls[0].Args["query"] != "luxbin chain" {
		t.Errorf("Arguments not decoded: %+v", calls[0].Args)
	}
}

func TestGenerate_ErrorResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		json.NewEncoder(w).Encode(map[string]interface{}{
			"error": map[string]interface{}{"message": "Rate limit reached", "type": "rate_limit_error"},
		})
	}))
	defer server.Close()

	t.Setenv("OPENAI_API_KEY", "oa-key")
	model := &OpenAI_Model{BaseURL: server.URL}

	msgs := []models.Chat_Message{{Role: "user", Content: "hi"}}
	if _, err := model.Generate(context.Background(), msgs, nil); err == nil {
		t.Fatal("Expected error for 429 response")
	}
}
