package sessions

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	models "github.com/luxbin-chain/aurora/models"
	"github.com/luxbin-chain/aurora/stores"
)

func TestChatSocket_NonUpgradeRequest(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/ws/chat", Chat_Socket(&stubPipeline{}, nil))

	req := httptest.NewRequest("GET", "/ws/chat", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	// The upgrader has already answered; the handler must not write a
	// second response on top of it.
	if w.Code != http.StatusBadRequest {
		t.Fatalf("Expected the upgrader's 400, got %d", w.Code)
	}
	if strings.Contains(w.Body.String(), "{") {
		t.Errorf("Unexpected JSON appended to the upgrader's error: %s", w.Body.String())
	}
}

func TestToChatMessages_DecodesToolCalls(t *testing.T) {
	history := []stores.Message{
		{Role: "user", Content: "what's the lux price?"},
		{Role: "assistant", ToolCallsJSON: `[{"id":"call_1","name":"search_web","args":{"query":"lux price"}}]`},
		{Role: "tool", Content: "1. LUX up 10%", ToolCallID: "call_1"},
		{Role: "assistant", Content: "LUX is up 10%."},
	}

	conversation := toChatMessages(history)
	if len(conversation) != 4 {
		t.Fatalf("Expected 4 messages, got %d", len(conversation))
	}

	assistant := conversation[1]
	if len(assistant.Tool_Calls) != 1 {
		t.Fatalf("Tool calls not decoded: %+v", assistant)
	}
	if assistant.Tool_Calls[0].ID != "call_1" || assistant.Tool_Calls[0].Name != "search_web" {
		t.Errorf("Wrong tool call: %+v", assistant.Tool_Calls[0])
	}

	toolMsg := conversation[2]
	if toolMsg.Tool_Call_ID != "call_1" {
		t.Errorf("Tool call ID lost: %+v", toolMsg)
	}

	want := models.Chat_Message{Role: "assistant", Content: "LUX is up 10%."}
	if conversation[3].Role != want.Role || conversation[3].Content != want.Content {
		t.Errorf("Plain assistant message mangled: %+v", conversation[3])
	}
}
