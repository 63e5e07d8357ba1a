package sessions

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	aurora "github.com/luxbin-chain/aurora"
	models "github.com/luxbin-chain/aurora/models"
)

type stubPipeline struct {
	result   aurora.Chat_Result
	err      error
	requests []models.Chat_Request
}

func (s *stubPipeline) Respond(ctx context.Context, request models.Chat_Request) (aurora.Chat_Result, error) {
	s.requests = append(s.requests, request)
	if s.err != nil {
		return aurora.Chat_Result{}, s.err
	}
	return s.result, nil
}

func chatRouter(pipeline PipelineInterface) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.POST("/api/chat", Chat_Handler(pipeline, nil))
	router.GET("/api/knowledge", Knowledge_Handler(nil))
	router.GET("/api/health", Health_Handler(nil))
	return router
}

func postChat(t *testing.T, router *gin.Engine, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest("POST", "/api/chat", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestChatHandler_EmptyMessages(t *testing.T) {
	pipeline := &stubPipeline{}
	router := chatRouter(pipeline)

	for _, body := range []string{`{}`, `{"messages":[]}`, `not json`} {
		w := postChat(t, router, body)
		if w.Code != http.StatusBadRequest {
			t.Errorf("Body %q: expected 400, got %d", body, w.Code)
		}
	}
	if len(pipeline.requests) != 0 {
		t.Error("Pipeline must not run for invalid requests")
	}
}

func TestChatHandler_EmptyContentStillAnswered(t *testing.T) {
	pipeline := &stubPipeline{
		result: aurora.Chat_Result{Reply: "Hello! I'm Aurora.", Source: "fallback"},
	}
	router := chatRouter(pipeline)

	w := postChat(t, router, `{"messages":[{"role":"user","content":""}]}`)
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200 for a non-empty message sequence, got %d: %s", w.Code, w.Body.String())
	}
	if len(pipeline.requests) != 1 {
		t.Fatalf("Expected one pipeline call, got %d", len(pipeline.requests))
	}
}

func TestChatHandler_Success(t *testing.T) {
	pipeline := &stubPipeline{
		result: aurora.Chat_Result{
			Reply:  "Hello! How can I help?",
			Source: "openai-chatgpt",
			Metadata: models.Chat_Metadata{
				Emotion_Detected: "neutral",
				Model:            "gpt-4o-mini",
				Conversation_ID:  "conv_1",
			},
		},
	}
	router := chatRouter(pipeline)

	w := postChat(t, router, `{"messages":[{"role":"user","content":"hello"}]}`)
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var result aurora.Chat_Result
	if err := json.Unmarshal(w.Body.Bytes(), &result); err != nil {
		t.Fatalf("Unparseable response: %v", err)
	}
	if result.Reply != "Hello! How can I help?" {
		t.Errorf("Wrong reply: %q", result.Reply)
	}
	if result.Source != "openai-chatgpt" {
		t.Errorf("Wrong source: %q", result.Source)
	}
	if result.Metadata.Conversation_ID != "conv_1" {
		t.Errorf("Metadata missing: %+v", result.Metadata)
	}

	if len(pipeline.requests) != 1 {
		t.Fatalf("Expected one pipeline call, got %d", len(pipeline.requests))
	}
	if got := models.Latest_User_Content(pipeline.requests[0].Messages); got != "hello" {
		t.Errorf("Pipeline received wrong message: %q", got)
	}
}

func TestChatHandler_PipelineError(t *testing.T) {
	pipeline := &stubPipeline{err: errors.New("everything is on fire")}
	router := chatRouter(pipeline)

	w := postChat(t, router, `{"messages":[{"role":"user","content":"hello"}]}`)
	if w.Code != http.StatusInternalServerError {
		t.Fatalf("Expected 500, got %d", w.Code)
	}
	if strings.Contains(w.Body.String(), "on fire") {
		t.Error("Internal error details must not leak to the client")
	}
}

func TestChatHandler_PassesCharacterID(t *testing.T) {
	pipeline := &stubPipeline{}
	router := chatRouter(pipeline)

	w := postChat(t, router, `{"messages":[{"role":"user","content":"hi"}],"character_id":"nova"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", w.Code)
	}
	if pipeline.requests[0].Character_ID != "nova" {
		t.Errorf("Character ID not forwarded: %q", pipeline.requests[0].Character_ID)
	}
}

func TestKnowledgeHandler_NoStore(t *testing.T) {
	router := chatRouter(&stubPipeline{})

	req := httptest.NewRequest("GET", "/api/knowledge", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", w.Code)
	}

	var body struct {
		Total int `json:"total"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("Unparseable response: %v", err)
	}
	if body.Total != 0 {
		t.Errorf("Expected empty knowledge, got total=%d", body.Total)
	}
}

func TestHealthHandler_NoStore(t *testing.T) {
	router := chatRouter(&stubPipeline{})

	req := httptest.NewRequest("GET", "/api/health", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", w.Code)
	}
}
