package stores

import (
	"testing"
)

const sampleCalls = `[{"id":"call_1","name":"search_web","args":{"query":"lux token"}}]`

func userMsg() Message      { return Message{Role: "user", Content: "hi"} }
func assistantMsg() Message { return Message{Role: "assistant", Content: "hello"} }
func toolRequest() Message {
	return Message{Role: "assistant", ToolCallsJSON: sampleCalls}
}
func toolResult() Message {
	return Message{Role: "tool", Content: "1. Result", ToolCallID: "call_1"}
}

func TestSanitizeHistory_EmptyHistory(t *testing.T) {
	msgs := []Message{}
	result := SanitizeHistory(msgs)
	if len(result) != 0 {
		t.Errorf("Expected empty result, got %d messages", len(result))
	}
}

func TestSanitizeHistory_ValidHistory(t *testing.T) {
	msgs := []Message{
		userMsg(),
		assistantMsg(),
		userMsg(),
		toolRequest(),
		toolResult(),
		assistantMsg(),
	}
	result := SanitizeHistory(msgs)
	if len(result) != 6 {
		t.Errorf("Expected 6 messages, got %d", len(result))
	}
}

func TestSanitizeHistory_OrphanedToolResultAtStart(t *testing.T) {
	msgs := []Message{
		toolResult(), // orphaned - should be skipped
		assistantMsg(),
		userMsg(),
		assistantMsg(),
	}
	result := SanitizeHistory(msgs)
	if len(result) != 3 {
		t.Errorf("Expected 3 messages (skipping orphaned tool result), got %d", len(result))
	}
	if result[0].Role != "assistant" {
		t.Errorf("Expected first message to be assistant, got %s", result[0].Role)
	}
}

func TestSanitizeHistory_TruncatedMidToolCycle(t *testing.T) {
	// Simulates a FetchHistory window that starts in the middle of a
	// tool round trip
	msgs := []Message{
		toolRequest(), // orphaned - should be skipped
		toolResult(),  // orphaned - should be skipped
		userMsg(),     // valid start
		assistantMsg(),
	}
	result := SanitizeHistory(msgs)
	if len(result) != 2 {
		t.Errorf("Expected 2 messages (skipping orphaned tool cycle), got %d", len(result))
	}
	if result[0].Role != "user" {
		t.Errorf("Expected first message to be user, got %s", result[0].Role)
	}
}

func TestSanitizeHistory_IncompleteCycleAtEnd(t *testing.T) {
	// Simulates a provider timeout - tool request saved but no result
	msgs := []Message{
		userMsg(),
		assistantMsg(),
		userMsg(),
		toolRequest(), // incomplete - should be removed
	}
	result := SanitizeHistory(msgs)
	if len(result) != 3 {
		t.Errorf("Expected 3 messages (removing incomplete cycle), got %d", len(result))
	}
	if result[len(result)-1].Role != "user" {
		t.Errorf("Expected last message to be user, got %s", result[len(result)-1].Role)
	}
}

func TestSanitizeHistory_OnlyOrphanedMessages(t *testing.T) {
	// Entire history is corrupted
	msgs := []Message{
		toolResult(),
		toolRequest(),
	}
	result := SanitizeHistory(msgs)
	if len(result) != 0 {
		t.Errorf("Expected empty result for fully corrupted history, got %d messages", len(result))
	}
}

func TestSanitizeHistory_BackToBackCycles(t *testing.T) {
	// Tool result triggers another tool call
	msgs := []Message{
		userMsg(),
		toolRequest(),
		toolResult(),
		toolRequest(), // second cycle
		toolResult(),
		assistantMsg(),
	}
	result := SanitizeHistory(msgs)
	if len(result) != 6 {
		t.Errorf("Expected 6 messages, got %d", len(result))
	}
}

func TestDetectCorruptedHistory_Clean(t *testing.T) {
	msgs := []Message{
		userMsg(),
		assistantMsg(),
	}
	issues := DetectCorruptedHistory(msgs)
	if len(issues) != 0 {
		t.Errorf("Expected no issues for clean history, got: %v", issues)
	}
}

func TestDetectCorruptedHistory_OrphanedStart(t *testing.T) {
	msgs := []Message{
		toolResult(),
		assistantMsg(),
	}
	issues := DetectCorruptedHistory(msgs)
	if len(issues) == 0 {
		t.Error("Expected issues for orphaned tool result at start")
	}
}

func TestDetectCorruptedHistory_OrphanedRequestAtEnd(t *testing.T) {
	msgs := []Message{
		userMsg(),
		toolRequest(),
	}
	issues := DetectCorruptedHistory(msgs)
	if len(issues) == 0 {
		t.Error("Expected issues for orphaned tool request at end")
	}
}

func TestToolCallsOf(t *testing.T) {
	calls := ToolCallsOf(toolRequest())
	if len(calls) != 1 {
		t.Fatalf("Expected 1 decoded call, got %d", len(calls))
	}
	if calls[0]["name"] != "search_web" {
		t.Errorf("Expected search_web, got %v", calls[0]["name"])
	}
	if ToolCallsOf(assistantMsg()) != nil {
		t.Error("Expected nil calls for plain assistant message")
	}
}
