package stores

import (
	"encoding/json"
	"log"
)

// isToolRequest reports whether a message is an assistant turn that
// requested tool execution.
func isToolRequest(msg Message) bool {
	return msg.Role == "assistant" && msg.ToolCallsJSON != "" && msg.ToolCallsJSON != "null" && msg.ToolCallsJSON != "[]"
}

// SanitizeHistory ensures stored history has a valid turn structure
// before it is replayed to a chat-completion API. Truncated FetchHistory
// windows can cut a tool round trip in half, which the provider APIs
// reject, so:
// - History always starts with a user message
// - Every assistant tool request is followed by its tool result
// - No orphaned tool results without a preceding tool request
func SanitizeHistory(msgs []Message) []Message {
	if len(msgs) == 0 {
		return msgs
	}

	startIdx := findValidStartIndex(msgs)
	if startIdx == -1 {
		// No valid starting point found - fall back to the most recent
		// user message to preserve at least some context
		for i := len(msgs) - 1; i >= 0; i-- {
			if msgs[i].Role == "user" {
				log.Printf("[HISTORY_SANITIZER] No valid start, using user message at index %d as fallback", i)
				return []Message{msgs[i]}
			}
		}
		log.Printf("[HISTORY_SANITIZER] No valid starting point found, returning empty history")
		return []Message{}
	}

	if startIdx > 0 {
		log.Printf("[HISTORY_SANITIZER] Skipping first %d messages to find valid start (was role: %s)", startIdx, msgs[0].Role)
		msgs = msgs[startIdx:]
	}

	sanitized := sanitizeToolCycles(msgs)

	if len(sanitized) != len(msgs) {
		log.Printf("[HISTORY_SANITIZER] Removed %d messages with broken tool cycles", len(msgs)-len(sanitized))
	}

	return sanitized
}

// findValidStartIndex finds the first message that is a valid
// conversation start: a user message, or a plain assistant message.
// Tool requests and tool results at the beginning are orphans left by
// truncation and get skipped.
func findValidStartIndex(msgs []Message) int {
	for i, msg := range msgs {
		switch {
		case msg.Role == "user":
			return i
		case msg.Role == "assistant" && !isToolRequest(msg):
			return i
		case isToolRequest(msg), msg.Role == "tool":
			continue
		default:
			// Unknown role, try to use it
			return i
		}
	}
	return -1
}

// sanitizeToolCycles walks through messages and ensures tool round
// trips are complete. A tool request without its result is removed, and
// a tool result without a preceding request is removed.
func sanitizeToolCycles(msgs []Message) []Message {
	if len(msgs) == 0 {
		return msgs
	}

	result := make([]Message, 0, len(msgs))
	i := 0

	for i < len(msgs) {
		msg := msgs[i]

		switch {
		case isToolRequest(msg):
			cycleStart := i
			cycleMessages, nextIdx, valid := collectCompleteCycle(msgs, i)
			if valid {
				result = append(result, cycleMessages...)
			} else {
				log.Printf("[HISTORY_SANITIZER] Removing incomplete tool cycle at index %d (tool request without result)", cycleStart)
			}
			i = nextIdx

		case msg.Role == "tool":
			// Orphaned tool result without a preceding request
			log.Printf("[HISTORY_SANITIZER] Removing orphaned tool result at index %d", i)
			i++

		default:
			// Plain user and assistant messages are always valid
			result = append(result, msg)
			i++
		}
	}

	return result
}

// collectCompleteCycle collects a tool round trip starting from a tool
// request: one or more assistant tool requests followed by their tool
// results. Returns the cycle messages, the index to continue from, and
// whether the cycle is complete.
func collectCompleteCycle(msgs []Message, startIdx int) ([]Message, int, bool) {
	cycleMessages := []Message{}
	responseCount := 0
	i := startIdx

	for i < len(msgs) && isToolRequest(msgs[i]) {
		cycleMessages = append(cycleMessages, msgs[i])
		i++
	}

	for i < len(msgs) && msgs[i].Role == "tool" {
		cycleMessages = append(cycleMessages, msgs[i])
		responseCount++
		i++
	}

	if responseCount == 0 {
		return nil, i, false
	}

	return cycleMessages, i, true
}

// DetectCorruptedHistory checks if the history has issues that would
// cause API errors. Returns a list of issues found (empty if clean).
func DetectCorruptedHistory(msgs []Message) []string {
	issues := []string{}

	if len(msgs) == 0 {
		return issues
	}

	if msgs[0].Role == "tool" {
		issues = append(issues, "History starts with a tool result (orphaned)")
	}
	if isToolRequest(msgs[0]) {
		issues = append(issues, "History starts with a tool request (truncated mid-cycle)")
	}

	pendingRequests := 0
	for _, msg := range msgs {
		switch {
		case isToolRequest(msg):
			pendingRequests++
		case msg.Role == "tool":
			if pendingRequests > 0 {
				pendingRequests--
			} else {
				issues = append(issues, "Tool result without preceding tool request")
			}
		}
	}

	if pendingRequests > 0 {
		issues = append(issues, "Orphaned tool request(s) without results at end of history")
	}

	for i := 1; i < len(msgs); i++ {
		if msgs[i-1].Role == "user" && msgs[i].Role == "user" {
			issues = append(issues, "Two consecutive user messages")
		}
	}

	return issues
}

// ToolCallsOf decodes the tool calls stored on an assistant message.
// Returns nil for plain messages or undecodable JSON.
func ToolCallsOf(msg Message) []map[string]interface{} {
	if !isToolRequest(msg) {
		return nil
	}
	var calls []map[string]interface{}
	if err := json.Unmarshal([]byte(msg.ToolCallsJSON), &calls); err != nil {
		log.Printf("[HISTORY_SANITIZER] Undecodable tool calls on message %d: %v", msg.ID, err)
		return nil
	}
	return calls
}
