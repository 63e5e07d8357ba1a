package models

// Chat_Message is a single turn in a conversation. Order is conversation order
// and must be preserved verbatim when the conversation is re-sent to a provider.
type Chat_Message struct {
	Role         string         `json:"role"` // "system", "user", "assistant", "tool"
	Content      string         `json:"content"`
	Tool_Calls   []FunctionCall `json:"tool_calls,omitempty"`   // assistant messages requesting tools
	Tool_Call_ID string         `json:"tool_call_id,omitempty"` // tool messages only, matches the request ID
}

// Chat_Request is the body of the chat endpoint. Conversation_ID is
// optional; a request without one starts a fresh conversation.
type Chat_Request struct {
	Messages        []Chat_Message `json:"messages"`
	Character_ID    string         `json:"character_id,omitempty"`
	Conversation_ID string         `json:"conversation_id,omitempty"`
}

// Latest_User_Content returns the content of the last user message, or the last
// message's content when no user message exists.
func Latest_User_Content(messages []Chat_Message) string {
	for i := len(messages) - 1; i >= 0; i-- {
		if messages[i].Role == "user" {
			return messages[i].Content
		}
	}
	if len(messages) > 0 {
		return messages[len(messages)-1].Content
	}
	return ""
}
