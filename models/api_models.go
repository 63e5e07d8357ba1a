package models

// Chat_Metadata describes how a reply was produced. It is attached to every
// chat response regardless of which branch generated the content.
type Chat_Metadata struct {
	Emotion_Detected string `json:"emotion_detected"`
	Model            string `json:"model"`
	Personality      string `json:"personality,omitempty"`
	Web_Search_Used  bool   `json:"web_search_used"`
	Conversation_ID  string `json:"conversation_id"`
	On_Chain         bool   `json:"on_chain"`
	Contract_Code    string `json:"contract_code,omitempty"`
	Image_URL        string `json:"image_url,omitempty"`
}
