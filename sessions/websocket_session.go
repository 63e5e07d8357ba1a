package sessions

import (
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	models "github.com/luxbin-chain/aurora/models"
	"github.com/luxbin-chain/aurora/stores"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// historyWindow bounds how much stored history is replayed per turn.
const historyWindow = 40

// Chat_Socket is the GET /ws/chat handler. Each connection is one
// conversation: the server keeps the history and replays it through the
// pipeline for every incoming message.
func Chat_Socket(pipeline PipelineInterface, store stores.MessageStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		// Upgrade writes its own HTTP error response on failure.
		conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			log.Printf("[WS] Upgrade failed: %v", err)
			return
		}
		defer conn.Close()

		sessionID := uuid.New().String()
		session := NewChatSession(sessionID, conn, pipeline, store)
		session.Logger.Printf("WebSocket session started")

		session.Run(c)
	}
}

// Run reads inbound messages until the connection closes.
func (cs *ChatSession) Run(c *gin.Context) {
	for {
		_, payload, err := cs.Writer.Conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				cs.Logger.Printf("Unexpected close: %v", err)
			}
			return
		}

		var inbound WSInboundMessage
		if err := json.Unmarshal(payload, &inbound); err != nil || inbound.Message == "" {
			cs.Writer.WriteError("Message is required")
			continue
		}

		if err := cs.RunInteraction(c, inbound); err != nil {
			cs.Logger.Printf("Interaction error: %v", err)
			cs.Writer.WriteError("Internal server error")
		}
	}
}

// RunInteraction handles one turn: history replay, pipeline call,
// response write.
func (cs *ChatSession) RunInteraction(c *gin.Context, inbound WSInboundMessage) error {
	cs.Writer.StartTime = time.Now()

	conversation := cs.fetchConversation()
	conversation = append(conversation, models.Chat_Message{Role: "user", Content: inbound.Message})

	request := models.Chat_Request{
		Messages:        conversation,
		Character_ID:    inbound.CharacterID,
		Conversation_ID: cs.SessionID,
	}

	result, err := cs.Pipeline.Respond(c.Request.Context(), request)
	if err != nil {
		return err
	}

	if err := cs.Writer.WriteResponse(result); err != nil {
		return err
	}
	return cs.Writer.WriteDone()
}

// fetchConversation loads the sanitized stored history as chat messages.
func (cs *ChatSession) fetchConversation() []models.Chat_Message {
	if cs.Store == nil {
		return nil
	}

	history, err := cs.Store.FetchHistory(cs.SessionID, historyWindow)
	if err != nil {
		cs.Logger.Printf("Error fetching history: %v", err)
		return nil
	}

	return toChatMessages(stores.SanitizeHistory(history))
}

// toChatMessages converts stored rows back into conversation messages.
func toChatMessages(history []stores.Message) []models.Chat_Message {
	conversation := make([]models.Chat_Message, 0, len(history))
	for _, msg := range history {
		chatMsg := models.Chat_Message{
			Role:         msg.Role,
			Content:      msg.Content,
			Tool_Call_ID: msg.ToolCallID,
		}
		if msg.ToolCallsJSON != "" {
			var calls []models.FunctionCall
			if err := json.Unmarshal([]byte(msg.ToolCallsJSON), &calls); err == nil {
				chatMsg.Tool_Calls = calls
			}
		}
		conversation = append(conversation, chatMsg)
	}
	return conversation
}
