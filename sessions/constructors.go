package sessions

import (
	"fmt"
	"log"
	"os"

	"github.com/gorilla/websocket"

	"github.com/luxbin-chain/aurora/stores"
)

// NewChatSession creates a new WebSocket chat session
func NewChatSession(sessionID string, conn *websocket.Conn, pipeline PipelineInterface, store stores.MessageStore) *ChatSession {
	logger := log.New(os.Stdout, fmt.Sprintf("[WS %s] ", sessionID), log.LstdFlags)
	writer := &WebSocketWriter{
		Conn:   conn,
		Logger: logger,
	}

	return &ChatSession{
		Pipeline:  pipeline,
		SessionID: sessionID,
		Writer:    writer,
		Store:     store,
		Logger:    logger,
	}
}

// NewHTTPSession creates a new HTTP session
func NewHTTPSession(conversationID string, pipeline PipelineInterface, store stores.MessageStore) *HTTPSession {
	logger := log.New(os.Stdout, fmt.Sprintf("[HTTP %s] ", conversationID), log.LstdFlags)

	return &HTTPSession{
		Pipeline:       pipeline,
		ConversationID: conversationID,
		Store:          store,
		Logger:         logger,
	}
}
