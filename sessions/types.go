package sessions

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	aurora "github.com/luxbin-chain/aurora"
	models "github.com/luxbin-chain/aurora/models"
	"github.com/luxbin-chain/aurora/stores"
)

// PipelineInterface is what a session needs from the response pipeline.
type PipelineInterface interface {
	Respond(ctx context.Context, request models.Chat_Request) (aurora.Chat_Result, error)
}

// WebSocketWriter handles all WebSocket communication
type WebSocketWriter struct {
	Conn      *websocket.Conn
	Logger    *log.Logger
	StartTime time.Time
	mu        sync.Mutex
}

func (w *WebSocketWriter) WriteResponse(resp interface{}) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if !w.StartTime.IsZero() {
		w.Logger.Printf("Response ready after %v", time.Since(w.StartTime))
		w.StartTime = time.Time{}
	}
	return w.Conn.WriteJSON(resp)
}

func (w *WebSocketWriter) WriteError(message string) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.Conn.WriteJSON(map[string]string{"error": message})
}

func (w *WebSocketWriter) WriteDone() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.Conn.WriteJSON(map[string]string{"type": "done"})
}

// ChatSession encapsulates one WebSocket conversation. The server owns
// the history: each incoming message is appended to the store and the
// whole sanitized conversation is replayed through the pipeline.
type ChatSession struct {
	Pipeline  PipelineInterface
	SessionID string
	Writer    *WebSocketWriter
	Store     stores.MessageStore
	Logger    *log.Logger
}

// HTTPSession handles one stateless HTTP chat interaction
type HTTPSession struct {
	Pipeline       PipelineInterface
	ConversationID string
	Store          stores.MessageStore
	Logger         *log.Logger
}

// WSInboundMessage is what the WebSocket client sends per turn
type WSInboundMessage struct {
	Message     string `json:"message"`
	CharacterID string `json:"character_id,omitempty"`
}
