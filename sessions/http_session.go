package sessions

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	models "github.com/luxbin-chain/aurora/models"
	"github.com/luxbin-chain/aurora/stores"
)

// RunSingleInteraction handles a complete request-response cycle: the
// request is validated, run through the pipeline, and the result
// returned. The pipeline persists the turn under this session's
// conversation ID.
func (s *HTTPSession) RunSingleInteraction(c *gin.Context, request models.Chat_Request) {
	if len(request.Messages) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Messages are required"})
		return
	}

	request.Conversation_ID = s.ConversationID

	result, err := s.Pipeline.Respond(c.Request.Context(), request)
	if err != nil {
		s.Logger.Printf("Pipeline error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	s.Logger.Printf("Replied via %s (emotion: %s, web search: %t)",
		result.Source, result.Metadata.Emotion_Detected, result.Metadata.Web_Search_Used)
	c.JSON(http.StatusOK, result)
}

// GetChatHistory returns the sanitized stored history for this session's
// conversation.
func (s *HTTPSession) GetChatHistory(limit int) ([]stores.Message, error) {
	if s.Store == nil {
		return nil, fmt.Errorf("no store configured")
	}
	history, err := s.Store.FetchHistory(s.ConversationID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch history: %w", err)
	}
	return stores.SanitizeHistory(history), nil
}

// Chat_Handler is the POST /api/chat handler.
func Chat_Handler(pipeline PipelineInterface, store stores.MessageStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		var request models.Chat_Request
		if err := c.ShouldBindJSON(&request); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Messages are required"})
			return
		}

		session := NewHTTPSession(request.Conversation_ID, pipeline, store)
		session.RunSingleInteraction(c, request)
	}
}

// History_Handler is the GET /api/chat/:conversationID/history handler.
func History_Handler(pipeline PipelineInterface, store stores.MessageStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		conversationID := c.Param("conversationID")
		session := NewHTTPSession(conversationID, pipeline, store)

		history, err := session.GetChatHistory(0)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch history"})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"conversation_id": conversationID,
			"messages":        history,
		})
	}
}

// Knowledge_Handler is the GET /api/knowledge handler: everything the
// assistant has autonomously learned, newest first, plus the set of
// categories seen.
func Knowledge_Handler(store stores.MessageStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		if store == nil {
			c.JSON(http.StatusOK, gin.H{"knowledge": []stores.Knowledge{}, "categories": []string{}, "total": 0})
			return
		}

		limit := 0
		if raw := c.Query("limit"); raw != "" {
			if n, err := strconv.Atoi(raw); err == nil && n > 0 {
				limit = n
			}
		}

		knowledge, err := store.RecentKnowledge(limit)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch knowledge"})
			return
		}

		seen := map[string]bool{}
		categories := []string{}
		for _, entry := range knowledge {
			if entry.Category != "" && !seen[entry.Category] {
				seen[entry.Category] = true
				categories = append(categories, entry.Category)
			}
		}

		c.JSON(http.StatusOK, gin.H{
			"knowledge":  knowledge,
			"categories": categories,
			"total":      len(knowledge),
		})
	}
}

// Health_Handler reports store connectivity.
func Health_Handler(store stores.MessageStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		status := gin.H{"status": "ok"}
		if store != nil {
			if err := store.Ping(); err != nil {
				status["status"] = "degraded"
				status["store"] = err.Error()
				c.JSON(http.StatusServiceUnavailable, status)
				return
			}
		}
		c.JSON(http.StatusOK, status)
	}
}

// RegisterRoutes wires the chat API onto a gin router.
func RegisterRoutes(router *gin.Engine, pipeline PipelineInterface, store stores.MessageStore) {
	api := router.Group("/api")
	api.POST("/chat", Chat_Handler(pipeline, store))
	api.GET("/chat/:conversationID/history", History_Handler(pipeline, store))
	api.GET("/knowledge", Knowledge_Handler(store))
	api.GET("/health", Health_Handler(store))

	router.GET("/ws/chat", Chat_Socket(pipeline, store))
}
