package stores

import (
	"gorm.io/gorm"
)

// Message is one chat turn within a conversation. Tool round trips are
// stored too: an assistant row carrying ToolCallsJSON is the tool
// request, and the following "tool" row holds the formatted result.
type Message struct {
	gorm.Model
	ConversationID string `gorm:"index;not null"`
	Sequence       int    `gorm:"not null"`
	Role           string `gorm:"not null"` // "user", "assistant", "tool"
	Content        string `gorm:"type:text"`
	// ToolCallsJSON stores the JSON marshaled tool calls an assistant
	// message requested, empty for plain messages.
	ToolCallsJSON string `gorm:"type:json"`
	// ToolCallID links a "tool" row back to the call it answers.
	ToolCallID string `gorm:"index"`
}

// Conversation holds metadata for a chat conversation
type Conversation struct {
	gorm.Model
	ConversationID string    `gorm:"uniqueIndex;not null"`
	Title          string    `gorm:"type:text"`
	MessageCount   int       `gorm:"default:0"`
	Messages       []Message `gorm:"foreignKey:ConversationID;references:ConversationID"`
}

// ConversationInfo holds basic conversation metadata for listing
type ConversationInfo struct {
	ConversationID string
	Title          string
	MessageCount   int
	CreatedAt      string
	UpdatedAt      string
}

// Knowledge is one autonomously learned entry. Content holds the JSON
// the learner synthesized ({topic, insights, keyFacts, category}).
type Knowledge struct {
	gorm.Model
	Topic      string `gorm:"index;not null"`
	Category   string `gorm:"index"`
	Content    string `gorm:"type:text"`
	Source     string
	Confidence float64 `gorm:"default:0"`
}

// MessageStore interface for abstracting database operations
type MessageStore interface {
	// Message operations
	SaveMessage(conversationID, role, content, toolCallsJSON, toolCallID string) error
	FetchHistory(conversationID string, limit int) ([]Message, error)

	// Conversation operations
	CreateConversation(convoID string) error
	ListConversations() ([]ConversationInfo, error)

	// Learned knowledge operations
	SaveKnowledge(entry Knowledge) error
	RecentKnowledge(limit int) ([]Knowledge, error)

	// Connection management
	Connect() error
	Close() error

	// Health check
	Ping() error
}

// StoreConfig holds configuration for database stores
type StoreConfig struct {
	Type       string            `json:"type"`       // "sqlite", "postgres"
	Connection string            `json:"connection"` // connection string
	Options    map[string]string `json:"options"`    // additional options
}

// NewStoreConfig creates a new store configuration
func NewStoreConfig(storeType, connection string) *StoreConfig {
	return &StoreConfig{
		Type:       storeType,
		Connection: connection,
		Options:    make(map[string]string),
	}
}

// WithOption adds an option to the store configuration
func (c *StoreConfig) WithOption(key, value string) *StoreConfig {
	c.Options[key] = value
	return c
}
