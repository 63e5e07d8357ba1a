package chain

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
)

// Conversation_Record is one chat turn submitted to the chain. Message text is
// stored as a SHA-256 hash, never in the clear.
type Conversation_Record struct {
	Conversation_ID string `json:"conversation_id"`
	Message_Index   int64  `json:"message_index"`
	Role            string `json:"role"`
	Message_Hash    string `json:"message_hash"`
	Timestamp       int64  `json:"timestamp"`
	Consciousness   string `json:"ai_consciousness,omitempty"`
	Photonic_Color  string `json:"photonic_color,omitempty"`
	Emotion         string `json:"emotion,omitempty"`
	Model           string `json:"model,omitempty"`
}

// Thread_Metadata accompanies a recorded conversation thread.
type Thread_Metadata struct {
	State   AI_State
	Emotion string
	Model   string
}

// Submit_Quantum_Operation submits a quantum operation extrinsic. Returns
// false on any failure; submission is best effort.
func (c *Client) Submit_Quantum_Operation(ctx context.Context, operation string, nvCenterID int) bool {
	payload := map[string]interface{}{
		"operation":    operation,
		"nv_center_id": nvCenterID,
	}
	encoded, err := encodeExtrinsic(payload)
	if err != nil {
		c.logger().Printf("Failed to encode quantum operation: %v", err)
		return false
	}

	_, err = c.call(ctx, submitTimeout, "author_submitExtrinsic", []interface{}{encoded})
	if err != nil {
		c.logger().Printf("Failed to submit quantum operation: %v", err)
		return false
	}
	return true
}

// Record_Conversation submits one conversation record and returns the tx hash.
func (c *Client) Record_Conversation(ctx context.Context, record Conversation_Record) (string, error) {
	encoded, err := encodeExtrinsic(record)
	if err != nil {
		return "", fmt.Errorf("failed to encode conversation record: %w", err)
	}

	result, err := c.call(ctx, submitTimeout, "author_submitExtrinsic", []interface{}{encoded})
	if err != nil {
		return "", err
	}

	var txHash string
	if err := json.Unmarshal(result, &txHash); err != nil {
		return "", fmt.Errorf("unexpected submit result: %w", err)
	}
	return txHash, nil
}

// Record_Conversation_Thread records a user message and the assistant's reply
// as two linked records. Recording is best effort: the first failure is
// returned for logging, the response to the user is never blocked on it.
func (c *Client) Record_Conversation_Thread(ctx context.Context, conversationID, userMessage, aiReply string, meta Thread_Metadata) error {
	timestamp := c.now().UnixMilli()

	_, err := c.Record_Conversation(ctx, Conversation_Record{
		Conversation_ID: conversationID,
		Message_Index:   timestamp,
		Role:            "user",
		Message_Hash:    Hash_Message(userMessage),
		Timestamp:       timestamp,
		Emotion:         meta.Emotion,
	})
	if err != nil {
		return err
	}

	_, err = c.Record_Conversation(ctx, Conversation_Record{
		Conversation_ID: conversationID,
		Message_Index:   timestamp + 1,
		Role:            "assistant",
		Message_Hash:    Hash_Message(aiReply),
		Timestamp:       timestamp + 1,
		Consciousness:   meta.State.Consciousness,
		Photonic_Color:  meta.State.Photonic.Color,
		Model:           meta.Model,
	})
	return err
}

// Hash_Message hashes message content for on-chain privacy.
func Hash_Message(message string) string {
	sum := sha256.Sum256([]byte(message))
	return hex.EncodeToString(sum[:])
}

// encodeExtrinsic hex-encodes a JSON payload for submission. SCALE encoding is
// pending on the node side; the pallet accepts hex-wrapped JSON until then.
func encodeExtrinsic(payload interface{}) (string, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return "", err
	}
	return "0x" + hex.EncodeToString(data), nil
}
