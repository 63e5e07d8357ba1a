package aurora

import (
	"log"

	models "github.com/luxbin-chain/aurora/models"
)

// Select_Tool_Call picks which requested tool call actually runs. The
// pipeline executes at most one tool per provider attempt: the first
// call in the reply wins and the rest are logged and dropped.
func Select_Tool_Call(calls []models.FunctionCall) *models.FunctionCall {
	if len(calls) == 0 {
		return nil
	}
	if len(calls) > 1 {
		log.Printf("[PIPELINE] Provider requested %d tool calls, executing only %q", len(calls), calls[0].Name)
	}
	return &calls[0]
}
