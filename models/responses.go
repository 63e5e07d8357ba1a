package models

import "strings"

// Provider_Response is what a provider attempt yields: text content, tool
// invocation requests, or both.

type Provider_Response struct {
	Parts []Model_Part `json:"parts"`
}

type FunctionCall struct {
	ID   string                 `json:"id,omitempty"` // Unique ID for this specific call instance
	Name string                 `json:"name"`
	Args map[string]interface{} `json:"args"`
}

type Model_Part struct {
	Text         *string       `json:"text,omitempty"`
	FunctionCall *FunctionCall `json:"functionCall,omitempty"`
}

// Text concatenates all text parts of the response.
func (r Provider_Response) Text() string {
	var b strings.Builder
	for _, part := range r.Parts {
		if part.Text != nil {
			b.WriteString(*part.Text)
		}
	}
	return b.String()
}

// Function_Calls returns the tool invocation requests in the order the
// provider produced them.
func (r Provider_Response) Function_Calls() []FunctionCall {
	var calls []FunctionCall
	for _, part := range r.Parts {
		if part.FunctionCall != nil {
			calls = append(calls, *part.FunctionCall)
		}
	}
	return calls
}
