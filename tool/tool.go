// Package tool implements the function calling subsystem that lets agent
// loops invoke structured capabilities (calculations, lookups) with schema
// described arguments and consistent, recoverable error handling.
package tool

import (
	"context"
	"fmt"
)

// Tool defines a named capability an agent can invoke.
//
// Tool implementations should:
//   - Provide clear, descriptive names and descriptions
//   - Define a proper JSON schema for parameters
//   - Handle errors gracefully and never panic out of Call
//   - Be stateless after construction so a single instance can be reused
//     across independent runs
type Tool interface {
	// Name returns the unique identifier used for lookup and for function
	// call declarations sent to the model. Matching is exact and
	// case-sensitive.
	Name() string

	// Description returns a human-readable description provided to the LLM
	// to help it decide when to use the tool.
	Description() string

	// Parameters returns a JSON-Schema-like object describing the expected
	// arguments. It is embedded into the system prompt and declared to
	// models that support native function calling.
	Parameters() map[string]any

	// Call executes the tool with already-decoded arguments and returns a
	// textual result for the conversation.
	Call(ctx context.Context, args map[string]any) (string, error)
}

// Error represents a failure during tool execution. Message carries the
// user-visible text fed back into the conversation; Code categorizes the
// failure for logging.
type Error struct {
	Tool    string `json:"tool"`
	Message string `json:"message"`
	Code    string `json:"code"`
}

func (e *Error) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("tool error [%s] in %s: %s", e.Code, e.Tool, e.Message)
	}
	return fmt.Sprintf("tool error in %s: %s", e.Tool, e.Message)
}

// NewError creates an Error with the specified details.
func NewError(tool, message, code string) *Error {
	return &Error{Tool: tool, Message: message, Code: code}
}
