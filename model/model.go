package model

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/reagent-dev/reagent/core"
)

// ToolDefinition declaratively exposes a callable function to the model.
type ToolDefinition struct {
	Type     string             `json:"type"` // "function"
	Function FunctionDefinition `json:"function"`
}

// FunctionDefinition describes an individual function (tool) exposed to the
// model. Parameters is a JSON Schema object (minimal subset expected).
type FunctionDefinition struct {
	Name        string         `json:"name"`
	Description string         `json:"description"`
	Parameters  map[string]any `json:"parameters"`
}

// Request captures the normalized model input produced by agent loops.
type Request struct {
	Messages []core.Message   `json:"messages"`
	Tools    []ToolDefinition `json:"tools,omitempty"`
	Stream   bool             `json:"stream,omitempty"`
}

// ToolCallDelta is one incremental piece of a function call emitted during
// streaming. The first delta for an index establishes id and name; later
// deltas for the same index append Arguments text. Arguments is a JSON text
// fragment, not a parsed object, and must be fully reassembled by the
// consumer before parsing.
type ToolCallDelta struct {
	Index     int64  `json:"index"`
	ID        string `json:"id,omitempty"`
	Name      string `json:"name,omitempty"`
	Arguments string `json:"arguments,omitempty"`
}

// TokenUsage captures token usage statistics for a response.
type TokenUsage struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`
}

// Response is one fragment of a model generation.
//
// Streaming adapters emit a sequence of partial responses (Text holds a text
// delta, ToolCallDeltas holds indexed partial tool calls) terminated by a
// final response whose FinishReason is set. Non-streaming adapters emit a
// single final response carrying the full Text and any complete tool calls
// as deltas. Consumers aggregate deltas either way.
type Response struct {
	Partial        bool            `json:"partial"`
	Text           string          `json:"text,omitempty"`
	ToolCallDeltas []ToolCallDelta `json:"tool_call_deltas,omitempty"`
	FinishReason   string          `json:"finish_reason,omitempty"`
	Usage          *TokenUsage     `json:"usage,omitempty"`
}

// Info contains metadata about a model implementation.
type Info struct {
	Name          string `json:"name"`
	Provider      string `json:"provider"`
	SupportsTools bool   `json:"supports_tools"`
}

// Model is the minimal interface required by agent loops to drive generation.
// Generate returns a finite, one-shot fragment channel plus an error channel;
// both are closed when the round's response is complete.
type Model interface {
	Generate(ctx context.Context, req Request) (<-chan Response, <-chan error)

	// Info returns information about the model implementation.
	Info() Info
}

// MockModel is a lightweight in-memory Model useful for tests. Each call to
// Generate consumes the next scripted turn; when the script is exhausted it
// falls back to a canned echo of the last user message.
type MockModel struct {
	info     Info
	turns    [][]Response
	errs     []error
	requests []Request
}

// NewMockModel constructs a MockModel with basic tool support enabled.
func NewMockModel(name, provider string) *MockModel {
	return &MockModel{
		info: Info{Name: name, Provider: provider, SupportsTools: true},
	}
}

// AddTextTurn scripts a turn producing a single final text response.
func (m *MockModel) AddTextTurn(text string) {
	m.turns = append(m.turns, []Response{{Text: text, FinishReason: "stop"}})
	m.errs = append(m.errs, nil)
}

// AddTurn scripts a turn emitting the given responses in order.
func (m *MockModel) AddTurn(responses ...Response) {
	m.turns = append(m.turns, responses)
	m.errs = append(m.errs, nil)
}

// AddErrorTurn scripts a turn that fails with err after emitting nothing.
func (m *MockModel) AddErrorTurn(err error) {
	m.turns = append(m.turns, nil)
	m.errs = append(m.errs, err)
}

// AddToolCallTurn scripts a streamed turn that requests a single tool call,
// delivering the serialized arguments split across the given fragments.
func (m *MockModel) AddToolCallTurn(name string, argFragments ...string) {
	id := "call_" + uuid.NewString()[:8]
	responses := []Response{{Partial: true, ToolCallDeltas: []ToolCallDelta{{Index: 0, ID: id, Name: name}}}}
	for _, frag := range argFragments {
		responses = append(responses, Response{
			Partial:        true,
			ToolCallDeltas: []ToolCallDelta{{Index: 0, Arguments: frag}},
		})
	}
	responses = append(responses, Response{FinishReason: "tool_calls"})
	m.turns = append(m.turns, responses)
	m.errs = append(m.errs, nil)
}

// Calls reports how many times Generate has been invoked.
func (m *MockModel) Calls() int { return len(m.requests) }

// Requests returns the recorded requests for assertions.
func (m *MockModel) Requests() []Request { return m.requests }

// Generate implements Model; replays the next scripted turn.
func (m *MockModel) Generate(ctx context.Context, req Request) (<-chan Response, <-chan error) {
	respCh := make(chan Response, 16)
	errCh := make(chan error, 1)

	turn := len(m.requests)
	m.requests = append(m.requests, req)

	var responses []Response
	var scriptedErr error
	if turn < len(m.turns) {
		responses = m.turns[turn]
		scriptedErr = m.errs[turn]
	} else {
		responses = []Response{{Text: fmt.Sprintf("Mock response to: %s", lastUserText(req)), FinishReason: "stop"}}
	}

	go func() {
		defer close(respCh)
		defer close(errCh)
		if ctx.Err() != nil {
			errCh <- ctx.Err()
			return
		}
		if scriptedErr != nil {
			errCh <- scriptedErr
			return
		}
		for _, r := range responses {
			select {
			case <-ctx.Done():
				errCh <- ctx.Err()
				return
			case respCh <- r:
			}
		}
	}()

	return respCh, errCh
}

// Info implements Model.
func (m *MockModel) Info() Info { return m.info }

func lastUserText(req Request) string {
	for i := len(req.Messages) - 1; i >= 0; i-- {
		if req.Messages[i].Role == core.RoleUser {
			return req.Messages[i].Content
		}
	}
	return ""
}
