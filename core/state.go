package core

// Thought is one extracted reasoning step of the chain-of-thought loop.
type Thought struct {
	Thought   string   `json:"thought"`
	Reasoning string   `json:"reasoning,omitempty"`
	Plan      []string `json:"plan,omitempty"`
}

// Action records a tool selection parsed from model output.
type Action struct {
	Tool      string         `json:"tool"`
	ToolInput map[string]any `json:"tool_input"`
}

// Observation records a tool result fed back into the conversation.
type Observation struct {
	Content   string     `json:"content"`
	ToolCalls []ToolCall `json:"tool_calls,omitempty"`
}

// State accumulates the parsed reasoning trace of a chain-of-thought run.
// It exists purely for introspection and logging; the loop's correctness does
// not depend on it. A fresh State is built per run.
type State struct {
	Thoughts     []Thought     `json:"thoughts"`
	Observations []Observation `json:"observations"`
	Actions      []Action      `json:"actions"`
	FinalAnswer  string        `json:"final_answer,omitempty"`
}

// AddThought appends a reasoning step to the trace.
func (s *State) AddThought(t Thought) { s.Thoughts = append(s.Thoughts, t) }

// AddAction appends a parsed action to the trace.
func (s *State) AddAction(a Action) { s.Actions = append(s.Actions, a) }

// AddObservation appends a tool result to the trace.
func (s *State) AddObservation(o Observation) { s.Observations = append(s.Observations, o) }
