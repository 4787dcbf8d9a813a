package core

// Role identifies the author of a conversation message.
type Role string

// Conversation roles in the protocol ordering sent to a model provider.
const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
	RoleTool      Role = "tool"
)

// ToolCall is a function invocation requested by the model, in wire form.
// Arguments stays a serialized JSON string until dispatch time because
// streaming providers deliver it as progressively concatenated fragments.
type ToolCall struct {
	ID        string `json:"id,omitempty"`
	Name      string `json:"name"`
	Arguments string `json:"arguments,omitempty"`
}

// Message is one role-tagged turn of the conversation.
//
// ToolCalls is populated only on assistant messages that request function
// execution; ToolCallID and Name are populated only on tool-role messages
// carrying a function result back to the model.
type Message struct {
	Role       Role       `json:"role"`
	Content    string     `json:"content,omitempty"`
	ToolCalls  []ToolCall `json:"tool_calls,omitempty"`
	ToolCallID string     `json:"tool_call_id,omitempty"`
	Name       string     `json:"name,omitempty"`
}

// SystemMessage builds a system-role message.
func SystemMessage(text string) Message { return Message{Role: RoleSystem, Content: text} }

// UserMessage builds a user-role message.
func UserMessage(text string) Message { return Message{Role: RoleUser, Content: text} }

// AssistantMessage builds an assistant-role text message.
func AssistantMessage(text string) Message { return Message{Role: RoleAssistant, Content: text} }

// AssistantToolCalls builds an assistant message carrying tool call requests
// with no textual content.
func AssistantToolCalls(calls []ToolCall) Message {
	return Message{Role: RoleAssistant, ToolCalls: calls}
}

// ToolMessage builds a tool-role message carrying a function result.
func ToolMessage(callID, name, result string) Message {
	return Message{Role: RoleTool, ToolCallID: callID, Name: name, Content: result}
}

// Conversation is the ordered, append-only log of messages exchanged with the
// model during a single query. It is created (or Reset) at the start of a run
// and discarded between independent queries; it is not safe for concurrent
// use, matching the single-consumer loop design.
type Conversation struct {
	messages []Message
}

// NewConversation returns an empty conversation log.
func NewConversation() *Conversation { return &Conversation{} }

// Append adds messages to the end of the log.
func (c *Conversation) Append(msgs ...Message) { c.messages = append(c.messages, msgs...) }

// Messages returns a copy of the log for safe iteration and transport.
func (c *Conversation) Messages() []Message {
	out := make([]Message, len(c.messages))
	copy(out, c.messages)
	return out
}

// Len returns the number of messages in the log.
func (c *Conversation) Len() int { return len(c.messages) }

// Reset discards all messages, leaving no residue from a prior query.
func (c *Conversation) Reset() { c.messages = nil }
