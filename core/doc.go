// Package core provides the foundational conversation types used by reagent.
// It defines the core records exchanged with a model provider:
//
//   - Message (role-tagged content, optional tool calls / tool results)
//   - ToolCall (a model-requested function invocation in wire form)
//   - Conversation (the ordered, append-only per-query message log)
//   - State (accumulated reasoning trace of the chain-of-thought loop)
//
// The package intentionally keeps implementation concerns (model adapters,
// loop orchestration, concrete tools) out of scope so higher layers can
// depend on small, transport-independent shapes.
package core
