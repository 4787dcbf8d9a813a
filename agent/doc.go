// Package agent implements the bounded think→act→observe loops that drive a
// language model through tool-assisted reasoning.
//
// Two variants are provided:
//
//   - ChainOfThought parses free-text markers (thought, action, final answer)
//     out of raw completions and feeds tool observations back as user
//     messages.
//   - FunctionCall relies on the provider's native structured tool-call
//     mechanism, consumes streamed fragments and surfaces text deltas to the
//     caller as they arrive.
//
// Both variants share the tool registry, the model boundary and the fixed
// iteration budget. Every failure mode (parse errors, unknown tools, tool
// failures, remote errors) is absorbed into conversational content; nothing
// is fatal to the process.
package agent
