package agent

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/reagent-dev/reagent/core"
	"github.com/reagent-dev/reagent/logging"
	"github.com/reagent-dev/reagent/model"
	"github.com/reagent-dev/reagent/tool"
)

const fcSystemPromptFormat = `你是一个智能助手，可以使用工具来帮助用户解决问题。
你可以使用的工具：
%s

当需要调用工具时，请按照工具定义的格式提供参数。
工具调用完成后，我会将结果返回给你。
`

// FunctionCallOptions configures a FunctionCall agent.
type FunctionCallOptions struct {
	MaxIterations int
	Logger        logging.Logger
}

// FunctionCall drives a model through its native structured tool-call
// mechanism. Each round streams the response: text deltas are surfaced to
// the caller immediately, tool-call deltas are accumulated by index and
// dispatched only once the stream ends. A round producing text and no tool
// calls terminates the run with that text as the final answer.
//
// The agent is not safe for concurrent runs; the conversation log is reset
// at the start of each Run.
type FunctionCall struct {
	llm           model.Model
	registry      *tool.Registry
	maxIterations int
	logger        logging.Logger
	conversation  *core.Conversation
}

// NewFunctionCall creates the structured variant with sensible defaults.
func NewFunctionCall(llm model.Model, registry *tool.Registry, optFns ...func(o *FunctionCallOptions)) *FunctionCall {
	opts := FunctionCallOptions{
		MaxIterations: DefaultMaxIterations,
		Logger:        logging.NoOpLogger{},
	}
	for _, fn := range optFns {
		fn(&opts)
	}
	return &FunctionCall{
		llm:           llm,
		registry:      registry,
		maxIterations: opts.MaxIterations,
		logger:        opts.Logger,
		conversation:  core.NewConversation(),
	}
}

// Conversation returns the message log of the last Run.
func (a *FunctionCall) Conversation() []core.Message { return a.conversation.Messages() }

// Run processes a single query. It returns a finite, one-shot channel of
// text deltas that closes when the run terminates (final answer produced or
// budget exhausted), plus an error channel for cancellation and remote
// failures. The final round's accumulated text is the answer; exhaustion
// ends the stream silently.
func (a *FunctionCall) Run(ctx context.Context, query string) (<-chan string, <-chan error) {
	out := make(chan string, 16)
	errCh := make(chan error, 1)

	runID := uuid.NewString()
	logger := logging.ForRun(a.logger, runID)
	a.conversation.Reset()
	a.conversation.Append(
		core.SystemMessage(a.systemPrompt()),
		core.UserMessage(query),
	)

	logger.Info("agent.run.start", "variant", "function_call", "query", query)

	go func() {
		defer close(out)
		defer close(errCh)

		for round := 1; round <= a.maxIterations; round++ {
			text, calls, err := a.round(ctx, logger, out)
			if err != nil {
				logger.Error("agent.round.error", "round", round, "error", err.Error())
				errCh <- err
				return
			}

			if text != "" {
				a.conversation.Append(core.AssistantMessage(text))
			}

			if len(calls) > 0 {
				a.conversation.Append(core.AssistantToolCalls(calls))
				for _, call := range calls {
					a.conversation.Append(core.ToolMessage(call.ID, call.Name, a.execute(ctx, logger, call)))
				}
				continue
			}

			if text != "" {
				logger.Info("agent.run.answer", "round", round)
				return
			}
		}

		logger.Info("agent.run.exhausted", "rounds", a.maxIterations)
	}()

	return out, errCh
}

// toolCallBuffer aggregates partial tool call streaming deltas (id, name,
// arguments) for one index until the stream ends.
type toolCallBuffer struct {
	id   string
	name string
	args strings.Builder
}

// round performs one streamed model call. Text deltas are forwarded to out
// as they arrive and accumulated; tool-call deltas are reassembled by index.
// End of stream is the sole dispatch trigger.
func (a *FunctionCall) round(ctx context.Context, logger logging.Logger, out chan<- string) (string, []core.ToolCall, error) {
	start := time.Now()
	respCh, errCh := a.llm.Generate(ctx, model.Request{
		Messages: a.conversation.Messages(),
		Tools:    toolDefinitions(a.registry),
		Stream:   true,
	})

	var text strings.Builder
	var usage *model.TokenUsage
	buffers := map[int64]*toolCallBuffer{}
	var order []int64

	for respCh != nil || errCh != nil {
		select {
		case r, ok := <-respCh:
			if !ok {
				respCh = nil
				continue
			}
			if r.Text != "" {
				text.WriteString(r.Text)
				select {
				case out <- r.Text:
				case <-ctx.Done():
					return "", nil, ctx.Err()
				}
			}
			if r.Usage != nil {
				usage = r.Usage
			}
			for _, d := range r.ToolCallDeltas {
				buf, ok := buffers[d.Index]
				if !ok {
					buf = &toolCallBuffer{}
					buffers[d.Index] = buf
					order = append(order, d.Index)
				}
				if d.ID != "" {
					buf.id = d.ID
				}
				if d.Name != "" {
					buf.name = d.Name
				}
				buf.args.WriteString(d.Arguments)
			}
		case err, ok := <-errCh:
			if !ok {
				errCh = nil
				continue
			}
			logModelCall(logger, a.llm.Info().Name, nil, time.Since(start), err)
			return "", nil, err
		}
	}
	logModelCall(logger, a.llm.Info().Name, usage, time.Since(start), nil)

	calls := make([]core.ToolCall, 0, len(order))
	for _, idx := range order {
		buf := buffers[idx]
		calls = append(calls, core.ToolCall{ID: buf.id, Name: buf.name, Arguments: buf.args.String()})
	}
	return text.String(), calls, nil
}

// execute parses the reassembled argument buffer and dispatches the call. A
// parse failure becomes a tool-role error message rather than aborting the
// round.
func (a *FunctionCall) execute(ctx context.Context, logger logging.Logger, call core.ToolCall) string {
	args := map[string]any{}
	if call.Arguments != "" {
		if err := json.Unmarshal([]byte(call.Arguments), &args); err != nil {
			logger.Warn("agent.tool.bad_arguments", "tool", call.Name, "error", err.Error())
			return fmt.Sprintf("执行工具 %s 时出错: %v", call.Name, err)
		}
	}

	logger.Info("agent.tool.call", "tool", call.Name, "call_id", call.ID)
	return a.registry.Dispatch(ctx, call.Name, args)
}

func (a *FunctionCall) systemPrompt() string {
	return fmt.Sprintf(fcSystemPromptFormat, toolCatalog(a.registry))
}
