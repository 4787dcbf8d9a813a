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

const cotSystemPromptFormat = `你是一个智能助手，使用思维链(Chain of Thought)来解决问题。
请按照以下步骤进行思考：
1. 分析问题并制定解决计划
2. 如果需要使用工具，请明确说明要使用哪个工具以及输入参数
3. 根据工具的返回结果进行观察和分析
4. 最终给出明确的答案

你可以使用的工具：
%s

请始终按照以下格式输出：

思考：<你的思考过程>
计划：
- 第一步
- 第二步
...

行动：
` + "```json" + `
{
    "tool": "工具名称",
    "tool_input": {"参数名": "参数值"}
}
` + "```" + `

观察：<工具返回的结果>

最终答案：<你的最终回答>
`

// ChainOfThoughtOptions configures a ChainOfThought agent.
type ChainOfThoughtOptions struct {
	MaxIterations int
	Logger        logging.Logger
}

// ChainOfThought drives a model through free-text reasoning rounds. Each
// round sends the full conversation, then parses thought, final answer and
// action markers out of the raw completion. Tool observations are fed back
// as user messages until the model emits a final answer or the iteration
// budget runs out.
//
// The agent is not safe for concurrent runs; the conversation log and state
// are reset at the start of each Run.
type ChainOfThought struct {
	llm           model.Model
	registry      *tool.Registry
	maxIterations int
	logger        logging.Logger
	conversation  *core.Conversation
	state         core.State
}

// NewChainOfThought creates the free-text variant with sensible defaults.
func NewChainOfThought(llm model.Model, registry *tool.Registry, optFns ...func(o *ChainOfThoughtOptions)) *ChainOfThought {
	opts := ChainOfThoughtOptions{
		MaxIterations: DefaultMaxIterations,
		Logger:        logging.NoOpLogger{},
	}
	for _, fn := range optFns {
		fn(&opts)
	}
	return &ChainOfThought{
		llm:           llm,
		registry:      registry,
		maxIterations: opts.MaxIterations,
		logger:        opts.Logger,
		conversation:  core.NewConversation(),
	}
}

// State returns the reasoning trace accumulated by the last Run.
func (a *ChainOfThought) State() *core.State { return &a.state }

// Conversation returns the message log of the last Run.
func (a *ChainOfThought) Conversation() []core.Message { return a.conversation.Messages() }

// Run processes a single query and returns the final answer, or the fixed
// exhaustion message after the iteration budget is spent. The returned error
// is non-nil only when ctx is cancelled; every other failure is absorbed
// into the conversation.
func (a *ChainOfThought) Run(ctx context.Context, query string) (string, error) {
	runID := uuid.NewString()
	logger := logging.ForRun(a.logger, runID)
	a.state = core.State{}
	a.conversation.Reset()
	a.conversation.Append(
		core.SystemMessage(a.systemPrompt()),
		core.UserMessage(query),
	)

	logger.Info("agent.run.start", "variant", "chain_of_thought", "query", query)

	for round := 1; round <= a.maxIterations; round++ {
		response, err := a.complete(ctx, logger)
		if err != nil {
			return "", err
		}

		logger.Debug("agent.round.response", "round", round, "length", len(response))

		if thought := extractThought(response); thought != "" {
			a.state.AddThought(core.Thought{Thought: thought})
		}

		// A final answer wins over an action in the same completion.
		if answer, ok := extractFinalAnswer(response); ok {
			a.state.FinalAnswer = answer
			logger.Info("agent.run.answer", "round", round)
			return answer, nil
		}

		action, err := extractAction(response)
		if err != nil {
			logger.Warn("agent.round.no_action", "round", round, "reason", err.Error())
			continue
		}

		logger.Info("agent.round.action", "round", round, "tool", action.Tool)
		a.state.AddAction(action)

		observation := a.registry.Dispatch(ctx, action.Tool, action.ToolInput)
		a.state.AddObservation(core.Observation{
			Content:   observation,
			ToolCalls: []core.ToolCall{{Name: action.Tool, Arguments: marshalArgs(action.ToolInput)}},
		})

		a.conversation.Append(
			core.AssistantMessage(response),
			core.UserMessage("观察："+observation),
		)
	}

	logger.Info("agent.run.exhausted", "rounds", a.maxIterations)
	return MaxIterationsMessage, nil
}

// complete performs one non-streaming model call over the current log. A
// remote failure is converted into a textual stand-in response so the loop
// can keep going; this can masquerade as legitimate content to downstream
// parsing, a known sharp edge of the free-text protocol.
func (a *ChainOfThought) complete(ctx context.Context, logger logging.Logger) (string, error) {
	start := time.Now()
	respCh, errCh := a.llm.Generate(ctx, model.Request{Messages: a.conversation.Messages()})

	var text strings.Builder
	var usage *model.TokenUsage
	for respCh != nil || errCh != nil {
		select {
		case r, ok := <-respCh:
			if !ok {
				respCh = nil
				continue
			}
			text.WriteString(r.Text)
			if r.Usage != nil {
				usage = r.Usage
			}
		case err, ok := <-errCh:
			if !ok {
				errCh = nil
				continue
			}
			if ctx.Err() != nil {
				return "", ctx.Err()
			}
			logModelCall(logger, a.llm.Info().Name, nil, time.Since(start), err)
			return fmt.Sprintf("调用语言模型时出错: %v", err), nil
		}
	}
	logModelCall(logger, a.llm.Info().Name, usage, time.Since(start), nil)
	return text.String(), nil
}

func (a *ChainOfThought) systemPrompt() string {
	return fmt.Sprintf(cotSystemPromptFormat, toolCatalog(a.registry))
}

func marshalArgs(args map[string]any) string {
	b, err := json.Marshal(args)
	if err != nil {
		return ""
	}
	return string(b)
}
