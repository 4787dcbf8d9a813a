package agent

import (
	"fmt"
	"strings"
	"time"

	"github.com/reagent-dev/reagent/logging"
	"github.com/reagent-dev/reagent/model"
	"github.com/reagent-dev/reagent/tool"
)

// DefaultMaxIterations bounds the think→act→observe rounds of both variants.
const DefaultMaxIterations = 5

// MaxIterationsMessage is the terminal answer of an exhausted
// chain-of-thought run.
const MaxIterationsMessage = "达到最大迭代次数，未能找到答案。"

// toolDefinitions converts the registry into structured declarations for the
// model boundary.
func toolDefinitions(registry *tool.Registry) []model.ToolDefinition {
	tools := registry.Tools()
	defs := make([]model.ToolDefinition, len(tools))
	for i, t := range tools {
		defs[i] = model.ToolDefinition{
			Type: "function",
			Function: model.FunctionDefinition{
				Name:        t.Name(),
				Description: t.Description(),
				Parameters:  t.Parameters(),
			},
		}
	}
	return defs
}

// logModelCall records one model round's latency and token usage, preferring
// the rich call logger when the configured logger provides one.
func logModelCall(logger logging.Logger, modelName string, usage *model.TokenUsage, dur time.Duration, err error) {
	tokens := 0
	if usage != nil {
		tokens = usage.TotalTokens
	}
	if cl, ok := logger.(logging.CallLogger); ok {
		cl.LogModelCall(modelName, tokens, dur, err == nil, err)
		return
	}
	if err != nil {
		logger.Error("model.call.error", "model", modelName, "error", err.Error(),
			"duration_ms", dur.Milliseconds())
		return
	}
	logger.Debug("model.call.success", "model", modelName, "tokens", tokens,
		"duration_ms", dur.Milliseconds())
}

// toolCatalog renders the "- name: description" listing embedded into system
// prompts.
func toolCatalog(registry *tool.Registry) string {
	var sb strings.Builder
	for i, t := range registry.Tools() {
		if i > 0 {
			sb.WriteString("\n")
		}
		fmt.Fprintf(&sb, "- %s: %s", t.Name(), t.Description())
	}
	return sb.String()
}
