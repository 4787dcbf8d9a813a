package tool

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/reagent-dev/reagent/internal/util"
	"github.com/reagent-dev/reagent/logging"
)

// Registry holds the configured tool set and centralizes lookup and dispatch.
// Registration order is preserved so prompts and declarations stay stable.
type Registry struct {
	tools  map[string]Tool
	order  []string
	logger logging.Logger
}

// NewRegistry creates a registry with the given tools. A nil logger defaults
// to the NoOp logger.
func NewRegistry(logger logging.Logger, tools ...Tool) *Registry {
	if logger == nil {
		logger = logging.NoOpLogger{}
	}
	r := &Registry{tools: make(map[string]Tool), logger: logger}
	for _, t := range tools {
		r.Register(t)
	}
	return r
}

// Register adds a tool, replacing any previous tool with the same name.
func (r *Registry) Register(t Tool) {
	if _, exists := r.tools[t.Name()]; !exists {
		r.order = append(r.order, t.Name())
	}
	r.tools[t.Name()] = t
}

// Get returns the tool with the exact given name.
func (r *Registry) Get(name string) (Tool, bool) {
	t, ok := r.tools[name]
	return t, ok
}

// Tools returns the registered tools in registration order.
func (r *Registry) Tools() []Tool {
	out := make([]Tool, 0, len(r.order))
	for _, name := range r.order {
		out = append(out, r.tools[name])
	}
	return out
}

// Dispatch resolves a tool by name, validates the arguments against its
// schema and executes it. The returned string is always conversation-ready:
// unknown tools, validation failures and execution errors are converted into
// textual results, never surfaced as loop failures.
func (r *Registry) Dispatch(ctx context.Context, name string, args map[string]any) string {
	t, ok := r.tools[name]
	if !ok {
		r.logger.Warn("tool.dispatch.unknown", "tool", name)
		return fmt.Sprintf("错误：找不到工具 '%s'", name)
	}

	if err := util.ValidateParameters(args, t.Parameters()); err != nil {
		r.logger.Warn("tool.dispatch.validation_failed", "tool", name, "error", err.Error())
		return fmt.Sprintf("参数验证失败: %v", err)
	}

	start := time.Now()
	result, err := t.Call(ctx, args)
	r.logCall(name, time.Since(start), err)
	if err != nil {
		var toolErr *Error
		if errors.As(err, &toolErr) {
			return toolErr.Message
		}
		return err.Error()
	}
	return result
}

// logCall records the call outcome, preferring the rich call logger when the
// configured logger provides one.
func (r *Registry) logCall(name string, dur time.Duration, err error) {
	if cl, ok := r.logger.(logging.CallLogger); ok {
		cl.LogToolCall(name, dur, err == nil, err)
		return
	}
	if err != nil {
		r.logger.Error("tool.dispatch.error", "tool", name, "error", err.Error(),
			"duration_ms", dur.Milliseconds())
		return
	}
	r.logger.Info("tool.dispatch.success", "tool", name, "duration_ms", dur.Milliseconds())
}
