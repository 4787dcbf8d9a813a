package tool

import (
	"context"
	"testing"
	"time"

	"github.com/reagent-dev/reagent/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRegistry() *Registry {
	return NewRegistry(logging.NoOpLogger{}, NewCalculator(), NewSearch())
}

// recordingCallLogger captures the rich call records the registry emits.
type recordingCallLogger struct {
	logging.NoOpLogger
	calls []recordedToolCall
}

type recordedToolCall struct {
	tool    string
	success bool
	err     error
}

func (r *recordingCallLogger) LogToolCall(tool string, _ time.Duration, success bool, err error) {
	r.calls = append(r.calls, recordedToolCall{tool: tool, success: success, err: err})
}

func (r *recordingCallLogger) LogModelCall(string, int, time.Duration, bool, error) {}

func TestDispatchUnknownTool(t *testing.T) {
	reg := newTestRegistry()

	result := reg.Dispatch(context.Background(), "weather", map[string]any{"city": "上海"})
	assert.Equal(t, "错误：找不到工具 'weather'", result)
}

func TestDispatchIsCaseSensitive(t *testing.T) {
	reg := newTestRegistry()

	result := reg.Dispatch(context.Background(), "Calculator", map[string]any{"expression": "1+1"})
	assert.Contains(t, result, "找不到工具")
	assert.Contains(t, result, "Calculator")
}

func TestDispatchCalculator(t *testing.T) {
	reg := newTestRegistry()

	result := reg.Dispatch(context.Background(), "calculator", map[string]any{"expression": "1+1"})
	assert.Equal(t, "计算结果: 2", result)
}

func TestDispatchCalculatorFailureIsTextual(t *testing.T) {
	reg := newTestRegistry()

	result := reg.Dispatch(context.Background(), "calculator", map[string]any{"expression": "1/0"})
	assert.Contains(t, result, "计算错误")
}

func TestDispatchSearch(t *testing.T) {
	reg := newTestRegistry()

	result := reg.Dispatch(context.Background(), "search", map[string]any{"query": "人工智能"})
	assert.Contains(t, result, "人工智能")
	assert.Contains(t, result, "搜索结果")
}

func TestDispatchValidationFailureIsTextual(t *testing.T) {
	reg := newTestRegistry()

	// Missing required argument never fails the loop, it becomes text.
	result := reg.Dispatch(context.Background(), "calculator", map[string]any{})
	assert.Contains(t, result, "参数验证失败")

	// Wrong argument type likewise.
	result = reg.Dispatch(context.Background(), "calculator", map[string]any{"expression": 42})
	assert.Contains(t, result, "参数验证失败")
}

func TestRegistryOrderAndLookup(t *testing.T) {
	reg := newTestRegistry()

	tools := reg.Tools()
	assert.Len(t, tools, 2)
	assert.Equal(t, "calculator", tools[0].Name())
	assert.Equal(t, "search", tools[1].Name())

	_, ok := reg.Get("calculator")
	assert.True(t, ok)
	_, ok = reg.Get("missing")
	assert.False(t, ok)
}

func TestDispatchRecordsCallOutcomes(t *testing.T) {
	rec := &recordingCallLogger{}
	reg := NewRegistry(rec, NewCalculator())

	reg.Dispatch(context.Background(), "calculator", map[string]any{"expression": "1+1"})
	reg.Dispatch(context.Background(), "calculator", map[string]any{"expression": "1/0"})

	require.Len(t, rec.calls, 2)
	assert.Equal(t, "calculator", rec.calls[0].tool)
	assert.True(t, rec.calls[0].success)
	assert.NoError(t, rec.calls[0].err)
	assert.False(t, rec.calls[1].success)
	assert.Error(t, rec.calls[1].err)

	// Unknown tools never reach Call, so no outcome is recorded.
	reg.Dispatch(context.Background(), "weather", map[string]any{})
	assert.Len(t, rec.calls, 2)
}

func TestErrorFormatting(t *testing.T) {
	err := NewError("demo", "something failed", "E123")
	assert.Contains(t, err.Error(), "E123")
	assert.Contains(t, err.Error(), "demo")
}
