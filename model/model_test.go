package model

import (
	"context"
	"errors"
	"testing"

	"github.com/reagent-dev/reagent/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// collect drains both channels of one Generate call.
func collect(t *testing.T, respCh <-chan Response, errCh <-chan error) ([]Response, error) {
	t.Helper()
	var responses []Response
	var genErr error
	for respCh != nil || errCh != nil {
		select {
		case r, ok := <-respCh:
			if !ok {
				respCh = nil
				continue
			}
			responses = append(responses, r)
		case err, ok := <-errCh:
			if !ok {
				errCh = nil
				continue
			}
			if genErr == nil {
				genErr = err
			}
		}
	}
	return responses, genErr
}

func TestMockModelReplaysScriptedTurnsInOrder(t *testing.T) {
	mock := NewMockModel("test", "mock")
	mock.AddTextTurn("first")
	mock.AddTurn(
		Response{Partial: true, Text: "sec"},
		Response{Partial: true, Text: "ond"},
		Response{FinishReason: "stop"},
	)

	respCh, errCh := mock.Generate(context.Background(), Request{})
	responses, err := collect(t, respCh, errCh)
	require.NoError(t, err)
	require.Len(t, responses, 1)
	assert.Equal(t, "first", responses[0].Text)
	assert.Equal(t, "stop", responses[0].FinishReason)

	respCh, errCh = mock.Generate(context.Background(), Request{})
	responses, err = collect(t, respCh, errCh)
	require.NoError(t, err)
	require.Len(t, responses, 3)
	assert.Equal(t, "sec", responses[0].Text)
	assert.Equal(t, "ond", responses[1].Text)
	assert.Equal(t, "stop", responses[2].FinishReason)
}

func TestMockModelEchoesWhenScriptExhausted(t *testing.T) {
	mock := NewMockModel("test", "mock")

	req := Request{Messages: []core.Message{core.UserMessage("hello")}}
	respCh, errCh := mock.Generate(context.Background(), req)
	responses, err := collect(t, respCh, errCh)
	require.NoError(t, err)
	require.Len(t, responses, 1)
	assert.Equal(t, "Mock response to: hello", responses[0].Text)
}

func TestMockModelRecordsRequests(t *testing.T) {
	mock := NewMockModel("test", "mock")
	mock.AddTextTurn("ok")

	req := Request{
		Messages: []core.Message{core.UserMessage("q")},
		Tools:    []ToolDefinition{{Type: "function", Function: FunctionDefinition{Name: "calculator"}}},
		Stream:   true,
	}
	respCh, errCh := mock.Generate(context.Background(), req)
	_, err := collect(t, respCh, errCh)
	require.NoError(t, err)

	assert.Equal(t, 1, mock.Calls())
	recorded := mock.Requests()[0]
	assert.True(t, recorded.Stream)
	assert.Equal(t, "calculator", recorded.Tools[0].Function.Name)
	assert.Equal(t, "q", recorded.Messages[0].Content)
}

func TestMockModelErrorTurn(t *testing.T) {
	mock := NewMockModel("test", "mock")
	scripted := errors.New("rate limited")
	mock.AddErrorTurn(scripted)

	respCh, errCh := mock.Generate(context.Background(), Request{})
	responses, err := collect(t, respCh, errCh)
	assert.Empty(t, responses)
	assert.ErrorIs(t, err, scripted)
}

func TestMockModelToolCallTurnShape(t *testing.T) {
	mock := NewMockModel("test", "mock")
	mock.AddToolCallTurn("calculator", `{"expression"`, `:"1+1"}`)

	respCh, errCh := mock.Generate(context.Background(), Request{})
	responses, err := collect(t, respCh, errCh)
	require.NoError(t, err)
	require.Len(t, responses, 4)

	head := responses[0].ToolCallDeltas[0]
	assert.NotEmpty(t, head.ID)
	assert.Equal(t, "calculator", head.Name)

	assert.Equal(t, `{"expression"`, responses[1].ToolCallDeltas[0].Arguments)
	assert.Equal(t, `:"1+1"}`, responses[2].ToolCallDeltas[0].Arguments)
	assert.Equal(t, "tool_calls", responses[3].FinishReason)
}

func TestMockModelCancelledContext(t *testing.T) {
	mock := NewMockModel("test", "mock")
	mock.AddTextTurn("never delivered")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	respCh, errCh := mock.Generate(ctx, Request{})
	_, err := collect(t, respCh, errCh)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestMockModelInfo(t *testing.T) {
	mock := NewMockModel("gpt-4o-mini", "openai")
	info := mock.Info()
	assert.Equal(t, "gpt-4o-mini", info.Name)
	assert.Equal(t, "openai", info.Provider)
	assert.True(t, info.SupportsTools)
}
