package agent

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractFinalAnswer(t *testing.T) {
	answer, ok := extractFinalAnswer("思考：完成了\n\n最终答案：X")
	assert.True(t, ok)
	assert.Equal(t, "X", answer)

	answer, ok = extractFinalAnswer("最终答案：  42  ")
	assert.True(t, ok)
	assert.Equal(t, "42", answer)

	_, ok = extractFinalAnswer("没有答案标记的普通文本")
	assert.False(t, ok)
}

func TestExtractFinalAnswerAnywhereInText(t *testing.T) {
	text := "一些前置内容\n最终答案：巴黎\n后面没有别的了"
	answer, ok := extractFinalAnswer(text)
	assert.True(t, ok)
	assert.Equal(t, "巴黎\n后面没有别的了", answer)
}

func TestExtractThought(t *testing.T) {
	thought := extractThought("思考：我需要先计算平方\n\n行动：略")
	assert.Equal(t, "我需要先计算平方", thought)

	// No blank line: thought runs to end of text.
	thought = extractThought("思考：只有思考")
	assert.Equal(t, "只有思考", thought)

	// Absent marker yields an empty thought, not an error.
	assert.Equal(t, "", extractThought("没有标记"))
}

func TestExtractAction(t *testing.T) {
	text := "行动：\n```json\n{\"tool\": \"calculator\", \"tool_input\": {\"expression\": \"1+1\"}}\n```\n"
	action, err := extractAction(text)
	assert.NoError(t, err)
	assert.Equal(t, "calculator", action.Tool)
	assert.Equal(t, map[string]any{"expression": "1+1"}, action.ToolInput)
}

func TestExtractActionAbsent(t *testing.T) {
	_, err := extractAction("纯文本，没有代码块")
	assert.ErrorIs(t, err, errNoActionBlock)

	// Opening fence without a closing fence is treated as absent.
	_, err = extractAction("```json\n{\"tool\": \"x\"}")
	assert.ErrorIs(t, err, errNoActionBlock)
}

func TestExtractActionMalformedJSON(t *testing.T) {
	_, err := extractAction("```json\n{not valid json}\n```")
	assert.Error(t, err)
	assert.NotErrorIs(t, err, errNoActionBlock)
}

func TestExtractActionFirstFenceWins(t *testing.T) {
	text := "```json\n{\"tool\": \"search\", \"tool_input\": {\"query\": \"first\"}}\n```\n" +
		"```json\n{\"tool\": \"calculator\", \"tool_input\": {\"expression\": \"2\"}}\n```"
	action, err := extractAction(text)
	assert.NoError(t, err)
	assert.Equal(t, "search", action.Tool)
}
