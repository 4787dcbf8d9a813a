package agent

import (
	"encoding/json"
	"errors"
	"strings"

	"github.com/reagent-dev/reagent/core"
)

// Markers of the chain-of-thought output protocol. These are part of the
// prompt contract: the model is instructed to emit them verbatim.
const (
	thoughtMarker     = "思考："
	finalAnswerMarker = "最终答案："
	actionFenceOpen   = "```json\n"
	actionFenceClose  = "\n```"
)

// errNoActionBlock reports that a completion contained no fenced action.
var errNoActionBlock = errors.New("no action block found")

// extractThought returns the text between the thought marker and the next
// blank line, trimmed. A missing marker yields an empty thought, which is
// not an error.
func extractThought(text string) string {
	start := strings.Index(text, thoughtMarker)
	if start < 0 {
		return ""
	}
	start += len(thoughtMarker)
	end := strings.Index(text[start:], "\n\n")
	if end < 0 {
		return strings.TrimSpace(text[start:])
	}
	return strings.TrimSpace(text[start : start+end])
}

// extractFinalAnswer returns everything after the final-answer marker,
// trimmed. The marker may appear anywhere in the completion.
func extractFinalAnswer(text string) (string, bool) {
	idx := strings.Index(text, finalAnswerMarker)
	if idx < 0 {
		return "", false
	}
	return strings.TrimSpace(text[idx+len(finalAnswerMarker):]), true
}

// extractAction parses the first fenced JSON block as an action. Later
// fences are ignored. A missing fence yields errNoActionBlock; malformed
// JSON yields the decode error. Both are recoverable conditions for the
// loop.
func extractAction(text string) (core.Action, error) {
	start := strings.Index(text, actionFenceOpen)
	if start < 0 {
		return core.Action{}, errNoActionBlock
	}
	start += len(actionFenceOpen)
	end := strings.Index(text[start:], actionFenceClose)
	if end < 0 {
		return core.Action{}, errNoActionBlock
	}

	payload := strings.TrimSpace(text[start : start+end])
	var action core.Action
	if err := json.Unmarshal([]byte(payload), &action); err != nil {
		return core.Action{}, err
	}
	return action, nil
}
