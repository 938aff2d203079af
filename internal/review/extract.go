package review

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
)

// MalformedOutputError means the model's reply could not be turned into a
// valid ReviewResult. It is terminal for the invocation: the reply is not
// re-parsed and the model is not called again on its behalf.
type MalformedOutputError struct {
	Reason string
	Err    error
}

func (e *MalformedOutputError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("malformed model output: %s: %v", e.Reason, e.Err)
	}
	return "malformed model output: " + e.Reason
}

func (e *MalformedOutputError) Unwrap() error { return e.Err }

var thinkRe = regexp.MustCompile(`(?s)<think>.*?</think>`)

// requiredKeys are the top-level fields every structured reply must carry.
var requiredKeys = []string{
	"improvements",
	"architecture_notes",
	"security_posture",
	"top_priority",
	"risk_score",
}

// ExtractResult isolates, parses, and validates the JSON object in a raw
// model reply. Reasoning-model <think> blocks, code fences, and prose on
// either side of the object are peeled away in that order. Any failure
// returns a *MalformedOutputError.
func ExtractResult(raw string) (*ReviewResult, error) {
	text := strings.TrimSpace(thinkRe.ReplaceAllString(raw, ""))
	text = unwrapFence(text)
	text = isolateObject(text)
	if text == "" {
		return nil, &MalformedOutputError{Reason: "no JSON object found"}
	}

	var keys map[string]json.RawMessage
	if err := json.Unmarshal([]byte(text), &keys); err != nil {
		return nil, &MalformedOutputError{Reason: "invalid JSON", Err: err}
	}
	var missing []string
	for _, k := range requiredKeys {
		if _, ok := keys[k]; !ok {
			missing = append(missing, k)
		}
	}
	if len(missing) > 0 {
		return nil, &MalformedOutputError{Reason: "missing required keys: " + strings.Join(missing, ", ")}
	}

	var result ReviewResult
	if err := json.Unmarshal([]byte(text), &result); err != nil {
		return nil, &MalformedOutputError{Reason: "unexpected field type", Err: err}
	}
	if err := result.Validate(); err != nil {
		return nil, &MalformedOutputError{Reason: "validation failed", Err: err}
	}
	return &result, nil
}

// unwrapFence returns the interior of a ```json fence when one is closed,
// otherwise the interior of the first closed fence of any kind, otherwise
// the text unchanged.
func unwrapFence(text string) string {
	if start := strings.Index(text, "```json"); start != -1 {
		inner := text[start+len("```json"):]
		if end := strings.Index(inner, "```"); end != -1 {
			return strings.TrimSpace(inner[:end])
		}
		return text
	}
	if start := strings.Index(text, "```"); start != -1 {
		inner := text[start+3:]
		if end := strings.Index(inner, "```"); end != -1 {
			return strings.TrimSpace(inner[:end])
		}
	}
	return text
}

// isolateObject trims the text to the first balanced {...} span. The scan
// counts raw brace bytes and does not understand string literals, so a brace
// inside a JSON string can end the span early; the parse then fails and the
// caller reports the reply as malformed. If no closing brace balances the
// first one, the remainder of the text is returned as-is for the parser to
// reject.
func isolateObject(text string) string {
	start := strings.IndexByte(text, '{')
	if start == -1 {
		return ""
	}
	text = text[start:]

	depth := 0
	for i := 0; i < len(text); i++ {
		switch text[i] {
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return text[:i+1]
			}
		}
	}
	return text
}
