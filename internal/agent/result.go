package agent

import (
	"encoding/json"
	"strings"
)

// ResultKind tags the shape held by a Result.
type ResultKind int

const (
	// KindStructured holds the JSON object parsed out of the model reply.
	KindStructured ResultKind = iota
	// KindRaw holds a reply that contained no parseable JSON object.
	KindRaw
	// KindReply holds a free-text chat reply.
	KindReply
)

// Result is the capability-specific output of the router.
type Result struct {
	Kind ResultKind
	Data map[string]any
	Text string
}

// Structured wraps a parsed JSON object.
func Structured(data map[string]any) Result {
	return Result{Kind: KindStructured, Data: data}
}

// Raw wraps model output that could not be parsed.
func Raw(content string) Result {
	return Result{Kind: KindRaw, Text: content}
}

// Reply wraps a chat reply.
func Reply(content string) Result {
	return Result{Kind: KindReply, Text: content}
}

// Field returns a top-level field of a structured result.
func (r Result) Field(key string) (any, bool) {
	if r.Kind != KindStructured {
		return nil, false
	}
	v, ok := r.Data[key]
	return v, ok
}

// String returns a top-level string field of a structured result.
func (r Result) String(key string) (string, bool) {
	v, ok := r.Field(key)
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	return s, ok
}

// MarshalJSON renders the parsed object as-is, and the other kinds as
// {"raw": ...} or {"reply": ...}.
func (r Result) MarshalJSON() ([]byte, error) {
	switch r.Kind {
	case KindRaw:
		return json.Marshal(map[string]string{"raw": r.Text})
	case KindReply:
		return json.Marshal(map[string]string{"reply": r.Text})
	default:
		if r.Data == nil {
			return []byte("{}"), nil
		}
		return json.Marshal(r.Data)
	}
}

// ExtractJSON parses the substring between the first '{' and the last '}'
// of text. Anything that does not parse as a JSON object degrades to
// Raw(text); it never fails.
//
// Stray braces in surrounding prose widen the substring and usually make it
// unparseable, which also yields Raw.
func ExtractJSON(text string) Result {
	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start < 0 || end < start {
		return Raw(text)
	}

	var data map[string]any
	if err := json.Unmarshal([]byte(text[start:end+1]), &data); err != nil || data == nil {
		return Raw(text)
	}
	return Structured(data)
}
