package prompt

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/tidwall/jsonc"
	"go.uber.org/zap"

	"github.com/riverfjs/tghtml/internal/buffer"
)

// Message is one history entry.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// encode serializes compactly without escaping <, > and &.
var encode = func(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

// ParseHistory parses a serialized list of entries. Comments and trailing
// commas are accepted. Entries are kept as raw JSON so fields other than
// role and content survive a round trip.
func ParseHistory(history string) ([]json.RawMessage, error) {
	if strings.TrimSpace(history) == "" {
		return nil, nil
	}
	var entries []json.RawMessage
	if err := json.Unmarshal(jsonc.ToJSON([]byte(history)), &entries); err != nil {
		return nil, fmt.Errorf("parsing history: %w", err)
	}
	return entries, nil
}

// MessageHistory appends a user entry to history and returns the serialized
// list. A history that does not parse is replaced by an empty list. If the
// result cannot be serialized, a one-entry list holding the raw user text is
// returned instead.
func (a *Assembler) MessageHistory(history, userText string) string {
	entries, err := ParseHistory(history)
	if err != nil {
		a.logger().Warn("history unparsable, starting empty", zap.Error(err))
		entries = nil
	}

	out, err := appendUser(entries, userText)
	if err != nil {
		a.logger().Warn("history serialization failed, using literal", zap.Error(err))
		return fmt.Sprintf(`[{"role":"user","content":"%s"}]`, userText)
	}
	a.logger().Debug("message history built",
		zap.Int("entries", len(entries)+1),
		zap.Int("bytes", len(out)))
	return out
}

// BuildMessageHistory writes the result of MessageHistory into dst as a
// single unit and NUL-terminates it. It returns the full length; a result
// >= len(dst) means nothing but the terminator was written.
func (a *Assembler) BuildMessageHistory(history, userText string, dst []byte) int {
	out := buffer.New(dst)
	out.WriteString(a.MessageHistory(history, userText))
	out.Terminate()
	return out.Len()
}

func appendUser(entries []json.RawMessage, userText string) (string, error) {
	user, err := encode(Message{Role: "user", Content: userText})
	if err != nil {
		return "", err
	}
	entries = append(entries, user)
	out, err := encode(entries)
	if err != nil {
		return "", err
	}
	return string(out), nil
}
