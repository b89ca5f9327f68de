package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"example.com/notetaker/internal/stringsx"
)

// Mode selects the kind of help Complete asks the model for.
type Mode string

const (
	ModeSuggestions  Mode = "suggestions"
	ModeCorrections  Mode = "corrections"
	ModeContinuation Mode = "continuation"
)

var completePrompts = map[Mode]string{
	ModeSuggestions: "You are a writing assistant for a note-taking app. Read the note and suggest improvements: " +
		"missing points, better structure, clearer wording. Respond with a JSON object of the form " +
		`{"suggestions": ["..."]} and nothing else.`,
	ModeCorrections: "You are a careful proofreader for a note-taking app. Find spelling, grammar and punctuation " +
		"mistakes in the note. Respond with a JSON object of the form " +
		`{"corrections": [{"original": "...", "corrected": "...", "reason": "..."}], "corrected_content": "..."} ` +
		"and nothing else.",
	ModeContinuation: "You are a writing assistant for a note-taking app. Continue the note naturally in the same " +
		"language, tone and format, adding one or two paragraphs. Respond with a JSON object of the form " +
		`{"continuation": "..."} and nothing else.`,
}

// ParseMode maps a request value to a Mode. Empty means suggestions.
func ParseMode(s string) (Mode, error) {
	m := Mode(stringsx.Normalize(s))
	if m == "" {
		return ModeSuggestions, nil
	}
	if _, ok := completePrompts[m]; !ok {
		return "", fmt.Errorf("%w: unknown completion type %q", ErrInvalidArgument, s)
	}
	return m, nil
}

// Completion is the model's answer. When the reply is not a JSON object,
// Result holds the raw reply under "text" and Structured is false.
type Completion struct {
	Mode       Mode
	Result     map[string]any
	Structured bool
}

func (c *Client) Complete(ctx context.Context, title, content, mode string) (Completion, error) {
	m, err := ParseMode(mode)
	if err != nil {
		return Completion{}, err
	}
	if stringsx.IsEmpty(title) && stringsx.IsEmpty(content) {
		return Completion{}, fmt.Errorf("%w: title or content is required", ErrInvalidInput)
	}
	if !c.Configured() {
		return Completion{}, ErrNotConfigured
	}

	raw, err := c.chat(ctx, chatParams{
		system:      completePrompts[m],
		user:        fmt.Sprintf("Title: %s\n\nContent:\n%s", title, content),
		temperature: 0.7,
		topP:        0.9,
	})
	if err != nil {
		return Completion{}, err
	}

	if obj, ok := parseObject(raw); ok {
		return Completion{Mode: m, Result: obj, Structured: true}, nil
	}
	return Completion{Mode: m, Result: map[string]any{"text": raw}}, nil
}

// parseObject decodes a JSON object, optionally wrapped in a Markdown code
// fence.
func parseObject(raw string) (map[string]any, bool) {
	s := strings.TrimSpace(raw)
	if strings.HasPrefix(s, "```") {
		if i := strings.IndexByte(s, '\n'); i >= 0 {
			s = s[i+1:]
		}
		s = strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(s), "```"))
	}

	var obj map[string]any
	if err := json.Unmarshal([]byte(s), &obj); err != nil || obj == nil {
		return nil, false
	}
	return obj, true
}
