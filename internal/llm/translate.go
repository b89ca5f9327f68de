package llm

import (
	"context"
	"fmt"

	"example.com/notetaker/internal/stringsx"
)

const translateSystemPrompt = "You are a professional translator. Translate the given English text to Chinese (Simplified Chinese). " +
	"Only return the translated text without any additional explanations or formatting unless the original text " +
	"contains formatting that should be preserved."

// DefaultLanguage is used when the caller names no target.
const DefaultLanguage = "chinese"

var supportedLanguages = map[string]bool{
	"chinese": true,
	"zh":      true,
	"cn":      true,
}

// Translate returns text translated into Simplified Chinese. Arguments are
// checked before configuration, so caller mistakes are reported as such even
// on an unconfigured client.
func (c *Client) Translate(ctx context.Context, text, targetLanguage string) (string, error) {
	lang := stringsx.Normalize(targetLanguage)
	if lang == "" {
		lang = DefaultLanguage
	}
	if !supportedLanguages[lang] {
		return "", fmt.Errorf("%w: translation to %q is not supported yet", ErrUnsupportedLanguage, targetLanguage)
	}
	if stringsx.IsEmpty(text) {
		return "", fmt.Errorf("%w: no text provided for translation", ErrInvalidInput)
	}
	if !c.Configured() {
		return "", ErrNotConfigured
	}

	return c.chat(ctx, chatParams{
		system:      translateSystemPrompt,
		user:        "Translate this English text to Chinese: " + text,
		temperature: 0.3,
		topP:        0.9,
	})
}
