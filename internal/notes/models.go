package notes

import "time"

type Note struct {
	ID        int64     `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NotePatch is a partial update. Nil fields keep their stored value.
type NotePatch struct {
	Title   *string
	Content *string
}

// Empty reports whether the patch changes nothing.
func (p NotePatch) Empty() bool {
	return p.Title == nil && p.Content == nil
}

type CreateNoteRequest struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

type UpdateNoteRequest struct {
	Title   *string `json:"title"`
	Content *string `json:"content"`
}

// TranslateNoteRequest selects which fields to translate; both default to true.
type TranslateNoteRequest struct {
	TranslateTitle   *bool `json:"translate_title"`
	TranslateContent *bool `json:"translate_content"`
}

type TranslateNoteResponse struct {
	Translations      map[string]string `json:"translations"`
	TranslatedTitle   string            `json:"translated_title,omitempty"`
	TranslatedContent string            `json:"translated_content,omitempty"`
	OriginalNote      Note              `json:"original_note"`
}

type TranslateRequest struct {
	Text           string `json:"text"`
	TargetLanguage string `json:"target_language"`
}

type TranslateResponse struct {
	TranslatedText string `json:"translated_text"`
}

type AutoCompleteRequest struct {
	Title   string `json:"title"`
	Content string `json:"content"`
	Type    string `json:"type"`
}

type AutoCompleteResponse struct {
	Success bool           `json:"success"`
	Type    string         `json:"type"`
	Result  map[string]any `json:"result"`
}

type HealthResponse struct {
	Status               string `json:"status"`
	Message              string `json:"message"`
	DatabaseAvailable    bool   `json:"database_available"`
	TranslationAvailable bool   `json:"translation_available"`
}

type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}
