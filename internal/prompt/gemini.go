package prompt

import (
	"encoding/base64"
	"fmt"

	"github.com/ewhitt/promptlab/internal/audio"
)

// GeminiPart is one entry of a Gemini generateContent parts list: either
// plain text or inline base64 audio data.
type GeminiPart struct {
	Text       string            `json:"text,omitempty"`
	InlineData *GeminiInlineData `json:"inline_data,omitempty"`
}

// GeminiInlineData carries base64-encoded media for a Gemini part.
type GeminiInlineData struct {
	MIMEType string `json:"mime_type"`
	Data     string `json:"data"`
}

// GeminiFormat renders the prompt as an ordered Gemini parts list. Audio
// messages become inline WAV data parts and user messages become text parts;
// empty user text becomes a single space. None-role messages are rejected.
// System and assistant messages are skipped here: Gemini carries the system
// text in a separate request field.
func (p Prompt) GeminiFormat() ([]GeminiPart, error) {
	if p.hasNoneRole() {
		return nil, fmt.Errorf("gemini chat prompts cannot contain a none-role message")
	}

	var parts []GeminiPart
	for _, msg := range p.Messages {
		switch msg.Role {
		case RoleAudio:
			buf, err := audio.Resolve(msg.Content, msg.Audio)
			if err != nil {
				return nil, fmt.Errorf("preparing gemini audio part: %w", err)
			}
			parts = append(parts, GeminiPart{
				InlineData: &GeminiInlineData{
					MIMEType: "audio/wav",
					Data:     base64.StdEncoding.EncodeToString(buf.WAV()),
				},
			})
		case RoleUser:
			text := msg.Content
			if text == "" {
				text = " "
			}
			parts = append(parts, GeminiPart{Text: text})
		}
	}
	return parts, nil
}

// SystemText returns the content of the first system message, if any.
func (p Prompt) SystemText() (string, bool) {
	for _, msg := range p.Messages {
		if msg.Role == RoleSystem {
			return msg.Content, true
		}
	}
	return "", false
}
