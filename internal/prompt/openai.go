package prompt

import (
	"encoding/base64"
	"fmt"
	"os"

	openai "github.com/sashabaranov/go-openai"

	"github.com/ewhitt/promptlab/internal/audio"
)

// OpenAIFormat renders the prompt as OpenAI chat completion messages. It
// fails if the last message is an assistant message or if any message has no
// role. Image-bearing prompts use the multi-part image layout.
func (p Prompt) OpenAIFormat() ([]openai.ChatCompletionMessage, error) {
	if p.lastIsAssistant() {
		last := p.Messages[len(p.Messages)-1]
		return nil, fmt.Errorf("openai chat prompts cannot end with an assistant message, got %s", last)
	}
	if p.hasNoneRole() {
		return nil, fmt.Errorf("openai chat prompts cannot contain a none-role message")
	}
	if p.ContainsImage() {
		return p.OpenAIImageFormat()
	}

	msgs := make([]openai.ChatCompletionMessage, len(p.Messages))
	for i, msg := range p.Messages {
		msgs[i] = openai.ChatCompletionMessage{
			Role:    string(msg.Role),
			Content: msg.Content,
		}
	}
	return msgs, nil
}

// OpenAIImageFormat renders an image-bearing prompt. A system message, if
// present, must be first and becomes its own entry; all image and user
// messages aggregate into a single multi-part user entry where image parts
// carry base64 data URLs and user parts carry raw text.
func (p Prompt) OpenAIImageFormat() ([]openai.ChatCompletionMessage, error) {
	var msgs []openai.ChatCompletionMessage
	var parts []openai.ChatMessagePart

	for i, msg := range p.Messages {
		switch msg.Role {
		case RoleSystem:
			if i != 0 {
				return nil, fmt.Errorf("system message must be first in an image prompt, found at position %d", i)
			}
			msgs = append(msgs, openai.ChatCompletionMessage{
				Role:    string(RoleSystem),
				Content: msg.Content,
			})
		case RoleImage:
			part, err := imagePart(msg.Content)
			if err != nil {
				return nil, err
			}
			parts = append(parts, part)
		case RoleUser:
			parts = append(parts, openai.ChatMessagePart{
				Type: openai.ChatMessagePartTypeText,
				Text: msg.Content,
			})
		default:
			return nil, fmt.Errorf("invalid role %s in image prompt", msg.Role)
		}
	}

	msgs = append(msgs, openai.ChatCompletionMessage{
		Role:         string(RoleUser),
		MultiContent: parts,
	})
	return msgs, nil
}

// OpenAISpeechFormat renders the prompt for the speech-to-speech API. Every
// message must be audio-role; each becomes a base64 WAV input-audio part.
func (p Prompt) OpenAISpeechFormat() ([]openai.ChatMessagePart, error) {
	parts := make([]openai.ChatMessagePart, 0, len(p.Messages))
	for _, msg := range p.Messages {
		if msg.Role != RoleAudio {
			return nil, fmt.Errorf("speech-to-speech prompts accept only audio messages, got role %s", msg.Role)
		}
		buf, err := audio.Resolve(msg.Content, msg.Audio)
		if err != nil {
			return nil, fmt.Errorf("preparing speech audio: %w", err)
		}
		parts = append(parts, openai.ChatMessagePart{
			Type: openai.ChatMessagePartTypeInputAudio,
			InputAudio: &openai.ChatMessageInputAudio{
				Data:   base64.StdEncoding.EncodeToString(buf.WAV()),
				Format: "wav",
			},
		})
	}
	return parts, nil
}

// imagePart base64-encodes the referenced image into a data-URL image part.
func imagePart(path string) (openai.ChatMessagePart, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return openai.ChatMessagePart{}, fmt.Errorf("reading image %s: %w", path, err)
	}
	return openai.ChatMessagePart{
		Type: openai.ChatMessagePartTypeImageURL,
		ImageURL: &openai.ChatMessageImageURL{
			URL: "data:image/png;base64," + base64.StdEncoding.EncodeToString(data),
		},
	}, nil
}
