// Package prompt defines the message and prompt data model and its
// provider-specific wire formats.
package prompt

import (
	"fmt"
	"strings"

	"github.com/ewhitt/promptlab/internal/audio"
)

// Role identifies the sender of a message.
type Role string

const (
	RoleUser      Role = "user"
	RoleSystem    Role = "system"
	RoleAssistant Role = "assistant"
	RoleAudio     Role = "audio"
	RoleImage     Role = "image"
	// RoleNone is for completion-style content where no role tag is added.
	RoleNone Role = "none"
)

// ParseRole converts a role name into a Role.
func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RoleUser, RoleSystem, RoleAssistant, RoleAudio, RoleImage, RoleNone:
		return Role(s), nil
	default:
		return "", fmt.Errorf("unknown role %q", s)
	}
}

// ChatMessage is an immutable (role, content) pair. For audio-role messages
// Content is a file path unless an in-memory buffer is attached; the buffer
// is not part of the message's identity.
type ChatMessage struct {
	Role    Role
	Content string
	Audio   *audio.Buffer
}

func (m ChatMessage) String() string {
	return fmt.Sprintf("%s: %s", m.Role, m.Content)
}

// WithoutRole returns a copy of the message tagged with RoleNone.
func (m ChatMessage) WithoutRole() ChatMessage {
	m.Role = RoleNone
	return m
}

// Prompt is an immutable ordered sequence of messages. Mutation-style
// operations return new values; invariants are enforced at format time.
type Prompt struct {
	Messages []ChatMessage
}

// New builds a prompt from the given messages.
func New(messages ...ChatMessage) Prompt {
	return Prompt{Messages: messages}
}

func (p Prompt) String() string {
	var out strings.Builder
	for _, msg := range p.Messages {
		if msg.Role != RoleNone {
			out.WriteString(fmt.Sprintf("\n\n%s: %s", msg.Role, msg.Content))
		} else {
			out.WriteString("\n" + msg.Content)
		}
	}
	return strings.TrimSpace(out.String())
}

// Append returns a new prompt holding this prompt's messages followed by
// other's messages.
func (p Prompt) Append(other Prompt) Prompt {
	msgs := make([]ChatMessage, 0, len(p.Messages)+len(other.Messages))
	msgs = append(msgs, p.Messages...)
	msgs = append(msgs, other.Messages...)
	return Prompt{Messages: msgs}
}

// AddUserMessage returns a new prompt with a trailing user message.
func (p Prompt) AddUserMessage(content string) Prompt {
	return p.Append(New(ChatMessage{Role: RoleUser, Content: content}))
}

// AddAssistantMessage returns a new prompt with a trailing assistant message.
func (p Prompt) AddAssistantMessage(content string) Prompt {
	return p.Append(New(ChatMessage{Role: RoleAssistant, Content: content}))
}

// AddAudioMessage returns a new prompt with a trailing audio message
// referencing the given file path.
func (p Prompt) AddAudioMessage(path string) Prompt {
	return p.Append(New(ChatMessage{Role: RoleAudio, Content: path}))
}

// ContainsImage reports whether any message has the image role.
func (p Prompt) ContainsImage() bool {
	for _, msg := range p.Messages {
		if msg.Role == RoleImage {
			return true
		}
	}
	return false
}

func (p Prompt) hasNoneRole() bool {
	for _, msg := range p.Messages {
		if msg.Role == RoleNone {
			return true
		}
	}
	return false
}

func (p Prompt) lastIsAssistant() bool {
	return len(p.Messages) > 0 && p.Messages[len(p.Messages)-1].Role == RoleAssistant
}

// AudioInput is an input for FromALMInput: a file path or an in-memory buffer.
type AudioInput struct {
	Path   string
	Buffer *audio.Buffer
}

func (a AudioInput) empty() bool { return a.Path == "" && a.Buffer == nil }

// FromALMInput builds a prompt from raw (audio, user text, system text)
// inputs. At least one of audio or user text must be provided. Message order
// is audio, system, user.
func FromALMInput(audioIn *AudioInput, userPrompt, systemPrompt *string) (Prompt, error) {
	if audioIn == nil && userPrompt == nil {
		return Prompt{}, fmt.Errorf("either audio input or user prompt must be provided")
	}

	var msgs []ChatMessage
	if audioIn != nil && !audioIn.empty() {
		msgs = append(msgs, ChatMessage{Role: RoleAudio, Content: audioIn.Path, Audio: audioIn.Buffer})
	}
	if systemPrompt != nil {
		msgs = append(msgs, ChatMessage{Role: RoleSystem, Content: *systemPrompt})
	}
	if userPrompt != nil {
		msgs = append(msgs, ChatMessage{Role: RoleUser, Content: *userPrompt})
	}
	return Prompt{Messages: msgs}, nil
}
