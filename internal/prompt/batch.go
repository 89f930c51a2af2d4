package prompt

import (
	"fmt"

	"github.com/ewhitt/promptlab/internal/audio"
)

// BatchPrompt is an ordered sequence of prompts processed as one batch.
type BatchPrompt struct {
	Prompts []Prompt
}

// Len returns the number of prompts in the batch.
func (b BatchPrompt) Len() int { return len(b.Prompts) }

// At returns the prompt at the given index.
func (b BatchPrompt) At(i int) Prompt { return b.Prompts[i] }

// FromALMBatchInput builds a batch from parallel (audio, user text, system
// text) input lists. Audio and user lists must have equal lengths; the
// system list, when present, must match as well.
func FromALMBatchInput(audioInputs []*AudioInput, userPrompts []string, systemPrompts []*string) (BatchPrompt, error) {
	if audioInputs == nil && userPrompts == nil {
		return BatchPrompt{}, fmt.Errorf("either audio inputs or user prompts must be provided")
	}
	if audioInputs != nil && userPrompts != nil && len(audioInputs) != len(userPrompts) {
		return BatchPrompt{}, fmt.Errorf("audio inputs and user prompts must have the same length, got %d and %d",
			len(audioInputs), len(userPrompts))
	}

	n := len(audioInputs)
	if n == 0 {
		n = len(userPrompts)
	}
	if systemPrompts != nil && len(systemPrompts) != n {
		return BatchPrompt{}, fmt.Errorf("system prompts must match input length %d, got %d", n, len(systemPrompts))
	}

	prompts := make([]Prompt, 0, n)
	for i := 0; i < n; i++ {
		var audioIn *AudioInput
		if i < len(audioInputs) {
			audioIn = audioInputs[i]
		}
		var user *string
		if i < len(userPrompts) {
			user = &userPrompts[i]
		}
		var system *string
		if systemPrompts != nil {
			system = systemPrompts[i]
		}

		p, err := FromALMInput(audioIn, user, system)
		if err != nil {
			return BatchPrompt{}, fmt.Errorf("prompt %d: %w", i, err)
		}
		prompts = append(prompts, p)
	}
	return BatchPrompt{Prompts: prompts}, nil
}

// BatchFormat extracts, for each prompt, exactly one audio buffer, one user
// text (empty coerced to a single space), and at most one optional system
// text. It fails if any prompt has zero or multiple messages of a required
// role. Audio buffers are right-zero-padded to the maximum length and
// stacked, aligned by index with the parallel text slices.
func (b BatchPrompt) BatchFormat() (*audio.Batch, []string, []*string, error) {
	var (
		buffers []*audio.Buffer
		users   []string
		systems []*string
	)

	for i, p := range b.Prompts {
		var (
			buf    *audio.Buffer
			user   *string
			system *string
		)

		for _, msg := range p.Messages {
			switch msg.Role {
			case RoleAudio:
				if buf != nil {
					return nil, nil, nil, fmt.Errorf("prompt %d: multiple audio messages in a single prompt", i)
				}
				loaded, err := audio.Resolve(msg.Content, msg.Audio)
				if err != nil {
					return nil, nil, nil, fmt.Errorf("prompt %d: %w", i, err)
				}
				buf = loaded
			case RoleUser:
				if user != nil {
					return nil, nil, nil, fmt.Errorf("prompt %d: multiple user messages in a single prompt", i)
				}
				text := msg.Content
				if text == "" {
					text = " "
				}
				user = &text
			case RoleSystem:
				if system != nil {
					return nil, nil, nil, fmt.Errorf("prompt %d: multiple system messages in a single prompt", i)
				}
				content := msg.Content
				system = &content
			}
		}

		if buf == nil {
			return nil, nil, nil, fmt.Errorf("prompt %d: no audio message found", i)
		}
		if user == nil {
			return nil, nil, nil, fmt.Errorf("prompt %d: no user message found", i)
		}

		buffers = append(buffers, buf)
		users = append(users, *user)
		systems = append(systems, system)
	}

	batch, err := audio.Stack(buffers)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("stacking batch audio: %w", err)
	}
	return batch, users, systems, nil
}
