package prompt

import (
	"fmt"
	"strings"
)

// zephyrModels are the model identifiers rendered with the zephyr turn
// template. See https://huggingface.co/HuggingFaceH4/zephyr-7b-beta.
var zephyrModels = map[string]bool{
	"cais/zephyr_7b_r2d2":          true,
	"HuggingFaceH4/zephyr-7b-beta": true,
}

// RawFormat renders the prompt as free text for completion-style models,
// keyed by the model identifier. Known models get their documented chat
// template; everything else falls back to contents joined by blank lines
// with no role tags.
func (p Prompt) RawFormat(modelID string) (string, error) {
	if zephyrModels[modelID] {
		return p.zephyrFormat()
	}

	contents := make([]string, len(p.Messages))
	for i, msg := range p.Messages {
		contents[i] = msg.Content
	}
	return strings.Join(contents, "\n\n"), nil
}

// zephyrFormat renders the zephyr turn template: each role tag followed by
// the content and a turn terminator, with a trailing assistant tag. The
// final message must be user-role.
func (p Prompt) zephyrFormat() (string, error) {
	var out strings.Builder
	for _, msg := range p.Messages {
		switch msg.Role {
		case RoleSystem:
			out.WriteString("<|system|>")
		case RoleUser:
			out.WriteString("<|user|>")
		case RoleAssistant:
			out.WriteString("<|assistant|>")
		default:
			return "", fmt.Errorf("invalid role %s in zephyr prompt", msg.Role)
		}
		out.WriteString(fmt.Sprintf("\n%s</s>\n", msg.Content))
	}

	if len(p.Messages) == 0 || p.Messages[len(p.Messages)-1].Role != RoleUser {
		return "", fmt.Errorf("last message in a zephyr prompt must be user-role")
	}
	out.WriteString("<|assistant|>\n")
	return out.String(), nil
}
