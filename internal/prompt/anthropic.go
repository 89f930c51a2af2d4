package prompt

import "fmt"

// AnthropicMessage matches the Anthropic Messages API message shape.
type AnthropicMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// AnthropicFormat renders the prompt for the Anthropic Messages API. It
// returns the optional leading system text and the remaining user/assistant
// messages. None-role messages are rejected, as is any other role in the
// message list.
func (p Prompt) AnthropicFormat() (string, []AnthropicMessage, error) {
	if p.hasNoneRole() {
		return "", nil, fmt.Errorf("anthropic chat prompts cannot contain a none-role message")
	}
	if len(p.Messages) == 0 {
		return "", nil, nil
	}

	msgs := p.Messages
	var system string
	if msgs[0].Role == RoleSystem {
		system = msgs[0].Content
		msgs = msgs[1:]
	}

	out := make([]AnthropicMessage, len(msgs))
	for i, msg := range msgs {
		if msg.Role != RoleUser && msg.Role != RoleAssistant {
			return "", nil, fmt.Errorf("anthropic messages must be user or assistant, got %s", msg.Role)
		}
		out[i] = AnthropicMessage{Role: string(msg.Role), Content: msg.Content}
	}
	return system, out, nil
}
