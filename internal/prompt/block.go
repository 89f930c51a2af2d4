package prompt

import (
	"fmt"
	"strings"
)

// DefaultBlockSep is the delimiter token of the block text format.
const DefaultBlockSep = "========"

// ParseBlocks parses the delimited block text format into a prompt. Each
// message is encoded as the delimiter, a role name, the delimiter again, a
// newline, then the content. Text that does not start with the delimiter
// becomes a single user message.
//
// There is no escaping for the delimiter token inside content: a line
// starting with the delimiter always begins a new block.
func ParseBlocks(text, sep string, stripContent bool) (Prompt, error) {
	if sep == "" {
		sep = DefaultBlockSep
	}

	if !strings.HasPrefix(text, sep) {
		content := text
		if stripContent {
			content = strings.TrimSpace(content)
		}
		return New(ChatMessage{Role: RoleUser, Content: content}), nil
	}

	var msgs []ChatMessage
	for _, block := range strings.Split("\n"+text, "\n"+sep) {
		if block == "" {
			continue
		}

		parts := strings.SplitN(block, sep+"\n", 2)
		if len(parts) != 2 {
			return Prompt{}, fmt.Errorf("malformed block %q: missing %q after role name", block, sep)
		}
		role, err := ParseRole(parts[0])
		if err != nil {
			return Prompt{}, fmt.Errorf("parsing block role: %w", err)
		}

		content := parts[1]
		if stripContent {
			content = strings.TrimSpace(content)
		}
		msgs = append(msgs, ChatMessage{Role: role, Content: content})
	}

	return Prompt{Messages: msgs}, nil
}

// BlockFormat serializes the prompt into the delimited block text format.
// The output round-trips through ParseBlocks.
func (p Prompt) BlockFormat(sep string) string {
	if sep == "" {
		sep = DefaultBlockSep
	}

	blocks := make([]string, len(p.Messages))
	for i, msg := range p.Messages {
		blocks[i] = fmt.Sprintf("%s%s%s\n%s", sep, msg.Role, sep, msg.Content)
	}
	return strings.Join(blocks, "\n")
}
