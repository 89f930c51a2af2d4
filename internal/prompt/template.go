package prompt

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Template is a declarative, reusable conversation shape: a named method
// tag, a parametrized message skeleton, optional follow-up messages, and
// free-form extras.
type Template struct {
	Method    string            `yaml:"method"`
	Messages  []TemplateMessage `yaml:"messages"`
	FollowUps []TemplateMessage `yaml:"followups,omitempty"`
	Extra     map[string]string `yaml:"extra,omitempty"`
}

// TemplateMessage is one role-tagged entry of a template skeleton.
type TemplateMessage struct {
	Role    string `yaml:"role"`
	Content string `yaml:"content"`
}

// LoadTemplate reads a template definition from a YAML file.
func LoadTemplate(path string) (*Template, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading template %s: %w", path, err)
	}

	var t Template
	if err := yaml.Unmarshal(data, &t); err != nil {
		return nil, fmt.Errorf("parsing template %s: %w", path, err)
	}
	if t.Method == "" {
		return nil, fmt.Errorf("template %s: method is required", path)
	}
	for i, msg := range t.Messages {
		if _, err := ParseRole(msg.Role); err != nil {
			return nil, fmt.Errorf("template %s message %d: %w", path, i, err)
		}
	}
	return &t, nil
}

// Prompt materializes the template skeleton into a Prompt.
func (t *Template) Prompt() Prompt {
	msgs := make([]ChatMessage, len(t.Messages))
	for i, m := range t.Messages {
		role, _ := ParseRole(m.Role)
		msgs[i] = ChatMessage{Role: role, Content: m.Content}
	}
	return Prompt{Messages: msgs}
}
