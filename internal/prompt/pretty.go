package prompt

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Completion is a rendered model response for PrettyPrint.
type Completion struct {
	ModelID string
	Content string
}

var (
	headerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("15"))
	replyStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Bold(true)

	roleStyles = map[Role]lipgloss.Style{
		RoleUser:      lipgloss.NewStyle().Foreground(lipgloss.Color("14")), // cyan
		RoleSystem:    lipgloss.NewStyle().Foreground(lipgloss.Color("13")), // magenta
		RoleAssistant: lipgloss.NewStyle().Foreground(lipgloss.Color("10")), // green
		RoleAudio:     lipgloss.NewStyle().Foreground(lipgloss.Color("11")), // yellow
		RoleImage:     lipgloss.NewStyle().Foreground(lipgloss.Color("11")), // yellow
		RoleNone:      lipgloss.NewStyle().Foreground(lipgloss.Color("14")), // cyan
	}
)

// PrettyPrint writes the prompt and any responses to w with per-role
// coloring. Presentation only; no wire contract.
func (p Prompt) PrettyPrint(w io.Writer, responses []Completion) {
	for _, msg := range p.Messages {
		if msg.Role != RoleNone {
			fmt.Fprintln(w, headerStyle.Render(fmt.Sprintf("==%s:", strings.ToUpper(string(msg.Role)))))
		}
		fmt.Fprintln(w, roleStyles[msg.Role].Render(msg.Content))
	}
	for i, resp := range responses {
		fmt.Fprintln(w, headerStyle.Render(fmt.Sprintf("==RESPONSE %d (%s):", i+1, resp.ModelID)))
		fmt.Fprintln(w, replyStyle.Render(resp.Content))
	}
	fmt.Fprintln(w)
}
