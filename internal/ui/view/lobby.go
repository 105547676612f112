package view

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/palemoky/pass-four/internal/ui/common"
	"github.com/palemoky/pass-four/internal/ui/model"
)

// LobbyView renders the lobby view.
func LobbyView(m model.Model) string {
	var sb strings.Builder
	sb.WriteString(header(m))
	sb.WriteString("\n")

	menu := renderMenu(m.Lobby())
	sb.WriteString(lipgloss.PlaceHorizontal(m.Width(), lipgloss.Center, menu))
	sb.WriteString("\n")

	hint := "↑↓ 选择 | 回车确认 | ESC 退出"
	if m.Lobby().Prompt != model.PromptNone {
		hint = "回车确认 | ESC 返回"
	}
	sb.WriteString(lipgloss.PlaceHorizontal(m.Width(), lipgloss.Center, inputLine(m, hint)))

	return sb.String()
}

func renderMenu(lobby *model.LobbyState) string {
	lines := []string{"请选择:", ""}
	for i, item := range model.LobbyMenu {
		prefix := "  "
		if i == lobby.SelectedIndex {
			prefix = "▶ "
		}
		lines = append(lines, prefix+item)
	}
	return common.BoxStyle.Padding(0, 2).Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}
