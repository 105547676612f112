// Package view provides UI rendering functions.
package view

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/palemoky/pass-four/internal/ui/common"
	"github.com/palemoky/pass-four/internal/ui/model"
)

// Render renders the view for the given phase.
func Render(m model.Model, phase model.GamePhase) string {
	switch phase {
	case model.PhaseNaming:
		return NamingView(m)
	case model.PhaseLobby:
		return LobbyView(m)
	case model.PhaseWaiting, model.PhasePlaying, model.PhaseConcluded:
		return RoomView(m)
	default:
		return ""
	}
}

// header 标题 + 状态栏 + 系统通知
func header(m model.Model) string {
	var sb strings.Builder

	title := common.TitleStyle("🃏 传四张")
	sb.WriteString(lipgloss.PlaceHorizontal(m.Width(), lipgloss.Center, title))
	sb.WriteString("\n")

	if m.PlayerName() != "" {
		status := fmt.Sprintf("%s %s | 延迟 %dms", common.PlayerIcon, m.PlayerName(), m.Latency())
		sb.WriteString(lipgloss.PlaceHorizontal(m.Width(), lipgloss.Center, common.HintStyle.Render(status)))
	}
	sb.WriteString("\n")

	if n := m.GetCurrentNotification(); n != nil {
		sb.WriteString(lipgloss.PlaceHorizontal(m.Width(), lipgloss.Center, notificationStyle(n.Type).Render(n.Message)))
	}
	sb.WriteString("\n")

	return sb.String()
}

func notificationStyle(t model.NotificationType) lipgloss.Style {
	switch t {
	case model.NotifyError, model.NotifyRateLimit, model.NotifyMaintenance:
		return common.WarningStyle
	default:
		return common.SuccessStyle
	}
}

// inputLine 输入框 + 操作提示
func inputLine(m model.Model, hint string) string {
	var sb strings.Builder
	sb.WriteString(common.PromptStyle.Render(m.Input().View()))
	sb.WriteString("\n")
	sb.WriteString(common.HintStyle.Render(hint))
	return sb.String()
}

// NamingView renders the nickname prompt.
func NamingView(m model.Model) string {
	content := lipgloss.JoinVertical(lipgloss.Left,
		header(m),
		"请先给自己起个名字:",
		inputLine(m, "回车确认 | ESC 退出"),
	)
	return lipgloss.Place(m.Width(), m.Height(), lipgloss.Center, lipgloss.Center, content)
}
