package view

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/palemoky/pass-four/internal/ui/common"
	"github.com/palemoky/pass-four/internal/ui/model"
)

const (
	seatNameWidth = 12
	chatBoxWidth  = 44
	chatBoxLines  = 10
)

// RoomView renders the seated phases: waiting, playing and concluded.
func RoomView(m model.Model) string {
	room := m.Room()

	var sb strings.Builder
	sb.WriteString(header(m))
	sb.WriteString(common.HintStyle.Render("房间号: " + room.ID))
	sb.WriteString("\n\n")

	left := lipgloss.JoinVertical(lipgloss.Left,
		renderSeats(room, m.PlayerName()),
		"",
		renderStage(m),
	)
	main := lipgloss.JoinHorizontal(lipgloss.Top, left, "  ", renderChat(room.Chat, chatBoxLines))
	sb.WriteString(main)
	sb.WriteString("\n")

	if m.Phase() == model.PhasePlaying {
		sb.WriteString(renderHand(room.Hand, room.Selected))
		sb.WriteString("\n")
	}

	sb.WriteString(inputLine(m, roomHint(m.Phase())))
	return sb.String()
}

func roomHint(phase model.GamePhase) string {
	switch phase {
	case model.PhasePlaying:
		return "←→ 选牌 | 空输入回车传牌 | /help 命令"
	case model.PhaseConcluded:
		return "空输入回车再来一局 | /exit 离开 | /help 命令"
	default:
		return "/bots 添加机器人 | /labels 提交卡牌名称 | /start 开始 | /help 命令"
	}
}

// renderSeats 座位列表，标记自己、当前回合和胜者
func renderSeats(room *model.RoomState, me string) string {
	lines := []string{lipgloss.NewStyle().Bold(true).Render(fmt.Sprintf("座位 (%d)", len(room.Seats)))}
	for _, s := range room.Seats {
		icon := common.PlayerIcon
		if s.IsBot {
			icon = common.BotIcon
		}

		marker := "  "
		switch {
		case room.WinnerName != "" && s.Name == room.WinnerName:
			marker = common.WinnerIcon
		case room.IsTurnOf(s.Name):
			marker = common.TurnIcon
		}

		name := common.TruncateName(s.Name, seatNameWidth)
		if s.Name == me {
			name += " (你)"
		}

		line := fmt.Sprintf("%s %s %s", marker, icon, name)
		if s.CardsCount > 0 {
			line += fmt.Sprintf("  %d 张", s.CardsCount)
		}
		if room.IsTurnOf(s.Name) {
			line = common.TurnStyle.Render(line)
		}
		lines = append(lines, line)
	}
	return common.BoxStyle.Padding(0, 1).Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}

// renderStage 当前阶段的说明
func renderStage(m model.Model) string {
	room := m.Room()

	switch m.Phase() {
	case model.PhasePlaying:
		switch {
		case room.IsTurnOf(m.PlayerName()):
			return common.TurnStyle.Render("轮到你传牌了")
		case room.TurnIsBot:
			return fmt.Sprintf("轮到 %s %s，回车可代其出牌", common.BotIcon, room.TurnHolder)
		default:
			return fmt.Sprintf("等待 %s 传牌...", room.TurnHolder)
		}

	case model.PhaseConcluded:
		lines := []string{
			common.SuccessStyle.Render(fmt.Sprintf("%s %s 凑齐了四张 %s", common.WinnerIcon, room.WinnerName, room.WinLabel)),
		}
		if room.VoteTarget > 0 {
			lines = append(lines, fmt.Sprintf("再来一局: %d/%d", room.Votes, room.VoteTarget))
		}
		return lipgloss.JoinVertical(lipgloss.Left, lines...)

	default:
		switch {
		case !room.Full:
			return "等待玩家加入..."
		case room.Required > 0:
			return fmt.Sprintf("卡牌名称已提交 %d/%d", room.Submitted, room.Required)
		default:
			return "房间已满员，请提交卡牌名称"
		}
	}
}

// renderHand 手牌，光标所在的牌高亮
func renderHand(hand []string, selected int) string {
	if len(hand) == 0 {
		return common.HintStyle.Render("(没有手牌)")
	}
	cards := make([]string, 0, len(hand))
	for i, label := range hand {
		style := common.CardStyle
		if i == selected {
			style = common.SelectedStyle
		}
		cards = append(cards, style.Render(label))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, cards...)
}

// renderChat 聊天框，只显示最近的 height 行
func renderChat(lines []string, height int) string {
	start := max(len(lines)-height, 0)
	content := []string{lipgloss.NewStyle().Bold(true).Render("💬 聊天")}
	if len(lines) == 0 {
		content = append(content, common.HintStyle.Render("暂无消息..."))
	}
	content = append(content, lines[start:]...)
	return common.BoxStyle.Width(chatBoxWidth).Render(lipgloss.JoinVertical(lipgloss.Left, content...))
}
