// Package input handles keyboard input.
package input

import (
	"errors"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/palemoky/pass-four/internal/ui/handler"
	"github.com/palemoky/pass-four/internal/ui/model"
)

const (
	lobbyPlaceholder  = "输入选项 (1-3)"
	seatsPlaceholder  = "输入座位数 (至少 2)，ESC 返回"
	roomIDPlaceholder = "输入房间号，ESC 返回"
)

// HandleKeyPress processes keyboard input.
func HandleKeyPress(m model.Model, msg tea.KeyMsg) (bool, tea.Cmd) {
	switch msg.Type {
	case tea.KeyCtrlC:
		return true, quit(m)
	case tea.KeyEsc:
		return handleEsc(m)
	case tea.KeyEnter:
		return true, handleEnter(m)
	case tea.KeyUp, tea.KeyDown:
		if m.Phase() == model.PhaseLobby && m.Lobby().Prompt == model.PromptNone {
			m.Lobby().MoveSelection(direction(msg.Type == tea.KeyDown))
			return true, nil
		}
	case tea.KeyLeft, tea.KeyRight:
		if m.Phase() == model.PhasePlaying && m.Input().Value() == "" {
			m.Room().MoveSelection(direction(msg.Type == tea.KeyRight))
			return true, nil
		}
	}
	return false, nil
}

func direction(forward bool) int {
	if forward {
		return 1
	}
	return -1
}

func quit(m model.Model) tea.Cmd {
	m.Client().Close()
	return tea.Quit
}

func handleEsc(m model.Model) (bool, tea.Cmd) {
	switch {
	case m.Phase() == model.PhaseLobby && m.Lobby().Prompt != model.PromptNone:
		resetLobbyPrompt(m)
		return true, nil
	case m.Phase().InRoom():
		m.Input().Reset()
		return true, nil
	default:
		return true, quit(m)
	}
}

func handleEnter(m model.Model) tea.Cmd {
	value := strings.TrimSpace(m.Input().Value())
	m.Input().Reset()

	var err error
	switch phase := m.Phase(); {
	case phase == model.PhaseNaming:
		err = handleNaming(m, value)
	case phase == model.PhaseLobby:
		var cmd tea.Cmd
		cmd, err = handleLobbyEnter(m, value)
		if cmd != nil {
			return cmd
		}
	case phase.InRoom():
		err = handleRoomEnter(m, value)
	}

	if err != nil {
		return handler.Notify(m, model.NotifyError, "❌ "+err.Error())
	}
	return nil
}

func handleNaming(m model.Model, value string) error {
	if value == "" {
		return errors.New("昵称不能为空")
	}
	m.SetPlayerName(value)
	m.EnterLobby()
	return nil
}

func resetLobbyPrompt(m model.Model) {
	m.Lobby().Prompt = model.PromptNone
	m.Input().Reset()
	m.Input().Placeholder = lobbyPlaceholder
}

// handleLobbyEnter 处理大厅回车：选择菜单项或提交当前提示的输入
func handleLobbyEnter(m model.Model, value string) (tea.Cmd, error) {
	lobby := m.Lobby()

	switch lobby.Prompt {
	case model.PromptSeats:
		seats, err := strconv.Atoi(value)
		if err != nil || seats < 2 {
			return nil, errors.New("请输入有效的座位数")
		}
		resetLobbyPrompt(m)
		return nil, m.Client().CreateRoom(m.PlayerName(), seats)

	case model.PromptRoomID:
		if value == "" {
			return nil, errors.New("房间号不能为空")
		}
		resetLobbyPrompt(m)
		return nil, m.Client().JoinRoom(value, m.PlayerName())
	}

	option := lobby.SelectedIndex + 1
	if value != "" {
		n, err := strconv.Atoi(value)
		if err != nil || n < 1 || n > len(model.LobbyMenu) {
			return nil, errors.New("无效的选项")
		}
		option = n
		lobby.SelectedIndex = n - 1
	}

	switch option {
	case 1, 2:
		if m.IsMaintenanceMode() {
			return nil, errors.New("服务器维护中，暂停创建和加入房间")
		}
		if option == 1 {
			lobby.Prompt = model.PromptSeats
			m.Input().Placeholder = seatsPlaceholder
		} else {
			lobby.Prompt = model.PromptRoomID
			m.Input().Placeholder = roomIDPlaceholder
		}
		return nil, nil
	default:
		return quit(m), nil
	}
}

// handleRoomEnter 房间内回车：空输入执行当前阶段的默认动作，/ 开头为命令，其余为聊天
func handleRoomEnter(m model.Model, value string) error {
	switch {
	case value == "":
		switch m.Phase() {
		case model.PhasePlaying:
			return passCard(m, "")
		case model.PhaseConcluded:
			return m.Client().RequestRematch(m.Room().ID, m.PlayerName())
		}
		return nil
	case strings.HasPrefix(value, "/"):
		return runCommand(m, value)
	default:
		return m.Client().SendChat(m.Room().ID, m.PlayerName(), value)
	}
}

// passCard 传出指定的牌；未指定时轮到机器人则代其出牌，否则传出光标所在的牌
func passCard(m model.Model, label string) error {
	room := m.Room()
	if label == "" && !room.TurnIsBot {
		card, ok := room.SelectedCard()
		if !ok {
			return errors.New("没有可传的牌")
		}
		label = card
	}
	return m.Client().PassCard(room.ID, label)
}
