package model

import (
	"fmt"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/palemoky/pass-four/internal/protocol"
	"github.com/palemoky/pass-four/internal/ui/common"
)

const (
	lobbyPlaceholder  = "输入选项 (1-3)"
	namingPlaceholder = "输入你的昵称"
	roomPlaceholder   = "输入聊天内容，或 /help 查看命令"
)

// OnlineModel is the main model for online game mode.
type OnlineModel struct {
	client GameClient
	phase  GamePhase
	error  string

	// Player info
	playerID   string
	playerName string

	// Maintenance mode
	maintenanceMode bool

	// System notifications
	notifications map[NotificationType]*SystemNotification

	// Sub-states
	lobby *LobbyState
	room  *RoomState

	// UI components
	input  *textinput.Model
	width  int
	height int

	// View renderer (injected to break circular import)
	viewRenderer func(Model, GamePhase) string

	// Key handler (injected to break circular import)
	keyHandler func(Model, tea.KeyMsg) (bool, tea.Cmd)

	// Server message handler (injected to break circular import)
	serverMessageHandler func(Model, *protocol.Message) tea.Cmd
}

// NewOnlineModel creates a new OnlineModel. An empty name makes the
// player pick one after connecting.
func NewOnlineModel(c GameClient, name string) *OnlineModel {
	ti := textinput.New()
	ti.Placeholder = lobbyPlaceholder
	ti.CharLimit = 120
	ti.Width = 40
	ti.Focus()

	return &OnlineModel{
		client:        c,
		phase:         PhaseConnecting,
		playerName:    name,
		input:         &ti,
		lobby:         &LobbyState{},
		room:          &RoomState{},
		notifications: make(map[NotificationType]*SystemNotification),
	}
}

func (m *OnlineModel) Init() tea.Cmd {
	return tea.Batch(
		m.connectToServer(),
		textinput.Blink,
	)
}

func (m *OnlineModel) connectToServer() tea.Cmd {
	return func() tea.Msg {
		if err := m.client.Connect(); err != nil {
			return ConnectionErrorMsg{Err: err}
		}
		return ConnectedMsg{}
	}
}

func (m *OnlineModel) listenForMessages() tea.Cmd {
	return func() tea.Msg {
		msg, err := m.client.Receive()
		if err != nil {
			return ConnectionErrorMsg{Err: err}
		}
		return ServerMessage{Msg: msg}
	}
}

// --- Model interface implementation ---

func (m *OnlineModel) Phase() GamePhase           { return m.phase }
func (m *OnlineModel) SetPhase(phase GamePhase)   { m.phase = phase }
func (m *OnlineModel) PlayerID() string           { return m.playerID }
func (m *OnlineModel) SetPlayerID(id string)      { m.playerID = id }
func (m *OnlineModel) PlayerName() string         { return m.playerName }
func (m *OnlineModel) SetPlayerName(name string)  { m.playerName = name }
func (m *OnlineModel) Client() GameClient         { return m.client }
func (m *OnlineModel) Input() *textinput.Model    { return m.input }
func (m *OnlineModel) Lobby() *LobbyState         { return m.lobby }
func (m *OnlineModel) Room() *RoomState           { return m.room }
func (m *OnlineModel) IsMaintenanceMode() bool    { return m.maintenanceMode }
func (m *OnlineModel) SetMaintenanceMode(on bool) { m.maintenanceMode = on }
func (m *OnlineModel) Latency() int64             { return m.client.GetLatency() }
func (m *OnlineModel) Error() string              { return m.error }
func (m *OnlineModel) Width() int                 { return m.width }
func (m *OnlineModel) Height() int                { return m.height }

func (m *OnlineModel) SetNotification(notifyType NotificationType, message string, temporary bool) {
	m.notifications[notifyType] = &SystemNotification{
		Message:   message,
		Type:      notifyType,
		Temporary: temporary,
	}
}

func (m *OnlineModel) ClearNotification(notifyType NotificationType) {
	delete(m.notifications, notifyType)
}

func (m *OnlineModel) GetCurrentNotification() *SystemNotification {
	priorityOrder := []NotificationType{
		NotifyError,
		NotifyRateLimit,
		NotifyMaintenance,
		NotifyInfo,
	}

	for _, notifyType := range priorityOrder {
		if notification, exists := m.notifications[notifyType]; exists {
			return notification
		}
	}
	return nil
}

// EnterLobby leaves any room and shows the lobby menu.
func (m *OnlineModel) EnterLobby() {
	m.phase = PhaseLobby
	m.error = ""
	m.room.Reset()
	m.lobby.Prompt = PromptNone
	m.input.Reset()
	m.input.Placeholder = lobbyPlaceholder
	m.input.Focus()
}

// EnterRoom switches to the waiting phase of a freshly joined room.
func (m *OnlineModel) EnterRoom(roomID string, seats []protocol.SeatInfo) {
	m.room.Reset()
	m.room.ID = roomID
	m.room.Seats = seats
	m.phase = PhaseWaiting
	m.lobby.Prompt = PromptNone
	m.input.Reset()
	m.input.Placeholder = roomPlaceholder
	m.input.Focus()
}

func (m *OnlineModel) enterNaming() {
	m.phase = PhaseNaming
	m.input.Reset()
	m.input.Placeholder = namingPlaceholder
	m.input.Focus()
}

// Update handles tea messages.
func (m *OnlineModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case ConnectedMsg:
		m.playerID = m.client.GetPlayerID()
		if m.playerName == "" {
			m.enterNaming()
		} else {
			m.EnterLobby()
		}
		m.client.StartHeartbeat()
		cmds = append(cmds, m.listenForMessages())

	case ConnectionErrorMsg:
		m.error = fmt.Sprintf("无法连接到服务器: %v\n\n按 ESC 退出", msg.Err)
		m.phase = PhaseConnecting

	case ClearSystemNotificationMsg:
		m.ClearNotification(NotifyError)
		m.ClearNotification(NotifyRateLimit)
		m.ClearNotification(NotifyInfo)

	case ServerMessage:
		if m.serverMessageHandler != nil {
			if cmd := m.serverMessageHandler(m, msg.Msg); cmd != nil {
				cmds = append(cmds, cmd)
			}
		}
		if m.client.IsConnected() {
			cmds = append(cmds, m.listenForMessages())
		}

	case tea.KeyMsg:
		if m.keyHandler != nil {
			handled, keyCmd := m.keyHandler(m, msg)
			if keyCmd != nil {
				cmds = append(cmds, keyCmd)
			}
			if handled {
				return m, tea.Batch(cmds...)
			}
		}
	}

	newInput, cmd := m.input.Update(msg)
	*m.input = newInput
	cmds = append(cmds, cmd)

	return m, tea.Batch(cmds...)
}

// View renders the model.
func (m *OnlineModel) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	var content string

	switch m.phase {
	case PhaseConnecting:
		content = m.connectingView()
	default:
		if m.viewRenderer != nil {
			content = m.viewRenderer(m, m.phase)
		} else {
			content = "View renderer not initialized"
		}
	}

	return common.DocStyle.Render(content)
}

// SetViewRenderer sets the view rendering function.
func (m *OnlineModel) SetViewRenderer(fn func(Model, GamePhase) string) {
	m.viewRenderer = fn
}

// SetKeyHandler sets the keyboard event handler function.
func (m *OnlineModel) SetKeyHandler(fn func(Model, tea.KeyMsg) (bool, tea.Cmd)) {
	m.keyHandler = fn
}

// SetServerMessageHandler sets the server message handler function.
func (m *OnlineModel) SetServerMessageHandler(fn func(Model, *protocol.Message) tea.Cmd) {
	m.serverMessageHandler = fn
}

func (m *OnlineModel) connectingView() string {
	var sb string
	if m.error != "" {
		sb = common.ErrorStyle.Render(m.error)
	} else {
		sb = "正在连接服务器..."
	}
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, sb)
}
