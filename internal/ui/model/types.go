// Package model defines the core types and interfaces for the UI.
package model

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/palemoky/pass-four/internal/protocol"
)

// GamePhase represents the current UI phase.
type GamePhase int

const (
	PhaseConnecting GamePhase = iota
	PhaseNaming
	PhaseLobby
	PhaseWaiting   // 已入座，等待满员/提交卡牌名称
	PhasePlaying   // 传牌中
	PhaseConcluded // 本局结束，等待再来一局
)

// InRoom reports whether the phase belongs to a seated player.
func (p GamePhase) InRoom() bool {
	return p == PhaseWaiting || p == PhasePlaying || p == PhaseConcluded
}

// NotificationType represents types of system notifications.
type NotificationType int

const (
	NotifyError       NotificationType = iota // 错误信息（临时）
	NotifyRateLimit                           // 限频提示（临时）
	NotifyInfo                                // 普通提示（临时）
	NotifyMaintenance                         // 维护通知（持久）
)

// SystemNotification represents a system notification.
type SystemNotification struct {
	Message   string
	Type      NotificationType
	Temporary bool // 是否为临时通知（3秒后自动消失）
}

// --- Tea Messages ---

// ServerMessage wraps a protocol message for tea.Msg.
type ServerMessage struct {
	Msg *protocol.Message
}

// ConnectedMsg indicates successful connection.
type ConnectedMsg struct{}

// ConnectionErrorMsg indicates a connection error.
type ConnectionErrorMsg struct {
	Err error
}

// ClearSystemNotificationMsg clears temporary notifications.
type ClearSystemNotificationMsg struct{}

// --- Client Interface ---

// GameClient is the subset of the websocket client the UI drives.
type GameClient interface {
	Connect() error
	Receive() (*protocol.Message, error)
	IsConnected() bool
	StartHeartbeat()
	GetPlayerID() string
	GetLatency() int64
	Close()

	CreateRoom(name string, seats int) error
	JoinRoom(roomID, name string) error
	AddBots(roomID string, count, seats int) error
	SubmitLabels(roomID string, labels []string) error
	StartGame(roomID string) error
	PassCard(roomID, label string) error
	RequestRematch(roomID, name string) error
	ExitRoom(roomID string) error
	SendChat(roomID, name, text string) error
	ChatHistory(roomID string) error
}

// --- Model Interface ---

// Model is the main interface for OnlineModel, used by handler/view/input packages.
type Model interface {
	// Phase management
	Phase() GamePhase
	SetPhase(GamePhase)

	// Player info
	PlayerID() string
	SetPlayerID(string)
	PlayerName() string
	SetPlayerName(string)

	// Client access
	Client() GameClient

	// UI components
	Input() *textinput.Model

	// Sub-states
	Lobby() *LobbyState
	Room() *RoomState

	// Notification management
	SetNotification(notifyType NotificationType, message string, temporary bool)
	ClearNotification(notifyType NotificationType)
	GetCurrentNotification() *SystemNotification

	// State management
	EnterLobby()
	EnterRoom(roomID string, seats []protocol.SeatInfo)
	IsMaintenanceMode() bool
	SetMaintenanceMode(bool)

	// Status
	Latency() int64
	Error() string
	Width() int
	Height() int
}

// --- Handler Interface ---

// Handler processes server messages.
type Handler interface {
	HandleServerMessage(m Model, msg *protocol.Message) tea.Cmd
}

// InputHandler processes keyboard input.
type InputHandler interface {
	HandleKeyPress(m Model, msg tea.KeyMsg) (handled bool, cmd tea.Cmd)
}
