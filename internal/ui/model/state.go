package model

import (
	"slices"

	"github.com/palemoky/pass-four/internal/protocol"
)

// maxChatHistory 本地保留的聊天行数
const maxChatHistory = 50

// LobbyPrompt is what the lobby input is currently asking for.
type LobbyPrompt int

const (
	PromptNone   LobbyPrompt = iota
	PromptSeats              // 创建房间：输入座位数
	PromptRoomID             // 加入房间：输入房间号
)

// LobbyMenu 大厅菜单
var LobbyMenu = []string{
	"1. 创建房间",
	"2. 加入房间",
	"3. 退出游戏",
}

// LobbyState holds lobby navigation state.
type LobbyState struct {
	SelectedIndex int
	Prompt        LobbyPrompt
}

// MoveSelection moves the menu cursor by delta, clamped to the menu.
func (l *LobbyState) MoveSelection(delta int) {
	l.SelectedIndex = min(max(l.SelectedIndex+delta, 0), len(LobbyMenu)-1)
}

// RoomState mirrors what the server has told this seat about its room.
type RoomState struct {
	ID    string
	Seats []protocol.SeatInfo
	Full  bool

	// 提交阶段
	Submitted int
	Required  int

	// 传牌阶段
	Hand       []string
	Selected   int
	TurnHolder string
	TurnIsBot  bool

	// 结算
	WinnerName string
	WinLabel   string
	Votes      int
	VoteTarget int

	Chat []string
}

// Reset clears all room state.
func (r *RoomState) Reset() {
	*r = RoomState{}
}

// SetHand replaces the hand and keeps the selection in range.
func (r *RoomState) SetHand(hand []string) {
	r.Hand = slices.Clone(hand)
	r.Selected = min(max(r.Selected, 0), max(len(r.Hand)-1, 0))
}

// MoveSelection moves the hand cursor by delta, wrapping around.
func (r *RoomState) MoveSelection(delta int) {
	if len(r.Hand) == 0 {
		return
	}
	n := len(r.Hand)
	r.Selected = ((r.Selected+delta)%n + n) % n
}

// SelectedCard returns the card under the cursor.
func (r *RoomState) SelectedCard() (string, bool) {
	if r.Selected < 0 || r.Selected >= len(r.Hand) {
		return "", false
	}
	return r.Hand[r.Selected], true
}

// IsTurnOf reports whether the named seat holds the turn.
func (r *RoomState) IsTurnOf(name string) bool {
	return r.TurnHolder != "" && r.TurnHolder == name
}

// AddChat appends a chat line, trimming the oldest lines.
func (r *RoomState) AddChat(line string) {
	r.Chat = append(r.Chat, line)
	if len(r.Chat) > maxChatHistory {
		r.Chat = r.Chat[len(r.Chat)-maxChatHistory:]
	}
}

// SetChat replaces the chat log.
func (r *RoomState) SetChat(lines []string) {
	r.Chat = nil
	for _, l := range lines {
		r.AddChat(l)
	}
}

// StartRound resets the per-round state for a fresh deal.
func (r *RoomState) StartRound(hand []string) {
	r.Selected = 0
	r.SetHand(hand)
	r.WinnerName, r.WinLabel = "", ""
	r.Votes, r.VoteTarget = 0, 0
}
