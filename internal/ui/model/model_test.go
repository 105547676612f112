package model

import (
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/palemoky/pass-four/internal/protocol"
	"github.com/palemoky/pass-four/internal/testutil"
)

// --- RoomState Tests ---

func TestRoomState_SetHandClampsSelection(t *testing.T) {
	t.Parallel()

	r := &RoomState{Selected: 3}
	r.SetHand([]string{"A", "B"})
	assert.Equal(t, 1, r.Selected)

	card, ok := r.SelectedCard()
	require.True(t, ok)
	assert.Equal(t, "B", card)

	r.SetHand(nil)
	assert.Equal(t, 0, r.Selected)
	_, ok = r.SelectedCard()
	assert.False(t, ok)
}

func TestRoomState_SetHandCopies(t *testing.T) {
	t.Parallel()

	hand := []string{"A", "B"}
	r := &RoomState{}
	r.SetHand(hand)
	hand[0] = "Z"
	assert.Equal(t, []string{"A", "B"}, r.Hand)
}

func TestRoomState_MoveSelection(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		start    int
		delta    int
		expected int
	}{
		{"right", 0, 1, 1},
		{"left wraps", 0, -1, 3},
		{"right wraps", 3, 1, 0},
		{"large delta", 1, 9, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			r := &RoomState{Hand: []string{"A", "B", "C", "D"}, Selected: tt.start}
			r.MoveSelection(tt.delta)
			assert.Equal(t, tt.expected, r.Selected)
		})
	}
}

func TestRoomState_MoveSelectionEmptyHand(t *testing.T) {
	t.Parallel()

	r := &RoomState{}
	r.MoveSelection(1)
	assert.Equal(t, 0, r.Selected)
}

func TestRoomState_ChatTrimmed(t *testing.T) {
	t.Parallel()

	r := &RoomState{}
	for i := range maxChatHistory + 5 {
		r.AddChat(string(rune('a' + i%26)))
	}
	assert.Len(t, r.Chat, maxChatHistory)

	r.SetChat([]string{"x", "y"})
	assert.Equal(t, []string{"x", "y"}, r.Chat)
}

func TestRoomState_StartRound(t *testing.T) {
	t.Parallel()

	r := &RoomState{ID: "room", WinnerName: "Ann", WinLabel: "A", Votes: 1, VoteTarget: 2, Selected: 2}
	r.StartRound([]string{"A", "B", "C", "D"})

	assert.Equal(t, "room", r.ID)
	assert.Empty(t, r.WinnerName)
	assert.Empty(t, r.WinLabel)
	assert.Zero(t, r.Votes)
	assert.Zero(t, r.Selected)
	assert.Len(t, r.Hand, 4)
}

func TestRoomState_IsTurnOf(t *testing.T) {
	t.Parallel()

	r := &RoomState{}
	assert.False(t, r.IsTurnOf(""))
	r.TurnHolder = "Ann"
	assert.True(t, r.IsTurnOf("Ann"))
	assert.False(t, r.IsTurnOf("Bob"))
}

func TestLobbyState_MoveSelection(t *testing.T) {
	t.Parallel()

	l := &LobbyState{}
	l.MoveSelection(-1)
	assert.Equal(t, 0, l.SelectedIndex)
	l.MoveSelection(10)
	assert.Equal(t, len(LobbyMenu)-1, l.SelectedIndex)
}

// --- OnlineModel Tests ---

func TestNewOnlineModel(t *testing.T) {
	t.Parallel()

	m := NewOnlineModel(&testutil.MockGameClient{}, "Ann")

	assert.Equal(t, PhaseConnecting, m.Phase())
	assert.Equal(t, "Ann", m.PlayerName())
	assert.NotNil(t, m.Lobby())
	assert.NotNil(t, m.Room())
	assert.Nil(t, m.GetCurrentNotification())
	assert.Equal(t, "Loading...", m.View())
}

func TestOnlineModel_NotificationPriority(t *testing.T) {
	t.Parallel()

	m := NewOnlineModel(&testutil.MockGameClient{}, "Ann")
	m.SetNotification(NotifyInfo, "info", true)
	m.SetNotification(NotifyMaintenance, "maintenance", false)
	assert.Equal(t, "maintenance", m.GetCurrentNotification().Message)

	m.SetNotification(NotifyError, "boom", true)
	assert.Equal(t, "boom", m.GetCurrentNotification().Message)

	m.Update(ClearSystemNotificationMsg{})
	n := m.GetCurrentNotification()
	require.NotNil(t, n)
	assert.Equal(t, NotifyMaintenance, n.Type, "persistent notifications survive the clear")

	m.ClearNotification(NotifyMaintenance)
	assert.Nil(t, m.GetCurrentNotification())
}

func TestOnlineModel_EnterRoomAndLobby(t *testing.T) {
	t.Parallel()

	m := NewOnlineModel(&testutil.MockGameClient{}, "Ann")
	m.Input().SetValue("leftover")

	seats := []protocol.SeatInfo{{ID: "p1", Name: "Ann"}}
	m.EnterRoom("room-1", seats)
	assert.Equal(t, PhaseWaiting, m.Phase())
	assert.True(t, m.Phase().InRoom())
	assert.Equal(t, "room-1", m.Room().ID)
	assert.Equal(t, seats, m.Room().Seats)
	assert.Empty(t, m.Input().Value())

	m.EnterLobby()
	assert.Equal(t, PhaseLobby, m.Phase())
	assert.False(t, m.Phase().InRoom())
	assert.Empty(t, m.Room().ID)
}

func TestOnlineModel_Connected(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		player   string
		expected GamePhase
	}{
		{"named player goes to lobby", "Ann", PhaseLobby},
		{"anonymous player picks a name", "", PhaseNaming},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			c := &testutil.MockGameClient{}
			c.On("GetPlayerID").Return("p1")
			c.On("StartHeartbeat").Return()

			m := NewOnlineModel(c, tt.player)
			_, cmd := m.Update(ConnectedMsg{})

			assert.NotNil(t, cmd)
			assert.Equal(t, tt.expected, m.Phase())
			assert.Equal(t, "p1", m.PlayerID())
			c.AssertExpectations(t)
		})
	}
}

func TestOnlineModel_ConnectionError(t *testing.T) {
	t.Parallel()

	m := NewOnlineModel(&testutil.MockGameClient{}, "Ann")
	m.Update(tea.WindowSizeMsg{Width: 80, Height: 24})
	m.Update(ConnectionErrorMsg{Err: errors.New("refused")})

	assert.Equal(t, PhaseConnecting, m.Phase())
	assert.Contains(t, m.Error(), "refused")
	assert.Contains(t, m.View(), "refused")
}

func TestOnlineModel_ServerMessageDispatch(t *testing.T) {
	t.Parallel()

	c := &testutil.MockGameClient{}
	c.On("IsConnected").Return(false)

	m := NewOnlineModel(c, "Ann")
	var got *protocol.Message
	m.SetServerMessageHandler(func(_ Model, msg *protocol.Message) tea.Cmd {
		got = msg
		return nil
	})

	msg := &protocol.Message{Type: protocol.MsgPong}
	m.Update(ServerMessage{Msg: msg})
	assert.Same(t, msg, got)
	c.AssertExpectations(t)
}

func TestOnlineModel_KeyHandlerShortCircuits(t *testing.T) {
	t.Parallel()

	m := NewOnlineModel(&testutil.MockGameClient{}, "Ann")
	m.SetKeyHandler(func(Model, tea.KeyMsg) (bool, tea.Cmd) { return true, nil })

	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("x")})
	assert.Empty(t, m.Input().Value(), "handled keys do not reach the input")

	m.SetKeyHandler(func(Model, tea.KeyMsg) (bool, tea.Cmd) { return false, nil })
	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("x")})
	assert.Equal(t, "x", m.Input().Value())
}

func TestOnlineModel_ViewUsesRenderer(t *testing.T) {
	t.Parallel()

	m := NewOnlineModel(&testutil.MockGameClient{}, "Ann")
	m.Update(tea.WindowSizeMsg{Width: 80, Height: 24})
	m.SetPhase(PhaseLobby)
	assert.Contains(t, m.View(), "View renderer not initialized")

	m.SetViewRenderer(func(_ Model, phase GamePhase) string {
		return "rendered"
	})
	assert.Contains(t, m.View(), "rendered")
}
