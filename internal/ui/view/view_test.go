package view

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"

	"github.com/palemoky/pass-four/internal/protocol"
	"github.com/palemoky/pass-four/internal/testutil"
	"github.com/palemoky/pass-four/internal/ui/model"
)

func newModel(t *testing.T) *model.OnlineModel {
	t.Helper()
	c := &testutil.MockGameClient{}
	c.On("GetLatency").Return(int64(42)).Maybe()
	m := model.NewOnlineModel(c, "Ann")
	m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	return m
}

func seatedModel(t *testing.T) *model.OnlineModel {
	t.Helper()
	m := newModel(t)
	m.EnterRoom("room-1", []protocol.SeatInfo{
		{ID: "p1", Name: "Ann", CardsCount: 4},
		{ID: "bot-1", Name: "Bot_1", IsBot: true, CardsCount: 4},
	})
	return m
}

func TestRender_Phases(t *testing.T) {
	t.Parallel()

	m := newModel(t)
	assert.Empty(t, Render(m, model.PhaseConnecting))

	m.SetPhase(model.PhaseNaming)
	assert.Contains(t, Render(m, model.PhaseNaming), "名字")

	m.EnterLobby()
	assert.Contains(t, Render(m, model.PhaseLobby), "创建房间")
}

func TestHeader_ShowsStatusAndNotification(t *testing.T) {
	t.Parallel()

	m := newModel(t)
	m.SetNotification(model.NotifyError, "❌ 房间不存在", true)

	out := header(m)
	assert.Contains(t, out, "传四张")
	assert.Contains(t, out, "Ann")
	assert.Contains(t, out, "42ms")
	assert.Contains(t, out, "房间不存在")
}

func TestRenderMenu_Selection(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		selected int
		expected string
	}{
		{"create", 0, "▶ 1. 创建房间"},
		{"join", 1, "▶ 2. 加入房间"},
		{"quit", 2, "▶ 3. 退出游戏"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			out := renderMenu(&model.LobbyState{SelectedIndex: tt.selected})
			assert.Contains(t, out, tt.expected)
			assert.Equal(t, 1, strings.Count(out, "▶"))
		})
	}
}

func TestRenderSeats(t *testing.T) {
	t.Parallel()

	room := &model.RoomState{
		Seats: []protocol.SeatInfo{
			{Name: "Ann", CardsCount: 3},
			{Name: "Bot_1", IsBot: true, CardsCount: 5},
		},
		TurnHolder: "Bot_1",
	}

	out := renderSeats(room, "Ann")
	assert.Contains(t, out, "座位 (2)")
	assert.Contains(t, out, "Ann (你)")
	assert.Contains(t, out, "3 张")
	assert.Contains(t, out, "🤖")
	assert.Contains(t, out, "👉")

	room.WinnerName = "Ann"
	room.TurnHolder = ""
	out = renderSeats(room, "Ann")
	assert.Contains(t, out, "🏆")
	assert.NotContains(t, out, "👉")
}

func TestRenderHand(t *testing.T) {
	t.Parallel()

	assert.Contains(t, renderHand(nil, 0), "没有手牌")

	out := renderHand([]string{"Rock", "Paper"}, 1)
	assert.Contains(t, out, "Rock")
	assert.Contains(t, out, "Paper")
}

func TestRenderChat_ShowsRecentLines(t *testing.T) {
	t.Parallel()

	assert.Contains(t, renderChat(nil, 3), "暂无消息")

	out := renderChat([]string{"one", "two", "three", "four"}, 2)
	assert.NotContains(t, out, "one")
	assert.NotContains(t, out, "two")
	assert.Contains(t, out, "three")
	assert.Contains(t, out, "four")
}

func TestRenderStage(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		phase    model.GamePhase
		setup    func(r *model.RoomState)
		expected string
	}{
		{"waiting", model.PhaseWaiting, func(r *model.RoomState) {}, "等待玩家加入"},
		{"full", model.PhaseWaiting, func(r *model.RoomState) { r.Full = true }, "请提交卡牌名称"},
		{"submitting", model.PhaseWaiting, func(r *model.RoomState) {
			r.Full, r.Submitted, r.Required = true, 1, 2
		}, "1/2"},
		{"my turn", model.PhasePlaying, func(r *model.RoomState) { r.TurnHolder = "Ann" }, "轮到你"},
		{"bot turn", model.PhasePlaying, func(r *model.RoomState) {
			r.TurnHolder, r.TurnIsBot = "Bot_1", true
		}, "代其出牌"},
		{"other turn", model.PhasePlaying, func(r *model.RoomState) { r.TurnHolder = "Bob" }, "等待 Bob"},
		{"concluded", model.PhaseConcluded, func(r *model.RoomState) {
			r.WinnerName, r.WinLabel, r.Votes, r.VoteTarget = "Bob", "Rock", 1, 2
		}, "1/2"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			m := seatedModel(t)
			m.SetPhase(tt.phase)
			tt.setup(m.Room())
			assert.Contains(t, renderStage(m), tt.expected)
		})
	}
}

func TestRoomView(t *testing.T) {
	t.Parallel()

	m := seatedModel(t)
	m.Room().AddChat("[09:00] Bob: hi")

	out := RoomView(m)
	assert.Contains(t, out, "room-1")
	assert.Contains(t, out, "Bob: hi")
	assert.Contains(t, out, "/labels")
	assert.NotContains(t, out, "没有手牌", "hand is only shown while playing")

	m.SetPhase(model.PhasePlaying)
	m.Room().StartRound([]string{"Rock", "Rock", "Paper", "Paper"})
	out = RoomView(m)
	assert.Contains(t, out, "Paper")
	assert.Contains(t, out, "←→ 选牌")
}
