package room

import (
	"math/rand/v2"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/palemoky/pass-four/internal/game/card"
	"github.com/palemoky/pass-four/internal/protocol"
	"github.com/palemoky/pass-four/internal/protocol/codec"
	"github.com/palemoky/pass-four/internal/testutil"
)

func newTestManager(t *testing.T, opts Options) *RoomManager {
	t.Helper()
	if opts.BotTurnDelay == 0 {
		opts.BotTurnDelay = time.Hour
	}
	if opts.NewRand == nil {
		var seed uint64
		opts.NewRand = func() *rand.Rand {
			seed++
			return rand.New(rand.NewPCG(seed, 99))
		}
	}
	rm := NewRoomManager(opts)
	t.Cleanup(rm.Close)
	return rm
}

// newFullRoom creates a room with the given humans and bots; nothing is submitted yet.
func newFullRoom(t *testing.T, rm *RoomManager, humans, bots int) (*Room, []*testutil.SimpleClient) {
	t.Helper()

	clients := make([]*testutil.SimpleClient, humans)
	for i := range clients {
		clients[i] = testutil.NewSimpleClient(string(rune('a'+i)), "Player"+string(rune('A'+i)))
	}

	room, err := rm.CreateRoom(clients[0], clients[0].Name, humans+bots)
	require.NoError(t, err)
	for _, c := range clients[1:] {
		_, err := rm.JoinRoom(c, room.ID, c.Name)
		require.NoError(t, err)
	}
	if bots > 0 {
		require.NoError(t, rm.AddBots(clients[0], room.ID, bots, humans+bots))
	}
	return room, clients
}

// newStartedRoom fills a room and has every human submit one distinct label, which starts the game.
func newStartedRoom(t *testing.T, rm *RoomManager, humans, bots int) (*Room, []*testutil.SimpleClient) {
	t.Helper()

	room, clients := newFullRoom(t, rm, humans, bots)
	for i, c := range clients {
		_, _, err := rm.SubmitLabels(c, room.ID, []string{"L" + string(rune('0'+i))})
		require.NoError(t, err)
	}
	room.mu.Lock()
	defer room.mu.Unlock()
	require.True(t, room.Stage.Started())
	return room, clients
}

// setHands forces an in-progress game with the given hands and turn holder.
func setHands(r *Room, turn int, hands ...card.Hand) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, h := range hands {
		r.Seats[i].Hand = h
	}
	r.TurnIndex = turn
	r.Stage = StageInProgress
	r.Winner = ""
	if r.botTimer != nil {
		r.botTimer.Stop()
		r.botTimer = nil
	}
	r.turnSeq++
}

func snapshot(r *Room) (turn int, hands []card.Hand, stage Stage) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, s := range r.Seats {
		hands = append(hands, s.Hand.Clone())
	}
	return r.TurnIndex, hands, r.Stage
}

func totalCards(r *Room) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, s := range r.Seats {
		n += len(s.Hand)
	}
	return n
}

func payloadOf[T any](t *testing.T, msg *protocol.Message) *T {
	t.Helper()
	require.NotNil(t, msg)
	p, err := codec.ParsePayload[T](msg)
	require.NoError(t, err)
	return p
}

func resetAll(clients []*testutil.SimpleClient) {
	for _, c := range clients {
		c.Reset()
	}
}
