package room

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/palemoky/pass-four/internal/apperrors"
	"github.com/palemoky/pass-four/internal/game/card"
	"github.com/palemoky/pass-four/internal/protocol"
	"github.com/palemoky/pass-four/internal/testutil"
)

func TestSubmitLabels_Validation(t *testing.T) {
	t.Parallel()

	rm := newTestManager(t, Options{})
	room, clients := newFullRoom(t, rm, 2, 0)
	ann, bob := clients[0], clients[1]

	tests := []struct {
		name   string
		labels []string
	}{
		{"empty list", nil},
		{"blank label", []string{"Rock", "  "}},
		{"duplicate within submission", []string{"Rock", "Rock"}},
		{"duplicate after trimming", []string{"Rock", " Rock "}},
	}
	for _, tt := range tests {
		_, _, err := rm.SubmitLabels(ann, room.ID, tt.labels)
		assert.ErrorIs(t, err, apperrors.ErrDuplicateOrMissingLabel, tt.name)
	}

	_, _, err := rm.SubmitLabels(ann, room.ID, []string{"Rock"})
	require.NoError(t, err)

	// another seat may not reuse a label
	_, _, err = rm.SubmitLabels(bob, room.ID, []string{"Paper", "Rock"})
	assert.ErrorIs(t, err, apperrors.ErrDuplicateOrMissingLabel)
	assert.Equal(t, "submitting", room.PublicView().Stage, "a rejected submission must not start the game")

	_, _, err = rm.SubmitLabels(testutil.NewSimpleClient("x", "X"), room.ID, []string{"Z"})
	assert.ErrorIs(t, err, apperrors.ErrSeatNotFound)
	_, _, err = rm.SubmitLabels(ann, "missing", []string{"Z"})
	assert.ErrorIs(t, err, apperrors.ErrRoomNotFound)
}

func TestSubmitLabels_ResubmissionReplaces(t *testing.T) {
	t.Parallel()

	rm := newTestManager(t, Options{})
	room, clients := newFullRoom(t, rm, 3, 0)

	submitted, required, err := rm.SubmitLabels(clients[0], room.ID, []string{"Rock", "Paper"})
	require.NoError(t, err)
	assert.Equal(t, 1, submitted)
	assert.Equal(t, 3, required)

	// the same seat counts once and may reuse its own labels
	submitted, _, err = rm.SubmitLabels(clients[0], room.ID, []string{"Paper", "Scissors"})
	require.NoError(t, err)
	assert.Equal(t, 1, submitted)

	room.mu.Lock()
	assert.Equal(t, []string{"Paper", "Scissors"}, room.Labels)
	room.mu.Unlock()

	// Rock is free again
	_, _, err = rm.SubmitLabels(clients[1], room.ID, []string{"Rock"})
	assert.NoError(t, err)
}

func TestSubmitLabels_AutoStart(t *testing.T) {
	t.Parallel()

	rm := newTestManager(t, Options{})
	room, clients := newFullRoom(t, rm, 2, 1)

	_, _, err := rm.SubmitLabels(clients[0], room.ID, []string{"A", "B"})
	require.NoError(t, err)
	assert.False(t, room.PublicView().Stage == "in_progress")

	// bots count as submitted, so the second human completes the set
	_, _, err = rm.SubmitLabels(clients[1], room.ID, []string{"C"})
	require.NoError(t, err)
	assert.True(t, room.PublicView().Stage != "submitting")

	// 12 cards over 3 seats
	assert.Equal(t, 12, totalCards(room))
	for _, c := range clients {
		started := payloadOf[protocol.GameStartedPayload](t, c.LastOfType(protocol.MsgGameStarted))
		assert.Len(t, started.Hand, 4)
		assert.Equal(t, "PlayerA", started.TurnHolder)
		assert.False(t, started.TurnIsBot)
	}

	_, _, err = rm.SubmitLabels(clients[0], room.ID, []string{"D"})
	assert.ErrorIs(t, err, apperrors.ErrGameStarted)
}

func TestSubmitLabels_NotFullDoesNotStart(t *testing.T) {
	t.Parallel()

	rm := newTestManager(t, Options{})
	ann := testutil.NewSimpleClient("p1", "Ann")
	room, err := rm.CreateRoom(ann, "Ann", 2)
	require.NoError(t, err)

	_, _, err = rm.SubmitLabels(ann, room.ID, []string{"A"})
	require.NoError(t, err)
	assert.Equal(t, "lobby", room.PublicView().Stage)

	// the joining seat has not submitted yet
	bob := testutil.NewSimpleClient("p2", "Bob")
	_, err = rm.JoinRoom(bob, room.ID, "Bob")
	require.NoError(t, err)
	assert.Equal(t, "submitting", room.PublicView().Stage)
}

func TestStartGame(t *testing.T) {
	t.Parallel()

	rm := newTestManager(t, Options{})
	ann := testutil.NewSimpleClient("p1", "Ann")
	room, err := rm.CreateRoom(ann, "Ann", 3)
	require.NoError(t, err)

	assert.ErrorIs(t, rm.StartGame(ann, room.ID), apperrors.ErrRoomNotFull)

	require.NoError(t, rm.AddBots(ann, room.ID, 1, 3))
	bob := testutil.NewSimpleClient("p2", "Bob")
	_, err = rm.JoinRoom(bob, room.ID, "Bob")
	require.NoError(t, err)

	assert.ErrorIs(t, rm.StartGame(ann, room.ID), apperrors.ErrLabelsNotYetSubmitted)
	assert.ErrorIs(t, rm.StartGame(testutil.NewSimpleClient("x", "X"), room.ID), apperrors.ErrSeatNotFound)
	assert.ErrorIs(t, rm.StartGame(ann, "missing"), apperrors.ErrRoomNotFound)

	// Bob never submits; an explicit start uses the labels that exist
	_, _, err = rm.SubmitLabels(ann, room.ID, []string{"A", "B", "C"})
	require.NoError(t, err)
	require.NoError(t, rm.StartGame(bob, room.ID))

	assert.Equal(t, 12, totalCards(room))
	assert.ErrorIs(t, rm.StartGame(ann, room.ID), apperrors.ErrGameStarted)
}

func TestStartGame_RemainderDiscarded(t *testing.T) {
	t.Parallel()

	rm := newTestManager(t, Options{})
	room, clients := newFullRoom(t, rm, 3, 0)

	// 5 labels -> 20 cards -> 6 each, 2 discarded
	_, _, err := rm.SubmitLabels(clients[0], room.ID, []string{"A", "B", "C", "D", "E"})
	require.NoError(t, err)
	require.NoError(t, rm.StartGame(clients[0], room.ID))

	for _, s := range room.SeatInfos() {
		assert.Equal(t, 6, s.CardsCount)
	}
	assert.Equal(t, 18, totalCards(room))
}

func TestPassCard_Rotation(t *testing.T) {
	t.Parallel()

	rm := newTestManager(t, Options{})
	room, clients := newStartedRoom(t, rm, 3, 0)
	setHands(room, 0,
		card.Hand{"A", "B", "C"},
		card.Hand{"B", "C", "D"},
		card.Hand{"C", "D", "A"},
	)

	passes := []struct {
		client *testutil.SimpleClient
		label  string
	}{
		{clients[0], "A"},
		{clients[1], "B"},
		{clients[2], "C"},
		{clients[0], "B"},
	}

	for i, p := range passes {
		oldTurn, oldHands, _ := snapshot(room)
		require.NoError(t, rm.PassCard(p.client, room.ID, p.label))

		turn, hands, _ := snapshot(room)
		next := (oldTurn + 1) % 3
		assert.Equal(t, next, turn, "pass %d", i)
		assert.Equal(t, oldHands[oldTurn].Count(p.label)-1, hands[oldTurn].Count(p.label))
		assert.Equal(t, oldHands[next].Count(p.label)+1, hands[next].Count(p.label))
		assert.Equal(t, p.label, hands[next][len(hands[next])-1], "received card is appended")
		assert.Equal(t, 9, totalCards(room))
	}
}

func TestPassCard_Broadcasts(t *testing.T) {
	t.Parallel()

	rm := newTestManager(t, Options{})
	room, clients := newStartedRoom(t, rm, 3, 0)
	setHands(room, 0, card.Hand{"A", "B"}, card.Hand{"C"}, card.Hand{"D", "E"})
	resetAll(clients)

	require.NoError(t, rm.PassCard(clients[0], room.ID, "A"))

	// private hands only for sender and receiver
	assert.Len(t, clients[0].MessagesOfType(protocol.MsgHandUpdated), 1)
	assert.Len(t, clients[1].MessagesOfType(protocol.MsgHandUpdated), 1)
	assert.Empty(t, clients[2].MessagesOfType(protocol.MsgHandUpdated))

	hand := payloadOf[protocol.HandUpdatedPayload](t, clients[1].LastOfType(protocol.MsgHandUpdated))
	assert.Equal(t, []string{"C", "A"}, hand.Hand)

	for _, c := range clients {
		turn := payloadOf[protocol.TurnAdvancedPayload](t, c.LastOfType(protocol.MsgTurnAdvanced))
		assert.Equal(t, 1, turn.TurnIndex)
		assert.Equal(t, "PlayerB", turn.TurnHolder)
		assert.False(t, turn.IsBot)

		seats := payloadOf[protocol.RoomSeatsPayload](t, c.LastOfType(protocol.MsgSeatsUpdated))
		assert.Equal(t, []int{1, 2, 2}, []int{seats.Seats[0].CardsCount, seats.Seats[1].CardsCount, seats.Seats[2].CardsCount})
	}
}

func TestPassCard_RejectedWithoutMutation(t *testing.T) {
	t.Parallel()

	rm := newTestManager(t, Options{})
	room, clients := newStartedRoom(t, rm, 2, 0)
	setHands(room, 0, card.Hand{"A", "B"}, card.Hand{"C", "D"})

	beforeTurn, beforeHands, _ := snapshot(room)

	assert.ErrorIs(t, rm.PassCard(clients[1], room.ID, "C"), apperrors.ErrNotYourTurn)
	assert.ErrorIs(t, rm.PassCard(testutil.NewSimpleClient("x", "X"), room.ID, "A"), apperrors.ErrNotYourTurn)
	assert.ErrorIs(t, rm.PassCard(clients[0], room.ID, "C"), apperrors.ErrCardNotInHand)
	assert.ErrorIs(t, rm.PassCard(clients[0], room.ID, ""), apperrors.ErrCardNotInHand)
	assert.ErrorIs(t, rm.PassCard(clients[0], "missing", "A"), apperrors.ErrRoomNotFound)

	turn, hands, _ := snapshot(room)
	assert.Equal(t, beforeTurn, turn)
	assert.Equal(t, beforeHands, hands)
}

func TestPassCard_NotStarted(t *testing.T) {
	t.Parallel()

	rm := newTestManager(t, Options{})
	room, clients := newFullRoom(t, rm, 2, 0)

	assert.ErrorIs(t, rm.PassCard(clients[0], room.ID, "A"), apperrors.ErrGameNotStarted)
}

func TestPassCard_WinReportedOnce(t *testing.T) {
	t.Parallel()

	rm := newTestManager(t, Options{})
	room, clients := newStartedRoom(t, rm, 2, 0)
	setHands(room, 0, card.Hand{"A", "B"}, card.Hand{"A", "A", "A", "B"})
	resetAll(clients)

	require.NoError(t, rm.PassCard(clients[0], room.ID, "A"))

	for _, c := range clients {
		concluded := c.MessagesOfType(protocol.MsgGameConcluded)
		require.Len(t, concluded, 1)
		p := payloadOf[protocol.GameConcludedPayload](t, concluded[0])
		assert.Equal(t, "PlayerB", p.WinnerName)
		assert.Equal(t, "A", p.Label)
	}

	view := room.PublicView()
	assert.Equal(t, "concluded", view.Stage)
	assert.Equal(t, "PlayerB", view.Winner)

	// play halts after a win
	assert.ErrorIs(t, rm.PassCard(clients[1], room.ID, "A"), apperrors.ErrGameConcluded)
	for _, c := range clients {
		assert.Len(t, c.MessagesOfType(protocol.MsgGameConcluded), 1)
	}
}

func TestPassCard_BotSeatTriggeredByHuman(t *testing.T) {
	t.Parallel()

	rm := newTestManager(t, Options{})
	room, clients := newStartedRoom(t, rm, 1, 1)
	setHands(room, 1, card.Hand{"C"}, card.Hand{"A", "B", "B", "C"})

	// the caller-supplied label is ignored; the bot releases its most common label
	require.NoError(t, rm.PassCard(clients[0], room.ID, "C"))

	_, hands, _ := snapshot(room)
	assert.Equal(t, card.Hand{"C", "B"}, hands[0])
	assert.Equal(t, card.Hand{"A", "B", "C"}, hands[1])

	// an outsider cannot drive a bot
	setHands(room, 1, card.Hand{"C"}, card.Hand{"A"})
	assert.ErrorIs(t, rm.PassCard(testutil.NewSimpleClient("x", "X"), room.ID, ""), apperrors.ErrSeatNotFound)
}

func TestPassCard_BotWithEmptyHand(t *testing.T) {
	t.Parallel()

	rm := newTestManager(t, Options{})
	room, clients := newStartedRoom(t, rm, 1, 1)
	setHands(room, 1, card.Hand{"C"}, card.Hand{})

	assert.ErrorIs(t, rm.PassCard(clients[0], room.ID, ""), apperrors.ErrNoCardsToPassForBot)
	turn, _, _ := snapshot(room)
	assert.Equal(t, 1, turn)
}

func TestPassCard_BotAlreadyWinningShortCircuits(t *testing.T) {
	t.Parallel()

	rm := newTestManager(t, Options{})
	room, clients := newStartedRoom(t, rm, 1, 1)
	setHands(room, 1, card.Hand{"C"}, card.Hand{"A", "A", "A", "A", "B"})

	require.NoError(t, rm.PassCard(clients[0], room.ID, ""))

	turn, hands, stage := snapshot(room)
	assert.Equal(t, StageConcluded, stage)
	assert.Equal(t, 1, turn)
	assert.Len(t, hands[1], 5, "no card is passed on a short-circuit win")
}

func TestBotTimer_AutoPlays(t *testing.T) {
	t.Parallel()

	rm := newTestManager(t, Options{BotTurnDelay: 5 * time.Millisecond})
	room, clients := newStartedRoom(t, rm, 1, 1)
	setHands(room, 0, card.Hand{"A", "B", "C"}, card.Hand{"A", "B", "C"})

	require.NoError(t, rm.PassCard(clients[0], room.ID, "A"))

	// no client triggers the bot; the server timer does
	assert.Eventually(t, func() bool {
		turn, hands, _ := snapshot(room)
		return turn == 0 && len(hands[0]) == 3
	}, time.Second, 5*time.Millisecond)

	_, hands, _ := snapshot(room)
	assert.Equal(t, card.Hand{"B", "C", "A"}, hands[0])
	assert.Equal(t, card.Hand{"B", "C", "A"}, hands[1])
}

func TestBotTimer_ChainsBetweenBots(t *testing.T) {
	t.Parallel()

	rm := newTestManager(t, Options{BotTurnDelay: 2 * time.Millisecond})
	room, clients := newStartedRoom(t, rm, 1, 2)
	setHands(room, 0,
		card.Hand{"A", "B"},
		card.Hand{"C", "D"},
		card.Hand{"E", "F"},
	)

	require.NoError(t, rm.PassCard(clients[0], room.ID, "A"))

	assert.Eventually(t, func() bool {
		turn, _, _ := snapshot(room)
		return turn == 0
	}, time.Second, 2*time.Millisecond)
	assert.Equal(t, 6, totalCards(room))
}

func TestBotTimer_StaleTokenIgnored(t *testing.T) {
	t.Parallel()

	rm := newTestManager(t, Options{})
	room, _ := newStartedRoom(t, rm, 1, 1)
	setHands(room, 1, card.Hand{"A"}, card.Hand{"B", "C"})

	room.mu.Lock()
	seq := room.turnSeq
	room.mu.Unlock()

	rm.runBotTurn(room, seq-1)
	turn, _, _ := snapshot(room)
	assert.Equal(t, 1, turn, "a timer from an earlier turn must not act")

	rm.runBotTurn(room, seq)
	turn, _, _ = snapshot(room)
	assert.Equal(t, 0, turn)
}

func TestBotTimer_DisarmedOnConclusion(t *testing.T) {
	t.Parallel()

	rm := newTestManager(t, Options{})
	room, clients := newStartedRoom(t, rm, 1, 1)
	setHands(room, 0, card.Hand{"A", "B"}, card.Hand{"A", "A", "A", "C"})

	require.NoError(t, rm.PassCard(clients[0], room.ID, "A"))

	room.mu.Lock()
	defer room.mu.Unlock()
	assert.Equal(t, StageConcluded, room.Stage)
	assert.Nil(t, room.botTimer)
}

// Human turns have no timeout: a stalled human holds the room indefinitely.
func TestHumanTurn_NoTimeout(t *testing.T) {
	t.Parallel()

	rm := newTestManager(t, Options{BotTurnDelay: time.Millisecond})
	room, _ := newStartedRoom(t, rm, 2, 1)
	setHands(room, 1, card.Hand{"A"}, card.Hand{"B"}, card.Hand{"C"})

	turnBefore, handsBefore, _ := snapshot(room)
	time.Sleep(50 * time.Millisecond)

	turn, hands, stage := snapshot(room)
	assert.Equal(t, turnBefore, turn)
	assert.Equal(t, handsBefore, hands)
	assert.Equal(t, StageInProgress, stage)
}

func TestEndToEnd_TwoPlayers(t *testing.T) {
	t.Parallel()

	rm := newTestManager(t, Options{})
	ann := testutil.NewSimpleClient("ann", "")
	bob := testutil.NewSimpleClient("bob", "")

	room, err := rm.CreateRoom(ann, "Ann", 2)
	require.NoError(t, err)
	_, err = rm.JoinRoom(bob, room.ID, "Bob")
	require.NoError(t, err)

	_, _, err = rm.SubmitLabels(ann, room.ID, []string{"Rock"})
	require.NoError(t, err)
	_, _, err = rm.SubmitLabels(bob, room.ID, []string{"Paper"})
	require.NoError(t, err)

	_, hands, _ := snapshot(room)
	require.Len(t, hands, 2)
	assert.Len(t, hands[0], 4)
	assert.Len(t, hands[1], 4)
	counts := card.Hand(append(hands[0].Clone(), hands[1]...)).Counts()
	assert.Equal(t, map[string]int{"Rock": 4, "Paper": 4}, counts)

	clients := map[string]*testutil.SimpleClient{"ann": ann, "bob": bob}
	for range 40 {
		turn, hands, stage := snapshot(room)
		if stage != StageInProgress {
			break
		}

		room.mu.Lock()
		holder := room.Seats[turn].ID
		room.mu.Unlock()

		require.NoError(t, rm.PassCard(clients[holder], room.ID, hands[turn][0]))
		assert.Equal(t, 8, totalCards(room))

		newTurn, _, _ := snapshot(room)
		assert.Equal(t, (turn+1)%2, newTurn)
	}

	if room.PublicView().Stage == "concluded" {
		for _, c := range []*testutil.SimpleClient{ann, bob} {
			assert.Len(t, c.MessagesOfType(protocol.MsgGameConcluded), 1)
		}
	}
}
