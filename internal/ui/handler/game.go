package handler

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/palemoky/pass-four/internal/protocol"
	"github.com/palemoky/pass-four/internal/protocol/codec"
	"github.com/palemoky/pass-four/internal/ui/model"
)

func handleMsgGameStarted(m model.Model, msg *protocol.Message) tea.Cmd {
	payload, err := codec.ParsePayload[protocol.GameStartedPayload](msg)
	if err != nil || !inCurrentRoom(m, payload.RoomID) {
		return nil
	}

	room := m.Room()
	room.StartRound(payload.Hand)
	room.TurnHolder = payload.TurnHolder
	room.TurnIsBot = payload.TurnIsBot
	m.SetPhase(model.PhasePlaying)
	room.AddChat("🎮 游戏开始！凑齐四张相同的牌即可获胜")
	return nil
}

func handleMsgTurnAdvanced(m model.Model, msg *protocol.Message) tea.Cmd {
	payload, err := codec.ParsePayload[protocol.TurnAdvancedPayload](msg)
	if err != nil || !inCurrentRoom(m, payload.RoomID) {
		return nil
	}
	m.Room().TurnHolder = payload.TurnHolder
	m.Room().TurnIsBot = payload.IsBot
	return nil
}

func handleMsgHandUpdated(m model.Model, msg *protocol.Message) tea.Cmd {
	payload, err := codec.ParsePayload[protocol.HandUpdatedPayload](msg)
	if err != nil || !inCurrentRoom(m, payload.RoomID) {
		return nil
	}
	m.Room().SetHand(payload.Hand)
	return nil
}

func handleMsgGameConcluded(m model.Model, msg *protocol.Message) tea.Cmd {
	payload, err := codec.ParsePayload[protocol.GameConcludedPayload](msg)
	if err != nil || !inCurrentRoom(m, payload.RoomID) {
		return nil
	}

	room := m.Room()
	room.WinnerName = payload.WinnerName
	room.WinLabel = payload.Label
	room.TurnHolder = ""
	room.Votes, room.VoteTarget = 0, len(room.Seats)
	m.SetPhase(model.PhaseConcluded)

	if payload.WinnerID == m.PlayerID() {
		room.AddChat(fmt.Sprintf("🏆 你凑齐了四张 %s，获胜！", payload.Label))
	} else {
		room.AddChat(fmt.Sprintf("🏆 %s 凑齐了四张 %s，获胜！", payload.WinnerName, payload.Label))
	}
	return nil
}

func handleMsgRematchVote(m model.Model, msg *protocol.Message) tea.Cmd {
	payload, err := codec.ParsePayload[protocol.RematchVotePayload](msg)
	if err != nil || !inCurrentRoom(m, payload.RoomID) {
		return nil
	}
	m.Room().Votes = payload.Votes
	m.Room().VoteTarget = payload.Target
	return nil
}

func handleMsgRematchStarted(m model.Model, msg *protocol.Message) tea.Cmd {
	payload, err := codec.ParsePayload[protocol.RematchStartedPayload](msg)
	if err != nil || !inCurrentRoom(m, payload.RoomID) {
		return nil
	}
	m.Room().StartRound(payload.Hand)
	m.SetPhase(model.PhasePlaying)
	return nil
}

func handleMsgRematchReady(m model.Model, msg *protocol.Message) tea.Cmd {
	payload, err := codec.ParsePayload[protocol.RematchReadyPayload](msg)
	if err != nil || !inCurrentRoom(m, payload.RoomID) {
		return nil
	}
	m.Room().AddChat("🔄 再来一局：" + strings.Join(payload.Names, "、"))
	return nil
}
