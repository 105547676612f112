package handler

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/palemoky/pass-four/internal/protocol"
	"github.com/palemoky/pass-four/internal/protocol/codec"
	"github.com/palemoky/pass-four/internal/ui/common"
	"github.com/palemoky/pass-four/internal/ui/model"
)

func handleMsgChatMessage(m model.Model, msg *protocol.Message) tea.Cmd {
	payload, err := codec.ParsePayload[protocol.ChatMessage](msg)
	if err != nil || !m.Phase().InRoom() {
		return nil
	}
	m.Room().AddChat(common.FormatChatMessage(*payload))
	return nil
}

func handleMsgChatHistory(m model.Model, msg *protocol.Message) tea.Cmd {
	payload, err := codec.ParsePayload[protocol.ChatHistoryPayload](msg)
	if err != nil || !inCurrentRoom(m, payload.RoomID) {
		return nil
	}

	lines := make([]string, 0, len(payload.Messages))
	for _, cm := range payload.Messages {
		lines = append(lines, common.FormatChatMessage(cm))
	}
	m.Room().SetChat(lines)
	return nil
}
