package handler

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/palemoky/pass-four/internal/protocol"
	"github.com/palemoky/pass-four/internal/protocol/codec"
	"github.com/palemoky/pass-four/internal/ui/model"
)

// handleMsgRoomEntered 创建或加入房间成功
func handleMsgRoomEntered(m model.Model, msg *protocol.Message) tea.Cmd {
	payload, err := codec.ParsePayload[protocol.RoomSeatsPayload](msg)
	if err != nil {
		return nil
	}

	m.EnterRoom(payload.RoomID, payload.Seats)
	if msg.Type == protocol.MsgRoomCreated {
		m.Room().AddChat(fmt.Sprintf("📢 房间 %s 已创建，把房间号发给朋友吧", payload.RoomID))
		return nil
	}

	m.Room().AddChat(fmt.Sprintf("📢 已加入房间 %s", payload.RoomID))
	_ = m.Client().ChatHistory(payload.RoomID)
	return nil
}

func handleMsgSeatsUpdated(m model.Model, msg *protocol.Message) tea.Cmd {
	payload, err := codec.ParsePayload[protocol.RoomSeatsPayload](msg)
	if err != nil || !inCurrentRoom(m, payload.RoomID) {
		return nil
	}
	m.Room().Seats = payload.Seats
	return nil
}

func handleMsgRoomFull(m model.Model, msg *protocol.Message) tea.Cmd {
	payload, err := codec.ParsePayload[protocol.RoomAckPayload](msg)
	if err != nil || !inCurrentRoom(m, payload.RoomID) {
		return nil
	}
	m.Room().Full = true
	m.Room().AddChat("✅ 房间已满员，输入 /labels 提交你的卡牌名称")
	return nil
}

func handleMsgLabelsSubmitted(m model.Model, msg *protocol.Message) tea.Cmd {
	payload, err := codec.ParsePayload[protocol.LabelsSubmittedPayload](msg)
	if err != nil || !inCurrentRoom(m, payload.RoomID) {
		return nil
	}
	m.Room().Submitted = payload.Submitted
	m.Room().Required = payload.Required
	return nil
}

func handleMsgRoomExited(m model.Model, msg *protocol.Message) tea.Cmd {
	payload, err := codec.ParsePayload[protocol.RoomExitedPayload](msg)
	if err != nil {
		return nil
	}
	m.EnterLobby()
	return Notify(m, model.NotifyInfo, "👋 "+payload.Message)
}
