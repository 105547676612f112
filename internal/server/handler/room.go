package handler

import (
	"strings"

	"github.com/palemoky/pass-four/internal/protocol"
	"github.com/palemoky/pass-four/internal/protocol/codec"
	"github.com/palemoky/pass-four/internal/types"
)

// handleCreateRoom 处理创建房间
func (h *Handler) handleCreateRoom(client types.ClientInterface, msg *protocol.Message) {
	if h.rejectInMaintenance(client, msg, "服务器维护中，暂停创建房间") {
		return
	}

	payload, ok := decode[protocol.CreateRoomPayload](client, msg)
	if !ok {
		return
	}

	room, err := h.roomManager.CreateRoom(client, strings.TrimSpace(payload.Name), payload.Seats)
	if err != nil {
		replyError(client, msg, err)
		return
	}

	client.SendMessage(codec.MustNewReply(msg.ID, protocol.MsgRoomCreated, protocol.RoomSeatsPayload{
		RoomID: room.ID,
		Seats:  room.SeatInfos(),
	}))
}

// handleJoinRoom 处理加入房间
func (h *Handler) handleJoinRoom(client types.ClientInterface, msg *protocol.Message) {
	if h.rejectInMaintenance(client, msg, "服务器维护中，暂停加入房间") {
		return
	}

	payload, ok := decode[protocol.JoinRoomPayload](client, msg)
	if !ok {
		return
	}

	room, err := h.roomManager.JoinRoom(client, payload.RoomID, strings.TrimSpace(payload.Name))
	if err != nil {
		replyError(client, msg, err)
		return
	}

	client.SendMessage(codec.MustNewReply(msg.ID, protocol.MsgRoomJoined, protocol.RoomSeatsPayload{
		RoomID: room.ID,
		Seats:  room.SeatInfos(),
	}))
}

// handleAddBots 处理添加机器人
func (h *Handler) handleAddBots(client types.ClientInterface, msg *protocol.Message) {
	payload, ok := decode[protocol.AddBotsPayload](client, msg)
	if !ok {
		return
	}

	if err := h.roomManager.AddBots(client, payload.RoomID, payload.Count, payload.Seats); err != nil {
		replyError(client, msg, err)
		return
	}

	client.SendMessage(codec.MustNewReply(msg.ID, protocol.MsgBotsAdded, protocol.RoomAckPayload{RoomID: payload.RoomID}))
}

// handleSubmitLabels 处理提交卡牌名称
func (h *Handler) handleSubmitLabels(client types.ClientInterface, msg *protocol.Message) {
	payload, ok := decode[protocol.SubmitLabelsPayload](client, msg)
	if !ok {
		return
	}

	submitted, required, err := h.roomManager.SubmitLabels(client, payload.RoomID, payload.Labels)
	if err != nil {
		replyError(client, msg, err)
		return
	}

	client.SendMessage(codec.MustNewReply(msg.ID, protocol.MsgLabelsSubmitted, protocol.LabelsSubmittedPayload{
		RoomID:    payload.RoomID,
		Submitted: submitted,
		Required:  required,
	}))
}

// handleStartGame 处理开始游戏，成功时由 game_started 广播作为回应
func (h *Handler) handleStartGame(client types.ClientInterface, msg *protocol.Message) {
	if h.rejectInMaintenance(client, msg, "服务器维护中，暂停开始新对局") {
		return
	}

	payload, ok := decode[protocol.RoomRefPayload](client, msg)
	if !ok {
		return
	}

	if err := h.roomManager.StartGame(client, payload.RoomID); err != nil {
		replyError(client, msg, err)
	}
}

// handleExitRoom 处理离开房间
func (h *Handler) handleExitRoom(client types.ClientInterface, msg *protocol.Message) {
	payload, ok := decode[protocol.RoomRefPayload](client, msg)
	if !ok {
		return
	}

	farewell, err := h.roomManager.ExitRoom(client, payload.RoomID)
	if err != nil {
		replyError(client, msg, err)
		return
	}

	client.SendMessage(codec.MustNewReply(msg.ID, protocol.MsgRoomExited, protocol.RoomExitedPayload{
		RoomID:  payload.RoomID,
		Message: farewell,
	}))
}
