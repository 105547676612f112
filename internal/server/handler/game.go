package handler

import (
	"strings"

	"github.com/palemoky/pass-four/internal/protocol"
	"github.com/palemoky/pass-four/internal/protocol/codec"
	"github.com/palemoky/pass-four/internal/types"
)

// handlePassCard 处理传牌，label 为空表示代当前机器人座位出牌
func (h *Handler) handlePassCard(client types.ClientInterface, msg *protocol.Message) {
	payload, ok := decode[protocol.PassCardPayload](client, msg)
	if !ok {
		return
	}

	if err := h.roomManager.PassCard(client, payload.RoomID, strings.TrimSpace(payload.Label)); err != nil {
		replyError(client, msg, err)
		return
	}

	client.SendMessage(codec.MustNewReply(msg.ID, protocol.MsgCardPassed, protocol.RoomAckPayload{RoomID: payload.RoomID}))
}

// handleRequestRematch 处理再来一局投票
func (h *Handler) handleRequestRematch(client types.ClientInterface, msg *protocol.Message) {
	if h.rejectInMaintenance(client, msg, "服务器维护中，暂停开始新对局") {
		return
	}

	payload, ok := decode[protocol.RematchPayload](client, msg)
	if !ok {
		return
	}

	if err := h.roomManager.RequestRematch(client, payload.RoomID, payload.Name); err != nil {
		replyError(client, msg, err)
		return
	}

	client.SendMessage(codec.MustNewReply(msg.ID, protocol.MsgRematchVoted, protocol.RoomAckPayload{RoomID: payload.RoomID}))
}
