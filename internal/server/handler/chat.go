package handler

import (
	"strings"

	"github.com/palemoky/pass-four/internal/protocol"
	"github.com/palemoky/pass-four/internal/protocol/codec"
	"github.com/palemoky/pass-four/internal/types"
)

// handleSendChat 处理聊天消息
func (h *Handler) handleSendChat(client types.ClientInterface, msg *protocol.Message) {
	payload, ok := decode[protocol.SendChatPayload](client, msg)
	if !ok {
		return
	}

	// 聊天限流检查
	if h.chatLimiter != nil {
		allowed, reason := h.chatLimiter.AllowChat(client.GetID())
		if !allowed {
			client.SendMessage(codec.NewErrorReply(msg.ID, protocol.ErrCodeRateLimit, reason))
			return
		}
	}

	// 未填昵称时使用连接上记录的昵称
	name := strings.TrimSpace(payload.Name)
	if name == "" {
		name = client.GetName()
	}

	if _, err := h.roomManager.SendMessage(payload.RoomID, name, strings.TrimSpace(payload.Text)); err != nil {
		replyError(client, msg, err)
		return
	}

	client.SendMessage(codec.MustNewReply(msg.ID, protocol.MsgChatSent, protocol.RoomAckPayload{RoomID: payload.RoomID}))
}

// handleChatHistory 处理拉取聊天记录
func (h *Handler) handleChatHistory(client types.ClientInterface, msg *protocol.Message) {
	payload, ok := decode[protocol.RoomRefPayload](client, msg)
	if !ok {
		return
	}

	messages, err := h.roomManager.ChatHistory(payload.RoomID)
	if err != nil {
		replyError(client, msg, err)
		return
	}

	client.SendMessage(codec.MustNewReply(msg.ID, protocol.MsgChatHistoryResult, protocol.ChatHistoryPayload{
		RoomID:   payload.RoomID,
		Messages: messages,
	}))
}
