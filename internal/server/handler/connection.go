package handler

import (
	"time"

	"github.com/palemoky/pass-four/internal/protocol"
	"github.com/palemoky/pass-four/internal/protocol/codec"
	"github.com/palemoky/pass-four/internal/types"
)

// handlePing 处理心跳消息
func (h *Handler) handlePing(client types.ClientInterface, msg *protocol.Message) {
	payload, ok := decode[protocol.PingPayload](client, msg)
	if !ok {
		return
	}

	// 立即回复 pong
	client.SendMessage(codec.MustNewReply(msg.ID, protocol.MsgPong, protocol.PongPayload{
		ClientTimestamp: payload.Timestamp,
		ServerTimestamp: time.Now().UnixMilli(),
	}))
}

// HandleDisconnect 连接断开时释放座位和限流状态
func (h *Handler) HandleDisconnect(client types.ClientInterface) {
	if h.chatLimiter != nil {
		h.chatLimiter.RemoveClient(client.GetID())
	}
	h.roomManager.HandleDisconnect(client)
}
