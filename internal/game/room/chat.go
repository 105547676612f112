package room

import (
	"slices"
	"time"

	"github.com/palemoky/pass-four/internal/protocol"
	"github.com/palemoky/pass-four/internal/protocol/codec"
)

// SendMessage 追加聊天消息并立即广播给房间内所有人
func (rm *RoomManager) SendMessage(roomID, name, text string) (protocol.ChatMessage, error) {
	room, err := rm.lockRoom(roomID)
	if err != nil {
		return protocol.ChatMessage{}, err
	}
	defer room.mu.Unlock()

	msg := protocol.ChatMessage{
		Author:    name,
		Text:      text,
		Timestamp: time.Now().UnixMilli(),
	}
	room.Chat = append(room.Chat, msg)

	// 超出上限时丢弃最早的消息
	if limit := rm.opts.ChatHistoryLimit; limit > 0 && len(room.Chat) > limit {
		room.Chat = slices.Delete(room.Chat, 0, len(room.Chat)-limit)
	}

	room.Broadcast(codec.MustNewMessage(protocol.MsgChatMessage, msg))
	return msg, nil
}

// ChatHistory 返回聊天记录副本（按时间顺序）
func (rm *RoomManager) ChatHistory(roomID string) ([]protocol.ChatMessage, error) {
	room, err := rm.lockRoom(roomID)
	if err != nil {
		return nil, err
	}
	defer room.mu.Unlock()

	return append([]protocol.ChatMessage{}, room.Chat...), nil
}
