package client

import (
	"time"

	"github.com/palemoky/pass-four/internal/protocol"
	"github.com/palemoky/pass-four/internal/protocol/codec"
)

// --- 便捷方法 ---

// GetPlayerID 服务器分配的连接 ID
func (c *Client) GetPlayerID() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.PlayerID
}

// CreateRoom 创建房间
func (c *Client) CreateRoom(name string, seats int) error {
	return c.SendMessage(codec.MustNewMessage(protocol.MsgCreateRoom, protocol.CreateRoomPayload{
		Name:  name,
		Seats: seats,
	}))
}

// JoinRoom 加入房间
func (c *Client) JoinRoom(roomID, name string) error {
	return c.SendMessage(codec.MustNewMessage(protocol.MsgJoinRoom, protocol.JoinRoomPayload{
		RoomID: roomID,
		Name:   name,
	}))
}

// AddBots 添加机器人
func (c *Client) AddBots(roomID string, count, seats int) error {
	return c.SendMessage(codec.MustNewMessage(protocol.MsgAddBots, protocol.AddBotsPayload{
		RoomID: roomID,
		Count:  count,
		Seats:  seats,
	}))
}

// SubmitLabels 提交卡牌名称
func (c *Client) SubmitLabels(roomID string, labels []string) error {
	return c.SendMessage(codec.MustNewMessage(protocol.MsgSubmitLabels, protocol.SubmitLabelsPayload{
		RoomID: roomID,
		Labels: labels,
	}))
}

// StartGame 开始游戏
func (c *Client) StartGame(roomID string) error {
	return c.SendMessage(codec.MustNewMessage(protocol.MsgStartGame, protocol.RoomRefPayload{RoomID: roomID}))
}

// PassCard 传牌，label 为空时代当前机器人出牌
func (c *Client) PassCard(roomID, label string) error {
	return c.SendMessage(codec.MustNewMessage(protocol.MsgPassCard, protocol.PassCardPayload{
		RoomID: roomID,
		Label:  label,
	}))
}

// RequestRematch 请求再来一局
func (c *Client) RequestRematch(roomID, name string) error {
	return c.SendMessage(codec.MustNewMessage(protocol.MsgRequestRematch, protocol.RematchPayload{
		RoomID: roomID,
		Name:   name,
	}))
}

// ExitRoom 离开房间
func (c *Client) ExitRoom(roomID string) error {
	return c.SendMessage(codec.MustNewMessage(protocol.MsgExitRoom, protocol.RoomRefPayload{RoomID: roomID}))
}

// SendChat 发送聊天消息
func (c *Client) SendChat(roomID, name, text string) error {
	return c.SendMessage(codec.MustNewMessage(protocol.MsgSendChat, protocol.SendChatPayload{
		RoomID: roomID,
		Name:   name,
		Text:   text,
	}))
}

// ChatHistory 拉取聊天记录
func (c *Client) ChatHistory(roomID string) error {
	return c.SendMessage(codec.MustNewMessage(protocol.MsgChatHistory, protocol.RoomRefPayload{RoomID: roomID}))
}

// Ping 发送心跳
func (c *Client) Ping() error {
	return c.SendMessage(codec.MustNewMessage(protocol.MsgPing, protocol.PingPayload{
		Timestamp: time.Now().UnixMilli(),
	}))
}
