package protocol

import "encoding/json"

// Message 基础消息结构
type Message struct {
	Type    MessageType     `json:"type"`
	ID      string          `json:"id,omitempty"` // 请求 ID，响应时原样带回
	Payload json.RawMessage `json:"payload,omitempty"`
}

// MessageType 消息类型
type MessageType string

// 客户端 → 服务端 消息类型
const (
	MsgPing MessageType = "ping" // 心跳 ping

	// 房间操作
	MsgCreateRoom   MessageType = "create_room"   // 创建房间
	MsgJoinRoom     MessageType = "join_room"     // 加入房间
	MsgAddBots      MessageType = "add_bots"      // 添加机器人
	MsgSubmitLabels MessageType = "submit_labels" // 提交卡牌名称
	MsgStartGame    MessageType = "start_game"    // 开始游戏
	MsgExitRoom     MessageType = "exit_room"     // 离开房间

	// 游戏操作
	MsgPassCard       MessageType = "pass_card"       // 传牌
	MsgRequestRematch MessageType = "request_rematch" // 请求再来一局

	// 聊天
	MsgSendChat    MessageType = "send_chat"    // 发送聊天消息
	MsgChatHistory MessageType = "chat_history" // 拉取聊天记录
)

// 服务端 → 客户端 请求响应
const (
	MsgPong              MessageType = "pong"                // 心跳 pong
	MsgRoomCreated       MessageType = "room_created"        // 房间创建成功
	MsgRoomJoined        MessageType = "room_joined"         // 加入房间成功
	MsgBotsAdded         MessageType = "bots_added"          // 机器人已添加
	MsgLabelsSubmitted   MessageType = "labels_submitted"    // 卡牌名称已提交
	MsgCardPassed        MessageType = "card_passed"         // 传牌成功
	MsgRematchVoted      MessageType = "rematch_voted"       // 投票成功
	MsgRoomExited        MessageType = "room_exited"         // 已离开房间
	MsgChatSent          MessageType = "chat_sent"           // 聊天消息已发送
	MsgChatHistoryResult MessageType = "chat_history_result" // 聊天记录

	MsgError MessageType = "error" // 错误消息
)

// 服务端 → 客户端 广播
const (
	MsgConnected      MessageType = "connected"       // 连接成功
	MsgSeatsUpdated   MessageType = "seats_updated"   // 座位列表更新
	MsgRoomFull       MessageType = "room_full"       // 房间已满
	MsgGameStarted    MessageType = "game_started"    // 游戏开始（每个座位私有手牌）
	MsgTurnAdvanced   MessageType = "turn_advanced"   // 轮到下一位
	MsgHandUpdated    MessageType = "hand_updated"    // 手牌更新（私有）
	MsgGameConcluded  MessageType = "game_concluded"  // 游戏结束
	MsgRematchVote    MessageType = "rematch_vote"    // 再来一局票数
	MsgRematchStarted MessageType = "rematch_started" // 再来一局发牌（私有）
	MsgRematchReady   MessageType = "rematch_ready"   // 再来一局就绪
	MsgChatMessage    MessageType = "chat_message"    // 收到聊天消息
)

// IsRequest 判断是否为客户端可发送的请求类型
func (t MessageType) IsRequest() bool {
	switch t {
	case MsgPing, MsgCreateRoom, MsgJoinRoom, MsgAddBots, MsgSubmitLabels, MsgStartGame,
		MsgExitRoom, MsgPassCard, MsgRequestRematch, MsgSendChat, MsgChatHistory:
		return true
	}
	return false
}
