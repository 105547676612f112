package protocol

// --- 客户端请求 Payloads ---

// PingPayload 心跳请求
type PingPayload struct {
	Timestamp int64 `json:"timestamp"` // 客户端时间戳（毫秒）
}

// CreateRoomPayload 创建房间请求
type CreateRoomPayload struct {
	Name  string `json:"name"`
	Seats int    `json:"seats"` // 目标座位数
}

// JoinRoomPayload 加入房间请求
type JoinRoomPayload struct {
	RoomID string `json:"room_id"`
	Name   string `json:"name"`
}

// AddBotsPayload 添加机器人请求
type AddBotsPayload struct {
	RoomID string `json:"room_id"`
	Count  int    `json:"count"`
	Seats  int    `json:"seats"`
}

// SubmitLabelsPayload 提交卡牌名称请求
type SubmitLabelsPayload struct {
	RoomID string   `json:"room_id"`
	Labels []string `json:"labels"`
}

// RoomRefPayload 只携带房间 ID 的请求（开始游戏 / 离开房间 / 拉取聊天记录）
type RoomRefPayload struct {
	RoomID string `json:"room_id"`
}

// PassCardPayload 传牌请求，Label 为空表示由服务器代机器人出牌
type PassCardPayload struct {
	RoomID string `json:"room_id"`
	Label  string `json:"label,omitempty"`
}

// RematchPayload 再来一局请求
type RematchPayload struct {
	RoomID string `json:"room_id"`
	Name   string `json:"name"`
}

// SendChatPayload 发送聊天消息请求
type SendChatPayload struct {
	RoomID string `json:"room_id"`
	Text   string `json:"text"`
	Name   string `json:"name"`
}

// --- 服务端响应 Payloads ---

// ConnectedPayload 连接成功响应
type ConnectedPayload struct {
	PlayerID string `json:"player_id"`
}

// PongPayload 心跳响应
type PongPayload struct {
	ClientTimestamp int64 `json:"client_timestamp"`
	ServerTimestamp int64 `json:"server_timestamp"`
}

// RoomSeatsPayload 房间 ID + 座位列表（创建/加入成功、座位更新）
type RoomSeatsPayload struct {
	RoomID string     `json:"room_id"`
	Seats  []SeatInfo `json:"seats"`
}

// RoomAckPayload 通用成功响应
type RoomAckPayload struct {
	RoomID string `json:"room_id"`
}

// LabelsSubmittedPayload 提交卡牌名称响应
type LabelsSubmittedPayload struct {
	RoomID    string `json:"room_id"`
	Submitted int    `json:"submitted"`
	Required  int    `json:"required"`
}

// RoomExitedPayload 离开房间响应
type RoomExitedPayload struct {
	RoomID  string `json:"room_id"`
	Message string `json:"message"`
}

// ChatHistoryPayload 聊天记录响应
type ChatHistoryPayload struct {
	RoomID   string        `json:"room_id"`
	Messages []ChatMessage `json:"messages"`
}

// ErrorPayload 错误响应
type ErrorPayload struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// --- 广播 Payloads ---

// GameStartedPayload 游戏开始通知（每个座位私有）
type GameStartedPayload struct {
	RoomID     string   `json:"room_id"`
	Hand       []string `json:"hand"`
	TurnHolder string   `json:"turn_holder"`
	TurnIsBot  bool     `json:"turn_is_bot"`
}

// TurnAdvancedPayload 轮到下一位通知
type TurnAdvancedPayload struct {
	RoomID     string `json:"room_id"`
	TurnIndex  int    `json:"turn_index"`
	TurnHolder string `json:"turn_holder"`
	IsBot      bool   `json:"is_bot"`
}

// HandUpdatedPayload 手牌更新通知（私有）
type HandUpdatedPayload struct {
	RoomID string   `json:"room_id"`
	Name   string   `json:"name"`
	Hand   []string `json:"hand"`
}

// GameConcludedPayload 游戏结束通知
type GameConcludedPayload struct {
	RoomID     string `json:"room_id"`
	WinnerID   string `json:"winner_id"`
	WinnerName string `json:"winner_name"`
	Label      string `json:"label"` // 凑齐四张的卡牌
}

// RematchVotePayload 再来一局票数
type RematchVotePayload struct {
	RoomID string `json:"room_id"`
	Votes  int    `json:"votes"`
	Target int    `json:"target"`
}

// RematchStartedPayload 再来一局新手牌（私有）
type RematchStartedPayload struct {
	RoomID string   `json:"room_id"`
	Hand   []string `json:"hand"`
}

// RematchReadyPayload 再来一局就绪
type RematchReadyPayload struct {
	RoomID string   `json:"room_id"`
	Names  []string `json:"names"`
}

// --- 通用数据结构 ---

// SeatInfo 座位公开信息（不包含手牌内容）
type SeatInfo struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Seat       int    `json:"seat"`
	IsBot      bool   `json:"is_bot"`
	CardsCount int    `json:"cards_count"`
}

// ChatMessage 聊天消息
type ChatMessage struct {
	Author    string `json:"author"`
	Text      string `json:"text"`
	Timestamp int64  `json:"timestamp"` // 毫秒
}

// RoomListItem 房间列表项
type RoomListItem struct {
	RoomID     string `json:"room_id"`
	SeatCount  int    `json:"seat_count"`
	TargetSize int    `json:"target_size"`
	Stage      string `json:"stage"`
}
