package handler

import (
	"errors"

	"github.com/palemoky/pass-four/internal/apperrors"
	"github.com/palemoky/pass-four/internal/game/room"
	"github.com/palemoky/pass-four/internal/logger"
	"github.com/palemoky/pass-four/internal/protocol"
	"github.com/palemoky/pass-four/internal/protocol/codec"
	"github.com/palemoky/pass-four/internal/types"
)

// HandlerDeps 处理器依赖
type HandlerDeps struct {
	Server      types.ServerInterface
	RoomManager *room.RoomManager
	ChatLimiter types.ChatLimiter
}

// Handler 消息处理器
type Handler struct {
	server      types.ServerInterface
	roomManager *room.RoomManager
	chatLimiter types.ChatLimiter
	handlers    map[protocol.MessageType]handlerFunc
}

// handlerFunc 统一的处理器函数签名
type handlerFunc func(client types.ClientInterface, msg *protocol.Message)

// NewHandler 创建处理器
func NewHandler(deps HandlerDeps) *Handler {
	h := &Handler{
		server:      deps.Server,
		roomManager: deps.RoomManager,
		chatLimiter: deps.ChatLimiter,
	}
	h.initHandlers()
	return h
}

// initHandlers 初始化消息处理器映射
func (h *Handler) initHandlers() {
	h.handlers = map[protocol.MessageType]handlerFunc{
		// 连接操作
		protocol.MsgPing: h.handlePing,

		// 房间操作
		protocol.MsgCreateRoom:   h.handleCreateRoom,
		protocol.MsgJoinRoom:     h.handleJoinRoom,
		protocol.MsgAddBots:      h.handleAddBots,
		protocol.MsgSubmitLabels: h.handleSubmitLabels,
		protocol.MsgStartGame:    h.handleStartGame,
		protocol.MsgExitRoom:     h.handleExitRoom,

		// 游戏操作
		protocol.MsgPassCard:       h.handlePassCard,
		protocol.MsgRequestRematch: h.handleRequestRematch,

		// 聊天
		protocol.MsgSendChat:    h.handleSendChat,
		protocol.MsgChatHistory: h.handleChatHistory,
	}
}

// Handle 处理消息，单条消息的 panic 不会影响连接
func (h *Handler) Handle(client types.ClientInterface, msg *protocol.Message) {
	defer func() {
		if r := recover(); r != nil {
			logger.LogPanic(r)
			client.SendMessage(codec.NewErrorReply(msg.ID, protocol.ErrCodeUnknown, protocol.ErrorMessages[protocol.ErrCodeUnknown]))
		}
	}()

	if handler, ok := h.handlers[msg.Type]; ok {
		handler(client, msg)
		return
	}

	logger.WithClient(client.GetID()).Warnf("⚠️  未知消息类型: '%s' (Payload长度=%d bytes)", msg.Type, len(msg.Payload))
	client.SendMessage(codec.NewErrorReply(msg.ID, protocol.ErrCodeInvalidMsg, protocol.ErrorMessages[protocol.ErrCodeInvalidMsg]))
}

// decode 解析并校验请求 payload，失败时直接回复 invalid_msg
func decode[T any, P interface {
	*T
	protocol.Validator
}](client types.ClientInterface, msg *protocol.Message) (P, bool) {
	payload, err := codec.ParsePayload[T](msg)
	if err != nil {
		client.SendMessage(codec.NewErrorReply(msg.ID, protocol.ErrCodeInvalidMsg, protocol.ErrorMessages[protocol.ErrCodeInvalidMsg]))
		return nil, false
	}

	p := P(payload)
	if err := p.Validate(); err != nil {
		client.SendMessage(codec.NewErrorReply(msg.ID, protocol.ErrCodeInvalidMsg, err.Error()))
		return nil, false
	}
	return p, true
}

// replyError 把房间引擎返回的错误转换为错误响应
func replyError(client types.ClientInterface, msg *protocol.Message, err error) {
	var gameErr *apperrors.GameError
	if errors.As(err, &gameErr) {
		client.SendMessage(codec.NewErrorReply(msg.ID, gameErr.Code, gameErr.Message))
		return
	}
	logger.WithClient(client.GetID()).Errorf("处理 %s 失败: %v", msg.Type, err)
	client.SendMessage(codec.NewErrorReply(msg.ID, protocol.ErrCodeUnknown, err.Error()))
}

// rejectInMaintenance 维护模式下拒绝新对局
func (h *Handler) rejectInMaintenance(client types.ClientInterface, msg *protocol.Message, text string) bool {
	if h.server == nil || !h.server.IsMaintenanceMode() {
		return false
	}
	client.SendMessage(codec.NewErrorReply(msg.ID, protocol.ErrCodeServerMaintenance, text))
	return true
}
