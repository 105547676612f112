// Package handler processes server messages.
package handler

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/palemoky/pass-four/internal/protocol"
	"github.com/palemoky/pass-four/internal/ui/model"
)

// notificationTTL 临时通知的显示时长
const notificationTTL = 3 * time.Second

// messageHandler 消息处理函数类型
type messageHandler func(m model.Model, msg *protocol.Message) tea.Cmd

// noop 只需要确认的响应，状态由随后的广播更新
func noop(model.Model, *protocol.Message) tea.Cmd { return nil }

// messageHandlers 消息处理器映射表
var messageHandlers = map[protocol.MessageType]messageHandler{
	// Connection
	protocol.MsgConnected: handleMsgConnected,
	protocol.MsgPong:      noop,
	protocol.MsgError:     handleMsgError,

	// Room
	protocol.MsgRoomCreated:     handleMsgRoomEntered,
	protocol.MsgRoomJoined:      handleMsgRoomEntered,
	protocol.MsgSeatsUpdated:    handleMsgSeatsUpdated,
	protocol.MsgRoomFull:        handleMsgRoomFull,
	protocol.MsgBotsAdded:       noop,
	protocol.MsgLabelsSubmitted: handleMsgLabelsSubmitted,
	protocol.MsgRoomExited:      handleMsgRoomExited,

	// Game
	protocol.MsgGameStarted:    handleMsgGameStarted,
	protocol.MsgTurnAdvanced:   handleMsgTurnAdvanced,
	protocol.MsgHandUpdated:    handleMsgHandUpdated,
	protocol.MsgCardPassed:     noop,
	protocol.MsgGameConcluded:  handleMsgGameConcluded,
	protocol.MsgRematchVote:    handleMsgRematchVote,
	protocol.MsgRematchVoted:   noop,
	protocol.MsgRematchStarted: handleMsgRematchStarted,
	protocol.MsgRematchReady:   handleMsgRematchReady,

	// Chat
	protocol.MsgChatMessage:       handleMsgChatMessage,
	protocol.MsgChatSent:          noop,
	protocol.MsgChatHistoryResult: handleMsgChatHistory,
}

// HandleServerMessage dispatches server messages to appropriate handlers.
func HandleServerMessage(m model.Model, msg *protocol.Message) tea.Cmd {
	if handler, ok := messageHandlers[msg.Type]; ok {
		return handler(m, msg)
	}
	return nil
}

// clearNotificationLater 返回定时清除临时通知的命令
func clearNotificationLater() tea.Cmd {
	return tea.Tick(notificationTTL, func(time.Time) tea.Msg {
		return model.ClearSystemNotificationMsg{}
	})
}

// Notify 显示临时通知，供输入处理复用
func Notify(m model.Model, notifyType model.NotificationType, message string) tea.Cmd {
	m.SetNotification(notifyType, message, true)
	return clearNotificationLater()
}

// inCurrentRoom 过滤掉离开房间后迟到的广播
func inCurrentRoom(m model.Model, roomID string) bool {
	return m.Phase().InRoom() && m.Room().ID == roomID
}
