package handler

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/palemoky/pass-four/internal/protocol"
	"github.com/palemoky/pass-four/internal/protocol/codec"
	"github.com/palemoky/pass-four/internal/ui/model"
)

func handleMsgConnected(m model.Model, msg *protocol.Message) tea.Cmd {
	payload, err := codec.ParsePayload[protocol.ConnectedPayload](msg)
	if err != nil {
		return nil
	}
	m.SetPlayerID(payload.PlayerID)
	return nil
}

func handleMsgError(m model.Model, msg *protocol.Message) tea.Cmd {
	payload, err := codec.ParsePayload[protocol.ErrorPayload](msg)
	if err != nil {
		return nil
	}

	switch payload.Code {
	case protocol.ErrCodeServerMaintenance:
		m.SetMaintenanceMode(true)
		m.SetNotification(model.NotifyMaintenance, "⚠️ "+payload.Message, false)
		return nil
	case protocol.ErrCodeRateLimit:
		return Notify(m, model.NotifyRateLimit, "⏳ "+payload.Message)
	default:
		return Notify(m, model.NotifyError, "❌ "+payload.Message)
	}
}
