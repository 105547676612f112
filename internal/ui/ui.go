// Package ui wires the terminal client together.
package ui

import (
	"github.com/palemoky/pass-four/internal/network/client"
	"github.com/palemoky/pass-four/internal/protocol/codec"
	"github.com/palemoky/pass-four/internal/ui/handler"
	"github.com/palemoky/pass-four/internal/ui/input"
	"github.com/palemoky/pass-four/internal/ui/model"
	"github.com/palemoky/pass-four/internal/ui/view"
)

// NewOnlineModel creates a ready-to-run model talking to serverURL.
func NewOnlineModel(serverURL string, c codec.Codec, name string) *model.OnlineModel {
	return Wire(model.NewOnlineModel(client.NewClient(serverURL, c), name))
}

// Wire injects the view, key and server message handlers into m.
func Wire(m *model.OnlineModel) *model.OnlineModel {
	m.SetViewRenderer(view.Render)
	m.SetKeyHandler(input.HandleKeyPress)
	m.SetServerMessageHandler(handler.HandleServerMessage)
	return m
}
