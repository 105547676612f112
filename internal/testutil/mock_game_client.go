//go:build !production

package testutil

import (
	"github.com/stretchr/testify/mock"

	"github.com/palemoky/pass-four/internal/protocol"
)

// MockGameClient 终端界面使用的游戏客户端 mock
type MockGameClient struct {
	mock.Mock
}

func (m *MockGameClient) Connect() error {
	return m.Called().Error(0)
}

func (m *MockGameClient) Receive() (*protocol.Message, error) {
	args := m.Called()
	msg, _ := args.Get(0).(*protocol.Message)
	return msg, args.Error(1)
}

func (m *MockGameClient) IsConnected() bool {
	return m.Called().Bool(0)
}

func (m *MockGameClient) StartHeartbeat() {
	m.Called()
}

func (m *MockGameClient) GetPlayerID() string {
	return m.Called().String(0)
}

func (m *MockGameClient) GetLatency() int64 {
	args := m.Called()
	return args.Get(0).(int64)
}

func (m *MockGameClient) Close() {
	m.Called()
}

func (m *MockGameClient) CreateRoom(name string, seats int) error {
	return m.Called(name, seats).Error(0)
}

func (m *MockGameClient) JoinRoom(roomID, name string) error {
	return m.Called(roomID, name).Error(0)
}

func (m *MockGameClient) AddBots(roomID string, count, seats int) error {
	return m.Called(roomID, count, seats).Error(0)
}

func (m *MockGameClient) SubmitLabels(roomID string, labels []string) error {
	return m.Called(roomID, labels).Error(0)
}

func (m *MockGameClient) StartGame(roomID string) error {
	return m.Called(roomID).Error(0)
}

func (m *MockGameClient) PassCard(roomID, label string) error {
	return m.Called(roomID, label).Error(0)
}

func (m *MockGameClient) RequestRematch(roomID, name string) error {
	return m.Called(roomID, name).Error(0)
}

func (m *MockGameClient) ExitRoom(roomID string) error {
	return m.Called(roomID).Error(0)
}

func (m *MockGameClient) SendChat(roomID, name, text string) error {
	return m.Called(roomID, name, text).Error(0)
}

func (m *MockGameClient) ChatHistory(roomID string) error {
	return m.Called(roomID).Error(0)
}
