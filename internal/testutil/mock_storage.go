//go:build !production

package testutil

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/palemoky/pass-four/internal/server/storage"
)

// MockRoomStore 房间快照存储 mock
type MockRoomStore struct {
	mock.Mock
}

func (m *MockRoomStore) SaveRoom(ctx context.Context, data *storage.RoomData) error {
	args := m.Called(ctx, data)
	return args.Error(0)
}

func (m *MockRoomStore) DeleteRoom(ctx context.Context, roomID string) error {
	args := m.Called(ctx, roomID)
	return args.Error(0)
}

// MockLeaderboard 排行榜 mock
type MockLeaderboard struct {
	mock.Mock
}

func (m *MockLeaderboard) RecordWin(ctx context.Context, playerName, label string) error {
	args := m.Called(ctx, playerName, label)
	return args.Error(0)
}
