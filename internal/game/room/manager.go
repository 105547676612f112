package room

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/palemoky/pass-four/internal/apperrors"
	"github.com/palemoky/pass-four/internal/logger"
	"github.com/palemoky/pass-four/internal/protocol"
	"github.com/palemoky/pass-four/internal/protocol/codec"
	"github.com/palemoky/pass-four/internal/types"
)

// CreateRoom 创建房间，创建者占据第一个座位
func (rm *RoomManager) CreateRoom(client types.ClientInterface, name string, seats int) (*Room, error) {
	if seats < protocol.MinSeats || seats > rm.opts.MaxSeats {
		return nil, apperrors.ErrInvalidSeatCount
	}

	// 已在其他房间则先离开
	rm.LeaveRoom(client)

	client.SetName(name)
	room := &Room{
		ID:          uuid.NewString(),
		TargetSeats: seats,
		Seats: []*Seat{{
			ID:     client.GetID(),
			Name:   name,
			Client: client,
		}},
		Stage:     StageLobby,
		CreatedAt: time.Now(),
		voters:    make(map[string]struct{}),
		rng:       rm.opts.NewRand(),
	}

	rm.mu.Lock()
	rm.rooms[room.ID] = room
	rm.mu.Unlock()

	client.SetRoom(room.ID)

	room.mu.Lock()
	rm.persist(room)
	room.mu.Unlock()

	logger.WithRoom(room.ID).Infof("🏠 房间已创建，玩家 %s，目标座位数 %d", name, seats)
	return room, nil
}

// GetRoom 获取房间
func (rm *RoomManager) GetRoom(roomID string) (*Room, error) {
	rm.mu.RLock()
	room, exists := rm.rooms[roomID]
	rm.mu.RUnlock()
	if !exists {
		return nil, apperrors.ErrRoomNotFound
	}
	return room, nil
}

// lockRoom 获取并锁定房间；房间已关闭视为不存在
func (rm *RoomManager) lockRoom(roomID string) (*Room, error) {
	room, err := rm.GetRoom(roomID)
	if err != nil {
		return nil, err
	}
	room.mu.Lock()
	if room.closed {
		room.mu.Unlock()
		return nil, apperrors.ErrRoomNotFound
	}
	return room, nil
}

// JoinRoom 加入房间。目标房间校验通过后才离开原房间，
// 两个房间按 ID 顺序加锁
func (rm *RoomManager) JoinRoom(client types.ClientInterface, roomID, name string) (*Room, error) {
	room, err := rm.GetRoom(roomID)
	if err != nil {
		return nil, err
	}

	var prev *Room
	if cur := client.GetRoom(); cur != "" && cur != roomID {
		prev, _ = rm.GetRoom(cur)
	}
	locked := lockRooms(room, prev)
	unlock := func() {
		for _, r := range locked {
			r.mu.Unlock()
		}
	}

	if err := room.checkJoinable(client.GetID()); err != nil {
		unlock()
		if errors.Is(err, errAlreadySeated) {
			return room, nil
		}
		return nil, err
	}

	evictPrev := false
	if prev != nil && !prev.closed {
		if idx := prev.seatIndex(client.GetID()); idx >= 0 {
			evictPrev = rm.removeSeat(prev, idx)
		}
	}

	client.SetName(name)
	room.Seats = append(room.Seats, &Seat{
		ID:     client.GetID(),
		Name:   name,
		Client: client,
	})
	client.SetRoom(roomID)

	logger.WithRoom(roomID).Infof("👤 玩家 %s 加入房间 (%d/%d)", name, len(room.Seats), room.TargetSeats)

	room.Broadcast(codec.MustNewMessage(protocol.MsgSeatsUpdated, protocol.RoomSeatsPayload{
		RoomID: roomID,
		Seats:  room.seatInfos(),
	}))
	rm.onSeatsChanged(room)
	rm.persist(room)
	unlock()

	if evictPrev {
		rm.removeRoom(prev)
	}
	return room, nil
}

// 重复加入视为成功
var errAlreadySeated = errors.New("already seated")

// checkJoinable 校验座位能否加入，调用方持有 r.mu
func (r *Room) checkJoinable(seatID string) error {
	switch {
	case r.closed:
		return apperrors.ErrRoomNotFound
	case r.seatIndex(seatID) >= 0:
		return errAlreadySeated
	case r.isFull():
		return apperrors.ErrRoomFull
	case r.Stage.Started():
		return apperrors.ErrGameStarted
	}
	return nil
}

// lockRooms 按 ID 顺序锁定房间，忽略 nil，返回已加锁的房间
func lockRooms(rooms ...*Room) []*Room {
	locked := slices.DeleteFunc(slices.Clone(rooms), func(r *Room) bool { return r == nil })
	slices.SortFunc(locked, func(a, b *Room) int { return strings.Compare(a.ID, b.ID) })
	for _, r := range locked {
		r.mu.Lock()
	}
	return locked
}

// AddBots 添加机器人座位，超过目标座位数时拒绝
func (rm *RoomManager) AddBots(client types.ClientInterface, roomID string, count, targetSeats int) error {
	room, err := rm.lockRoom(roomID)
	if err != nil {
		return err
	}
	defer room.mu.Unlock()

	if room.seatIndex(client.GetID()) < 0 {
		return apperrors.ErrSeatNotFound
	}
	if room.Stage.Started() {
		return apperrors.ErrGameStarted
	}

	limit := room.TargetSeats
	if targetSeats > 0 && targetSeats < limit {
		limit = targetSeats
	}
	if count <= 0 || len(room.Seats)+count > limit {
		return apperrors.ErrRoomFull
	}

	for range count {
		room.botSeq++
		room.Seats = append(room.Seats, &Seat{
			ID:        "bot-" + uuid.NewString(),
			Name:      fmt.Sprintf("Bot_%d", room.botSeq),
			IsBot:     true,
			submitted: true,
		})
	}

	logger.WithRoom(roomID).Infof("🤖 添加 %d 个机器人 (%d/%d)", count, len(room.Seats), room.TargetSeats)

	room.Broadcast(codec.MustNewMessage(protocol.MsgSeatsUpdated, protocol.RoomSeatsPayload{
		RoomID: roomID,
		Seats:  room.seatInfos(),
	}))
	rm.onSeatsChanged(room)
	rm.persist(room)

	return nil
}

// onSeatsChanged 满员时进入提交阶段，所有人已提交则自动开局，调用方持有 r.mu
func (rm *RoomManager) onSeatsChanged(r *Room) {
	if r.Stage.Started() {
		return
	}
	if !r.isFull() {
		r.Stage = StageLobby
		return
	}

	r.Stage = StageSubmitting
	r.Broadcast(codec.MustNewMessage(protocol.MsgRoomFull, protocol.RoomAckPayload{RoomID: r.ID}))
	logger.WithRoom(r.ID).Info("✅ 房间已满员")

	if r.allSubmitted() {
		rm.startGame(r)
	}
}

// LeaveRoom 离开客户端当前所在的房间（若有）
func (rm *RoomManager) LeaveRoom(client types.ClientInterface) {
	roomID := client.GetRoom()
	if roomID == "" {
		return
	}
	if _, err := rm.ExitRoom(client, roomID); err != nil {
		client.SetRoom("")
	}
}

// ListRooms 获取房间列表
func (rm *RoomManager) ListRooms() []protocol.RoomListItem {
	rm.mu.RLock()
	rooms := make([]*Room, 0, len(rm.rooms))
	for _, r := range rm.rooms {
		rooms = append(rooms, r)
	}
	rm.mu.RUnlock()

	items := make([]protocol.RoomListItem, 0, len(rooms))
	for _, r := range rooms {
		r.mu.Lock()
		if !r.closed {
			items = append(items, protocol.RoomListItem{
				RoomID:     r.ID,
				SeatCount:  len(r.Seats),
				TargetSize: r.TargetSeats,
				Stage:      r.Stage.String(),
			})
		}
		r.mu.Unlock()
	}
	sort.Slice(items, func(i, j int) bool { return items[i].RoomID < items[j].RoomID })
	return items
}

// RoomCount 房间数量
func (rm *RoomManager) RoomCount() int {
	rm.mu.RLock()
	defer rm.mu.RUnlock()
	return len(rm.rooms)
}

// GetActiveGamesCount 获取进行中的游戏数量
func (rm *RoomManager) GetActiveGamesCount() int {
	rm.mu.RLock()
	rooms := make([]*Room, 0, len(rm.rooms))
	for _, r := range rm.rooms {
		rooms = append(rooms, r)
	}
	rm.mu.RUnlock()

	count := 0
	for _, r := range rooms {
		r.mu.Lock()
		if !r.closed && r.Stage == StageInProgress {
			count++
		}
		r.mu.Unlock()
	}
	return count
}

// removeRoom 从注册表删除房间，调用方不得持有 r.mu。
// 快照在该房间所有未完成的保存结束后才删除
func (rm *RoomManager) removeRoom(r *Room) {
	rm.mu.Lock()
	delete(rm.rooms, r.ID)
	rm.mu.Unlock()

	if rm.opts.Store != nil {
		go func() {
			r.saves.Wait()
			if err := rm.opts.Store.DeleteRoom(context.Background(), r.ID); err != nil {
				logger.WithRoom(r.ID).WithError(err).Warn("⚠️ 删除房间快照失败")
			}
		}()
	}
	logger.WithRoom(r.ID).Info("🏠 房间已解散")
}
