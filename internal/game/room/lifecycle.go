package room

import (
	"context"
	"slices"
	"time"

	"github.com/palemoky/pass-four/internal/apperrors"
	"github.com/palemoky/pass-four/internal/logger"
	"github.com/palemoky/pass-four/internal/protocol"
	"github.com/palemoky/pass-four/internal/protocol/codec"
	"github.com/palemoky/pass-four/internal/types"
)

// 离开房间提示
const farewellMessage = "您已离开房间，欢迎再来"

// ExitRoom 主动离开房间，返回告别语
func (rm *RoomManager) ExitRoom(client types.ClientInterface, roomID string) (string, error) {
	room, err := rm.lockRoom(roomID)
	if err != nil {
		return "", err
	}

	idx := room.seatIndex(client.GetID())
	if idx < 0 {
		room.mu.Unlock()
		return "", apperrors.ErrSeatNotFound
	}

	evict := rm.removeSeat(room, idx)
	room.mu.Unlock()

	if evict {
		rm.removeRoom(room)
	}
	return farewellMessage, nil
}

// HandleDisconnect 连接断开时按策略处理其座位：
// skip 移除座位；bot 将座位转为机器人并保留手牌（仅限已开局）
func (rm *RoomManager) HandleDisconnect(client types.ClientInterface) {
	roomID := client.GetRoom()
	if roomID == "" {
		return
	}

	room, err := rm.lockRoom(roomID)
	if err != nil {
		return
	}

	idx := room.seatIndex(client.GetID())
	if idx < 0 {
		room.mu.Unlock()
		return
	}

	var evict bool
	if rm.opts.DisconnectPolicy == DisconnectBot && room.Stage.Started() {
		evict = rm.convertToBot(room, idx)
	} else {
		evict = rm.removeSeat(room, idx)
	}
	room.mu.Unlock()

	logger.WithRoom(roomID).Infof("📴 玩家 %s 断开连接", client.GetName())

	if evict {
		rm.removeRoom(room)
	}
}

// removeSeat 移除座位并修正轮次，返回房间是否需要解散，调用方持有 r.mu
func (rm *RoomManager) removeSeat(r *Room, idx int) bool {
	seat := r.Seats[idx]
	r.Seats = slices.Delete(r.Seats, idx, idx+1)
	if seat.Client != nil {
		seat.Client.SetRoom("")
	}
	if _, voted := r.voters[seat.ID]; voted {
		delete(r.voters, seat.ID)
		r.RematchVotes--
	}

	logger.WithRoom(r.ID).Infof("👋 玩家 %s 离开房间 (%d/%d)", seat.Name, len(r.Seats), r.TargetSeats)

	// 没有真人玩家时连同机器人一起解散
	if r.humanCount() == 0 {
		rm.closeRoom(r)
		return true
	}

	turnChanged := false
	if r.Stage.Started() {
		switch {
		case len(r.Seats) < protocol.MinSeats:
			rm.returnToLobby(r)
		case idx < r.TurnIndex:
			r.TurnIndex--
		case idx == r.TurnIndex:
			// 轮次交给接替该下标的座位
			r.TurnIndex %= len(r.Seats)
			r.turnSeq++
			turnChanged = true
		}
	}

	if !r.Stage.Started() {
		// 处于大厅（含人数不足回到大厅）时撤回该座位提交的卡牌名称
		r.Labels = slices.DeleteFunc(r.Labels, func(l string) bool {
			return slices.Contains(seat.labels, l)
		})
	}

	r.Broadcast(codec.MustNewMessage(protocol.MsgSeatsUpdated, protocol.RoomSeatsPayload{
		RoomID: r.ID,
		Seats:  r.seatInfos(),
	}))

	switch r.Stage {
	case StageLobby, StageSubmitting:
		rm.onSeatsChanged(r)
	case StageInProgress:
		if turnChanged {
			holder := r.currentSeat()
			r.Broadcast(codec.MustNewMessage(protocol.MsgTurnAdvanced, protocol.TurnAdvancedPayload{
				RoomID:     r.ID,
				TurnIndex:  r.TurnIndex,
				TurnHolder: holder.Name,
				IsBot:      holder.IsBot,
			}))
			rm.armBotTimer(r)
		}
	case StageConcluded:
		rm.checkRematchQuorum(r)
	}

	rm.persist(r)
	return false
}

// convertToBot 将掉线玩家的座位转为机器人，返回房间是否需要解散，调用方持有 r.mu
func (rm *RoomManager) convertToBot(r *Room, idx int) bool {
	seat := r.Seats[idx]
	if seat.Client != nil {
		seat.Client.SetRoom("")
	}
	if _, voted := r.voters[seat.ID]; voted {
		delete(r.voters, seat.ID)
		r.RematchVotes--
	}
	seat.Client = nil
	seat.IsBot = true
	seat.submitted = true

	logger.WithRoom(r.ID).Infof("🤖 玩家 %s 掉线，由机器人接管", seat.Name)

	if r.humanCount() == 0 {
		rm.closeRoom(r)
		return true
	}

	r.Broadcast(codec.MustNewMessage(protocol.MsgSeatsUpdated, protocol.RoomSeatsPayload{
		RoomID: r.ID,
		Seats:  r.seatInfos(),
	}))

	switch r.Stage {
	case StageInProgress:
		if idx == r.TurnIndex {
			holder := r.currentSeat()
			r.Broadcast(codec.MustNewMessage(protocol.MsgTurnAdvanced, protocol.TurnAdvancedPayload{
				RoomID:     r.ID,
				TurnIndex:  r.TurnIndex,
				TurnHolder: holder.Name,
				IsBot:      true,
			}))
			rm.armBotTimer(r)
		}
	case StageConcluded:
		rm.checkRematchQuorum(r)
	}

	rm.persist(r)
	return false
}

// returnToLobby 人数不足时回到大厅，清空手牌，调用方持有 r.mu
func (rm *RoomManager) returnToLobby(r *Room) {
	rm.disarmBotTimer(r)
	for _, s := range r.Seats {
		s.Hand = nil
	}
	r.Stage = StageLobby
	r.TurnIndex = 0
	r.RematchVotes = 0
	clear(r.voters)
	r.Winner = ""
	r.turnSeq++

	logger.WithRoom(r.ID).Info("↩️ 人数不足，回到等待阶段")
}

// closeRoom 标记房间关闭并停止计时器，调用方持有 r.mu
func (rm *RoomManager) closeRoom(r *Room) {
	r.closed = true
	rm.disarmBotTimer(r)
	r.turnSeq++
	for _, s := range r.Seats {
		if s.Client != nil {
			s.Client.SetRoom("")
		}
	}
}

// Run 定期清理超时未开局的房间，直到 ctx 取消
func (rm *RoomManager) Run(ctx context.Context) {
	ticker := time.NewTicker(cleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			rm.cleanup(time.Now())
		}
	}
}

// cleanup 清理超时房间：从未开局且超过 RoomTimeout 的房间
func (rm *RoomManager) cleanup(now time.Time) {
	rm.mu.RLock()
	rooms := make([]*Room, 0, len(rm.rooms))
	for _, r := range rm.rooms {
		rooms = append(rooms, r)
	}
	rm.mu.RUnlock()

	for _, r := range rooms {
		r.mu.Lock()
		expired := !r.closed && !r.Stage.Started() && now.Sub(r.CreatedAt) > rm.opts.RoomTimeout
		if expired {
			// 通知所有玩家房间已关闭
			r.Broadcast(codec.NewErrorMessageWithText(protocol.ErrCodeUnknown, "房间超时已关闭"))
			rm.closeRoom(r)
			logger.WithRoom(r.ID).Info("🧹 房间超时已清理")
		}
		r.mu.Unlock()

		if expired {
			rm.removeRoom(r)
		}
	}
}

// Close 停止所有房间的计时器
func (rm *RoomManager) Close() {
	rm.mu.RLock()
	rooms := make([]*Room, 0, len(rm.rooms))
	for _, r := range rm.rooms {
		rooms = append(rooms, r)
	}
	rm.mu.RUnlock()

	for _, r := range rooms {
		r.mu.Lock()
		rm.disarmBotTimer(r)
		r.turnSeq++
		r.mu.Unlock()
	}
}
