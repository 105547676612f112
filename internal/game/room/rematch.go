package room

import (
	"slices"

	"github.com/palemoky/pass-four/internal/apperrors"
	"github.com/palemoky/pass-four/internal/logger"
	"github.com/palemoky/pass-four/internal/protocol"
	"github.com/palemoky/pass-four/internal/protocol/codec"
	"github.com/palemoky/pass-four/internal/types"
)

// RequestRematch 投票再来一局。机器人自动投赞成票，
// 真人票数 + 机器人数达到座位数时用原有卡牌名称重新发牌。
func (rm *RoomManager) RequestRematch(client types.ClientInterface, roomID, name string) error {
	room, err := rm.lockRoom(roomID)
	if err != nil {
		return err
	}
	defer room.mu.Unlock()

	if room.seatIndex(client.GetID()) < 0 {
		return apperrors.ErrSeatNotFound
	}
	if room.Stage != StageConcluded {
		return apperrors.ErrGameNotConcluded
	}

	if _, voted := room.voters[client.GetID()]; !voted {
		room.voters[client.GetID()] = struct{}{}
		room.RematchVotes++
		logger.WithRoom(roomID).Infof("🔄 %s 请求再来一局 (%d+%d/%d)", name, room.RematchVotes, room.botCount(), len(room.Seats))
	}

	room.Broadcast(codec.MustNewMessage(protocol.MsgRematchVote, protocol.RematchVotePayload{
		RoomID: roomID,
		Votes:  room.RematchVotes,
		Target: len(room.Seats),
	}))

	rm.checkRematchQuorum(room)
	rm.persist(room)
	return nil
}

// checkRematchQuorum 达到法定票数时重新开局，调用方持有 r.mu
func (rm *RoomManager) checkRematchQuorum(r *Room) {
	if r.Stage != StageConcluded || r.RematchVotes+r.botCount() < len(r.Seats) {
		return
	}
	rm.startRematch(r)
}

// startRematch 重置并重新发牌，跳过提交阶段，调用方持有 r.mu
func (rm *RoomManager) startRematch(r *Room) {
	r.deal()

	for _, s := range r.Seats {
		s.sendTo(codec.MustNewMessage(protocol.MsgRematchStarted, protocol.RematchStartedPayload{
			RoomID: r.ID,
			Hand:   slices.Clone([]string(s.Hand)),
		}))
	}

	names := make([]string, 0, len(r.Seats))
	for _, s := range r.Seats {
		names = append(names, s.Name)
	}
	r.Broadcast(codec.MustNewMessage(protocol.MsgRematchReady, protocol.RematchReadyPayload{
		RoomID: r.ID,
		Names:  names,
	}))

	holder := r.currentSeat()
	r.Broadcast(codec.MustNewMessage(protocol.MsgTurnAdvanced, protocol.TurnAdvancedPayload{
		RoomID:     r.ID,
		TurnIndex:  r.TurnIndex,
		TurnHolder: holder.Name,
		IsBot:      holder.IsBot,
	}))
	r.Broadcast(codec.MustNewMessage(protocol.MsgSeatsUpdated, protocol.RoomSeatsPayload{
		RoomID: r.ID,
		Seats:  r.seatInfos(),
	}))

	logger.WithRoom(r.ID).Info("🔄 再来一局开始")

	if rm.checkWins(r, r.Seats...) {
		return
	}
	rm.armBotTimer(r)
}
