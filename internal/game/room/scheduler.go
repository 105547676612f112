package room

import (
	"time"

	"github.com/palemoky/pass-four/internal/logger"
)

// armBotTimer 轮到机器人时启动出牌计时器，调用方持有 r.mu
func (rm *RoomManager) armBotTimer(r *Room) {
	rm.disarmBotTimer(r)

	if r.closed || r.Stage != StageInProgress {
		return
	}
	seat := r.currentSeat()
	if seat == nil || !seat.IsBot {
		return
	}

	seq := r.turnSeq
	r.botTimer = time.AfterFunc(rm.opts.BotTurnDelay, func() {
		rm.runBotTurn(r, seq)
	})
}

// disarmBotTimer 停止机器人计时器，调用方持有 r.mu
func (rm *RoomManager) disarmBotTimer(r *Room) {
	if r.botTimer != nil {
		r.botTimer.Stop()
		r.botTimer = nil
	}
}

// runBotTurn 计时器到期后由服务器代机器人出牌；轮次已变化则忽略
func (rm *RoomManager) runBotTurn(r *Room, seq uint64) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed || r.Stage != StageInProgress || r.turnSeq != seq {
		return
	}
	seat := r.currentSeat()
	if seat == nil || !seat.IsBot {
		return
	}
	r.botTimer = nil

	if err := rm.passForBot(r); err != nil {
		logger.WithRoom(r.ID).WithError(err).Warnf("🤖 机器人 %s 无法出牌", seat.Name)
	}
}
