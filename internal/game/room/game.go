package room

import (
	"context"
	"slices"
	"strings"

	"github.com/palemoky/pass-four/internal/apperrors"
	"github.com/palemoky/pass-four/internal/game/bot"
	"github.com/palemoky/pass-four/internal/game/card"
	"github.com/palemoky/pass-four/internal/logger"
	"github.com/palemoky/pass-four/internal/protocol"
	"github.com/palemoky/pass-four/internal/protocol/codec"
	"github.com/palemoky/pass-four/internal/types"
)

// SubmitLabels 提交卡牌名称。同一座位可重复提交，以最后一次为准；
// 名称在本次提交内或与其他座位重复时拒绝。返回已提交数与所需数。
func (rm *RoomManager) SubmitLabels(client types.ClientInterface, roomID string, labels []string) (submitted, required int, err error) {
	room, err := rm.lockRoom(roomID)
	if err != nil {
		return 0, 0, err
	}
	defer room.mu.Unlock()

	idx := room.seatIndex(client.GetID())
	if idx < 0 {
		return 0, 0, apperrors.ErrSeatNotFound
	}
	if room.Stage.Started() {
		return 0, 0, apperrors.ErrGameStarted
	}

	seat := room.Seats[idx]
	cleaned, err := room.validateLabels(seat, labels)
	if err != nil {
		return 0, 0, err
	}

	// 替换该座位之前提交的名称
	room.Labels = slices.DeleteFunc(room.Labels, func(l string) bool {
		return slices.Contains(seat.labels, l)
	})
	room.Labels = append(room.Labels, cleaned...)
	seat.labels = cleaned
	seat.submitted = true

	submitted, required = room.submittedCount(), room.TargetSeats
	logger.WithRoom(roomID).Infof("📝 玩家 %s 提交了 %d 个卡牌名称 (%d/%d)", seat.Name, len(cleaned), submitted, required)

	room.Broadcast(codec.MustNewMessage(protocol.MsgLabelsSubmitted, protocol.LabelsSubmittedPayload{
		RoomID:    roomID,
		Submitted: submitted,
		Required:  required,
	}))

	if room.isFull() && room.allSubmitted() {
		rm.startGame(room)
	}
	rm.persist(room)

	return submitted, required, nil
}

// validateLabels 校验提交的卡牌名称，调用方持有 r.mu
func (r *Room) validateLabels(seat *Seat, labels []string) ([]string, error) {
	if len(labels) == 0 {
		return nil, apperrors.ErrDuplicateOrMissingLabel
	}

	cleaned := make([]string, 0, len(labels))
	seen := make(map[string]struct{}, len(labels))
	for _, l := range labels {
		l = strings.TrimSpace(l)
		if l == "" {
			return nil, apperrors.ErrDuplicateOrMissingLabel
		}
		if _, dup := seen[l]; dup {
			return nil, apperrors.ErrDuplicateOrMissingLabel
		}
		seen[l] = struct{}{}
		cleaned = append(cleaned, l)
	}

	// 与房间内其他已提交的名称比较，本座位之前的提交会被替换
	for _, l := range r.Labels {
		if slices.Contains(seat.labels, l) {
			continue
		}
		if _, dup := seen[l]; dup {
			return nil, apperrors.ErrDuplicateOrMissingLabel
		}
	}
	return cleaned, nil
}

// submittedCount 已提交的座位数（机器人视为已提交）
func (r *Room) submittedCount() int {
	n := 0
	for _, s := range r.Seats {
		if s.submitted {
			n++
		}
	}
	return n
}

func (r *Room) allSubmitted() bool {
	return len(r.Labels) > 0 && r.submittedCount() == len(r.Seats)
}

// StartGame 显式开始游戏：需要满员且已有卡牌名称
func (rm *RoomManager) StartGame(client types.ClientInterface, roomID string) error {
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
	if !room.isFull() {
		return apperrors.ErrRoomNotFull
	}
	if len(room.Labels) == 0 {
		return apperrors.ErrLabelsNotYetSubmitted
	}

	rm.startGame(room)
	rm.persist(room)
	return nil
}

// deal 洗牌并发牌，余牌丢弃，调用方持有 r.mu
func (r *Room) deal() {
	deck := card.BuildDeck(r.Labels, r.rng)
	hands, discarded := deck.Deal(len(r.Seats))
	for i, s := range r.Seats {
		s.Hand = hands[i]
	}
	r.TurnIndex = 0
	r.RematchVotes = 0
	clear(r.voters)
	r.Winner = ""
	r.Stage = StageInProgress
	r.turnSeq++

	if len(discarded) > 0 {
		logger.WithRoom(r.ID).Debugf("🃏 %d 张余牌被丢弃", len(discarded))
	}
}

// startGame 发牌并通知每个座位，调用方持有 r.mu
func (rm *RoomManager) startGame(r *Room) {
	r.deal()

	holder := r.currentSeat()
	for _, s := range r.Seats {
		s.sendTo(codec.MustNewMessage(protocol.MsgGameStarted, protocol.GameStartedPayload{
			RoomID:     r.ID,
			Hand:       slices.Clone([]string(s.Hand)),
			TurnHolder: holder.Name,
			TurnIsBot:  holder.IsBot,
		}))
	}
	r.Broadcast(codec.MustNewMessage(protocol.MsgSeatsUpdated, protocol.RoomSeatsPayload{
		RoomID: r.ID,
		Seats:  r.seatInfos(),
	}))

	logger.WithRoom(r.ID).Infof("🎮 游戏开始，%d 个座位，%d 个卡牌名称", len(r.Seats), len(r.Labels))

	if rm.checkWins(r, r.Seats...) {
		return
	}
	rm.armBotTimer(r)
}

// PassCard 传牌。真人座位只能由本人传出手中的牌；
// 机器人座位由策略选牌，忽略调用方提供的 label。
func (rm *RoomManager) PassCard(client types.ClientInterface, roomID, label string) error {
	room, err := rm.lockRoom(roomID)
	if err != nil {
		return err
	}
	defer room.mu.Unlock()

	switch room.Stage {
	case StageInProgress:
	case StageConcluded:
		return apperrors.ErrGameConcluded
	default:
		return apperrors.ErrGameNotStarted
	}

	seat := room.currentSeat()
	if seat.IsBot {
		if room.seatIndex(client.GetID()) < 0 {
			return apperrors.ErrSeatNotFound
		}
		return rm.passForBot(room)
	}

	if seat.ID != client.GetID() {
		return apperrors.ErrNotYourTurn
	}
	if !seat.Hand.Contains(label) {
		return apperrors.ErrCardNotInHand
	}

	rm.executePass(room, label)
	return nil
}

// passForBot 机器人出牌，调用方持有 r.mu
func (rm *RoomManager) passForBot(r *Room) error {
	seat := r.currentSeat()

	// 已凑齐四张则直接获胜，不再传牌
	if label, ok := seat.Hand.WinningLabel(); ok {
		rm.conclude(r, seat, label)
		return nil
	}

	label, ok := bot.ChooseCard(seat.Hand)
	if !ok {
		return apperrors.ErrNoCardsToPassForBot
	}

	rm.executePass(r, label)
	return nil
}

// executePass 执行一次已通过校验的传牌，调用方持有 r.mu
func (rm *RoomManager) executePass(r *Room, label string) {
	sender := r.currentSeat()
	sender.Hand.Remove(label)

	next := (r.TurnIndex + 1) % len(r.Seats)
	receiver := r.Seats[next]
	receiver.Hand.Add(label)
	r.TurnIndex = next
	r.turnSeq++

	logger.WithRoom(r.ID).Debugf("🔁 %s 传给 %s", sender.Name, receiver.Name)

	for _, s := range []*Seat{sender, receiver} {
		s.sendTo(codec.MustNewMessage(protocol.MsgHandUpdated, protocol.HandUpdatedPayload{
			RoomID: r.ID,
			Name:   s.Name,
			Hand:   slices.Clone([]string(s.Hand)),
		}))
	}
	r.Broadcast(codec.MustNewMessage(protocol.MsgTurnAdvanced, protocol.TurnAdvancedPayload{
		RoomID:     r.ID,
		TurnIndex:  r.TurnIndex,
		TurnHolder: receiver.Name,
		IsBot:      receiver.IsBot,
	}))
	r.Broadcast(codec.MustNewMessage(protocol.MsgSeatsUpdated, protocol.RoomSeatsPayload{
		RoomID: r.ID,
		Seats:  r.seatInfos(),
	}))
	rm.persist(r)

	if rm.checkWins(r, sender, receiver) {
		return
	}
	rm.armBotTimer(r)
}

// checkWins 按顺序检查座位是否凑齐四张，首个获胜者结束本局，调用方持有 r.mu
func (rm *RoomManager) checkWins(r *Room, seats ...*Seat) bool {
	for _, s := range seats {
		if label, ok := s.Hand.WinningLabel(); ok {
			rm.conclude(r, s, label)
			return true
		}
	}
	return false
}

// conclude 宣布获胜者并停止传牌，调用方持有 r.mu
func (rm *RoomManager) conclude(r *Room, winner *Seat, label string) {
	r.Stage = StageConcluded
	r.Winner = winner.Name
	rm.disarmBotTimer(r)

	r.Broadcast(codec.MustNewMessage(protocol.MsgGameConcluded, protocol.GameConcludedPayload{
		RoomID:     r.ID,
		WinnerID:   winner.ID,
		WinnerName: winner.Name,
		Label:      label,
	}))
	rm.persist(r)

	logger.WithRoom(r.ID).Infof("🏆 %s 凑齐了四张 %s，获胜", winner.Name, label)

	if rm.opts.Leaderboard != nil && !winner.IsBot {
		name := winner.Name
		go func() {
			if err := rm.opts.Leaderboard.RecordWin(context.Background(), name, label); err != nil {
				logger.WithRoom(r.ID).WithError(err).Warn("⚠️ 记录胜场失败")
			}
		}()
	}
}
