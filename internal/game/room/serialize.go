package room

import (
	"context"
	"slices"
	"time"

	"github.com/palemoky/pass-four/internal/logger"
	"github.com/palemoky/pass-four/internal/protocol"
	"github.com/palemoky/pass-four/internal/server/storage"
)

// View 房间公开视图，不包含任何手牌内容
type View struct {
	ID           string              `json:"id"`
	Stage        string              `json:"stage"`
	TargetSeats  int                 `json:"target_seats"`
	Seats        []protocol.SeatInfo `json:"seats"`
	LabelCount   int                 `json:"label_count"`
	TurnIndex    int                 `json:"turn_index"`
	TurnHolder   string              `json:"turn_holder,omitempty"`
	RematchVotes int                 `json:"rematch_votes"`
	Winner       string              `json:"winner,omitempty"`
	CreatedAt    time.Time           `json:"created_at"`
}

// seatInfos 座位公开信息，调用方持有 r.mu
func (r *Room) seatInfos() []protocol.SeatInfo {
	infos := make([]protocol.SeatInfo, 0, len(r.Seats))
	for i, s := range r.Seats {
		infos = append(infos, protocol.SeatInfo{
			ID:         s.ID,
			Name:       s.Name,
			Seat:       i,
			IsBot:      s.IsBot,
			CardsCount: len(s.Hand),
		})
	}
	return infos
}

// SeatInfos 返回座位公开信息
func (r *Room) SeatInfos() []protocol.SeatInfo {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.seatInfos()
}

// PublicView 返回房间公开视图
func (r *Room) PublicView() View {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.view()
}

func (r *Room) view() View {
	v := View{
		ID:           r.ID,
		Stage:        r.Stage.String(),
		TargetSeats:  r.TargetSeats,
		Seats:        r.seatInfos(),
		LabelCount:   len(r.Labels),
		TurnIndex:    r.TurnIndex,
		RematchVotes: r.RematchVotes,
		Winner:       r.Winner,
		CreatedAt:    r.CreatedAt,
	}
	if r.Stage.Started() {
		if s := r.currentSeat(); s != nil {
			v.TurnHolder = s.Name
		}
	}
	return v
}

// HandOf 返回某座位手牌副本
func (r *Room) HandOf(seatID string) ([]string, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.seatIndex(seatID)
	if i < 0 {
		return nil, false
	}
	return slices.Clone([]string(r.Seats[i].Hand)), true
}

// ToRoomData 将 Room 转换为可序列化的 RoomData，调用方持有 r.mu
func (r *Room) ToRoomData() *storage.RoomData {
	data := &storage.RoomData{
		ID:           r.ID,
		Stage:        r.Stage.String(),
		TargetSeats:  r.TargetSeats,
		Seats:        make([]storage.SeatData, 0, len(r.Seats)),
		Labels:       slices.Clone(r.Labels),
		TurnIndex:    r.TurnIndex,
		RematchVotes: r.RematchVotes,
		ChatCount:    len(r.Chat),
		CreatedAt:    r.CreatedAt.Unix(),
		UpdatedAt:    time.Now().Unix(),
	}
	for _, s := range r.Seats {
		data.Seats = append(data.Seats, storage.SeatData{
			ID:         s.ID,
			Name:       s.Name,
			IsBot:      s.IsBot,
			CardsCount: len(s.Hand),
		})
	}
	return data
}

// persist 异步保存房间快照，调用方持有 r.mu。
// 晚到的旧快照会被丢弃，不会覆盖较新的快照
func (rm *RoomManager) persist(r *Room) {
	if rm.opts.Store == nil || r.closed {
		return
	}
	data := r.ToRoomData()
	r.saveSeq++
	seq := r.saveSeq
	r.saves.Add(1)
	go func() {
		defer r.saves.Done()
		r.saveMu.Lock()
		defer r.saveMu.Unlock()
		if seq < r.savedSeq {
			return
		}
		if err := rm.opts.Store.SaveRoom(context.Background(), data); err != nil {
			logger.WithRoom(data.ID).WithError(err).Warn("⚠️ 保存房间快照失败")
			return
		}
		r.savedSeq = seq
	}()
}
