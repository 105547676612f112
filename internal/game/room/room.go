package room

import (
	"context"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/palemoky/pass-four/internal/game/card"
	"github.com/palemoky/pass-four/internal/protocol"
	"github.com/palemoky/pass-four/internal/server/storage"
	"github.com/palemoky/pass-four/internal/types"
)

// 掉线处理策略
const (
	DisconnectSkip = "skip"
	DisconnectBot  = "bot"
)

const (
	defaultMaxSeats     = 8
	defaultBotTurnDelay = 800 * time.Millisecond
	defaultRoomTimeout  = 10 * time.Minute
	cleanupInterval     = time.Minute
)

// Seat 房间中的座位（玩家或机器人）
type Seat struct {
	ID     string
	Name   string
	Hand   card.Hand
	IsBot  bool
	Client types.ClientInterface // 机器人为 nil

	labels    []string // 该座位提交的卡牌名称
	submitted bool
}

// Room 游戏房间
type Room struct {
	ID           string
	TargetSeats  int
	Seats        []*Seat
	Labels       []string // 按提交顺序排列的卡牌名称
	TurnIndex    int
	Stage        Stage
	RematchVotes int
	Winner       string
	Chat         []protocol.ChatMessage
	CreatedAt    time.Time

	voters   map[string]struct{}
	rng      *rand.Rand
	botTimer *time.Timer
	turnSeq  uint64 // 每次轮次变化自增，用于丢弃过期的机器人计时器
	botSeq   int
	closed   bool

	// 快照写入：saveSeq 在 mu 下递增，savedSeq 在 saveMu 下记录已写入的最新序号
	saves    sync.WaitGroup
	saveSeq  uint64
	savedSeq uint64
	saveMu   sync.Mutex

	mu sync.Mutex
}

// RoomStore 房间快照存储
type RoomStore interface {
	SaveRoom(ctx context.Context, data *storage.RoomData) error
	DeleteRoom(ctx context.Context, roomID string) error
}

// WinRecorder 胜场记录
type WinRecorder interface {
	RecordWin(ctx context.Context, playerName, label string) error
}

// Options 房间管理器配置
type Options struct {
	Store            RoomStore
	Leaderboard      WinRecorder
	MaxSeats         int
	BotTurnDelay     time.Duration
	RoomTimeout      time.Duration
	ChatHistoryLimit int // 0 表示不限制
	DisconnectPolicy string
	NewRand          func() *rand.Rand
}

// RoomManager 房间管理器
type RoomManager struct {
	opts  Options
	rooms map[string]*Room
	mu    sync.RWMutex
}

// NewRoomManager 创建房间管理器
func NewRoomManager(opts Options) *RoomManager {
	if opts.MaxSeats < protocol.MinSeats {
		opts.MaxSeats = defaultMaxSeats
	}
	if opts.BotTurnDelay <= 0 {
		opts.BotTurnDelay = defaultBotTurnDelay
	}
	if opts.RoomTimeout <= 0 {
		opts.RoomTimeout = defaultRoomTimeout
	}
	if opts.ChatHistoryLimit < 0 {
		opts.ChatHistoryLimit = 0
	}
	if opts.DisconnectPolicy == "" {
		opts.DisconnectPolicy = DisconnectSkip
	}
	if opts.NewRand == nil {
		opts.NewRand = func() *rand.Rand {
			return rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
		}
	}

	return &RoomManager{
		opts:  opts,
		rooms: make(map[string]*Room),
	}
}

// currentSeat 当前轮到的座位，调用方持有 r.mu
func (r *Room) currentSeat() *Seat {
	if len(r.Seats) == 0 {
		return nil
	}
	return r.Seats[r.TurnIndex]
}

// seatIndex 查找座位下标，调用方持有 r.mu
func (r *Room) seatIndex(id string) int {
	for i, s := range r.Seats {
		if s.ID == id {
			return i
		}
	}
	return -1
}

func (r *Room) isFull() bool {
	return len(r.Seats) == r.TargetSeats
}

func (r *Room) botCount() int {
	n := 0
	for _, s := range r.Seats {
		if s.IsBot {
			n++
		}
	}
	return n
}

func (r *Room) humanCount() int {
	return len(r.Seats) - r.botCount()
}

// Broadcast 向房间内所有真人玩家广播，调用方持有 r.mu
func (r *Room) Broadcast(msg *protocol.Message) {
	for _, s := range r.Seats {
		if s.Client != nil {
			s.Client.SendMessage(msg)
		}
	}
}

// BroadcastExcept 向除指定玩家外的所有人广播，调用方持有 r.mu
func (r *Room) BroadcastExcept(exceptID string, msg *protocol.Message) {
	for _, s := range r.Seats {
		if s.ID != exceptID && s.Client != nil {
			s.Client.SendMessage(msg)
		}
	}
}

// sendTo 向单个座位发送私有消息
func (s *Seat) sendTo(msg *protocol.Message) {
	if s.Client != nil {
		s.Client.SendMessage(msg)
	}
}
