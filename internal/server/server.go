package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"runtime"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/redis/go-redis/v9"

	"github.com/palemoky/pass-four/internal/config"
	"github.com/palemoky/pass-four/internal/game/room"
	"github.com/palemoky/pass-four/internal/logger"
	"github.com/palemoky/pass-four/internal/protocol/codec"
	"github.com/palemoky/pass-four/internal/server/handler"
	"github.com/palemoky/pass-four/internal/server/storage"
)

// Server WebSocket + HTTP 服务器
type Server struct {
	config      *config.Config
	redis       *redis.Client
	redisStore  *storage.RedisStore
	leaderboard *storage.Leaderboard
	roomManager *room.RoomManager
	handler     *handler.Handler
	codec       codec.Codec
	upgrader    websocket.Upgrader
	router      *gin.Engine
	httpServer  *http.Server

	clients   map[string]*Client
	clientsMu sync.RWMutex

	// 安全组件
	rateLimiter    *RateLimiter
	originChecker  *OriginChecker
	ipFilter       *IPFilter
	messageLimiter *MessageRateLimiter
	chatLimiter    *ChatRateLimiter

	// 连接控制
	maxConnections int
	semaphore      chan struct{} // 信号量控制并发连接数

	// 维护模式
	maintenanceMode bool
	maintenanceMu   sync.RWMutex

	// 后台任务（房间清理、监控）
	ctx    context.Context
	cancel context.CancelFunc
}

// NewServer 创建服务器实例，rdb 为 nil 时不做持久化
func NewServer(cfg *config.Config, rdb *redis.Client) (*Server, error) {
	c, err := codec.ByName(cfg.Server.Codec)
	if err != nil {
		return nil, fmt.Errorf("初始化编解码器失败: %w", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	s := &Server{
		config:      cfg,
		redis:       rdb,
		redisStore:  storage.NewRedisStore(rdb),
		leaderboard: storage.NewLeaderboard(rdb),
		codec:       c,
		clients:     make(map[string]*Client),
		// 初始化安全组件
		rateLimiter: NewRateLimiter(
			cfg.Security.RateLimit.MaxPerSecond,
			cfg.Security.RateLimit.MaxPerMinute,
			cfg.Security.RateLimit.BanDurationTime(),
		),
		originChecker:  NewOriginChecker(cfg.Security.AllowedOrigins),
		ipFilter:       NewIPFilter(cfg.Security.AllowedIPs, cfg.Security.BlockedIPs),
		messageLimiter: NewMessageRateLimiter(cfg.Security.MessageLimit.MaxPerSecond),
		chatLimiter: NewChatRateLimiter(
			cfg.Security.ChatLimit.MaxPerSecond,
			cfg.Security.ChatLimit.MaxPerMinute,
			cfg.Security.ChatLimit.CooldownDuration(),
		),
		// 初始化连接控制
		maxConnections: cfg.Server.MaxConnections,
		semaphore:      make(chan struct{}, cfg.Server.MaxConnections),
		ctx:            ctx,
		cancel:         cancel,
	}

	s.upgrader = websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		// 来源已在升级前由 originChecker 校验
		CheckOrigin: func(*http.Request) bool { return true },
	}

	// 初始化房间管理器
	s.roomManager = room.NewRoomManager(room.Options{
		Store:            s.redisStore,
		Leaderboard:      s.leaderboard,
		MaxSeats:         cfg.Game.MaxSeats,
		BotTurnDelay:     cfg.Game.BotTurnDelay(),
		RoomTimeout:      cfg.Game.RoomTimeoutDuration(),
		ChatHistoryLimit: cfg.Game.ChatLimit(),
		DisconnectPolicy: cfg.Game.DisconnectPolicy,
	})

	// 初始化消息处理器
	s.handler = handler.NewHandler(handler.HandlerDeps{
		Server:      s,
		RoomManager: s.roomManager,
		ChatLimiter: s.chatLimiter,
	})

	s.router = s.newRouter()

	logger.L().Infof("🔒 安全配置: 连接限制=%d/s, 消息限制=%d/s, 聊天限制=%d/s, 最大连接数=%d, 编码=%s",
		cfg.Security.RateLimit.MaxPerSecond, cfg.Security.MessageLimit.MaxPerSecond,
		cfg.Security.ChatLimit.MaxPerSecond, cfg.Server.MaxConnections, c.Name())

	return s, nil
}

// Router 返回 HTTP 路由（测试中配合 httptest 使用）
func (s *Server) Router() http.Handler {
	return s.router
}

// RoomManager 返回房间管理器
func (s *Server) RoomManager() *room.RoomManager {
	return s.roomManager
}

// Start 启动服务器，阻塞直到服务器关闭
func (s *Server) Start() error {
	addr := s.config.Server.Addr()

	// 启动后台任务
	go s.roomManager.Run(s.ctx)
	go s.monitorStats(s.ctx)

	s.httpServer = &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second, // 防止 Slowloris 攻击
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	logger.L().Infof("🚀 服务器启动在 ws://%s/ws (CPU核心数: %d)", addr, runtime.NumCPU())
	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("HTTP 服务异常退出: %w", err)
	}
	return nil
}
