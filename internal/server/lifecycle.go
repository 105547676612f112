package server

import (
	"context"
	"runtime"
	"time"

	"github.com/palemoky/pass-four/internal/logger"
	"github.com/palemoky/pass-four/internal/protocol"
	"github.com/palemoky/pass-four/internal/protocol/codec"
)

const (
	monitorInterval       = 30 * time.Second
	shutdownCheckInterval = time.Second
	httpShutdownTimeout   = 5 * time.Second
)

// monitorStats 定期监控服务器状态
func (s *Server) monitorStats(ctx context.Context) {
	ticker := time.NewTicker(monitorInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}

		var m runtime.MemStats
		runtime.ReadMemStats(&m)

		logger.L().Infof("📊 [监控] 在线: %d | 房间: %d | 对局中: %d | Goroutines: %d | 活跃连接: %d/%d | 内存: %.2f MB",
			s.GetOnlineCount(),
			s.roomManager.RoomCount(),
			s.roomManager.GetActiveGamesCount(),
			runtime.NumGoroutine(),
			len(s.semaphore),
			s.maxConnections,
			float64(m.Alloc)/1024/1024)

		if s.redisStore.Enabled() {
			ids, err := s.redisStore.GetAllRoomIDs(ctx)
			if err != nil {
				logger.L().Warnf("统计房间快照失败: %v", err)
				continue
			}
			logger.L().Infof("📊 [监控] Redis 房间快照: %d", len(ids))
		}
	}
}

// EnterMaintenanceMode 进入维护模式：拒绝新连接、新房间与新对局
func (s *Server) EnterMaintenanceMode() {
	s.maintenanceMu.Lock()
	s.maintenanceMode = true
	s.maintenanceMu.Unlock()

	s.Broadcast(codec.MustNewMessage(protocol.MsgError, protocol.ErrorPayload{
		Code:    protocol.ErrCodeServerMaintenance,
		Message: "👷🏻‍♂️ 维护模式：暂停创建房间和开始新对局",
	}))

	logger.L().Info("🔧 进入维护模式：停止新连接和房间创建")
}

// IsMaintenanceMode 检查是否在维护模式
func (s *Server) IsMaintenanceMode() bool {
	s.maintenanceMu.RLock()
	defer s.maintenanceMu.RUnlock()
	return s.maintenanceMode
}

// GracefulShutdown 优雅关闭：进入维护模式，等待进行中的对局结束（最多 timeout），再关闭服务器
func (s *Server) GracefulShutdown(timeout time.Duration) {
	s.EnterMaintenanceMode()

	deadline := time.Now().Add(timeout)
	ticker := time.NewTicker(shutdownCheckInterval)
	defer ticker.Stop()

	for time.Now().Before(deadline) {
		activeGames := s.roomManager.GetActiveGamesCount()
		if activeGames == 0 {
			logger.L().Info("✅ 所有对局已结束")
			break
		}
		logger.L().Infof("⏳ 等待 %d 个对局结束...", activeGames)
		<-ticker.C
	}

	if activeGames := s.roomManager.GetActiveGamesCount(); activeGames > 0 {
		logger.L().Warnf("⚠️ 超时，仍有 %d 个对局进行中，强制关闭", activeGames)
	}

	s.Shutdown()
}

// Shutdown 立即关闭服务器
func (s *Server) Shutdown() {
	if s.httpServer != nil {
		ctx, cancel := context.WithTimeout(context.Background(), httpShutdownTimeout)
		if err := s.httpServer.Shutdown(ctx); err != nil {
			logger.L().Warnf("HTTP 服务关闭失败: %v", err)
		}
		cancel()
	}

	// 停止后台任务和机器人计时器
	s.cancel()
	s.roomManager.Close()
	s.rateLimiter.Stop()

	// 关闭所有客户端连接
	s.clientsMu.RLock()
	for _, client := range s.clients {
		client.Close()
	}
	s.clientsMu.RUnlock()

	if err := s.redisStore.Close(); err != nil {
		logger.L().Warnf("关闭 Redis 失败: %v", err)
	}

	logger.L().Info("服务器已关闭")
}
