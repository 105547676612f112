package server

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/palemoky/pass-four/internal/logger"
	"github.com/palemoky/pass-four/internal/protocol"
)

const (
	defaultLeaderboardLimit = 10
	maxLeaderboardLimit     = 100
)

// newRouter 注册 HTTP 路由
func (s *Server) newRouter() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), requestLogger())
	r.Use(cors.New(cors.Config{
		AllowOriginFunc: s.originChecker.AllowOrigin,
		AllowMethods:    []string{http.MethodGet, http.MethodOptions},
		AllowHeaders:    []string{"Origin", "Content-Type"},
		MaxAge:          12 * time.Hour,
	}))

	r.GET("/ws", s.handleWebSocket)
	r.GET("/health", s.handleHealth)

	api := r.Group("/api")
	{
		api.GET("/rooms", s.handleListRooms)
		api.GET("/rooms/:id", s.handleGetRoom)
		api.GET("/leaderboard", s.handleLeaderboard)
		api.GET("/players/:name", s.handlePlayerStats)
		api.GET("/snapshots/:id", s.handleRoomSnapshot)
	}

	return r
}

// requestLogger 记录每个 HTTP 请求
func requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		logger.L().WithFields(logrus.Fields{
			"method":  c.Request.Method,
			"path":    c.Request.URL.Path,
			"status":  c.Writer.Status(),
			"latency": time.Since(start).String(),
			"ip":      c.ClientIP(),
		}).Debug("HTTP 请求")
	}
}

// handleHealth 健康检查接口
func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":      "ok",
		"online":      s.GetOnlineCount(),
		"rooms":       s.roomManager.RoomCount(),
		"maintenance": s.IsMaintenanceMode(),
	})
}

// handleListRooms 房间列表
func (s *Server) handleListRooms(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"rooms": s.roomManager.ListRooms()})
}

// handleGetRoom 单个房间的公开视图（不含手牌）
func (s *Server) handleGetRoom(c *gin.Context) {
	rm, err := s.roomManager.GetRoom(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, protocol.ErrorPayload{
			Code:    protocol.ErrCodeRoomNotFound,
			Message: protocol.ErrorMessages[protocol.ErrCodeRoomNotFound],
		})
		return
	}
	c.JSON(http.StatusOK, rm.PublicView())
}

// handleLeaderboard 胜场排行榜
func (s *Server) handleLeaderboard(c *gin.Context) {
	limit := defaultLeaderboardLimit
	if v := c.Query("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			c.JSON(http.StatusBadRequest, protocol.ErrorPayload{
				Code:    protocol.ErrCodeInvalidMsg,
				Message: "limit 必须是正整数",
			})
			return
		}
		limit = min(n, maxLeaderboardLimit)
	}

	entries, err := s.leaderboard.GetLeaderboard(c.Request.Context(), limit)
	if err != nil {
		logger.L().Errorf("获取排行榜失败: %v", err)
		c.JSON(http.StatusInternalServerError, protocol.ErrorPayload{
			Code:    protocol.ErrCodeUnknown,
			Message: protocol.ErrorMessages[protocol.ErrCodeUnknown],
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{"entries": entries})
}

// handlePlayerStats 单个玩家的胜场统计
func (s *Server) handlePlayerStats(c *gin.Context) {
	name := c.Param("name")
	stats, err := s.leaderboard.GetPlayerStats(c.Request.Context(), name)
	if err != nil {
		logger.L().Errorf("获取玩家统计失败: %v", err)
		c.JSON(http.StatusInternalServerError, protocol.ErrorPayload{
			Code:    protocol.ErrCodeUnknown,
			Message: protocol.ErrorMessages[protocol.ErrCodeUnknown],
		})
		return
	}
	if stats == nil {
		c.JSON(http.StatusNotFound, protocol.ErrorPayload{
			Code:    protocol.ErrCodeUnknown,
			Message: "暂无该玩家的战绩",
		})
		return
	}

	rank, err := s.leaderboard.GetPlayerRank(c.Request.Context(), name)
	if err != nil {
		logger.L().Warnf("获取玩家排名失败: %v", err)
	}
	c.JSON(http.StatusOK, gin.H{"stats": stats, "rank": rank})
}

// handleRoomSnapshot Redis 中最近一次保存的房间快照，未启用 Redis 时总是 404
func (s *Server) handleRoomSnapshot(c *gin.Context) {
	data, err := s.redisStore.LoadRoom(c.Request.Context(), c.Param("id"))
	if err != nil {
		logger.L().Errorf("读取房间快照失败: %v", err)
		c.JSON(http.StatusInternalServerError, protocol.ErrorPayload{
			Code:    protocol.ErrCodeUnknown,
			Message: protocol.ErrorMessages[protocol.ErrCodeUnknown],
		})
		return
	}
	if data == nil {
		c.JSON(http.StatusNotFound, protocol.ErrorPayload{
			Code:    protocol.ErrCodeRoomNotFound,
			Message: protocol.ErrorMessages[protocol.ErrCodeRoomNotFound],
		})
		return
	}
	c.JSON(http.StatusOK, data)
}
