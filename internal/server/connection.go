package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/palemoky/pass-four/internal/logger"
	"github.com/palemoky/pass-four/internal/protocol"
	"github.com/palemoky/pass-four/internal/protocol/codec"
	"github.com/palemoky/pass-four/internal/types"
)

// handleWebSocket 处理 WebSocket 连接
func (s *Server) handleWebSocket(c *gin.Context) {
	r := c.Request
	clientIP := GetClientIP(r)

	// 维护模式检查（最优先）
	if s.IsMaintenanceMode() {
		logger.L().Infof("🔧 维护模式，拒绝新连接: %s", clientIP)
		c.String(http.StatusServiceUnavailable, "Server is under maintenance, please try again later")
		return
	}

	// IP 过滤检查
	if !s.ipFilter.IsAllowed(clientIP) {
		logger.L().Warnf("🚫 IP %s 被过滤器拒绝", clientIP)
		c.String(http.StatusForbidden, "Forbidden")
		return
	}

	// 来源验证
	if !s.originChecker.Check(r) {
		logger.L().Warnf("🚫 来源验证失败: %s (IP: %s)", r.Header.Get("Origin"), clientIP)
		c.String(http.StatusForbidden, "Origin not allowed")
		return
	}

	// 速率限制检查
	if !s.rateLimiter.Allow(clientIP) {
		logger.L().Warnf("🚫 IP %s 请求过于频繁", clientIP)
		c.String(http.StatusTooManyRequests, "Too Many Requests")
		return
	}

	// 连接数限制检查，信号量在连接断开时释放
	select {
	case s.semaphore <- struct{}{}:
	default:
		logger.L().Warnf("🚫 达到最大连接数限制 (%d), IP: %s", s.maxConnections, clientIP)
		c.String(http.StatusServiceUnavailable, "Server Full")
		return
	}

	conn, err := s.upgrader.Upgrade(c.Writer, r, nil)
	if err != nil {
		<-s.semaphore
		logger.L().Warnf("WebSocket 升级失败: %v", err)
		return
	}

	client := NewClient(s, conn)
	client.IP = clientIP
	s.registerClient(client)

	client.SendMessage(codec.MustNewMessage(protocol.MsgConnected, protocol.ConnectedPayload{
		PlayerID: client.ID,
	}))

	logger.WithClient(client.ID).Infof("✅ 新连接 (IP: %s)", clientIP)

	// 启动客户端读写协程
	go client.ReadPump()
	go client.WritePump()
}

// registerClient 注册客户端
func (s *Server) registerClient(client *Client) {
	s.clientsMu.Lock()
	defer s.clientsMu.Unlock()
	s.clients[client.ID] = client
}

// unregisterClient 注销客户端
func (s *Server) unregisterClient(client *Client) {
	if s.removeClient(client.ID) {
		logger.WithClient(client.ID).Infof("❌ 玩家 %s 已断开", client.GetName())
	}
}

// removeClient 移除连接并释放连接名额
func (s *Server) removeClient(id string) bool {
	s.clientsMu.Lock()
	_, ok := s.clients[id]
	delete(s.clients, id)
	s.clientsMu.Unlock()

	if ok {
		select {
		case <-s.semaphore:
		default:
		}
	}
	return ok
}

// GetOnlineCount 获取在线连接数
func (s *Server) GetOnlineCount() int {
	s.clientsMu.RLock()
	defer s.clientsMu.RUnlock()
	return len(s.clients)
}

// GetClientByID 按 ID 查找连接
func (s *Server) GetClientByID(id string) types.ClientInterface {
	s.clientsMu.RLock()
	defer s.clientsMu.RUnlock()
	if c, ok := s.clients[id]; ok {
		return c
	}
	return nil
}

// RegisterClient 注册外部创建的连接
func (s *Server) RegisterClient(id string, client types.ClientInterface) {
	s.clientsMu.Lock()
	defer s.clientsMu.Unlock()
	if c, ok := client.(*Client); ok {
		s.clients[id] = c
	}
}

// UnregisterClient 按 ID 注销连接
func (s *Server) UnregisterClient(id string) {
	s.removeClient(id)
}

// Broadcast 广播消息给所有连接
func (s *Server) Broadcast(msg *protocol.Message) {
	s.clientsMu.RLock()
	defer s.clientsMu.RUnlock()

	for _, client := range s.clients {
		client.SendMessage(msg)
	}
}
