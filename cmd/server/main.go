package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/palemoky/pass-four/internal/config"
	"github.com/palemoky/pass-four/internal/logger"
	"github.com/palemoky/pass-four/internal/server"
)

func main() {
	configPath := flag.String("config", "configs/config.yaml", "配置文件路径")
	flag.Parse()

	// 加载配置
	cfg, err := config.LoadOrDefault(*configPath)
	if err != nil {
		logger.L().Fatalf("加载配置失败: %v", err)
	}
	if err := logger.Init(cfg.Log.Level, cfg.Log.Format); err != nil {
		logger.L().Warnf("日志级别无效，使用默认级别: %v", err)
	}
	if cfg.Log.Level != "debug" {
		gin.SetMode(gin.ReleaseMode)
	}

	rdb, err := connectRedis(cfg)
	if err != nil {
		logger.L().Fatalf("%v", err)
	}

	// 创建服务器
	srv, err := server.NewServer(cfg, rdb)
	if err != nil {
		logger.L().Fatalf("创建服务器失败: %v", err)
	}

	// 优雅关闭：进入维护模式，等待对局结束
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		sig := <-quit
		logger.L().Infof("收到信号 %v，正在关闭服务器...", sig)
		srv.GracefulShutdown(cfg.Game.ShutdownTimeoutDuration())
		os.Exit(0)
	}()

	// 启动服务器
	logger.L().Info("🎮 传四张服务器启动中...")
	if err := srv.Start(); err != nil {
		logger.L().Fatalf("服务器启动失败: %v", err)
	}
	// Start 在关闭后返回，等待信号处理完成退出
	select {}
}

// connectRedis 按配置连接 Redis，未启用时返回 nil（仅内存模式）
func connectRedis(cfg *config.Config) (*redis.Client, error) {
	if !cfg.Redis.Enabled {
		logger.L().Info("ℹ️ 未启用 Redis，房间快照与排行榜不会持久化")
		return nil, nil
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	// 测试 Redis 连接
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, err
	}
	logger.L().Infof("✅ Redis 已连接: %s", cfg.Redis.Addr)
	return rdb, nil
}
