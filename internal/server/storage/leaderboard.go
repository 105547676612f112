package storage

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	// Redis key
	playerStatsKey = "player:stats:"
	leaderboardKey = "leaderboard:wins"
)

// PlayerStats 玩家统计数据（按显示名称）
type PlayerStats struct {
	PlayerName string `json:"player_name"`
	Wins       int    `json:"wins"`
	LastLabel  string `json:"last_label"`
	LastWonAt  int64  `json:"last_won_at"`
}

// LeaderboardEntry 排行榜条目
type LeaderboardEntry struct {
	Rank       int    `json:"rank"`
	PlayerName string `json:"player_name"`
	Wins       int    `json:"wins"`
}

// Leaderboard 胜场排行榜
type Leaderboard struct {
	redis *redis.Client
}

// NewLeaderboard 创建排行榜
func NewLeaderboard(client *redis.Client) *Leaderboard {
	return &Leaderboard{redis: client}
}

func (lb *Leaderboard) enabled() bool {
	return lb != nil && lb.redis != nil
}

// RecordWin 记录一次胜利
func (lb *Leaderboard) RecordWin(ctx context.Context, playerName, label string) error {
	if !lb.enabled() {
		return nil
	}

	pipe := lb.redis.TxPipeline()
	pipe.ZIncrBy(ctx, leaderboardKey, 1, playerName)
	pipe.HIncrBy(ctx, playerStatsKey+playerName, "wins", 1)
	pipe.HSet(ctx, playerStatsKey+playerName, map[string]any{
		"player_name": playerName,
		"last_label":  label,
		"last_won_at": time.Now().Unix(),
	})
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("记录胜场失败: %w", err)
	}
	return nil
}

// GetPlayerStats 获取玩家统计，不存在返回 nil
func (lb *Leaderboard) GetPlayerStats(ctx context.Context, playerName string) (*PlayerStats, error) {
	if !lb.enabled() {
		return nil, nil
	}

	data, err := lb.redis.HGetAll(ctx, playerStatsKey+playerName).Result()
	if err != nil {
		return nil, err
	}
	if len(data) == 0 {
		return nil, nil
	}

	wins, _ := strconv.Atoi(data["wins"])
	wonAt, _ := strconv.ParseInt(data["last_won_at"], 10, 64)
	return &PlayerStats{
		PlayerName: data["player_name"],
		Wins:       wins,
		LastLabel:  data["last_label"],
		LastWonAt:  wonAt,
	}, nil
}

// GetLeaderboard 获取前 limit 名
func (lb *Leaderboard) GetLeaderboard(ctx context.Context, limit int) ([]*LeaderboardEntry, error) {
	if !lb.enabled() {
		return []*LeaderboardEntry{}, nil
	}
	if limit <= 0 {
		limit = 10
	}

	results, err := lb.redis.ZRevRangeWithScores(ctx, leaderboardKey, 0, int64(limit-1)).Result()
	if err != nil && !errors.Is(err, redis.Nil) {
		return nil, err
	}

	entries := make([]*LeaderboardEntry, 0, len(results))
	for i, z := range results {
		name, _ := z.Member.(string)
		entries = append(entries, &LeaderboardEntry{
			Rank:       i + 1,
			PlayerName: name,
			Wins:       int(z.Score),
		})
	}
	return entries, nil
}

// GetPlayerRank 获取玩家排名（从 1 开始），未上榜返回 0
func (lb *Leaderboard) GetPlayerRank(ctx context.Context, playerName string) (int64, error) {
	if !lb.enabled() {
		return 0, nil
	}

	rank, err := lb.redis.ZRevRank(ctx, leaderboardKey, playerName).Result()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return rank + 1, nil
}
