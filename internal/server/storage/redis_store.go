package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	// Redis key 前缀
	roomKeyPrefix = "room:"

	// 房间数据过期时间
	roomExpiration = 2 * time.Hour
)

// RoomData 房间快照（用于 Redis 序列化，仅供观测，不用于重启恢复）
type RoomData struct {
	ID           string     `json:"id"`
	Stage        string     `json:"stage"`
	TargetSeats  int        `json:"target_seats"`
	Seats        []SeatData `json:"seats"`
	Labels       []string   `json:"labels"`
	TurnIndex    int        `json:"turn_index"`
	RematchVotes int        `json:"rematch_votes"`
	ChatCount    int        `json:"chat_count"`
	CreatedAt    int64      `json:"created_at"`
	UpdatedAt    int64      `json:"updated_at"`
}

// SeatData 座位数据（不包含手牌内容）
type SeatData struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	IsBot      bool   `json:"is_bot"`
	CardsCount int    `json:"cards_count"`
}

// RedisStore Redis 存储
type RedisStore struct {
	client *redis.Client
}

// NewRedisStore 创建 Redis 存储
func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

// Enabled 是否连接了 Redis
func (rs *RedisStore) Enabled() bool {
	return rs != nil && rs.client != nil
}

// Ping 检查连接
func (rs *RedisStore) Ping(ctx context.Context) error {
	if !rs.Enabled() {
		return nil
	}
	return rs.client.Ping(ctx).Err()
}

// --- 房间存储 ---

// SaveRoom 保存房间快照到 Redis
func (rs *RedisStore) SaveRoom(ctx context.Context, data *RoomData) error {
	if data == nil || !rs.Enabled() {
		return nil
	}

	jsonData, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("序列化房间数据失败: %w", err)
	}

	key := roomKeyPrefix + data.ID
	return rs.client.Set(ctx, key, jsonData, roomExpiration).Err()
}

// LoadRoom 从 Redis 加载房间快照
func (rs *RedisStore) LoadRoom(ctx context.Context, roomID string) (*RoomData, error) {
	if !rs.Enabled() {
		return nil, nil
	}

	data, err := rs.client.Get(ctx, roomKeyPrefix+roomID).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil // 房间不存在
		}
		return nil, err
	}

	var roomData RoomData
	if err := json.Unmarshal(data, &roomData); err != nil {
		return nil, fmt.Errorf("反序列化房间数据失败: %w", err)
	}
	return &roomData, nil
}

// DeleteRoom 从 Redis 删除房间
func (rs *RedisStore) DeleteRoom(ctx context.Context, roomID string) error {
	if !rs.Enabled() {
		return nil
	}
	return rs.client.Del(ctx, roomKeyPrefix+roomID).Err()
}

// GetAllRoomIDs 获取所有房间 ID
func (rs *RedisStore) GetAllRoomIDs(ctx context.Context) ([]string, error) {
	if !rs.Enabled() {
		return nil, nil
	}

	var ids []string
	iter := rs.client.Scan(ctx, 0, roomKeyPrefix+"*", 100).Iterator()
	for iter.Next(ctx) {
		ids = append(ids, iter.Val()[len(roomKeyPrefix):])
	}
	return ids, iter.Err()
}

// Close 关闭连接
func (rs *RedisStore) Close() error {
	if !rs.Enabled() {
		return nil
	}
	return rs.client.Close()
}
