package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// 默认值
const (
	defaultHost             = "0.0.0.0"
	defaultPort             = 1780
	defaultMaxConnections   = 10000
	defaultCodec            = "json"
	defaultRedisAddr        = "localhost:6379"
	defaultMaxSeats         = 8
	defaultBotTurnDelayMS   = 800
	defaultRoomTimeout      = 10
	defaultChatHistoryLimit = 200
	defaultDisconnectPolicy = DisconnectSkip
	defaultShutdownTimeout  = 5
	defaultLogLevel         = "info"
	defaultLogFormat        = "text"
)

// 掉线处理策略
const (
	DisconnectSkip = "skip" // 移除座位，轮次交给下一位
	DisconnectBot  = "bot"  // 座位转为机器人，保留手牌
)

// Config 服务端配置
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Redis    RedisConfig    `yaml:"redis"`
	Game     GameConfig     `yaml:"game"`
	Security SecurityConfig `yaml:"security"`
	Log      LogConfig      `yaml:"log"`
}

// ServerConfig WebSocket 服务器配置
type ServerConfig struct {
	Host           string `yaml:"host"`
	Port           int    `yaml:"port"`
	MaxConnections int    `yaml:"max_connections"`
	Codec          string `yaml:"codec"` // json | proto
}

// Addr 返回监听地址
func (c *ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// RedisConfig Redis 配置
type RedisConfig struct {
	Enabled  bool   `yaml:"enabled"`
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

// GameConfig 游戏配置
type GameConfig struct {
	MaxSeats         int    `yaml:"max_seats"`
	BotTurnDelayMS   int    `yaml:"bot_turn_delay_ms"`  // 机器人出牌延迟（毫秒）
	RoomTimeout      int    `yaml:"room_timeout"`       // 房间等待超时（分钟）
	ChatHistoryLimit int    `yaml:"chat_history_limit"` // 负数表示不限制
	DisconnectPolicy string `yaml:"disconnect_policy"`
	ShutdownTimeout  int    `yaml:"shutdown_timeout"` // 停服等待对局结束（分钟）
}

// ChatLimit 返回房间聊天记录上限，0 表示不限制
func (c *GameConfig) ChatLimit() int {
	if c.ChatHistoryLimit < 0 {
		return 0
	}
	return c.ChatHistoryLimit
}

// BotTurnDelay 返回机器人出牌延迟
func (c *GameConfig) BotTurnDelay() time.Duration {
	return time.Duration(c.BotTurnDelayMS) * time.Millisecond
}

// RoomTimeoutDuration 返回房间等待超时时长
func (c *GameConfig) RoomTimeoutDuration() time.Duration {
	return time.Duration(c.RoomTimeout) * time.Minute
}

// ShutdownTimeoutDuration 返回停服等待时长
func (c *GameConfig) ShutdownTimeoutDuration() time.Duration {
	return time.Duration(c.ShutdownTimeout) * time.Minute
}

// SecurityConfig 安全配置
type SecurityConfig struct {
	AllowedOrigins []string           `yaml:"allowed_origins"`
	AllowedIPs     []string           `yaml:"allowed_ips"` // 非空时只放行列表中的 IP
	BlockedIPs     []string           `yaml:"blocked_ips"`
	RateLimit      RateLimitConfig    `yaml:"rate_limit"`
	MessageLimit   MessageLimitConfig `yaml:"message_limit"`
	ChatLimit      ChatLimitConfig    `yaml:"chat_limit"`
}

// RateLimitConfig 连接速率限制（按 IP）
type RateLimitConfig struct {
	MaxPerSecond int `yaml:"max_per_second"`
	MaxPerMinute int `yaml:"max_per_minute"`
	BanDuration  int `yaml:"ban_duration"` // 秒
}

// BanDurationTime 返回封禁时长
func (c *RateLimitConfig) BanDurationTime() time.Duration {
	return time.Duration(c.BanDuration) * time.Second
}

// MessageLimitConfig 消息速率限制（按连接）
type MessageLimitConfig struct {
	MaxPerSecond int `yaml:"max_per_second"`
}

// ChatLimitConfig 聊天速率限制
type ChatLimitConfig struct {
	MaxPerSecond int `yaml:"max_per_second"`
	MaxPerMinute int `yaml:"max_per_minute"`
	Cooldown     int `yaml:"cooldown"` // 秒
}

// CooldownDuration 返回冷却时长
func (c *ChatLimitConfig) CooldownDuration() time.Duration {
	return time.Duration(c.Cooldown) * time.Second
}

// LogConfig 日志配置
type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"` // text | json
}

// Load 加载配置文件，随后应用默认值与环境变量覆盖
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	cfg.applyDefaults()
	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// LoadOrDefault 配置文件不存在时回退到默认配置
func LoadOrDefault(path string) (*Config, error) {
	// .env 可选
	_ = godotenv.Load()

	cfg, err := Load(path)
	if errors.Is(err, os.ErrNotExist) {
		cfg = Default()
		if err := cfg.applyEnv(); err != nil {
			return nil, err
		}
		return cfg, cfg.Validate()
	}
	return cfg, err
}

// Default 返回默认配置
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

func (c *Config) applyDefaults() {
	if c.Server.Host == "" {
		c.Server.Host = defaultHost
	}
	if c.Server.Port == 0 {
		c.Server.Port = defaultPort
	}
	if c.Server.MaxConnections == 0 {
		c.Server.MaxConnections = defaultMaxConnections
	}
	if c.Server.Codec == "" {
		c.Server.Codec = defaultCodec
	}
	if c.Redis.Addr == "" {
		c.Redis.Addr = defaultRedisAddr
	}
	if c.Game.MaxSeats == 0 {
		c.Game.MaxSeats = defaultMaxSeats
	}
	if c.Game.BotTurnDelayMS == 0 {
		c.Game.BotTurnDelayMS = defaultBotTurnDelayMS
	}
	if c.Game.RoomTimeout == 0 {
		c.Game.RoomTimeout = defaultRoomTimeout
	}
	if c.Game.ChatHistoryLimit == 0 {
		c.Game.ChatHistoryLimit = defaultChatHistoryLimit
	}
	if c.Game.DisconnectPolicy == "" {
		c.Game.DisconnectPolicy = defaultDisconnectPolicy
	}
	if c.Game.ShutdownTimeout == 0 {
		c.Game.ShutdownTimeout = defaultShutdownTimeout
	}
	if len(c.Security.AllowedOrigins) == 0 {
		c.Security.AllowedOrigins = []string{"*"}
	}
	if c.Security.RateLimit.MaxPerSecond == 0 {
		c.Security.RateLimit.MaxPerSecond = 10
	}
	if c.Security.RateLimit.MaxPerMinute == 0 {
		c.Security.RateLimit.MaxPerMinute = 60
	}
	if c.Security.RateLimit.BanDuration == 0 {
		c.Security.RateLimit.BanDuration = 300
	}
	if c.Security.MessageLimit.MaxPerSecond == 0 {
		c.Security.MessageLimit.MaxPerSecond = 20
	}
	if c.Security.ChatLimit.MaxPerSecond == 0 {
		c.Security.ChatLimit.MaxPerSecond = 1
	}
	if c.Security.ChatLimit.MaxPerMinute == 0 {
		c.Security.ChatLimit.MaxPerMinute = 30
	}
	if c.Security.ChatLimit.Cooldown == 0 {
		c.Security.ChatLimit.Cooldown = 5
	}
	if c.Log.Level == "" {
		c.Log.Level = defaultLogLevel
	}
	if c.Log.Format == "" {
		c.Log.Format = defaultLogFormat
	}
}

// applyEnv 环境变量覆盖 (PASS_*)
func (c *Config) applyEnv() error {
	if v := os.Getenv("PASS_SERVER_HOST"); v != "" {
		c.Server.Host = v
	}
	if v := os.Getenv("PASS_SERVER_PORT"); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("PASS_SERVER_PORT: %w", err)
		}
		c.Server.Port = port
	}
	if v := os.Getenv("PASS_CODEC"); v != "" {
		c.Server.Codec = v
	}
	if v := os.Getenv("PASS_REDIS_ADDR"); v != "" {
		c.Redis.Addr = v
	}
	if v := os.Getenv("PASS_REDIS_ENABLED"); v != "" {
		enabled, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("PASS_REDIS_ENABLED: %w", err)
		}
		c.Redis.Enabled = enabled
	}
	if v := os.Getenv("PASS_LOG_LEVEL"); v != "" {
		c.Log.Level = v
	}
	if v := os.Getenv("PASS_ALLOWED_ORIGINS"); v != "" {
		origins := strings.Split(v, ",")
		for i := range origins {
			origins[i] = strings.TrimSpace(origins[i])
		}
		c.Security.AllowedOrigins = origins
	}
	return nil
}

// Validate 校验配置范围
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}
	if c.Server.Codec != "json" && c.Server.Codec != "proto" {
		return fmt.Errorf("invalid codec: %q", c.Server.Codec)
	}
	if c.Game.MaxSeats < 2 {
		return fmt.Errorf("game.max_seats must be at least 2, got %d", c.Game.MaxSeats)
	}
	if c.Game.BotTurnDelayMS < 0 {
		return fmt.Errorf("game.bot_turn_delay_ms must not be negative")
	}
	if c.Game.DisconnectPolicy != DisconnectSkip && c.Game.DisconnectPolicy != DisconnectBot {
		return fmt.Errorf("invalid disconnect_policy: %q", c.Game.DisconnectPolicy)
	}
	return nil
}
