package logger

import (
	"io"
	"os"
	"runtime/debug"
	"strings"

	"github.com/sirupsen/logrus"
)

var std = newLogger(os.Stdout)

func newLogger(out io.Writer) *logrus.Logger {
	l := logrus.New()
	l.SetOutput(out)
	l.SetLevel(logrus.InfoLevel)
	l.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05.000",
	})
	return l
}

// Init 配置全局日志级别与格式 (text|json)
func Init(level, format string) error {
	lvl, err := logrus.ParseLevel(strings.ToLower(strings.TrimSpace(level)))
	if err != nil {
		return err
	}
	std.SetLevel(lvl)

	if strings.EqualFold(format, "json") {
		std.SetFormatter(&logrus.JSONFormatter{TimestampFormat: "2006-01-02T15:04:05.000Z07:00"})
	}
	return nil
}

// SetOutput 重定向日志输出（客户端写入文件，避免干扰终端界面）
func SetOutput(w io.Writer) {
	std.SetOutput(w)
}

// L 返回全局 logger
func L() *logrus.Logger {
	return std
}

// WithRoom 返回携带房间字段的日志条目
func WithRoom(roomID string) *logrus.Entry {
	return std.WithField("room", roomID)
}

// WithClient 返回携带连接字段的日志条目
func WithClient(clientID string) *logrus.Entry {
	return std.WithField("client", clientID)
}

// LogPanic 记录 panic 及堆栈
func LogPanic(r any) {
	std.WithField("stack", string(debug.Stack())).Errorf("💥 panic: %v", r)
}
