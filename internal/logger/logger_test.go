package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInit_InvalidLevel(t *testing.T) {
	assert.Error(t, Init("loud", "text"))
}

func TestWithRoom_JSON(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf)
	t.Cleanup(func() {
		_ = Init("info", "text")
		std.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	})

	require.NoError(t, Init("debug", "json"))
	WithRoom("r1").Debug("hello")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "r1", entry["room"])
	assert.Equal(t, "hello", entry["msg"])
	assert.Equal(t, logrus.DebugLevel, L().GetLevel())
}

func TestLogPanic(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf)

	LogPanic("boom")
	assert.Contains(t, buf.String(), "boom")
}
