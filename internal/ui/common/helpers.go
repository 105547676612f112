package common

import (
	"fmt"
	"strings"
	"time"

	"github.com/palemoky/pass-four/internal/protocol"
)

// TruncateName truncates a player name to the specified maximum length.
func TruncateName(name string, maxLen int) string {
	runes := []rune(name)
	if len(runes) > maxLen {
		return string(runes[:maxLen-1]) + "…"
	}
	return name
}

// ParseLabels splits a comma separated label list, dropping empty entries.
// Both ASCII and full-width commas are accepted.
func ParseLabels(s string) []string {
	s = strings.ReplaceAll(s, "，", ",")
	var labels []string
	for part := range strings.SplitSeq(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			labels = append(labels, part)
		}
	}
	return labels
}

// FormatChatMessage renders a chat message as "[15:04] author: text".
func FormatChatMessage(msg protocol.ChatMessage) string {
	ts := time.UnixMilli(msg.Timestamp).Format("15:04")
	return fmt.Sprintf("[%s] %s: %s", ts, TruncateName(msg.Author, 12), msg.Text)
}
