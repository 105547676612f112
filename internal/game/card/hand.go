package card

import (
	"slices"
)

// Hand 手牌，保留顺序且允许重复
type Hand []string

// Contains 是否持有该标签
func (h Hand) Contains(label string) bool {
	return slices.Contains(h, label)
}

// Count 统计某标签的张数
func (h Hand) Count(label string) int {
	n := 0
	for _, l := range h {
		if l == label {
			n++
		}
	}
	return n
}

// Counts 统计各标签张数
func (h Hand) Counts() map[string]int {
	counts := make(map[string]int, len(h))
	for _, l := range h {
		counts[l]++
	}
	return counts
}

// Remove 移除第一张匹配的牌，未找到返回 false
func (h *Hand) Remove(label string) bool {
	i := slices.Index(*h, label)
	if i < 0 {
		return false
	}
	*h = slices.Delete(*h, i, i+1)
	return true
}

// Add 追加一张牌到末尾
func (h *Hand) Add(label string) {
	*h = append(*h, label)
}

// WinningLabel 返回恰好凑齐 CopiesPerLabel 张的标签（按手牌顺序第一个）
func (h Hand) WinningLabel() (string, bool) {
	counts := h.Counts()
	for _, l := range h {
		if counts[l] == CopiesPerLabel {
			return l, true
		}
	}
	return "", false
}

// Clone 复制手牌
func (h Hand) Clone() Hand {
	return slices.Clone(h)
}
