package bot

import (
	"github.com/palemoky/pass-four/internal/game/card"
)

// ChooseCard 机器人出牌策略：传出持有数量最多的标签，保留稀有标签以凑齐四张。
// 数量相同时取手牌中最先出现的标签；手牌为空返回 false。
func ChooseCard(hand card.Hand) (string, bool) {
	if len(hand) == 0 {
		return "", false
	}

	counts := hand.Counts()
	best, bestCount := "", 0
	for _, label := range hand {
		if counts[label] > bestCount {
			best, bestCount = label, counts[label]
		}
	}
	return best, true
}
