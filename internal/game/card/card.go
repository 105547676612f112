package card

import (
	"math/rand/v2"
)

// CopiesPerLabel 每个标签在牌堆中的张数，同时也是获胜所需的张数
const CopiesPerLabel = 4

// Deck 定义一副牌（按顺序排列的标签）
type Deck []string

// NewDeck 为每个标签生成 CopiesPerLabel 张牌，按提交顺序拼接（未洗牌）
func NewDeck(labels []string) Deck {
	deck := make(Deck, 0, len(labels)*CopiesPerLabel)
	for _, label := range labels {
		for range CopiesPerLabel {
			deck = append(deck, label)
		}
	}
	return deck
}

// Shuffle 使用 Fisher–Yates 洗牌（rand.Shuffle），rng 为 nil 时使用全局随机源
func (d Deck) Shuffle(rng *rand.Rand) {
	swap := func(i, j int) {
		d[i], d[j] = d[j], d[i]
	}
	if rng == nil {
		rand.Shuffle(len(d), swap)
		return
	}
	rng.Shuffle(len(d), swap)
}

// Deal 将牌平均分给 seats 个座位，每人 floor(len/seats) 张；
// 无法整除的余牌被丢弃并通过 discarded 返回
func (d Deck) Deal(seats int) (hands []Hand, discarded []string) {
	if seats <= 0 {
		return nil, append([]string(nil), d...)
	}

	perSeat := len(d) / seats
	hands = make([]Hand, seats)
	for i := range seats {
		hands[i] = append(Hand(nil), d[i*perSeat:(i+1)*perSeat]...)
	}
	return hands, append([]string(nil), d[seats*perSeat:]...)
}

// BuildDeck 构建并洗好一副牌
func BuildDeck(labels []string, rng *rand.Rand) Deck {
	deck := NewDeck(labels)
	deck.Shuffle(rng)
	return deck
}
