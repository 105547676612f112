package protocol

// 错误码
const (
	ErrCodeUnknown                 = 1000
	ErrCodeInvalidMsg              = 1001
	ErrCodeRateLimit               = 1002 // 速率限制
	ErrCodeRoomNotFound            = 2001
	ErrCodeRoomFull                = 2002
	ErrCodeSeatNotFound            = 2003
	ErrCodeGameStarted             = 2004 // 游戏已开始
	ErrCodeInvalidSeatCount        = 2005
	ErrCodeRoomNotFull             = 2006
	ErrCodeGameNotStart            = 3001
	ErrCodeNotYourTurn             = 3002
	ErrCodeCardNotInHand           = 3003
	ErrCodeNoCardsToPassForBot     = 3004
	ErrCodeLabelsNotYetSubmitted   = 3005
	ErrCodeDuplicateOrMissingLabel = 3006
	ErrCodeGameConcluded           = 3007
	ErrCodeGameNotConcluded        = 3008
	ErrCodeServerMaintenance       = 5003 // 服务器维护中
)

// ErrorMessages 错误码对应的消息
var ErrorMessages = map[int]string{
	ErrCodeUnknown:                 "未知错误",
	ErrCodeInvalidMsg:              "无效的消息格式",
	ErrCodeRateLimit:               "请求过于频繁",
	ErrCodeRoomNotFound:            "房间不存在",
	ErrCodeRoomFull:                "房间已满",
	ErrCodeSeatNotFound:            "您不在房间中",
	ErrCodeGameStarted:             "游戏已开始",
	ErrCodeInvalidSeatCount:        "座位数无效",
	ErrCodeRoomNotFull:             "房间人数未满",
	ErrCodeGameNotStart:            "游戏尚未开始",
	ErrCodeNotYourTurn:             "还没轮到您",
	ErrCodeCardNotInHand:           "您的手牌中没有这张牌",
	ErrCodeNoCardsToPassForBot:     "机器人没有可传的牌",
	ErrCodeLabelsNotYetSubmitted:   "卡牌名称尚未提交",
	ErrCodeDuplicateOrMissingLabel: "卡牌名称重复或为空",
	ErrCodeGameConcluded:           "本局已结束",
	ErrCodeGameNotConcluded:        "本局尚未结束",
	ErrCodeServerMaintenance:       "服务器维护中",
}
