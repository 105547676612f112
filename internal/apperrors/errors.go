package apperrors

import (
	"github.com/palemoky/pass-four/internal/protocol"
)

// GameError 游戏错误（房间引擎与处理器共享）
type GameError struct {
	Code    int
	Message string
}

func (e *GameError) Error() string {
	return e.Message
}

func newGameError(code int) *GameError {
	return &GameError{Code: code, Message: protocol.ErrorMessages[code]}
}

// 预定义错误
var (
	ErrRoomNotFound            = newGameError(protocol.ErrCodeRoomNotFound)
	ErrRoomFull                = newGameError(protocol.ErrCodeRoomFull)
	ErrSeatNotFound            = newGameError(protocol.ErrCodeSeatNotFound)
	ErrGameStarted             = newGameError(protocol.ErrCodeGameStarted)
	ErrInvalidSeatCount        = newGameError(protocol.ErrCodeInvalidSeatCount)
	ErrRoomNotFull             = newGameError(protocol.ErrCodeRoomNotFull)
	ErrGameNotStarted          = newGameError(protocol.ErrCodeGameNotStart)
	ErrNotYourTurn             = newGameError(protocol.ErrCodeNotYourTurn)
	ErrCardNotInHand           = newGameError(protocol.ErrCodeCardNotInHand)
	ErrNoCardsToPassForBot     = newGameError(protocol.ErrCodeNoCardsToPassForBot)
	ErrLabelsNotYetSubmitted   = newGameError(protocol.ErrCodeLabelsNotYetSubmitted)
	ErrDuplicateOrMissingLabel = newGameError(protocol.ErrCodeDuplicateOrMissingLabel)
	ErrGameConcluded           = newGameError(protocol.ErrCodeGameConcluded)
	ErrGameNotConcluded        = newGameError(protocol.ErrCodeGameNotConcluded)
	ErrServerMaintenance       = newGameError(protocol.ErrCodeServerMaintenance)
)
