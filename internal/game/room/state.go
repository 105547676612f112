package room

// Stage 房间阶段
type Stage int

const (
	StageLobby      Stage = iota // 等待玩家
	StageSubmitting              // 满员，等待提交卡牌名称
	StageInProgress              // 传牌中
	StageConcluded               // 已有玩家获胜
)

var stageNames = map[Stage]string{
	StageLobby:      "lobby",
	StageSubmitting: "submitting",
	StageInProgress: "in_progress",
	StageConcluded:  "concluded",
}

func (s Stage) String() string {
	if name, ok := stageNames[s]; ok {
		return name
	}
	return "unknown"
}

// Started 是否已发牌（进行中或已结束）
func (s Stage) Started() bool {
	return s == StageInProgress || s == StageConcluded
}
