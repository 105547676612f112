package protocol

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"
)

// 边界校验限制
const (
	MinSeats         = 2
	MaxSeats         = 8
	MaxNameLength    = 24
	MaxLabelLength   = 24
	MaxLabelsPerSeat = 13
	MaxChatLength    = 500
)

var (
	errMissingRoomID = errors.New("缺少房间 ID")
	errMissingName   = errors.New("缺少昵称")
)

// Validator 请求 payload 的边界校验
type Validator interface {
	Validate() error
}

func checkName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return errMissingName
	}
	if utf8.RuneCountInString(name) > MaxNameLength {
		return fmt.Errorf("昵称过长（最多 %d 个字符）", MaxNameLength)
	}
	return nil
}

func checkSeats(seats int) error {
	if seats < MinSeats || seats > MaxSeats {
		return fmt.Errorf("座位数必须在 %d-%d 之间", MinSeats, MaxSeats)
	}
	return nil
}

func (p *PingPayload) Validate() error { return nil }

func (p *CreateRoomPayload) Validate() error {
	if err := checkName(p.Name); err != nil {
		return err
	}
	return checkSeats(p.Seats)
}

func (p *JoinRoomPayload) Validate() error {
	if p.RoomID == "" {
		return errMissingRoomID
	}
	return checkName(p.Name)
}

func (p *AddBotsPayload) Validate() error {
	if p.RoomID == "" {
		return errMissingRoomID
	}
	if p.Count < 1 {
		return errors.New("机器人数量必须大于 0")
	}
	return checkSeats(p.Seats)
}

// Validate 只检查格式，重复/空名称属于业务错误，由房间引擎返回 DuplicateOrMissingLabel
func (p *SubmitLabelsPayload) Validate() error {
	if p.RoomID == "" {
		return errMissingRoomID
	}
	if len(p.Labels) > MaxLabelsPerSeat {
		return fmt.Errorf("一次最多提交 %d 个卡牌名称", MaxLabelsPerSeat)
	}
	for _, l := range p.Labels {
		if utf8.RuneCountInString(l) > MaxLabelLength {
			return fmt.Errorf("卡牌名称过长（最多 %d 个字符）", MaxLabelLength)
		}
	}
	return nil
}

func (p *RoomRefPayload) Validate() error {
	if p.RoomID == "" {
		return errMissingRoomID
	}
	return nil
}

func (p *PassCardPayload) Validate() error {
	if p.RoomID == "" {
		return errMissingRoomID
	}
	if utf8.RuneCountInString(p.Label) > MaxLabelLength {
		return fmt.Errorf("卡牌名称过长（最多 %d 个字符）", MaxLabelLength)
	}
	return nil
}

func (p *RematchPayload) Validate() error {
	if p.RoomID == "" {
		return errMissingRoomID
	}
	return nil
}

func (p *SendChatPayload) Validate() error {
	if p.RoomID == "" {
		return errMissingRoomID
	}
	text := strings.TrimSpace(p.Text)
	if text == "" {
		return errors.New("消息内容为空")
	}
	if utf8.RuneCountInString(text) > MaxChatLength {
		return fmt.Errorf("消息过长（最多 %d 个字符）", MaxChatLength)
	}
	return nil
}
