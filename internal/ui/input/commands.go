package input

import (
	"errors"
	"strconv"
	"strings"

	"github.com/palemoky/pass-four/internal/ui/common"
	"github.com/palemoky/pass-four/internal/ui/model"
)

type commandFunc func(m model.Model, args string) error

// HelpLines 房间内命令说明
var HelpLines = []string{
	"/bots [n]        添加 n 个机器人（默认 1）",
	"/labels a,b,...  提交你的卡牌名称",
	"/start           开始游戏",
	"/pass [牌名]     传牌（默认光标所在的牌）",
	"/rematch         再来一局",
	"/history         刷新聊天记录",
	"/exit            离开房间",
}

var commands = map[string]commandFunc{
	"/bots":    cmdAddBots,
	"/labels":  cmdSubmitLabels,
	"/start":   cmdStart,
	"/pass":    passCard,
	"/rematch": cmdRematch,
	"/history": cmdHistory,
	"/exit":    cmdExit,
	"/help":    cmdHelp,
}

func runCommand(m model.Model, line string) error {
	name, args, _ := strings.Cut(line, " ")
	cmd, ok := commands[strings.ToLower(name)]
	if !ok {
		return errors.New("未知命令，输入 /help 查看帮助")
	}
	return cmd(m, strings.TrimSpace(args))
}

func cmdAddBots(m model.Model, args string) error {
	count := 1
	if args != "" {
		n, err := strconv.Atoi(args)
		if err != nil || n < 1 {
			return errors.New("用法: /bots [数量]")
		}
		count = n
	}
	return m.Client().AddBots(m.Room().ID, count, 0)
}

func cmdSubmitLabels(m model.Model, args string) error {
	labels := common.ParseLabels(args)
	if len(labels) == 0 {
		return errors.New("用法: /labels 名称1,名称2")
	}
	return m.Client().SubmitLabels(m.Room().ID, labels)
}

func cmdStart(m model.Model, _ string) error {
	return m.Client().StartGame(m.Room().ID)
}

func cmdRematch(m model.Model, _ string) error {
	return m.Client().RequestRematch(m.Room().ID, m.PlayerName())
}

func cmdHistory(m model.Model, _ string) error {
	return m.Client().ChatHistory(m.Room().ID)
}

func cmdExit(m model.Model, _ string) error {
	return m.Client().ExitRoom(m.Room().ID)
}

func cmdHelp(m model.Model, _ string) error {
	for _, line := range HelpLines {
		m.Room().AddChat(line)
	}
	return nil
}
